package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/yourlovestory/story-gateway/pkg/archive"
	"github.com/yourlovestory/story-gateway/pkg/session"
	"github.com/yourlovestory/story-gateway/pkg/story"
	"github.com/yourlovestory/story-gateway/pkg/textfilter"
)

type phase int

const (
	phasePremise phase = iota
	phaseGender
	phasePlaying
	phaseFreeText
	phaseEnded
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	speakerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	moodStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("243"))
	optionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	statsStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// generationMsg carries the outcome of one background generate call.
type generationMsg struct {
	result *story.GenerationResult
	err    error
}

type statusMsg string

type ConsoleUI struct {
	api *apiClient

	phase    phase
	premise  textarea.Model
	freeText textinput.Model
	viewport viewport.Model
	ready    bool

	state      *session.State
	location   string
	timeOfDay  string
	options    []story.Option
	lastReq    *story.StoryRequest
	transcript []string

	filter *textfilter.ProfanityFilter
	censor bool

	loading bool
	status  string
	err     error

	width  int
	height int
}

func NewConsoleUI(api *apiClient) *ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = "Describe the premise of your story..."
	ta.Focus()
	ta.SetHeight(4)

	ti := textinput.New()
	ti.Placeholder = "Write what you do or say..."
	ti.CharLimit = 200

	return &ConsoleUI{
		api:      api,
		phase:    phasePremise,
		premise:  ta,
		freeText: ti,
		filter:   textfilter.NewProfanityFilter(),
	}
}

func (m *ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m *ConsoleUI) generateCmd(req *story.StoryRequest) tea.Cmd {
	return func() tea.Msg {
		result, err := m.api.generateStory(req)
		return generationMsg{result: result, err: err}
	}
}

func (m *ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - 10
		if vpHeight < 5 {
			vpHeight = 5
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = vpHeight
		}
		m.refreshViewport()
		return m, nil

	case generationMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.applyGeneration(msg.result)
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.updateInputs(msg)
}

func (m *ConsoleUI) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch m.phase {
	case phasePremise:
		m.premise, cmd = m.premise.Update(msg)
		cmds = append(cmds, cmd)
	case phaseFreeText:
		m.freeText, cmd = m.freeText.Update(msg)
		cmds = append(cmds, cmd)
	default:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return tea.Batch(cmds...)
}

func (m *ConsoleUI) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.phase {
	case phasePremise:
		if msg.Type == tea.KeyCtrlD || (msg.Type == tea.KeyEnter && msg.Alt) {
			premise := strings.TrimSpace(m.premise.Value())
			if premise != "" {
				m.phase = phaseGender
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.premise, cmd = m.premise.Update(msg)
		return m, cmd

	case phaseGender:
		switch strings.ToLower(msg.String()) {
		case "f":
			return m.startStory("Female")
		case "m":
			return m.startStory("Male")
		case "q", "esc":
			return m, tea.Quit
		}
		return m, nil

	case phaseFreeText:
		switch msg.Type {
		case tea.KeyEsc:
			m.phase = phasePlaying
			m.freeText.Blur()
			return m, nil
		case tea.KeyEnter:
			text := strings.TrimSpace(m.freeText.Value())
			if text == "" {
				return m, nil
			}
			m.freeText.SetValue("")
			m.freeText.Blur()
			m.phase = phasePlaying
			return m.chooseOption(&story.Option{ID: "custom", Text: text})
		}
		var cmd tea.Cmd
		m.freeText, cmd = m.freeText.Update(msg)
		return m, cmd

	case phasePlaying:
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "1", "2", "3", "4":
			idx := int(msg.String()[0] - '1')
			if idx < len(m.options) {
				opt := m.options[idx]
				return m.chooseOption(&opt)
			}
		case "w":
			m.freeText.Focus()
			m.phase = phaseFreeText
			return m, textinput.Blink
		case "c":
			m.censor = !m.censor
			m.refreshViewport()
			return m, nil
		case "v":
			m.state.Stats.Vulnerable = !m.state.Stats.Vulnerable
			return m, nil
		case "s":
			return m, m.syncCmd()
		case "ctrl+y":
			return m, m.copyTranscriptCmd()
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case phaseEnded:
		switch msg.String() {
		case "q", "esc", "enter":
			return m, tea.Quit
		case "s":
			return m, m.syncCmd()
		case "ctrl+y":
			return m, m.copyTranscriptCmd()
		}
	}

	return m, nil
}

func (m *ConsoleUI) startStory(gender string) (tea.Model, tea.Cmd) {
	m.state = session.NewState(strings.TrimSpace(m.premise.Value()), gender)
	m.phase = phasePlaying
	m.loading = true

	req := m.state.BuildRequest(nil, "", "", time.Now())
	m.lastReq = req
	return m, m.generateCmd(req)
}

func (m *ConsoleUI) chooseOption(opt *story.Option) (tea.Model, tea.Cmd) {
	// The fallback scene's single option replays the request that failed.
	if opt.ID == story.RetryOptionID && m.lastReq != nil {
		m.loading = true
		return m, m.generateCmd(m.lastReq)
	}

	m.state.RecordIntent(opt.Intent)
	m.state.ApplyEffects(session.OptionEffects(opt))
	m.transcript = append(m.transcript, "> "+opt.Text)

	req := m.state.BuildRequest(opt, m.location, m.timeOfDay, time.Now())
	m.lastReq = req
	m.loading = true
	m.refreshViewport()
	return m, m.generateCmd(req)
}

// applyGeneration folds a result into the session. The fallback scene is
// rendered but never mutates stats or history, so a provider outage cannot
// corrupt a playthrough.
func (m *ConsoleUI) applyGeneration(result *story.GenerationResult) {
	previousLocation := m.location

	if !result.Fallback() {
		m.state.SetStats(result.Relationship, result.Trust, result.Tension)
		m.state.AddHistory(result.Story)
		if result.LocationName != "" {
			m.state.RecordVisit(result.LocationName)
			m.location = result.LocationName
		}
		if result.TimeOfDay != "" {
			m.timeOfDay = result.TimeOfDay
		}
	}

	for _, scene := range result.Scenes(previousLocation) {
		m.transcript = append(m.transcript,
			speakerStyle.Render(scene.Speaker+":")+" "+scene.Dialogue)
	}
	if result.Mood != "" {
		m.transcript = append(m.transcript, moodStyle.Render(result.Mood))
	}

	m.options = result.Options

	if result.IsEnding {
		m.phase = phaseEnded
	}
	m.refreshViewport()
}

func (m *ConsoleUI) syncCmd() tea.Cmd {
	if m.state == nil {
		return nil
	}
	record := archive.NewRecord(m.location, m.state.Premise, m.state.Gender,
		m.state.History, m.state.Stats, m.phase == phaseEnded)
	userID := getEnv("USER_ID", "console")
	token := getEnv("SYNC_TOKEN", "")

	return func() tea.Msg {
		merged, err := m.api.syncArchive(userID, []archive.Record{record}, token)
		if err != nil {
			return statusMsg("sync failed: " + err.Error())
		}
		return statusMsg(fmt.Sprintf("synced, %d stories archived", len(merged)))
	}
}

func (m *ConsoleUI) copyTranscriptCmd() tea.Cmd {
	text := strings.Join(m.transcript, "\n\n")
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return statusMsg("copy failed: " + err.Error())
		}
		return statusMsg("transcript copied")
	}
}

func (m *ConsoleUI) refreshViewport() {
	if !m.ready {
		return
	}
	var b strings.Builder
	for _, line := range m.transcript {
		text := line
		if m.censor {
			text = m.filter.FilterText(text)
		}
		b.WriteString(wordwrap.String(text, m.viewport.Width))
		b.WriteString("\n\n")
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m *ConsoleUI) View() string {
	switch m.phase {
	case phasePremise:
		return titleStyle.Render("Your Love Story") + "\n\n" +
			"What is this story about?\n\n" +
			m.premise.View() + "\n\n" +
			helpStyle.Render("ctrl+d to begin, ctrl+c to quit")

	case phaseGender:
		return titleStyle.Render("Your Love Story") + "\n\n" +
			"Play as:\n\n  f - Female\n  m - Male\n\n" +
			helpStyle.Render("q to quit")
	}

	var b strings.Builder

	header := titleStyle.Render("Your Love Story")
	if m.location != "" {
		header += "  " + moodStyle.Render(m.location)
		if m.timeOfDay != "" {
			header += moodStyle.Render(", "+m.timeOfDay)
		}
	}
	b.WriteString(header + "\n")

	if m.state != nil {
		b.WriteString(statsStyle.Render(fmt.Sprintf(
			"Relationship %d  Trust %d  Tension %d",
			m.state.Stats.Relationship, m.state.Stats.Trust, m.state.Stats.Tension)) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(m.viewport.View() + "\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	case m.loading:
		b.WriteString(moodStyle.Render("The story unfolds...") + "\n")
	case m.phase == phaseEnded:
		b.WriteString(titleStyle.Render("The End") + "\n")
		b.WriteString(helpStyle.Render("s sync  ctrl+y copy  q quit") + "\n")
	case m.phase == phaseFreeText:
		b.WriteString(m.freeText.View() + "\n")
		b.WriteString(helpStyle.Render("enter to act, esc to cancel") + "\n")
	default:
		for i, opt := range m.options {
			text := opt.Text
			if m.censor {
				text = m.filter.FilterText(text)
			}
			b.WriteString(optionStyle.Render(fmt.Sprintf("  %d. %s", i+1, text)) + "\n")
		}
		b.WriteString(helpStyle.Render("1-4 choose  w write  v open up  c censor  s sync  ctrl+y copy  q quit") + "\n")
	}

	if m.status != "" {
		b.WriteString(helpStyle.Render(m.status) + "\n")
	}

	return b.String()
}
