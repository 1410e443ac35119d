package story

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Scene is one paragraph-level unit of rendered narrative, derived on the
// client from a GenerationResult's story text.
type Scene struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Dialogue string `json:"dialogue"`
	Speaker  string `json:"speaker"`
	Mood     string `json:"mood,omitempty"`
	Tension  int    `json:"tension"`
	Location string `json:"location,omitempty"`
	Time     string `json:"time,omitempty"`
	IsEnding bool   `json:"is_ending,omitempty"`
}

// Speaker labels longer than this are treated as narrative text containing
// a stray colon, not as an attribution.
const maxSpeakerLen = 25

var (
	paragraphSplit = regexp.MustCompile(`\n\n+`)
	speakerLabel   = regexp.MustCompile(`^([^:\n]+):\s*([\s\S]+)$`)
)

// Scenes splits a generation's story text into renderable scenes, one per
// paragraph, extracting leading "Name:" speaker labels. When the location
// changed during the segment, only the final paragraph carries the new
// location; earlier paragraphs are transitional and keep the previous one.
func (g *GenerationResult) Scenes(previousLocation string) []Scene {
	paragraphs := make([]string, 0)
	for _, p := range paragraphSplit.Split(g.Story, -1) {
		if strings.TrimSpace(p) != "" {
			paragraphs = append(paragraphs, strings.TrimSpace(p))
		}
	}

	scenes := make([]Scene, 0, len(paragraphs))
	for i, p := range paragraphs {
		speaker := "Narrator"
		dialogue := p
		if m := speakerLabel.FindStringSubmatch(p); m != nil && len(m[1]) <= maxSpeakerLen {
			speaker = m[1]
			dialogue = m[2]
		}

		location := g.LocationName
		lastParagraph := i == len(paragraphs)-1
		if previousLocation != "" && g.LocationName != previousLocation && !lastParagraph {
			location = previousLocation
		}

		title := location
		if title == "" {
			title = "Ongoing Story"
		}

		scenes = append(scenes, Scene{
			ID:       uuid.NewString(),
			Title:    title,
			Summary:  g.Mood,
			Dialogue: dialogue,
			Speaker:  speaker,
			Mood:     g.Mood,
			Tension:  g.Tension,
			Location: location,
			Time:     g.TimeOfDay,
			IsEnding: g.IsEnding,
		})
	}

	return scenes
}
