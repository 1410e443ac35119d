package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourlovestory/story-gateway/pkg/story"
)

func TestBuildUserPromptGenesis(t *testing.T) {
	req := &story.StoryRequest{
		SummaryOfPrevious: "A lighthouse keeper finds a message in a bottle.",
		UserGender:        "Male",
	}

	prompt := BuildUserPrompt(req)

	assert.Contains(t, prompt, "START NEW STORY")
	assert.Contains(t, prompt, "PLAYER GENDER: Male")
	assert.Contains(t, prompt, "Initial Premise: A lighthouse keeper finds a message in a bottle.")
	assert.Contains(t, prompt, "The player is Male. Maintain this perspective.")
	assert.NotContains(t, prompt, "STORY CONTEXT")
	assert.NotContains(t, prompt, "PLAYER'S LATEST CHOICE")
}

func TestBuildUserPromptContinuation(t *testing.T) {
	req := &story.StoryRequest{
		SummaryOfPrevious: "INITIAL PREMISE: X\n\nPAST EVENTS:\nscene one\n\nCURRENT SITUATION:",
		UserGender:        "Female",
		CurrentLocation:   "Harbor Tavern",
		CurrentStats:      story.Stats{Relationship: 62, Trust: 40, Tension: 15},
		Indicators: story.Indicators{
			ConsecutiveIntentCount: 3,
			LastIntent:             "humor",
			LocationVisitCount:     2,
			TotalScenes:            7,
			TimeOfDay:              "Dusk",
		},
		ChosenOption: &story.Option{ID: "B", Text: "Crack a joke about the storm", Intent: "humor"},
	}

	prompt := BuildUserPrompt(req)

	assert.Contains(t, prompt, "STORY CONTEXT:")
	assert.Contains(t, prompt, "CURRENT LOCATION: Harbor Tavern")
	assert.Contains(t, prompt, "Relationship=62, Trust=40, Tension=15")
	assert.Contains(t, prompt, "consecutive_intent_count: 3 (intent: humor)")
	assert.Contains(t, prompt, `PLAYER'S LATEST CHOICE: "Crack a joke about the storm" (Intent: humor)`)
	assert.Contains(t, prompt, "EXACTLY 4 options")
	assert.Contains(t, prompt, "voice barely above a whisper")
	assert.NotContains(t, prompt, "START NEW STORY")
	assert.NotContains(t, prompt, "VULNERABILITY OVERRIDE")
}

func TestBuildUserPromptVulnerableAndOverride(t *testing.T) {
	req := &story.StoryRequest{
		SummaryOfPrevious: "context",
		CurrentStats:      story.Stats{Vulnerable: true},
		ChosenOption:      &story.Option{ID: "A", Text: "Stay silent"},
		SystemOverride:    "SPECIAL EVENT: a meteor shower begins.",
	}

	prompt := BuildUserPrompt(req)

	assert.Contains(t, prompt, "VULNERABILITY OVERRIDE")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(prompt), "SPECIAL EVENT: a meteor shower begins."))
}

func TestBuildUserPromptDefaultsGender(t *testing.T) {
	req := &story.StoryRequest{SummaryOfPrevious: "premise"}

	prompt := BuildUserPrompt(req)

	assert.Contains(t, prompt, "PLAYER GENDER: Female")
}

func TestBuildUserPromptPreferences(t *testing.T) {
	req := &story.StoryRequest{
		SummaryOfPrevious: "premise",
		UserPreferences: &story.Preferences{
			Likes:    []string{"rain", "old books"},
			Dislikes: []string{"crowds"},
			Bio:      "A quiet archivist.",
		},
	}

	prompt := BuildUserPrompt(req)

	assert.Contains(t, prompt, "Likes: rain, old books")
	assert.Contains(t, prompt, "Dislikes: crowds")
	assert.Contains(t, prompt, "About the player: A quiet archivist.")
}
