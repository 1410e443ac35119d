package prompts

import (
	"fmt"
	"strings"

	"github.com/yourlovestory/story-gateway/pkg/story"
)

// BuildUserPrompt renders a StoryRequest into the user-role message for a
// provider call. A request with a ChosenOption is a continuation; one
// without is a genesis call that opens a new story from the premise.
func BuildUserPrompt(req *story.StoryRequest) string {
	var b strings.Builder

	if req.ChosenOption != nil {
		writeContinuation(&b, req)
	} else {
		writeGenesis(&b, req)
	}

	gender := req.UserGender
	if gender == "" {
		gender = "Female"
	}
	fmt.Fprintf(&b, "\nREMINDER: The player is %s. Maintain this perspective.\n", gender)

	if p := req.UserPreferences; p != nil {
		b.WriteString("\nPLAYER PREFERENCES (weave them in naturally, never list them):\n")
		if len(p.Likes) > 0 {
			fmt.Fprintf(&b, "- Likes: %s\n", strings.Join(p.Likes, ", "))
		}
		if len(p.Dislikes) > 0 {
			fmt.Fprintf(&b, "- Dislikes: %s\n", strings.Join(p.Dislikes, ", "))
		}
		if p.Bio != "" {
			fmt.Fprintf(&b, "- About the player: %s\n", p.Bio)
		}
	}

	if req.SystemOverride != "" {
		b.WriteString("\n")
		b.WriteString(req.SystemOverride)
		b.WriteString("\n")
	}

	return b.String()
}

func writeContinuation(b *strings.Builder, req *story.StoryRequest) {
	b.WriteString("STORY CONTEXT:\n")
	b.WriteString(req.SummaryOfPrevious)
	b.WriteString("\n")

	if req.CurrentStats.Vulnerable {
		b.WriteString("\nVULNERABILITY OVERRIDE: The player is in an emotionally raw, open state. The character senses it. Respond with heightened intimacy and care, or exploit it if the relationship is hostile.\n")
	}

	if req.CurrentLocation != "" {
		fmt.Fprintf(b, "\nCURRENT LOCATION: %s\n", req.CurrentLocation)
	}

	fmt.Fprintf(b, "\nCURRENT STATS: Relationship=%d, Trust=%d, Tension=%d\n",
		req.CurrentStats.Relationship, req.CurrentStats.Trust, req.CurrentStats.Tension)

	writeIndicators(b, &req.Indicators)

	fmt.Fprintf(b, "\nPLAYER'S LATEST CHOICE: \"%s\"", req.ChosenOption.Text)
	if req.ChosenOption.Intent != "" {
		fmt.Fprintf(b, " (Intent: %s)", req.ChosenOption.Intent)
	}
	b.WriteString("\n")

	b.WriteString("\nTASK:\n")
	b.WriteString("1. Have the character acknowledge and react to the player's choice directly.\n")
	b.WriteString("2. Maintain spatial continuity with the current location unless travel is written.\n")
	b.WriteString("3. Introduce exactly ONE new element (a detail, a question, a small event).\n")
	b.WriteString("4. Provide EXACTLY 4 options, each at most 10 words.\n")
	b.WriteString("5. Banned phrases, never use them: " + strings.Join(bannedPhrases, ", ") + ".\n")
}

func writeGenesis(b *strings.Builder, req *story.StoryRequest) {
	b.WriteString("START NEW STORY.\n")

	gender := req.UserGender
	if gender == "" {
		gender = "Female"
	}
	fmt.Fprintf(b, "\nPLAYER GENDER: %s\n", gender)

	fmt.Fprintf(b, "\nInitial Premise: %s\n", req.SummaryOfPrevious)

	b.WriteString("\nTASK:\n")
	b.WriteString("1. Open the story in a vivid, specific location. Name it in location_name.\n")
	b.WriteString("2. Introduce the main character through dialogue, not description.\n")
	b.WriteString("3. End at a decision point with 2-4 options, each at most 10 words.\n")
}

func writeIndicators(b *strings.Builder, ind *story.Indicators) {
	b.WriteString("\nBEHAVIORAL INDICATORS:\n")
	fmt.Fprintf(b, "- seconds_at_max_trust: %d\n", ind.SecondsAtMaxTrust)
	fmt.Fprintf(b, "- consecutive_intent_count: %d", ind.ConsecutiveIntentCount)
	if ind.LastIntent != "" {
		fmt.Fprintf(b, " (intent: %s)", ind.LastIntent)
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "- location_visit_count: %d\n", ind.LocationVisitCount)
	fmt.Fprintf(b, "- consecutive_low_rel_scenes: %d\n", ind.ConsecutiveLowRelScene)
	fmt.Fprintf(b, "- total_scenes: %d\n", ind.TotalScenes)
	if ind.TimeOfDay != "" {
		fmt.Fprintf(b, "- time_of_day: %s\n", ind.TimeOfDay)
	}
}
