package story

// GenerationResult is the normalized story payload the gateway guarantees to
// every caller. Stat values are absolute, not deltas.
type GenerationResult struct {
	Story        string   `json:"story"`
	Mood         string   `json:"mood"`
	Tension      int      `json:"tension"`
	Trust        int      `json:"trust"`
	Relationship int      `json:"relationship"`
	LocationName string   `json:"location_name"`
	TimeOfDay    string   `json:"time_of_day"`
	Options      []Option `json:"options"`
	IsEnding     bool     `json:"is_ending,omitempty"`
}

// OptionCount is the number of choices a conformant generation carries.
const OptionCount = 4

// RetryOptionID marks the single option of the fallback scene.
const RetryOptionID = "retry"

// FallbackLocation is the location of the deterministic fallback scene.
const FallbackLocation = "The Mist"

// ValidationError marks a structurally unusable generation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "invalid generation: " + e.Msg
}

// Validate rejects generations with no story text. An empty story is a
// provider failure, never a valid result.
func (g *GenerationResult) Validate() error {
	if g.Story == "" {
		return &ValidationError{Msg: "story text is empty"}
	}
	return nil
}

// Conformant reports whether the generation carries exactly four options.
// Non-conformant results are still served; instruction-following is
// imperfect and rejecting them outright would cost availability.
func (g *GenerationResult) Conformant() bool {
	return len(g.Options) == OptionCount
}

// ClampStats normalizes the absolute stat values into [0,100].
func (g *GenerationResult) ClampStats() {
	g.Tension = ClampStat(g.Tension)
	g.Trust = ClampStat(g.Trust)
	g.Relationship = ClampStat(g.Relationship)
}

// Fallback reports whether this is the deterministic mist scene.
func (g *GenerationResult) Fallback() bool {
	return len(g.Options) == 1 && g.Options[0].ID == RetryOptionID
}

// FallbackResult synthesizes the in-fiction scene served when every provider
// is exhausted. The story state machine stays alive: the player sees a veil
// of mist and a single option that retries the last choice.
func FallbackResult() *GenerationResult {
	return &GenerationResult{
		Story:        "Narrator: A sudden mist rises, obscuring the world around you. The voices of fate seem distant, as if waiting for you to focus your will once more.",
		Mood:         "Mystery - A moment of uncertainty",
		Tension:      50,
		Trust:        50,
		Relationship: 50,
		LocationName: FallbackLocation,
		TimeOfDay:    "Unknown",
		Options: []Option{
			{ID: RetryOptionID, Text: "The path is unclear. Search for another way...", Intent: "tension"},
		},
	}
}
