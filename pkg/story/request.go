package story

import "fmt"

// StoryRequest is the body of a POST /generate call. The client folds the
// premise and running history into SummaryOfPrevious before sending; the
// gateway treats the request as a pure input and never persists it.
type StoryRequest struct {
	SummaryOfPrevious string       `json:"summary_of_previous"`
	UserGender        string       `json:"user_gender"`
	CurrentLocation   string       `json:"current_location,omitempty"`
	CurrentStats      Stats        `json:"current_stats"`
	Indicators        Indicators   `json:"indicators"`
	ChosenOption      *Option      `json:"chosen_option,omitempty"`
	UserPreferences   *Preferences `json:"user_preferences,omitempty"`
	SystemOverride    string       `json:"system_override,omitempty"`
}

// Stats holds the relationship meters. All three integers live in [0,100].
type Stats struct {
	Relationship int  `json:"relationship"`
	Trust        int  `json:"trust"`
	Tension      int  `json:"tension"`
	Vulnerable   bool `json:"vulnerable"`
}

// ClampStat forces a stat value into [0,100].
func ClampStat(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Clamp normalizes all meters in place.
func (s *Stats) Clamp() {
	s.Relationship = ClampStat(s.Relationship)
	s.Trust = ClampStat(s.Trust)
	s.Tension = ClampStat(s.Tension)
}

// Indicators are derived behavioral signals computed by the client before
// each generation call. The gateway forwards them into the prompt verbatim.
type Indicators struct {
	SecondsAtMaxTrust      int    `json:"seconds_at_max_trust"`
	ConsecutiveIntentCount int    `json:"consecutive_intent_count"`
	LastIntent             string `json:"last_intent"`
	LocationVisitCount     int    `json:"location_visit_count"`
	ConsecutiveLowRelScene int    `json:"consecutive_low_rel_scenes"`
	TotalScenes            int    `json:"total_scenes"`
	TimeOfDay              string `json:"time_of_day"`
}

// Preferences carries player likes, dislikes and a short bio. The narrative
// is instructed to reference them; the gateway never validates the content.
type Preferences struct {
	Likes    []string `json:"likes,omitempty"`
	Dislikes []string `json:"dislikes,omitempty"`
	Bio      string   `json:"bio,omitempty"`
}

// Option is a single player-facing choice.
type Option struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Intent string `json:"intent,omitempty"`
}

func (r *StoryRequest) Validate() error {
	if r.SummaryOfPrevious == "" {
		return fmt.Errorf("summary_of_previous cannot be empty")
	}
	return nil
}
