// Package session tracks the client-side progression of one story: the
// running stats, the scene history, and the behavioral indicators derived
// from recent play. The gateway itself is stateless; everything here lives
// with the caller and is folded into each StoryRequest.
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/yourlovestory/story-gateway/pkg/story"
)

// Last intents tracked for the repeated-intent indicator.
const intentWindow = 10

// History scenes folded into the summary of a continuation request.
const summaryWindow = 15

// Relationship below this counts a scene toward the low-affinity streak.
const lowRelThreshold = 10

// VulnerableOverride is injected as the system_override when the player has
// entered the emotionally open state.
const VulnerableOverride = "SYSTEM OVERRIDE: The player has lowered every guard. Treat this scene as emotionally pivotal."

// State is the full mutable record of one playthrough.
type State struct {
	Premise string
	Gender  string
	Stats   story.Stats

	History []string

	// TrustMaxSince is the moment trust reached 100, zero while below.
	TrustMaxSince  time.Time
	LastIntents    []string
	LocationVisits map[string]int
	LowRelScenes   int
}

// NewState starts a playthrough at the neutral baseline.
func NewState(premise, gender string) *State {
	return &State{
		Premise:        premise,
		Gender:         gender,
		Stats:          story.Stats{Relationship: 50, Trust: 50, Tension: 0},
		LocationVisits: make(map[string]int),
	}
}

// AddHistory appends one scene's text to the running history.
func (s *State) AddHistory(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	s.History = append(s.History, text)
}

// SummaryOfPrevious folds the premise and the recent history into the
// context block sent with every continuation.
func (s *State) SummaryOfPrevious() string {
	recent := s.History
	if len(recent) > summaryWindow {
		recent = recent[len(recent)-summaryWindow:]
	}
	return fmt.Sprintf("INITIAL PREMISE: %s\n\nPAST EVENTS:\n%s\n\nCURRENT SITUATION:",
		s.Premise, strings.Join(recent, "\n---\n"))
}

// ApplyEffects shifts the meters by the given deltas, clamped to [0,100].
func (s *State) ApplyEffects(e Effects) {
	s.Stats.Relationship = story.ClampStat(s.Stats.Relationship + e.Relationship)
	s.Stats.Trust = story.ClampStat(s.Stats.Trust + e.Trust)
	s.trackTrust(time.Now())
}

// SetStats replaces the meters with the absolute values of a generation.
func (s *State) SetStats(relationship, trust, tension int) {
	s.Stats.Relationship = story.ClampStat(relationship)
	s.Stats.Trust = story.ClampStat(trust)
	s.Stats.Tension = story.ClampStat(tension)
	s.trackTrust(time.Now())
	if s.Stats.Relationship < lowRelThreshold {
		s.LowRelScenes++
	} else {
		s.LowRelScenes = 0
	}
}

func (s *State) trackTrust(now time.Time) {
	if s.Stats.Trust >= 100 {
		if s.TrustMaxSince.IsZero() {
			s.TrustMaxSince = now
		}
	} else {
		s.TrustMaxSince = time.Time{}
	}
}

// RecordIntent pushes an intent onto the sliding window.
func (s *State) RecordIntent(intent string) {
	if intent == "" {
		return
	}
	s.LastIntents = append(s.LastIntents, intent)
	if len(s.LastIntents) > intentWindow {
		s.LastIntents = s.LastIntents[len(s.LastIntents)-intentWindow:]
	}
}

// RecordVisit counts one arrival at a location.
func (s *State) RecordVisit(location string) {
	if location == "" {
		return
	}
	s.LocationVisits[location]++
}

// Snapshot derives the behavioral indicators for the next generation call.
// Intent repetition counts backward from the most recent intent.
func (s *State) Snapshot(location, timeOfDay string, now time.Time) story.Indicators {
	ind := story.Indicators{
		LocationVisitCount:     s.LocationVisits[location],
		ConsecutiveLowRelScene: s.LowRelScenes,
		TotalScenes:            len(s.History),
		TimeOfDay:              timeOfDay,
	}

	if !s.TrustMaxSince.IsZero() {
		ind.SecondsAtMaxTrust = int(now.Sub(s.TrustMaxSince).Seconds())
	}

	if n := len(s.LastIntents); n > 0 {
		last := s.LastIntents[n-1]
		count := 0
		for i := n - 1; i >= 0 && s.LastIntents[i] == last; i-- {
			count++
		}
		ind.LastIntent = last
		ind.ConsecutiveIntentCount = count
	}

	return ind
}

// BuildRequest assembles the StoryRequest for the next generation. A nil
// chosen option produces a genesis request from the premise alone.
func (s *State) BuildRequest(chosen *story.Option, location, timeOfDay string, now time.Time) *story.StoryRequest {
	req := &story.StoryRequest{
		UserGender:      s.Gender,
		CurrentLocation: location,
		CurrentStats:    s.Stats,
		ChosenOption:    chosen,
	}

	if chosen == nil {
		req.SummaryOfPrevious = s.Premise
		return req
	}

	req.SummaryOfPrevious = s.SummaryOfPrevious()
	req.Indicators = s.Snapshot(location, timeOfDay, now)
	if s.Stats.Vulnerable {
		req.SystemOverride = VulnerableOverride
	}
	return req
}
