// Package archive models saved playthroughs and the merge rule used when a
// device syncs its local archive against the server copy.
package archive

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/yourlovestory/story-gateway/pkg/story"
)

// Record is one archived playthrough. Timestamp is unix milliseconds of the
// last update on the writing device.
type Record struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Premise   string      `json:"premise"`
	Gender    string      `json:"gender"`
	History   []string    `json:"history"`
	Stats     story.Stats `json:"stats"`
	IsEnded   bool        `json:"is_ended"`
	Timestamp int64       `json:"timestamp"`
}

// NewRecord archives the given playthrough with a fresh identity.
func NewRecord(title, premise, gender string, history []string, stats story.Stats, ended bool) Record {
	return Record{
		ID:        uuid.NewString(),
		Title:     title,
		Premise:   premise,
		Gender:    gender,
		History:   history,
		Stats:     stats,
		IsEnded:   ended,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Merge unions two archives by record ID. On a collision the stored record
// wins, so a stale device cannot overwrite server state. The result is
// ordered newest first, with ID as the tiebreak for stable output.
func Merge(stored, incoming []Record) []Record {
	seen := make(map[string]struct{}, len(stored))
	merged := make([]Record, 0, len(stored)+len(incoming))

	for _, r := range stored {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		merged = append(merged, r)
	}
	for _, r := range incoming {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		merged = append(merged, r)
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Timestamp != merged[j].Timestamp {
			return merged[i].Timestamp > merged[j].Timestamp
		}
		return merged[i].ID < merged[j].ID
	})

	return merged
}
