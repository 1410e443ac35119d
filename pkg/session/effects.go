package session

import (
	"strings"

	"github.com/yourlovestory/story-gateway/pkg/story"
)

// Effects are the immediate stat deltas a choice applies before the next
// generation returns its absolute values.
type Effects struct {
	Relationship int
	Trust        int
}

var effectKeywords = []struct {
	words   []string
	effects Effects
}{
	{[]string{"romance", "love", "warm", "passion"}, Effects{Relationship: 5}},
	{[]string{"confront", "harsh", "cold", "conflict"}, Effects{Relationship: -3, Trust: -2}},
	{[]string{"honest", "truth", "vulnerability"}, Effects{Trust: 5, Relationship: 2}},
	{[]string{"humor", "funny"}, Effects{Relationship: 3, Trust: 1}},
	{[]string{"fantasy", "mystery"}, Effects{Trust: 2}},
}

// InferEffects maps a choice's intent and wording onto stat deltas. Keyword
// buckets are checked in priority order; an unmatched choice still nudges
// the relationship forward.
func InferEffects(intent, text string) Effects {
	haystack := strings.ToLower(intent + " " + text)
	for _, bucket := range effectKeywords {
		for _, w := range bucket.words {
			if strings.Contains(haystack, w) {
				return bucket.effects
			}
		}
	}
	return Effects{Relationship: 1}
}

// OptionEffects resolves the deltas for a concrete option.
func OptionEffects(opt *story.Option) Effects {
	if opt == nil {
		return Effects{}
	}
	return InferEffects(opt.Intent, opt.Text)
}
