// Package parser recovers JSON payloads from raw model output. Providers
// routinely wrap the object in prose or markdown fences; the parser extracts
// the first balanced-looking span without attempting semantic repair.
package parser

import (
	"encoding/json"
	"strings"

	"github.com/yourlovestory/story-gateway/pkg/story"
)

// ParseError means no JSON-shaped substring could be recovered.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return e.Msg
}

// Extract returns the JSON span contained in raw. Strict parse is attempted
// first; on failure the substring from the first '{' to the last '}' is
// tried. Anything else fails with a ParseError.
func Extract(raw string) ([]byte, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" && json.Valid([]byte(trimmed)) {
		return []byte(trimmed), nil
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		span := trimmed[start : end+1]
		if json.Valid([]byte(span)) {
			return []byte(span), nil
		}
	}

	return nil, &ParseError{Msg: "no valid JSON found"}
}

// ParseGeneration extracts and decodes a GenerationResult from raw model
// output. Decoding failures of a recovered span are still parse errors:
// a 200 with a non-JSON body is not a provider success.
func ParseGeneration(raw string) (*story.GenerationResult, error) {
	span, err := Extract(raw)
	if err != nil {
		return nil, err
	}

	var result story.GenerationResult
	if err := json.Unmarshal(span, &result); err != nil {
		return nil, &ParseError{Msg: "recovered span is not a generation object: " + err.Error()}
	}

	return &result, nil
}
