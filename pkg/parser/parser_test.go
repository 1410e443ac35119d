package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGenerationCleanJSON(t *testing.T) {
	raw := `{"story":"Mara: \"Hello.\"","mood":"Playful - light air","tension":20,"trust":55,"relationship":60,"location_name":"Cafe","time_of_day":"Morning","options":[{"id":"A","text":"Wave back","intent":"romance"},{"id":"B","text":"Look away","intent":"conflict"},{"id":"C","text":"Joke about the menu","intent":"humor"},{"id":"D","text":"Ask who she is","intent":"mystery"}]}`

	result, err := ParseGeneration(raw)

	require.NoError(t, err)
	assert.Equal(t, `Mara: "Hello."`, result.Story)
	assert.Equal(t, 55, result.Trust)
	assert.Len(t, result.Options, 4)
	assert.Equal(t, "mystery", result.Options[3].Intent)
}

func TestParseGenerationWrappedInProse(t *testing.T) {
	raw := "Sure! Here is the next scene:\n```json\n{\"story\":\"Narrator: dawn breaks.\",\"options\":[]}\n```\nHope you like it!"

	result, err := ParseGeneration(raw)

	require.NoError(t, err)
	assert.Equal(t, "Narrator: dawn breaks.", result.Story)
	assert.Empty(t, result.Options)
}

func TestParseGenerationSparseObject(t *testing.T) {
	result, err := ParseGeneration(`{"story":"ok","options":[]}`)

	require.NoError(t, err)
	assert.Equal(t, "ok", result.Story)
	assert.Equal(t, 0, result.Tension)
}

func TestParseGenerationNoJSON(t *testing.T) {
	_, err := ParseGeneration("I'm sorry, I cannot continue this story.")

	require.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestParseGenerationMalformedSpan(t *testing.T) {
	_, err := ParseGeneration(`prefix {"story": "unterminated`)

	require.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestExtractIgnoresBracesInProse(t *testing.T) {
	span, err := Extract(`noise before {"a":1} noise after`)

	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(span))
}
