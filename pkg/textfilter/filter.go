// Package textfilter softens explicit language in generated narrative for
// players who enable the family-friendly toggle.
package textfilter

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mild words get a readable substitute.
var replacements = map[string]string{
	"damn":     "dang",
	"hell":     "heck",
	"crap":     "crud",
	"ass":      "butt",
	"bastard":  "jerk",
	"bitch":    "jerk",
	"asshole":  "jerk",
	"goddamn":  "gosh-dang",
	"bullshit": "baloney",
	"piss":     "ticked",
}

// Explicit words are star-masked instead of substituted.
var masked = []string{
	"fuck", "shit", "cock", "dick", "pussy", "whore", "slut",
	"motherfucker", "shithead", "dickhead", "prick",
}

// Matches vulgarity spelled out with separators, like "f u c k" or "f.u.c.k".
var spacedVulgarity = regexp.MustCompile(`(?i)\b[fs][\s.*_-]+[hu][\s.*_-]+[ci][\s.*_-]+[kt]\b`)

// ProfanityFilter rewrites explicit language in narrative text.
type ProfanityFilter struct {
	replaceRegexes map[string]*regexp.Regexp
	maskRegexes    map[string]*regexp.Regexp
}

// NewProfanityFilter precompiles the word patterns.
func NewProfanityFilter() *ProfanityFilter {
	pf := &ProfanityFilter{
		replaceRegexes: make(map[string]*regexp.Regexp, len(replacements)),
		maskRegexes:    make(map[string]*regexp.Regexp, len(masked)),
	}
	for word := range replacements {
		pf.replaceRegexes[word] = wordRegex(word)
	}
	for _, word := range masked {
		pf.maskRegexes[word] = wordRegex(word)
	}
	return pf
}

func wordRegex(word string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
}

// FilterText rewrites profanity in text. Mild words are swapped for tame
// alternatives with their casing preserved; explicit words keep only their
// first and last letter with stars between.
func (pf *ProfanityFilter) FilterText(text string) string {
	result := text

	for word, replacement := range replacements {
		result = pf.replaceRegexes[word].ReplaceAllStringFunc(result, func(match string) string {
			return preserveCase(match, replacement)
		})
	}

	for _, word := range masked {
		result = pf.maskRegexes[word].ReplaceAllStringFunc(result, maskWord)
	}

	result = spacedVulgarity.ReplaceAllString(result, "****")

	return result
}

// maskWord keeps the first and last rune and stars the rest.
func maskWord(word string) string {
	runes := []rune(word)
	if len(runes) <= 2 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-2) + string(runes[len(runes)-1])
}

// ContainsProfanity reports whether the text has anything FilterText would
// rewrite.
func (pf *ProfanityFilter) ContainsProfanity(text string) bool {
	for _, re := range pf.replaceRegexes {
		if re.MatchString(text) {
			return true
		}
	}
	for _, re := range pf.maskRegexes {
		if re.MatchString(text) {
			return true
		}
	}
	return spacedVulgarity.MatchString(text)
}

// preserveCase applies the case pattern of the original word to the
// replacement.
func preserveCase(original, replacement string) string {
	if len(original) == 0 {
		return replacement
	}

	if strings.ToUpper(original) == original {
		return strings.ToUpper(replacement)
	}
	if strings.ToLower(original) == original {
		return strings.ToLower(replacement)
	}

	titleCaser := cases.Title(language.English)
	if titleCaser.String(strings.ToLower(original)) == original {
		return titleCaser.String(replacement)
	}

	result := make([]rune, 0, len(replacement))
	originalRunes := []rune(original)
	for i, r := range replacement {
		if i < len(originalRunes) && unicode.IsUpper(originalRunes[i]) {
			result = append(result, unicode.ToUpper(r))
		} else {
			result = append(result, unicode.ToLower(r))
		}
	}
	return string(result)
}
