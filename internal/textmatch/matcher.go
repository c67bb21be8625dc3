// Package textmatch provides the shared pattern-scanning utility used by the
// compliance checkers and the website analysis step. It reports every
// non-overlapping occurrence of a pattern together with its position and a
// window of surrounding text for human review.
package textmatch

import (
	"regexp"
	"sort"
	"strings"
)

const (
	// PrimaryContextRadius is the context window used for primary scans
	// (website auto-fail triggers).
	PrimaryContextRadius = 50
	// SecondaryContextRadius is the window for secondary scans
	// (debt/marketing term proximity).
	SecondaryContextRadius = 30
)

// DefaultSection is the attribution bucket used when a match cannot be
// located in any labeled sub-section.
const DefaultSection = "main_content"

// Match is one occurrence of a pattern in a text body.
type Match struct {
	// Text is the matched substring exactly as it appears in the body.
	Text string
	// Offset is the byte offset of the match start.
	Offset int
	// Context is the surrounding window of text, trimmed of leading and
	// trailing whitespace.
	Context string
}

// FindAll returns every non-overlapping match of re in text. The pattern is
// expected to be compiled case-insensitively; FindAll does not alter it.
// Every occurrence is reported, not just the first.
func FindAll(re *regexp.Regexp, text string, radius int) []Match {
	locs := re.FindAllStringIndex(text, -1)
	if locs == nil {
		return nil
	}
	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		matches = append(matches, Match{
			Text:    text[loc[0]:loc[1]],
			Offset:  loc[0],
			Context: window(text, loc[0], loc[1], radius),
		})
	}
	return matches
}

// FindAllLiteral returns every case-insensitive occurrence of a literal
// phrase in text.
func FindAllLiteral(text, literal string, radius int) []Match {
	if literal == "" {
		return nil
	}
	lowerText := strings.ToLower(text)
	lowerLit := strings.ToLower(literal)

	var matches []Match
	from := 0
	for {
		i := strings.Index(lowerText[from:], lowerLit)
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(literal)
		matches = append(matches, Match{
			Text:    text[start:end],
			Offset:  start,
			Context: window(text, start, end, radius),
		})
		from = end
	}
	return matches
}

// ContainsAny reports whether any of the literals appears in text,
// case-insensitively.
func ContainsAny(text string, literals []string) bool {
	lower := strings.ToLower(text)
	for _, lit := range literals {
		if strings.Contains(lower, strings.ToLower(lit)) {
			return true
		}
	}
	return false
}

// SectionFor re-scans labeled sub-sections to attribute a match to the one
// containing it. Sections are visited in sorted label order so attribution
// is deterministic. When no section matches, the match is attributed to the
// default main-content bucket.
func SectionFor(re *regexp.Regexp, sections map[string]string) string {
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if re.MatchString(sections[name]) {
			return name
		}
	}
	return DefaultSection
}

func window(text string, start, end, radius int) string {
	lo := start - radius
	if lo < 0 {
		lo = 0
	}
	hi := end + radius
	if hi > len(text) {
		hi = len(text)
	}
	return strings.TrimSpace(text[lo:hi])
}
