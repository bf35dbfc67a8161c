package domain

import (
	"strings"
	"unicode"
)

// Query represents a parsed launcher input
type Query struct {
	Raw       string   // Trimmed, lowercased input
	Fragments []string // Whitespace-separated fragments
	Compact   string   // Input with every separator removed, for "vscode" style queries
}

// ParseQuery parses user input into a structured query
// Examples:
//   - "safari"       -> ["safari"]
//   - "  Vis  Code " -> ["vis", "code"], compact "viscode"
func ParseQuery(input string) *Query {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return &Query{Raw: input}
	}

	return &Query{
		Raw:       input,
		Fragments: strings.Fields(input),
		Compact:   normalizeFragment(input),
	}
}

// IsEmpty reports whether the query has nothing to match.
func (q *Query) IsEmpty() bool {
	return q == nil || len(q.Fragments) == 0
}

// NameFragments splits a display name into lowercase words.
// "Visual Studio Code" -> ["visual", "studio", "code"]
// "gnome-terminal"     -> ["gnome", "terminal"]
func NameFragments(name string) []string {
	return strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// initials returns the first letter of every word: ["visual","studio","code"] -> "vsc".
func initials(words []string) string {
	var b strings.Builder
	for _, w := range words {
		for _, r := range w {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}

// normalizeFragment normalizes a fragment for matching
func normalizeFragment(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}
