package nameutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes characters and drops combining marks, so accented
// letters collapse to their base form (José -> Jose).
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var punctuationReplacer = strings.NewReplacer("'", "", "\"", "", ".", "")

// Normalize canonicalizes a raw name into a comparison key: lowercase,
// diacritics stripped, apostrophes/quotes/periods removed, whitespace
// collapsed to single spaces, trimmed. It is total over all inputs and
// idempotent; empty input yields the empty string.
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	if stripped, _, err := transform.String(stripMarks, s); err == nil {
		s = stripped
	}
	s = punctuationReplacer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Tokens splits a normalized name on whitespace and keeps only tokens long
// enough to be informative for blocking (more than one rune). Single-letter
// initials like the "l" in "l messi" carry no signal and are dropped.
func Tokens(normalized string) []string {
	fields := strings.Fields(normalized)
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if utf8.RuneCountInString(field) > 1 {
			tokens = append(tokens, field)
		}
	}
	return tokens
}
