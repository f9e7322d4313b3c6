// Package dedupe suppresses repeated OCR reads of the same receipt line.
package dedupe

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// Distance returns the Levenshtein edit distance between a and b, counted in runes.
func Distance(a, b string) int {
	return levenshtein.Distance(a, b, nil)
}

// Similarity returns 1 - Distance(a,b)/max(len(a),len(b)) over runes.
// Two empty strings are identical.
func Similarity(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(Distance(a, b))/float64(longest)
}

// NormalizeName lowercases and trims name, drops punctuation and collapses
// whitespace, so "Coca-Cola" becomes "cocacola".
func NormalizeName(name string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			space = true
		}
	}
	return b.String()
}
