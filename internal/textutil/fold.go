package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripAccents removes combining marks after canonical decomposition.
func StripAccents(s string) string {
	if isASCII(s) {
		return s
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// Fold lowercases, strips accents, and collapses whitespace. Punctuation is
// kept, so "La Vice-Présidente" folds to "la vice-presidente".
func Fold(s string) string {
	return CollapseSpaces(StripAccents(strings.ToLower(s)))
}

// KeepLetters deletes every rune that is not a-z or a space. Deleted runes are
// not replaced, so the letters around them join up.
func KeepLetters(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || r == ' ' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CollapseSpaces trims s and replaces every whitespace run with one space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Canonical is the comparison form of a personal name: lowercase, accent-free,
// letters and single spaces only.
func Canonical(s string) string {
	return CollapseSpaces(KeepLetters(StripAccents(strings.ToLower(s))))
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
