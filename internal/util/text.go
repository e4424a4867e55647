package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// SearchFold normalizes a string for case- and accent-insensitive
// substring matching: lowercase, accents stripped.
func SearchFold(s string) string {
	return removeAccents(strings.ToLower(s))
}

// ContainsFold reports whether needle occurs in haystack under SearchFold
// normalization.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(SearchFold(haystack), SearchFold(needle))
}

// removeAccents removes diacritical marks from unicode characters.
func removeAccents(s string) string {
	// Decompose unicode characters (NFD normalization)
	result := norm.NFD.String(s)

	// Remove combining characters (accents, diacritics)
	var b strings.Builder
	for _, r := range result {
		if !unicode.Is(unicode.Mn, r) { // Mn = Mark, Nonspacing
			b.WriteRune(r)
		}
	}

	return b.String()
}
