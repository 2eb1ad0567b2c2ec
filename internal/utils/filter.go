package utils

import (
	"unicode"
)

// ContainsNonLetters checks if a string has anything besides letters
func ContainsNonLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// IsValidQuery reports whether every rune of a trimmed query is a letter.
// Word lists rarely hold other runes, so they mostly add combinations.
func IsValidQuery(s string) bool {
	if len(s) == 0 {
		return false
	}
	return !ContainsNonLetters(s)
}
