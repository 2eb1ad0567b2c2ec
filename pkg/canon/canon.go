// Package canon maps words to their anagram key: the word's characters sorted by code point.
package canon

import "slices"

// Canonicalize returns word with its runes sorted in ascending code point order.
// Two strings share a key iff they hold the same multiset of runes.
func Canonicalize(word string) string {
	if len(word) < 2 {
		return word
	}
	runes := []rune(word)
	if slices.IsSorted(runes) {
		return word
	}
	slices.Sort(runes)
	return string(runes)
}
