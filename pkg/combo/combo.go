/*
Package combo enumerates the letter combinations an anagram search has to probe.

A combination picks a strictly increasing set of positions from the input
letters and concatenates them in input order. Each position subset is produced
exactly once, so a given length L over n letters yields C(n, L) combinations.
Permutations are never generated: the anagram key of a combination does not
depend on letter order.

# Scaling

The walk is brute force. Over the range [min, max] it emits

	sum(C(n, L)) for L = min..max

strings, which for a full range is 2^n. Inputs up to ~20 letters are fine;
beyond that the count explodes (30 letters is already ~10^9 combinations).
Use Count to check the cost before walking, or prune through the descend hook
of Walk.
*/
package combo

import "math/big"

// Walk visits every combination of exactly length letters in lexicographic position order.
//
// descend, when non-nil, is asked about every partial combination before it is extended;
// returning false skips all combinations that start with it.
// visit returning false stops the walk, and Walk then returns false.
func Walk(letters []string, length int, descend func(partial string) bool, visit func(combo string) bool) bool {
	if length < 0 || length > len(letters) {
		return true
	}
	w := walker{
		letters: letters,
		length:  length,
		descend: descend,
		visit:   visit,
	}
	return w.walk(0, 0)
}

type walker struct {
	letters []string
	length  int
	buf     []byte
	descend func(string) bool
	visit   func(string) bool
}

// walk extends the current partial combination with every position from start on.
// A position is never reused at a deeper level, which keeps indices strictly increasing.
func (w *walker) walk(start, depth int) bool {
	if depth == w.length {
		return w.visit(string(w.buf))
	}

	// leave enough letters for the remaining picks
	last := len(w.letters) - (w.length - depth)
	for i := start; i <= last; i++ {
		mark := len(w.buf)
		w.buf = append(w.buf, w.letters[i]...)

		if w.descend == nil || w.descend(string(w.buf)) {
			if !w.walk(i+1, depth+1) {
				w.buf = w.buf[:mark]
				return false
			}
		}
		w.buf = w.buf[:mark]
	}
	return true
}

// Enumerate returns every combination with a length in [minLength, maxLength], longest first.
// Negative or inverted bounds produce no combinations.
func Enumerate(letters []string, minLength, maxLength int) []string {
	if minLength < 0 || maxLength < minLength {
		return nil
	}

	var combos []string
	for length := min(maxLength, len(letters)); length >= minLength; length-- {
		Walk(letters, length, nil, func(combo string) bool {
			combos = append(combos, combo)
			return true
		})
	}
	return combos
}

// Count returns how many combinations Enumerate produces for n letters and the given bounds
func Count(n, minLength, maxLength int) *big.Int {
	total := new(big.Int)
	if n < 0 || minLength < 0 || maxLength < minLength {
		return total
	}

	binomial := new(big.Int)
	for length := minLength; length <= min(maxLength, n); length++ {
		total.Add(total, binomial.Binomial(int64(n), int64(length)))
	}
	return total
}
