package utils

// WordFilter drops words that were already seen. Not safe for concurrent use.
type WordFilter struct {
	seenWords map[string]struct{}
}

// NewWordFilter creates a filter that also rejects every word in exclude
func NewWordFilter(exclude ...string) *WordFilter {
	seenWords := make(map[string]struct{}, len(exclude))
	for _, word := range exclude {
		seenWords[word] = struct{}{}
	}
	return &WordFilter{seenWords: seenWords}
}

// ShouldInclude reports whether word is new, and remembers it
func (f *WordFilter) ShouldInclude(word string) bool {
	if _, seen := f.seenWords[word]; seen {
		return false
	}
	f.seenWords[word] = struct{}{}
	return true
}

// Dedupe returns words without repeats, keeping first occurrences in order.
// words is filtered in place.
func Dedupe(words []string) []string {
	filter := NewWordFilter()
	kept := words[:0]
	for _, word := range words {
		if filter.ShouldInclude(word) {
			kept = append(kept, word)
		}
	}
	return kept
}
