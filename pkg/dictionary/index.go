/*
Package dictionary builds the anagram index: every admitted word grouped under
its canonical key (see package canon).

An Index is built once from a line source and never mutated afterwards, so a
single Index can be shared by any number of concurrent readers without locks.

	idx, err := dictionary.Build(bufio.NewScanner(file), 3, 8)
	words := idx.Get(canon.Canonicalize("tca")) // [cat act tac]

Lines are trimmed and lowercased before the length filter is applied. Lengths
count runes, not bytes. An inverted or negative length range is accepted and
simply produces an empty index.
*/
package dictionary

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/anagramserve/pkg/canon"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Lines is a lazy source of raw dictionary lines. *bufio.Scanner satisfies it.
type Lines interface {
	Scan() bool
	Text() string
	Err() error
}

// Index maps canonical keys to the dictionary words sharing them
type Index struct {
	buckets   map[string][]string
	keys      *patricia.Trie
	minLength int
	maxLength int
	words     int
}

// Stats describes a built index
type Stats struct {
	Words         int
	Keys          int
	LargestBucket int
	MinLength     int
	MaxLength     int
}

// Build reads every line from lines and indexes the words whose length falls in [minLength, maxLength].
// If the source fails mid-stream the error is returned and no index is produced.
func Build(lines Lines, minLength, maxLength int) (*Index, error) {
	idx := &Index{
		buckets:   make(map[string][]string),
		keys:      patricia.NewTrie(),
		minLength: minLength,
		maxLength: maxLength,
	}

	validBounds := minLength >= 0 && maxLength >= minLength
	if !validBounds {
		log.Debugf("Length bounds [%d, %d] admit no words", minLength, maxLength)
	}

	skipped := 0
	for lines.Scan() {
		if !validBounds {
			continue
		}
		word := strings.ToLower(strings.TrimSpace(lines.Text()))
		n := utf8.RuneCountInString(word)
		if n < minLength || n > maxLength {
			skipped++
			continue
		}
		idx.add(word)
	}
	if err := lines.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary lines: %w", err)
	}

	log.Debugf("Indexed %d words under %d keys (%d skipped by length)", idx.words, len(idx.buckets), skipped)
	return idx, nil
}

func (idx *Index) add(word string) {
	key := canon.Canonicalize(word)
	bucket, exists := idx.buckets[key]
	if !exists && key != "" {
		idx.keys.Insert(patricia.Prefix(key), struct{}{})
	}
	idx.buckets[key] = append(bucket, word)
	idx.words++
}

// Get returns the words stored under key in dictionary order, or nil.
// The returned slice must not be modified.
func (idx *Index) Get(key string) []string {
	return slices.Clip(idx.buckets[key])
}

// Lookup canonicalizes word and returns its anagrams from the index
func (idx *Index) Lookup(word string) []string {
	return idx.Get(canon.Canonicalize(word))
}

// HasPrefix reports whether any canonical key in the index starts with prefix
func (idx *Index) HasPrefix(prefix string) bool {
	if prefix == "" {
		return len(idx.buckets) > 0
	}
	return idx.keys.MatchSubtree(patricia.Prefix(prefix))
}

// Bounds returns the word length range the index was built with
func (idx *Index) Bounds() (minLength, maxLength int) {
	return idx.minLength, idx.maxLength
}

// Len returns the number of indexed words, duplicates included
func (idx *Index) Len() int {
	return idx.words
}

// Stats returns counters describing the index
func (idx *Index) Stats() Stats {
	largest := 0
	for _, bucket := range idx.buckets {
		largest = max(largest, len(bucket))
	}
	return Stats{
		Words:         idx.words,
		Keys:          len(idx.buckets),
		LargestBucket: largest,
		MinLength:     idx.minLength,
		MaxLength:     idx.maxLength,
	}
}
