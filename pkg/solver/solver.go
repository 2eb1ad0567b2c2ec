package solver

import (
	"context"
	"slices"
	"strings"

	"github.com/bastiangx/anagramserve/internal/utils"
	"github.com/bastiangx/anagramserve/pkg/combo"
	"github.com/bastiangx/anagramserve/pkg/dictionary"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// checkEvery is how many combinations are probed between context checks
const checkEvery = 1024

// Solver answers anagram queries against an immutable dictionary index.
// A Solver is safe for concurrent use.
type Solver struct {
	index   *dictionary.Index
	unique  bool
	prune   bool
	workers int
}

// Option configures a Solver
type Option func(*Solver)

// WithUnique drops repeated words from results, keeping the first occurrence.
// Without it, repeated query letters or duplicate dictionary lines repeat words.
func WithUnique() Option {
	return func(s *Solver) {
		s.unique = true
	}
}

// WithPrefixPruning sorts the query letters and skips every partial combination
// that no dictionary key starts with. Results hold the same words as the full walk,
// ordered by the sorted letters instead of the query order.
func WithPrefixPruning() Option {
	return func(s *Solver) {
		s.prune = true
	}
}

// WithWorkers solves up to n combination lengths in parallel. n <= 1 keeps solving sequential.
func WithWorkers(n int) Option {
	return func(s *Solver) {
		s.workers = n
	}
}

// New builds the dictionary index from lines and returns a Solver over it
func New(lines dictionary.Lines, minLength, maxLength int, opts ...Option) (*Solver, error) {
	idx, err := dictionary.Build(lines, minLength, maxLength)
	if err != nil {
		return nil, err
	}
	return NewFromIndex(idx, opts...), nil
}

// Load reads the dictionary at path (text file, chunk file or chunk dir) and returns a Solver over it
func Load(path string, minLength, maxLength int, opts ...Option) (*Solver, error) {
	idx, err := dictionary.Load(path, minLength, maxLength)
	if err != nil {
		return nil, err
	}
	return NewFromIndex(idx, opts...), nil
}

// NewFromIndex wraps an already built index
func NewFromIndex(idx *dictionary.Index, opts ...Option) *Solver {
	s := &Solver{
		index:   idx,
		workers: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Letters splits a query into its input letters: trimmed, lowercased, one rune each.
// Lowercasing matches what dictionary.Build applies to words.
func Letters(query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	letters := make([]string, 0, len(query))
	for _, r := range query {
		letters = append(letters, string(r))
	}
	return letters
}

// Solve returns every dictionary word spelled by a subset of the query letters.
// Words come longest combination first, then in combination order, then in dictionary order.
func (s *Solver) Solve(query string) []string {
	// background context never cancels, so there is no error to report
	words, _ := s.SolveContext(context.Background(), query)
	return words
}

// SolveContext is Solve that stops with ctx.Err() once ctx is done
func (s *Solver) SolveContext(ctx context.Context, query string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	letters := Letters(query)
	if s.prune {
		slices.Sort(letters)
	}

	minLength, maxLength := s.index.Bounds()
	if minLength < 0 || maxLength < minLength {
		return nil, nil
	}
	top := min(maxLength, len(letters))
	if top < minLength {
		return nil, nil
	}
	log.Debugf("Solving %q: %s combinations in [%d, %d]", query, combo.Count(len(letters), minLength, maxLength), minLength, maxLength)

	var words []string
	if s.workers <= 1 || top == minLength {
		for length := top; length >= minLength; length-- {
			var err error
			words, err = s.solveLength(ctx, letters, length, words)
			if err != nil {
				return nil, err
			}
		}
	} else {
		parts := make([][]string, top-minLength+1)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.workers)
		for i := range parts {
			length := top - i
			g.Go(func() error {
				found, err := s.solveLength(gctx, letters, length, nil)
				parts[i] = found
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		words = slices.Concat(parts...)
	}

	if s.unique {
		words = utils.Dedupe(words)
	}
	return words, nil
}

// solveLength appends the matches of every combination of one length to words
func (s *Solver) solveLength(ctx context.Context, letters []string, length int, words []string) ([]string, error) {
	var descend func(string) bool
	if s.prune {
		// letters are sorted, so each partial combination is a prefix of its own key
		descend = s.index.HasPrefix
	}

	var err error
	probed := 0
	combo.Walk(letters, length, descend, func(c string) bool {
		probed++
		if probed%checkEvery == 0 {
			if err = ctx.Err(); err != nil {
				return false
			}
		}
		words = append(words, s.index.Lookup(c)...)
		return true
	})
	return words, err
}

// Index returns the dictionary index the solver reads from
func (s *Solver) Index() *dictionary.Index {
	return s.index
}

// Stats describes the loaded dictionary
func (s *Solver) Stats() dictionary.Stats {
	return s.index.Stats()
}
