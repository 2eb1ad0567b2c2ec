package solver

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSolver(t *testing.T, words []string, minLength, maxLength int, opts ...Option) *Solver {
	t.Helper()
	lines := bufio.NewScanner(strings.NewReader(strings.Join(words, "\n")))
	s, err := New(lines, minLength, maxLength, opts...)
	require.NoError(t, err)
	return s
}

func TestLetters(t *testing.T) {
	assert.Equal(t, []string{"t", "a", "c"}, Letters("  TaC\n"))
	assert.Equal(t, []string{"é", "t", "é"}, Letters("Été"))
	assert.Equal(t, []string{"a", " ", "b"}, Letters("a b"))
	assert.Empty(t, Letters("   "))
}

func TestSolveRoundTrip(t *testing.T) {
	s := newSolver(t, []string{"cat", "act", "tac", "dog", "god"}, 3, 3)

	testCases := []struct {
		query    string
		expected []string
	}{
		{"tac", []string{"cat", "act", "tac"}},
		{"dog", []string{"dog", "god"}},
		{"DOG", []string{"dog", "god"}},
		{"xyz", nil},
		{"", nil},
		{"ca", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			got := s.Solve(tc.query)
			if tc.expected == nil {
				assert.Empty(t, got)
				return
			}
			assert.ElementsMatch(t, tc.expected, got)
		})
	}
}

func TestSolveSubLengths(t *testing.T) {
	s := newSolver(t, []string{"a", "at", "cat", "dog", "tack"}, 1, 3)

	got := s.Solve("cat")
	assert.Equal(t, []string{"cat", "at", "a"}, got)
	assert.NotContains(t, got, "dog")
	assert.NotContains(t, got, "tack")
}

func TestSolveOrderLongestFirst(t *testing.T) {
	s := newSolver(t, []string{"a", "ab", "ba", "abc", "c", "bc"}, 1, 3)

	// abc | ab ac bc | a b c
	assert.Equal(t, []string{"abc", "ab", "ba", "bc", "a", "c"}, s.Solve("abc"))
}

func TestSolveRepeatedLetters(t *testing.T) {
	s := newSolver(t, []string{"ab"}, 2, 2)

	// positions (0,2) and (1,2) both spell "ab"
	assert.Equal(t, []string{"ab", "ab"}, s.Solve("aab"))

	unique := newSolver(t, []string{"ab"}, 2, 2, WithUnique())
	assert.Equal(t, []string{"ab"}, unique.Solve("aab"))
}

func TestSolveDictionaryDuplicates(t *testing.T) {
	s := newSolver(t, []string{"cat", "cat"}, 3, 3)
	assert.Equal(t, []string{"cat", "cat"}, s.Solve("tca"))
}

func TestSolveNonLetters(t *testing.T) {
	s := newSolver(t, []string{"cat", "at"}, 2, 3)

	assert.Equal(t, []string{"cat", "at"}, s.Solve("c4t!a"))
	assert.Empty(t, s.Solve("1234"))
}

func TestSolveInvalidBounds(t *testing.T) {
	s := newSolver(t, []string{"cat"}, 4, 2)
	assert.Empty(t, s.Solve("cat"))

	s = newSolver(t, []string{"cat"}, -1, 3)
	assert.Empty(t, s.Solve("cat"))
}

func TestSolveEmptyQueryZeroMin(t *testing.T) {
	s := newSolver(t, []string{"a", "", "b"}, 0, 1)

	assert.Equal(t, []string{""}, s.Solve(""))
	assert.Equal(t, []string{"a", ""}, s.Solve("a"))
}

func TestSolvePruningFindsSameWords(t *testing.T) {
	words := []string{"stop", "pots", "tops", "spot", "opts", "post", "so", "to", "top", "pot", "sop", "opt", "zoo", "toast"}
	plain := newSolver(t, words, 2, 5)
	pruned := newSolver(t, words, 2, 5, WithPrefixPruning())

	for _, query := range []string{"stop", "potts", "zoot", "tspoa", ""} {
		t.Run(query, func(t *testing.T) {
			assert.ElementsMatch(t, plain.Solve(query), pruned.Solve(query))
		})
	}
}

func TestSolveParallelMatchesSequential(t *testing.T) {
	words := []string{"a", "at", "ta", "cat", "act", "tack", "track", "rack", "car", "arc", "art", "rat", "tar"}
	sequential := newSolver(t, words, 1, 5)

	for _, workers := range []int{2, 3, 8} {
		t.Run(fmt.Sprintf("workers_%d", workers), func(t *testing.T) {
			parallel := newSolver(t, words, 1, 5, WithWorkers(workers))
			for _, query := range []string{"track", "cart", "tack", "a", ""} {
				assert.Equal(t, sequential.Solve(query), parallel.Solve(query), "query %q", query)
			}
		})
	}
}

func TestSolveContextCancelled(t *testing.T) {
	s := newSolver(t, []string{"cat"}, 1, 3, WithWorkers(2))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	words, err := s.SolveContext(ctx, "cat")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, words)
}

// lateCancelCtx reports cancellation once Err has been called more than allowed times
type lateCancelCtx struct {
	context.Context
	calls   int
	allowed int
}

func (c *lateCancelCtx) Err() error {
	c.calls++
	if c.calls > c.allowed {
		return context.Canceled
	}
	return nil
}

func TestSolveContextStopsMidWalk(t *testing.T) {
	s := newSolver(t, []string{"abcdefg"}, 7, 7)

	// C(14, 7) = 3432 probes: one check before the walk, one at 1024, cancelled at 2048
	ctx := &lateCancelCtx{Context: context.Background(), allowed: 2}
	words, err := s.SolveContext(ctx, "abcdefghijklmn")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, words)
	assert.Equal(t, 3, ctx.calls)
}

func TestSolveConcurrentReaders(t *testing.T) {
	s := newSolver(t, []string{"cat", "act", "tac", "dog", "god", "at", "a"}, 1, 3)
	expected := s.Solve("tacdog")

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				assert.Equal(t, expected, s.Solve("tacdog"))
			}
		}()
	}
	wg.Wait()
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("cat\nact\ndog\n"), 0644))

	s, err := Load(path, 3, 3, WithUnique())
	require.NoError(t, err)

	assert.Equal(t, []string{"cat", "act"}, s.Solve("tac"))
	assert.Equal(t, 3, s.Stats().Words)
	assert.Same(t, s.Index(), s.Index())
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing.txt"), 3, 3)
	assert.Error(t, err)
	assert.Nil(t, s)
}
