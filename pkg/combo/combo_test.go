package combo

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func split(s string) []string {
	return strings.Split(s, "")
}

func TestEnumerateABC(t *testing.T) {
	got := Enumerate(split("abc"), 1, 3)
	assert.Equal(t, []string{"abc", "ab", "ac", "bc", "a", "b", "c"}, got)
}

func TestEnumerateKeepsInputOrder(t *testing.T) {
	got := Enumerate(split("tac"), 2, 2)
	assert.Equal(t, []string{"ta", "tc", "ac"}, got)
}

func TestEnumerateEdgeCases(t *testing.T) {
	testCases := []struct {
		name     string
		letters  []string
		min, max int
		expected []string
	}{
		{"zero length yields empty string", split("ab"), 0, 0, []string{""}},
		{"zero min includes empty string last", split("ab"), 0, 1, []string{"a", "b", ""}},
		{"empty input zero length", nil, 0, 2, []string{""}},
		{"empty input", nil, 1, 3, nil},
		{"length beyond input", split("ab"), 3, 5, nil},
		{"max beyond input", split("ab"), 1, 9, []string{"ab", "a", "b"}},
		{"inverted bounds", split("abc"), 3, 1, nil},
		{"negative min", split("abc"), -1, 2, nil},
		{"repeated letters stay positional", split("aa"), 1, 2, []string{"aa", "a", "a"}},
		{"multi-byte letters", []string{"é", "t"}, 2, 2, []string{"ét"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Enumerate(tc.letters, tc.min, tc.max))
		})
	}
}

func TestEnumerateMatchesBinomial(t *testing.T) {
	letters := split("abcdefghij")

	for length := 0; length <= len(letters)+1; length++ {
		got := Enumerate(letters, length, length)
		assert.Equal(t, Count(len(letters), length, length).Int64(), int64(len(got)), "length %d", length)
	}

	all := Enumerate(letters, 0, len(letters))
	assert.Len(t, all, 1024)
	assert.Equal(t, int64(1024), Count(len(letters), 0, len(letters)).Int64())
}

// distinct letters make every combination identify its own position subset
func TestEnumerateNoDuplicateSubsets(t *testing.T) {
	letters := split("abcdefgh")

	for length := 1; length <= len(letters); length++ {
		seen := make(map[string]bool)
		for _, combo := range Enumerate(letters, length, length) {
			require.Len(t, combo, length)
			assert.False(t, seen[combo], "combination %q produced twice", combo)
			seen[combo] = true
			assert.True(t, slices.IsSorted(split(combo)), "combination %q is not in input order", combo)
		}
	}
}

func TestEnumerateLongestFirst(t *testing.T) {
	got := Enumerate(split("abcd"), 1, 4)

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, len(got[i-1]), len(got[i]))
	}
}

func TestWalkStopsEarly(t *testing.T) {
	var visited []string
	completed := Walk(split("abcd"), 2, nil, func(combo string) bool {
		visited = append(visited, combo)
		return len(visited) < 3
	})

	assert.False(t, completed)
	assert.Equal(t, []string{"ab", "ac", "ad"}, visited)
}

func TestWalkDescendPrunes(t *testing.T) {
	var visited []string
	var asked []string
	Walk(split("abcd"), 2, func(partial string) bool {
		asked = append(asked, partial)
		return !strings.HasPrefix(partial, "a")
	}, func(combo string) bool {
		visited = append(visited, combo)
		return true
	})

	assert.Equal(t, []string{"bc", "bd", "cd"}, visited)
	assert.NotContains(t, asked, "ab")
}

func TestCount(t *testing.T) {
	testCases := []struct {
		n, min, max int
		expected    string
	}{
		{3, 1, 3, "7"},
		{5, 2, 2, "10"},
		{4, 0, 4, "16"},
		{4, 5, 9, "0"},
		{4, 3, 1, "0"},
		{4, -1, 2, "0"},
		{64, 0, 64, "18446744073709551616"},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("n=%d[%d,%d]", tc.n, tc.min, tc.max), func(t *testing.T) {
			assert.Equal(t, tc.expected, Count(tc.n, tc.min, tc.max).String())
		})
	}
}

func BenchmarkEnumerate(b *testing.B) {
	letters := split("abcdefghijklmn")
	for i := 0; i < b.N; i++ {
		Enumerate(letters, 3, 8)
	}
}
