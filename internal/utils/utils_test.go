package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordFilter(t *testing.T) {
	filter := NewWordFilter("skip")

	assert.True(t, filter.ShouldInclude("cat"))
	assert.False(t, filter.ShouldInclude("cat"))
	assert.False(t, filter.ShouldInclude("skip"))
	assert.True(t, filter.ShouldInclude("act"))
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"cat", "act", "dog"}, Dedupe([]string{"cat", "act", "cat", "dog", "act"}))
	assert.Empty(t, Dedupe(nil))
}

func TestIsValidQuery(t *testing.T) {
	testCases := []struct {
		input    string
		expected bool
	}{
		{"tac", true},
		{"Été", true},
		{"", false},
		{"c4t", false},
		{"1234", false},
		{"ca t", false},
		{"cat!", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsValidQuery(tc.input))
		})
	}

	assert.True(t, ContainsNonLetters("a1"))
	assert.False(t, ContainsNonLetters(""))
}

func TestTOMLRoundTripAndRecovery(t *testing.T) {
	type section struct {
		Size int    `toml:"size"`
		Name string `toml:"name"`
	}
	type doc struct {
		Main section `toml:"main"`
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "cfg.toml")
	require.NoError(t, EnsureDir(filepath.Dir(path)))
	require.NoError(t, SaveTOMLFile(doc{Main: section{Size: 4, Name: "x"}}, path))
	assert.True(t, FileExists(path))

	var loaded doc
	require.NoError(t, LoadTOMLFile(path, &loaded))
	assert.Equal(t, 4, loaded.Main.Size)

	// wrong type for size breaks struct decoding but the map still parses
	require.NoError(t, os.WriteFile(path, []byte("[main]\nsize = \"big\"\nname = \"y\"\n"), 0644))
	assert.Error(t, LoadTOMLFile(path, &loaded))

	sections, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)
	main, ok := ExtractSection(sections, "main")
	require.True(t, ok)
	_, ok = ExtractInt64(main, "size")
	assert.False(t, ok)
	name, ok := ExtractString(main, "name")
	assert.True(t, ok)
	assert.Equal(t, "y", name)
}

func TestCheckDirStatus(t *testing.T) {
	status := CheckDirStatus(filepath.Join(t.TempDir(), "a", "b"))
	assert.True(t, status.Exists)
	assert.True(t, status.Writable)
	assert.NoError(t, status.Error)
}

func TestGetAbsolutePath(t *testing.T) {
	assert.Equal(t, "unknown", GetAbsolutePath(""))
	assert.True(t, filepath.IsAbs(GetAbsolutePath("relative/file.toml")))
}

func TestGetDictPath(t *testing.T) {
	pr, err := NewPathResolver()
	require.NoError(t, err)

	abs := filepath.Join(t.TempDir(), "words.txt")
	assert.Equal(t, abs, pr.GetDictPath(abs))

	// nothing exists: the first candidate comes back
	missing := "no/such/dict-for-tests.txt"
	assert.Equal(t, pr.DictCandidates(missing)[0], pr.GetDictPath(missing))
}
