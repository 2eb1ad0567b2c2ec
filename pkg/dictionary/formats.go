package dictionary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents the supported dictionary source formats
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatText               // one word per line
	FormatChunk              // single dict_NNNN.bin chunk file
	FormatChunkDir           // directory of chunk files
)

// maxChunkWords is the sanity limit for a chunk header
const maxChunkWords = 1000000

var (
	// ErrUnknownFormat is returned when a path matches none of the supported formats
	ErrUnknownFormat = errors.New("unknown dictionary format")
	// ErrNoChunks is returned for a directory without dict_*.bin files
	ErrNoChunks = errors.New("no chunk files found")
)

func (f FileFormat) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatChunk:
		return "chunk"
	case FormatChunkDir:
		return "chunk-dir"
	default:
		return "unknown"
	}
}

// DetectFileFormat inspects path and reports which format it holds.
// Directories must contain chunk files, .bin files must carry a valid header,
// and any other regular file is read as plain text.
func DetectFileFormat(path string) (FileFormat, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if info.IsDir() {
		chunks, err := listChunks(path)
		if err != nil {
			return FormatUnknown, err
		}
		if len(chunks) == 0 {
			return FormatUnknown, fmt.Errorf("%w in %s", ErrNoChunks, path)
		}
		return FormatChunkDir, nil
	}

	if !info.Mode().IsRegular() {
		return FormatUnknown, fmt.Errorf("%w: %s is not a regular file", ErrUnknownFormat, path)
	}

	if strings.ToLower(filepath.Ext(path)) == ".bin" {
		if err := validateChunkHeader(path); err != nil {
			return FormatUnknown, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
		}
		return FormatChunk, nil
	}
	return FormatText, nil
}

// validateChunkHeader checks that the word count header is readable and plausible
func validateChunkHeader(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	if wordCount < 0 {
		return fmt.Errorf("invalid word count in %s: %d (negative)", filename, wordCount)
	}
	if wordCount > maxChunkWords {
		return fmt.Errorf("suspicious word count in %s: %d (too large)", filename, wordCount)
	}

	log.Debugf("Chunk file %s validated: %d words", filename, wordCount)
	return nil
}
