package dictionary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// maxLineSize bounds a single text dictionary line
const maxLineSize = 1024 * 1024

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ID       int
	Filename string
}

// Load detects the format at path and builds an index from it
func Load(path string, minLength, maxLength int) (*Index, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}
	log.Debugf("Loading %s dictionary from %s", format, path)

	switch format {
	case FormatText:
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open dictionary %s: %w", path, err)
		}
		defer file.Close()

		scanner := bufio.NewScanner(file)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		return Build(scanner, minLength, maxLength)

	case FormatChunk:
		reader := NewChunkReader(path)
		defer reader.Close()
		return Build(reader, minLength, maxLength)

	case FormatChunkDir:
		chunks, err := listChunks(path)
		if err != nil {
			return nil, err
		}
		files := make([]string, len(chunks))
		for i, chunk := range chunks {
			files[i] = chunk.Filename
		}
		log.Debugf("Found %d chunk files", len(files))

		reader := NewChunkReader(files...)
		defer reader.Close()
		return Build(reader, minLength, maxLength)
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// listChunks scans dir for dict_NNNN.bin files sorted by chunk id
func listChunks(dir string) ([]ChunkInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "dict_*.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		// dict_0001.bin -> 1
		idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ".bin")
		chunkID, err := strconv.Atoi(idStr)
		if err != nil {
			log.Warnf("Skipping chunk with malformed name: %s", file)
			continue
		}
		chunks = append(chunks, ChunkInfo{ID: chunkID, Filename: file})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ID < chunks[j].ID
	})
	return chunks, nil
}

// ChunkReader streams the words of one or more chunk files, in order, as Lines.
// Entry ranks are read and discarded.
type ChunkReader struct {
	files     []string
	next      int
	file      *os.File
	reader    *bufio.Reader
	remaining int
	current   string
	err       error
}

// NewChunkReader creates a reader over the given chunk files
func NewChunkReader(files ...string) *ChunkReader {
	return &ChunkReader{files: files}
}

// Scan advances to the next word, opening the following chunk when the current one is drained
func (cr *ChunkReader) Scan() bool {
	for cr.err == nil {
		if cr.reader != nil && cr.remaining > 0 {
			word, err := readEntry(cr.reader)
			if errors.Is(err, io.EOF) {
				log.Warnf("Chunk %s ended %d words early", cr.file.Name(), cr.remaining)
				cr.remaining = 0
				continue
			}
			if err != nil {
				cr.err = fmt.Errorf("failed to read chunk %s: %w", cr.file.Name(), err)
				return false
			}
			cr.remaining--
			cr.current = word
			return true
		}
		if !cr.openNext() {
			return false
		}
	}
	return false
}

// Text returns the word read by the last Scan
func (cr *ChunkReader) Text() string {
	return cr.current
}

// Err returns the first read error, if any
func (cr *ChunkReader) Err() error {
	return cr.err
}

// Close releases the currently open chunk file
func (cr *ChunkReader) Close() error {
	if cr.file == nil {
		return nil
	}
	err := cr.file.Close()
	cr.file = nil
	cr.reader = nil
	return err
}

func (cr *ChunkReader) openNext() bool {
	cr.Close()
	if cr.next >= len(cr.files) {
		return false
	}
	filename := cr.files[cr.next]
	cr.next++

	file, err := os.Open(filename)
	if err != nil {
		cr.err = fmt.Errorf("failed to open chunk file %s: %w", filename, err)
		return false
	}
	reader := bufio.NewReader(file)

	var totalEntries int32
	if err := binary.Read(reader, binary.LittleEndian, &totalEntries); err != nil {
		file.Close()
		cr.err = fmt.Errorf("failed to read chunk header of %s: %w", filename, err)
		return false
	}
	if totalEntries < 0 || totalEntries > maxChunkWords {
		file.Close()
		cr.err = fmt.Errorf("invalid word count in %s: %d", filename, totalEntries)
		return false
	}

	log.Debugf("Reading chunk %s with %d words", filename, totalEntries)
	cr.file = file
	cr.reader = reader
	cr.remaining = int(totalEntries)
	return true
}

// readEntry reads one length-prefixed word followed by its rank
func readEntry(reader *bufio.Reader) (string, error) {
	var wordLen uint16
	if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
		return "", err
	}

	wordBytes := make([]byte, wordLen)
	if _, err := io.ReadFull(reader, wordBytes); err != nil {
		return "", fmt.Errorf("failed to read word: %w", io.ErrUnexpectedEOF)
	}

	var rank uint16
	if err := binary.Read(reader, binary.LittleEndian, &rank); err != nil {
		return "", fmt.Errorf("failed to read rank: %w", io.ErrUnexpectedEOF)
	}
	return string(wordBytes), nil
}

// WriteChunks packs the non-blank lines of a source into dict_NNNN.bin files under dir.
// Ranks follow source order starting at 1 and saturate at 65535.
// It returns the number of chunk files written.
func WriteChunks(dir string, lines Lines, chunkSize int) (int, error) {
	if chunkSize < 1 {
		return 0, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create chunk dir %s: %w", dir, err)
	}

	written := 0
	rank := 1
	words := make([]string, 0, chunkSize)

	flush := func() error {
		if len(words) == 0 {
			return nil
		}
		written++
		filename := filepath.Join(dir, fmt.Sprintf("dict_%04d.bin", written))
		if err := writeChunk(filename, words, rank); err != nil {
			return err
		}
		rank += len(words)
		words = words[:0]
		return nil
	}

	for lines.Scan() {
		word := strings.TrimSpace(lines.Text())
		if word == "" {
			continue
		}
		if len(word) > math.MaxUint16 {
			return written, fmt.Errorf("word of %d bytes exceeds chunk entry limit", len(word))
		}
		words = append(words, word)
		if len(words) == chunkSize {
			if err := flush(); err != nil {
				return written, err
			}
		}
	}
	if err := lines.Err(); err != nil {
		return written, fmt.Errorf("failed to read source lines: %w", err)
	}
	if err := flush(); err != nil {
		return written, err
	}

	log.Debugf("Wrote %d chunk files to %s", written, dir)
	return written, nil
}

func writeChunk(filename string, words []string, firstRank int) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create chunk file %s: %w", filename, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := binary.Write(w, binary.LittleEndian, int32(len(words))); err != nil {
		return err
	}
	for i, word := range words {
		rank := min(firstRank+i, math.MaxUint16)
		if err := binary.Write(w, binary.LittleEndian, uint16(len(word))); err != nil {
			return err
		}
		if _, err := w.WriteString(word); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(rank)); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write chunk file %s: %w", filename, err)
	}
	return file.Close()
}
