// Package cli handles cmd line input and prints anagrams for DBG and testing various features
package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/anagramserve/internal/logger"
	"github.com/bastiangx/anagramserve/internal/utils"
	"github.com/bastiangx/anagramserve/pkg/solver"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var wordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))

// InputHandler reads queries line by line and prints the words each one spells.
// maxQueryLength guards against queries whose combination count explodes,
// limit caps how many words are printed and noFilter silences the non-letter warning.
type InputHandler struct {
	solver         solver.ISolver
	reader         *bufio.Reader
	logger         *log.Logger
	maxQueryLength int
	limit          int
	requestCount   int
	noFilter       bool
}

// NewInputHandler creates a handler reading stdin and printing to stderr
func NewInputHandler(s solver.ISolver, maxQueryLength, limit int, noFilter bool) *InputHandler {
	return NewInputHandlerWithIO(s, os.Stdin, os.Stderr, maxQueryLength, limit, noFilter)
}

// NewInputHandlerWithIO creates a handler on explicit streams
func NewInputHandlerWithIO(s solver.ISolver, in io.Reader, out io.Writer, maxQueryLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		solver:         s,
		reader:         bufio.NewReader(in),
		logger:         logger.NewWithWriter(out, ""),
		maxQueryLength: maxQueryLength,
		limit:          limit,
		noFilter:       noFilter,
	}
}

// Start begins the interface loop.
// It reads one query per line and returns nil once input ends.
func (h *InputHandler) Start() error {
	h.logger.Print("AnagramServe CLI [BETA]")
	h.logger.Print("type some letters and press Enter to see the words they spell (Ctrl+C to exit):")

	for {
		h.logger.Print("> ")
		line, err := h.reader.ReadString('\n')
		if query := strings.TrimSpace(line); query != "" {
			h.handleInput(query)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// handleInput solves a single query and prints the results
func (h *InputHandler) handleInput(query string) {
	h.requestCount++

	if n := utf8.RuneCountInString(query); h.maxQueryLength > 0 && n > h.maxQueryLength {
		h.logger.Errorf("Query too long (%d letters, max %d): %s", n, h.maxQueryLength, query)
		return
	}

	// non-letters rarely appear in word lists, they mostly add combinations
	if !h.noFilter && !utils.IsValidQuery(query) {
		h.logger.Warnf("Query '%s' contains non-letters; they rarely match any word", query)
	}

	start := time.Now()
	h.logger.Debug("Processing request", "n", h.requestCount, "query", query)
	words := h.solver.Solve(query)
	elapsed := time.Since(start)
	h.logger.Debugf("Took [ %v ] for query '%s'", elapsed, query)

	if len(words) == 0 {
		h.logger.Warnf("No words found for '%s'", query)
		return
	}

	total := len(words)
	if h.limit > 0 && total > h.limit {
		words = words[:h.limit]
	}

	h.logger.Printf("Found %d words for '%s':", total, query)
	for i, word := range words {
		h.logger.Printf("%2d. %s", i+1, wordStyle.Render(word))
	}
	if len(words) < total {
		h.logger.Printf("... %d more (raise -limit to see them)", total-len(words))
	}
}
