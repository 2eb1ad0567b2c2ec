package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/anagramserve/internal/logger"
	"github.com/bastiangx/anagramserve/pkg/combo"
	"github.com/bastiangx/anagramserve/pkg/config"
	"github.com/bastiangx/anagramserve/pkg/solver"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for anagram queries
type Server struct {
	solver   solver.ISolver
	config   *config.Config
	decoder  *msgpack.Decoder
	writer   *bufio.Writer
	encoder  *msgpack.Encoder
	logger   *log.Logger
	requests int
}

// NewServer creates a server using stdin/stdout for IPC
func NewServer(s solver.ISolver, cfg *config.Config) *Server {
	return NewServerWithIO(s, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server reading requests from r and writing responses to w
func NewServerWithIO(s solver.ISolver, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	writer := bufio.NewWriter(w)
	return &Server{
		solver:  s,
		config:  cfg,
		decoder: msgpack.NewDecoder(bufio.NewReader(r)),
		writer:  writer,
		encoder: msgpack.NewEncoder(writer),
		logger:  logger.New("server"),
	}
}

// Start announces readiness and serves requests until the input stream ends.
// It returns nil on a clean EOF and an error when the stream itself is unreadable.
func (s *Server) Start() error {
	s.logger.Debug("Starting server")
	s.send(StatusResponse{Status: "ready"})

	for {
		var raw msgpack.RawMessage
		if err := s.decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debugf("Input closed after %d requests", s.requests)
				return nil
			}
			s.logger.Errorf("Reading request stream: %v", err)
			return fmt.Errorf("failed to read request: %w", err)
		}
		s.requests++

		var request Request
		if err := msgpack.Unmarshal(raw, &request); err != nil {
			s.logger.Warnf("Malformed request: %v", err)
			s.sendError("", "malformed request", CodeBadRequest)
			continue
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches one decoded request by action
func (s *Server) handleRequest(request Request) {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}

	switch request.Action {
	case "", "solve":
		s.handleSolve(request)
	case "info":
		s.handleInfo(request)
	case "health":
		s.send(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("unknown action: %s", request.Action), CodeBadRequest)
	}
}

// handleSolve validates the query length, solves under the configured timeout and applies the result limit
func (s *Server) handleSolve(request Request) {
	query := strings.TrimSpace(request.Query)
	maxQuery := s.config.Server.MaxQueryLength
	if maxQuery > 0 && utf8.RuneCountInString(query) > maxQuery {
		s.logger.Debug("Query too long", "id", request.ID, "len", utf8.RuneCountInString(query))
		s.sendError(request.ID, fmt.Sprintf("query exceeds maximum length of %d letters", maxQuery), CodeQueryTooLarge)
		return
	}

	ctx := context.Background()
	if timeout := s.config.Server.SolveTimeoutMs; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Millisecond)
		defer cancel()
	}

	start := time.Now()
	words, err := s.solver.SolveContext(ctx, query)
	elapsed := time.Since(start)
	if err != nil {
		s.logger.Warn("Solve aborted", "id", request.ID, "query", query, "after", elapsed, "err", err)
		if errors.Is(err, context.DeadlineExceeded) {
			s.sendError(request.ID, fmt.Sprintf("solve timed out after %v", elapsed.Round(time.Millisecond)), CodeTimeout)
			return
		}
		s.sendError(request.ID, err.Error(), CodeBadRequest)
		return
	}

	total := len(words)
	if limit := s.resultLimit(request.Limit); limit > 0 && total > limit {
		words = words[:limit]
	}
	if words == nil {
		words = []string{}
	}

	s.logger.Debugf("Took [ %v ] for query '%s': %d words", elapsed, query, total)
	s.send(SolveResponse{
		ID:        request.ID,
		Words:     words,
		Count:     len(words),
		Total:     total,
		TimeTaken: elapsed.Microseconds(),
	})
}

// resultLimit combines the request limit with the configured cap; 0 means unlimited
func (s *Server) resultLimit(requested int) int {
	maxResults := s.config.Server.MaxResults
	switch {
	case requested <= 0:
		return maxResults
	case maxResults > 0:
		return min(requested, maxResults)
	default:
		return requested
	}
}

func (s *Server) handleInfo(request Request) {
	stats := s.solver.Stats()
	maxQuery := s.config.Server.MaxQueryLength
	s.send(InfoResponse{
		ID:             request.ID,
		Status:         "ok",
		Words:          stats.Words,
		Keys:           stats.Keys,
		MinWordLength:  stats.MinLength,
		MaxWordLength:  stats.MaxLength,
		MaxQueryLength: maxQuery,
		WorstCase:      combo.Count(maxQuery, stats.MinLength, stats.MaxLength).String(),
	})
}

// send encodes one response and flushes it so the client sees it immediately
func (s *Server) send(response any) {
	if err := s.encoder.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		s.logger.Errorf("Writing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
