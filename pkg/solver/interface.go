// Package solver finds every dictionary word that can be spelled from a subset of the query letters.
package solver

import (
	"context"

	"github.com/bastiangx/anagramserve/pkg/dictionary"
)

// ISolver defines the interface the CLI and IPC server solve queries through
type ISolver interface {
	// Solve returns all words buildable from the query letters, longest combinations first
	Solve(query string) []string

	// SolveContext is Solve with cancellation
	SolveContext(ctx context.Context, query string) ([]string, error)

	// Stats describes the loaded dictionary
	Stats() dictionary.Stats
}
