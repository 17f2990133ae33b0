// Package store persists generation runs - what was generated, from
// which seed, and how many commands it produced - so a caller can look
// one up later without re-running the generator.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested run does not exist.
var ErrNotFound = errors.New("run not found")

// Run records one completed generation.
type Run struct {
	ID           uuid.UUID     `json:"id" bson:"_id"`
	LibraryHash  string        `json:"library_hash" bson:"library_hash"`
	StartTitle   string        `json:"start_title" bson:"start_title"`
	Seed         uint64        `json:"seed" bson:"seed"`
	CommandCount int           `json:"command_count" bson:"command_count"`
	Duration     time.Duration `json:"duration" bson:"duration"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
}

// NewRun builds a Run with a fresh ID and CreatedAt set to now.
func NewRun(libraryHash, startTitle string, seed uint64, commandCount int, duration time.Duration) Run {
	return Run{
		ID:           uuid.New(),
		LibraryHash:  libraryHash,
		StartTitle:   startTitle,
		Seed:         seed,
		CommandCount: commandCount,
		Duration:     duration,
		CreatedAt:    time.Now(),
	}
}

// Store is the interface every run-persistence backend implements.
type Store interface {
	// Get retrieves a run by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id uuid.UUID) (Run, error)

	// Set stores or overwrites a run.
	Set(ctx context.Context, run Run) error

	// Delete removes a run, if present.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns the most recent runs, newest first, bounded by limit.
	List(ctx context.Context, limit int) ([]Run, error)

	// Close releases any resources the backend holds.
	Close(ctx context.Context) error
}
