// Package store persists the history of compression runs.
package store

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Store is the interface for saving and querying runs.
type Store interface {
	Close() error

	// SaveRun stores r and returns its ID, assigning one when r.ID is empty.
	SaveRun(ctx context.Context, r Run) (string, error)
	// GetRun returns internalerr.ErrNotFound for an unknown ID.
	GetRun(ctx context.Context, id string) (Run, error)
	// ListRuns returns the newest runs first; limit <= 0 returns all.
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	DeleteRun(ctx context.Context, id string) error
}

// Run is one stored compression.
type Run struct {
	ID         string
	CreatedAt  time.Time
	Scheme     string
	MaxResults int
	MinLength  int
	Sentences  []string // tagged form, one sentence per entry
	Nodes      int
	Edges      int
	Candidates []Candidate
}

// Candidate is a stored summary path.
type Candidate struct {
	Path []string
	Cost float64
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewID returns a fresh ULID for t. IDs from one process sort in creation
// order.
func NewID(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// Prepare fills in the ID and creation time when r lacks them.
func Prepare(r Run) Run {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if r.ID == "" {
		r.ID = NewID(r.CreatedAt)
	}
	return r
}

// Clone returns a deep copy of r.
func Clone(r Run) Run {
	out := r
	out.Sentences = append([]string(nil), r.Sentences...)
	out.Candidates = make([]Candidate, len(r.Candidates))
	for i, c := range r.Candidates {
		out.Candidates[i] = Candidate{Path: append([]string(nil), c.Path...), Cost: c.Cost}
	}
	return out
}
