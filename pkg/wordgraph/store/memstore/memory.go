// Package memstore keeps runs in memory.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/wordgraph/pkg/wordgraph/internalerr"
	"github.com/cognicore/wordgraph/pkg/wordgraph/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu   sync.RWMutex
	runs map[string]store.Run
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{runs: make(map[string]store.Run)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveRun inserts or replaces a run.
func (s *Store) SaveRun(ctx context.Context, r store.Run) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r = store.Prepare(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = store.Clone(r)
	return r.ID, nil
}

// GetRun returns a copy of the stored run.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	if err := ctx.Err(); err != nil {
		return store.Run{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.runs[id]
	if !ok {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return store.Clone(r), nil
}

// ListRuns returns runs newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.runs))
	for id := range s.runs {
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	out := make([]store.Run, len(ids))
	for i, id := range ids {
		out[i] = store.Clone(s.runs[id])
	}
	return out, nil
}

// DeleteRun removes a run.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[id]; !ok {
		return fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	delete(s.runs, id)
	return nil
}
