package memory

import (
	"context"
	"sync"

	"github.com/aretw0/replica/pkg/domain"
)

// Store implements ports.RunStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Run
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Run),
	}
}

// Save persists a copy of the run in memory.
func (s *Store) Save(ctx context.Context, run *domain.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[run.ID] = *run
	return nil
}

// Load retrieves a copy of the run so callers can't mutate the stored record.
func (s *Store) Load(ctx context.Context, id string) (*domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.data[id]
	if !ok {
		return nil, domain.ErrRunNotFound
	}
	return &run, nil
}

// Delete removes the run.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns all runs, oldest first.
func (s *Store) List(ctx context.Context) ([]domain.Run, error) {
	s.mu.RLock()
	runs := make([]domain.Run, 0, len(s.data))
	for _, run := range s.data {
		runs = append(runs, run)
	}
	s.mu.RUnlock()

	domain.SortRuns(runs)
	return runs, nil
}
