// Package memory implements ports.RunStore in memory.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mfeilner/unimach/pkg/domain"
)

// Store keeps run records in a map. Safe for concurrent use.
type Store struct {
	data map[string]*domain.RunRecord
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.RunRecord),
	}
}

// Save persists the record in memory.
func (s *Store) Save(ctx context.Context, record *domain.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[record.ID] = clone(record)
	return nil
}

// Load retrieves a record from memory.
func (s *Store) Load(ctx context.Context, id string) (*domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.data[id]
	if !ok {
		return nil, domain.ErrRunNotFound
	}
	return clone(record), nil
}

// Delete removes a record.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns all records, most recently started first.
func (s *Store) List(ctx context.Context) ([]*domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*domain.RunRecord, 0, len(s.data))
	for _, record := range s.data {
		records = append(records, clone(record))
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].StartedAt.After(records[j].StartedAt)
	})
	return records, nil
}

// clone copies a record so callers cannot mutate stored state through
// shared pointers or the tape slice.
func clone(record *domain.RunRecord) *domain.RunRecord {
	copied := *record
	if record.FinalTape != nil {
		copied.FinalTape = make([]domain.Symbol, len(record.FinalTape))
		copy(copied.FinalTape, record.FinalTape)
	}
	return &copied
}
