package memory

import (
	"sync"

	"github.com/bookwise-labs/bookwise-cli/internal/core/domain"
	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driven"
)

// Ensure LibraryStore implements the interface.
var _ driven.LibraryStore = (*LibraryStore)(nil)

// LibraryStore is an in-memory implementation of driven.LibraryStore
// for testing.
type LibraryStore struct {
	mu     sync.RWMutex
	record domain.LibraryRecord
	saved  bool
}

// NewLibraryStore creates a new in-memory library store.
func NewLibraryStore() *LibraryStore {
	return &LibraryStore{}
}

// Save writes the record, replacing any previous one.
func (s *LibraryStore) Save(record domain.LibraryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = record
	s.saved = true
	return nil
}

// Load reads the current record.
func (s *LibraryStore) Load() (domain.LibraryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.saved {
		return domain.LibraryRecord{}, domain.ErrNotFound
	}
	return s.record, nil
}
