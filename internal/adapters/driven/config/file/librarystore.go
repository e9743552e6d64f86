package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/bookwise-labs/bookwise-cli/internal/core/domain"
	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driven"
)

// Ensure LibraryStore implements the interface.
var _ driven.LibraryStore = (*LibraryStore)(nil)

// LibraryStore persists the per-book settings record as a TOML file.
// The record holds both the verbatim and normalized identity fields so
// a later session can resume the last indexed book without re-deriving
// the identity from raw input.
type LibraryStore struct {
	mu       sync.RWMutex
	filePath string
}

// NewLibraryStore creates a library store rooted at configDir.
// If configDir is empty, defaults to ~/.bookwise/library.toml.
func NewLibraryStore(configDir string) (*LibraryStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".bookwise")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &LibraryStore{
		filePath: filepath.Join(configDir, "library.toml"),
	}, nil
}

// Save writes the record, replacing any previous one.
func (s *LibraryStore) Save(record domain.LibraryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(record)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads the current record.
func (s *LibraryStore) Load() (domain.LibraryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.LibraryRecord{}, domain.ErrNotFound
		}
		return domain.LibraryRecord{}, err
	}

	var record domain.LibraryRecord
	if err := toml.Unmarshal(data, &record); err != nil {
		return domain.LibraryRecord{}, err
	}
	return record, nil
}

// Path returns the library file path.
func (s *LibraryStore) Path() string {
	return s.filePath
}
