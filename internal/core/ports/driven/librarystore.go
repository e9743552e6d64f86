package driven

import "github.com/bookwise-labs/bookwise-cli/internal/core/domain"

// LibraryStore persists the flat per-document settings record written
// after a successful index build or confirmed reuse. Reading it back on
// session resume avoids re-deriving the identity from raw text.
type LibraryStore interface {
	// Save writes the record, replacing any previous one.
	Save(record domain.LibraryRecord) error

	// Load reads the current record.
	// Returns domain.ErrNotFound when no record has been saved.
	Load() (domain.LibraryRecord, error)
}
