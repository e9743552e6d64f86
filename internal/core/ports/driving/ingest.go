package driving

import (
	"context"

	"github.com/bookwise-labs/bookwise-cli/internal/core/domain"
	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driven"
)

// IngestService builds the searchable index for one book.
type IngestService interface {
	// Ingest derives the document identity from the raw title and
	// author, chunks the text, and builds the index unless one already
	// exists, in which case the existing index is reused untouched.
	// The library record is written on success either way.
	Ingest(ctx context.Context, title, author, text string) (IngestResult, error)
}

// IngestResult reports the outcome of an ingest.
type IngestResult struct {
	// Identity is the derived document identity.
	Identity domain.DocumentIdentity

	// Index is the built or reused index, open for reading.
	Index driven.Index

	// PassageCount is the number of passages in the index.
	PassageCount int

	// Reused is true when an index already existed for the identity
	// and no embedding work was performed.
	Reused bool
}
