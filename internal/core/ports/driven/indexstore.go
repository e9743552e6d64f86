package driven

import (
	"context"

	"github.com/bookwise-labs/bookwise-cli/internal/core/domain"
)

// IndexStore manages one durable passage index per document identity.
// An index is created at most once per identity and is read-only
// thereafter; a re-index is a full rebuild under a fresh identity check.
//
// The build-once policy is cooperative: callers must check Exists before
// Build and skip building when true. Builds for different identities may
// run concurrently; concurrent builds for the same identity are a
// caller-side race the store does not resolve.
type IndexStore interface {
	// Exists reports whether a built index is present for the identity.
	// The check is by storage-location presence, not content validation.
	Exists(identity domain.DocumentIdentity) bool

	// Build embeds every passage and writes the index atomically as a
	// unit. When any embedding call fails the returned error wraps
	// domain.ErrBuildFailed and no partial index is left behind, so
	// Build is safe to re-invoke. Building an identity that already
	// has an index returns domain.ErrAlreadyExists.
	Build(
		ctx context.Context,
		identity domain.DocumentIdentity,
		passages []domain.Passage,
		embedder EmbeddingService,
	) (Index, error)

	// Open attaches to an existing index for read access.
	// Returns domain.ErrNotFound when Exists is false.
	Open(identity domain.DocumentIdentity) (Index, error)
}

// Index is a read-only view over the embedded passages of one document.
// The underlying nearest-neighbour ranking is an opaque oracle; callers
// apply threshold and cut-off policy on top of it.
type Index interface {
	// Search returns up to k passages ranked by cosine similarity to
	// the query vector, descending. Ties are broken by ascending
	// passage position so repeated calls rank identically.
	Search(ctx context.Context, query []float32, k int) ([]domain.RetrievedPassage, error)

	// All returns every stored passage in position order.
	All(ctx context.Context) ([]domain.Passage, error)

	// Count returns the number of stored passages.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
