package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bookwise-labs/bookwise-cli/internal/core/domain"
	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driven"
)

// Ensure the interfaces are implemented.
var (
	_ driven.IndexStore = (*IndexStore)(nil)
	_ driven.Index      = (*Index)(nil)
)

// IndexStore is an in-memory implementation of driven.IndexStore for
// testing. Indexes live for the lifetime of the store.
type IndexStore struct {
	mu      sync.RWMutex
	indexes map[string]*Index
}

// NewIndexStore creates a new in-memory index store.
func NewIndexStore() *IndexStore {
	return &IndexStore{
		indexes: make(map[string]*Index),
	}
}

// Exists reports whether a built index is present for the identity.
func (s *IndexStore) Exists(identity domain.DocumentIdentity) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.indexes[identity.StorageKey()]
	return ok
}

// Build embeds every passage and stores the index as a unit. Nothing is
// stored when any embedding call fails.
func (s *IndexStore) Build(
	ctx context.Context,
	identity domain.DocumentIdentity,
	passages []domain.Passage,
	embedder driven.EmbeddingService,
) (driven.Index, error) {
	if s.Exists(identity) {
		return nil, domain.ErrAlreadyExists
	}

	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Text
	}
	vectors, err := embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: embed passages: %v", domain.ErrBuildFailed, err)
	}
	if len(vectors) != len(passages) {
		return nil, fmt.Errorf("%w: embedder returned %d vectors for %d passages",
			domain.ErrBuildFailed, len(vectors), len(passages))
	}

	embedded := make([]domain.EmbeddedPassage, len(passages))
	for i, p := range passages {
		embedded[i] = domain.EmbeddedPassage{Passage: p, Embedding: vectors[i]}
	}
	sort.Slice(embedded, func(i, j int) bool {
		return embedded[i].Position < embedded[j].Position
	})

	idx := &Index{passages: embedded}
	s.mu.Lock()
	s.indexes[identity.StorageKey()] = idx
	s.mu.Unlock()
	return idx, nil
}

// Open attaches to an existing index.
func (s *IndexStore) Open(identity domain.DocumentIdentity) (driven.Index, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.indexes[identity.StorageKey()]
	if !ok {
		return nil, fmt.Errorf("%w: no index for %s", domain.ErrNotFound, identity.StorageKey())
	}
	return idx, nil
}

// Index is an in-memory read-only passage index.
type Index struct {
	passages []domain.EmbeddedPassage
}

// Search ranks all passages by cosine similarity to the query vector
// and returns the top k, ties broken by ascending position.
func (i *Index) Search(_ context.Context, query []float32, k int) ([]domain.RetrievedPassage, error) {
	ranked := make([]domain.RetrievedPassage, len(i.passages))
	for j, p := range i.passages {
		ranked[j] = domain.RetrievedPassage{
			Passage:    p.Passage,
			Similarity: domain.Cosine(query, p.Embedding),
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].Similarity != ranked[b].Similarity {
			return ranked[a].Similarity > ranked[b].Similarity
		}
		return ranked[a].Position < ranked[b].Position
	})
	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked, nil
}

// All returns every stored passage in position order.
func (i *Index) All(_ context.Context) ([]domain.Passage, error) {
	out := make([]domain.Passage, len(i.passages))
	for j, p := range i.passages {
		out[j] = p.Passage
	}
	return out, nil
}

// Count returns the number of stored passages.
func (i *Index) Count(_ context.Context) (int, error) {
	return len(i.passages), nil
}

// Close releases resources (no-op for memory index).
func (i *Index) Close() error {
	return nil
}
