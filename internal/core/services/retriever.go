package services

import (
	"context"
	"fmt"

	"github.com/bookwise-labs/bookwise-cli/internal/core/domain"
	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driven"
	"github.com/bookwise-labs/bookwise-cli/internal/logger"
)

// Retriever turns a natural-language query into a bounded set of
// relevant passages. Read-only; the policy is rank all passages by
// similarity, filter by the score threshold, then cap at k. Results
// below the threshold are never padded in.
type Retriever struct {
	embedder driven.EmbeddingService
}

// NewRetriever creates a retriever using the given embedding service.
// It must be the same service the index was built with.
func NewRetriever(embedder driven.EmbeddingService) *Retriever {
	return &Retriever{embedder: embedder}
}

// Retrieve returns up to k passages with similarity >= scoreThreshold,
// ordered by similarity descending. May be empty.
func (r *Retriever) Retrieve(
	ctx context.Context,
	index driven.Index,
	query string,
	k int,
	scoreThreshold float64,
) ([]domain.RetrievedPassage, error) {
	logger.Section("Retrieval")
	logger.Debug("Query: %q, k=%d, threshold=%.2f", query, k, scoreThreshold)

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions", len(vector))

	total, err := index.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count passages: %w", err)
	}

	// Rank the whole corpus so the threshold filter sees every
	// candidate, then cut off client-side.
	candidates, err := index.Search(ctx, vector, total)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	logger.Debug("Ranked candidates: %d", len(candidates))

	results := make([]domain.RetrievedPassage, 0, k)
	for _, c := range candidates {
		if c.Similarity < scoreThreshold {
			break // candidates are ranked descending
		}
		results = append(results, c)
		if len(results) == k {
			break
		}
	}

	logger.Info("Retrieved %d passages above threshold", len(results))
	return results, nil
}
