package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwise-labs/bookwise-cli/internal/adapters/driven/storage/memory"
	"github.com/bookwise-labs/bookwise-cli/internal/core/domain"
	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driven"
)

// setupTestIndex builds a three-passage index whose vectors give known
// cosine similarities against the query vector {1, 0}:
// "battle" 1.0, "siege" ~0.95, "harvest" 0.0.
func setupTestIndex(t *testing.T) (driven.Index, *mockEmbeddingService) {
	t.Helper()
	embedder := &mockEmbeddingService{
		vectors: map[string][]float32{
			"battle":  {1, 0},
			"siege":   {3, 1},
			"harvest": {0, 1},
			"query":   {1, 0},
		},
	}
	passages := []domain.Passage{
		{ID: "p-0", Position: 0, Offset: 0, Text: "battle"},
		{ID: "p-1", Position: 1, Offset: 30, Text: "siege"},
		{ID: "p-2", Position: 2, Offset: 60, Text: "harvest"},
	}
	store := memory.NewIndexStore()
	identity, err := domain.NewIdentity("Wars", "Anon")
	require.NoError(t, err)
	index, err := store.Build(context.Background(), identity, passages, embedder)
	require.NoError(t, err)
	return index, embedder
}

func TestRetriever_Retrieve_ThresholdFiltersLowScores(t *testing.T) {
	index, embedder := setupTestIndex(t)
	retriever := NewRetriever(embedder)

	results, err := retriever.Retrieve(context.Background(), index, "query", 3, 0.75)

	require.NoError(t, err)
	require.Len(t, results, 2, "passages below the threshold are never padded in")
	assert.Equal(t, "battle", results[0].Text)
	assert.Equal(t, "siege", results[1].Text)
	assert.GreaterOrEqual(t, results[1].Similarity, 0.75)
}

func TestRetriever_Retrieve_CapsAtK(t *testing.T) {
	index, embedder := setupTestIndex(t)
	retriever := NewRetriever(embedder)

	results, err := retriever.Retrieve(context.Background(), index, "query", 1, 0.0)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "battle", results[0].Text)
}

func TestRetriever_Retrieve_OrderedBySimilarityDescending(t *testing.T) {
	index, embedder := setupTestIndex(t)
	retriever := NewRetriever(embedder)

	results, err := retriever.Retrieve(context.Background(), index, "query", 3, 0.0)

	require.NoError(t, err)
	require.Len(t, results, 3)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Similarity, results[i].Similarity)
	}
}

func TestRetriever_Retrieve_NoMatches(t *testing.T) {
	index, embedder := setupTestIndex(t)
	retriever := NewRetriever(embedder)

	results, err := retriever.Retrieve(context.Background(), index, "query", 3, 0.999)

	require.NoError(t, err)
	require.Len(t, results, 1, "only the exact match survives a near-1 threshold")
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-6)
}

func TestRetriever_Retrieve_EmbedError(t *testing.T) {
	index, _ := setupTestIndex(t)
	failing := &mockEmbeddingService{embedErr: errors.New("model not loaded")}
	retriever := NewRetriever(failing)

	_, err := retriever.Retrieve(context.Background(), index, "query", 3, 0.75)

	assert.Error(t, err)
}
