package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwise-labs/bookwise-cli/internal/adapters/driven/storage/memory"
	"github.com/bookwise-labs/bookwise-cli/internal/chunker"
	"github.com/bookwise-labs/bookwise-cli/internal/core/domain"
)

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
// It maps known texts to fixed vectors and counts calls so tests can
// assert that the build-once policy skips embedding entirely.
type mockEmbeddingService struct {
	vectors    map[string][]float32
	fallback   []float32
	embedErr   error
	embedCalls int
	batchCalls int
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	m.embedCalls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vectorFor(text), nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.batchCalls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	result := make([][]float32, len(texts))
	for i, text := range texts {
		result[i] = m.vectorFor(text)
	}
	return result, nil
}

func (m *mockEmbeddingService) vectorFor(text string) []float32 {
	if v, ok := m.vectors[text]; ok {
		return v
	}
	if m.fallback != nil {
		return m.fallback
	}
	return []float32{1, 0}
}

func (m *mockEmbeddingService) Dimensions() int { return 2 }

func (m *mockEmbeddingService) ModelName() string { return "mock-embed" }

func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }

func (m *mockEmbeddingService) Close() error { return nil }

// --- Tests ---

func newTestIngest(store *memory.IndexStore, embedder *mockEmbeddingService) *IngestService {
	return NewIngestService(store, embedder, chunker.MustNew(40, 10), memory.NewLibraryStore())
}

func TestIngestService_Ingest_BuildsIndex(t *testing.T) {
	store := memory.NewIndexStore()
	embedder := &mockEmbeddingService{}
	library := memory.NewLibraryStore()
	service := NewIngestService(store, embedder, chunker.MustNew(40, 10), library)
	ctx := context.Background()

	text := "The quick brown fox jumps over the lazy dog, again and again, until dusk."
	result, err := service.Ingest(ctx, "A History of Rome!", "Mary Beard", text)

	require.NoError(t, err)
	assert.False(t, result.Reused)
	assert.Equal(t, "ahistoryofrome", result.Identity.TitleKey)
	assert.Equal(t, "marybeard", result.Identity.AuthorKey)
	assert.Positive(t, result.PassageCount)
	assert.Equal(t, 1, embedder.batchCalls)
	assert.True(t, store.Exists(result.Identity))

	record, err := library.Load()
	require.NoError(t, err)
	assert.Equal(t, "A History of Rome!", record.Book)
	assert.Equal(t, "Mary Beard", record.Author)
	assert.Equal(t, "ahistoryofrome", record.BookKey)
	assert.Equal(t, "marybeard", record.AuthorKey)
}

func TestIngestService_Ingest_ReusesExistingIndex(t *testing.T) {
	store := memory.NewIndexStore()
	embedder := &mockEmbeddingService{}
	service := newTestIngest(store, embedder)
	ctx := context.Background()

	text := "Some chapters on the decline and fall of an empire, told at length."
	first, err := service.Ingest(ctx, "Decline and Fall", "Gibbon", text)
	require.NoError(t, err)
	require.False(t, first.Reused)

	second, err := service.Ingest(ctx, "Decline and Fall", "Gibbon", text)

	require.NoError(t, err)
	assert.True(t, second.Reused)
	assert.Equal(t, first.PassageCount, second.PassageCount)
	assert.Equal(t, 1, embedder.batchCalls, "reuse must not embed")
}

func TestIngestService_Ingest_IdentityIgnoresCaseAndPunctuation(t *testing.T) {
	store := memory.NewIndexStore()
	embedder := &mockEmbeddingService{}
	service := newTestIngest(store, embedder)
	ctx := context.Background()

	text := "A short book about a long war, retold for modern readers everywhere."
	first, err := service.Ingest(ctx, "The Iliad", "Homer", text)
	require.NoError(t, err)

	second, err := service.Ingest(ctx, "  the ILIAD! ", "H.o.m.e.r", text)

	require.NoError(t, err)
	assert.True(t, second.Reused)
	assert.Equal(t, first.Identity, second.Identity)
	assert.Equal(t, 1, embedder.batchCalls)
}

func TestIngestService_Ingest_EmptyText(t *testing.T) {
	service := newTestIngest(memory.NewIndexStore(), &mockEmbeddingService{})

	_, err := service.Ingest(context.Background(), "Empty", "Nobody", "   \n\t ")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngestService_Ingest_BlankIdentity(t *testing.T) {
	service := newTestIngest(memory.NewIndexStore(), &mockEmbeddingService{})

	_, err := service.Ingest(context.Background(), "!!!", "???", "some text")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngestService_Ingest_EmbedFailureLeavesNoIndex(t *testing.T) {
	store := memory.NewIndexStore()
	embedder := &mockEmbeddingService{embedErr: errors.New("connection refused")}
	service := newTestIngest(store, embedder)
	ctx := context.Background()

	_, err := service.Ingest(ctx, "Flaky", "Author", "enough text to produce at least one passage here")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildFailed)
	identity, idErr := domain.NewIdentity("Flaky", "Author")
	require.NoError(t, idErr)
	assert.False(t, store.Exists(identity), "failed build must leave nothing behind")
}
