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

func buildIndex(t *testing.T, texts ...string) driven.Index {
	t.Helper()
	passages := make([]domain.Passage, len(texts))
	for i, text := range texts {
		passages[i] = domain.Passage{ID: "p", Position: i, Text: text}
	}
	identity, err := domain.NewIdentity("Chronicle", "Anon")
	require.NoError(t, err)
	index, err := memory.NewIndexStore().Build(
		context.Background(), identity, passages, &mockEmbeddingService{})
	require.NoError(t, err)
	return index
}

func TestSummaryService_Summarise(t *testing.T) {
	llm := &mockLLMService{summary: "A concise summary."}
	service := NewSummaryService(llm)
	index := buildIndex(t, "Chapter one.", "Chapter two.", "Chapter three.")

	summary, err := service.Summarise(context.Background(), index)

	require.NoError(t, err)
	assert.Equal(t, "A concise summary.", summary)
	assert.Equal(t, "Chapter one.\n\nChapter two.\n\nChapter three.", llm.summariseInput)
}

func TestSummaryService_Summarise_EmptyIndex(t *testing.T) {
	service := NewSummaryService(&mockLLMService{})
	index := buildIndex(t)

	_, err := service.Summarise(context.Background(), index)

	assert.ErrorIs(t, err, domain.ErrEmptyIndex)
}

func TestSummaryService_Summarise_LLMError(t *testing.T) {
	llm := &mockLLMService{summariseErr: errors.New("model offline")}
	service := NewSummaryService(llm)
	index := buildIndex(t, "Some text.")

	_, err := service.Summarise(context.Background(), index)

	assert.Error(t, err)
}
