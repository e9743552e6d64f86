package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/bookwise-labs/bookwise-cli/internal/core/domain"
	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driven"
	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driving"
	"github.com/bookwise-labs/bookwise-cli/internal/logger"
)

var _ driving.SummaryService = (*SummaryService)(nil)

// SummaryService produces a whole-book summary by feeding every stored
// passage to the chat model in a single call. No chunked map-reduce;
// the corpus must fit the model's context window.
type SummaryService struct {
	llm driven.LLMService
}

// NewSummaryService creates a summary service using the given chat model.
func NewSummaryService(llm driven.LLMService) *SummaryService {
	return &SummaryService{llm: llm}
}

// Summarise loads all passages in stored order, joins them with blank
// lines and returns the model's output verbatim. Fails with
// domain.ErrEmptyIndex when the index holds no passages.
func (s *SummaryService) Summarise(ctx context.Context, index driven.Index) (string, error) {
	passages, err := index.All(ctx)
	if err != nil {
		return "", fmt.Errorf("load passages: %w", err)
	}
	if len(passages) == 0 {
		return "", domain.ErrEmptyIndex
	}

	logger.Section("Summarisation")
	logger.Info("Summarising %d passages with %s", len(passages), s.llm.ModelName())

	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Text
	}

	summary, err := s.llm.Summarise(ctx, strings.Join(texts, "\n\n"))
	if err != nil {
		return "", fmt.Errorf("summarise: %w", err)
	}
	return summary, nil
}
