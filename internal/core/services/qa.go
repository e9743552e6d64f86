package services

import (
	"context"
	"fmt"

	"github.com/bookwise-labs/bookwise-cli/internal/core/domain"
	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driven"
	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driving"
	"github.com/bookwise-labs/bookwise-cli/internal/logger"
)

var _ driving.AskService = (*QAService)(nil)

// defaultQASystem frames every question answering call.
const defaultQASystem = "You are a helpful assistant who is expert at translating " +
	"history books into understandable language."

// QAService answers questions grounded in the active document's index.
// Each call is a fresh retrieve, augment, chat cycle; previous turns do
// not influence retrieval or generation.
type QAService struct {
	retriever   *Retriever
	augmenter   *Augmenter
	llm         driven.LLMService
	promptStore driven.PromptStore
	settings    domain.RetrieverSettings
}

// NewQAService creates a question answering service.
func NewQAService(
	retriever *Retriever,
	augmenter *Augmenter,
	llm driven.LLMService,
	promptStore driven.PromptStore,
	settings domain.RetrieverSettings,
) *QAService {
	return &QAService{
		retriever:   retriever,
		augmenter:   augmenter,
		llm:         llm,
		promptStore: promptStore,
		settings:    settings,
	}
}

// Ask answers one question against the given index. Retrieval failures
// and chat failures both abort the turn; a failed turn is never
// appended to the conversation.
func (s *QAService) Ask(
	ctx context.Context,
	session *domain.SessionState,
	index driven.Index,
	question string,
) (string, error) {
	if question == "" {
		return "", fmt.Errorf("%w: question must not be empty", domain.ErrInvalidInput)
	}

	passages, err := s.retriever.Retrieve(ctx, index, question, s.settings.K, s.settings.ScoreThreshold)
	if err != nil {
		return "", fmt.Errorf("retrieve passages: %w", err)
	}

	prompt := s.augmenter.Augment(question, passages)

	system := defaultQASystem
	if s.promptStore != nil {
		if p, err := s.promptStore.Load(driven.PromptQASystem); err == nil && p != "" {
			system = p
		}
	}

	logger.Section("Question Answering")
	logger.Debug("Model: %s, grounded on %d passages", s.llm.ModelName(), len(passages))

	answer, err := s.llm.Chat(ctx, []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: system},
		{Role: driven.RoleUser, Content: prompt},
	}, driven.ChatOptions{Temperature: 0})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	session.Conversation.Append(question, answer)
	return answer, nil
}
