package driving

import (
	"context"

	"github.com/bookwise-labs/bookwise-cli/internal/core/domain"
	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driven"
)

// AskService answers questions grounded in retrieved passages.
type AskService interface {
	// Ask retrieves passages relevant to the question, composes the
	// grounding prompt, calls the chat model, and appends the turn to
	// the session's conversation before returning the answer.
	Ask(ctx context.Context, session *domain.SessionState, index driven.Index, question string) (string, error)
}
