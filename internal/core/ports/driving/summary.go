package driving

import (
	"context"

	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driven"
)

// SummaryService produces a whole-book summary.
type SummaryService interface {
	// Summarise feeds every stored passage to the chat model in one
	// pass and returns its output verbatim. Fails with
	// domain.ErrEmptyIndex when the index holds zero passages.
	Summarise(ctx context.Context, index driven.Index) (string, error)
}
