// Package chunker provides a fixed-size overlapping text splitter.
package chunker

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/bookwise-labs/bookwise-cli/internal/core/domain"
)

// Splitter slides a fixed-size window over book text, producing
// overlapping passages. Splitting is deterministic: the same text and
// configuration always yield the same passage sequence.
type Splitter struct {
	size    int
	overlap int
}

// New creates a splitter for the given passage size and overlap, both
// in runes. Returns domain.ErrInvalidConfig when size is not positive
// or overlap is negative or not smaller than size.
func New(size, overlap int) (*Splitter, error) {
	cfg := domain.ChunkingSettings{Size: size, Overlap: overlap}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Splitter{size: size, overlap: overlap}, nil
}

// MustNew is New for configurations known valid at compile time.
// It panics on invalid input and is intended for tests.
func MustNew(size, overlap int) *Splitter {
	s, err := New(size, overlap)
	if err != nil {
		panic(fmt.Sprintf("chunker: %v", err))
	}
	return s
}

// Size returns the configured passage size in runes.
func (s *Splitter) Size() int { return s.size }

// Overlap returns the configured overlap in runes.
func (s *Splitter) Overlap() int { return s.overlap }

// Split produces the passage sequence for text. The window advances by
// size-overlap runes per step; the final passage may be shorter than
// size and covers the remainder. Every rune of the input appears in at
// least one passage. Empty text produces no passages.
func (s *Splitter) Split(text string) []domain.Passage {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	total := len(runes)
	step := s.size - s.overlap

	passages := make([]domain.Passage, 0, total/step+1)
	position := 0

	for start := 0; start < total; start += step {
		end := start + s.size
		if end > total {
			end = total
		}

		passages = append(passages, domain.Passage{
			ID:       uuid.New().String(),
			Position: position,
			Offset:   start,
			Text:     string(runes[start:end]),
		})
		position++

		if end == total {
			break
		}
	}

	return passages
}
