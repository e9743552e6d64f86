package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/bookwise-labs/bookwise-cli/internal/chunker"
	"github.com/bookwise-labs/bookwise-cli/internal/core/domain"
	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driven"
	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driving"
	"github.com/bookwise-labs/bookwise-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService chunks a book and builds its index at most once per
// identity. All entry points go through the same exists-then-build
// check; there is no other build path.
type IngestService struct {
	indexStore driven.IndexStore
	embedder   driven.EmbeddingService
	splitter   *chunker.Splitter
	library    driven.LibraryStore
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	indexStore driven.IndexStore,
	embedder driven.EmbeddingService,
	splitter *chunker.Splitter,
	library driven.LibraryStore,
) *IngestService {
	return &IngestService{
		indexStore: indexStore,
		embedder:   embedder,
		splitter:   splitter,
		library:    library,
	}
}

// Ingest builds or reuses the index for the given book.
func (s *IngestService) Ingest(ctx context.Context, title, author, text string) (driving.IngestResult, error) {
	logger.Section("Ingest")

	identity, err := domain.NewIdentity(title, author)
	if err != nil {
		return driving.IngestResult{}, err
	}
	logger.Debug("Identity: %s", identity.StorageKey())

	var (
		index  driven.Index
		reused bool
	)

	if s.indexStore.Exists(identity) {
		logger.Info("Index already present for %s, reusing", identity.StorageKey())
		index, err = s.indexStore.Open(identity)
		if err != nil {
			return driving.IngestResult{}, fmt.Errorf("open existing index: %w", err)
		}
		reused = true
	} else {
		if strings.TrimSpace(text) == "" {
			return driving.IngestResult{}, fmt.Errorf("%w: book text is empty", domain.ErrInvalidInput)
		}

		passages := s.splitter.Split(text)
		logger.Info("Number of document chunks: %d", len(passages))
		if len(passages) > 0 {
			logger.Debug("Sample chunk: %.80q", passages[0].Text)
		}

		index, err = s.indexStore.Build(ctx, identity, passages, s.embedder)
		if err != nil {
			return driving.IngestResult{}, fmt.Errorf("build index: %w", err)
		}
	}

	count, err := index.Count(ctx)
	if err != nil {
		index.Close()
		return driving.IngestResult{}, fmt.Errorf("count passages: %w", err)
	}

	record := domain.LibraryRecord{
		Book:      title,
		Author:    author,
		BookKey:   identity.TitleKey,
		AuthorKey: identity.AuthorKey,
	}
	if err := s.library.Save(record); err != nil {
		index.Close()
		return driving.IngestResult{}, fmt.Errorf("save library record: %w", err)
	}

	return driving.IngestResult{
		Identity:     identity,
		Index:        index,
		PassageCount: count,
		Reused:       reused,
	}, nil
}
