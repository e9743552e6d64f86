package cli

import (
	"context"

	"github.com/bookwise-labs/bookwise-cli/internal/adapters/driven/storage/memory"
	"github.com/bookwise-labs/bookwise-cli/internal/core/domain"
	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driven"
	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driving"
)

// --- Mock implementations ---

type mockIngestService struct {
	result    driving.IngestResult
	err       error
	gotTitle  string
	gotAuthor string
	gotText   string
}

func (m *mockIngestService) Ingest(_ context.Context, title, author, text string) (driving.IngestResult, error) {
	m.gotTitle = title
	m.gotAuthor = author
	m.gotText = text
	if m.err != nil {
		return driving.IngestResult{}, m.err
	}
	return m.result, nil
}

type mockAskService struct {
	answer    string
	err       error
	questions []string
}

func (m *mockAskService) Ask(_ context.Context, _ *domain.SessionState, _ driven.Index, question string) (string, error) {
	m.questions = append(m.questions, question)
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

type mockSummaryService struct {
	summary string
	err     error
}

func (m *mockSummaryService) Summarise(_ context.Context, _ driven.Index) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.summary, nil
}

type mockCLIPromptStore struct{}

func (m *mockCLIPromptStore) Load(string) (string, error) { return "", nil }
func (m *mockCLIPromptStore) Reload()                     {}

type staticEmbedder struct{}

func (s *staticEmbedder) Embed(context.Context, string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func (s *staticEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0}
	}
	return vectors, nil
}

func (s *staticEmbedder) Dimensions() int            { return 2 }
func (s *staticEmbedder) ModelName() string          { return "static" }
func (s *staticEmbedder) Ping(context.Context) error { return nil }
func (s *staticEmbedder) Close() error               { return nil }

// testIdentityRecord is the book every test fixture indexes.
var testIdentityRecord = domain.LibraryRecord{
	Book:      "A History of Rome",
	Author:    "Mary Beard",
	BookKey:   "ahistoryofrome",
	AuthorKey: "marybeard",
}

// setupTestServices swaps every injectable for an in-memory fake and
// returns a cleanup that restores the originals.
func setupTestServices() func() {
	oldConfigStore := configStore
	oldPromptStore := promptStore
	oldLibraryStore := libraryStore
	oldIndexStore := indexStore
	oldEmbedder := embedder
	oldLLM := llm
	oldSettingsService := settingsService
	oldIngestService := ingestService
	oldAskService := askService
	oldSummaryService := summaryService
	oldAppSettings := appSettings

	settings := domain.DefaultSettings()
	settings.Chunking = domain.ChunkingSettings{Size: 400, Overlap: 100}
	settings.Retriever = domain.RetrieverSettings{K: 3, ScoreThreshold: 0.75}
	appSettings = &settings

	configStore = memory.NewConfigStore()
	promptStore = &mockCLIPromptStore{}

	library := memory.NewLibraryStore()
	_ = library.Save(testIdentityRecord)
	libraryStore = library

	store := memory.NewIndexStore()
	index, _ := store.Build(
		context.Background(),
		testIdentityRecord.Identity(),
		[]domain.Passage{
			{ID: "p0", Position: 0, Offset: 0, Text: "Rome was founded on the Tiber."},
			{ID: "p1", Position: 1, Offset: 30, Text: "The republic fell to the empire."},
		},
		&staticEmbedder{},
	)
	indexStore = store

	ingestService = &mockIngestService{result: driving.IngestResult{PassageCount: 2, Index: index}}
	askService = &mockAskService{answer: "Rome was founded in 753 BC."}
	summaryService = &mockSummaryService{summary: "A sweeping history of Rome."}

	return func() {
		configStore = oldConfigStore
		promptStore = oldPromptStore
		libraryStore = oldLibraryStore
		indexStore = oldIndexStore
		embedder = oldEmbedder
		llm = oldLLM
		settingsService = oldSettingsService
		ingestService = oldIngestService
		askService = oldAskService
		summaryService = oldSummaryService
		appSettings = oldAppSettings
	}
}
