// Package cli provides the Cobra-based command line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bookwise-labs/bookwise-cli/internal/adapters/driven/ai"
	"github.com/bookwise-labs/bookwise-cli/internal/adapters/driven/config/file"
	"github.com/bookwise-labs/bookwise-cli/internal/adapters/driven/storage/sqlite"
	"github.com/bookwise-labs/bookwise-cli/internal/core/domain"
	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driven"
	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driving"
	"github.com/bookwise-labs/bookwise-cli/internal/core/services"
	"github.com/bookwise-labs/bookwise-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var verboseFlag bool

// Driven adapters and services, wired lazily on first use. Tests
// inject fakes by setting these before executing a command.
var (
	configStore  driven.ConfigStore
	promptStore  driven.PromptStore
	libraryStore driven.LibraryStore
	indexStore   driven.IndexStore
	embedder     driven.EmbeddingService
	llm          driven.LLMService

	settingsService driving.SettingsService
	ingestService   driving.IngestService
	askService      driving.AskService
	summaryService  driving.SummaryService

	appSettings *domain.Settings
)

var rootCmd = &cobra.Command{
	Use:   "bookwise",
	Short: "Index a book and ask grounded questions about it",
	Long: `Bookwise turns a plain-text book into a local vector index and
answers questions grounded in retrieved passages, or produces a
whole-book summary. Embeddings run against Ollama or OpenAI; answers
come from Mistral, Ollama or OpenAI chat models.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadSettings initialises the config store and loads the validated
// settings record. Idempotent; later calls return the cached record.
func loadSettings() (domain.Settings, error) {
	if appSettings != nil {
		return *appSettings, nil
	}

	if configStore == nil {
		store, err := file.NewConfigStore("")
		if err != nil {
			return domain.Settings{}, fmt.Errorf("open config store: %w", err)
		}
		configStore = store
	}
	if settingsService == nil {
		settingsService = services.NewSettingsService(configStore)
	}

	settings, err := settingsService.Load()
	if err != nil {
		return domain.Settings{}, err
	}
	appSettings = &settings
	return settings, nil
}

// ensureStores initialises the file-backed stores that need no AI
// connectivity.
func ensureStores() error {
	if libraryStore == nil {
		store, err := file.NewLibraryStore("")
		if err != nil {
			return fmt.Errorf("open library store: %w", err)
		}
		libraryStore = store
	}
	if promptStore == nil {
		store, err := file.NewPromptStore("")
		if err != nil {
			return fmt.Errorf("open prompt store: %w", err)
		}
		promptStore = store
	}
	if indexStore == nil {
		store, err := sqlite.NewIndexStore("")
		if err != nil {
			return fmt.Errorf("open index store: %w", err)
		}
		indexStore = store
	}
	return nil
}

// ensureEmbedder creates and pings the embedding service.
func ensureEmbedder(settings domain.Settings) error {
	if embedder != nil {
		return nil
	}
	if err := ai.LoadEnv(settings.EnvPath); err != nil {
		return err
	}
	svc, err := ai.CreateAndValidateEmbeddingService(settings)
	if err != nil {
		return err
	}
	embedder = svc
	return nil
}

// ensureLLM creates and pings the chat service.
func ensureLLM(settings domain.Settings) error {
	if llm != nil {
		return nil
	}
	if err := ai.LoadEnv(settings.EnvPath); err != nil {
		return err
	}
	svc, err := ai.CreateAndValidateLLMService(settings, promptStore)
	if err != nil {
		return err
	}
	llm = svc
	return nil
}

// resolveIdentity derives the document identity from flags, falling
// back to the last indexed book in the library record.
func resolveIdentity(book, author string) (domain.DocumentIdentity, error) {
	if book != "" || author != "" {
		return domain.NewIdentity(book, author)
	}

	record, err := libraryStore.Load()
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DocumentIdentity{}, errors.New(
				"no book indexed yet, run 'bookwise index' first or pass --book and --author")
		}
		return domain.DocumentIdentity{}, fmt.Errorf("load library record: %w", err)
	}
	return record.Identity(), nil
}

// openIndex opens the index for the identity, with a friendly error
// when it has not been built.
func openIndex(identity domain.DocumentIdentity) (driven.Index, error) {
	index, err := indexStore.Open(identity)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no index found for %q, run 'bookwise index' first", identity.StorageKey())
		}
		return nil, err
	}
	return index, nil
}
