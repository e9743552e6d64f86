package services

import (
	"fmt"

	"github.com/bookwise-labs/bookwise-cli/internal/core/domain"
	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driven"
	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Required config keys. Absence of any of these is a configuration
// error surfaced before any index or model work begins.
const (
	keyEmbeddingModel = "llm_embedding_model"
	keyChatModel      = "llm_chat_model"
	keyEnvPath        = "env_path"
	keyChunkSize      = "document_chunking.chunk_size"
	keyChunkOverlap   = "document_chunking.chunk_overlap"
	keyRetrieverK     = "retriever.k"
	keyScoreThreshold = "retriever.score_threshold"
)

// Optional config keys with defaults.
const (
	keyEmbeddingProvider = "llm_embedding_provider"
	keyChatProvider      = "llm_chat_provider"
	keyEmbeddingBaseURL  = "embedding.base_url"
	keyChatBaseURL       = "llm.base_url"
)

// SettingsService loads the typed settings from the config store and
// validates them eagerly.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Load reads and validates the settings record.
func (s *SettingsService) Load() (domain.Settings, error) {
	for _, key := range []string{
		keyEmbeddingModel,
		keyChatModel,
		keyEnvPath,
		keyChunkSize,
		keyChunkOverlap,
		keyRetrieverK,
		keyScoreThreshold,
	} {
		if _, ok := s.configStore.Get(key); !ok {
			return domain.Settings{}, fmt.Errorf("%w: %s (config file %s)",
				domain.ErrConfigMissing, key, s.configStore.Path())
		}
	}

	defaults := domain.DefaultSettings()
	settings := domain.Settings{
		EmbeddingProvider: s.getProvider(keyEmbeddingProvider, defaults.EmbeddingProvider),
		EmbeddingModel:    s.configStore.GetString(keyEmbeddingModel),
		EmbeddingBaseURL:  s.getString(keyEmbeddingBaseURL, defaults.EmbeddingBaseURL),
		ChatProvider:      s.getProvider(keyChatProvider, defaults.ChatProvider),
		ChatModel:         s.configStore.GetString(keyChatModel),
		ChatBaseURL:       s.configStore.GetString(keyChatBaseURL),
		EnvPath:           s.configStore.GetString(keyEnvPath),
		Chunking: domain.ChunkingSettings{
			Size:    s.configStore.GetInt(keyChunkSize),
			Overlap: s.configStore.GetInt(keyChunkOverlap),
		},
		Retriever: domain.RetrieverSettings{
			K:              s.configStore.GetInt(keyRetrieverK),
			ScoreThreshold: s.configStore.GetFloat(keyScoreThreshold),
		},
	}

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

// getString reads a key, falling back to a default when absent.
func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

// getProvider reads a provider key, falling back to a default when absent.
func (s *SettingsService) getProvider(key string, fallback domain.AIProvider) domain.AIProvider {
	v := s.configStore.GetString(key)
	if v == "" {
		return fallback
	}
	return domain.AIProvider(v)
}
