package domain

import "fmt"

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or chat.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderMistral is the Mistral cloud API.
	AIProviderMistral AIProvider = "mistral"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderMistral:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderMistral
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderMistral:
		return "Mistral (cloud)"
	default:
		return unknownDescription
	}
}

// ChunkingSettings controls how book text is split into passages.
type ChunkingSettings struct {
	// Size is the passage length in runes.
	Size int

	// Overlap is the number of runes shared with the previous passage.
	// Must be non-negative and strictly smaller than Size.
	Overlap int
}

// Validate checks the chunking invariants.
func (c ChunkingSettings) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: chunk_size must be positive, got %d", ErrInvalidConfig, c.Size)
	}
	if c.Overlap < 0 {
		return fmt.Errorf("%w: chunk_overlap must be non-negative, got %d", ErrInvalidConfig, c.Overlap)
	}
	if c.Overlap >= c.Size {
		return fmt.Errorf("%w: chunk_overlap %d must be smaller than chunk_size %d",
			ErrInvalidConfig, c.Overlap, c.Size)
	}
	return nil
}

// RetrieverSettings controls similarity search behaviour.
type RetrieverSettings struct {
	// K is the maximum number of passages returned per query.
	K int

	// ScoreThreshold is the minimum cosine similarity, in [0, 1],
	// a passage must reach to be included in a result.
	ScoreThreshold float64
}

// Validate checks the retriever invariants.
func (r RetrieverSettings) Validate() error {
	if r.K <= 0 {
		return fmt.Errorf("%w: retriever.k must be positive, got %d", ErrInvalidConfig, r.K)
	}
	if r.ScoreThreshold < 0 || r.ScoreThreshold > 1 {
		return fmt.Errorf("%w: retriever.score_threshold must be in [0, 1], got %g",
			ErrInvalidConfig, r.ScoreThreshold)
	}
	return nil
}

// Settings is the typed application configuration, validated eagerly at
// load time rather than failing lazily at first use.
type Settings struct {
	// EmbeddingProvider is the embedding service provider.
	EmbeddingProvider AIProvider

	// EmbeddingModel is the embedding model name. The same model must
	// serve both index builds and query embedding.
	EmbeddingModel string

	// EmbeddingBaseURL is the embedding API endpoint (for Ollama).
	EmbeddingBaseURL string

	// ChatProvider is the chat model provider.
	ChatProvider AIProvider

	// ChatModel is the chat model name.
	ChatModel string

	// ChatBaseURL is the chat API endpoint (for Ollama).
	ChatBaseURL string

	// EnvPath is the path to the .env file holding API keys.
	EnvPath string

	// Chunking holds the passage splitting parameters.
	Chunking ChunkingSettings

	// Retriever holds the similarity search parameters.
	Retriever RetrieverSettings
}

// Validate checks all cross-field invariants. Missing required keys are
// detected earlier, at load time, by the settings service.
func (s Settings) Validate() error {
	if !s.EmbeddingProvider.IsValid() {
		return fmt.Errorf("%w: unknown embedding provider %q", ErrInvalidConfig, s.EmbeddingProvider)
	}
	if !s.ChatProvider.IsValid() {
		return fmt.Errorf("%w: unknown chat provider %q", ErrInvalidConfig, s.ChatProvider)
	}
	if err := s.Chunking.Validate(); err != nil {
		return err
	}
	return s.Retriever.Validate()
}

// DefaultSettings returns the defaults for the optional provider keys.
// The required keys of the settings record have no defaults.
func DefaultSettings() Settings {
	return Settings{
		EmbeddingProvider: AIProviderOllama,
		EmbeddingBaseURL:  "http://localhost:11434",
		ChatProvider:      AIProviderMistral,
	}
}
