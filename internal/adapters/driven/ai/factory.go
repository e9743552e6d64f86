// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/bookwise-labs/bookwise-cli/internal/adapters/driven/embedding"
	ollamaembed "github.com/bookwise-labs/bookwise-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/bookwise-labs/bookwise-cli/internal/adapters/driven/embedding/openai"
	mistralllm "github.com/bookwise-labs/bookwise-cli/internal/adapters/driven/llm/mistral"
	ollamallm "github.com/bookwise-labs/bookwise-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/bookwise-labs/bookwise-cli/internal/adapters/driven/llm/openai"
	"github.com/bookwise-labs/bookwise-cli/internal/core/domain"
	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// Environment variable names for hosted provider API keys.
const (
	envMistralAPIKey = "MISTRAL_API_KEY"
	envOpenAIAPIKey  = "OPENAI_API_KEY"
)

// promptStoreSetter is implemented by LLM adapters that accept
// customisable prompt templates.
type promptStoreSetter interface {
	SetPromptStore(driven.PromptStore)
}

// LoadEnv loads API keys from the .env file named in the settings
// record into the process environment. A missing file is not an error;
// hosted providers will fail later with a clear key-missing message.
func LoadEnv(envPath string) error {
	if envPath == "" {
		return nil
	}
	if err := godotenv.Load(envPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", envPath, err)
	}
	return nil
}

// CreateAndValidateEmbeddingService creates the embedding service named
// by the settings and validates connectivity before any index work
// begins. Failures wrap domain.ErrEmbeddingUnavailable.
func CreateAndValidateEmbeddingService(settings domain.Settings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}

// CreateAndValidateLLMService creates the chat service named by the
// settings and validates connectivity. Failures wrap
// domain.ErrLLMUnavailable.
func CreateAndValidateLLMService(settings domain.Settings, prompts driven.PromptStore) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}

	if setter, ok := svc.(promptStoreSetter); ok && prompts != nil {
		setter.SetPromptStore(prompts)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrLLMUnavailable, err)
	}

	return svc, nil
}

// CreateEmbeddingService creates the appropriate embedding service based on settings.
// Hosted providers are wrapped with a request rate limiter; local
// Ollama is not.
func CreateEmbeddingService(settings domain.Settings) (driven.EmbeddingService, error) {
	switch settings.EmbeddingProvider {
	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: settings.EmbeddingBaseURL,
			Model:   settings.EmbeddingModel,
		}), nil

	case domain.AIProviderOpenAI:
		apiKey, err := requireAPIKey(envOpenAIAPIKey)
		if err != nil {
			return nil, err
		}
		svc, err := openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey: apiKey,
			Model:  settings.EmbeddingModel,
		})
		if err != nil {
			return nil, err
		}
		return embedding.NewRateLimited(svc, embedding.DefaultRateLimit), nil

	case domain.AIProviderMistral:
		return nil, fmt.Errorf("mistral embeddings are not supported, use ollama or openai")

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.EmbeddingProvider)
	}
}

// CreateLLMService creates the appropriate chat service based on settings.
func CreateLLMService(settings domain.Settings) (driven.LLMService, error) {
	switch settings.ChatProvider {
	case domain.AIProviderMistral:
		apiKey, err := requireAPIKey(envMistralAPIKey)
		if err != nil {
			// Older env files name the key MISTRAL_KEY.
			if legacy := os.Getenv("MISTRAL_KEY"); legacy != "" {
				apiKey = legacy
			} else {
				return nil, err
			}
		}
		return mistralllm.NewLLMService(mistralllm.LLMConfig{
			APIKey:  apiKey,
			BaseURL: settings.ChatBaseURL,
			Model:   settings.ChatModel,
		})

	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.ChatBaseURL,
			Model:   settings.ChatModel,
		}), nil

	case domain.AIProviderOpenAI:
		apiKey, err := requireAPIKey(envOpenAIAPIKey)
		if err != nil {
			return nil, err
		}
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  apiKey,
			BaseURL: settings.ChatBaseURL,
			Model:   settings.ChatModel,
		})

	default:
		return nil, fmt.Errorf("unsupported chat provider: %s", settings.ChatProvider)
	}
}

// requireAPIKey reads a provider API key from the environment.
func requireAPIKey(envVar string) (string, error) {
	key := os.Getenv(envVar)
	if key == "" {
		return "", fmt.Errorf("%s is not set, add it to the env file named in the settings record", envVar)
	}
	return key, nil
}
