// Package embedding provides decorators shared by the embedding
// service adapters.
package embedding

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driven"
)

// Ensure RateLimited implements the interface.
var _ driven.EmbeddingService = (*RateLimited)(nil)

// RateLimitConfig holds rate limiting configuration for an embedding API.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimit is a conservative default for hosted embedding APIs.
// Local Ollama instances need no limiting and should not be wrapped.
var DefaultRateLimit = RateLimitConfig{RequestsPerSecond: 5.0, BurstSize: 10}

// RateLimited wraps an embedding service with a token bucket so that
// bulk index builds do not exceed a provider's request quota. Each
// Embed call consumes one token; EmbedBatch consumes one token per
// batch request, not per text.
type RateLimited struct {
	inner   driven.EmbeddingService
	limiter *rate.Limiter
}

// NewRateLimited wraps the service with the given rate limit config.
func NewRateLimited(inner driven.EmbeddingService, cfg RateLimitConfig) *RateLimited {
	if cfg.RequestsPerSecond <= 0 {
		cfg = DefaultRateLimit
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 1
	}
	return &RateLimited{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Embed waits for a token, then delegates.
func (s *RateLimited) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.Embed(ctx, text)
}

// EmbedBatch waits for a token, then delegates.
func (s *RateLimited) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.EmbedBatch(ctx, texts)
}

// Dimensions returns the embedding vector size.
func (s *RateLimited) Dimensions() int {
	return s.inner.Dimensions()
}

// ModelName returns the name of the embedding model being used.
func (s *RateLimited) ModelName() string {
	return s.inner.ModelName()
}

// Ping delegates without consuming a token.
func (s *RateLimited) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

// Close releases resources.
func (s *RateLimited) Close() error {
	return s.inner.Close()
}
