package embedding

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEmbedder counts calls.
type stubEmbedder struct {
	embedCalls int
	batchCalls int
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	s.embedCalls++
	return []float32{1, 0}, nil
}

func (s *stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	s.batchCalls++
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

func (s *stubEmbedder) Dimensions() int { return 2 }

func (s *stubEmbedder) ModelName() string { return "stub" }

func (s *stubEmbedder) Ping(_ context.Context) error { return nil }

func (s *stubEmbedder) Close() error { return nil }

func TestRateLimited_Delegates(t *testing.T) {
	stub := &stubEmbedder{}
	limited := NewRateLimited(stub, RateLimitConfig{RequestsPerSecond: 1000, BurstSize: 10})
	ctx := context.Background()

	vec, err := limited.Embed(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, vec)
	assert.Equal(t, 1, stub.embedCalls)

	vecs, err := limited.EmbedBatch(ctx, []string{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, vecs, 2)
	assert.Equal(t, 1, stub.batchCalls)

	assert.Equal(t, 2, limited.Dimensions())
	assert.Equal(t, "stub", limited.ModelName())
}

func TestRateLimited_BlocksWhenBucketEmpty(t *testing.T) {
	stub := &stubEmbedder{}
	limited := NewRateLimited(stub, RateLimitConfig{RequestsPerSecond: 20, BurstSize: 1})
	ctx := context.Background()

	// First call consumes the only token; second must wait ~50ms.
	start := time.Now()
	_, err := limited.Embed(ctx, "one")
	require.NoError(t, err)
	_, err = limited.Embed(ctx, "two")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestRateLimited_ContextCancellation(t *testing.T) {
	stub := &stubEmbedder{}
	limited := NewRateLimited(stub, RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := limited.Embed(ctx, "one")
	require.NoError(t, err)

	_, err = limited.Embed(ctx, "two")
	assert.Error(t, err)
}
