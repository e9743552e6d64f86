package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// The same service instance must serve both index builds and query
// embedding; mixing embedding spaces is a caller error the retriever
// cannot detect.
//
// Implementations may include:
//   - Ollama (mxbai-embed-large, nomic-embed-text)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// This is more efficient than calling Embed in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 768, 1024, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	// This is used at startup to verify connectivity before any index work begins.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
