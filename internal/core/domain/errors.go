package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// Opening an index for a never-built identity returns this.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	// Building an index for an identity that already has one returns this.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input,
	// such as a title or author that normalises to an empty key.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfigMissing indicates a required setting is absent.
	// No index or model work is attempted when this is raised.
	ErrConfigMissing = errors.New("required setting missing")

	// ErrInvalidConfig indicates configuration values violate an invariant,
	// such as a chunk overlap that is not smaller than the chunk size.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrBuildFailed indicates an embedding call failed mid-build.
	// The store guarantees no partial index is left behind.
	ErrBuildFailed = errors.New("index build failed")

	// ErrEmptyIndex indicates a summary was requested over an index
	// holding zero passages.
	ErrEmptyIndex = errors.New("index holds no passages")

	// ErrLLMUnavailable indicates the chat model service is not configured
	// or unreachable. Question answering and summarisation are disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or unreachable. Indexing and retrieval are disabled.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
