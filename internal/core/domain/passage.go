package domain

// Passage is a contiguous slice of the source book used as the retrieval
// unit. Consecutive passages overlap so that no context is lost at
// chunk boundaries.
type Passage struct {
	// ID is the unique identifier for the passage.
	ID string

	// Position is the ordinal position within the book.
	Position int

	// Offset is the rune offset of the passage start in the source text.
	Offset int

	// Text is the passage content.
	Text string
}

// EmbeddedPassage is a Passage plus its embedding vector. Immutable once
// written; the index store never updates a vector in place.
type EmbeddedPassage struct {
	Passage

	// Embedding is the fixed-dimensionality vector produced by the
	// embedding model at build time.
	Embedding []float32
}

// RetrievedPassage is a Passage returned from a similarity search.
type RetrievedPassage struct {
	Passage

	// Similarity is the cosine similarity to the query vector (0-1).
	Similarity float64
}
