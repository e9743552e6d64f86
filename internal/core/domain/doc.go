// Package domain defines the core business entities for Bookwise.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DocumentIdentity: The normalised (title, author) key for one book
//   - Passage: A bounded slice of book text used as the retrieval unit
//   - Conversation: The append-only question/answer log of a session
//   - Settings: The typed application configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
