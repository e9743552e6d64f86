// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - IndexStore: Per-identity durable passage index (build-once, read-many)
//   - EmbeddingService: Generates vector embeddings for passages and queries
//   - LLMService: Chat completion and whole-book summarisation
//   - ConfigStore: Application configuration
//   - LibraryStore: The per-document settings record
//
// # Optional Interfaces
//
//   - PromptStore: User-customisable prompt templates. When nil, services
//     fall back to the embedded default prompts.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
