// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - LibraryStore: TOML-based per-book settings record
//   - PromptStore: prompt templates with embedded defaults
package file
