// Package sqlite provides the durable passage index as one SQLite
// database file per document identity.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, index files are stored under ~/.bookwise/indexes/, named
// <titleKey>by<authorKey>.db.
//
// # Build Atomicity
//
// An index is built into a temporary file and renamed into place only
// after every passage and embedding has been committed, so a failed or
// interrupted build never leaves a partial index behind.
package sqlite
