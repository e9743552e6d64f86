package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/bookwise-labs/bookwise-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/bookwise-labs/bookwise-cli/internal/core/domain"
	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driven"
)

// Ensure the interfaces are implemented.
var (
	_ driven.IndexStore = (*IndexStore)(nil)
	_ driven.Index      = (*Index)(nil)
)

// IndexStore manages one SQLite index file per document identity.
type IndexStore struct {
	dir string
}

// NewIndexStore creates an index store rooted at dataDir.
// If dataDir is empty, defaults to ~/.bookwise/indexes.
func NewIndexStore(dataDir string) (*IndexStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".bookwise", "indexes")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	return &IndexStore{dir: dataDir}, nil
}

// Dir returns the index directory path.
func (s *IndexStore) Dir() string {
	return s.dir
}

// indexPath returns the database file path for an identity.
func (s *IndexStore) indexPath(identity domain.DocumentIdentity) string {
	return filepath.Join(s.dir, identity.StorageKey()+".db")
}

// Exists reports whether a built index is present for the identity.
// The check is by file presence, not content validation.
func (s *IndexStore) Exists(identity domain.DocumentIdentity) bool {
	_, err := os.Stat(s.indexPath(identity))
	return err == nil
}

// Build embeds every passage and writes the index as a unit. The index
// is assembled in a temporary file and renamed into place after the
// final commit, so a failed build leaves nothing behind and Build is
// safe to re-invoke.
func (s *IndexStore) Build(
	ctx context.Context,
	identity domain.DocumentIdentity,
	passages []domain.Passage,
	embedder driven.EmbeddingService,
) (driven.Index, error) {
	finalPath := s.indexPath(identity)
	if s.Exists(identity) {
		return nil, domain.ErrAlreadyExists
	}

	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Text
	}
	vectors, err := embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: embed passages: %v", domain.ErrBuildFailed, err)
	}
	if len(vectors) != len(passages) {
		return nil, fmt.Errorf("%w: embedder returned %d vectors for %d passages",
			domain.ErrBuildFailed, len(vectors), len(passages))
	}

	tmpPath := filepath.Join(s.dir, "."+identity.StorageKey()+"-"+uuid.NewString()+".tmp")
	if err := s.writeIndexFile(ctx, tmpPath, passages, vectors); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("%w: %v", domain.ErrBuildFailed, err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("%w: publish index: %v", domain.ErrBuildFailed, err)
	}

	return s.Open(identity)
}

// writeIndexFile creates the database at path and stores all passages
// in one transaction.
func (s *IndexStore) writeIndexFile(
	ctx context.Context,
	path string,
	passages []domain.Passage,
	vectors [][]float32,
) error {
	db, err := openDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrate(db, migrations.FS); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO passages (id, position, start_offset, text, embedding)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range passages {
		blob := float32SliceToBytes(vectors[i])
		if _, err := stmt.ExecContext(ctx, p.ID, p.Position, p.Offset, p.Text, blob); err != nil {
			return fmt.Errorf("saving passage %d: %w", p.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Open attaches to an existing index for read access.
func (s *IndexStore) Open(identity domain.DocumentIdentity) (driven.Index, error) {
	path := s.indexPath(identity)
	if !s.Exists(identity) {
		return nil, fmt.Errorf("%w: no index for %s", domain.ErrNotFound, identity.StorageKey())
	}

	db, err := openDB(path)
	if err != nil {
		return nil, err
	}

	return &Index{db: db, path: path}, nil
}

// openDB opens a SQLite database with WAL mode enabled.
func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

// migrate runs all pending migrations.
func migrate(db *sql.DB, fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_passages.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Index is a read-only view over one document's SQLite index file.
type Index struct {
	db   *sql.DB
	path string
}

// Search ranks every stored passage by cosine similarity to the query
// vector and returns the top k, descending. Ties are broken by
// ascending position so repeated calls rank identically. The corpus is
// a single book, so a full scan is cheap and exact.
func (i *Index) Search(ctx context.Context, query []float32, k int) ([]domain.RetrievedPassage, error) {
	if k <= 0 {
		return nil, nil
	}

	embedded, err := i.loadEmbedded(ctx)
	if err != nil {
		return nil, err
	}

	ranked := make([]domain.RetrievedPassage, len(embedded))
	for j, p := range embedded {
		ranked[j] = domain.RetrievedPassage{
			Passage:    p.Passage,
			Similarity: domain.Cosine(query, p.Embedding),
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].Similarity != ranked[b].Similarity {
			return ranked[a].Similarity > ranked[b].Similarity
		}
		return ranked[a].Position < ranked[b].Position
	})

	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked, nil
}

// All returns every stored passage in position order.
func (i *Index) All(ctx context.Context) ([]domain.Passage, error) {
	rows, err := i.db.QueryContext(ctx, `
		SELECT id, position, start_offset, text
		FROM passages ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying passages: %w", err)
	}
	defer rows.Close()

	var passages []domain.Passage
	for rows.Next() {
		var p domain.Passage
		if err := rows.Scan(&p.ID, &p.Position, &p.Offset, &p.Text); err != nil {
			return nil, fmt.Errorf("scanning passage: %w", err)
		}
		passages = append(passages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating passages: %w", err)
	}
	return passages, nil
}

// Count returns the number of stored passages.
func (i *Index) Count(ctx context.Context) (int, error) {
	var count int
	row := i.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM passages")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting passages: %w", err)
	}
	return count, nil
}

// Close closes the database connection.
func (i *Index) Close() error {
	return i.db.Close()
}

// Path returns the database file path.
func (i *Index) Path() string {
	return i.path
}

// loadEmbedded reads all passages with their embeddings.
func (i *Index) loadEmbedded(ctx context.Context) ([]domain.EmbeddedPassage, error) {
	rows, err := i.db.QueryContext(ctx, `
		SELECT id, position, start_offset, text, embedding
		FROM passages ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying embedded passages: %w", err)
	}
	defer rows.Close()

	var passages []domain.EmbeddedPassage
	for rows.Next() {
		var p domain.EmbeddedPassage
		var blob []byte
		if err := rows.Scan(&p.ID, &p.Position, &p.Offset, &p.Text, &blob); err != nil {
			return nil, fmt.Errorf("scanning embedded passage: %w", err)
		}
		p.Embedding = bytesToFloat32Slice(blob)
		passages = append(passages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating embedded passages: %w", err)
	}
	return passages, nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
