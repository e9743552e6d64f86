package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwise-labs/bookwise-cli/internal/core/domain"
)

func TestLibraryStore_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewLibraryStore(tmpDir)
	require.NoError(t, err)

	record := domain.LibraryRecord{
		Book:      "A History of Rome!",
		Author:    "Mary Beard",
		BookKey:   "ahistoryofrome",
		AuthorKey: "marybeard",
	}
	require.NoError(t, store.Save(record))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, record, loaded)
}

func TestLibraryStore_Load_NoRecord(t *testing.T) {
	store, err := NewLibraryStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load()

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLibraryStore_Save_Replaces(t *testing.T) {
	store, err := NewLibraryStore(t.TempDir())
	require.NoError(t, err)

	first := domain.LibraryRecord{Book: "The Iliad", Author: "Homer", BookKey: "theiliad", AuthorKey: "homer"}
	require.NoError(t, store.Save(first))

	second := domain.LibraryRecord{Book: "The Odyssey", Author: "Homer", BookKey: "theodyssey", AuthorKey: "homer"}
	require.NoError(t, store.Save(second))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, second, loaded)
}

func TestLibraryStore_FileFormat(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewLibraryStore(tmpDir)
	require.NoError(t, err)

	record := domain.LibraryRecord{
		Book:      "Decline and Fall",
		Author:    "Edward Gibbon",
		BookKey:   "declineandfall",
		AuthorKey: "edwardgibbon",
	}
	require.NoError(t, store.Save(record))

	data, err := os.ReadFile(filepath.Join(tmpDir, "library.toml"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, `book = 'Decline and Fall'`)
	assert.Contains(t, content, `author = 'Edward Gibbon'`)
	assert.Contains(t, content, `book_clean = 'declineandfall'`)
	assert.Contains(t, content, `author_clean = 'edwardgibbon'`)
}
