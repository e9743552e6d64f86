package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driving"
)

func TestIndexCmd_Use(t *testing.T) {
	assert.Equal(t, "index", indexCmd.Use)
}

func TestIndexCmd_Short(t *testing.T) {
	assert.Equal(t, "Build the vector index for a book", indexCmd.Short)
}

func TestIndexCmd_HasRequiredFlags(t *testing.T) {
	for _, name := range []string{"book", "author", "file"} {
		flag := indexCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "%s flag should exist", name)
	}
}

func writeBookFile(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func TestIndexCmd_BuildsIndex(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeBookFile(t, "Rome was founded on the Tiber.")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"index", "--book", "A History of Rome", "--author", "Mary Beard", "--file", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "2 passages")

	mock := ingestService.(*mockIngestService)
	assert.Equal(t, "A History of Rome", mock.gotTitle)
	assert.Equal(t, "Mary Beard", mock.gotAuthor)
	assert.Equal(t, "Rome was founded on the Tiber.", mock.gotText)
}

func TestIndexCmd_ReportsReuse(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	index, err := indexStore.Open(testIdentityRecord.Identity())
	require.NoError(t, err)
	ingestService = &mockIngestService{result: driving.IngestResult{
		PassageCount: 2,
		Reused:       true,
		Index:        index,
	}}

	path := writeBookFile(t, "Rome was founded on the Tiber.")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"index", "--book", "A History of Rome", "--author", "Mary Beard", "--file", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err = rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "already exists")
	assert.Contains(t, buf.String(), "reusing")
}

func TestIndexCmd_MissingFileFails(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"index", "--book", "A History of Rome", "--author", "Mary Beard", "--file", "/nonexistent/book.txt"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read book file")
}
