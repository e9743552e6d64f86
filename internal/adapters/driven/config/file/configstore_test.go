package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(home, ".bookwise", "config.toml"), store.Path())

	// Cleanup
	_ = os.Remove(store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("test_key", "test_value")
	require.NoError(t, err)

	val, ok := store.Get("test_key")
	assert.True(t, ok)
	assert.Equal(t, "test_value", val)
}

func TestConfigStore_GetString(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("string_key", "hello world")
	require.NoError(t, err)

	val := store.GetString("string_key")
	assert.Equal(t, "hello world", val)

	// Non-existent key
	val = store.GetString("nonexistent")
	assert.Equal(t, "", val)

	// Wrong type
	err = store.Set("int_key", 42)
	require.NoError(t, err)
	val = store.GetString("int_key")
	assert.Equal(t, "", val)
}

func TestConfigStore_GetInt(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("int_key", 42)
	require.NoError(t, err)

	val := store.GetInt("int_key")
	assert.Equal(t, 42, val)

	// Non-existent key
	val = store.GetInt("nonexistent")
	assert.Equal(t, 0, val)

	// Wrong type
	err = store.Set("string_key", "not an int")
	require.NoError(t, err)
	val = store.GetInt("string_key")
	assert.Equal(t, 0, val)
}

func TestConfigStore_GetFloat(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("float_key", 0.75)
	require.NoError(t, err)

	val := store.GetFloat("float_key")
	assert.InDelta(t, 0.75, val, 1e-9)

	// Integers convert
	err = store.Set("int_key", 1)
	require.NoError(t, err)
	val = store.GetFloat("int_key")
	assert.InDelta(t, 1.0, val, 1e-9)

	// Non-existent key
	val = store.GetFloat("nonexistent")
	assert.Zero(t, val)

	// Wrong type
	err = store.Set("string_key", "not a float")
	require.NoError(t, err)
	val = store.GetFloat("string_key")
	assert.Zero(t, val)
}

func TestConfigStore_GetBool(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("bool_key", true)
	require.NoError(t, err)

	val := store.GetBool("bool_key")
	assert.True(t, val)

	// Non-existent key
	val = store.GetBool("nonexistent")
	assert.False(t, val)
}

func TestConfigStore_PersistsAcrossLoads(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("llm_chat_model", "mistral-small-latest"))
	require.NoError(t, store.Set("retriever.k", 3))

	// Open a second store over the same directory
	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "mistral-small-latest", reopened.GetString("llm_chat_model"))
	assert.Equal(t, 3, reopened.GetInt("retriever.k"))
}

func TestConfigStore_DottedKeysRoundTripAsTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("document_chunking.chunk_size", 400))
	require.NoError(t, store.Set("document_chunking.chunk_overlap", 100))
	require.NoError(t, store.Set("retriever.score_threshold", 0.75))

	// The file must use nested TOML tables, not quoted dotted keys
	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[document_chunking]")
	assert.Contains(t, string(data), "[retriever]")
	assert.NotContains(t, string(data), `"document_chunking.chunk_size"`)

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 400, reopened.GetInt("document_chunking.chunk_size"))
	assert.Equal(t, 100, reopened.GetInt("document_chunking.chunk_overlap"))
	assert.InDelta(t, 0.75, reopened.GetFloat("retriever.score_threshold"), 1e-9)
}

func TestConfigStore_LoadNestedFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `llm_embedding_model = "mxbai-embed-large"
llm_chat_model = "mistral-small-latest"
env_path = "/home/user/.env"

[document_chunking]
chunk_size = 400
chunk_overlap = 100

[retriever]
k = 3
score_threshold = 0.75
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "mxbai-embed-large", store.GetString("llm_embedding_model"))
	assert.Equal(t, 400, store.GetInt("document_chunking.chunk_size"))
	assert.Equal(t, 3, store.GetInt("retriever.k"))
	assert.InDelta(t, 0.75, store.GetFloat("retriever.score_threshold"), 1e-9)
}

func TestConfigStore_LoadMissingFile(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestConfigStore_LoadInvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not = [valid"), 0600))

	_, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
}
