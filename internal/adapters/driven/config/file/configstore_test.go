package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Defaults(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	cfg := store.Config()
	assert.Equal(t, "text-embedding-3-large", cfg.EmbeddingModel)
	assert.Equal(t, "gpt-4o-mini", cfg.ChatModel)
	assert.Equal(t, 3000, cfg.ChunkSize)
	assert.Equal(t, 500, cfg.ChunkOverlap)
	assert.Equal(t, "simple", cfg.Profile)
}

func TestConfigStore_SetAndReload(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("chat_model", "gpt-4o"))
	require.NoError(t, store.Set("chunk_size", "2000"))
	require.NoError(t, store.Set("profile", "diverse"))

	// A fresh store reads the persisted values; untouched settings
	// keep their defaults.
	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)

	cfg := reloaded.Config()
	assert.Equal(t, "gpt-4o", cfg.ChatModel)
	assert.Equal(t, 2000, cfg.ChunkSize)
	assert.Equal(t, "diverse", cfg.Profile)
	assert.Equal(t, 500, cfg.ChunkOverlap)
	assert.Equal(t, "text-embedding-3-large", cfg.EmbeddingModel)
}

func TestConfigStore_SetRejectsBadValues(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("chunk_size", "not-a-number"))
	assert.Error(t, store.Set("chunk_size", "-5"))
	assert.Error(t, store.Set("profile", "fancy"))
	assert.Error(t, store.Set("no_such_key", "x"))

	// Failed sets leave the config untouched.
	cfg := store.Config()
	assert.Equal(t, 3000, cfg.ChunkSize)
	assert.Equal(t, "simple", cfg.Profile)
}

func TestConfigStore_PartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("chat_model = \"gpt-4.1\"\n"), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	cfg := store.Config()
	assert.Equal(t, "gpt-4.1", cfg.ChatModel)
	assert.Equal(t, 3000, cfg.ChunkSize)
}

func TestConfigStore_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0600))

	_, err := NewConfigStore(dir)
	assert.Error(t, err)
}
