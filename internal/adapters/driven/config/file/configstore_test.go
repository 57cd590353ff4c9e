package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/scriptura/internal/core/domain"
)

func TestConfigStore_LoadMissingFileYieldsDefaults(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	cfg, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultTopK, cfg.TopK)
	assert.Equal(t, domain.AIProviderOllama, cfg.Embedding.Provider)
	assert.Equal(t, domain.DefaultEmbeddingModel, cfg.Embedding.Model)
	assert.Equal(t, domain.AIProviderOllama, cfg.LLM.Provider)
	assert.Equal(t, domain.DefaultLLMModel, cfg.LLM.Model)
	assert.Empty(t, cfg.CSVPath)
	assert.Empty(t, cfg.EPUBPath)
}

func TestConfigStore_SaveLoadRoundTrip(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	in := domain.Config{
		CSVPath:  "/data/bible.csv",
		EPUBPath: "/data/commentary.epub",
		DataDir:  "/data/index",
		TopK:     7,
		Embedding: domain.AISettings{
			Provider: domain.AIProviderOpenAI,
			Model:    "text-embedding-3-small",
			APIKey:   "sk-test",
		},
		LLM: domain.AISettings{
			Provider: domain.AIProviderOllama,
			Model:    "codeqwen",
			BaseURL:  "http://localhost:11434",
		},
	}
	require.NoError(t, store.Save(in))

	out, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, in.CSVPath, out.CSVPath)
	assert.Equal(t, in.EPUBPath, out.EPUBPath)
	assert.Equal(t, in.DataDir, out.DataDir)
	assert.Equal(t, 7, out.TopK)
	assert.Equal(t, domain.AIProviderOpenAI, out.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-small", out.Embedding.Model)
	assert.Equal(t, "sk-test", out.Embedding.APIKey)
	assert.Equal(t, "http://localhost:11434", out.LLM.BaseURL)
}

func TestConfigStore_LoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(store.Path(), []byte("not = [valid toml"), 0600))

	_, err = store.Load()
	assert.Error(t, err)
}

func TestConfigStore_PathInsideConfigDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "data"), expandHome("~/data"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
	assert.Equal(t, "", expandHome(""))
	assert.Equal(t, "~", expandHome("~"))
}
