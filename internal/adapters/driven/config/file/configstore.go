// Package file provides file-backed configuration and prompt storage.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/scriptura/internal/core/domain"
)

// ConfigStore reads and writes the pipeline configuration as a TOML
// file in the scriptura config directory. Missing files yield the
// defaults; saving creates the file.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
}

// fileConfig is the on-disk TOML shape.
type fileConfig struct {
	CSVPath  string         `toml:"csv_path"`
	EPUBPath string         `toml:"epub_path"`
	DataDir  string         `toml:"data_dir"`
	TopK     int            `toml:"top_k"`
	Embed    fileAISettings `toml:"embedding"`
	LLM      fileAISettings `toml:"llm"`
}

type fileAISettings struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url,omitempty"`
	APIKey   string `toml:"api_key,omitempty"`
}

// NewConfigStore creates a TOML-backed config store.
// If configDir is empty, defaults to ~/.scriptura.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".scriptura")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Path returns the config file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// Load reads the configuration from disk. A missing file is not an
// error: defaults come back normalised either way.
func (s *ConfigStore) Load() (domain.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var fc fileConfig
	data, err := os.ReadFile(s.filePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// fall through to defaults
	case err != nil:
		return domain.Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(data, &fc); err != nil {
			return domain.Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg := domain.Config{
		CSVPath:  expandHome(fc.CSVPath),
		EPUBPath: expandHome(fc.EPUBPath),
		DataDir:  expandHome(fc.DataDir),
		TopK:     fc.TopK,
		Embedding: domain.AISettings{
			Provider: domain.AIProvider(fc.Embed.Provider),
			Model:    fc.Embed.Model,
			BaseURL:  fc.Embed.BaseURL,
			APIKey:   fc.Embed.APIKey,
		},
		LLM: domain.AISettings{
			Provider: domain.AIProvider(fc.LLM.Provider),
			Model:    fc.LLM.Model,
			BaseURL:  fc.LLM.BaseURL,
			APIKey:   fc.LLM.APIKey,
		},
	}
	cfg.Normalise()
	return cfg, nil
}

// Save persists the configuration to disk.
func (s *ConfigStore) Save(cfg domain.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fc := fileConfig{
		CSVPath:  cfg.CSVPath,
		EPUBPath: cfg.EPUBPath,
		DataDir:  cfg.DataDir,
		TopK:     cfg.TopK,
		Embed: fileAISettings{
			Provider: cfg.Embedding.Provider.String(),
			Model:    cfg.Embedding.Model,
			BaseURL:  cfg.Embedding.BaseURL,
			APIKey:   cfg.Embedding.APIKey,
		},
		LLM: fileAISettings{
			Provider: cfg.LLM.Provider.String(),
			Model:    cfg.LLM.Model,
			BaseURL:  cfg.LLM.BaseURL,
			APIKey:   cfg.LLM.APIKey,
		},
	}

	data, err := toml.Marshal(fc)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// expandHome resolves a leading ~/ against the user's home directory.
func expandHome(path string) string {
	if len(path) < 2 || path[0] != '~' || path[1] != '/' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
