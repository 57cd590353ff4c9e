// Package cli implements the command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/scriptura/internal/adapters/driven/ai"
	"github.com/custodia-labs/scriptura/internal/adapters/driven/config/file"
	"github.com/custodia-labs/scriptura/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/scriptura/internal/chunker"
	"github.com/custodia-labs/scriptura/internal/core/domain"
	"github.com/custodia-labs/scriptura/internal/core/ports/driven"
	"github.com/custodia-labs/scriptura/internal/core/ports/driving"
	"github.com/custodia-labs/scriptura/internal/core/services"
	"github.com/custodia-labs/scriptura/internal/extract/csvsource"
	"github.com/custodia-labs/scriptura/internal/extract/epubsource"
	"github.com/custodia-labs/scriptura/internal/logger"
)

// version is set by the main package at startup.
var version = "dev"

// Flag values shared across commands.
var (
	verbose     bool
	flagCSVPath string
	flagEPUB    string
	flagDataDir string
)

var rootCmd = &cobra.Command{
	Use:   "scriptura",
	Short: "Question answering over scripture and commentary",
	Long: `Scriptura indexes a verse CSV and a commentary EPUB into a local
vector store and answers questions grounded in the retrieved passages,
with numbered citations back to the sources.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagCSVPath, "csv", "", "path to the verse CSV file")
	rootCmd.PersistentFlags().StringVar(&flagEPUB, "epub", "", "path to the commentary EPUB file")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "directory for the vector index")
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// configStore is swappable so tests can point at a temp directory.
var configStore interface {
	Load() (domain.Config, error)
	Save(domain.Config) error
}

// loadConfig reads the persisted configuration and applies flag
// overrides on top.
func loadConfig() (domain.Config, error) {
	if configStore == nil {
		store, err := file.NewConfigStore("")
		if err != nil {
			return domain.Config{}, fmt.Errorf("open config store: %w", err)
		}
		configStore = store
	}

	cfg, err := configStore.Load()
	if err != nil {
		return domain.Config{}, err
	}

	if flagCSVPath != "" {
		cfg.CSVPath = flagCSVPath
	}
	if flagEPUB != "" {
		cfg.EPUBPath = flagEPUB
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	cfg.Normalise()
	return cfg, nil
}

// pipeline bundles the services a command needs, with a cleanup
// function that releases their resources.
type pipeline struct {
	indexer driving.Indexer
	asker   driving.Asker
	cleanup func()
}

// pipelineFactory builds the pipeline for a configuration. Tests swap
// this for a factory returning fakes.
var pipelineFactory = buildPipeline

// buildPipeline wires the extractors, chunker, embedding service,
// vector store and (when withLLM) the LLM into runnable services.
// Provider connectivity is validated up front so failures surface
// before any indexing work starts.
func buildPipeline(cfg domain.Config, withLLM bool) (*pipeline, error) {
	embedder, err := ai.CreateAndValidateEmbeddingService(cfg.Embedding)
	if err != nil {
		return nil, err
	}

	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		embedder.Close()
		return nil, fmt.Errorf("open vector store: %w", err)
	}

	extractors := []driven.Extractor{
		csvsource.New(),
		epubsource.New(),
	}

	p := &pipeline{
		indexer: services.NewIndexer(cfg, extractors, chunker.New(), embedder, store),
	}

	var llm driven.LLMService
	if withLLM {
		llm, err = ai.CreateAndValidateLLMService(cfg.LLM)
		if err != nil {
			embedder.Close()
			store.Close()
			return nil, err
		}

		prompts, err := file.NewPromptStore("")
		if err != nil {
			embedder.Close()
			store.Close()
			llm.Close()
			return nil, fmt.Errorf("open prompt store: %w", err)
		}

		asker := services.NewAsker(embedder, store, llm, cfg.TopK)
		asker.SetPromptStore(prompts)
		p.asker = asker
	}

	p.cleanup = func() {
		if llm != nil {
			llm.Close()
		}
		store.Close()
		embedder.Close()
	}
	return p, nil
}
