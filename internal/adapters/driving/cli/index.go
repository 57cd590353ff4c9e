package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/scriptura/internal/core/domain"
)

var indexRebuild bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the vector index from the configured sources",
	Long: `Extracts passages from the verse CSV and the commentary EPUB,
embeds them and stores the vectors in the local index.

Indexing is idempotent: if the index already holds entries, nothing is
done. Use --rebuild to discard the existing index and start over.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexRebuild, "rebuild", false, "discard the existing index and re-ingest all sources")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Rebuild = indexRebuild

	p, err := pipelineFactory(cfg, false)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}
	defer p.cleanup()

	results, err := p.indexer.EnsureIndexed(cmd.Context(), cfg.Rebuild)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	if results == nil {
		cmd.Println("Index already built (use --rebuild to force re-ingestion).")
		return nil
	}

	printIngestResults(cmd, results)
	return nil
}

// printIngestResults reports the per-source outcome of an ingestion run.
func printIngestResults(cmd *cobra.Command, results []domain.IngestResult) {
	total := 0
	for _, r := range results {
		switch r.Status {
		case domain.IngestIndexed:
			cmd.Printf("  indexed  %-4s %s (%d chunks)\n", r.Source.Type, r.Source.Path, r.Chunks)
			total += r.Chunks
		case domain.IngestEmpty:
			cmd.Printf("  empty    %-4s %s (no extractable text)\n", r.Source.Type, r.Source.Path)
		case domain.IngestSkipped:
			cmd.Printf("  skipped  %-4s %s: %s\n", r.Source.Type, r.Source.Path, r.Reason)
		}
	}
	cmd.Printf("Done. %d chunks indexed.\n", total)
}
