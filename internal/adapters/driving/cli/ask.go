package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/scriptura/internal/core/domain"
)

var askTopK int

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question against the indexed sources",
	Long: `Answers a question using passages retrieved from the index.
The sources are indexed first if the index is empty.

With a question argument, prints one answer and exits. Without
arguments, enters an interactive loop; type 'q' to quit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of chunks to retrieve (default from config)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if askTopK > 0 {
		cfg.TopK = askTopK
	}

	p, err := pipelineFactory(cfg, true)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}
	defer p.cleanup()

	if p.asker == nil {
		return errors.New("ask service not configured")
	}

	// Make sure there is something to retrieve from.
	if _, err := p.indexer.EnsureIndexed(cmd.Context(), false); err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	if len(args) == 1 {
		return askOnce(cmd, p, args[0])
	}
	return askLoop(cmd, p)
}

func askOnce(cmd *cobra.Command, p *pipeline, question string) error {
	answer, err := p.asker.Ask(cmd.Context(), question)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}
	printAnswer(cmd, answer)
	return nil
}

// askLoop reads questions line by line until 'q' or EOF.
func askLoop(cmd *cobra.Command, p *pipeline) error {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("\nQuestion (q to quit): ")
		if !scanner.Scan() {
			cmd.Println()
			return scanner.Err()
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if strings.EqualFold(question, "q") {
			return nil
		}

		answer, err := p.asker.Ask(cmd.Context(), question)
		if err != nil {
			cmd.PrintErrf("ask failed: %v\n", err)
			continue
		}
		printAnswer(cmd, answer)
	}
}

func printAnswer(cmd *cobra.Command, answer *domain.Answer) {
	cmd.Println("\n=== Answer ===")
	cmd.Println(answer.Text)

	if len(answer.References) == 0 {
		return
	}

	cmd.Println()
	if answer.NoCitations {
		cmd.Println("No citations detected; all retrieved sources:")
	} else {
		cmd.Println("References:")
	}
	for _, ref := range answer.References {
		cmd.Printf("  [%d] %s\n", ref.Index, ref.Description)
	}
}
