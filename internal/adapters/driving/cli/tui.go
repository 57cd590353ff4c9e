package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/scriptura/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Type a question and press Enter to get a grounded answer with numbered
citations into the indexed sources.

Controls:
  Enter    - Ask
  ↑/↓      - Scroll the answer
  Esc      - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := pipelineFactory(cfg, true)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}
	defer p.cleanup()

	if p.asker == nil {
		return errors.New("ask service not configured")
	}

	// Index before entering the alternate screen so progress is visible.
	if _, err := p.indexer.EnsureIndexed(cmd.Context(), false); err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	model := tui.New(p.asker).WithContext(cmd.Context())

	prog := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
