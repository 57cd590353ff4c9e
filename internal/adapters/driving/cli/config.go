package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/scriptura/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application configuration",
	Long: `View and configure source paths, retrieval options and AI providers.

Use 'config show' to inspect the current values and 'config set' to
change one.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a single configuration value and persist it.

Available keys:
  csv                   path to the verse CSV file
  epub                  path to the commentary EPUB file
  data-dir              directory for the vector index
  top-k                 number of chunks to retrieve per question
  embedding.provider    ollama or openai
  embedding.model       embedding model name
  embedding.base-url    embedding service base URL
  embedding.api-key     embedding service API key
  llm.provider          ollama or openai
  llm.model             LLM model name
  llm.base-url          LLM service base URL
  llm.api-key           LLM service API key`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cmd.Println("Current Configuration")
	cmd.Println("=====================")
	cmd.Println()

	cmd.Println("[Sources]")
	cmd.Printf("  CSV:  %s\n", orUnset(cfg.CSVPath))
	cmd.Printf("  EPUB: %s\n", orUnset(cfg.EPUBPath))
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Data dir: %s\n", orUnset(cfg.DataDir))
	cmd.Printf("  Top K:    %d\n", cfg.TopK)
	cmd.Println()

	printAISettings(cmd, "Embedding", cfg.Embedding)
	printAISettings(cmd, "LLM", cfg.LLM)
	return nil
}

func printAISettings(cmd *cobra.Command, section string, settings domain.AISettings) {
	cmd.Printf("[%s]\n", section)
	cmd.Printf("  Provider: %s\n", settings.Provider.Description())
	cmd.Printf("  Model:    %s\n", settings.Model)
	if settings.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.BaseURL)
	}
	if settings.Provider.RequiresAPIKey() {
		if settings.APIKey != "" {
			cmd.Printf("  API Key:  %s\n", maskAPIKey(settings.APIKey))
		} else {
			cmd.Printf("  API Key:  (not set)\n")
		}
	}
	status := "configured"
	if !settings.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status:   %s\n", status)
	cmd.Println()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	switch key {
	case "csv":
		cfg.CSVPath = value
	case "epub":
		cfg.EPUBPath = value
	case "data-dir":
		cfg.DataDir = value
	case "top-k":
		k, err := strconv.Atoi(value)
		if err != nil || k < 1 {
			return fmt.Errorf("%w: top-k must be a positive integer", domain.ErrInvalidInput)
		}
		cfg.TopK = k
	case "embedding.provider":
		provider := domain.AIProvider(value)
		if !provider.IsValid() {
			return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, value)
		}
		cfg.Embedding.Provider = provider
	case "embedding.model":
		cfg.Embedding.Model = value
	case "embedding.base-url":
		cfg.Embedding.BaseURL = value
	case "embedding.api-key":
		cfg.Embedding.APIKey = value
	case "llm.provider":
		provider := domain.AIProvider(value)
		if !provider.IsValid() {
			return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, value)
		}
		cfg.LLM.Provider = provider
	case "llm.model":
		cfg.LLM.Model = value
	case "llm.base-url":
		cfg.LLM.BaseURL = value
	case "llm.api-key":
		cfg.LLM.APIKey = value
	default:
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, key)
	}

	cfg.Normalise()
	if err := configStore.Save(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	cmd.Printf("Set %s.\n", key)
	return nil
}

func orUnset(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
