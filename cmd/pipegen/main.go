package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/longregen/pipegen/internal/config"
	"github.com/longregen/pipegen/internal/llm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pipegen",
		Short: "Pipegen - prompt-to-pipeline generator",
		Long: `Pipegen turns a plain-language task description plus a handful of
input/output examples into an optimized, runnable LLM pipeline backed by a
local Ollama model.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			llmClient = llm.NewClient(
				cfg.Model.BaseURL,
				cfg.Model.Name,
				cfg.Model.MaxTokens,
				cfg.Model.Temperature,
			)

			return nil
		},
	}

	rootCmd.AddCommand(
		generateCmd(),
		runCmd(),
		serveCmd(),
		configCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// configCmd shows current configuration
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Current configuration:")
			fmt.Println()

			fmt.Println("Model:")
			fmt.Printf("  Base URL:    %s\n", cfg.Model.BaseURL)
			fmt.Printf("  Name:        %s\n", cfg.Model.Name)
			fmt.Printf("  Max Tokens:  %d\n", cfg.Model.MaxTokens)
			fmt.Printf("  Temperature: %.2f\n", cfg.Model.Temperature)
			fmt.Println()

			fmt.Println("Server:")
			fmt.Printf("  Host:         %s\n", cfg.Server.Host)
			fmt.Printf("  Port:         %d\n", cfg.Server.Port)
			fmt.Printf("  CORS Origins: %v\n", cfg.Server.CORSOrigins)
			fmt.Printf("  Session TTL:  %d minutes\n", cfg.Server.SessionTTL)
			fmt.Printf("  Max Sessions: %d\n", cfg.Server.MaxSessions)
			fmt.Println()

			fmt.Println("Output:")
			fmt.Printf("  Directory: %s\n", cfg.Output.Dir)
			fmt.Println()

			fmt.Println("Environment variables:")
			fmt.Println("  OLLAMA_BASE_URL, OLLAMA_MODEL")
			fmt.Println("  PIPEGEN_MODEL_URL, PIPEGEN_MODEL_NAME, PIPEGEN_MODEL_MAX_TOKENS, PIPEGEN_MODEL_TEMPERATURE")
			fmt.Println("  PIPEGEN_SERVER_HOST, PIPEGEN_SERVER_PORT, PIPEGEN_CORS_ORIGINS")
			fmt.Println("  PIPEGEN_SESSION_TTL_MINUTES, PIPEGEN_MAX_SESSIONS, PIPEGEN_OUTPUT_DIR")

			return nil
		},
	}
}

// versionCmd shows version information
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Pipegen %s\n", version)
			fmt.Printf("  Commit:     %s\n", commit)
			fmt.Printf("  Build Date: %s\n", buildDate)
		},
	}
}
