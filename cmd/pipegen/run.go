package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/longregen/pipegen/internal/application/services"
	"github.com/longregen/pipegen/internal/domain"
)

// runCmd loads a previously generated pipeline and runs inference on it
// interactively.
func runCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a previously generated pipeline interactively",
		Long: `Rebuild the pipeline from the saved task configuration and run an
interactive inference loop against it. Requires 'pipegen generate' to have
been run first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputDir == "" {
				outputDir = cfg.Output.Dir
			}
			return runPipeline(cmd.Context(), outputDir)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory holding the generated artifacts (default: configured output dir)")
	return cmd
}

func runPipeline(ctx context.Context, outputDir string) error {
	persist := services.NewPersistenceService(outputDir)

	taskCfg, err := persist.LoadTaskConfig()
	if err != nil {
		return fmt.Errorf("no saved pipeline found (run 'pipegen generate' first): %w", err)
	}

	fmt.Printf("Task: %s\n", taskCfg.TaskInfo.Description)
	fmt.Printf("Types: %s -> %s\n", taskCfg.TaskInfo.InputType, taskCfg.TaskInfo.OutputType)

	gen := services.NewGenerationService(llmClient)
	out, err := gen.Generate(ctx, taskCfg.TaskInfo, taskCfg.Examples)
	if err != nil {
		if errors.Is(err, domain.ErrModelUnavailable) {
			printConnectionHelp(llmClient.Model())
		}
		return err
	}

	runner := out.Runner

	// An earlier optimization pass is reapplied by re-optimizing against the
	// saved examples; the artifact records what the last pass selected.
	if saved, err := persist.LoadPipeline(services.OptimizedFile); err == nil && saved.Optimized() {
		fmt.Printf("Previous optimization selected %d demonstrations; re-optimizing...\n", len(saved.Demonstrations))
		opt := services.NewOptimizationService()
		result := opt.Optimize(ctx, out, taskCfg.Examples)
		if result.Optimized {
			runner = result.Runner
		} else {
			fmt.Printf("Re-optimization skipped: %s\n", result.Reason)
		}
	}

	fmt.Println()
	fmt.Println("Type an input and press Enter. Type 'exit' or 'quit' to stop.")
	fmt.Println(strings.Repeat("-", 60))

	reader := bufio.NewReader(os.Stdin)
	for {
		input, err := promptLine(reader, "\nInput: ")
		if err != nil {
			break
		}
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			fmt.Println("Goodbye!")
			break
		}

		output, err := runner.Run(ctx, input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		fmt.Printf("Output: %s\n", output)
	}

	return nil
}
