package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/longregen/pipegen/internal/application/services"
	"github.com/longregen/pipegen/internal/domain"
	"github.com/longregen/pipegen/internal/domain/models"
)

// generateCmd creates the interactive pipeline generation command
func generateCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Interactively generate an optimized pipeline",
		Long: `Collect a task description and input/output examples, build a
chain-of-thought pipeline, optimize it against the examples and write the
generated artifacts to the output directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputDir == "" {
				outputDir = cfg.Output.Dir
			}
			return runGenerate(cmd.Context(), outputDir)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory for generated artifacts (default: configured output dir)")
	return cmd
}

func runGenerate(ctx context.Context, outputDir string) error {
	fmt.Println("=====================================")
	fmt.Println("  Pipegen - LLM Pipeline Generator")
	fmt.Println("=====================================")
	fmt.Println()
	fmt.Printf("Model: %s @ %s\n", llmClient.Model(), llmClient.BaseURL())
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	task, err := collectTask(reader)
	if err != nil {
		return err
	}

	examples, err := collectExamples(reader)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Connecting to model service...")

	gen := services.NewGenerationService(llmClient)
	out, err := gen.Generate(ctx, task, examples)
	if err != nil {
		if errors.Is(err, domain.ErrModelUnavailable) {
			printConnectionHelp(llmClient.Model())
		}
		return err
	}

	fmt.Println("Pipeline built. Optimizing with your examples...")
	opt := services.NewOptimizationService()
	result := opt.Optimize(ctx, out, examples)
	if result.Optimized {
		fmt.Printf("Optimization complete: %d demonstrations selected.\n", len(result.Pipeline.Demonstrations))
	} else {
		fmt.Printf("Optimization skipped: %s\n", result.Reason)
		fmt.Println("Continuing with the unoptimized pipeline.")
	}

	files := writeArtifacts(outputDir, gen, out, result, task, examples)

	fmt.Println()
	fmt.Println("Generated files:")
	for _, f := range files {
		fmt.Printf("  %s\n", f)
	}
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  pipegen run    # test the pipeline interactively")
	fmt.Println("  pipegen serve  # expose it over HTTP")
	return nil
}

// collectTask prompts for the task description and types.
func collectTask(reader *bufio.Reader) (models.TaskSpec, error) {
	fmt.Println("Describe the task this pipeline should perform.")
	description, err := promptLine(reader, "Task description: ")
	if err != nil {
		return models.TaskSpec{}, err
	}

	inputType, err := promptLineDefault(reader, "Input type", "text")
	if err != nil {
		return models.TaskSpec{}, err
	}
	outputType, err := promptLineDefault(reader, "Output type", "text")
	if err != nil {
		return models.TaskSpec{}, err
	}

	return models.NewTaskSpec(description, inputType, outputType)
}

// collectExamples prompts for input/output examples until the user enters a
// blank input. At least one example is required.
func collectExamples(reader *bufio.Reader) ([]models.Example, error) {
	fmt.Println()
	fmt.Println("Provide input/output examples. Press Enter on an empty input to finish.")

	var examples []models.Example
	for {
		fmt.Printf("\nExample %d\n", len(examples)+1)
		input, err := promptLine(reader, "  Input: ")
		if err != nil {
			return nil, err
		}
		if input == "" {
			break
		}

		output, err := promptLine(reader, "  Expected output: ")
		if err != nil {
			return nil, err
		}
		description, err := promptLine(reader, "  Description (optional): ")
		if err != nil {
			return nil, err
		}

		examples = append(examples, models.Example{
			Input:          input,
			ExpectedOutput: output,
			Description:    description,
		})
	}

	if len(examples) == 0 {
		return nil, domain.ErrNoExamples
	}

	fmt.Printf("\nCollected %d example(s).\n", len(examples))
	return examples, nil
}

// writeArtifacts persists everything a generation run produces, logging
// failures to stderr without aborting. Returns what was written.
func writeArtifacts(outputDir string, gen *services.GenerationService, out *services.GenerationOutput, result services.OptimizationResult, task models.TaskSpec, examples []models.Example) []string {
	persist := services.NewPersistenceService(outputDir)
	files := make([]string, 0, 4)

	if err := persist.SavePipelineCode(out.PipelineCode); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else {
		files = append(files, persist.Path(services.PipelineCodeFile))
	}

	if err := persist.SaveTaskConfig(task, examples); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else {
		files = append(files, persist.Path(services.TaskConfigFile))
	}

	if prompt, err := gen.RenderSyntheticPrompt(task); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else if err := persist.SaveSyntheticPrompt(prompt); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else {
		files = append(files, persist.Path(services.SyntheticPromptFile))
	}

	if result.Optimized {
		if err := persist.SavePipeline(result.Pipeline, services.OptimizedFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else {
			files = append(files, persist.Path(services.OptimizedFile))
		}
	}

	return files
}
