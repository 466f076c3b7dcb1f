package prompt

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/longregen/pipegen/internal/domain/models"
)

// pipelineCodeTemplate renders the standalone source file for a generated
// pipeline. The emitted code depends only on dspy-go and mirrors the
// signature and chain-of-thought module the generator builds in memory.
var pipelineCodeTemplate = template.Must(template.New("pipeline").Parse(`// Generated pipeline
package pipeline

import (
	"context"

	"github.com/XiaoConstantine/dspy-go/pkg/core"
	"github.com/XiaoConstantine/dspy-go/pkg/modules"
)

// TaskSignature: {{.Description}}
func TaskSignature() core.Signature {
	input := core.NewField("input_data")
	input.Description = "Input data ({{.InputType}})"
	output := core.NewField("output")
	output.Description = "Output result ({{.OutputType}})"

	sig := core.NewSignature(
		[]core.InputField{{"{{"}}Field: input{{"}}"}},
		[]core.OutputField{{"{{"}}Field: output{{"}}"}},
	)
	sig.Instruction = {{printf "%q" .Description}}
	return sig
}

// TaskModule runs the task with a reason-then-answer strategy.
func TaskModule() *modules.ChainOfThought {
	return modules.NewChainOfThought(TaskSignature())
}

// Run executes one transformation.
func Run(ctx context.Context, input string) (map[string]any, error) {
	return TaskModule().Process(ctx, map[string]any{"input_data": input})
}
`))

// syntheticPromptTemplate renders the prompt users hand to an AI to generate
// more training examples for the task.
var syntheticPromptTemplate = template.Must(template.New("synthetic").Parse(`# Synthetic Data Generation Prompt

Task: {{.Description}}
Input Type: {{.InputType}}
Output Type: {{.OutputType}}

## Instructions for AI to Generate Synthetic Data

Please generate 20-30 diverse examples for this task that cover:

1. **Variety**: Different scenarios and edge cases
2. **Realism**: Data that resembles real-world usage
3. **Complexity**: Mix of simple and complex examples
4. **Edge Cases**: Unusual but valid inputs

### Format for Each Example:
` + "```json" + `
{
  "input": "...",
  "expected_output": "...",
  "category": "normal|edge_case|complex",
  "notes": "Any relevant notes about this example"
}
` + "```" + `

### Special Considerations:
- For file inputs: Describe the file content structure
- For text analysis: Include various text lengths and styles
- For metric extraction: Include different metric types and formats
- Ensure outputs are consistent with the task description

Generate the synthetic data below:
`))

// RenderPipelineCode renders the generated pipeline source text for a task.
func RenderPipelineCode(task models.TaskSpec) (string, error) {
	var buf bytes.Buffer
	if err := pipelineCodeTemplate.Execute(&buf, task); err != nil {
		return "", fmt.Errorf("failed to render pipeline code: %w", err)
	}
	return buf.String(), nil
}

// RenderSyntheticDataPrompt renders the synthetic-data-generation prompt for
// a task.
func RenderSyntheticDataPrompt(task models.TaskSpec) (string, error) {
	var buf bytes.Buffer
	if err := syntheticPromptTemplate.Execute(&buf, task); err != nil {
		return "", fmt.Errorf("failed to render synthetic data prompt: %w", err)
	}
	return buf.String(), nil
}

// FormatExamplesForPrompt formats up to three examples the way they would be
// embedded in a generation prompt, truncating long inputs.
func FormatExamplesForPrompt(examples []models.Example) string {
	const maxInputLen = 200

	var buf bytes.Buffer
	for i, ex := range examples {
		if i >= 3 {
			break
		}
		input := ex.Input
		if len(input) > maxInputLen {
			input = input[:maxInputLen] + "..."
		}
		fmt.Fprintf(&buf, "Example %d:\n  Input: %s\n  Output: %s\n", i+1, input, ex.ExpectedOutput)
	}
	return buf.String()
}
