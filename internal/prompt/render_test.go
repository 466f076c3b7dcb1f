package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longregen/pipegen/internal/domain/models"
)

func TestRenderPipelineCode(t *testing.T) {
	task, err := models.NewTaskSpec("Extract metrics from server logs", "log lines", "json")
	require.NoError(t, err)

	code, err := RenderPipelineCode(task)
	require.NoError(t, err)

	assert.Contains(t, code, "package pipeline")
	assert.Contains(t, code, `core.NewField("input_data")`)
	assert.Contains(t, code, `Input data (log lines)`)
	assert.Contains(t, code, `Output result (json)`)
	assert.Contains(t, code, "modules.NewChainOfThought")
	// Instruction is the task description, quoted
	assert.Contains(t, code, `"Extract metrics from server logs"`)
	// Template escapes produced literal braces, not template syntax
	assert.Contains(t, code, "[]core.InputField{{Field: input}}")
	assert.NotContains(t, code, "{{.")
}

func TestRenderSyntheticDataPrompt(t *testing.T) {
	task, err := models.NewTaskSpec("Summarize articles", "article", "summary")
	require.NoError(t, err)

	prompt, err := RenderSyntheticDataPrompt(task)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Task: Summarize articles")
	assert.Contains(t, prompt, "Input Type: article")
	assert.Contains(t, prompt, "Output Type: summary")
	for _, section := range []string{"Variety", "Realism", "Complexity", "Edge Cases"} {
		assert.Contains(t, prompt, section)
	}
	assert.Contains(t, prompt, `"expected_output"`)
}

func TestFormatExamplesForPrompt(t *testing.T) {
	examples := []models.Example{
		{Input: "one", ExpectedOutput: "1"},
		{Input: "two", ExpectedOutput: "2"},
		{Input: "three", ExpectedOutput: "3"},
		{Input: "four", ExpectedOutput: "4"},
	}

	out := FormatExamplesForPrompt(examples)
	assert.Contains(t, out, "Example 1:")
	assert.Contains(t, out, "Example 3:")
	assert.NotContains(t, out, "Example 4:")
}

func TestFormatExamplesForPrompt_TruncatesLongInputs(t *testing.T) {
	long := strings.Repeat("x", 500)
	out := FormatExamplesForPrompt([]models.Example{{Input: long, ExpectedOutput: "y"}})

	assert.Contains(t, out, strings.Repeat("x", 200)+"...")
	assert.NotContains(t, out, strings.Repeat("x", 201))
}
