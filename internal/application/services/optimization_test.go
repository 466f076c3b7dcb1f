package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/XiaoConstantine/dspy-go/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longregen/pipegen/internal/domain/models"
	"github.com/longregen/pipegen/internal/prompt"
)

type stubRunner struct{ output string }

func (r *stubRunner) Run(ctx context.Context, input string) (string, error) {
	return r.output, nil
}

func newTestOutput(t *testing.T) *GenerationOutput {
	t.Helper()
	task, err := models.NewTaskSpec("Classify customer tickets", "ticket", "category")
	require.NoError(t, err)

	sig, err := prompt.BuildSignature(task)
	require.NoError(t, err)

	return &GenerationOutput{
		Pipeline:  models.NewPipeline(task.Description, sig.Fields),
		Predictor: prompt.NewPipelinePredict(sig),
		Runner:    &stubRunner{output: "unoptimized"},
	}
}

// passThroughCompile simulates a bootstrap run in which every example's
// prediction validates.
func passThroughCompile(examples []models.Example) func(ctx context.Context, program core.Program, dataset core.Dataset, metric core.Metric, recorder *prompt.ValidationRecorder) (core.Program, error) {
	return func(ctx context.Context, program core.Program, dataset core.Dataset, metric core.Metric, recorder *prompt.ValidationRecorder) (core.Program, error) {
		validate := recorder.Metric()
		for _, ex := range examples {
			validate(
				map[string]interface{}{prompt.InputFieldName: ex.Input},
				map[string]interface{}{prompt.OutputFieldName: "answer for " + ex.Input},
				ctx,
			)
		}
		return program, nil
	}
}

func TestOptimize_NoUsableExamples_Degrades(t *testing.T) {
	out := newTestOutput(t)
	svc := NewOptimizationService()
	svc.compile = func(ctx context.Context, program core.Program, dataset core.Dataset, metric core.Metric, recorder *prompt.ValidationRecorder) (core.Program, error) {
		t.Fatal("compile must not run without usable examples")
		return program, nil
	}

	result := svc.Optimize(context.Background(), out, []models.Example{
		{Input: "only input, no output"},
		{Input: "", ExpectedOutput: "only output"},
	})

	assert.False(t, result.Optimized)
	assert.NotEmpty(t, result.Reason)
	assert.Same(t, out.Pipeline, result.Pipeline)
	assert.Equal(t, out.Runner, result.Runner)
	assert.False(t, result.Pipeline.Optimized())
}

func TestOptimize_CompileError_Degrades(t *testing.T) {
	out := newTestOutput(t)
	svc := NewOptimizationService()
	svc.compile = func(ctx context.Context, program core.Program, dataset core.Dataset, metric core.Metric, recorder *prompt.ValidationRecorder) (core.Program, error) {
		return core.Program{}, errors.New("model service went away")
	}

	result := svc.Optimize(context.Background(), out, []models.Example{
		{Input: "a", ExpectedOutput: "1"},
	})

	assert.False(t, result.Optimized)
	assert.Contains(t, result.Reason, "model service went away")
	assert.Equal(t, out.Runner, result.Runner)
	assert.False(t, result.Pipeline.Optimized())
}

func TestOptimize_CompilePanic_Degrades(t *testing.T) {
	out := newTestOutput(t)
	svc := NewOptimizationService()
	svc.compile = func(ctx context.Context, program core.Program, dataset core.Dataset, metric core.Metric, recorder *prompt.ValidationRecorder) (core.Program, error) {
		panic("optimizer blew up")
	}

	var result OptimizationResult
	require.NotPanics(t, func() {
		result = svc.Optimize(context.Background(), out, []models.Example{
			{Input: "a", ExpectedOutput: "1"},
		})
	})

	assert.False(t, result.Optimized)
	assert.Contains(t, result.Reason, "optimizer blew up")
	assert.Equal(t, out.Runner, result.Runner)
}

func TestOptimize_TwoExamples_BothBootstrapped(t *testing.T) {
	out := newTestOutput(t)
	examples := []models.Example{
		{Input: "App crashes on startup", ExpectedOutput: "bug"},
		{Input: "Please add dark mode", ExpectedOutput: "feature"},
	}

	svc := NewOptimizationService()
	svc.compile = passThroughCompile(examples)

	result := svc.Optimize(context.Background(), out, examples)

	require.True(t, result.Optimized)
	assert.True(t, result.Pipeline.Optimized())
	require.Len(t, result.Pipeline.Demonstrations, 2)
	for _, demo := range result.Pipeline.Demonstrations {
		assert.True(t, demo.Bootstrapped)
	}
	assert.NotEqual(t, out.Runner, result.Runner)
}

func TestOptimize_DemoCapsWithManyExamples(t *testing.T) {
	out := newTestOutput(t)
	examples := make([]models.Example, 10)
	for i := range examples {
		examples[i] = models.Example{
			Input:          fmt.Sprintf("ticket %d", i),
			ExpectedOutput: fmt.Sprintf("category %d", i),
		}
	}

	svc := NewOptimizationService()
	svc.compile = passThroughCompile(examples)

	result := svc.Optimize(context.Background(), out, examples)

	require.True(t, result.Optimized)
	demos := result.Pipeline.Demonstrations
	// 3 bootstrapped plus 3 labeled, regardless of the 10 supplied
	require.Len(t, demos, 6)

	bootstrapped := 0
	for _, demo := range demos {
		if demo.Bootstrapped {
			bootstrapped++
		}
	}
	assert.Equal(t, 3, bootstrapped)

	// Labeled demos carry the exact expected outputs of unselected examples
	for _, demo := range demos[3:] {
		assert.False(t, demo.Bootstrapped)
		assert.Contains(t, demo.Output, "category")
	}
}

func TestOptimize_SkipsUnusableExamples(t *testing.T) {
	out := newTestOutput(t)
	examples := []models.Example{
		{Input: "usable", ExpectedOutput: "yes"},
		{Input: "no output"},
	}

	svc := NewOptimizationService()
	svc.compile = passThroughCompile(models.UsableExamples(examples))

	result := svc.Optimize(context.Background(), out, examples)

	require.True(t, result.Optimized)
	require.Len(t, result.Pipeline.Demonstrations, 1)
	assert.Equal(t, "usable", result.Pipeline.Demonstrations[0].Input)
}
