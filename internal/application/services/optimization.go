package services

import (
	"context"
	"fmt"
	"log"

	"github.com/XiaoConstantine/dspy-go/pkg/core"
	"github.com/XiaoConstantine/dspy-go/pkg/optimizers"
	"github.com/longregen/pipegen/internal/adapters/metrics"
	"github.com/longregen/pipegen/internal/domain/models"
	"github.com/longregen/pipegen/internal/prompt"
)

const (
	// Caps on demonstration selection, regardless of how many examples the
	// user supplies.
	maxBootstrappedDemos = 3
	maxLabeledDemos      = 3
)

// OptimizationResult reports an optimization attempt explicitly: either the
// pipeline was optimized, or it degraded to the unoptimized pipeline with a
// reason. The adapter never lets an error escape its boundary.
type OptimizationResult struct {
	Pipeline  *models.Pipeline
	Runner    models.Runner
	Optimized bool
	Reason    string
}

// OptimizationService bootstraps few-shot demonstrations for a generated
// pipeline by delegating selection to dspy-go's BootstrapFewShot optimizer.
type OptimizationService struct {
	// compile runs the optimizer over the program. Swappable in tests.
	compile func(ctx context.Context, program core.Program, dataset core.Dataset, metric core.Metric, recorder *prompt.ValidationRecorder) (core.Program, error)
}

// NewOptimizationService creates a new optimization service.
func NewOptimizationService() *OptimizationService {
	return &OptimizationService{
		compile: func(ctx context.Context, program core.Program, dataset core.Dataset, metric core.Metric, recorder *prompt.ValidationRecorder) (core.Program, error) {
			optimizer := optimizers.NewBootstrapFewShot(recorder.Metric(), maxBootstrappedDemos)
			return optimizer.Compile(ctx, program, dataset, metric)
		},
	}
}

// Optimize runs BootstrapFewShot over the usable examples. Selection policy
// belongs to the external optimizer and may differ between runs; no seed is
// pinned. Any failure (zero usable examples, a model-service error
// mid-optimization, a panic inside the optimizer) degrades to the original
// unoptimized pipeline with a reason, never an error.
func (s *OptimizationService) Optimize(ctx context.Context, out *GenerationOutput, examples []models.Example) (result OptimizationResult) {
	result = OptimizationResult{
		Pipeline: out.Pipeline,
		Runner:   out.Runner,
	}

	defer func() {
		if r := recover(); r != nil {
			result.Optimized = false
			result.Reason = fmt.Sprintf("optimization panicked: %v", r)
			result.Pipeline = out.Pipeline
			result.Runner = out.Runner
			log.Printf("Optimization failed, using unoptimized pipeline: %s", result.Reason)
			metrics.OptimizationsTotal.WithLabelValues("degraded").Inc()
		}
	}()

	usable := models.UsableExamples(examples)
	if len(usable) == 0 {
		result.Reason = "no usable examples: each example needs a non-empty input and expected output"
		log.Printf("Skipping optimization: %s", result.Reason)
		metrics.OptimizationsTotal.WithLabelValues("degraded").Inc()
		return result
	}

	recorder := prompt.NewValidationRecorder(maxBootstrappedDemos)
	program := out.Predictor.ToProgram()
	dataset := prompt.NewDatasetAdapter(usable)

	log.Printf("Running optimization with %d examples...", len(usable))
	optimized, err := s.compile(ctx, program, dataset, recorder.CoreMetric(), recorder)
	if err != nil {
		result.Reason = fmt.Sprintf("optimizer failed: %v", err)
		log.Printf("Optimization failed, using unoptimized pipeline: %s", result.Reason)
		metrics.OptimizationsTotal.WithLabelValues("degraded").Inc()
		return result
	}

	demos := recorder.Accepted()
	// Labeled demonstrations fill from the remaining usable examples,
	// attached directly without a validation pass.
	labeled := 0
	for _, ex := range usable {
		if labeled >= maxLabeledDemos {
			break
		}
		if recorder.WasAccepted(ex.Input) {
			continue
		}
		demos = append(demos, models.Demonstration{
			Input:  ex.Input,
			Output: ex.ExpectedOutput,
		})
		labeled++
	}

	if err := result.Pipeline.MarkOptimized(demos); err != nil {
		result.Reason = fmt.Sprintf("state transition failed: %v", err)
		log.Printf("Optimization failed, using unoptimized pipeline: %s", result.Reason)
		metrics.OptimizationsTotal.WithLabelValues("degraded").Inc()
		return result
	}

	result.Runner = prompt.NewProgramRunner(optimized)
	result.Optimized = true
	result.Reason = "Pipeline optimized successfully!"
	log.Printf("Pipeline optimized with %d demonstrations", len(demos))
	metrics.OptimizationsTotal.WithLabelValues("optimized").Inc()
	return result
}
