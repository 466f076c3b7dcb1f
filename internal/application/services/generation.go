package services

import (
	"context"
	"fmt"

	"github.com/XiaoConstantine/dspy-go/pkg/core"
	"github.com/longregen/pipegen/internal/adapters/metrics"
	"github.com/longregen/pipegen/internal/domain"
	"github.com/longregen/pipegen/internal/domain/models"
	"github.com/longregen/pipegen/internal/ports"
	"github.com/longregen/pipegen/internal/prompt"
)

// GenerationOutput is the result of one pipeline generation: the serializable
// pipeline, its rendered source text, the predictor (kept for optimization)
// and the runner used for inference.
type GenerationOutput struct {
	Pipeline     *models.Pipeline
	PipelineCode string
	Predictor    *prompt.PipelinePredict
	Runner       models.Runner
}

// GenerationService builds a signature, a chain-of-thought module and the
// rendered artifacts for a task spec. One model client handle is bound per
// generation and reused for the session's lifetime.
type GenerationService struct {
	client ports.ModelClient
}

// NewGenerationService creates a generation service bound to a model client.
func NewGenerationService(client ports.ModelClient) *GenerationService {
	return &GenerationService{client: client}
}

// Generate validates the task, verifies the model service is reachable, and
// builds the pipeline plus its rendered source text. A connection failure is
// fatal for the operation and is returned to the caller with the
// domain.ErrModelUnavailable sentinel for remediation messaging.
func (s *GenerationService) Generate(ctx context.Context, task models.TaskSpec, examples []models.Example) (*GenerationOutput, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if len(examples) == 0 {
		return nil, domain.NewDomainError(domain.ErrNoExamples, "pipeline generation needs training examples")
	}

	if err := s.client.Ping(ctx); err != nil {
		return nil, fmt.Errorf("connect to model service: %w", err)
	}

	sig, err := prompt.BuildSignature(task)
	if err != nil {
		return nil, err
	}

	// All dspy-go module executions in this process route through the bound
	// client.
	core.SetDefaultLLM(prompt.NewModelClientAdapter(s.client))

	predictor := prompt.NewPipelinePredict(sig)
	program := predictor.ToProgram()

	code, err := prompt.RenderPipelineCode(task)
	if err != nil {
		return nil, err
	}

	metrics.GenerationsTotal.Inc()

	return &GenerationOutput{
		Pipeline:     models.NewPipeline(task.Description, sig.Fields),
		PipelineCode: code,
		Predictor:    predictor,
		Runner:       prompt.NewProgramRunner(program),
	}, nil
}

// RenderSyntheticPrompt renders the synthetic-data-generation prompt for a
// task.
func (s *GenerationService) RenderSyntheticPrompt(task models.TaskSpec) (string, error) {
	return prompt.RenderSyntheticDataPrompt(task)
}
