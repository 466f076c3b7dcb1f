package prompt

import (
	"context"
	"fmt"

	"github.com/XiaoConstantine/dspy-go/pkg/core"
	"github.com/XiaoConstantine/dspy-go/pkg/modules"
)

// PipelinePredict wraps dspy-go's ChainOfThought module: the generated
// pipeline reasons before answering, issuing one completion request per
// invocation.
type PipelinePredict struct {
	*modules.ChainOfThought
	sig Signature
}

// NewPipelinePredict creates the predictor for a signature.
func NewPipelinePredict(sig Signature) *PipelinePredict {
	return &PipelinePredict{
		ChainOfThought: modules.NewChainOfThought(sig.Signature),
		sig:            sig,
	}
}

// Signature returns the wrapped signature.
func (p *PipelinePredict) Signature() Signature {
	return p.sig
}

// Process executes one prediction.
func (p *PipelinePredict) Process(ctx context.Context, inputs map[string]any) (map[string]any, error) {
	outputs, err := p.ChainOfThought.Process(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("predict process failed: %w", err)
	}
	return outputs, nil
}

// ToProgram wraps the predictor in a core.Program for use with dspy-go
// optimizers.
func (p *PipelinePredict) ToProgram() core.Program {
	programModules := map[string]core.Module{
		p.sig.Name: p.ChainOfThought,
	}

	forward := func(ctx context.Context, inputs map[string]interface{}) (map[string]interface{}, error) {
		anyInputs := make(map[string]any, len(inputs))
		for k, v := range inputs {
			anyInputs[k] = v
		}

		outputs, err := p.Process(ctx, anyInputs)
		if err != nil {
			return nil, err
		}

		result := make(map[string]interface{}, len(outputs))
		for k, v := range outputs {
			result[k] = v
		}
		return result, nil
	}

	return core.NewProgram(programModules, forward)
}

// ProgramRunner adapts a compiled core.Program to the single input -> single
// output call shape the front ends use.
type ProgramRunner struct {
	program core.Program
}

// NewProgramRunner wraps a program for inference.
func NewProgramRunner(program core.Program) *ProgramRunner {
	return &ProgramRunner{program: program}
}

// Run executes one inference through the program and extracts the output
// field's text.
func (r *ProgramRunner) Run(ctx context.Context, input string) (string, error) {
	outputs, err := r.program.Execute(ctx, map[string]interface{}{
		InputFieldName: input,
	})
	if err != nil {
		return "", err
	}

	value, ok := outputs[OutputFieldName]
	if !ok {
		return "", fmt.Errorf("program output missing field %q", OutputFieldName)
	}
	if s, ok := value.(string); ok {
		return s, nil
	}
	return fmt.Sprintf("%v", value), nil
}
