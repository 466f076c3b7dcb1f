package models

import "fmt"

// FieldDirection marks a field spec as an input or an output of the
// transformation.
type FieldDirection string

const (
	FieldInput  FieldDirection = "input"
	FieldOutput FieldDirection = "output"
)

// FieldSpec is a plain-data description of one named signature field. The
// ordered list of field specs replaces runtime-generated signature types: a
// single generic executor consumes it.
type FieldSpec struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Direction   FieldDirection `json:"direction"`
}

// PipelineState tracks the one-way Unoptimized -> Optimized transition.
type PipelineState string

const (
	StateUnoptimized PipelineState = "unoptimized"
	StateOptimized   PipelineState = "optimized"
)

// Demonstration is an (input, output) pair embedded in prompts as an
// in-prompt exemplar. Bootstrapped demonstrations passed the validation
// metric during optimization; labeled demonstrations are raw training
// examples attached directly.
type Demonstration struct {
	Input        string `json:"input"`
	Output       string `json:"output"`
	Bootstrapped bool   `json:"bootstrapped"`
}

// Pipeline is the serializable description of a generated transformation:
// its instruction text, its field schema, and any demonstrations selected by
// the optimizer. The callable side (the compiled program) lives outside the
// model layer and is bound per session.
type Pipeline struct {
	Instruction    string          `json:"instruction"`
	Fields         []FieldSpec     `json:"fields"`
	State          PipelineState   `json:"state"`
	Demonstrations []Demonstration `json:"demonstrations,omitempty"`
}

// NewPipeline builds an unoptimized pipeline for a task's field schema.
func NewPipeline(instruction string, fields []FieldSpec) *Pipeline {
	return &Pipeline{
		Instruction: instruction,
		Fields:      fields,
		State:       StateUnoptimized,
	}
}

// MarkOptimized performs the one-time state transition and attaches the
// selected demonstrations. Calling it on an already optimized pipeline is an
// error: the transition never repeats and never reverts.
func (p *Pipeline) MarkOptimized(demos []Demonstration) error {
	if p.State == StateOptimized {
		return fmt.Errorf("pipeline is already optimized")
	}
	p.State = StateOptimized
	p.Demonstrations = demos
	return nil
}

// Optimized reports whether the pipeline carries bootstrapped demonstrations.
func (p *Pipeline) Optimized() bool {
	return p.State == StateOptimized
}

// InputField returns the first input field spec, if any.
func (p *Pipeline) InputField() (FieldSpec, bool) {
	for _, f := range p.Fields {
		if f.Direction == FieldInput {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// OutputField returns the first output field spec, if any.
func (p *Pipeline) OutputField() (FieldSpec, bool) {
	for _, f := range p.Fields {
		if f.Direction == FieldOutput {
			return f, true
		}
	}
	return FieldSpec{}, false
}
