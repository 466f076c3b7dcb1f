package prompt

import (
	"fmt"

	"github.com/XiaoConstantine/dspy-go/pkg/core"
	"github.com/longregen/pipegen/internal/domain/models"
)

// Field names used by every generated pipeline. The executor is generic: one
// named input field mapped to one named output field, shaped by the task's
// description strings.
const (
	InputFieldName  = "input_data"
	OutputFieldName = "output"
)

// Signature wraps dspy-go's signature together with the plain field-spec list
// that gets persisted and rendered.
type Signature struct {
	core.Signature
	Name   string
	Fields []models.FieldSpec
}

// BuildSignature derives a signature from a task spec. The field descriptions
// template-substitute the task's type tags verbatim, and the task description
// becomes the signature's instruction text.
func BuildSignature(task models.TaskSpec) (Signature, error) {
	if err := task.Validate(); err != nil {
		return Signature{}, err
	}

	fields := []models.FieldSpec{
		{
			Name:        InputFieldName,
			Description: fmt.Sprintf("Input data (%s)", task.InputType),
			Direction:   models.FieldInput,
		},
		{
			Name:        OutputFieldName,
			Description: fmt.Sprintf("Output result (%s)", task.OutputType),
			Direction:   models.FieldOutput,
		},
	}

	inputs := make([]core.InputField, 0, 1)
	outputs := make([]core.OutputField, 0, 1)
	for _, spec := range fields {
		f := core.NewField(spec.Name)
		f.Description = spec.Description
		switch spec.Direction {
		case models.FieldInput:
			inputs = append(inputs, core.InputField{Field: f})
		case models.FieldOutput:
			outputs = append(outputs, core.OutputField{Field: f})
		}
	}

	coreSig := core.NewSignature(inputs, outputs)
	coreSig.Instruction = task.Description

	return Signature{
		Signature: coreSig,
		Name:      "task_pipeline",
		Fields:    fields,
	}, nil
}
