package models

import (
	"strings"

	"github.com/longregen/pipegen/internal/domain"
)

// TaskSpec describes the transformation a user wants: a free-text task
// description plus coarse input/output type tags. The tags are not a closed
// enum; any string is accepted and echoed into the generated field
// descriptions.
type TaskSpec struct {
	Description string `json:"description"`
	InputType   string `json:"input_type"`
	OutputType  string `json:"output_type"`
}

// NewTaskSpec normalizes and validates user-supplied task information.
func NewTaskSpec(description, inputType, outputType string) (TaskSpec, error) {
	task := TaskSpec{
		Description: strings.TrimSpace(description),
		InputType:   strings.ToLower(strings.TrimSpace(inputType)),
		OutputType:  strings.ToLower(strings.TrimSpace(outputType)),
	}
	if task.InputType == "" {
		task.InputType = "text"
	}
	if task.OutputType == "" {
		task.OutputType = "text"
	}
	if err := task.Validate(); err != nil {
		return TaskSpec{}, err
	}
	return task, nil
}

// Validate checks the single hard requirement on a task spec.
func (t TaskSpec) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return domain.ErrEmptyTaskDescription
	}
	return nil
}

// Example is a single input/output pair for the task. Examples are created by
// a front end and never mutated afterwards.
type Example struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"output"`
	Description    string `json:"description,omitempty"`
}

// Usable reports whether the example can participate in optimization.
func (e Example) Usable() bool {
	return strings.TrimSpace(e.Input) != "" && strings.TrimSpace(e.ExpectedOutput) != ""
}

// UsableExamples filters an example list down to the ones optimization can
// consume, preserving order.
func UsableExamples(examples []Example) []Example {
	usable := make([]Example, 0, len(examples))
	for _, ex := range examples {
		if ex.Usable() {
			usable = append(usable, ex)
		}
	}
	return usable
}
