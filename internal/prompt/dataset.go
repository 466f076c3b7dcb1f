package prompt

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/XiaoConstantine/dspy-go/pkg/core"
	"github.com/longregen/pipegen/internal/domain/models"
)

// DatasetAdapter adapts []models.Example to dspy-go's core.Dataset interface.
type DatasetAdapter struct {
	examples []models.Example
	index    int
}

// NewDatasetAdapter creates a new dataset adapter
func NewDatasetAdapter(examples []models.Example) *DatasetAdapter {
	return &DatasetAdapter{
		examples: examples,
		index:    0,
	}
}

// Next returns the next example in the dataset
func (d *DatasetAdapter) Next() (core.Example, bool) {
	if d.index >= len(d.examples) {
		return core.Example{}, false
	}
	ex := d.examples[d.index]
	d.index++

	return core.Example{
		Inputs:  map[string]interface{}{InputFieldName: ex.Input},
		Outputs: map[string]interface{}{OutputFieldName: ex.ExpectedOutput},
	}, true
}

// Reset resets the dataset iterator
func (d *DatasetAdapter) Reset() {
	d.index = 0
}

// NonEmptyOutput is the validation predicate used during bootstrapping: a
// prediction is accepted when its serialized output text is non-empty. It is
// intentionally weak and does not check semantic correctness against the
// expected output.
func NonEmptyOutput(prediction map[string]interface{}) bool {
	value, ok := prediction[OutputFieldName]
	if !ok {
		return false
	}
	text, ok := value.(string)
	if !ok {
		text = fmt.Sprintf("%v", value)
	}
	return len(strings.TrimSpace(text)) > 0
}

// ValidationRecorder observes which training examples produced a validated
// prediction during bootstrapping, so the selected demonstrations can be
// persisted. It is safe for concurrent metric calls.
type ValidationRecorder struct {
	mu       sync.Mutex
	accepted []models.Demonstration
	seen     map[string]bool
	cap      int
}

// NewValidationRecorder creates a recorder that keeps at most cap
// demonstrations.
func NewValidationRecorder(cap int) *ValidationRecorder {
	return &ValidationRecorder{
		seen: make(map[string]bool),
		cap:  cap,
	}
}

// Metric returns the boolean validation function handed to the bootstrapping
// optimizer. Accepted examples are recorded as bootstrapped demonstrations up
// to the recorder's cap.
func (r *ValidationRecorder) Metric() func(example, prediction map[string]interface{}, ctx context.Context) bool {
	return func(example, prediction map[string]interface{}, ctx context.Context) bool {
		ok := NonEmptyOutput(prediction)
		if !ok {
			return false
		}

		input, _ := example[InputFieldName].(string)
		output, _ := prediction[OutputFieldName].(string)
		if output == "" {
			output = fmt.Sprintf("%v", prediction[OutputFieldName])
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		if len(r.accepted) < r.cap && !r.seen[input] {
			r.seen[input] = true
			r.accepted = append(r.accepted, models.Demonstration{
				Input:        input,
				Output:       output,
				Bootstrapped: true,
			})
		}
		return true
	}
}

// CoreMetric returns the score function handed to Compile: 1 for a validated
// prediction, 0 otherwise.
func (r *ValidationRecorder) CoreMetric() core.Metric {
	return func(expected, actual map[string]interface{}) float64 {
		if NonEmptyOutput(actual) {
			return 1.0
		}
		return 0.0
	}
}

// Accepted returns the recorded bootstrapped demonstrations.
func (r *ValidationRecorder) Accepted() []models.Demonstration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Demonstration, len(r.accepted))
	copy(out, r.accepted)
	return out
}

// WasAccepted reports whether an example input was recorded.
func (r *ValidationRecorder) WasAccepted(input string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seen[input]
}
