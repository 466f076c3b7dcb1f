package models

import (
	"context"
	"time"
)

// Runner executes one inference through a generated pipeline: input text in,
// output text out. One completion request per invocation.
type Runner interface {
	Run(ctx context.Context, input string) (string, error)
}

// Session captures one generation request made through the HTTP front end:
// the task, its examples, the rendered code, the pipeline description and the
// callable used by the test endpoint. Sessions are held in a bounded,
// TTL-evicted store.
type Session struct {
	ID           string
	Task         TaskSpec
	Examples     []Example
	PipelineCode string
	Pipeline     *Pipeline
	Runner       Runner
	CreatedAt    time.Time
}

// Optimized reports whether the session's pipeline completed optimization.
func (s *Session) Optimized() bool {
	return s.Pipeline != nil && s.Pipeline.Optimized()
}
