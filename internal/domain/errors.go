package domain

import "errors"

// Common domain errors
var (
	// Model service errors
	ErrModelUnavailable = errors.New("model service unavailable")
	ErrInference        = errors.New("model inference failed")

	// Validation errors
	ErrEmptyTaskDescription = errors.New("task description cannot be empty")
	ErrNoExamples           = errors.New("at least one example is required")

	// Artifact errors
	ErrArtifactWrite = errors.New("failed to write artifact")
)

// DomainError wraps a domain error with additional context
type DomainError struct {
	Err     error
	Message string
	Code    string
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func NewDomainError(err error, message string) *DomainError {
	return &DomainError{
		Err:     err,
		Message: message,
	}
}

func NewDomainErrorWithCode(err error, message, code string) *DomainError {
	return &DomainError{
		Err:     err,
		Message: message,
		Code:    code,
	}
}
