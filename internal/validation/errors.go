// Package validation writes filled templates to disk and compiles them into
// PDFs with an external LaTeX compiler.
package validation

import "fmt"

// Error represents a general output error
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("output error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("output error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// RenderFailure is returned when the compiler exits non-zero or produces no PDF
type RenderFailure struct {
	Message   string
	LogOutput string
	Cause     error
}

func (e *RenderFailure) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render failure: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render failure: %s", e.Message)
}

func (e *RenderFailure) Unwrap() error {
	return e.Cause
}
