// Package rendering compiles LaTeX resume templates into slots and fills
// them with rendered experience blocks.
package rendering

import "fmt"

// TemplateError represents an error loading a template or its block descriptors
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// TemplateSyntaxError represents a slot marker whose payload is malformed
type TemplateSyntaxError struct {
	// Token is the index of the marker in the token stream
	Token   int
	Message string
	Cause   error
}

func (e *TemplateSyntaxError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template syntax error at token %d: %s: %v", e.Token, e.Message, e.Cause)
	}
	return fmt.Sprintf("template syntax error at token %d: %s", e.Token, e.Message)
}

func (e *TemplateSyntaxError) Unwrap() error {
	return e.Cause
}

// SlotNotFoundError is returned when a category has no slot in the template
type SlotNotFoundError struct {
	Category string
}

func (e *SlotNotFoundError) Error() string {
	return fmt.Sprintf("slot not found: template declares no slot for %q", e.Category)
}
