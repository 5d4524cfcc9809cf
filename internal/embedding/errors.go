package embedding

import "fmt"

// Error represents a failure to produce or compare embeddings
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
