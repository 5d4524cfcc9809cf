// Package selection picks the bullets that go into a resume under slot
// quotas, bullet-count bounds and a line budget.
package selection

import "fmt"

// Error represents invalid input to a selection run
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}
