package dispatch

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration marks a malformed binding rejected at
	// registration time.
	ErrInvalidConfiguration = errors.New("invalid binding configuration")

	// ErrDuplicateBinding marks a binding whose (prefix, trigger)
	// pair is already registered in an overlapping scope, which the
	// matcher could never disambiguate.
	ErrDuplicateBinding = errors.New("duplicate binding")
)

// HandlerError wraps a failure inside a registered handler. The
// dispatcher contains it; it never propagates past Dispatch.
type HandlerError struct {
	Trigger string
	Cause   error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler %q: %v", e.Trigger, e.Cause)
}

func (e *HandlerError) Unwrap() error {
	return e.Cause
}
