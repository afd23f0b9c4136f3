package chain

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateHandler is returned when a handler instance is attached to a chain twice
	ErrDuplicateHandler = errors.New("duplicate handler")

	// ErrNilHandler is returned when attaching a nil handler
	ErrNilHandler = errors.New("nil handler")

	// ErrUncomparableHandler is returned when a handler's dynamic type cannot be compared for identity
	ErrUncomparableHandler = errors.New("handler type is not comparable")
)

// DuplicateHandlerError reports which handler was attached twice and where it already sits
type DuplicateHandlerError struct {
	Identity string
	Position int
}

func (e *DuplicateHandlerError) Error() string {
	return fmt.Sprintf("%s: %q already attached at position %d", ErrDuplicateHandler, e.Identity, e.Position)
}

// Unwrap allows errors.Is(err, ErrDuplicateHandler)
func (e *DuplicateHandlerError) Unwrap() error {
	return ErrDuplicateHandler
}
