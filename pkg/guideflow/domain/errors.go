package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrFlowNotFound is returned when no document exists for an id.
	ErrFlowNotFound = errors.New("flow not found")
	// ErrStepNotFound is returned when an edit names an unknown step id.
	ErrStepNotFound = errors.New("step not found")
	// ErrGuardedDeletion is returned for attempts to remove the start step
	// or the last remaining step.
	ErrGuardedDeletion = errors.New("step cannot be deleted")
)

// ValidationError identifies the document field that fails a save
// precondition. All core errors are local and recoverable: the document the
// operation was given is left unchanged.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid flow document: %s: %s", e.Field, e.Message)
}
