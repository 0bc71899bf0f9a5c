package engine

import "errors"

var (
	// ErrChecklistIncomplete blocks Advance while checklist items on the
	// current step remain unchecked.
	ErrChecklistIncomplete = errors.New("checklist incomplete")
	// ErrBrokenTransition is returned when a selected destination is empty or
	// absent from the document, e.g. after a deletion cascade left a dangling
	// option.
	ErrBrokenTransition = errors.New("transition target does not exist")
	// ErrHistoryLimit stops a run whose history grew past the configured cap.
	// Loops are a legitimate authoring pattern ("retry this check"), so the
	// engine bounds them instead of forbidding them.
	ErrHistoryLimit = errors.New("history limit exceeded")
	// ErrSessionNotFound is returned by the session manager for unknown or
	// expired session ids.
	ErrSessionNotFound = errors.New("session not found")
)
