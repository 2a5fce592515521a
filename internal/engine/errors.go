package engine

import "errors"

// Errors returned by engine operations.
// Apply turns all of them into an unhandled command; none leave the buffer
// in a partial state.
var (
	// ErrNotInTable indicates a table command was issued outside a table.
	ErrNotInTable = errors.New("not in a table")

	// ErrUnknownTemplate indicates a template name is not registered.
	ErrUnknownTemplate = errors.New("unknown template")

	// ErrInvalidHeadingLevel indicates a heading level outside 1..6.
	ErrInvalidHeadingLevel = errors.New("invalid heading level")
)
