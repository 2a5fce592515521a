package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates Run was called twice.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrEmptySelection indicates copy or cut without selected text.
	ErrEmptySelection = errors.New("nothing selected")

	// ErrEmptyClipboard indicates paste with nothing on the clipboard.
	ErrEmptyClipboard = errors.New("clipboard is empty")
)

// OperationError represents a failed application action.
type OperationError struct {
	Op     string // Operation name (e.g., "save", "paste")
	Target string // Target of the operation, usually a document name
	Err    error  // Underlying error
}

func (e *OperationError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// InitError represents a failure to start the terminal.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}
