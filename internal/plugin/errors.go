package plugin

import "errors"

// Plugin errors.
var (
	// ErrStateClosed is returned when operating on a closed host.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a script runs past its deadline.
	ErrExecutionTimeout = errors.New("lua execution timeout")
)

// ScriptError reports a failure inside a Lua script.
type ScriptError struct {
	// Source is the script path or chunk name.
	Source string
	Err    error
}

func (e *ScriptError) Error() string {
	return "lua " + e.Source + ": " + e.Err.Error()
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
