package script

import (
	"errors"
	"fmt"
)

// Sentinel errors for the script package.
var (
	// ErrFunctionNotFound is returned by Callback when the named global
	// is absent or not a function.
	ErrFunctionNotFound = errors.New("lua function not found")

	// ErrEngineClosed is returned when operating on a closed engine.
	ErrEngineClosed = errors.New("script engine is closed")
)

// CallError wraps a Lua runtime error raised by a scripted listener.
// It is delivered by panicking, matching the dispatcher's fault model.
type CallError struct {
	// Function is the Lua function that failed.
	Function string

	// Err is the underlying Lua error.
	Err error
}

// Error implements the error interface.
func (e *CallError) Error() string {
	return fmt.Sprintf("lua function %s: %v", e.Function, e.Err)
}

// Unwrap returns the underlying error.
func (e *CallError) Unwrap() error {
	return e.Err
}
