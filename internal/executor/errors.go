package executor

import (
	"fmt"
	"time"
)

// TimeoutError reports that a module's initializer did not settle within its
// attempt timeout.
type TimeoutError struct {
	Module  string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("module '%s' timed out after %s", e.Module, e.Timeout)
}

// InitError wraps an application-level error thrown by a module's initializer.
type InitError struct {
	Module string
	Err    error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("module '%s' failed to initialize: %v", e.Module, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// RequiredFailureError is the fatal error propagated out of Initialize when a
// required module exhausts its retry budget.
type RequiredFailureError struct {
	Module string
	Err    error
}

func (e *RequiredFailureError) Error() string {
	return fmt.Sprintf("required module '%s' failed: %v", e.Module, e.Err)
}

func (e *RequiredFailureError) Unwrap() error { return e.Err }
