// Package validation runs the red-flags rule battery over a résumé and classifies each finding.
package validation

import "fmt"

// Error represents a general validation error
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// BackendFailure records a spelling or grammar backend that could not complete
type BackendFailure struct {
	Category string
	Checker  string
	Cause    error
}

func (e *BackendFailure) Error() string {
	return fmt.Sprintf("%s backend %s failed: %v", e.Category, e.Checker, e.Cause)
}

func (e *BackendFailure) Unwrap() error {
	return e.Cause
}
