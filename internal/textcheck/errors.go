package textcheck

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned when a backend cannot serve requests, for example
// while its circuit breaker is open
var ErrUnavailable = errors.New("text check backend unavailable")

// BackendError wraps a failure reported by a checker backend
type BackendError struct {
	Checker string
	Message string
	Cause   error
}

func (e *BackendError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s check failed: %s: %v", e.Checker, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s check failed: %s", e.Checker, e.Message)
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}
