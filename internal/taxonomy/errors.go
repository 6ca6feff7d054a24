package taxonomy

import (
	"errors"
	"fmt"
)

// ErrUnresolved is returned when a (role, level) pair is absent from the taxonomy
var ErrUnresolved = errors.New("role not found in taxonomy")

// UnresolvedError describes which part of a lookup failed. It matches ErrUnresolved with errors.Is.
type UnresolvedError struct {
	Role  string
	Level string
	Field string
}

func (e *UnresolvedError) Error() string {
	if e.Field == "level" {
		return fmt.Sprintf("level %q not found in taxonomy for role %q", e.Level, e.Role)
	}
	return fmt.Sprintf("role %q not found in taxonomy", e.Role)
}

func (e *UnresolvedError) Is(target error) bool {
	return target == ErrUnresolved
}

// LoadError represents an error reading, validating or indexing a taxonomy file
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("taxonomy load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("taxonomy load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
