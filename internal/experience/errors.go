// Package experience parses résumé date ranges and computes total professional experience.
package experience

import "fmt"

// LoadError represents an error during file I/O, JSON parsing or schema validation
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// DateParseError reports a date string that could not be interpreted
type DateParseError struct {
	Input   string
	Message string
}

func (e *DateParseError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("date parse error: %s", e.Message)
	}
	return fmt.Sprintf("date parse error: %q: %s", e.Input, e.Message)
}
