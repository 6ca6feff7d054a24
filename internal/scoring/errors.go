// Package scoring composes the keyword matcher, experience calculator and red-flags validator
// into an explainable, mode-dependent résumé score.
package scoring

import "fmt"

// RequestError reports a malformed scoring request. It indicates a caller bug, not a
// problem with the résumé content.
type RequestError struct {
	Field   string
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid scoring request: %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid scoring request: %s: %s", e.Field, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// PolicyError reports an invalid scoring policy
type PolicyError struct {
	Message string
	Cause   error
}

func (e *PolicyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid scoring policy: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid scoring policy: %s", e.Message)
}

func (e *PolicyError) Unwrap() error {
	return e.Cause
}

// AnalyzerError records an analyzer that failed during scoring
type AnalyzerError struct {
	Analyzer string
	Cause    error
}

func (e *AnalyzerError) Error() string {
	return fmt.Sprintf("analyzer %s failed: %v", e.Analyzer, e.Cause)
}

func (e *AnalyzerError) Unwrap() error {
	return e.Cause
}
