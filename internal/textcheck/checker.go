// Package textcheck defines the spelling and grammar backends used by the red-flags
// validator, together with resilience wrappers for remote backends.
package textcheck

import "context"

// Finding is a single problem reported by a checker
type Finding struct {
	Message    string `json:"message"`
	Span       string `json:"span,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Checker analyzes one span of text. Implementations must be safe for concurrent use
// and should honor ctx cancellation.
type Checker interface {
	Name() string
	Check(ctx context.Context, text string) ([]Finding, error)
}

// Func adapts a function to the Checker interface
type Func struct {
	CheckerName string
	Fn          func(ctx context.Context, text string) ([]Finding, error)
}

// Name returns the checker name
func (f Func) Name() string { return f.CheckerName }

// Check calls the wrapped function
func (f Func) Check(ctx context.Context, text string) ([]Finding, error) {
	return f.Fn(ctx, text)
}
