package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-scorer/internal/logger"
	"github.com/jonathan/resume-scorer/internal/textcheck"
	"github.com/jonathan/resume-scorer/internal/types"
)

// span is a piece of free text with the location issues about it should point to
type span struct {
	text string
	loc  func() *types.IssueLocation
}

type cachedCheck struct {
	findings []textcheck.Finding
	err      error
}

// textSpans returns the summary followed by every non-blank bullet, in document order
func textSpans(resume *types.ResumeData) []span {
	var spans []span
	if summary := strings.TrimSpace(resume.Summary); summary != "" {
		spans = append(spans, span{text: summary, loc: func() *types.IssueLocation { return at("summary") }})
	}
	for i, entry := range resume.Experience {
		for j, bullet := range entry.Bullets {
			text := strings.TrimSpace(bullet)
			if text == "" {
				continue
			}
			i, j := i, j
			spans = append(spans, span{text: text, loc: func() *types.IssueLocation { return atBullet(i, j) }})
		}
	}
	return spans
}

// runBackend checks each span with one backend. Identical spans are checked once per
// pass. The first failure aborts the backend so a dead service is not retried per span.
func (v *Validator) runBackend(
	ctx context.Context,
	kind string,
	checker textcheck.Checker,
	spans []span,
	cache map[string]cachedCheck,
) ([]types.ValidationIssue, error) {
	c := &collector{}
	for _, s := range spans {
		key := checker.Name() + "\x00" + s.text
		result, ok := cache[key]
		if !ok {
			result = v.checkSpan(ctx, checker, s.text)
			cache[key] = result
		}
		if result.err != nil {
			return nil, result.err
		}
		for _, f := range result.findings {
			c.add(kind, s.loc(), findingMessage(f))
		}
	}
	return c.issues, nil
}

// checkSpan bounds one backend call by the timeout. A checker that ignores ctx is left
// running in the background and its late answer is dropped.
func (v *Validator) checkSpan(ctx context.Context, checker textcheck.Checker, text string) cachedCheck {
	callCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	// Buffered so an abandoned call can still send and exit
	done := make(chan cachedCheck, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- cachedCheck{err: fmt.Errorf("checker panicked: %v", r)}
			}
		}()
		findings, err := checker.Check(callCtx, text)
		done <- cachedCheck{findings: findings, err: err}
	}()

	select {
	case result := <-done:
		if result.err == nil {
			result.err = callCtx.Err()
		}
		return result
	case <-callCtx.Done():
		return cachedCheck{err: fmt.Errorf("%s did not answer: %w", checker.Name(), callCtx.Err())}
	}
}

func findingMessage(f textcheck.Finding) string {
	msg := f.Message
	if f.Span != "" && !strings.Contains(msg, f.Span) {
		msg = fmt.Sprintf("%s: %q", msg, logger.TruncateForLog(f.Span, 40))
	}
	if f.Suggestion != "" {
		msg = fmt.Sprintf("%s (suggestion: %s)", msg, f.Suggestion)
	}
	return msg
}
