// Package types provides type definitions for structured data used throughout the resume-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Severity classifies a validation issue
type Severity string

const (
	// SeverityCritical issues are weighted heavily by the red-flags category
	SeverityCritical Severity = "critical"
	// SeverityWarning issues are minor quality problems
	SeverityWarning Severity = "warning"
)

// ValidationIssue is a single finding from the red-flags validator
type ValidationIssue struct {
	Kind     string         `json:"kind"`
	Severity Severity       `json:"severity"`
	Message  string         `json:"message"`
	Location *IssueLocation `json:"location,omitempty"`
}

// IssueLocation points at the part of the résumé an issue refers to.
// Entry and Bullet are zero-based indexes.
type IssueLocation struct {
	Section string `json:"section"`
	Entry   *int   `json:"entry,omitempty"`
	Bullet  *int   `json:"bullet,omitempty"`
}

// CountBySeverity returns the number of critical and warning issues
func CountBySeverity(issues []ValidationIssue) (critical, warnings int) {
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityCritical:
			critical++
		default:
			warnings++
		}
	}
	return critical, warnings
}
