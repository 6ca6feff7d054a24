// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-scorer/internal/batch"
	"github.com/jonathan/resume-scorer/internal/experience"
	"github.com/jonathan/resume-scorer/internal/keywords"
	"github.com/jonathan/resume-scorer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads a line to the box interior, counting runes
func pad(line string) string {
	width := boxWidth - 4
	runes := []rune(line)
	if len(runes) > width {
		return string(runes[:width-3]) + "..."
	}
	return line + strings.Repeat(" ", width-len(runes))
}

// bar renders score out of total as a fixed-width gauge
func bar(score, total float64, width int) string {
	filled := 0
	if total > 0 {
		filled = int(score / total * float64(width))
	}
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func statusMark(status types.CategoryStatus) string {
	switch status {
	case types.StatusUnresolved:
		return " [unresolved]"
	case types.StatusIncomplete:
		return " [incomplete]"
	default:
		return ""
	}
}

// PrintScoreResult outputs the overall score and the per-category breakdown.
func (p *Printer) PrintScoreResult(result *types.ScoreResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:  %.1f / 100\n", result.Overall))
	sb.WriteString(fmt.Sprintf("Mode:     %s\n", result.Mode))
	if result.Role != "" {
		role := result.Role
		if result.Level != "" {
			role += " (" + result.Level + ")"
		}
		sb.WriteString(fmt.Sprintf("Role:     %s\n", role))
	}
	sb.WriteString(fmt.Sprintf("Policy:   %s\n", result.PolicyVersion))
	sb.WriteString("\n")

	for _, c := range result.Categories {
		sb.WriteString(fmt.Sprintf("%-15s %s %5.1f/%-3g%s\n",
			c.Name, bar(c.Score, c.MaxScore, 20), c.Score, c.MaxScore, statusMark(c.Status)))
		if c.Details != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", c.Details))
		}
		for _, h := range c.Helped {
			sb.WriteString(fmt.Sprintf("    + %s\n", h))
		}
		for _, d := range c.Dragged {
			sb.WriteString(fmt.Sprintf("    - %s\n", d))
		}
	}

	if len(result.Conditions) > 0 {
		sb.WriteString(fmt.Sprintf("\nConditions: %s\n", strings.Join(result.Conditions, ", ")))
	}

	p.printBox("RESUME SCORE", strings.TrimSuffix(sb.String(), "\n"))
	p.PrintIssues(result.Issues)
}

// PrintIssues outputs red-flag issues, critical first.
func (p *Printer) PrintIssues(issues []types.ValidationIssue) {
	if len(issues) == 0 {
		return
	}

	critical, warnings := types.CountBySeverity(issues)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Critical: %d   Warnings: %d\n\n", critical, warnings))

	for _, severity := range []types.Severity{types.SeverityCritical, types.SeverityWarning} {
		for _, issue := range issues {
			if issue.Severity != severity {
				continue
			}
			icon := "⚠️"
			if severity == types.SeverityCritical {
				icon = "❌"
			}
			sb.WriteString(fmt.Sprintf("%s %s%s\n", icon, issue.Kind, locationSuffix(issue.Location)))
			sb.WriteString(fmt.Sprintf("   %s\n", issue.Message))
		}
	}

	p.printBox("RED FLAGS", strings.TrimSuffix(sb.String(), "\n"))
}

func locationSuffix(loc *types.IssueLocation) string {
	if loc == nil {
		return ""
	}
	s := " @ " + loc.Section
	if loc.Entry != nil {
		s += fmt.Sprintf("[%d]", *loc.Entry)
	}
	if loc.Bullet != nil {
		s += fmt.Sprintf(".bullet[%d]", *loc.Bullet)
	}
	return s
}

// PrintJobProfile outputs a human-readable summary of the parsed job profile.
func (p *Printer) PrintJobProfile(profile *types.JobProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role:      %s\n", profile.RoleTitle))
	if profile.MinYears > 0 {
		sb.WriteString(fmt.Sprintf("Min years: %g\n", profile.MinYears))
	}
	sb.WriteString("\n")

	writeRequirements(&sb, "Hard Requirements:", profile.HardRequirements, maxItemsToShow)
	writeRequirements(&sb, "Nice-to-haves:", profile.NiceToHaves, 3)

	p.printBox("PARSED JOB PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

func writeRequirements(sb *strings.Builder, title string, reqs []types.Requirement, limit int) {
	if len(reqs) == 0 {
		return
	}
	sb.WriteString(title + "\n")
	for _, req := range reqs[:min(len(reqs), limit)] {
		sb.WriteString(fmt.Sprintf("  • %s\n", req.Skill))
	}
	if len(reqs) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(reqs)-limit))
	}
	sb.WriteString("\n")
}

// PrintKeywordResult outputs each keyword with how it matched.
func (p *Printer) PrintKeywordResult(res *keywords.Result) {
	if res == nil {
		return
	}
	if res.Unresolved {
		p.printBox("KEYWORD MATCH", "Unresolved: "+res.Reason)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Required:  %d/%d (%.0f%%)\n", res.RequiredMatched, res.RequiredTotal, res.RequiredRatio*100))
	if res.PreferredTotal > 0 {
		sb.WriteString(fmt.Sprintf("Preferred: %d/%d (%.0f%%)\n", res.PreferredMatched, res.PreferredTotal, res.PreferredRatio*100))
	}
	sb.WriteString("\n")

	for _, m := range res.Matches {
		mark := "✗"
		detail := ""
		if m.Matched {
			mark = "✓"
			detail = fmt.Sprintf(" (%s: %q)", m.Kind, m.Evidence)
		}
		sb.WriteString(fmt.Sprintf("%s %-9s %s%s\n", mark, m.Keyword.Tier, m.Keyword.Canonical, detail))
	}

	p.printBox("KEYWORD MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExperience outputs the experience total, merged intervals and gaps.
func (p *Printer) PrintExperience(summary *experience.Summary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total:    %.2f years (%d months)\n", summary.TotalYears, summary.TotalMonths))
	sb.WriteString(fmt.Sprintf("Counted:  %d entries\n", summary.Counted))
	if len(summary.Excluded) > 0 {
		sb.WriteString(fmt.Sprintf("Excluded: %v\n", summary.Excluded))
	}

	if len(summary.Merged) > 0 {
		sb.WriteString("\nPeriods:\n")
		for _, iv := range summary.Merged {
			sb.WriteString(fmt.Sprintf("  %s – %s  (%d months)\n", iv.Start, iv.End, iv.Months()))
		}
	}
	if len(summary.Gaps) > 0 {
		sb.WriteString("\nGaps:\n")
		for _, g := range summary.Gaps {
			sb.WriteString(fmt.Sprintf("  %s – %s  (%d months)\n", g.From, g.To, g.Months))
		}
	}
	for _, f := range summary.Failures {
		sb.WriteString(fmt.Sprintf("\n⚠️ entry %d %s %s: %q", f.Entry, f.Field, f.Reason, f.Input))
	}

	p.printBox("EXPERIENCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatchReport outputs the batch distribution against the calibration target.
func (p *Printer) PrintBatchReport(report *batch.Report, target batch.Target) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:     %s\n", report.RunID))
	sb.WriteString(fmt.Sprintf("Scored:  %d   Failed: %d\n", report.Scored, report.Failed))
	sb.WriteString(fmt.Sprintf("Mean:    %.1f\n", report.Distribution.Mean))
	for _, mode := range types.Modes() {
		if mean, ok := report.MeanByMode[mode]; ok {
			sb.WriteString(fmt.Sprintf("  %-15s %.1f\n", mode, mean))
		}
	}
	sb.WriteString("\n")

	cmp := report.Distribution.Compare(target)
	for i, d := range cmp.Deltas {
		sb.WriteString(fmt.Sprintf("%-7s %s %3d  %5.1f%% (target %4.1f%%)\n",
			d.Band, bar(d.Actual, 1, 20), report.Distribution.Counts[i], d.Actual*100, d.Target*100))
	}
	sb.WriteString(fmt.Sprintf("\nMax deviation: %.1f%%", cmp.MaxDeviation*100))

	p.printBox("BATCH DISTRIBUTION", sb.String())
}
