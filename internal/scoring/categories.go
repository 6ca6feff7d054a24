package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/resume-scorer/internal/experience"
	"github.com/jonathan/resume-scorer/internal/keywords"
	"github.com/jonathan/resume-scorer/internal/style"
	"github.com/jonathan/resume-scorer/internal/types"
	"github.com/jonathan/resume-scorer/internal/validation"
)

// maxListed caps the keyword names quoted in explanations
const maxListed = 8

func newCategory(name string, c CategoryPolicy, raw float64) types.CategoryScore {
	return types.CategoryScore{
		Name:     name,
		MaxScore: c.Weight,
		Raw:      raw,
		Status:   types.StatusComplete,
	}
}

// incompleteCategory is the zero-contribution result of an analyzer that failed
func incompleteCategory(name string, c CategoryPolicy, reason string) types.CategoryScore {
	return types.CategoryScore{
		Name:     name,
		MaxScore: c.Weight,
		Status:   types.StatusIncomplete,
		Details:  reason,
		Dragged:  []string{reason},
	}
}

// scoreKeywords maps the primary match ratio through the tier table and adds the
// preferred bonus, capped at the category weight
func scoreKeywords(c CategoryPolicy, res *keywords.Result) types.CategoryScore {
	ratio, ok := res.PrimaryRatio()
	if !ok {
		reason := "no keyword set to match against"
		if res != nil && res.Reason != "" {
			reason = res.Reason
		}
		cat := newCategory(types.CategoryKeywords, c, 0)
		cat.Status = types.StatusUnresolved
		cat.Details = "Keyword set unresolved: " + reason
		cat.Dragged = []string{reason}
		return cat
	}

	cat := newCategory(types.CategoryKeywords, c, ratio)
	points := c.Points(ratio)

	if res.RequiredTotal > 0 {
		cat.Details = fmt.Sprintf("Matched %d of %d required keywords (%.0f%%)",
			res.RequiredMatched, res.RequiredTotal, ratio*100)
	} else {
		cat.Details = fmt.Sprintf("Matched %d of %d preferred keywords (%.0f%%)",
			res.PreferredMatched, res.PreferredTotal, ratio*100)
	}

	if res.HasPreferred() {
		cat.Details += fmt.Sprintf("; %d of %d preferred", res.PreferredMatched, res.PreferredTotal)
		if c.PreferredBonus > 0 && res.PreferredRatio+epsilon >= c.PreferredThreshold {
			points += c.PreferredBonus
			cat.Helped = append(cat.Helped, fmt.Sprintf("Preferred keyword bonus (+%g)", c.PreferredBonus))
		}
	}
	cat.Score = math.Min(points, c.Weight)

	matched, missing := splitByTier(res)
	if len(matched) > 0 {
		cat.Helped = append([]string{"Matched: " + listNames(matched)}, cat.Helped...)
	}
	if len(missing) > 0 {
		cat.Dragged = append(cat.Dragged, "Missing required: "+listNames(missing))
	}
	if next, ok := c.NextTier(ratio); ok && cat.Score < c.Weight {
		cat.Dragged = append(cat.Dragged, fmt.Sprintf("Reach %.0f%% coverage for %g points", next.Bound*100, next.Points))
	}
	return cat
}

// splitByTier returns every matched keyword and the missing keywords of the tier that
// drives the ratio
func splitByTier(res *keywords.Result) (matched, missing []string) {
	primary := types.TierRequired
	if res.RequiredTotal == 0 {
		primary = types.TierPreferred
	}
	for _, m := range res.Matches {
		switch {
		case m.Matched:
			matched = append(matched, m.Keyword.Canonical)
		case m.Keyword.Tier == primary:
			missing = append(missing, m.Keyword.Canonical)
		}
	}
	return matched, missing
}

func listNames(names []string) string {
	if len(names) <= maxListed {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(names[:maxListed], ", "), len(names)-maxListed)
}

// experienceRatio is total years over expected years. With no expectation any counted
// experience fully satisfies the category.
func experienceRatio(summary *experience.Summary, expected float64) float64 {
	if expected <= 0 {
		if summary.Counted > 0 {
			return 1
		}
		return 0
	}
	return summary.TotalYears / expected
}

func scoreExperience(c CategoryPolicy, summary *experience.Summary, expected float64) types.CategoryScore {
	ratio := experienceRatio(summary, expected)
	cat := newCategory(types.CategoryExperience, c, ratio)
	cat.Score = c.Points(ratio)

	if expected > 0 {
		cat.Details = fmt.Sprintf("%.1f years of %.1f expected", summary.TotalYears, expected)
	} else {
		cat.Details = fmt.Sprintf("%.1f years; no expectation set", summary.TotalYears)
	}

	if summary.Counted > 0 {
		cat.Helped = append(cat.Helped, fmt.Sprintf("%d dated positions counted", summary.Counted))
	}
	if n := len(summary.Excluded); n > 0 {
		cat.Dragged = append(cat.Dragged, fmt.Sprintf("%d positions excluded for unusable dates", n))
	}
	if expected > 0 && ratio < 1 {
		cat.Dragged = append(cat.Dragged, fmt.Sprintf("%.1f years short of expectation", expected-summary.TotalYears))
	}
	return cat
}

// structureItems are the parts a complete résumé carries
var structureItems = []struct {
	label   string
	present func(r *types.ResumeData) bool
}{
	{"name", func(r *types.ResumeData) bool { return strings.TrimSpace(r.Contact.Name) != "" }},
	{"email", func(r *types.ResumeData) bool { return strings.TrimSpace(r.Contact.Email) != "" }},
	{"phone", func(r *types.ResumeData) bool { return strings.TrimSpace(r.Contact.Phone) != "" }},
	{"location", func(r *types.ResumeData) bool { return strings.TrimSpace(r.Contact.Location) != "" }},
	{"summary", func(r *types.ResumeData) bool { return strings.TrimSpace(r.Summary) != "" }},
	{"experience", func(r *types.ResumeData) bool { return len(r.Experience) > 0 }},
	{"skills", func(r *types.ResumeData) bool { return len(style.NonBlank(r.Skills)) > 0 }},
	{"education", func(r *types.ResumeData) bool { return len(r.Education) > 0 }},
}

// Completeness returns the fraction of structural items present and the labels of the missing ones
func Completeness(resume *types.ResumeData) (float64, []string) {
	var missing []string
	for _, item := range structureItems {
		if !item.present(resume) {
			missing = append(missing, item.label)
		}
	}
	present := len(structureItems) - len(missing)
	return float64(present) / float64(len(structureItems)), missing
}

func scoreStructure(c CategoryPolicy, resume *types.ResumeData) types.CategoryScore {
	ratio, missing := Completeness(resume)
	cat := newCategory(types.CategoryStructure, c, ratio)
	cat.Score = c.Points(ratio)
	cat.Details = fmt.Sprintf("%d of %d sections present", len(structureItems)-len(missing), len(structureItems))
	if len(missing) == 0 {
		cat.Helped = []string{"All standard sections present"}
	} else {
		cat.Dragged = []string{"Missing: " + strings.Join(missing, ", ")}
	}
	return cat
}

// scoreRedFlags maps the issue penalty through an at_most table. A résumé with no critical
// issues keeps at least the floor; reaching the critical ceiling zeroes the category.
func scoreRedFlags(c CategoryPolicy, report *validation.Report) types.CategoryScore {
	penalty := float64(report.Penalty())
	cat := newCategory(types.CategoryRedFlags, c, penalty)

	switch {
	case c.CriticalCeiling > 0 && report.Critical >= c.CriticalCeiling:
		cat.Score = 0
		cat.Dragged = append(cat.Dragged, fmt.Sprintf("%d critical issues reach the ceiling of %d", report.Critical, c.CriticalCeiling))
	case report.Critical == 0:
		cat.Score = math.Max(c.Points(penalty), c.Floor)
	default:
		cat.Score = c.Points(penalty)
	}

	cat.Details = fmt.Sprintf("%d critical, %d warnings (penalty %d)", report.Critical, report.Warnings, report.Penalty())
	if report.Critical == 0 {
		cat.Helped = append(cat.Helped, "No critical issues")
	}
	cat.Dragged = append(cat.Dragged, topKinds(report.Issues, 3)...)
	if len(report.Degraded) > 0 {
		cat.Status = types.StatusIncomplete
		cat.Dragged = append(cat.Dragged, "Checks skipped: "+strings.Join(report.Degraded, ", "))
	}
	return cat
}

// topKinds summarizes the most frequent issue kinds, critical first
func topKinds(issues []types.ValidationIssue, limit int) []string {
	type tally struct {
		kind     string
		critical bool
		count    int
	}
	var order []*tally
	byKind := make(map[string]*tally)
	for _, issue := range issues {
		t, ok := byKind[issue.Kind]
		if !ok {
			t = &tally{kind: issue.Kind, critical: issue.Severity == types.SeverityCritical}
			byKind[issue.Kind] = t
			order = append(order, t)
		}
		t.count++
	}

	var out []string
	for _, critical := range []bool{true, false} {
		for _, t := range order {
			if t.critical != critical || len(out) >= limit {
				continue
			}
			out = append(out, fmt.Sprintf("%s x%d", t.kind, t.count))
		}
	}
	return out
}

func scoreActionVerbs(c CategoryPolicy, stats style.Stats) types.CategoryScore {
	ratio := stats.StrongVerbRatio()
	cat := newCategory(types.CategoryActionVerbs, c, ratio)
	if stats.Bullets == 0 {
		cat.Details = "No bullets to assess"
		cat.Dragged = []string{"No experience bullets"}
		return cat
	}
	cat.Score = c.Points(ratio)
	cat.Details = fmt.Sprintf("%d of %d bullets open with a strong verb", stats.StrongVerbBullets, stats.Bullets)
	explainRatio(&cat, c, ratio, "strong-verb")
	return cat
}

func scoreQuantification(c CategoryPolicy, stats style.Stats) types.CategoryScore {
	ratio := stats.QuantifiedRatio()
	cat := newCategory(types.CategoryQuantification, c, ratio)
	if stats.Bullets == 0 {
		cat.Details = "No bullets to assess"
		cat.Dragged = []string{"No experience bullets"}
		return cat
	}
	cat.Score = c.Points(ratio)
	cat.Details = fmt.Sprintf("%d of %d bullets quantify impact", stats.QuantifiedBullets, stats.Bullets)
	explainRatio(&cat, c, ratio, "quantified")
	return cat
}

func scoreContentDepth(c CategoryPolicy, stats style.Stats) types.CategoryScore {
	ratio := stats.DepthRatio()
	cat := newCategory(types.CategoryContentDepth, c, ratio)
	if stats.Entries == 0 {
		cat.Details = "No experience entries to assess"
		cat.Dragged = []string{"No experience entries"}
		return cat
	}
	cat.Score = c.Points(ratio)
	cat.Details = fmt.Sprintf("%d of %d positions adequately described", stats.AdequateEntries, stats.Entries)
	explainRatio(&cat, c, ratio, "adequately described")
	return cat
}

func explainRatio(cat *types.CategoryScore, c CategoryPolicy, ratio float64, label string) {
	if cat.Score > 0 {
		cat.Helped = append(cat.Helped, fmt.Sprintf("%.0f%% %s", ratio*100, label))
	}
	if next, ok := c.NextTier(ratio); ok {
		cat.Dragged = append(cat.Dragged, fmt.Sprintf("Reach %.0f%% %s for %g points", next.Bound*100, label, next.Points))
	}
}
