package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-scorer/internal/batch"
	"github.com/jonathan/resume-scorer/internal/experience"
	"github.com/jonathan/resume-scorer/internal/keywords"
	"github.com/jonathan/resume-scorer/internal/types"
)

func TestPrintScoreResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	entry := 0
	result := &types.ScoreResult{
		Mode:          types.ModeATSSimulation,
		Role:          "backend_engineer",
		Level:         "senior",
		Overall:       72.5,
		PolicyVersion: "2025.06",
		Categories: []types.CategoryScore{
			{Name: types.CategoryKeywords, Score: 35, MaxScore: 35, Status: types.StatusComplete,
				Details: "8/10 required keywords", Helped: []string{"Matched: Go, Python"}},
			{Name: types.CategoryExperience, Score: 0, MaxScore: 15, Status: types.StatusUnresolved,
				Dragged: []string{"No dated entries"}},
		},
		Conditions: []string{"keyword_set_unresolved"},
		Issues: []types.ValidationIssue{
			{Kind: "missing_email", Severity: types.SeverityCritical, Message: "No email address"},
			{Kind: "weak_opener", Severity: types.SeverityWarning, Message: "Bullet starts with \"worked on\"",
				Location: &types.IssueLocation{Section: "experience", Entry: &entry}},
		},
	}

	p.PrintScoreResult(result)
	output := buf.String()

	assert.Contains(t, output, "RESUME SCORE")
	assert.Contains(t, output, "72.5 / 100")
	assert.Contains(t, output, "backend_engineer (senior)")
	assert.Contains(t, output, "+ Matched: Go, Python")
	assert.Contains(t, output, "- No dated entries")
	assert.Contains(t, output, "[unresolved]")
	assert.Contains(t, output, "keyword_set_unresolved")
	assert.Contains(t, output, "RED FLAGS")
	assert.Contains(t, output, "Critical: 1")
	assert.Contains(t, output, "@ experience[0]")
	assert.Less(t, strings.Index(output, "missing_email"), strings.Index(output, "weak_opener"))
}

func TestPrintScoreResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintScoreResult(nil)
	assert.Empty(t, buf.String())
}

func TestPrintIssues_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintIssues(nil)
	assert.Empty(t, buf.String())
}

func TestPrintJobProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	profile := &types.JobProfile{
		RoleTitle: "Senior Engineer",
		MinYears:  5,
		HardRequirements: []types.Requirement{
			{Skill: "Go"}, {Skill: "Kubernetes"}, {Skill: "PostgreSQL"},
			{Skill: "Docker"}, {Skill: "Terraform"}, {Skill: "Kafka"},
		},
		NiceToHaves: []types.Requirement{{Skill: "Rust"}},
	}

	p.PrintJobProfile(profile)
	output := buf.String()

	assert.Contains(t, output, "PARSED JOB PROFILE")
	assert.Contains(t, output, "Senior Engineer")
	assert.Contains(t, output, "Min years: 5")
	assert.Contains(t, output, "• Go")
	assert.Contains(t, output, "... and 1 more")
	assert.NotContains(t, output, "Kafka")
	assert.Contains(t, output, "Rust")
}

func TestPrintJobProfile_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintJobProfile(nil)
	assert.Empty(t, buf.String())
}

func TestPrintKeywordResult(t *testing.T) {
	t.Run("matched and missing", func(t *testing.T) {
		var buf bytes.Buffer
		res := &keywords.Result{
			Matches: []keywords.KeywordMatch{
				{Keyword: types.Keyword{Canonical: "Go", Tier: types.TierRequired}, Matched: true, Kind: keywords.MatchExact, Evidence: "Go"},
				{Keyword: types.Keyword{Canonical: "Redis", Tier: types.TierRequired}},
			},
			RequiredTotal: 2, RequiredMatched: 1, RequiredRatio: 0.5,
		}
		NewPrinter(&buf).PrintKeywordResult(res)
		output := buf.String()
		assert.Contains(t, output, "Required:  1/2 (50%)")
		assert.Contains(t, output, "✓")
		assert.Contains(t, output, "✗")
		assert.Contains(t, output, "Redis")
		assert.NotContains(t, output, "Preferred:")
	})

	t.Run("unresolved", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(&buf).PrintKeywordResult(keywords.Unresolved("no role or job description given"))
		assert.Contains(t, buf.String(), "Unresolved: no role or job description given")
	})
}

func TestPrintExperience(t *testing.T) {
	var buf bytes.Buffer
	start := experience.YearMonth{Year: 2020, Month: 1}
	end := experience.YearMonth{Year: 2021, Month: 12}
	summary := &experience.Summary{
		TotalMonths: 24,
		TotalYears:  2,
		Merged:      []experience.Interval{{Start: start, End: end}},
		Counted:     1,
		Excluded:    []int{1},
		Failures:    []experience.EntryFailure{{Entry: 1, Field: "start", Input: "sometime", Reason: experience.ReasonUnparsable}},
	}

	NewPrinter(&buf).PrintExperience(summary)
	output := buf.String()

	assert.Contains(t, output, "EXPERIENCE")
	assert.Contains(t, output, "2.00 years (24 months)")
	assert.Contains(t, output, "(24 months)")
	assert.Contains(t, output, "unparsable")
}

func TestPrintBatchReport(t *testing.T) {
	var buf bytes.Buffer
	report := &batch.Report{
		RunID:        "run-1",
		Scored:       4,
		Distribution: batch.NewDistribution([]float64{30, 50, 70, 95}),
		MeanByMode:   map[types.ScoringMode]float64{types.ModeQualityCoach: 61.25},
	}

	NewPrinter(&buf).PrintBatchReport(report, batch.DefaultTarget())
	output := buf.String()

	assert.Contains(t, output, "BATCH DISTRIBUTION")
	assert.Contains(t, output, "run-1")
	assert.Contains(t, output, "61.2")
	assert.Contains(t, output, "0-40")
	assert.Contains(t, output, "target 30.0%")
	assert.Contains(t, output, "Max deviation")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 200))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestBar(t *testing.T) {
	assert.Equal(t, "██████████", bar(10, 10, 10))
	assert.Equal(t, "░░░░░░░░░░", bar(0, 10, 10))
	assert.Equal(t, "█████░░░░░", bar(5, 10, 10))
	assert.Equal(t, "░░░░", bar(3, 0, 4))
	assert.Equal(t, "████", bar(20, 10, 4))
}
