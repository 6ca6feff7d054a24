package validation

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/textcheck"
	"github.com/jonathan/resume-scorer/internal/types"
)

var testNow = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func cleanResume() *types.ResumeData {
	return &types.ResumeData{
		Contact: types.Contact{
			Name:     "Jane Doe",
			Email:    "jane.doe@example.com",
			Phone:    "+1 (555) 123-4567",
			Location: "Austin, TX",
			Links:    []string{"linkedin.com/in/janedoe"},
		},
		Summary: "Backend engineer with eight years of experience building distributed payment systems in Go and Python.",
		Experience: []types.ExperienceEntry{
			{
				Title:        "Senior Software Engineer",
				Organization: "Acme Payments",
				StartDate:    "2019-01",
				EndDate:      "2021-12",
				Bullets: []string{
					"Led migration of 40 services to Kubernetes with zero downtime.",
					"Reduced payment API latency by 35% through query tuning and caching.",
					"Designed an idempotent ledger service processing two million transactions daily.",
				},
			},
			{
				Title:        "Staff Software Engineer",
				Organization: "Globex",
				StartDate:    "2022-01",
				EndDate:      "Present",
				Bullets: []string{
					"Built a fraud scoring pipeline in Python that flagged 12% more chargebacks.",
					"Mentored four junior engineers through design reviews and pairing sessions.",
					"Automated release tooling in Go, cutting deploy time from hours to minutes.",
				},
			},
		},
		Skills: []string{"Go", "Python", "PostgreSQL", "Kubernetes", "AWS", "gRPC"},
		Education: []types.Education{
			{Institution: "University of Texas", Degree: "BS", Field: "Computer Science", GraduationDate: "2016"},
		},
	}
}

func newTestValidator(opts ...Option) *Validator {
	return New(append([]Option{WithClock(fixedClock)}, opts...)...)
}

func kinds(issues []types.ValidationIssue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.Kind
	}
	return out
}

func findIssue(issues []types.ValidationIssue, kind string) *types.ValidationIssue {
	for i := range issues {
		if issues[i].Kind == kind {
			return &issues[i]
		}
	}
	return nil
}

func TestValidate_CleanResume(t *testing.T) {
	report, err := newTestValidator().Validate(context.Background(), cleanResume(), nil)
	require.NoError(t, err)

	assert.Empty(t, report.Issues, "unexpected issues: %v", kinds(report.Issues))
	assert.Zero(t, report.Penalty())
	assert.Empty(t, report.Degraded)
	assert.Equal(t, []string{
		CategoryContact, CategorySections, CategoryEntries, CategoryDates, CategoryBullets,
		CategoryPhrasing, CategoryFormatting, CategorySpelling, CategoryGrammar,
	}, report.Checks)
}

func TestValidate_EmptyResume(t *testing.T) {
	for name, resume := range map[string]*types.ResumeData{"empty": {}, "nil": nil} {
		t.Run(name, func(t *testing.T) {
			report, err := newTestValidator().Validate(context.Background(), resume, nil)
			require.NoError(t, err)

			assert.Equal(t, 5, report.Critical)
			assert.Subset(t, kinds(report.Issues), []string{
				"missing_name", "missing_email", "empty_resume", "missing_experience", "missing_skills",
				"missing_summary", "missing_education", "missing_phone",
			})
			assert.NotNil(t, report.Issues)
		})
	}
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		mutate  func(r *types.ResumeData)
		section string
		entry   *int
		bullet  *int
	}{
		{"invalid email", "invalid_email", func(r *types.ResumeData) { r.Contact.Email = "jane.doe" }, "contact", nil, nil},
		{"unprofessional email", "unprofessional_email", func(r *types.ResumeData) { r.Contact.Email = "partyqueen@example.com" }, "contact", nil, nil},
		{"invalid phone", "invalid_phone", func(r *types.ResumeData) { r.Contact.Phone = "555-12" }, "contact", nil, nil},
		{"missing location", "missing_location", func(r *types.ResumeData) { r.Contact.Location = " " }, "contact", nil, nil},
		{"no links", "missing_profile_link", func(r *types.ResumeData) { r.Contact.Links = nil }, "contact", nil, nil},
		{"bad link", "invalid_link", func(r *types.ResumeData) { r.Contact.Links = []string{"not a url"} }, "contact", nil, nil},
		{"few skills", "too_few_skills", func(r *types.ResumeData) { r.Skills = []string{"Go", "Python"} }, "skills", nil, nil},
		{"duplicate skill", "duplicate_skill", func(r *types.ResumeData) { r.Skills = append(r.Skills, "golang") }, "skills", nil, nil},
		{"long summary", "summary_too_long", func(r *types.ResumeData) {
			for i := 0; i < 10; i++ {
				r.Summary += " Backend engineer with deep experience in payments."
			}
		}, "summary", nil, nil},
		{"missing title", "missing_job_title", func(r *types.ResumeData) { r.Experience[1].Title = "" }, "experience", intPtr(1), nil},
		{"missing organization", "missing_organization", func(r *types.ResumeData) { r.Experience[0].Organization = "" }, "experience", intPtr(0), nil},
		{"no bullets", "missing_bullets", func(r *types.ResumeData) { r.Experience[0].Bullets = []string{" "} }, "experience", intPtr(0), nil},
		{"few bullets", "too_few_bullets", func(r *types.ResumeData) { r.Experience[0].Bullets = r.Experience[0].Bullets[:2] }, "experience", intPtr(0), nil},
		{"many bullets", "too_many_bullets", func(r *types.ResumeData) {
			for i := 0; i < 6; i++ {
				r.Experience[1].Bullets = append(r.Experience[1].Bullets, r.Experience[1].Bullets[0]+" Again "+string(rune('A'+i))+".")
			}
		}, "experience", intPtr(1), nil},
		{"missing start", "missing_start_date", func(r *types.ResumeData) { r.Experience[0].StartDate = "" }, "experience", intPtr(0), nil},
		{"missing end", "missing_end_date", func(r *types.ResumeData) { r.Experience[1].EndDate = "" }, "experience", intPtr(1), nil},
		{"unparsable", "unparsable_date", func(r *types.ResumeData) { r.Experience[0].StartDate = "sometime" }, "experience", intPtr(0), nil},
		{"inverted", "start_after_end", func(r *types.ResumeData) { r.Experience[0].StartDate = "2022-05" }, "experience", intPtr(0), nil},
		{"future", "future_date", func(r *types.ResumeData) { r.Experience[1].EndDate = "2030-01" }, "experience", intPtr(1), nil},
		{"gap", "employment_gap", func(r *types.ResumeData) { r.Experience[1].StartDate = "2023-01" }, "experience", nil, nil},
		{"mixed formats", "inconsistent_date_format", func(r *types.ResumeData) { r.Experience[1].StartDate = "Jan 2022" }, "experience", nil, nil},
		{"short bullet", "bullet_too_short", func(r *types.ResumeData) { r.Experience[0].Bullets[1] = "Reduced latency 35%." }, "experience", intPtr(0), intPtr(1)},
		{"weak verb", "weak_action_verb", func(r *types.ResumeData) {
			r.Experience[1].Bullets[2] = "Responsible for release tooling in Go used by 30 teams."
		}, "experience", intPtr(1), intPtr(2)},
		{"pronoun", "first_person_pronoun", func(r *types.ResumeData) {
			r.Experience[0].Bullets[0] = "Led migration of 40 services to Kubernetes for my team."
		}, "experience", intPtr(0), intPtr(0)},
		{"lowercase", "lowercase_bullet_start", func(r *types.ResumeData) {
			r.Experience[0].Bullets[2] = "designed an idempotent ledger service processing two million transactions daily."
		}, "experience", intPtr(0), intPtr(2)},
		{"duplicate bullet", "duplicate_bullet", func(r *types.ResumeData) {
			r.Experience[1].Bullets[1] = r.Experience[0].Bullets[0]
		}, "experience", intPtr(1), intPtr(1)},
		{"not quantified", "entry_not_quantified", func(r *types.ResumeData) {
			r.Experience[1].Bullets = []string{
				"Built a fraud scoring pipeline in Python for the risk team.",
				"Mentored junior engineers through design reviews and pairing sessions.",
				"Automated release tooling in Go for every product team.",
			}
		}, "experience", intPtr(1), nil},
		{"repeated verb", "repeated_action_verb", func(r *types.ResumeData) {
			r.Experience[1].Bullets[0] = "Led a fraud scoring pipeline in Python that flagged 12% more chargebacks."
			r.Experience[1].Bullets[1] = "Led four junior engineers through design reviews and pairing sessions."
		}, "experience", nil, nil},
		{"punctuation", "inconsistent_punctuation", func(r *types.ResumeData) {
			r.Experience[0].Bullets[0] = "Led migration of 40 services to Kubernetes with zero downtime"
		}, "experience", nil, nil},
		{"vague", "vague_phrase", func(r *types.ResumeData) {
			r.Experience[0].Bullets[1] = "Reduced payment API latency by 35% across various services."
		}, "experience", intPtr(0), intPtr(1)},
		{"vague mid-bullet", "vague_phrase", func(r *types.ResumeData) {
			r.Experience[1].Bullets[1] = "Team lead responsible for release tooling in Go used by 30 teams."
		}, "experience", intPtr(1), intPtr(1)},
		{"helped with", "vague_phrase", func(r *types.ResumeData) {
			r.Experience[0].Bullets[1] = "Reduced payment API latency by 35% and helped with query tuning."
		}, "experience", intPtr(0), intPtr(1)},
		{"cliche", "cliche", func(r *types.ResumeData) { r.Summary = "Results-driven team player building payment systems." }, "summary", nil, nil},
		{"filler", "filler_word", func(r *types.ResumeData) {
			r.Experience[0].Bullets[1] = "Reduced payment API latency by a very large 35% margin."
		}, "experience", intPtr(0), intPtr(1)},
		{"passive", "passive_voice_overuse", func(r *types.ResumeData) {
			r.Experience[0].Bullets = []string{
				"Kubernetes migration of 40 services was completed with zero downtime.",
				"Payment API latency was reduced by 35% through query tuning.",
				"Ledger service was designed to process two million transactions daily.",
			}
		}, "experience", nil, nil},
		{"caps", "all_caps_text", func(r *types.ResumeData) {
			r.Summary = "BACKEND ENGINEER BUILDING PAYMENT SYSTEMS IN GO."
		}, "summary", nil, nil},
		{"exclamation", "excessive_punctuation", func(r *types.ResumeData) {
			r.Experience[0].Bullets[0] = "Led migration of 40 services to Kubernetes with zero downtime!"
		}, "experience", intPtr(0), intPtr(0)},
		{"emoji", "special_characters", func(r *types.ResumeData) {
			r.Experience[0].Bullets[0] = "Led migration of 40 services to Kubernetes with zero downtime ★."
		}, "experience", intPtr(0), intPtr(0)},
		{"personal", "personal_information", func(r *types.ResumeData) {
			r.Summary = "Backend engineer building payment systems. Marital status: single."
		}, "summary", nil, nil},
		{"spelling", "spelling_error", func(r *types.ResumeData) {
			r.Experience[0].Bullets[1] = "Reduced payment API latency by 35% in a hostile enviroment."
		}, "experience", intPtr(0), intPtr(1)},
		{"grammar", "grammar_error", func(r *types.ResumeData) {
			r.Experience[0].Bullets[1] = "Reduced payment API latency by 35% with with query tuning."
		}, "experience", intPtr(0), intPtr(1)},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resume := cleanResume()
			tt.mutate(resume)

			report, err := v.Validate(context.Background(), resume, nil)
			require.NoError(t, err)

			issue := findIssue(report.Issues, tt.kind)
			require.NotNil(t, issue, "expected %s, got %v", tt.kind, kinds(report.Issues))

			rule, ok := LookupRule(tt.kind)
			require.True(t, ok)
			assert.Equal(t, rule.Severity, issue.Severity)
			assert.NotEmpty(t, issue.Message)

			require.NotNil(t, issue.Location)
			assert.Equal(t, tt.section, issue.Location.Section)
			assert.Equal(t, tt.entry, issue.Location.Entry)
			assert.Equal(t, tt.bullet, issue.Location.Bullet)
		})
	}
}

func TestValidate_IssuesFollowBatteryOrder(t *testing.T) {
	resume := cleanResume()
	resume.Contact.Name = ""
	resume.Experience[0].Bullets[1] = "Reduced payment API latency by 35% with with query tuning."
	resume.Experience[1].Title = ""

	report, err := newTestValidator().Validate(context.Background(), resume, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"missing_name", "missing_job_title", "grammar_error"}, kinds(report.Issues))
	assert.Equal(t, 2, report.Critical)
	assert.Equal(t, 1, report.Warnings)
	assert.Equal(t, 7, report.Penalty())
}

func TestValidate_Deterministic(t *testing.T) {
	resume := cleanResume()
	resume.Summary = "Results-driven team player!!"
	resume.Experience[0].StartDate = "sometime"

	v := newTestValidator()
	first, err := v.Validate(context.Background(), resume, nil)
	require.NoError(t, err)
	second, err := v.Validate(context.Background(), resume, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestValidate_BackendFailureDegrades(t *testing.T) {
	failing := textcheck.Func{
		CheckerName: "remote-grammar",
		Fn: func(ctx context.Context, text string) ([]textcheck.Finding, error) {
			return nil, errors.New("connection refused")
		},
	}

	resume := cleanResume()
	resume.Experience[0].Bullets[1] = "Reduced payment API latency by 35% with with query tuning."

	report, err := newTestValidator(WithGrammar(failing)).Validate(context.Background(), resume, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{CategoryGrammar}, report.Degraded)
	assert.NotContains(t, report.Checks, CategoryGrammar)
	assert.Nil(t, findIssue(report.Issues, "grammar_error"))
}

func TestValidate_PanickingBackendDegrades(t *testing.T) {
	panicky := textcheck.Func{
		CheckerName: "panicky",
		Fn: func(ctx context.Context, text string) ([]textcheck.Finding, error) {
			panic("boom")
		},
	}

	report, err := newTestValidator(WithSpelling(panicky)).Validate(context.Background(), cleanResume(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{CategorySpelling}, report.Degraded)
}

func TestValidate_NilBackendDegrades(t *testing.T) {
	report, err := newTestValidator(WithSpelling(nil), WithGrammar(nil)).Validate(context.Background(), cleanResume(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{CategorySpelling, CategoryGrammar}, report.Degraded)
	assert.Empty(t, report.Issues)
}

func TestValidate_BackendTimeout(t *testing.T) {
	slow := textcheck.Func{
		CheckerName: "slow",
		Fn: func(ctx context.Context, text string) ([]textcheck.Finding, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}

	start := time.Now()
	report, err := newTestValidator(WithGrammar(slow), WithBackendTimeout(10*time.Millisecond)).
		Validate(context.Background(), cleanResume(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{CategoryGrammar}, report.Degraded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestValidate_BackendIgnoringContextTimesOut(t *testing.T) {
	stubborn := textcheck.Func{
		CheckerName: "stubborn",
		Fn: func(context.Context, string) ([]textcheck.Finding, error) {
			time.Sleep(300 * time.Millisecond)
			return nil, nil
		},
	}

	start := time.Now()
	report, err := newTestValidator(WithSpelling(stubborn), WithBackendTimeout(10*time.Millisecond)).
		Validate(context.Background(), cleanResume(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{CategorySpelling}, report.Degraded)
	assert.Less(t, time.Since(start), 150*time.Millisecond)
}

func TestValidate_WeakOpenerNotAlsoVague(t *testing.T) {
	resume := cleanResume()
	resume.Experience[1].Bullets[2] = "Responsible for release tooling in Go used by 30 teams."

	report, err := newTestValidator().Validate(context.Background(), resume, nil)
	require.NoError(t, err)
	assert.NotNil(t, findIssue(report.Issues, "weak_action_verb"))
	assert.Nil(t, findIssue(report.Issues, "vague_phrase"))
}

func TestValidate_SpanCacheChecksEachTextOnce(t *testing.T) {
	var calls atomic.Int32
	counting := textcheck.Func{
		CheckerName: "counting",
		Fn: func(ctx context.Context, text string) ([]textcheck.Finding, error) {
			calls.Add(1)
			return []textcheck.Finding{{Message: "flagged"}}, nil
		},
	}

	resume := cleanResume()
	resume.Experience[1].Bullets[0] = resume.Experience[0].Bullets[0]

	report, err := newTestValidator(WithSpelling(counting)).Validate(context.Background(), resume, nil)
	require.NoError(t, err)

	// summary plus six bullets, one of them repeated
	assert.Equal(t, int32(6), calls.Load())
	spelling := 0
	for _, issue := range report.Issues {
		if issue.Kind == "spelling_error" {
			spelling++
		}
	}
	assert.Equal(t, 7, spelling)
}

func TestValidate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestValidator().Validate(ctx, cleanResume(), nil)
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRules(t *testing.T) {
	rules := Rules()
	seen := make(map[string]bool)
	for _, r := range rules {
		assert.False(t, seen[r.Kind], "duplicate rule %s", r.Kind)
		seen[r.Kind] = true
		assert.NotEmpty(t, r.Category)
		assert.NotEmpty(t, r.Description)
	}
	assert.Len(t, rules, 48)

	rule, ok := LookupRule("missing_email")
	require.True(t, ok)
	assert.Equal(t, types.SeverityCritical, rule.Severity)

	_, ok = LookupRule("nope")
	assert.False(t, ok)
}

func TestValidPhone(t *testing.T) {
	assert.True(t, validPhone("+1 (555) 123-4567"))
	assert.True(t, validPhone("555.123.4567 ext. 12"))
	assert.False(t, validPhone("555-12"))
	assert.False(t, validPhone("call me"))
}

func TestValidLink(t *testing.T) {
	assert.True(t, validLink("https://github.com/janedoe"))
	assert.True(t, validLink("linkedin.com/in/janedoe"))
	assert.False(t, validLink("not a url"))
	assert.False(t, validLink("localhost"))
}
