package validation

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-scorer/internal/experience"
	"github.com/jonathan/resume-scorer/internal/logger"
	"github.com/jonathan/resume-scorer/internal/textcheck"
	"github.com/jonathan/resume-scorer/internal/types"
)

// DefaultBackendTimeout bounds a single spelling or grammar backend call
const DefaultBackendTimeout = 5 * time.Second

// Thresholds tune the count and length based rules
type Thresholds struct {
	MinSkills          int `koanf:"min_skills" validate:"gte=0"`
	MaxSummaryWords    int `koanf:"max_summary_words" validate:"gt=0"`
	MinBullets         int `koanf:"min_bullets" validate:"gte=0"`
	MaxBullets         int `koanf:"max_bullets" validate:"gtfield=MinBullets"`
	MinBulletWords     int `koanf:"min_bullet_words" validate:"gte=0"`
	MaxBulletWords     int `koanf:"max_bullet_words" validate:"gtfield=MinBulletWords"`
	GapMonths          int `koanf:"gap_months" validate:"gt=0"`
	RepeatedVerbLimit  int `koanf:"repeated_verb_limit" validate:"gt=1"`
	PassiveVoiceBullet int `koanf:"passive_voice_min_bullets" validate:"gt=0"`
}

// DefaultThresholds returns the thresholds used when none are configured
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinSkills:          5,
		MaxSummaryWords:    80,
		MinBullets:         3,
		MaxBullets:         8,
		MinBulletWords:     5,
		MaxBulletWords:     40,
		GapMonths:          6,
		RepeatedVerbLimit:  3,
		PassiveVoiceBullet: 3,
	}
}

// Option configures a Validator
type Option func(*Validator)

// WithSpelling sets the spelling backend. A nil checker disables spelling and
// reports it as degraded.
func WithSpelling(c textcheck.Checker) Option {
	return func(v *Validator) { v.spelling = c }
}

// WithGrammar sets the grammar backend. A nil checker disables grammar and
// reports it as degraded.
func WithGrammar(c textcheck.Checker) Option {
	return func(v *Validator) { v.grammar = c }
}

// WithBackendTimeout bounds each backend call
func WithBackendTimeout(d time.Duration) Option {
	return func(v *Validator) {
		if d > 0 {
			v.timeout = d
		}
	}
}

// WithThresholds overrides the rule thresholds
func WithThresholds(t Thresholds) Option {
	return func(v *Validator) { v.thresholds = t }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(v *Validator) { v.logger = logger.Named(l, "validation") }
}

// WithClock sets the time source used for date checks
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// Validator runs the red-flags battery. It is safe for concurrent use; all per-call
// state, including the backend span cache, lives inside Validate.
type Validator struct {
	spelling   textcheck.Checker
	grammar    textcheck.Checker
	timeout    time.Duration
	thresholds Thresholds
	logger     *zap.Logger
	now        func() time.Time
}

// New creates a Validator with the built-in speller and rule grammar checker
func New(opts ...Option) *Validator {
	v := &Validator{
		spelling:   textcheck.NewSpeller(nil),
		grammar:    textcheck.NewRuleGrammar(),
		timeout:    DefaultBackendTimeout,
		thresholds: DefaultThresholds(),
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Report is the outcome of one validation pass
type Report struct {
	Issues   []types.ValidationIssue `json:"issues"`
	Critical int                     `json:"critical"`
	Warnings int                     `json:"warnings"`
	Checks   []string                `json:"checks"`
	Degraded []string                `json:"degraded,omitempty"`
}

// Penalty is the red-flags penalty: three points per critical issue plus one per warning
func (r *Report) Penalty() int {
	return 3*r.Critical + r.Warnings
}

// input is the shared state the rule groups read from
type input struct {
	resume     *types.ResumeData
	exp        *experience.Summary
	thresholds Thresholds
}

var battery = []struct {
	category string
	run      func(in *input, c *collector)
}{
	{CategoryContact, checkContact},
	{CategorySections, checkSections},
	{CategoryEntries, checkEntries},
	{CategoryDates, checkDates},
	{CategoryBullets, checkBullets},
	{CategoryPhrasing, checkPhrasing},
	{CategoryFormatting, checkFormatting},
}

// Validate runs every rule over the résumé. The experience summary is computed when
// exp is nil. Issues are returned in battery order and, within a category, in document
// order. A failing spelling or grammar backend never fails the pass: its category is
// reported in Degraded and contributes no issues.
func (v *Validator) Validate(ctx context.Context, resume *types.ResumeData, exp *experience.Summary) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Message: "validation cancelled", Cause: err}
	}
	if resume == nil {
		resume = &types.ResumeData{}
	}
	if exp == nil {
		exp = experience.Calculate(resume.Experience, v.now())
	}

	in := &input{resume: resume, exp: exp, thresholds: v.thresholds}
	report := &Report{Issues: []types.ValidationIssue{}}
	c := &collector{}

	for _, group := range battery {
		group.run(in, c)
		report.Checks = append(report.Checks, group.category)
	}

	spans := textSpans(resume)
	cache := make(map[string]cachedCheck)
	for _, backend := range []struct {
		category string
		kind     string
		checker  textcheck.Checker
	}{
		{CategorySpelling, "spelling_error", v.spelling},
		{CategoryGrammar, "grammar_error", v.grammar},
	} {
		if backend.checker == nil {
			report.Degraded = append(report.Degraded, backend.category)
			continue
		}
		issues, err := v.runBackend(ctx, backend.kind, backend.checker, spans, cache)
		if err != nil {
			failure := &BackendFailure{Category: backend.category, Checker: backend.checker.Name(), Cause: err}
			v.logger.Warn("text check degraded", zap.Error(failure))
			report.Degraded = append(report.Degraded, backend.category)
			continue
		}
		c.issues = append(c.issues, issues...)
		report.Checks = append(report.Checks, backend.category)
	}

	report.Issues = append(report.Issues, c.issues...)
	report.Critical, report.Warnings = types.CountBySeverity(report.Issues)

	v.logger.Debug("validation complete",
		zap.Int("critical", report.Critical),
		zap.Int("warnings", report.Warnings),
		zap.Strings("degraded", report.Degraded),
	)
	return report, nil
}
