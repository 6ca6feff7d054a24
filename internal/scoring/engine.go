package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-scorer/internal/experience"
	"github.com/jonathan/resume-scorer/internal/keywords"
	"github.com/jonathan/resume-scorer/internal/logger"
	"github.com/jonathan/resume-scorer/internal/skills"
	"github.com/jonathan/resume-scorer/internal/style"
	"github.com/jonathan/resume-scorer/internal/taxonomy"
	"github.com/jonathan/resume-scorer/internal/types"
	"github.com/jonathan/resume-scorer/internal/validation"
)

// Conditions attached to a result
const (
	// ConditionKeywordSetUnresolved means no keyword set could be resolved for the request
	ConditionKeywordSetUnresolved = "keyword_set_unresolved"
	// ConditionChecksDegraded means a text check backend was skipped
	ConditionChecksDegraded = "checks_degraded"
	// ConditionAnalyzerFailed means an analyzer failed and its categories contributed nothing
	ConditionAnalyzerFailed = "analyzer_failed"
)

// Analyzer names used in logs and AnalyzerError
const (
	analyzerKeywords   = "keywords"
	analyzerExperience = "experience"
	analyzerValidation = "validation"
	analyzerStyle      = "style"
)

var (
	requestValidator = validator.New()
	resumeNamespace  = uuid.NewSHA1(uuid.NameSpaceURL, []byte("resume-scorer/resume"))
)

// Observer receives every completed result. internal/metrics implements it.
type Observer interface {
	ObserveScore(result *types.ScoreResult, elapsed time.Duration)
}

// Request is one scoring call. Role and Level select a taxonomy entry when no job
// description is given. An empty Mode is inferred: ATS simulation when a job description
// is present, quality coach otherwise.
type Request struct {
	Resume         *types.ResumeData     `json:"resume" validate:"required"`
	Role           string                `json:"role,omitempty"`
	Level          string                `json:"level,omitempty"`
	JobDescription *types.JobDescription `json:"job_description,omitempty"`
	Mode           types.ScoringMode     `json:"mode,omitempty" validate:"omitempty,oneof=ats_simulation quality_coach"`
}

// Option configures an Engine
type Option func(*Engine)

// WithPolicies replaces the built-in policy tables
func WithPolicies(p *PolicySet) Option {
	return func(e *Engine) {
		if p != nil {
			e.policies = p
		}
	}
}

// WithValidator replaces the default red-flags validator
func WithValidator(v *validation.Validator) Option {
	return func(e *Engine) {
		if v != nil {
			e.validator = v
		}
	}
}

// WithMatcherOptions configures the keyword matcher, e.g. its fuzzy threshold
func WithMatcherOptions(opts ...keywords.Option) Option {
	return func(e *Engine) {
		e.matcherOpts = append(e.matcherOpts, opts...)
	}
}

// WithLogger sets the engine logger
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger.Named(l, "scoring")
	}
}

// WithClock sets the time source used to resolve "present" end dates
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithObserver registers a result observer
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// Engine scores résumés against a taxonomy and policy set. It holds only immutable
// reference data and is safe for concurrent use.
type Engine struct {
	taxonomy    *taxonomy.Taxonomy
	vocabulary  []types.Keyword
	policies    *PolicySet
	validator   *validation.Validator
	matcherOpts []keywords.Option
	logger      *zap.Logger
	now         func() time.Time
	observer    Observer
}

// NewEngine builds an engine over a taxonomy. A nil taxonomy leaves role lookups unresolved;
// job descriptions are then extracted against an empty vocabulary.
func NewEngine(ref *taxonomy.Taxonomy, opts ...Option) *Engine {
	e := &Engine{
		taxonomy: ref,
		policies: DefaultPolicySet(),
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.validator == nil {
		e.validator = validation.New(validation.WithLogger(e.logger), validation.WithClock(e.now))
	}
	if ref != nil {
		e.vocabulary = ref.Vocabulary()
	}
	return e
}

// Policies returns the policy set in use
func (e *Engine) Policies() *PolicySet {
	return e.policies
}

// ResolveMode returns the mode a request is scored in
func ResolveMode(req Request) types.ScoringMode {
	if req.Mode != "" {
		return req.Mode
	}
	if !req.JobDescription.IsEmpty() {
		return types.ModeATSSimulation
	}
	return types.ModeQualityCoach
}

// ResumeID is a deterministic identifier of the résumé content
func ResumeID(resume *types.ResumeData) string {
	data, err := json.Marshal(resume)
	if err != nil {
		return uuid.Nil.String()
	}
	return uuid.NewSHA1(resumeNamespace, data).String()
}

// Score scores one résumé. Content problems never fail the call: they surface as issues,
// unresolved or incomplete categories and conditions on the result. Only a malformed
// request returns an error, as a *RequestError.
func (e *Engine) Score(ctx context.Context, req Request) (*types.ScoreResult, error) {
	start := time.Now()
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scoring cancelled: %w", err)
	}

	mode := ResolveMode(req)
	policy := e.policies.For(mode)
	now := e.now()

	result := &types.ScoreResult{
		ResumeID:        ResumeID(req.Resume),
		Mode:            mode,
		Role:            req.Role,
		Level:           req.Level,
		Issues:          []types.ValidationIssue{},
		MatchedKeywords: []string{},
		MissingKeywords: []string{},
		PolicyVersion:   e.policies.Version,
	}
	if e.taxonomy != nil {
		result.TaxonomyVersion = e.taxonomy.Version
	}

	target := e.resolveTarget(req)
	if target.role != "" && result.Role == "" {
		result.Role = target.role
	}

	categories := make(map[string]types.CategoryScore, len(types.CategoryNames()))
	failed := func(analyzer string, err error, names ...string) {
		result.Conditions = appendUnique(result.Conditions, ConditionAnalyzerFailed)
		for _, name := range names {
			categories[name] = incompleteCategory(name, policy.Category(name), err.Error())
		}
	}

	// Keywords
	kwResult, err := isolate(e, analyzerKeywords, func() (*keywords.Result, error) {
		if target.set == nil {
			return keywords.Unresolved(target.reason), nil
		}
		return keywords.NewMatcher(target.set, e.matcherOpts...).Match(req.Resume.FullText()), nil
	})
	if err != nil {
		failed(analyzerKeywords, err, types.CategoryKeywords)
	} else {
		categories[types.CategoryKeywords] = scoreKeywords(policy.Category(types.CategoryKeywords), kwResult)
		if kwResult.Unresolved {
			result.Conditions = appendUnique(result.Conditions, ConditionKeywordSetUnresolved)
			e.logger.Info("keyword set unresolved",
				zap.String("role", req.Role),
				zap.String("level", req.Level),
				zap.String("reason", kwResult.Reason))
		} else {
			result.MatchedKeywords = kwResult.Matched()
			result.MissingKeywords = kwResult.Missing()
		}
	}

	// Experience
	summary, err := isolate(e, analyzerExperience, func() (*experience.Summary, error) {
		return experience.Calculate(req.Resume.Experience, now), nil
	})
	if err != nil {
		failed(analyzerExperience, err, types.CategoryExperience)
	} else {
		categories[types.CategoryExperience] = scoreExperience(policy.Category(types.CategoryExperience), summary, target.expectedYears)
		result.Experience = &types.ExperienceSummary{
			TotalYears:      summary.TotalYears,
			ExpectedYears:   target.expectedYears,
			CountedEntries:  summary.Counted,
			ExcludedEntries: len(summary.Excluded),
		}
	}

	// Red flags
	report, err := isolate(e, analyzerValidation, func() (*validation.Report, error) {
		return e.validator.Validate(ctx, req.Resume, summary)
	})
	if err != nil {
		failed(analyzerValidation, err, types.CategoryRedFlags)
	} else {
		categories[types.CategoryRedFlags] = scoreRedFlags(policy.Category(types.CategoryRedFlags), report)
		result.Issues = append(result.Issues, report.Issues...)
		if len(report.Degraded) > 0 {
			result.DegradedChecks = report.Degraded
			result.Conditions = appendUnique(result.Conditions, ConditionChecksDegraded)
		}
	}

	// Structure and bullet style
	stats, err := isolate(e, analyzerStyle, func() (style.Stats, error) {
		return style.Analyze(req.Resume), nil
	})
	if err != nil {
		failed(analyzerStyle, err,
			types.CategoryStructure, types.CategoryActionVerbs,
			types.CategoryQuantification, types.CategoryContentDepth)
	} else {
		categories[types.CategoryStructure] = scoreStructure(policy.Category(types.CategoryStructure), req.Resume)
		categories[types.CategoryActionVerbs] = scoreActionVerbs(policy.Category(types.CategoryActionVerbs), stats)
		categories[types.CategoryQuantification] = scoreQuantification(policy.Category(types.CategoryQuantification), stats)
		categories[types.CategoryContentDepth] = scoreContentDepth(policy.Category(types.CategoryContentDepth), stats)
	}

	total := 0.0
	for _, name := range types.CategoryNames() {
		cat := categories[name]
		result.Categories = append(result.Categories, cat)
		total += cat.Score
	}
	result.Overall = clampScore(total)

	elapsed := time.Since(start)
	e.logger.Debug("resume scored",
		zap.String("resume_id", result.ResumeID),
		zap.String("mode", string(mode)),
		zap.Float64("overall", result.Overall),
		zap.Int("issues", len(result.Issues)),
		zap.Strings("conditions", result.Conditions),
		zap.Duration("elapsed", elapsed))
	if e.observer != nil {
		e.observer.ObserveScore(result, elapsed)
	}
	return result, nil
}

// MatchKeywords resolves the request's keyword set and matches the résumé against it
// without scoring. An unresolved set is reported in the result, not as an error.
func (e *Engine) MatchKeywords(req Request) (*keywords.Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	target := e.resolveTarget(req)
	if target.set == nil {
		return keywords.Unresolved(target.reason), nil
	}
	return keywords.NewMatcher(target.set, e.matcherOpts...).Match(req.Resume.FullText()), nil
}

func validateRequest(req Request) error {
	if req.Resume == nil {
		return &RequestError{Field: "resume", Message: "résumé is required"}
	}
	if req.Mode != "" && !req.Mode.Valid() {
		return &RequestError{Field: "mode", Message: fmt.Sprintf("unknown scoring mode %q", req.Mode)}
	}
	if err := requestValidator.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		field := "request"
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field = verrs[0].Namespace()
		}
		return &RequestError{Field: field, Message: "failed validation", Cause: err}
	}
	return nil
}

// isolate runs an analyzer, converting a panic into an AnalyzerError
func isolate[T any](e *Engine, analyzer string, fn func() (T, error)) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("analyzer panicked",
				zap.String("analyzer", analyzer),
				zap.Any("panic", r))
			err = &AnalyzerError{Analyzer: analyzer, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	out, err = fn()
	if err != nil {
		e.logger.Warn("analyzer failed", zap.String("analyzer", analyzer), zap.Error(err))
		return out, &AnalyzerError{Analyzer: analyzer, Cause: err}
	}
	return out, nil
}

// clampScore bounds the total to [0, 100] and rounds it to one decimal
func clampScore(total float64) float64 {
	total = math.Max(0, math.Min(100, total))
	return math.Round(total*10) / 10
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}

// target is the keyword set and experience expectation a request is scored against
type target struct {
	set           *types.KeywordSet
	role          string
	expectedYears float64
	reason        string
}

// resolveTarget prefers the job description and falls back to the taxonomy. A failure
// leaves set nil with the reason recorded.
func (e *Engine) resolveTarget(req Request) target {
	if !req.JobDescription.IsEmpty() {
		return e.targetFromJobDescription(req)
	}
	return e.targetFromTaxonomy(req)
}

func (e *Engine) targetFromJobDescription(req Request) target {
	t := target{expectedYears: e.levelYears(req.Level)}

	set, profile, err := skills.FromJobDescription(req.JobDescription, e.vocabulary)
	if profile != nil {
		if profile.MinYears > 0 {
			t.expectedYears = profile.MinYears
		}
		t.role = profile.RoleTitle
	}
	if err != nil {
		t.reason = "job description: " + err.Error()
		if errors.Is(err, skills.ErrNoSkills) {
			t.reason = "job description names no recognizable skills"
		}
		return t
	}
	t.set = set
	return t
}

func (e *Engine) targetFromTaxonomy(req Request) target {
	var t target
	switch {
	case strings.TrimSpace(req.Role) == "":
		t.reason = "no role or job description given"
		t.expectedYears = e.levelYears(req.Level)
		return t
	case e.taxonomy == nil:
		t.reason = "no taxonomy loaded"
		return t
	}

	res, err := e.taxonomy.Resolve(req.Role, req.Level)
	if err != nil {
		t.reason = err.Error()
		t.expectedYears = e.levelYears(req.Level)
		return t
	}
	t.set = res.Set
	t.expectedYears = res.ExpectedYears
	return t
}

func (e *Engine) levelYears(level string) float64 {
	if e.taxonomy == nil || strings.TrimSpace(level) == "" {
		return 0
	}
	years, _ := e.taxonomy.LevelYears(level)
	return years
}
