// Package types provides type definitions for structured data used throughout the resume-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CategoryStatus reports whether a category was fully computed
type CategoryStatus string

const (
	// StatusComplete means the analyzer ran normally
	StatusComplete CategoryStatus = "complete"
	// StatusIncomplete means the analyzer failed or a check was degraded
	StatusIncomplete CategoryStatus = "incomplete"
	// StatusUnresolved means the category had no reference data to score against
	StatusUnresolved CategoryStatus = "unresolved"
)

// Category names, in result order
const (
	CategoryKeywords       = "keywords"
	CategoryExperience     = "experience"
	CategoryStructure      = "structure"
	CategoryRedFlags       = "red_flags"
	CategoryActionVerbs    = "action_verbs"
	CategoryQuantification = "quantification"
	CategoryContentDepth   = "content_depth"
)

// CategoryNames returns all category names in result order
func CategoryNames() []string {
	return []string{
		CategoryKeywords,
		CategoryExperience,
		CategoryStructure,
		CategoryRedFlags,
		CategoryActionVerbs,
		CategoryQuantification,
		CategoryContentDepth,
	}
}

// CategoryScore is the contribution of one category to the overall score
type CategoryScore struct {
	Name     string         `json:"name"`
	Score    float64        `json:"score"`
	MaxScore float64        `json:"max_score"`
	Raw      float64        `json:"raw"`
	Details  string         `json:"details"`
	Status   CategoryStatus `json:"status"`
	Helped   []string       `json:"helped,omitempty"`
	Dragged  []string       `json:"dragged,omitempty"`
}

// ExperienceSummary is the experience calculator output carried on a score result
type ExperienceSummary struct {
	TotalYears      float64 `json:"total_years"`
	ExpectedYears   float64 `json:"expected_years"`
	CountedEntries  int     `json:"counted_entries"`
	ExcludedEntries int     `json:"excluded_entries"`
}

// ScoreResult is the full, explainable outcome of scoring one résumé
type ScoreResult struct {
	ResumeID        string             `json:"resume_id"`
	Mode            ScoringMode        `json:"mode"`
	Role            string             `json:"role,omitempty"`
	Level           string             `json:"level,omitempty"`
	Overall         float64            `json:"overall"`
	Categories      []CategoryScore    `json:"categories"`
	Issues          []ValidationIssue  `json:"issues"`
	MatchedKeywords []string           `json:"matched_keywords"`
	MissingKeywords []string           `json:"missing_keywords"`
	Experience      *ExperienceSummary `json:"experience,omitempty"`
	Conditions      []string           `json:"conditions,omitempty"`
	DegradedChecks  []string           `json:"degraded_checks,omitempty"`
	PolicyVersion   string             `json:"policy_version"`
	TaxonomyVersion string             `json:"taxonomy_version,omitempty"`
}

// Category returns the named category, or nil when absent
func (r *ScoreResult) Category(name string) *CategoryScore {
	if r == nil {
		return nil
	}
	for i := range r.Categories {
		if r.Categories[i].Name == name {
			return &r.Categories[i]
		}
	}
	return nil
}

// HasCondition reports whether the result carries the named condition
func (r *ScoreResult) HasCondition(condition string) bool {
	if r == nil {
		return false
	}
	for _, c := range r.Conditions {
		if c == condition {
			return true
		}
	}
	return false
}
