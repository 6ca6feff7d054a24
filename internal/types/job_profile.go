// Package types provides type definitions for structured data used throughout the resume-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobDescription is the optional job posting a résumé is scored against.
// Either Text (plain or HTML) or a pre-extracted Keywords list may be supplied.
type JobDescription struct {
	Text     string       `json:"text,omitempty"`
	HTML     bool         `json:"html,omitempty"`
	Keywords []JobKeyword `json:"keywords,omitempty" validate:"omitempty,dive"`
}

// JobKeyword is a pre-extracted keyword from a job description
type JobKeyword struct {
	Term     string      `json:"term" validate:"required"`
	Tier     KeywordTier `json:"tier,omitempty" validate:"omitempty,oneof=required preferred"`
	Synonyms []string    `json:"synonyms,omitempty"`
}

// IsEmpty reports whether the job description carries nothing to match against
func (j *JobDescription) IsEmpty() bool {
	return j == nil || (len(j.Keywords) == 0 && j.Text == "")
}

// JobProfile is the structured view of a job description extracted from raw text
type JobProfile struct {
	RoleTitle        string        `json:"role_title,omitempty"`
	HardRequirements []Requirement `json:"hard_requirements"`
	NiceToHaves      []Requirement `json:"nice_to_haves"`
	Keywords         []string      `json:"keywords"`
	MinYears         float64       `json:"min_years,omitempty"`
}

// Requirement is a skill requirement with the text that evidenced it
type Requirement struct {
	Skill    string `json:"skill"`
	Evidence string `json:"evidence,omitempty"`
}
