// Package types provides type definitions for structured data used throughout the resume-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// KeywordTier classifies a keyword as required or preferred
type KeywordTier string

const (
	// TierRequired keywords drive the primary match ratio
	TierRequired KeywordTier = "required"
	// TierPreferred keywords are tracked separately and only add bonus points
	TierPreferred KeywordTier = "preferred"
)

// KeywordSource records where a keyword set came from
type KeywordSource string

const (
	// SourceTaxonomy marks sets resolved from the role taxonomy
	SourceTaxonomy KeywordSource = "taxonomy"
	// SourceJobDescription marks sets derived from a job description
	SourceJobDescription KeywordSource = "job_description"
)

// Keyword is a canonical term with its accepted synonyms
type Keyword struct {
	Canonical string      `json:"canonical"`
	Synonyms  []string    `json:"synonyms,omitempty"`
	Tier      KeywordTier `json:"tier"`
}

// KeywordSet is the target vocabulary a résumé is matched against.
// Each canonical keyword appears exactly once, in exactly one tier.
type KeywordSet struct {
	Source   KeywordSource `json:"source"`
	Role     string        `json:"role,omitempty"`
	Level    string        `json:"level,omitempty"`
	Version  string        `json:"version,omitempty"`
	Keywords []Keyword     `json:"keywords"`
}

// Required returns the required-tier keywords in set order
func (s *KeywordSet) Required() []Keyword {
	return s.byTier(TierRequired)
}

// Preferred returns the preferred-tier keywords in set order
func (s *KeywordSet) Preferred() []Keyword {
	return s.byTier(TierPreferred)
}

func (s *KeywordSet) byTier(tier KeywordTier) []Keyword {
	if s == nil {
		return nil
	}
	var out []Keyword
	for _, kw := range s.Keywords {
		if kw.Tier == tier {
			out = append(out, kw)
		}
	}
	return out
}
