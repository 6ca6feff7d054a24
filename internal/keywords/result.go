package keywords

import "github.com/jonathan/resume-scorer/internal/types"

// KeywordMatch is the outcome for a single keyword
type KeywordMatch struct {
	Keyword    types.Keyword `json:"keyword"`
	Matched    bool          `json:"matched"`
	Kind       MatchKind     `json:"kind,omitempty"`
	Variant    string        `json:"variant,omitempty"`
	Evidence   string        `json:"evidence,omitempty"`
	Similarity float64       `json:"similarity,omitempty"`
}

// Result is the outcome of matching a document against a keyword set.
// An unresolved result is distinct from a zero ratio: it means there was nothing to match against.
type Result struct {
	Unresolved       bool           `json:"unresolved"`
	Reason           string         `json:"reason,omitempty"`
	Matches          []KeywordMatch `json:"matches"`
	RequiredTotal    int            `json:"required_total"`
	RequiredMatched  int            `json:"required_matched"`
	PreferredTotal   int            `json:"preferred_total"`
	PreferredMatched int            `json:"preferred_matched"`
	RequiredRatio    float64        `json:"required_ratio"`
	PreferredRatio   float64        `json:"preferred_ratio"`
}

// Unresolved returns a result marking the keyword set as unavailable
func Unresolved(reason string) *Result {
	return &Result{Unresolved: true, Reason: reason}
}

func newResult(matches []KeywordMatch) *Result {
	r := &Result{Matches: matches}
	for _, m := range matches {
		switch m.Keyword.Tier {
		case types.TierPreferred:
			r.PreferredTotal++
			if m.Matched {
				r.PreferredMatched++
			}
		default:
			r.RequiredTotal++
			if m.Matched {
				r.RequiredMatched++
			}
		}
	}
	if r.RequiredTotal > 0 {
		r.RequiredRatio = float64(r.RequiredMatched) / float64(r.RequiredTotal)
	}
	if r.PreferredTotal > 0 {
		r.PreferredRatio = float64(r.PreferredMatched) / float64(r.PreferredTotal)
	}
	if r.RequiredTotal == 0 && r.PreferredTotal == 0 {
		r.Unresolved = true
		r.Reason = "keyword set is empty"
	}
	return r
}

// PrimaryRatio is the ratio that drives scoring: the required ratio, or the preferred
// ratio when the set has no required keywords. ok is false for unresolved results.
func (r *Result) PrimaryRatio() (ratio float64, ok bool) {
	switch {
	case r == nil || r.Unresolved:
		return 0, false
	case r.RequiredTotal > 0:
		return r.RequiredRatio, true
	default:
		return r.PreferredRatio, true
	}
}

// HasPreferred reports whether preferred keywords contribute a separate bonus
func (r *Result) HasPreferred() bool {
	return r != nil && !r.Unresolved && r.RequiredTotal > 0 && r.PreferredTotal > 0
}

// Matched returns canonical names of matched keywords, required first
func (r *Result) Matched() []string {
	return r.collect(true)
}

// Missing returns canonical names of unmatched keywords, required first
func (r *Result) Missing() []string {
	return r.collect(false)
}

func (r *Result) collect(matched bool) []string {
	out := []string{}
	if r == nil {
		return out
	}
	for _, tier := range []types.KeywordTier{types.TierRequired, types.TierPreferred} {
		for _, m := range r.Matches {
			if m.Matched == matched && m.Keyword.Tier == tier {
				out = append(out, m.Keyword.Canonical)
			}
		}
	}
	return out
}
