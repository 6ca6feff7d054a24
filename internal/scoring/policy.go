package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-scorer/internal/types"
)

// Compare selects how a raw signal is compared with tier bounds
type Compare string

const (
	// AtLeast awards a tier when raw >= bound; tiers are listed with ascending bounds
	// and the highest reached tier wins
	AtLeast Compare = "at_least"
	// AtMost awards a tier when raw <= bound; tiers are listed with ascending bounds
	// and the first tier that fits wins
	AtMost Compare = "at_most"
)

// DefaultPolicyVersion identifies the built-in policy tables
const DefaultPolicyVersion = "2025.06"

const epsilon = 1e-9

var policyValidator = validator.New()

// Tier awards Points once the raw signal passes Bound
type Tier struct {
	Bound  float64 `koanf:"bound" json:"bound" validate:"gte=0"`
	Points float64 `koanf:"points" json:"points" validate:"gte=0"`
}

// CategoryPolicy is the weight and tiered threshold table of one category
type CategoryPolicy struct {
	Weight  float64 `koanf:"weight" json:"weight" validate:"gte=0,lte=100"`
	Compare Compare `koanf:"compare" json:"compare" validate:"oneof=at_least at_most"`
	Tiers   []Tier  `koanf:"tiers" json:"tiers" validate:"min=1,dive"`

	// Keywords: bonus points when the preferred ratio reaches PreferredThreshold, capped at Weight
	PreferredBonus     float64 `koanf:"preferred_bonus" json:"preferred_bonus,omitempty" validate:"gte=0"`
	PreferredThreshold float64 `koanf:"preferred_threshold" json:"preferred_threshold,omitempty" validate:"gte=0,lte=1"`

	// Red flags: minimum points with no critical issues, and the critical count that zeroes the category
	Floor           float64 `koanf:"floor" json:"floor,omitempty" validate:"gte=0"`
	CriticalCeiling int     `koanf:"critical_ceiling" json:"critical_ceiling,omitempty" validate:"gte=0"`
}

// Points maps a raw signal through the tier table
func (c CategoryPolicy) Points(raw float64) float64 {
	if c.Compare == AtMost {
		for _, t := range c.Tiers {
			if raw <= t.Bound+epsilon {
				return t.Points
			}
		}
		return 0
	}

	points := 0.0
	for _, t := range c.Tiers {
		if raw+epsilon >= t.Bound {
			points = t.Points
		}
	}
	return points
}

// NextTier returns the bound of the next better tier and its points, if any
func (c CategoryPolicy) NextTier(raw float64) (Tier, bool) {
	current := c.Points(raw)
	if c.Compare == AtMost {
		for i := len(c.Tiers) - 1; i >= 0; i-- {
			if c.Tiers[i].Points > current && raw > c.Tiers[i].Bound+epsilon {
				return c.Tiers[i], true
			}
		}
		return Tier{}, false
	}
	for _, t := range c.Tiers {
		if t.Points > current {
			return t, true
		}
	}
	return Tier{}, false
}

// Policy is the full table set of one scoring mode
type Policy struct {
	Categories map[string]CategoryPolicy `koanf:"categories" json:"categories"`
}

// Category returns the policy of a category
func (p *Policy) Category(name string) CategoryPolicy {
	return p.Categories[name]
}

// PolicySet holds one Policy per scoring mode
type PolicySet struct {
	Version string `koanf:"version" json:"version" validate:"required"`
	ATS     Policy `koanf:"ats_simulation" json:"ats_simulation"`
	Coach   Policy `koanf:"quality_coach" json:"quality_coach"`
}

// For returns the policy of a mode
func (s *PolicySet) For(mode types.ScoringMode) *Policy {
	if mode == types.ModeATSSimulation {
		return &s.ATS
	}
	return &s.Coach
}

func atLeast(weight float64, tiers ...Tier) CategoryPolicy {
	return CategoryPolicy{Weight: weight, Compare: AtLeast, Tiers: tiers}
}

// DefaultPolicySet returns the built-in tables. ATS simulation weights keyword coverage
// heavily; quality coach weights writing quality and depth.
func DefaultPolicySet() *PolicySet {
	atsKeywords := atLeast(35, Tier{0.31, 10}, Tier{0.51, 25}, Tier{0.71, 35})
	atsKeywords.PreferredBonus, atsKeywords.PreferredThreshold = 5, 0.5

	coachKeywords := atLeast(15, Tier{0.20, 5}, Tier{0.40, 10}, Tier{0.50, 12}, Tier{0.60, 15})
	coachKeywords.PreferredBonus, coachKeywords.PreferredThreshold = 3, 0.5

	return &PolicySet{
		Version: DefaultPolicyVersion,
		ATS: Policy{Categories: map[string]CategoryPolicy{
			types.CategoryKeywords:   atsKeywords,
			types.CategoryExperience: atLeast(15, Tier{0.5, 5}, Tier{0.8, 10}, Tier{1.0, 15}),
			types.CategoryStructure:  atLeast(15, Tier{0.6, 5}, Tier{0.8, 10}, Tier{1.0, 15}),
			types.CategoryRedFlags: {
				Weight: 15, Compare: AtMost,
				Tiers: []Tier{{2, 15}, {5, 10}, {9, 5}},
				Floor: 3, CriticalCeiling: 5,
			},
			types.CategoryActionVerbs:    atLeast(10, Tier{0.7, 4}, Tier{0.9, 10}),
			types.CategoryQuantification: atLeast(5, Tier{0.25, 2}, Tier{0.5, 5}),
			types.CategoryContentDepth:   atLeast(5, Tier{0.5, 2}, Tier{1.0, 5}),
		}},
		Coach: Policy{Categories: map[string]CategoryPolicy{
			types.CategoryKeywords:   coachKeywords,
			types.CategoryExperience: atLeast(10, Tier{0.25, 4}, Tier{0.5, 6}, Tier{0.8, 8}, Tier{1.0, 10}),
			types.CategoryStructure:  atLeast(10, Tier{0.5, 4}, Tier{0.7, 7}, Tier{0.85, 9}, Tier{1.0, 10}),
			types.CategoryRedFlags: {
				Weight: 20, Compare: AtMost,
				Tiers: []Tier{{3, 20}, {7, 15}, {12, 10}, {18, 5}},
				Floor: 5, CriticalCeiling: 5,
			},
			types.CategoryActionVerbs:    atLeast(15, Tier{0.7, 7.5}, Tier{0.9, 15}),
			types.CategoryQuantification: atLeast(15, Tier{0.15, 5}, Tier{0.30, 10}, Tier{0.45, 15}),
			types.CategoryContentDepth:   atLeast(15, Tier{0.34, 6}, Tier{0.67, 11}, Tier{0.9, 15}),
		}},
	}
}

// Validate checks every mode: all categories present, weights summing to 100, tier bounds
// strictly ascending, points monotonic toward the best tier, and the best tier worth exactly
// the category weight
func (s *PolicySet) Validate() error {
	if err := policyValidator.Struct(s); err != nil {
		return &PolicyError{Message: "policy set failed validation", Cause: err}
	}
	for _, mode := range types.Modes() {
		if err := s.For(mode).validate(); err != nil {
			return &PolicyError{Message: fmt.Sprintf("mode %s", mode), Cause: err}
		}
	}
	return nil
}

func (p *Policy) validate() error {
	total := 0.0
	for _, name := range types.CategoryNames() {
		c, ok := p.Categories[name]
		if !ok {
			return fmt.Errorf("category %s is missing", name)
		}
		if err := policyValidator.Struct(c); err != nil {
			return fmt.Errorf("category %s: %w", name, err)
		}
		if err := c.validateTiers(); err != nil {
			return fmt.Errorf("category %s: %w", name, err)
		}
		total += c.Weight
	}

	var unknown []string
	for name := range p.Categories {
		if !isCategory(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown categories %v", unknown)
	}

	if math.Abs(total-100) > epsilon {
		return fmt.Errorf("category weights sum to %g, want 100", total)
	}
	return nil
}

func (c CategoryPolicy) validateTiers() error {
	for i := 1; i < len(c.Tiers); i++ {
		prev, cur := c.Tiers[i-1], c.Tiers[i]
		if cur.Bound <= prev.Bound {
			return fmt.Errorf("tier bounds must be strictly ascending")
		}
		if c.Compare == AtLeast && cur.Points < prev.Points {
			return fmt.Errorf("tier points must not decrease as bounds rise")
		}
		if c.Compare == AtMost && cur.Points > prev.Points {
			return fmt.Errorf("tier points must not increase as bounds rise")
		}
	}

	best := c.Tiers[len(c.Tiers)-1]
	if c.Compare == AtMost {
		best = c.Tiers[0]
	}
	if math.Abs(best.Points-c.Weight) > epsilon {
		return fmt.Errorf("best tier is worth %g, want the category weight %g", best.Points, c.Weight)
	}
	if c.Floor > c.Weight {
		return fmt.Errorf("floor %g exceeds weight %g", c.Floor, c.Weight)
	}
	return nil
}

func isCategory(name string) bool {
	for _, n := range types.CategoryNames() {
		if n == name {
			return true
		}
	}
	return false
}
