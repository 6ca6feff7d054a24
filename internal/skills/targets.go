// Package skills turns job descriptions into tiered keyword sets.
package skills

import (
	"errors"
	"sort"

	"github.com/jonathan/resume-scorer/internal/keywords"
	"github.com/jonathan/resume-scorer/internal/parsing"
	"github.com/jonathan/resume-scorer/internal/types"
)

// ErrNoSkills is returned when a job profile names no usable skills
var ErrNoSkills = errors.New("no skills found in job profile")

const (
	// Weight constants for skill sources (requirement level)
	weightHardRequirement = 1.0
	weightNiceToHave      = 0.5
	weightKeyword         = 0.3

	// Source constants
	sourceHardRequirement = "hard_requirement"
	sourceNiceToHave      = "nice_to_have"
	sourceKeyword         = "keyword"
)

// BuildKeywordSet builds a tiered keyword set from a JobProfile. Hard requirements become
// required keywords and nice-to-haves preferred ones. Loose keywords are preferred when the
// profile has hard requirements and required otherwise. When a skill appears under several
// sources the strongest wins (hard requirement > nice-to-have > keyword). Synonyms are taken
// from vocab. Keywords are ordered by weight, then by first appearance.
func BuildKeywordSet(jobProfile *types.JobProfile, vocab []types.Keyword) (*types.KeywordSet, error) {
	if jobProfile == nil {
		return nil, ErrNoSkills
	}

	// Map: skill key -> skill info (weight, source)
	skillMap := make(map[string]*skillInfo)
	var order []string

	add := func(skill string, weight float64, source string) {
		name := parsing.NormalizeSkillName(skill)
		key := parsing.SkillKey(name)
		if key == "" {
			return
		}
		if _, exists := skillMap[key]; !exists {
			order = append(order, key)
		}
		addOrUpdateSkill(skillMap, key, name, weight, source)
	}

	for _, req := range jobProfile.HardRequirements {
		add(req.Skill, weightHardRequirement, sourceHardRequirement)
	}
	for _, req := range jobProfile.NiceToHaves {
		add(req.Skill, weightNiceToHave, sourceNiceToHave)
	}
	for _, keyword := range jobProfile.Keywords {
		add(keyword, weightKeyword, sourceKeyword)
	}

	if len(order) == 0 {
		return nil, ErrNoSkills
	}

	// Sort by weight (descending), keeping first-appearance order within a weight
	sort.SliceStable(order, func(i, j int) bool {
		return skillMap[order[i]].weight > skillMap[order[j]].weight
	})

	synonyms := make(map[string][]string, len(vocab))
	for _, kw := range vocab {
		synonyms[parsing.SkillKey(kw.Canonical)] = kw.Synonyms
	}

	looseTier := types.TierRequired
	if len(jobProfile.HardRequirements) > 0 {
		looseTier = types.TierPreferred
	}

	kws := make([]types.Keyword, 0, len(order))
	for _, key := range order {
		info := skillMap[key]
		tier := looseTier
		switch info.source {
		case sourceHardRequirement:
			tier = types.TierRequired
		case sourceNiceToHave:
			tier = types.TierPreferred
		}
		kws = append(kws, types.Keyword{Canonical: info.name, Synonyms: synonyms[key], Tier: tier})
	}

	set := keywords.BuildSet(types.SourceJobDescription, kws)
	set.Role = jobProfile.RoleTitle
	return set, nil
}

// skillInfo holds temporary information about a skill during building
type skillInfo struct {
	name   string
	weight float64
	source string
}

// addOrUpdateSkill adds a skill to the map or updates it if it exists,
// taking the maximum weight when duplicates are found.
func addOrUpdateSkill(skillMap map[string]*skillInfo, key, name string, weight float64, source string) {
	existing, exists := skillMap[key]
	if !exists {
		skillMap[key] = &skillInfo{name: name, weight: weight, source: source}
		return
	}
	// Take maximum weight
	if weight > existing.weight {
		existing.weight = weight
		existing.source = source
	}
	// If weights are equal, prioritize source by: hard_requirement > nice_to_have > keyword
	if weight == existing.weight && getSourcePriority(source) > getSourcePriority(existing.source) {
		existing.source = source
	}
}

// getSourcePriority returns a numeric priority for source types.
// Higher numbers indicate higher priority.
func getSourcePriority(source string) int {
	switch source {
	case sourceHardRequirement:
		return 3
	case sourceNiceToHave:
		return 2
	case sourceKeyword:
		return 1
	default:
		return 0
	}
}
