// Package taxonomy provides the versioned role taxonomy: reference data mapping a
// (role, level) pair to a keyword set and an experience expectation.
// The default taxonomy is embedded at compile time; alternatives can be loaded from file.
package taxonomy

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/resume-scorer/internal/keywords"
	"github.com/jonathan/resume-scorer/internal/parsing"
	"github.com/jonathan/resume-scorer/internal/schemas"
	"github.com/jonathan/resume-scorer/internal/types"
)

//go:embed roles.json
var defaultData []byte

var (
	defaultOnce     sync.Once
	defaultTaxonomy *Taxonomy
	defaultErr      error
)

// Level is a seniority band
type Level struct {
	ID       string   `json:"id"`
	Name     string   `json:"name,omitempty"`
	Aliases  []string `json:"aliases,omitempty"`
	MinYears float64  `json:"min_years"`
}

// Tiers are keywords added for a specific level of a role
type Tiers struct {
	Required      []types.Keyword `json:"required,omitempty"`
	Preferred     []types.Keyword `json:"preferred,omitempty"`
	ExpectedYears *float64        `json:"expected_years,omitempty"`
}

// Role is a job family with its base keywords and level-specific additions
type Role struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Aliases   []string         `json:"aliases,omitempty"`
	Required  []types.Keyword  `json:"required"`
	Preferred []types.Keyword  `json:"preferred,omitempty"`
	Levels    map[string]Tiers `json:"levels,omitempty"`
}

// Taxonomy is immutable after loading and safe for concurrent use
type Taxonomy struct {
	Version string  `json:"version"`
	Levels  []Level `json:"levels"`
	Roles   []Role  `json:"roles"`

	roleIndex  map[string]int
	levelIndex map[string]int
}

// Resolution is the outcome of a successful (role, level) lookup
type Resolution struct {
	Role          *Role
	Level         *Level // nil when no level was requested
	Set           *types.KeywordSet
	ExpectedYears float64
}

// Default returns the embedded taxonomy. It is parsed once per process.
func Default() (*Taxonomy, error) {
	defaultOnce.Do(func() {
		defaultTaxonomy, defaultErr = Parse(defaultData)
	})
	return defaultTaxonomy, defaultErr
}

// Load reads and validates a taxonomy file
func Load(path string) (*Taxonomy, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	return Parse(content)
}

// Parse validates taxonomy JSON against the taxonomy schema and builds lookup indexes
func Parse(content []byte) (*Taxonomy, error) {
	if err := schemas.ValidateTaxonomy(content); err != nil {
		return nil, &LoadError{Message: "schema validation failed", Cause: err}
	}

	var t Taxonomy
	if err := json.Unmarshal(content, &t); err != nil {
		return nil, &LoadError{Message: "failed to unmarshal JSON", Cause: err}
	}

	if err := t.buildIndexes(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Taxonomy) buildIndexes() error {
	t.levelIndex = make(map[string]int)
	for i, level := range t.Levels {
		for _, name := range append([]string{level.ID, level.Name}, level.Aliases...) {
			if err := addName(t.levelIndex, name, i, "level"); err != nil {
				return err
			}
		}
	}

	t.roleIndex = make(map[string]int)
	for i, role := range t.Roles {
		for _, name := range append([]string{role.ID, role.Name}, role.Aliases...) {
			if err := addName(t.roleIndex, name, i, "role"); err != nil {
				return err
			}
		}
		for levelID := range role.Levels {
			if _, ok := t.levelIndex[normalizeName(levelID)]; !ok {
				return &LoadError{Message: fmt.Sprintf("role %s references unknown level %q", role.ID, levelID)}
			}
		}
	}
	return nil
}

func addName(index map[string]int, name string, i int, kind string) error {
	key := normalizeName(name)
	if key == "" {
		return nil
	}
	if existing, ok := index[key]; ok && existing != i {
		return &LoadError{Message: fmt.Sprintf("%s name %q is ambiguous", kind, name)}
	}
	index[key] = i
	return nil
}

// normalizeName lowercases and folds separators so "Software-Engineer",
// "software_engineer" and "Software  Engineer" compare equal
func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// FindRole looks up a role by id, name or alias
func (t *Taxonomy) FindRole(name string) (*Role, bool) {
	i, ok := t.roleIndex[normalizeName(name)]
	if !ok {
		return nil, false
	}
	return &t.Roles[i], true
}

// FindLevel looks up a level by id, name or alias
func (t *Taxonomy) FindLevel(name string) (*Level, bool) {
	i, ok := t.levelIndex[normalizeName(name)]
	if !ok {
		return nil, false
	}
	return &t.Levels[i], true
}

// Resolve returns the keyword set and experience expectation for a (role, level) pair.
// The level may be empty, and a role given as a job title such as "Senior Data Scientist"
// is split into role and level. Absent pairs return an error matching ErrUnresolved.
func (t *Taxonomy) Resolve(roleName, levelName string) (*Resolution, error) {
	role, ok := t.FindRole(roleName)
	if !ok {
		role, levelName, ok = t.splitTitle(roleName, levelName)
		if !ok {
			return nil, &UnresolvedError{Role: roleName, Level: levelName, Field: "role"}
		}
	}

	var level *Level
	if strings.TrimSpace(levelName) != "" {
		level, ok = t.FindLevel(levelName)
		if !ok {
			return nil, &UnresolvedError{Role: roleName, Level: levelName, Field: "level"}
		}
	}

	kws := make([]types.Keyword, 0, len(role.Required)+len(role.Preferred))
	kws = appendTier(kws, role.Required, types.TierRequired)
	kws = appendTier(kws, role.Preferred, types.TierPreferred)

	res := &Resolution{Role: role, Level: level}
	if level != nil {
		res.ExpectedYears = level.MinYears
		if extra, ok := role.Levels[level.ID]; ok {
			kws = appendTier(kws, extra.Required, types.TierRequired)
			kws = appendTier(kws, extra.Preferred, types.TierPreferred)
			if extra.ExpectedYears != nil {
				res.ExpectedYears = *extra.ExpectedYears
			}
		}
	}

	set := keywords.BuildSet(types.SourceTaxonomy, kws)
	set.Role = role.ID
	if level != nil {
		set.Level = level.ID
	}
	set.Version = t.Version
	res.Set = set
	return res, nil
}

// splitTitle finds a level word inside a title-like role string
func (t *Taxonomy) splitTitle(title, levelName string) (*Role, string, bool) {
	words := strings.Fields(normalizeName(title))
	for size := 2; size >= 1; size-- {
		for i := 0; i+size <= len(words); i++ {
			candidate := strings.Join(words[i:i+size], " ")
			if _, ok := t.levelIndex[candidate]; !ok {
				continue
			}
			rest := append(append([]string{}, words[:i]...), words[i+size:]...)
			role, ok := t.FindRole(strings.Join(rest, " "))
			if !ok {
				continue
			}
			if strings.TrimSpace(levelName) == "" {
				levelName = candidate
			}
			return role, levelName, true
		}
	}
	return nil, levelName, false
}

func appendTier(dst, src []types.Keyword, tier types.KeywordTier) []types.Keyword {
	for _, kw := range src {
		kw.Tier = tier
		dst = append(dst, kw)
	}
	return dst
}

// LevelYears returns the minimum years of a level
func (t *Taxonomy) LevelYears(levelName string) (float64, bool) {
	level, ok := t.FindLevel(levelName)
	if !ok {
		return 0, false
	}
	return level.MinYears, true
}

// Vocabulary returns every distinct keyword in the taxonomy, sorted by canonical skill key.
// Job description extraction uses it as its term list.
func (t *Taxonomy) Vocabulary() []types.Keyword {
	var all []types.Keyword
	for _, role := range t.Roles {
		all = append(all, role.Required...)
		all = append(all, role.Preferred...)
		levelIDs := make([]string, 0, len(role.Levels))
		for id := range role.Levels {
			levelIDs = append(levelIDs, id)
		}
		sort.Strings(levelIDs)
		for _, id := range levelIDs {
			all = append(all, role.Levels[id].Required...)
			all = append(all, role.Levels[id].Preferred...)
		}
	}

	set := keywords.BuildSet(types.SourceTaxonomy, all)
	vocab := set.Keywords
	for i := range vocab {
		vocab[i].Tier = ""
	}
	sort.SliceStable(vocab, func(i, j int) bool {
		return parsing.SkillKey(vocab[i].Canonical) < parsing.SkillKey(vocab[j].Canonical)
	})
	return vocab
}

// RoleIDs returns the role ids in taxonomy order
func (t *Taxonomy) RoleIDs() []string {
	ids := make([]string, len(t.Roles))
	for i, role := range t.Roles {
		ids[i] = role.ID
	}
	return ids
}
