package skills

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-scorer/internal/ingestion"
	"github.com/jonathan/resume-scorer/internal/keywords"
	"github.com/jonathan/resume-scorer/internal/parsing"
	"github.com/jonathan/resume-scorer/internal/types"
)

// section is the part of a posting a line belongs to
type section int

const (
	sectionGeneral section = iota
	sectionRequired
	sectionNiceToHave
)

var requiredHeaders = map[string]bool{
	"requirements": true, "required": true, "required skills": true, "required qualifications": true,
	"qualifications": true, "minimum qualifications": true, "basic qualifications": true,
	"must have": true, "must haves": true, "what you'll need": true, "what you need": true,
	"what we're looking for": true, "you have": true, "who you are": true, "skills": true,
	"skills and experience": true, "technical skills": true, "your experience": true,
}

var niceHeaders = map[string]bool{
	"nice to have": true, "nice to haves": true, "preferred": true, "preferred qualifications": true,
	"preferred skills": true, "bonus": true, "bonus points": true, "pluses": true, "desired": true,
	"desirable": true, "good to have": true, "extra credit": true,
}

var otherHeaders = map[string]bool{
	"responsibilities": true, "what you'll do": true, "what you will do": true, "about us": true,
	"about the role": true, "about the team": true, "benefits": true, "perks": true,
	"compensation": true, "the role": true, "overview": true, "who we are": true,
}

var (
	niceHints     = []string{"nice to have", "preferred", "a plus", "bonus", "desirable", "is a plus", "ideally"}
	requiredHints = []string{"required", "must have", "must be", "you must"}
	yearsPattern  = regexp.MustCompile(`(?i)\b(\d{1,2})\s*\+?\s*(?:(?:-|to)\s*\d{1,2}\s*)?\+?\s*(?:years?|yrs?)\b`)
)

const maxTitleWords = 8

// ExtractJobProfile finds vocabulary terms in a plain-text job description and sorts them
// into hard requirements, nice-to-haves and loose keywords by the section they appear in.
// Only exact, stemmed and synonym matches count; fuzzy matching is disabled so that similar
// technology names are not confused.
func ExtractJobProfile(text string, vocab []types.Keyword) *types.JobProfile {
	profile := &types.JobProfile{
		HardRequirements: []types.Requirement{},
		NiceToHaves:      []types.Requirement{},
		Keywords:         []string{},
	}
	if len(vocab) == 0 || strings.TrimSpace(text) == "" {
		return profile
	}

	matcher := keywords.NewMatcher(keywords.BuildSet(types.SourceJobDescription, vocab),
		keywords.WithFuzzyThreshold(1))

	current := sectionGeneral
	seenHeader := false
	var firstYears, requiredYears float64
	for _, raw := range strings.Split(ingestion.CleanText(text), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if kind, ok := headerSection(line); ok {
			current = kind
			seenHeader = true
			continue
		}
		// The title is a short leading line before any section starts
		if !seenHeader && profile.RoleTitle == "" && !ingestionBullet(line) &&
			len(strings.Fields(line)) <= maxTitleWords && !strings.HasSuffix(line, ".") {
			profile.RoleTitle = line
		}

		lineSection := classifyLine(line, current)
		if years, ok := parseYears(line); ok {
			if firstYears == 0 {
				firstYears = years
			}
			if lineSection == sectionRequired && requiredYears == 0 {
				requiredYears = years
			}
		}

		result := matcher.Match(line)
		for _, m := range result.Matches {
			if !m.Matched {
				continue
			}
			req := types.Requirement{Skill: m.Keyword.Canonical, Evidence: line}
			switch lineSection {
			case sectionRequired:
				profile.HardRequirements = append(profile.HardRequirements, req)
			case sectionNiceToHave:
				profile.NiceToHaves = append(profile.NiceToHaves, req)
			default:
				profile.Keywords = append(profile.Keywords, m.Keyword.Canonical)
			}
		}
	}

	profile.MinYears = requiredYears
	if profile.MinYears == 0 {
		profile.MinYears = firstYears
	}
	profile.HardRequirements = parsing.NormalizeRequirements(profile.HardRequirements)
	profile.NiceToHaves = parsing.NormalizeRequirements(profile.NiceToHaves)
	return profile
}

// headerSection recognizes section headings such as "Requirements:" or "## Nice to have"
func headerSection(line string) (section, bool) {
	name := strings.ToLower(line)
	name = strings.ReplaceAll(name, "’", "'")
	name = strings.TrimLeft(name, "#* ")
	name = strings.TrimRight(name, ":*. ")
	switch {
	case requiredHeaders[name]:
		return sectionRequired, true
	case niceHeaders[name]:
		return sectionNiceToHave, true
	case otherHeaders[name]:
		return sectionGeneral, true
	}

	if !strings.HasSuffix(strings.TrimSpace(line), ":") || len(strings.Fields(name)) > 6 || ingestionBullet(line) {
		return sectionGeneral, false
	}
	switch {
	case containsAny(name, "nice", "prefer", "bonus", "plus"):
		return sectionNiceToHave, true
	case containsAny(name, "require", "qualif", "must", "need"):
		return sectionRequired, true
	default:
		return sectionGeneral, true
	}
}

// classifyLine lets explicit wording on a line override its section
func classifyLine(line string, current section) section {
	lower := strings.ToLower(line)
	if containsAny(lower, niceHints...) {
		return sectionNiceToHave
	}
	if current == sectionGeneral && containsAny(lower, requiredHints...) {
		return sectionRequired
	}
	return current
}

func parseYears(line string) (float64, bool) {
	m := yearsPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	years, err := strconv.Atoi(m[1])
	if err != nil || years == 0 {
		return 0, false
	}
	return float64(years), true
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func ingestionBullet(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "• ")
}
