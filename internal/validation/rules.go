package validation

import "github.com/jonathan/resume-scorer/internal/types"

// Rule categories, in the order the battery runs them
const (
	CategoryContact    = "contact"
	CategorySections   = "sections"
	CategoryEntries    = "entries"
	CategoryDates      = "dates"
	CategoryBullets    = "bullets"
	CategoryPhrasing   = "phrasing"
	CategoryFormatting = "formatting"
	CategorySpelling   = "spelling"
	CategoryGrammar    = "grammar"
)

// Rule describes one kind of issue the validator can report
type Rule struct {
	Kind        string         `json:"kind"`
	Category    string         `json:"category"`
	Severity    types.Severity `json:"severity"`
	Description string         `json:"description"`
}

const (
	critical = types.SeverityCritical
	warning  = types.SeverityWarning
)

var catalogue = []Rule{
	{"missing_name", CategoryContact, critical, "Contact name is blank"},
	{"missing_email", CategoryContact, critical, "Contact email is blank"},
	{"invalid_email", CategoryContact, critical, "Contact email is not a valid address"},
	{"missing_phone", CategoryContact, warning, "Contact phone is blank"},
	{"invalid_phone", CategoryContact, warning, "Contact phone has too few or too many digits"},
	{"missing_location", CategoryContact, warning, "Contact location is blank"},
	{"unprofessional_email", CategoryContact, warning, "Email address uses an unprofessional handle"},
	{"missing_profile_link", CategoryContact, warning, "No profile or portfolio link"},
	{"invalid_link", CategoryContact, warning, "Link is not a valid URL"},

	{"empty_resume", CategorySections, critical, "Résumé has no content"},
	{"missing_experience", CategorySections, critical, "No experience entries"},
	{"missing_skills", CategorySections, critical, "No skills listed"},
	{"missing_summary", CategorySections, warning, "No summary"},
	{"missing_education", CategorySections, warning, "No education entries"},
	{"too_few_skills", CategorySections, warning, "Fewer skills than expected"},
	{"duplicate_skill", CategorySections, warning, "Skill listed more than once"},
	{"summary_too_long", CategorySections, warning, "Summary is longer than expected"},

	{"missing_job_title", CategoryEntries, critical, "Experience entry has no title"},
	{"missing_organization", CategoryEntries, warning, "Experience entry has no organization"},
	{"missing_bullets", CategoryEntries, critical, "Experience entry has no bullets"},
	{"too_few_bullets", CategoryEntries, warning, "Experience entry has few bullets"},
	{"too_many_bullets", CategoryEntries, warning, "Experience entry has too many bullets"},

	{"missing_start_date", CategoryDates, critical, "Experience entry has no start date"},
	{"unparsable_date", CategoryDates, critical, "Date could not be parsed"},
	{"start_after_end", CategoryDates, critical, "Start date is after end date"},
	{"missing_end_date", CategoryDates, warning, "Experience entry has no end date"},
	{"future_date", CategoryDates, warning, "Date lies in the future"},
	{"employment_gap", CategoryDates, warning, "Unexplained gap between positions"},
	{"inconsistent_date_format", CategoryDates, warning, "Dates use more than one notation"},

	{"bullet_too_short", CategoryBullets, warning, "Bullet is too short to convey impact"},
	{"bullet_too_long", CategoryBullets, warning, "Bullet is too long to scan"},
	{"weak_action_verb", CategoryBullets, warning, "Bullet opens with a weak verb or phrase"},
	{"entry_not_quantified", CategoryBullets, warning, "No bullet in the entry is quantified"},
	{"first_person_pronoun", CategoryBullets, warning, "Bullet uses first-person pronouns"},
	{"repeated_action_verb", CategoryBullets, warning, "Same action verb opens many bullets"},
	{"inconsistent_punctuation", CategoryBullets, warning, "Bullets mix terminal punctuation"},
	{"duplicate_bullet", CategoryBullets, warning, "Bullet repeats an earlier bullet"},
	{"lowercase_bullet_start", CategoryBullets, warning, "Bullet starts with a lowercase letter"},

	{"vague_phrase", CategoryPhrasing, warning, "Vague wording"},
	{"cliche", CategoryPhrasing, warning, "Overused résumé cliché"},
	{"filler_word", CategoryPhrasing, warning, "Filler word weakens the statement"},
	{"passive_voice_overuse", CategoryPhrasing, warning, "Many bullets use passive voice"},

	{"all_caps_text", CategoryFormatting, warning, "Text is written in capitals"},
	{"excessive_punctuation", CategoryFormatting, warning, "Exclamation marks or repeated punctuation"},
	{"special_characters", CategoryFormatting, warning, "Symbols or emoji that parsers may drop"},
	{"personal_information", CategoryFormatting, warning, "Personal details that should be omitted"},

	{"spelling_error", CategorySpelling, warning, "Possible misspelling"},
	{"grammar_error", CategoryGrammar, warning, "Possible grammar problem"},
}

var rulesByKind = func() map[string]Rule {
	m := make(map[string]Rule, len(catalogue))
	for _, r := range catalogue {
		m[r.Kind] = r
	}
	return m
}()

// Rules returns the rule catalogue in battery order
func Rules() []Rule {
	out := make([]Rule, len(catalogue))
	copy(out, catalogue)
	return out
}

// LookupRule returns the rule for an issue kind
func LookupRule(kind string) (Rule, bool) {
	r, ok := rulesByKind[kind]
	return r, ok
}

// collector accumulates issues with their catalogue severity
type collector struct {
	issues []types.ValidationIssue
}

func (c *collector) add(kind string, loc *types.IssueLocation, message string) {
	rule, ok := rulesByKind[kind]
	if !ok {
		panic("validation: unknown rule kind " + kind)
	}
	c.issues = append(c.issues, types.ValidationIssue{
		Kind:     kind,
		Severity: rule.Severity,
		Message:  message,
		Location: loc,
	})
}

func at(section string) *types.IssueLocation {
	return &types.IssueLocation{Section: section}
}

func atEntry(entry int) *types.IssueLocation {
	return &types.IssueLocation{Section: "experience", Entry: intPtr(entry)}
}

func atBullet(entry, bullet int) *types.IssueLocation {
	return &types.IssueLocation{Section: "experience", Entry: intPtr(entry), Bullet: intPtr(bullet)}
}

// intPtr returns a pointer to an int
func intPtr(i int) *int {
	return &i
}
