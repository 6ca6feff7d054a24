package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-scorer/internal/parsing"
	"github.com/jonathan/resume-scorer/internal/style"
)

func checkSections(in *input, c *collector) {
	resume := in.resume

	if resume.IsEmpty() {
		c.add("empty_resume", nil, "Résumé has no content")
	}
	if len(resume.Experience) == 0 {
		c.add("missing_experience", at("experience"), "No work experience listed")
	}

	var skills []string
	for _, s := range resume.Skills {
		if strings.TrimSpace(s) != "" {
			skills = append(skills, s)
		}
	}
	switch {
	case len(skills) == 0:
		c.add("missing_skills", at("skills"), "No skills listed")
	case len(skills) < in.thresholds.MinSkills:
		c.add("too_few_skills", at("skills"),
			fmt.Sprintf("Only %d skills listed; aim for at least %d", len(skills), in.thresholds.MinSkills))
	}

	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		key := parsing.SkillKey(s)
		if seen[key] {
			c.add("duplicate_skill", at("skills"), fmt.Sprintf("Skill %q is listed more than once", strings.TrimSpace(s)))
			continue
		}
		seen[key] = true
	}

	summary := strings.TrimSpace(resume.Summary)
	if summary == "" {
		c.add("missing_summary", at("summary"), "No professional summary")
	} else if words := style.WordCount(summary); words > in.thresholds.MaxSummaryWords {
		c.add("summary_too_long", at("summary"),
			fmt.Sprintf("Summary has %d words; keep it under %d", words, in.thresholds.MaxSummaryWords))
	}

	if len(resume.Education) == 0 {
		c.add("missing_education", at("education"), "No education listed")
	}
}
