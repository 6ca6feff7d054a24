package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-scorer/internal/experience"
	"github.com/jonathan/resume-scorer/internal/style"
)

func checkEntries(in *input, c *collector) {
	t := in.thresholds
	for i, entry := range in.resume.Experience {
		label := entryLabel(i, entry.Title, entry.Organization)

		if strings.TrimSpace(entry.Title) == "" {
			c.add("missing_job_title", atEntry(i), fmt.Sprintf("%s has no job title", label))
		}
		if strings.TrimSpace(entry.Organization) == "" {
			c.add("missing_organization", atEntry(i), fmt.Sprintf("%s has no organization", label))
		}

		n := len(style.NonBlank(entry.Bullets))
		switch {
		case n == 0:
			c.add("missing_bullets", atEntry(i), fmt.Sprintf("%s has no bullets", label))
		case n < t.MinBullets:
			c.add("too_few_bullets", atEntry(i),
				fmt.Sprintf("%s has %d bullets; aim for at least %d", label, n, t.MinBullets))
		case n > t.MaxBullets:
			c.add("too_many_bullets", atEntry(i),
				fmt.Sprintf("%s has %d bullets; keep it to %d or fewer", label, n, t.MaxBullets))
		}
	}
}

func checkDates(in *input, c *collector) {
	exp := in.exp
	entries := in.resume.Experience

	for _, f := range exp.Failures {
		label := "Experience entry"
		if f.Entry < len(entries) {
			label = entryLabel(f.Entry, entries[f.Entry].Title, entries[f.Entry].Organization)
		}
		switch {
		case f.Reason == experience.ReasonMissing && f.Field == "start_date":
			c.add("missing_start_date", atEntry(f.Entry), fmt.Sprintf("%s has no start date", label))
		case f.Reason == experience.ReasonMissing:
			c.add("missing_end_date", atEntry(f.Entry),
				fmt.Sprintf("%s has no end date; use \"Present\" for a current role", label))
		default:
			c.add("unparsable_date", atEntry(f.Entry),
				fmt.Sprintf("%s has an unreadable %s %q", label, strings.ReplaceAll(f.Field, "_", " "), f.Input))
		}
	}

	for _, i := range exp.Inverted {
		if i >= len(entries) {
			continue
		}
		c.add("start_after_end", atEntry(i),
			fmt.Sprintf("Entry %d starts (%s) after it ends (%s)", i+1, entries[i].StartDate, entries[i].EndDate))
	}
	for _, i := range exp.Future {
		c.add("future_date", atEntry(i), fmt.Sprintf("Entry %d has dates in the future", i+1))
	}

	for _, gap := range exp.Gaps {
		if gap.Months > in.thresholds.GapMonths {
			c.add("employment_gap", at("experience"),
				fmt.Sprintf("%d month gap between %s and %s", gap.Months, gap.From, gap.To))
		}
	}

	if formats := exp.Formats(); len(formats) > 1 {
		names := make([]string, len(formats))
		for i, f := range formats {
			names[i] = string(f)
		}
		c.add("inconsistent_date_format", at("experience"),
			fmt.Sprintf("Dates mix formats: %s", strings.Join(names, ", ")))
	}
}

func entryLabel(i int, title, org string) string {
	title, org = strings.TrimSpace(title), strings.TrimSpace(org)
	switch {
	case title != "" && org != "":
		return fmt.Sprintf("%s at %s", title, org)
	case title != "":
		return title
	case org != "":
		return fmt.Sprintf("Role at %s", org)
	default:
		return fmt.Sprintf("Experience entry %d", i+1)
	}
}
