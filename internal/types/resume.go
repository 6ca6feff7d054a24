// Package types provides type definitions for structured data used throughout the resume-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// ResumeData is a parsed résumé. The scoring engine treats it as read-only.
type ResumeData struct {
	Contact        Contact           `json:"contact"`
	Summary        string            `json:"summary,omitempty"`
	Experience     []ExperienceEntry `json:"experience"`
	Skills         []string          `json:"skills"`
	Education      []Education       `json:"education,omitempty"`
	Certifications []string          `json:"certifications,omitempty"`
}

// Contact holds the contact block of a résumé. Every field is optional.
type Contact struct {
	Name     string   `json:"name,omitempty"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Location string   `json:"location,omitempty"`
	Links    []string `json:"links,omitempty"`
}

// ExperienceEntry is a single position held by the candidate
type ExperienceEntry struct {
	Title        string   `json:"title"`
	Organization string   `json:"organization"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Bullets      []string `json:"bullets"`
}

// Education represents a degree or program
type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree,omitempty"`
	Field          string `json:"field,omitempty"`
	GraduationDate string `json:"graduation_date,omitempty"`
}

// IsEmpty reports whether the résumé carries no content at all
func (r *ResumeData) IsEmpty() bool {
	if r == nil {
		return true
	}
	c := r.Contact
	return strings.TrimSpace(c.Name) == "" && strings.TrimSpace(c.Email) == "" &&
		strings.TrimSpace(c.Phone) == "" && strings.TrimSpace(c.Location) == "" &&
		len(c.Links) == 0 && strings.TrimSpace(r.Summary) == "" &&
		len(r.Experience) == 0 && len(r.Skills) == 0 &&
		len(r.Education) == 0 && len(r.Certifications) == 0
}

// AllBullets returns every bullet in document order
func (r *ResumeData) AllBullets() []string {
	var bullets []string
	for _, entry := range r.Experience {
		bullets = append(bullets, entry.Bullets...)
	}
	return bullets
}

// FullText joins the searchable text of the résumé: summary, skills, titles, bullets,
// education and certifications, one item per line. The keyword matcher never matches a
// phrase across a line break.
func (r *ResumeData) FullText() string {
	if r == nil {
		return ""
	}
	var sb strings.Builder
	write := func(s string) {
		if strings.TrimSpace(s) == "" {
			return
		}
		sb.WriteString(s)
		sb.WriteString("\n")
	}

	write(r.Summary)
	for _, skill := range r.Skills {
		write(skill)
	}
	for _, entry := range r.Experience {
		write(entry.Title)
		for _, bullet := range entry.Bullets {
			write(bullet)
		}
	}
	for _, edu := range r.Education {
		write(edu.Degree)
		write(edu.Field)
	}
	for _, cert := range r.Certifications {
		write(cert)
	}
	return sb.String()
}
