package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/taxonomy"
	"github.com/jonathan/resume-scorer/internal/types"
)

var testNow = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	tax, err := taxonomy.Default()
	require.NoError(t, err)
	return NewEngine(tax, append([]Option{WithClock(fixedClock)}, opts...)...)
}

// strongResume is complete, quantified and free of red flags
func strongResume() *types.ResumeData {
	return &types.ResumeData{
		Contact: types.Contact{
			Name:     "Jane Doe",
			Email:    "jane.doe@example.com",
			Phone:    "+1 (555) 123-4567",
			Location: "Austin, TX",
			Links:    []string{"linkedin.com/in/janedoe"},
		},
		Summary: "Backend engineer with eight years of experience building distributed payment systems in Go and Python.",
		Experience: []types.ExperienceEntry{
			{
				Title:        "Senior Software Engineer",
				Organization: "Acme Payments",
				StartDate:    "2019-01",
				EndDate:      "2021-12",
				Bullets: []string{
					"Led migration of 40 services to Kubernetes with zero downtime.",
					"Reduced payment API latency by 35% through query tuning and caching.",
					"Designed an idempotent ledger service processing two million transactions daily.",
				},
			},
			{
				Title:        "Staff Software Engineer",
				Organization: "Globex",
				StartDate:    "2022-01",
				EndDate:      "Present",
				Bullets: []string{
					"Built a fraud scoring pipeline in Python that flagged 12% more chargebacks.",
					"Mentored four junior engineers through design reviews and pairing sessions.",
					"Automated release tooling in Go, cutting deploy time from hours to minutes.",
				},
			},
		},
		Skills: []string{"Go", "Python", "PostgreSQL", "Kubernetes", "AWS", "gRPC"},
		Education: []types.Education{
			{Institution: "University of Texas", Degree: "BS", Field: "Computer Science", GraduationDate: "2016"},
		},
	}
}

// averageResume is complete but thin: one position, unquantified bullets and a weak opener
func averageResume() *types.ResumeData {
	return &types.ResumeData{
		Contact: types.Contact{
			Name:     "Sam Rivera",
			Email:    "sam.rivera@example.com",
			Phone:    "+1 555 987 6543",
			Location: "Denver, CO",
			Links:    []string{"github.com/samrivera"},
		},
		Summary: "Platform engineer focused on internal tooling and service reliability.",
		Experience: []types.ExperienceEntry{
			{
				Title:        "Software Engineer",
				Organization: "Initech",
				StartDate:    "2021-01",
				EndDate:      "Present",
				Bullets: []string{
					"Built internal billing services in Go and PostgreSQL for the finance team.",
					"Designed deployment pipelines on Kubernetes with Docker and Terraform modules.",
					"Worked on gRPC integrations with partner payment providers and Kafka consumers.",
				},
			},
		},
		Skills: []string{"Go", "Python", "PostgreSQL", "Kubernetes", "Docker", "Terraform", "gRPC", "Kafka"},
		Education: []types.Education{
			{Institution: "Colorado State University", Degree: "BS", Field: "Computer Science", GraduationDate: "2020"},
		},
	}
}

// tenRequired is a pre-extracted job keyword list; averageResume covers the first eight
func tenRequired() *types.JobDescription {
	terms := []string{"Go", "Python", "PostgreSQL", "Kubernetes", "Docker", "Terraform", "gRPC", "Kafka", "Redis", "GraphQL"}
	jd := &types.JobDescription{}
	for _, term := range terms {
		jd.Keywords = append(jd.Keywords, types.JobKeyword{Term: term, Tier: types.TierRequired})
	}
	return jd
}

func categoryScores(r *types.ScoreResult) map[string]float64 {
	out := make(map[string]float64, len(r.Categories))
	for _, c := range r.Categories {
		out[c.Name] = c.Score
	}
	return out
}
