package keywords

import (
	"testing"

	"github.com/jonathan/resume-scorer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSet_DeduplicatesAndRequiredWins(t *testing.T) {
	set := BuildSet(types.SourceTaxonomy, []types.Keyword{
		{Canonical: "Golang", Synonyms: []string{"go lang"}, Tier: types.TierPreferred},
		{Canonical: "Go", Synonyms: []string{"golang", "Go"}, Tier: types.TierRequired},
		{Canonical: "  ", Tier: types.TierRequired},
		{Canonical: "Docker"},
	})

	require.Len(t, set.Keywords, 2)
	assert.Equal(t, types.SourceTaxonomy, set.Source)

	golang := set.Keywords[0]
	assert.Equal(t, "Golang", golang.Canonical)
	assert.Equal(t, types.TierRequired, golang.Tier)
	assert.Equal(t, []string{"go lang", "Go"}, golang.Synonyms)

	assert.Equal(t, types.TierRequired, set.Keywords[1].Tier, "missing tier defaults to required")
}

func TestFromJobKeywords(t *testing.T) {
	set := FromJobKeywords([]types.JobKeyword{
		{Term: "Python", Tier: types.TierRequired},
		{Term: "Airflow", Tier: types.TierPreferred, Synonyms: []string{"apache airflow"}},
	})

	assert.Equal(t, types.SourceJobDescription, set.Source)
	require.Len(t, set.Keywords, 2)
	assert.Equal(t, types.TierPreferred, set.Keywords[1].Tier)
	assert.Equal(t, []string{"apache airflow"}, set.Keywords[1].Synonyms)
}
