package taxonomy

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-scorer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Loads(t *testing.T) {
	tax, err := Default()
	require.NoError(t, err)
	require.NotNil(t, tax)

	assert.NotEmpty(t, tax.Version)
	assert.Contains(t, tax.RoleIDs(), "software_engineer")
	assert.Contains(t, tax.RoleIDs(), "data_scientist")
	assert.Len(t, tax.Levels, 5)
}

func TestResolve_RoleAndLevel(t *testing.T) {
	tax, err := Default()
	require.NoError(t, err)

	res, err := tax.Resolve("Software Engineer", "Senior")
	require.NoError(t, err)
	assert.Equal(t, "software_engineer", res.Role.ID)
	require.NotNil(t, res.Level)
	assert.Equal(t, "senior", res.Level.ID)
	assert.Equal(t, 5.0, res.ExpectedYears)

	set := res.Set
	assert.Equal(t, types.SourceTaxonomy, set.Source)
	assert.Equal(t, "software_engineer", set.Role)
	assert.Equal(t, "senior", set.Level)
	assert.Equal(t, tax.Version, set.Version)

	names := map[string]types.KeywordTier{}
	for _, kw := range set.Keywords {
		_, dup := names[kw.Canonical]
		assert.False(t, dup, "keyword %s appears twice", kw.Canonical)
		names[kw.Canonical] = kw.Tier
	}
	// Level-specific requirement promotes a base preferred keyword
	assert.Equal(t, types.TierRequired, names["System Design"])
	assert.Equal(t, types.TierRequired, names["Mentoring"])
	assert.Equal(t, types.TierPreferred, names["Docker"])
}

func TestResolve_Aliases(t *testing.T) {
	tax, err := Default()
	require.NoError(t, err)

	tests := []struct {
		role, level   string
		wantRole      string
		wantLevel     string
		expectedYears float64
	}{
		{"swe", "sr", "software_engineer", "senior", 5},
		{"software-engineer", "", "software_engineer", "", 0},
		{"SRE", "staff", "devops_engineer", "lead", 8},
		{"Senior Data Scientist", "", "data_scientist", "senior", 5},
		{"Junior Front End Developer", "", "frontend_engineer", "junior", 1},
		{"Product Manager", "mid-level", "product_manager", "mid", 3},
		{"Lead Software Engineer", "", "software_engineer", "lead", 8},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.level, func(t *testing.T) {
			res, err := tax.Resolve(tt.role, tt.level)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, res.Role.ID)
			if tt.wantLevel == "" {
				assert.Nil(t, res.Level)
			} else {
				require.NotNil(t, res.Level)
				assert.Equal(t, tt.wantLevel, res.Level.ID)
			}
			assert.Equal(t, tt.expectedYears, res.ExpectedYears)
		})
	}
}

func TestResolve_Unresolved(t *testing.T) {
	tax, err := Default()
	require.NoError(t, err)

	_, err = tax.Resolve("Astronaut", "senior")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolved))

	var unresolved *UnresolvedError
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, "role", unresolved.Field)

	_, err = tax.Resolve("software engineer", "wizard")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolved))
	assert.Contains(t, err.Error(), "wizard")
}

func TestVocabulary_Distinct(t *testing.T) {
	tax, err := Default()
	require.NoError(t, err)

	vocab := tax.Vocabulary()
	require.NotEmpty(t, vocab)

	seen := map[string]bool{}
	for _, kw := range vocab {
		assert.False(t, seen[kw.Canonical], "duplicate %s", kw.Canonical)
		seen[kw.Canonical] = true
		assert.Empty(t, kw.Tier)
	}
	assert.True(t, seen["Kubernetes"])
	assert.True(t, seen["Product Strategy"])
}

func TestVocabulary_DatabasesAreDistinct(t *testing.T) {
	tax, err := Default()
	require.NoError(t, err)

	byName := map[string]types.Keyword{}
	for _, kw := range tax.Vocabulary() {
		byName[kw.Canonical] = kw
	}
	require.Contains(t, byName, "PostgreSQL")
	require.Contains(t, byName, "SQL")
	assert.Contains(t, byName["PostgreSQL"].Synonyms, "postgres")
	assert.NotContains(t, byName["SQL"].Synonyms, "postgresql")
	assert.NotContains(t, byName["SQL"].Synonyms, "mysql")
	assert.NotContains(t, byName["Data Analysis"].Synonyms, "sql")
}

func TestLoad_CustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.json")
	content := `{
		"version": "test-1",
		"levels": [{"id": "mid", "min_years": 3}],
		"roles": [{
			"id": "chef",
			"name": "Chef",
			"required": [{"canonical": "Knife Skills"}],
			"preferred": [{"canonical": "Pastry"}],
			"levels": {"mid": {"required": [{"canonical": "Menu Design"}], "expected_years": 4}}
		}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	tax, err := Load(path)
	require.NoError(t, err)

	res, err := tax.Resolve("chef", "mid")
	require.NoError(t, err)
	assert.Equal(t, 4.0, res.ExpectedYears)
	assert.Len(t, res.Set.Required(), 2)
	assert.Len(t, res.Set.Preferred(), 1)
	assert.Equal(t, "test-1", res.Set.Version)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"schema violation", `{"version": "x", "levels": [], "roles": []}`, "schema validation failed"},
		{"unknown level reference", `{"version": "x", "levels": [{"id": "mid", "min_years": 1}],
			"roles": [{"id": "a", "name": "A", "required": [], "levels": {"senior": {}}}]}`, "unknown level"},
		{"ambiguous alias", `{"version": "x", "levels": [{"id": "mid", "min_years": 1}],
			"roles": [{"id": "a", "name": "A", "required": []}, {"id": "b", "name": "B", "aliases": ["a"], "required": []}]}`, "ambiguous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			require.Error(t, err)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("missing.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}
