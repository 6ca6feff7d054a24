package skills

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-scorer/internal/ingestion"
	"github.com/jonathan/resume-scorer/internal/keywords"
	"github.com/jonathan/resume-scorer/internal/types"
)

var structValidator = validator.New()

// FromJobDescription resolves the keyword set of a job description. A pre-extracted keyword
// list is used as given; free text (plain or HTML) is extracted against vocab. The returned
// profile is nil for pre-extracted lists. An error wrapping ErrNoSkills means the description
// named nothing to match against.
func FromJobDescription(jd *types.JobDescription, vocab []types.Keyword) (*types.KeywordSet, *types.JobProfile, error) {
	if jd.IsEmpty() {
		return nil, nil, ErrNoSkills
	}

	if len(jd.Keywords) > 0 {
		if err := structValidator.Struct(jd); err != nil {
			return nil, nil, fmt.Errorf("invalid job description keywords: %w", err)
		}
		return keywords.FromJobKeywords(jd.Keywords), nil, nil
	}

	text, err := ingestion.Normalize(jd.Text, jd.HTML || ingestion.LooksLikeHTML(jd.Text))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read job description: %w", err)
	}

	profile := ExtractJobProfile(text, vocab)
	set, err := BuildKeywordSet(profile, vocab)
	if err != nil {
		return nil, profile, fmt.Errorf("failed to build keyword set: %w", err)
	}
	return set, profile, nil
}
