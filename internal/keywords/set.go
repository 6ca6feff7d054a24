// Package keywords matches résumé text against keyword sets with stemming, synonym and
// misspelling tolerance.
package keywords

import (
	"strings"

	"github.com/jonathan/resume-scorer/internal/parsing"
	"github.com/jonathan/resume-scorer/internal/types"
)

// BuildSet assembles a keyword set. Canonical names are compared by normalized skill key;
// a keyword listed in both tiers is kept once as required, and synonyms of duplicates are merged.
// Keywords without a tier are treated as required.
func BuildSet(source types.KeywordSource, keywords []types.Keyword) *types.KeywordSet {
	set := &types.KeywordSet{Source: source, Keywords: make([]types.Keyword, 0, len(keywords))}
	index := make(map[string]int)

	for _, kw := range keywords {
		canonical := strings.TrimSpace(kw.Canonical)
		key := parsing.SkillKey(canonical)
		if key == "" {
			continue
		}
		tier := kw.Tier
		if tier != types.TierPreferred {
			tier = types.TierRequired
		}

		if idx, exists := index[key]; exists {
			existing := &set.Keywords[idx]
			if tier == types.TierRequired {
				existing.Tier = types.TierRequired
			}
			existing.Synonyms = mergeSynonyms(existing.Canonical, existing.Synonyms, kw.Synonyms)
			continue
		}

		index[key] = len(set.Keywords)
		set.Keywords = append(set.Keywords, types.Keyword{
			Canonical: canonical,
			Synonyms:  mergeSynonyms(canonical, nil, kw.Synonyms),
			Tier:      tier,
		})
	}

	return set
}

// FromJobKeywords converts a pre-extracted job description keyword list into a keyword set
func FromJobKeywords(jobKeywords []types.JobKeyword) *types.KeywordSet {
	kws := make([]types.Keyword, 0, len(jobKeywords))
	for _, jk := range jobKeywords {
		kws = append(kws, types.Keyword{Canonical: jk.Term, Synonyms: jk.Synonyms, Tier: jk.Tier})
	}
	return BuildSet(types.SourceJobDescription, kws)
}

func mergeSynonyms(canonical string, existing, extra []string) []string {
	seen := map[string]bool{strings.ToLower(canonical): true}
	var out []string
	for _, list := range [][]string{existing, extra} {
		for _, syn := range list {
			syn = strings.TrimSpace(syn)
			key := strings.ToLower(syn)
			if syn == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, syn)
		}
	}
	return out
}
