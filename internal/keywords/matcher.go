package keywords

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/jonathan/resume-scorer/internal/parsing"
	"github.com/jonathan/resume-scorer/internal/types"
)

const (
	// DefaultFuzzyThreshold is the minimum normalized edit similarity for a fuzzy match
	DefaultFuzzyThreshold = 0.80
	// DefaultMinFuzzyLength is the shortest variant considered for fuzzy matching.
	// Short terms ("Go", "SQL", "Java") only match exactly.
	DefaultMinFuzzyLength = 5
)

// MatchKind describes how a keyword was found
type MatchKind string

// Match kinds, in order of preference
const (
	MatchExact   MatchKind = "exact"
	MatchSynonym MatchKind = "synonym"
	MatchFuzzy   MatchKind = "fuzzy"
)

// Option configures a Matcher
type Option func(*Matcher)

// WithFuzzyThreshold sets the minimum similarity (0-1] for fuzzy matches
func WithFuzzyThreshold(threshold float64) Option {
	return func(m *Matcher) {
		if threshold > 0 && threshold <= 1 {
			m.threshold = threshold
		}
	}
}

// WithMinFuzzyLength sets the shortest variant length eligible for fuzzy matching
func WithMinFuzzyLength(n int) Option {
	return func(m *Matcher) {
		if n > 0 {
			m.minFuzzyLen = n
		}
	}
}

// Matcher matches text against one keyword set. It is immutable after construction
// and safe for concurrent use.
type Matcher struct {
	set         *types.KeywordSet
	variants    []variant
	index       map[string][]int // first token stem -> variant indexes
	threshold   float64
	minFuzzyLen int
}

type variant struct {
	keyword int
	text    string
	stems   []string
	joined  string // lowercased tokens joined by single spaces
	synonym bool
}

// NewMatcher pre-builds the token index for set
func NewMatcher(set *types.KeywordSet, opts ...Option) *Matcher {
	m := &Matcher{
		set:         set,
		index:       make(map[string][]int),
		threshold:   DefaultFuzzyThreshold,
		minFuzzyLen: DefaultMinFuzzyLength,
	}
	for _, opt := range opts {
		opt(m)
	}
	if set == nil {
		return m
	}

	for ki, kw := range set.Keywords {
		m.addVariant(ki, kw.Canonical, false)
		for _, syn := range kw.Synonyms {
			m.addVariant(ki, syn, true)
		}
	}
	return m
}

func (m *Matcher) addVariant(keyword int, text string, synonym bool) {
	tokens := parsing.Tokenize(text)
	if len(tokens) == 0 {
		return
	}
	v := variant{keyword: keyword, text: text, synonym: synonym}
	norms := make([]string, len(tokens))
	for i, tok := range tokens {
		v.stems = append(v.stems, tok.Stem)
		norms[i] = tok.Norm
	}
	v.joined = strings.Join(norms, " ")

	m.index[v.stems[0]] = append(m.index[v.stems[0]], len(m.variants))
	m.variants = append(m.variants, v)
}

// Set returns the keyword set the matcher was built for
func (m *Matcher) Set() *types.KeywordSet {
	return m.set
}

// Match reports which keywords occur in text. Matching is token based, so a keyword
// never matches inside a longer word.
func (m *Matcher) Match(text string) *Result {
	if m.set == nil {
		return Unresolved("no keyword set")
	}

	tokens := parsing.Tokenize(text)
	stems := make([]string, len(tokens))
	norms := make([]string, len(tokens))
	common := make([]bool, len(tokens))
	for i, tok := range tokens {
		stems[i] = tok.Stem
		norms[i] = tok.Norm
		common[i] = parsing.IsCommonWord(tok.Norm)
	}

	matches := make([]KeywordMatch, len(m.set.Keywords))
	for i, kw := range m.set.Keywords {
		matches[i] = KeywordMatch{Keyword: kw}
	}

	// Exact and synonym pass over the stem index
	for pos, stem := range stems {
		for _, vi := range m.index[stem] {
			v := m.variants[vi]
			if !windowEquals(stems, pos, v.stems) || !sameLine(tokens, pos, len(v.stems)) {
				continue
			}
			kind := MatchExact
			if v.synonym {
				kind = MatchSynonym
			}
			record(&matches[v.keyword], kind, v.text, joinTexts(tokens, pos, len(v.stems)), 1)
		}
	}

	// Fuzzy pass for keywords still unmatched. A window made only of ordinary words
	// ("scale", "reach") is never a misspelled technology name.
	for _, v := range m.variants {
		if matches[v.keyword].Matched || len([]rune(v.joined)) < m.minFuzzyLen {
			continue
		}
		n := len(v.stems)
		for pos := 0; pos+n <= len(norms); pos++ {
			if allTrue(common[pos:pos+n]) || !sameLine(tokens, pos, n) {
				continue
			}
			window := strings.Join(norms[pos:pos+n], " ")
			sim, ok := m.similar(window, v.joined)
			if !ok {
				continue
			}
			record(&matches[v.keyword], MatchFuzzy, v.text, joinTexts(tokens, pos, n), sim)
		}
	}

	return newResult(matches)
}

func (m *Matcher) similar(a, b string) (float64, bool) {
	la, lb := len([]rune(a)), len([]rune(b))
	if la < m.minFuzzyLen {
		return 0, false
	}
	longest := max(la, lb)
	// Length difference is a lower bound on edit distance
	if float64(abs(la-lb)) > (1-m.threshold)*float64(longest) {
		return 0, false
	}
	sim := Similarity(a, b)
	return sim, sim >= m.threshold
}

// Similarity returns the normalized edit similarity of a and b: 1 - distance / longer length
func Similarity(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	longest := max(la, lb)
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

func record(match *KeywordMatch, kind MatchKind, variantText, evidence string, similarity float64) {
	if match.Matched {
		better := rank(kind) < rank(match.Kind) ||
			(kind == MatchFuzzy && match.Kind == MatchFuzzy && similarity > match.Similarity)
		if !better {
			return
		}
	}
	match.Matched = true
	match.Kind = kind
	match.Variant = variantText
	match.Evidence = evidence
	match.Similarity = similarity
}

func rank(kind MatchKind) int {
	switch kind {
	case MatchExact:
		return 0
	case MatchSynonym:
		return 1
	default:
		return 2
	}
}

func windowEquals(stems []string, pos int, want []string) bool {
	if pos+len(want) > len(stems) {
		return false
	}
	for i, s := range want {
		if stems[pos+i] != s {
			return false
		}
	}
	return true
}

func sameLine(tokens []parsing.Token, pos, n int) bool {
	return tokens[pos].Line == tokens[pos+n-1].Line
}

func allTrue(flags []bool) bool {
	for _, f := range flags {
		if !f {
			return false
		}
	}
	return true
}

func joinTexts(tokens []parsing.Token, pos, n int) string {
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = tokens[pos+i].Text
	}
	return strings.Join(parts, " ")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
