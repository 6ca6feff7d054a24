package textcheck

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/resume-scorer/internal/parsing"
)

var (
	missingSpaceAfterComma  = regexp.MustCompile(`[a-zA-Z],[a-zA-Z]`)
	missingSpaceAfterPeriod = regexp.MustCompile(`[a-z]{2,}[.;][A-Z][a-z]`)
	lowercaseSentenceStart  = regexp.MustCompile(`([a-zA-Z]{2,})[.!?]\s+([a-z]+)`)
)

// abbreviations may end with a period without ending the sentence
var abbreviations = map[string]bool{
	"eg": true, "ie": true, "etc": true, "vs": true, "approx": true, "incl": true, "esp": true,
	"inc": true, "ltd": true, "co": true, "corp": true, "dept": true, "mr": true, "ms": true,
	"dr": true, "jr": true, "sr": true, "st": true, "no": true, "univ": true,
}

// anExceptions start with a vowel letter but a consonant sound, or the reverse
var anExceptions = map[string]string{
	"user":       "a",
	"users":      "a",
	"unique":     "a",
	"unit":       "a",
	"united":     "a",
	"universal":  "a",
	"university": "a",
	"use":        "a",
	"usage":      "a",
	"one":        "a",
	"once":       "a",
	"european":   "a",
	"hour":       "an",
	"hours":      "an",
	"honest":     "an",
	"honor":      "an",
	"mba":        "an",
	"sql":        "an",
	"seo":        "an",
	"sre":        "an",
	"ml":         "an",
	"mvp":        "an",
	"nlp":        "an",
	"hr":         "an",
	"api":        "an",
	"aws":        "an",
}

// RuleGrammar is a rule-based grammar checker: repeated words, a/an agreement,
// missing spaces after punctuation and lowercase sentence starts
type RuleGrammar struct{}

// NewRuleGrammar returns the built-in grammar checker
func NewRuleGrammar() *RuleGrammar {
	return &RuleGrammar{}
}

// Name returns "grammar"
func (g *RuleGrammar) Name() string { return "grammar" }

// Check applies every rule to text
func (g *RuleGrammar) Check(ctx context.Context, text string) ([]Finding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var findings []Finding
	findings = append(findings, repeatedWords(text)...)
	findings = append(findings, articleAgreement(text)...)

	if m := missingSpaceAfterComma.FindString(text); m != "" && !strings.Contains(text, "http") {
		findings = append(findings, Finding{Message: "missing space after comma", Span: m})
	}
	if m := missingSpaceAfterPeriod.FindString(text); m != "" && !strings.Contains(text, "http") {
		findings = append(findings, Finding{Message: "missing space after punctuation", Span: m})
	}
	for _, m := range lowercaseSentenceStart.FindAllStringSubmatch(text, -1) {
		if abbreviations[strings.ToLower(m[1])] {
			continue
		}
		findings = append(findings, Finding{
			Message:    "sentence starts with a lowercase letter",
			Span:       m[0],
			Suggestion: strings.ToUpper(m[2][:1]) + m[2][1:],
		})
	}

	return findings, nil
}

func repeatedWords(text string) []Finding {
	var findings []Finding
	tokens := parsing.Tokenize(text)
	for i := 1; i < len(tokens); i++ {
		prev, cur := tokens[i-1], tokens[i]
		if cur.Norm != prev.Norm || !isAlpha(cur.Norm) {
			continue
		}
		findings = append(findings, Finding{
			Message:    fmt.Sprintf("repeated word %q", cur.Text),
			Span:       prev.Text + " " + cur.Text,
			Suggestion: cur.Text,
		})
	}
	return findings
}

func articleAgreement(text string) []Finding {
	var findings []Finding
	tokens := parsing.Tokenize(text)
	for i := 0; i+1 < len(tokens); i++ {
		article := tokens[i].Norm
		if article != "a" && article != "an" {
			continue
		}
		next := tokens[i+1].Norm
		want, ok := anExceptions[next]
		if !ok {
			if !isAlpha(next) {
				continue
			}
			want = "a"
			if strings.ContainsRune("aeiou", rune(next[0])) {
				want = "an"
			}
		}
		if article == want {
			continue
		}
		findings = append(findings, Finding{
			Message:    fmt.Sprintf("use %q before %q", want, tokens[i+1].Text),
			Span:       tokens[i].Text + " " + tokens[i+1].Text,
			Suggestion: want + " " + tokens[i+1].Text,
		})
	}
	return findings
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
