// Package style measures bullet writing quality: action verbs, quantified impact and depth.
package style

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-scorer/internal/types"
)

const (
	// MinAdequateBullets is the number of bullets an entry needs to count as adequately described
	MinAdequateBullets = 3
	// MinAdequateWords and MaxAdequateWords bound the average bullet length of an adequate entry
	MinAdequateWords = 8
	MaxAdequateWords = 35
)

// Common strong action verbs for resume bullets
var strongVerbs = map[string]bool{
	"accelerated": true, "achieved": true, "administered": true, "analyzed": true,
	"architected": true, "authored": true, "automated": true, "boosted": true,
	"built": true, "championed": true, "coached": true, "consolidated": true,
	"created": true, "cut": true, "debugged": true, "decreased": true,
	"defined": true, "delivered": true, "deployed": true, "designed": true,
	"developed": true, "directed": true, "doubled": true, "drove": true,
	"eliminated": true, "engineered": true, "established": true, "expanded": true,
	"founded": true, "generated": true, "grew": true, "halved": true,
	"headed": true, "identified": true, "implemented": true, "improved": true,
	"increased": true, "initiated": true, "instrumented": true, "integrated": true,
	"introduced": true, "launched": true, "led": true, "managed": true,
	"mentored": true, "migrated": true, "modernized": true, "negotiated": true,
	"optimized": true, "orchestrated": true, "organized": true, "overhauled": true,
	"owned": true, "pioneered": true, "prototyped": true, "published": true,
	"rebuilt": true, "redesigned": true, "reduced": true, "refactored": true,
	"resolved": true, "restructured": true, "revamped": true, "saved": true,
	"scaled": true, "secured": true, "shipped": true, "simplified": true,
	"spearheaded": true, "standardized": true, "streamlined": true, "strengthened": true,
	"taught": true, "tripled": true, "transformed": true, "wrote": true,
}

// weakVerbs end in -ed but describe involvement rather than impact
var weakVerbs = map[string]bool{
	"assisted": true, "helped": true, "handled": true, "participated": true,
	"worked": true, "tasked": true, "involved": true, "supported": true,
	"contributed": true, "attended": true, "used": true, "utilized": true,
	"tried": true, "needed": true, "based": true, "required": true,
}

// weakOpeners are bullet openings that hide the candidate's own contribution
var weakOpeners = []string{
	"responsible for",
	"duties included",
	"duties include",
	"worked on",
	"worked with",
	"tasked with",
	"in charge of",
	"involved in",
	"participated in",
	"helped",
	"assisted",
	"handled",
	"was",
	"did",
	"made",
}

var (
	digitPattern   = regexp.MustCompile(`\d`)
	numberWords    = regexp.MustCompile(`\b(doubled|tripled|quadrupled|halved|dozens|hundreds|thousands|millions|billions|million|billion|thousand)\b`)
	leadingMarkers = regexp.MustCompile(`^[\s\-–•*·>]+`)
)

// FirstWord returns the lowercased first word of a bullet, without list markers or punctuation
func FirstWord(bullet string) string {
	text := leadingMarkers.ReplaceAllString(bullet, "")
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return ""
	}
	return strings.Trim(words[0], ".,!?;:()\"'")
}

// StartsWithStrongVerb checks if a bullet opens with a strong action verb
func StartsWithStrongVerb(bullet string) bool {
	first := FirstWord(bullet)
	if first == "" || weakVerbs[first] {
		return false
	}
	if _, weak := WeakOpener(bullet); weak {
		return false
	}
	if strongVerbs[first] {
		return true
	}
	// Past-tense verbs ending in -ed are usually action verbs
	return strings.HasSuffix(first, "ed") && len(first) > 4
}

// WeakOpener reports the weak opening phrase a bullet starts with, if any
func WeakOpener(bullet string) (string, bool) {
	text := strings.ToLower(strings.TrimSpace(leadingMarkers.ReplaceAllString(bullet, "")))
	for _, opener := range weakOpeners {
		if text == opener || strings.HasPrefix(text, opener+" ") {
			return opener, true
		}
	}
	if first := FirstWord(bullet); weakVerbs[first] {
		return first, true
	}
	return "", false
}

// IsQuantified checks if a bullet contains numbers, percentages, currency or magnitude words
func IsQuantified(bullet string) bool {
	if digitPattern.MatchString(bullet) {
		return true
	}
	if strings.ContainsAny(bullet, "%$€£") {
		return true
	}
	return numberWords.MatchString(strings.ToLower(bullet))
}

// WordCount counts whitespace-separated words
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// NonBlank returns bullets with surrounding whitespace removed, skipping empty ones
func NonBlank(bullets []string) []string {
	out := make([]string, 0, len(bullets))
	for _, b := range bullets {
		if trimmed := strings.TrimSpace(b); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Stats aggregates bullet quality signals across a résumé
type Stats struct {
	Bullets           int `json:"bullets"`
	StrongVerbBullets int `json:"strong_verb_bullets"`
	QuantifiedBullets int `json:"quantified_bullets"`
	Entries           int `json:"entries"`
	AdequateEntries   int `json:"adequate_entries"`
}

// Analyze computes bullet statistics for a résumé
func Analyze(resume *types.ResumeData) Stats {
	var stats Stats
	if resume == nil {
		return stats
	}

	stats.Entries = len(resume.Experience)
	for _, entry := range resume.Experience {
		bullets := NonBlank(entry.Bullets)
		words := 0
		for _, b := range bullets {
			stats.Bullets++
			words += WordCount(b)
			if StartsWithStrongVerb(b) {
				stats.StrongVerbBullets++
			}
			if IsQuantified(b) {
				stats.QuantifiedBullets++
			}
		}
		if len(bullets) >= MinAdequateBullets {
			avg := float64(words) / float64(len(bullets))
			if avg >= MinAdequateWords && avg <= MaxAdequateWords {
				stats.AdequateEntries++
			}
		}
	}
	return stats
}

// StrongVerbRatio is the fraction of bullets opening with a strong verb
func (s Stats) StrongVerbRatio() float64 {
	return ratio(s.StrongVerbBullets, s.Bullets)
}

// QuantifiedRatio is the fraction of bullets with quantified impact
func (s Stats) QuantifiedRatio() float64 {
	return ratio(s.QuantifiedBullets, s.Bullets)
}

// DepthRatio is the fraction of entries that are adequately described
func (s Stats) DepthRatio() float64 {
	return ratio(s.AdequateEntries, s.Entries)
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
