package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/resume-scorer/internal/parsing"
	"github.com/jonathan/resume-scorer/internal/style"
)

var vaguePhrases = []string{
	"various", "a lot of", "lots of", "many things", "several things", "and so on",
	"etc", "and more", "stuff", "things like", "some projects", "some tasks",
	"responsible for", "helped with",
}

var cliches = []string{
	"team player", "hard worker", "hard working", "go getter", "self starter",
	"think outside the box", "outside the box", "results driven", "detail oriented",
	"proven track record", "synergy", "rockstar", "ninja", "guru", "best of breed",
	"dynamic individual", "passionate about", "highly motivated", "fast paced environment",
}

var fillerWords = []string{
	"very", "really", "basically", "actually", "literally", "extremely", "quite", "truly",
}

var passiveVoice = regexp.MustCompile(`(?i)\b(was|were|been|being|is|are|got)\s+\w+(ed|en)\b`)

// phraseList pairs a rule kind with the phrases that trigger it
type phraseList struct {
	kind    string
	label   string
	phrases [][]string
}

var phraseLists = []phraseList{
	{"vague_phrase", "vague phrase", splitPhrases(vaguePhrases)},
	{"cliche", "cliché", splitPhrases(cliches)},
	{"filler_word", "filler word", splitPhrases(fillerWords)},
}

func checkPhrasing(in *input, c *collector) {
	for _, s := range textSpans(in.resume) {
		words := parsing.Words(s.text)
		// Only report one issue per list per span (first match)
		for _, list := range phraseLists {
			search := words
			if list.kind == "vague_phrase" {
				search = afterWeakOpener(s.text, words)
			}
			if phrase, ok := findPhrase(search, list.phrases); ok {
				c.add(list.kind, s.loc(), fmt.Sprintf("Contains %s %q", list.label, phrase))
			}
		}
	}

	bullets, passive := 0, 0
	for _, b := range in.resume.AllBullets() {
		if strings.TrimSpace(b) == "" {
			continue
		}
		bullets++
		if passiveVoice.MatchString(b) {
			passive++
		}
	}
	if bullets >= in.thresholds.PassiveVoiceBullet && float64(passive)/float64(bullets) > 0.3 {
		c.add("passive_voice_overuse", at("experience"),
			fmt.Sprintf("%d of %d bullets use passive voice", passive, bullets))
	}
}

// afterWeakOpener drops a weak bullet opener, which weak_action_verb already reports
func afterWeakOpener(text string, words []string) []string {
	opener, ok := style.WeakOpener(text)
	if !ok {
		return words
	}
	n := len(parsing.Words(opener))
	if n >= len(words) {
		return nil
	}
	return words[n:]
}

func splitPhrases(phrases []string) [][]string {
	out := make([][]string, len(phrases))
	for i, p := range phrases {
		out[i] = parsing.Words(p)
	}
	return out
}

// findPhrase matches whole words only, so "various" does not fire on "variousness"
// and hyphenated spellings match their spaced form
func findPhrase(words []string, phrases [][]string) (string, bool) {
	for _, phrase := range phrases {
		if len(phrase) == 0 || len(phrase) > len(words) {
			continue
		}
		for i := 0; i+len(phrase) <= len(words); i++ {
			match := true
			for k, w := range phrase {
				if words[i+k] != w {
					match = false
					break
				}
			}
			if match {
				return strings.Join(phrase, " "), true
			}
		}
	}
	return "", false
}
