package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jonathan/resume-scorer/internal/parsing"
	"github.com/jonathan/resume-scorer/internal/style"
)

var firstPersonPronouns = map[string]bool{
	"me": true, "my": true, "mine": true, "myself": true,
	"we": true, "our": true, "ours": true,
}

func checkBullets(in *input, c *collector) {
	t := in.thresholds
	seen := make(map[string]bool)
	verbCounts := make(map[string]int)
	var verbOrder []string
	withPeriod, withoutPeriod := 0, 0

	for i, entry := range in.resume.Experience {
		bullets, quantified := 0, 0
		for j, raw := range entry.Bullets {
			bullet := strings.TrimSpace(raw)
			if bullet == "" {
				continue
			}
			bullets++
			loc := atBullet(i, j)

			words := style.WordCount(bullet)
			if words < t.MinBulletWords {
				c.add("bullet_too_short", loc, fmt.Sprintf("Bullet has only %d words: %q", words, bullet))
			} else if words > t.MaxBulletWords {
				c.add("bullet_too_long", loc, fmt.Sprintf("Bullet has %d words; keep it under %d", words, t.MaxBulletWords))
			}

			if opener, weak := style.WeakOpener(bullet); weak {
				c.add("weak_action_verb", loc, fmt.Sprintf("Bullet opens with %q; lead with what you did", opener))
			} else if style.StartsWithStrongVerb(bullet) {
				verb := style.FirstWord(bullet)
				if verbCounts[verb] == 0 {
					verbOrder = append(verbOrder, verb)
				}
				verbCounts[verb]++
			}

			if pronoun, ok := firstPerson(bullet); ok {
				c.add("first_person_pronoun", loc, fmt.Sprintf("Bullet uses %q; drop first-person pronouns", pronoun))
			}

			if startsLowercase(bullet) {
				c.add("lowercase_bullet_start", loc, "Bullet starts with a lowercase letter")
			}

			key := strings.Join(parsing.Words(bullet), " ")
			if seen[key] {
				c.add("duplicate_bullet", loc, fmt.Sprintf("Bullet repeats an earlier bullet: %q", bullet))
			}
			seen[key] = true

			if style.IsQuantified(bullet) {
				quantified++
			}
			if strings.HasSuffix(bullet, ".") {
				withPeriod++
			} else {
				withoutPeriod++
			}
		}

		if bullets >= 2 && quantified == 0 {
			c.add("entry_not_quantified", atEntry(i),
				fmt.Sprintf("%s has no quantified results", entryLabel(i, entry.Title, entry.Organization)))
		}
	}

	for _, verb := range verbOrder {
		if n := verbCounts[verb]; n >= t.RepeatedVerbLimit {
			c.add("repeated_action_verb", at("experience"), fmt.Sprintf("%q opens %d bullets; vary your verbs", verb, n))
		}
	}

	if withPeriod > 0 && withoutPeriod > 0 {
		c.add("inconsistent_punctuation", at("experience"),
			fmt.Sprintf("%d bullets end with a period and %d do not", withPeriod, withoutPeriod))
	}
}

func firstPerson(text string) (string, bool) {
	for _, tok := range parsing.Tokenize(text) {
		if tok.Text == "I" || firstPersonPronouns[tok.Norm] {
			return tok.Text, true
		}
	}
	return "", false
}

func startsLowercase(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) {
			return unicode.IsLower(r)
		}
		if unicode.IsDigit(r) {
			return false
		}
	}
	return false
}
