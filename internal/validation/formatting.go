package validation

import (
	"fmt"
	"regexp"
	"unicode"

	"github.com/jonathan/resume-scorer/internal/parsing"
)

const (
	minCapsLetters = 15
	capsRatio      = 0.7
)

var repeatedPunctuation = regexp.MustCompile(`!|\?{2,}|\.{4,}|[,;:]{2,}`)

var personalDetails = splitPhrases([]string{
	"date of birth", "dob", "birthdate", "marital status", "married", "religion",
	"nationality", "social security", "ssn", "passport number",
})

func checkFormatting(in *input, c *collector) {
	for _, s := range textSpans(in.resume) {
		if isShouting(s.text) {
			c.add("all_caps_text", s.loc(), "Text is written in capital letters")
		}
		if m := repeatedPunctuation.FindString(s.text); m != "" {
			c.add("excessive_punctuation", s.loc(), fmt.Sprintf("Avoid %q in professional writing", m))
		}
		if r, ok := firstSymbol(s.text); ok {
			c.add("special_characters", s.loc(), fmt.Sprintf("Character %q may not survive ATS parsing", r))
		}
		if detail, ok := findPhrase(parsing.Words(s.text), personalDetails); ok {
			c.add("personal_information", s.loc(), fmt.Sprintf("Remove personal detail %q", detail))
		}
	}
}

func isShouting(text string) bool {
	letters, upper := 0, 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	return letters >= minCapsLetters && float64(upper)/float64(letters) > capsRatio
}

// firstSymbol finds emoji, pictographs, private-use glyphs and replacement characters
func firstSymbol(text string) (rune, bool) {
	for _, r := range text {
		if r == unicode.ReplacementChar || unicode.Is(unicode.So, r) || unicode.Is(unicode.Co, r) {
			return r, true
		}
	}
	return 0, false
}
