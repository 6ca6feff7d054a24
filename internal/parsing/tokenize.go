// Package parsing provides text tokenization and skill-name normalization shared by the analyzers.
package parsing

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// Token is a single word extracted from free text
type Token struct {
	Text string // as written
	Norm string // lowercased
	Stem string // English stem of Norm, or Norm when the word is not stemmable
	Line int    // zero-based line the token starts on
}

// Tokenize splits text into word tokens. Technology spellings survive intact:
// "C++", "C#", ".NET", "Node.js" and "3.5" are single tokens, while hyphens and
// slashes separate words ("CI/CD" yields "ci" and "cd"). Each token records its line so
// callers can keep phrases from spanning line breaks.
func Tokenize(text string) []Token {
	runes := []rune(text)
	tokens := make([]Token, 0, len(runes)/5)

	i, line := 0, 0
	for i < len(runes) {
		r := runes[i]
		if r == '\n' {
			line++
		}
		leadingDot := r == '.' && i+1 < len(runes) && unicode.IsLetter(runes[i+1]) &&
			(i == 0 || !isWordRune(runes[i-1]))
		if !isWordRune(r) && !leadingDot {
			i++
			continue
		}

		start := i
		i++
		for i < len(runes) {
			c := runes[i]
			if isWordRune(c) {
				i++
				continue
			}
			// Inner dots and apostrophes: node.js, 3.5, team's
			if (c == '.' || c == '\'' || c == '’') && i+1 < len(runes) && isWordRune(runes[i+1]) {
				i++
				continue
			}
			// Trailing plus and hash: c++, c#
			if c == '+' || c == '#' {
				i++
				continue
			}
			break
		}

		word := string(runes[start:i])
		norm := strings.ToLower(word)
		tokens = append(tokens, Token{Text: word, Norm: norm, Stem: Stem(norm), Line: line})
	}

	return tokens
}

// Words returns the lowercased tokens of text
func Words(text string) []string {
	tokens := Tokenize(text)
	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = tok.Norm
	}
	return words
}

// Stem reduces a lowercased word to its English stem. Words containing digits or
// symbols, and very short words, are returned unchanged.
func Stem(word string) string {
	if len(word) <= 3 {
		return word
	}
	for _, r := range word {
		if r < 'a' || r > 'z' {
			if r == '\'' || r == '’' {
				continue
			}
			return word
		}
	}
	return english.Stem(word, false)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
