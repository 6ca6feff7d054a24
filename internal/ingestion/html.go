package ingestion

import (
	"fmt"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// jobPostingSelectors locate the posting body on common job boards, most specific first
var jobPostingSelectors = []string{
	".job-description",
	".job-content",
	"#job-description",
	"#job-content",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
	".content",
	"#content",
}

// noiseSelectors are removed before text extraction
var noiseSelectors = []string{
	"nav", "footer", "header", "script", "style", "noscript", "form",
	".ad", ".advertisement", ".ads", ".sidebar", ".cookie-banner", ".cookie-consent", ".popup",
	".apply-button-container", ".application-form", "#application-form",
	".eeo-statement", ".eeo-section", ".voluntary-disclosure",
	".social-share", ".share-buttons",
}

const blockElements = "p, div, section, h1, h2, h3, h4, h5, h6, tr, ul, ol, dl, dt, dd"

// HTMLToText flattens an HTML job posting to plain text. Block elements become lines and
// list items become "- " bullets so requirement sections survive for extraction.
func HTMLToText(html string) (string, error) {
	return ExtractPosting(html, nil, nil)
}

// ExtractPosting is HTMLToText with extra selectors for a known job board. contentSelectors
// are tried before the generic ones; extraNoise is removed along with the generic noise.
func ExtractPosting(html string, contentSelectors, extraNoise []string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &Error{Message: "failed to parse HTML", Cause: err}
	}

	doc.Find(strings.Join(slices.Concat(extraNoise, noiseSelectors), ", ")).Remove()

	var content *goquery.Selection
	for _, selector := range slices.Concat(contentSelectors, jobPostingSelectors) {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	content.Find("br").ReplaceWithHtml("\n")
	content.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("\n- ")
		s.AppendHtml("\n")
	})
	content.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("\n")
		s.AppendHtml("\n")
	})

	return CleanText(trimLines(content.Text())), nil
}

// LooksLikeHTML reports whether text appears to be an HTML document or fragment
func LooksLikeHTML(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html") {
		return true
	}
	for _, tag := range []string{"<p>", "<p ", "<div", "<ul>", "<li>", "<br", "<h1", "<h2", "<h3"} {
		if strings.Contains(lower, tag) {
			return true
		}
	}
	return false
}

func trimLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// Error represents an ingestion failure
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingestion error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("ingestion error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
