// Package ingestion turns job description input, plain text or HTML, into clean text.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`[ \t\f\v]+`)
	blankLineRun  = regexp.MustCompile(`\n{3,}`)
)

// invisible strips characters job boards paste in that break word matching
var invisible = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\u00a0", " ",
	"\u200b", "",
	"\u200c", "",
	"\u200d", "",
	"\ufeff", "",
)

// CleanText normalizes line endings and whitespace of a posting. Markdown headings
// lose their indentation, other lines keep it, runs of spaces collapse and at most
// one blank line separates blocks.
func CleanText(content string) string {
	lines := strings.Split(invisible.Replace(content), "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}
	joined := blankLineRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(joined)
}

func cleanLine(line string) string {
	body := strings.TrimSpace(line)
	if body == "" {
		return ""
	}
	body = whitespaceRun.ReplaceAllString(body, " ")
	if strings.HasPrefix(body, "#") {
		return body
	}
	indent := len(line) - len(strings.TrimLeft(line, " \t"))
	return strings.Repeat(" ", indent) + body
}

// ReadJobDescription reads a job posting file, flattening HTML when the file is HTML,
// and returns the cleaned text with metadata
func ReadJobDescription(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, &Error{Message: fmt.Sprintf("file not found: %s", path), Cause: err}
		}
		return "", nil, &Error{Message: fmt.Sprintf("failed to read file: %s", path), Cause: err}
	}

	ext := strings.ToLower(filepath.Ext(path))
	isHTML := ext == ".html" || ext == ".htm" || LooksLikeHTML(string(content))
	text, err := Normalize(string(content), isHTML)
	if err != nil {
		return "", nil, err
	}

	metadata := NewMetadata(text, path)
	if isHTML {
		metadata.Format = FormatHTML
	}
	return text, metadata, nil
}

// Normalize converts job description input to cleaned plain text
func Normalize(content string, isHTML bool) (string, error) {
	if isHTML {
		return HTMLToText(content)
	}
	return CleanText(content), nil
}
