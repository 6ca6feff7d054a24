// Package fetch downloads job postings over HTTP and reduces them to the plain text the
// scorer extracts keywords from.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-scorer/internal/ingestion"
	"github.com/jonathan/resume-scorer/internal/logger"
)

const (
	// DefaultTimeout bounds a whole request, body included
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent identifies the scorer to job boards
	DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeScorer/1.0)"
	// MaxBodyBytes caps how much of a response is read
	MaxBodyBytes = 5 << 20
)

// Posting is a fetched job description
type Posting struct {
	URL      string
	Platform Platform
	Text     string
	Metadata *ingestion.Metadata
}

// Error represents an error during fetching
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(f *Fetcher) { f.logger = logger.Named(l, "fetch") }
}

// Fetcher retrieves job postings
type Fetcher struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

// New creates a Fetcher with a DefaultTimeout client
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: DefaultTimeout},
		userAgent: DefaultUserAgent,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// JobDescription downloads the posting at rawURL. HTML pages are flattened with the
// selectors of the detected job board; plain-text responses are cleaned as is.
func (f *Fetcher) JobDescription(ctx context.Context, rawURL string) (*Posting, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,text/plain;q=0.9,*/*;q=0.5")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{URL: rawURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to read response body", Cause: err}
	}

	platform := DetectPlatform(rawURL)
	content := string(body)
	isHTML := isHTMLContent(resp.Header.Get("Content-Type"), content)

	var text string
	if isHTML {
		text, err = ingestion.ExtractPosting(content, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform))
		if err != nil {
			return nil, &Error{URL: rawURL, Message: "failed to extract posting", Cause: err}
		}
	} else {
		text = ingestion.CleanText(content)
	}
	if strings.TrimSpace(text) == "" {
		return nil, &Error{URL: rawURL, Message: "posting has no text"}
	}

	metadata := ingestion.NewMetadata(text, rawURL)
	if isHTML {
		metadata.Format = ingestion.FormatHTML
	}

	f.logger.Debug("job posting fetched",
		zap.String("url", rawURL),
		zap.String("platform", string(platform)),
		zap.Int("bytes", len(body)),
		zap.Int("lines", metadata.Lines),
		zap.Duration("elapsed", time.Since(start)))

	return &Posting{URL: rawURL, Platform: platform, Text: text, Metadata: metadata}, nil
}

func isHTMLContent(contentType, body string) bool {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mediaType {
		case "text/html", "application/xhtml+xml":
			return true
		case "text/plain":
			return false
		}
	}
	return ingestion.LooksLikeHTML(body)
}
