package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/ingestion"
)

const postingHTML = `<!DOCTYPE html>
<html><head><title>Backend Engineer</title></head><body>
<nav>Jobs | About</nav>
<div class="job-description">
	<h1>Senior Backend Engineer</h1>
	<h2>Requirements</h2>
	<ul><li>5+ years with Go</li><li>PostgreSQL</li></ul>
</div>
<form id="application-form">Upload your resume</form>
</body></html>`

func serve(t *testing.T, contentType, body string, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestJobDescription_HTML(t *testing.T) {
	server := serve(t, "text/html; charset=utf-8", postingHTML, http.StatusOK)

	posting, err := New().JobDescription(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, server.URL, posting.URL)
	assert.Equal(t, PlatformUnknown, posting.Platform)
	assert.Contains(t, posting.Text, "Senior Backend Engineer")
	assert.Contains(t, posting.Text, "- 5+ years with Go")
	assert.NotContains(t, posting.Text, "Upload your resume")
	assert.NotContains(t, posting.Text, "Jobs | About")
	assert.Equal(t, ingestion.FormatHTML, posting.Metadata.Format)
	assert.Equal(t, server.URL, posting.Metadata.Source)
}

func TestJobDescription_PlainText(t *testing.T) {
	server := serve(t, "text/plain", "Data Analyst\n\n\n\nRequirements:\n- SQL\n", http.StatusOK)

	posting, err := New().JobDescription(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, ingestion.FormatText, posting.Metadata.Format)
	assert.Contains(t, posting.Text, "Requirements:")
	assert.NotContains(t, posting.Text, "\n\n\n")
}

func TestJobDescription_Errors(t *testing.T) {
	notFound := serve(t, "text/html", "missing", http.StatusNotFound)
	empty := serve(t, "text/html", "<html><body>   </body></html>", http.StatusOK)

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"invalid url", "not-a-url", "invalid URL"},
		{"unsupported scheme", "ftp://example.com/job", "invalid URL"},
		{"http status", notFound.URL, "HTTP status 404"},
		{"empty posting", empty.URL, "posting has no text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().JobDescription(context.Background(), tt.url)
			require.Error(t, err)

			var fetchErr *Error
			assert.ErrorAs(t, err, &fetchErr)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestJobDescription_CancelledContext(t *testing.T) {
	server := serve(t, "text/html", postingHTML, http.StatusOK)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().JobDescription(ctx, server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestJobDescription_BodyLimit(t *testing.T) {
	big := "<html><body><main>" + strings.Repeat("Go engineer. ", MaxBodyBytes/8) + "</main></body></html>"
	server := serve(t, "text/html", big, http.StatusOK)

	posting, err := New(WithHTTPClient(server.Client())).JobDescription(context.Background(), server.URL)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(posting.Text), MaxBodyBytes)
}

func TestIsHTMLContent(t *testing.T) {
	assert.True(t, isHTMLContent("text/html; charset=utf-8", "plain"))
	assert.False(t, isHTMLContent("text/plain", "<p>looks like html</p>"))
	assert.True(t, isHTMLContent("", "<p>sniffed</p>"))
	assert.False(t, isHTMLContent("application/octet-stream", "just words"))
}
