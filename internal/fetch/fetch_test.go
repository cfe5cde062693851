package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingHTML = `
<html>
	<head><style>.x{}</style></head>
	<body>
		<nav>Jobs Home</nav>
		<div class="job-description">
			<h2>Senior Data Engineer</h2>
			<p>Build pipelines with Python and Spark.</p>
			<ul><li>SQL</li><li>Kafka</li></ul>
		</div>
		<form id="application-form">Upload resume (Excel not accepted)</form>
		<footer>Copyright</footer>
	</body>
</html>`

func TestJobPosting_Success(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer server.Close()

	page, err := JobPosting(context.Background(), server.URL+"/jobs/1", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultUserAgent, gotUA)
	assert.Equal(t, PlatformUnknown, page.Platform)
	assert.False(t, page.Rendered)
	assert.Contains(t, page.Text, "Senior Data Engineer")
	assert.Contains(t, page.Text, "Python and Spark")
	assert.Contains(t, page.Text, "SQL\nKafka")
	assert.NotContains(t, page.Text, "Jobs Home")
	assert.NotContains(t, page.Text, "Excel")
	assert.NotContains(t, page.Text, "Copyright")
}

func TestJobPosting_InvalidURL(t *testing.T) {
	for _, raw := range []string{"not-a-valid-url", "ftp://example.com/job", "file:///etc/passwd"} {
		_, err := JobPosting(context.Background(), raw, nil)
		require.Error(t, err, raw)

		var fetchErr *Error
		require.ErrorAs(t, err, &fetchErr)
		assert.Contains(t, err.Error(), "invalid URL")
	}
}

func TestJobPosting_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := JobPosting(context.Background(), server.URL, nil)
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "HTTP status 404")
}

func TestJobPosting_MaxBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><main>python " + strings.Repeat("x", 1000) + "</main></body></html>"))
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.MaxBytes = 40
	page, err := JobPosting(context.Background(), server.URL, opts)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(page.HTML), 40)
	assert.Contains(t, page.Text, "python")
}

func TestJobPosting_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := JobPosting(ctx, server.URL, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractText_FallbackToBody(t *testing.T) {
	text, err := ExtractText(`<html><body><div>Some content here.</div></body></html>`, PlatformUnknown)
	require.NoError(t, err)
	assert.Equal(t, "Some content here.", text)
}

func TestExtractText_GreenhouseSelectors(t *testing.T) {
	html := `
	<html><body>
		<div id="content">Generic wrapper</div>
		<div class="job__description body"><p>Go and Kubernetes</p></div>
		<div class="voluntary-self-id">Self identification</div>
	</body></html>`

	text, err := ExtractText(html, PlatformGreenhouse)
	require.NoError(t, err)
	assert.Equal(t, "Go and Kubernetes", text)
}

func TestExtractText_SeparatesBlocks(t *testing.T) {
	text, err := ExtractText(`<main><p>Rust</p><p>Docker</p></main>`, PlatformUnknown)
	require.NoError(t, err)
	assert.Equal(t, "Rust\nDocker", text)
}

func TestNeedsRendering(t *testing.T) {
	assert.True(t, NeedsRendering(""))
	assert.True(t, NeedsRendering("   Loading...   "))
	assert.False(t, NeedsRendering(strings.Repeat("a", MinContentLength)))
}

func TestError(t *testing.T) {
	err := &Error{URL: "https://x.test", Message: "HTTP request failed", Cause: assert.AnError}
	assert.Equal(t, "fetch error for https://x.test: HTTP request failed: "+assert.AnError.Error(), err.Error())
	assert.ErrorIs(t, err, assert.AnError)

	err = &Error{URL: "https://x.test", Message: "HTTP status 500"}
	assert.Equal(t, "fetch error for https://x.test: HTTP status 500", err.Error())
}
