// Package fetch downloads job postings and reduces their HTML to the
// description text that skill detection runs on.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/skill-trend-detector/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is the user agent string for HTTP requests.
	DefaultUserAgent = "Mozilla/5.0 (compatible; SkillTrendDetector/1.0)"
	// DefaultMaxBytes caps how much of a page is read.
	DefaultMaxBytes = 5 << 20
)

// Error represents an error during URL fetching.
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

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
	// Render loads pages whose static HTML has little text in a headless
	// browser. Requires Chrome or Chromium.
	Render        bool
	RenderTimeout time.Duration
}

// DefaultOptions returns the options used when nil is passed.
func DefaultOptions() *Options {
	return &Options{
		Timeout:       DefaultTimeout,
		UserAgent:     DefaultUserAgent,
		MaxBytes:      DefaultMaxBytes,
		RenderTimeout: DefaultTimeout,
	}
}

// Page is a fetched job posting.
type Page struct {
	URL      string
	Platform Platform
	HTML     string
	Text     string
	Rendered bool
}

// JobPosting fetches rawURL and extracts the job description text, using
// platform-specific selectors when the job board is recognized.
func JobPosting(ctx context.Context, rawURL string, opts *Options) (*Page, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	log := logger.G(ctx).WithField("url", rawURL)

	html, err := download(ctx, rawURL, opts)
	if err != nil {
		return nil, err
	}

	page := &Page{URL: rawURL, Platform: DetectPlatform(rawURL), HTML: html}
	if page.Text, err = ExtractText(html, page.Platform); err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to extract text", Cause: err}
	}

	if opts.Render && NeedsRendering(page.Text) {
		log.WithField("chars", len(page.Text)).Info("static page has little text, rendering in browser")
		rendered, err := Render(ctx, rawURL, opts.RenderTimeout)
		if err != nil {
			return nil, &Error{URL: rawURL, Message: "browser rendering failed", Cause: err}
		}
		page.HTML = rendered
		page.Rendered = true
		if page.Text, err = ExtractText(rendered, page.Platform); err != nil {
			return nil, &Error{URL: rawURL, Message: "failed to extract text", Cause: err}
		}
	}

	log.WithField("platform", page.Platform).WithField("chars", len(page.Text)).Debug("job posting fetched")
	return page, nil
}

// download performs a GET and returns the body of a 200 response.
func download(ctx context.Context, rawURL string, opts *Options) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: rawURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return "", &Error{URL: rawURL, Message: "failed to read response body", Cause: err}
	}
	return string(body), nil
}

// ExtractText parses html, removes page chrome and application forms, and
// returns the text of the first element matching the platform's content
// selectors, falling back to the body.
func ExtractText(html string, platform Platform) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(strings.Join(NoiseSelectors(platform), ", ")).Remove()

	content := doc.Find("body")
	for _, selector := range ContentSelectors(platform) {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection.First()
			break
		}
	}

	// Block elements are separated so adjacent words do not run together.
	content.Find("p, li, br, div, h1, h2, h3, h4, td").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return cleanWhitespace(content.Text()), nil
}

// cleanWhitespace trims every line and drops empty ones.
func cleanWhitespace(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
