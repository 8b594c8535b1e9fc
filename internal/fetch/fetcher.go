package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds each page request.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBodySize limits response bodies to prevent memory
	// exhaustion on pathological pages.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// DefaultUserAgent identifies the evaluator to servers.
	DefaultUserAgent = "a11yscan/1.0 (+https://github.com/acessolab/a11yscan)"

	maxRedirects = 10
)

// Fetcher retrieves pages over HTTP. A single Fetcher is shared across
// all requests of an evaluation so that client configuration and
// connection pooling stay consistent.
type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
	headers     map[string]string
	cookie      string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.client.Timeout = timeout
		}
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxBodySize sets the maximum response body size in bytes.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// WithHeaders sets extra request headers, e.g. from a site configuration
// used to evaluate pages behind authentication.
func WithHeaders(headers map[string]string) Option {
	return func(f *Fetcher) {
		f.headers = headers
	}
}

// WithCookie sets the Cookie header sent with every request.
func WithCookie(cookie string) Option {
	return func(f *Fetcher) {
		f.cookie = cookie
	}
}

// WithClient replaces the underlying HTTP client. Used by tests to
// install a client with a mock transport.
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// NewFetcher creates a Fetcher with sane defaults: 10 second timeout,
// 5MB body limit and a redirect cap.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NormalizeURL validates a target URL and defaults the scheme to https
// when none is given, so that "example.com" works as user input.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty URL", ErrInvalidURL)
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host in %q", ErrInvalidURL, raw)
	}
	return u.String(), nil
}

// Fetch retrieves the page at target and returns its raw content.
// The returned page has URL (after redirects), StatusCode, Headers,
// ContentType, Raw and Hash filled; parsing is the caller's concern.
func (f *Fetcher) Fetch(ctx context.Context, target string) (*Page, error) {
	normalized, err := NormalizeURL(target)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, normalized, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.5")
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}
	if f.cookie != "" {
		req.Header.Set("Cookie", f.cookie)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: %d %s", ErrHTTPStatus, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrRequestFailed, err)
	}

	page := &Page{
		URL:         resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		Headers:     resp.Header.Clone(),
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}
	if !page.IsHTML() {
		return nil, fmt.Errorf("%w: content type %q", ErrNotHTML, page.ContentType)
	}
	return page, nil
}

// Page is a raw fetched document before parsing.
type Page struct {
	URL         string
	StatusCode  int
	Headers     http.Header
	ContentType string
	Body        []byte
}

// IsHTML reports whether the response looked like an HTML document.
// An absent Content-Type is treated as HTML since many small servers
// omit the header.
func (p *Page) IsHTML() bool {
	if p.ContentType == "" {
		return true
	}
	ct := strings.ToLower(p.ContentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml")
}
