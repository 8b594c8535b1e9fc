package crawler

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/acessolab/a11yscan/internal/fetch"
	"github.com/acessolab/a11yscan/internal/model"
)

// Spider discovers and parses pages starting from a root URL. It walks
// the site breadth-first, one request at a time, staying on the same
// host and respecting depth, page and politeness limits.
type Spider struct {
	fetcher *fetch.Fetcher

	// maxDepth limits how deep to follow links from the starting URL.
	// 0 means only the starting page.
	maxDepth int

	// maxPages caps the total number of pages evaluated, preventing
	// runaway crawls on large sites.
	maxPages int

	// delay is the politeness pause between requests.
	delay time.Duration

	// ignorePatterns are URL path globs to skip (e.g. "/admin/*", "*.pdf").
	ignorePatterns []string

	// followPatterns, when set, restrict the crawl to matching paths.
	followPatterns []string

	// visited tracks normalized URLs already fetched.
	visited map[string]bool

	pageCount int
}

// SpiderOption configures a Spider.
type SpiderOption func(*Spider)

// WithMaxDepth sets the maximum crawl depth.
// 0 = only the starting page, 1 = starting page plus linked pages, etc.
func WithMaxDepth(depth int) SpiderOption {
	return func(s *Spider) {
		s.maxDepth = depth
	}
}

// WithMaxPages sets the maximum number of pages to evaluate.
func WithMaxPages(maxPages int) SpiderOption {
	return func(s *Spider) {
		s.maxPages = maxPages
	}
}

// WithDelay sets the pause between requests.
func WithDelay(d time.Duration) SpiderOption {
	return func(s *Spider) {
		s.delay = d
	}
}

// WithIgnorePatterns sets URL path globs to skip during crawling.
func WithIgnorePatterns(patterns []string) SpiderOption {
	return func(s *Spider) {
		s.ignorePatterns = patterns
	}
}

// WithFollowPatterns restricts the crawl to paths matching at least one
// glob. Empty means all paths are allowed, subject to ignore patterns.
func WithFollowPatterns(patterns []string) SpiderOption {
	return func(s *Spider) {
		s.followPatterns = patterns
	}
}

// NewSpider creates a Spider that fetches through the given fetcher.
// The fetcher carries the timeout, body limit and header configuration
// so that crawled pages are requested exactly like the root page.
func NewSpider(fetcher *fetch.Fetcher, opts ...SpiderOption) *Spider {
	s := &Spider{
		fetcher:  fetcher,
		maxDepth: 1,
		maxPages: 20,
		delay:    500 * time.Millisecond,
		visited:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Crawl fetches and parses pages breadth-first from startURL, returning
// every page that could be retrieved. Individual page failures are
// skipped; the crawl only fails as a whole when the context is canceled
// or the start URL is invalid.
func (s *Spider) Crawl(ctx context.Context, startURL string) ([]*model.Page, error) {
	start, err := fetch.NormalizeURL(startURL)
	if err != nil {
		return nil, fmt.Errorf("invalid start URL: %w", err)
	}

	type queueItem struct {
		url   string
		depth int
	}

	var pages []*model.Page
	queue := []queueItem{{url: start, depth: 0}}

	for len(queue) > 0 && s.pageCount < s.maxPages {
		select {
		case <-ctx.Done():
			return pages, ctx.Err()
		default:
		}

		item := queue[0]
		queue = queue[1:]

		key := normalizeURL(item.url)
		if s.visited[key] {
			continue
		}
		s.visited[key] = true

		page, err := s.fetchAndParse(ctx, item.url)
		if err != nil {
			// The root page must succeed; deeper pages may come and go.
			if item.depth == 0 && len(pages) == 0 {
				return nil, err
			}
			continue
		}

		pages = append(pages, page)
		s.pageCount++

		if item.depth < s.maxDepth {
			for _, link := range page.InternalLinks {
				if !s.visited[normalizeURL(link)] && s.shouldCrawl(link) {
					queue = append(queue, queueItem{url: link, depth: item.depth + 1})
				}
			}
		}

		if s.delay > 0 && len(queue) > 0 {
			select {
			case <-ctx.Done():
				return pages, ctx.Err()
			case <-time.After(s.delay):
			}
		}
	}

	return pages, nil
}

// fetchAndParse retrieves one page and runs the parser over it.
func (s *Spider) fetchAndParse(ctx context.Context, pageURL string) (*model.Page, error) {
	fetched, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	parser, err := NewParser(fetched.URL)
	if err != nil {
		return nil, err
	}
	return parser.Parse(fetched)
}

// Reset clears the spider's state, allowing it to be reused.
func (s *Spider) Reset() {
	s.visited = make(map[string]bool)
	s.pageCount = 0
}

// normalizeURL canonicalizes a URL for deduplication: fragments are
// dropped, scheme and host are lowercased, and the empty path becomes "/".
func normalizeURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}
	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}

// shouldCrawl applies the ignore and follow patterns to a URL path.
func (s *Spider) shouldCrawl(targetURL string) bool {
	u, err := url.Parse(targetURL)
	if err != nil {
		return false
	}
	path := u.Path
	if path == "" {
		path = "/"
	}

	for _, pattern := range s.ignorePatterns {
		if matchPattern(pattern, path) {
			return false
		}
	}
	if len(s.followPatterns) > 0 {
		for _, pattern := range s.followPatterns {
			if matchPattern(pattern, path) {
				return true
			}
		}
		return false
	}
	return true
}

// matchPattern checks a path against a glob pattern. Besides standard
// filepath.Match globs, "/prefix/*" matches the whole subtree and "*.ext"
// matches by file extension anywhere in the path.
func matchPattern(pattern, path string) bool {
	if strings.HasSuffix(pattern, "/*") {
		prefix := strings.TrimSuffix(pattern, "/*")
		if strings.HasPrefix(path, prefix+"/") || path == prefix {
			return true
		}
	}

	if strings.HasPrefix(pattern, "*.") {
		if strings.HasSuffix(path, strings.TrimPrefix(pattern, "*")) {
			return true
		}
	}

	matched, err := filepath.Match(pattern, path)
	if err != nil {
		return false
	}
	if matched {
		return true
	}

	if strings.Contains(pattern, "*") && !strings.Contains(pattern, "/") {
		matched, err := filepath.Match(pattern, filepath.Base(path))
		if err == nil && matched {
			return true
		}
	}

	return false
}
