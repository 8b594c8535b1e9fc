package pipeline

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/acessolab/a11yscan/internal/checker"
	"github.com/acessolab/a11yscan/internal/config"
	"github.com/acessolab/a11yscan/internal/crawler"
	"github.com/acessolab/a11yscan/internal/fetch"
	"github.com/acessolab/a11yscan/internal/model"
)

// FetchStep retrieves and parses the root page. It is the first step of
// every single-page evaluation; a failure here is fatal because the
// later steps would have nothing to analyze.
type FetchStep struct {
	fetcher *fetch.Fetcher
	logger  *slog.Logger
}

// FetchStepOption configures a FetchStep.
type FetchStepOption func(*FetchStep)

// WithFetchLogger sets a custom logger for the fetch step.
func WithFetchLogger(logger *slog.Logger) FetchStepOption {
	return func(s *FetchStep) {
		s.logger = logger
	}
}

// NewFetchStep creates a fetch step using the given fetcher.
func NewFetchStep(fetcher *fetch.Fetcher, opts ...FetchStepOption) *FetchStep {
	s := &FetchStep{
		fetcher: fetcher,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do fetches the report's URL and stores the parsed page.
func (s *FetchStep) Do(ctx context.Context, report *model.Report) error {
	target, err := fetch.NormalizeURL(report.URL)
	if err != nil {
		return err
	}

	fetched, err := s.fetcher.Fetch(ctx, target)
	if err != nil {
		return err
	}

	parser, err := crawler.NewParser(fetched.URL)
	if err != nil {
		return err
	}
	page, err := parser.Parse(fetched)
	if err != nil {
		return err
	}

	report.Pages = []*model.Page{page}
	report.AddPage(page.URL)

	s.logger.Debug("page fetched",
		"url", page.URL,
		"status", fetched.StatusCode,
	)
	return nil
}

// CrawlStep discovers and parses pages beyond the root by following
// internal links. It replaces the report's page list with the crawl
// result, which includes the root page.
type CrawlStep struct {
	fetcher *fetch.Fetcher

	maxDepth int
	maxPages int
	delay    time.Duration

	ignorePatterns []string
	followPatterns []string

	logger *slog.Logger
}

// CrawlStepOption configures a CrawlStep.
type CrawlStepOption func(*CrawlStep)

// WithCrawlMaxDepth sets the maximum crawl depth.
func WithCrawlMaxDepth(depth int) CrawlStepOption {
	return func(s *CrawlStep) {
		s.maxDepth = depth
	}
}

// WithCrawlMaxPages sets the maximum pages to crawl.
func WithCrawlMaxPages(maxPages int) CrawlStepOption {
	return func(s *CrawlStep) {
		s.maxPages = maxPages
	}
}

// WithCrawlDelay sets the delay between requests.
func WithCrawlDelay(d time.Duration) CrawlStepOption {
	return func(s *CrawlStep) {
		s.delay = d
	}
}

// WithCrawlIgnorePatterns sets URL path patterns to skip during crawling.
func WithCrawlIgnorePatterns(patterns []string) CrawlStepOption {
	return func(s *CrawlStep) {
		s.ignorePatterns = patterns
	}
}

// WithCrawlFollowPatterns sets URL path patterns to follow during crawling.
func WithCrawlFollowPatterns(patterns []string) CrawlStepOption {
	return func(s *CrawlStep) {
		s.followPatterns = patterns
	}
}

// WithCrawlLogger sets a custom logger for the crawl step.
func WithCrawlLogger(logger *slog.Logger) CrawlStepOption {
	return func(s *CrawlStep) {
		s.logger = logger
	}
}

// NewCrawlStep creates a crawl step using the given fetcher.
func NewCrawlStep(fetcher *fetch.Fetcher, opts ...CrawlStepOption) *CrawlStep {
	s := &CrawlStep{
		fetcher:  fetcher,
		maxDepth: 1,
		maxPages: config.DefaultMaxPages,
		delay:    config.DefaultCrawlDelay,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *CrawlStep) Name() string {
	return "crawl"
}

// Do crawls from the report's URL and stores every parsed page.
func (s *CrawlStep) Do(ctx context.Context, report *model.Report) error {
	spiderOpts := []crawler.SpiderOption{
		crawler.WithMaxDepth(s.maxDepth),
		crawler.WithMaxPages(s.maxPages),
		crawler.WithDelay(s.delay),
	}
	if len(s.ignorePatterns) > 0 {
		spiderOpts = append(spiderOpts, crawler.WithIgnorePatterns(s.ignorePatterns))
	}
	if len(s.followPatterns) > 0 {
		spiderOpts = append(spiderOpts, crawler.WithFollowPatterns(s.followPatterns))
	}

	spider := crawler.NewSpider(s.fetcher, spiderOpts...)

	pages, err := spider.Crawl(ctx, report.URL)
	if err != nil {
		return err
	}

	report.Pages = pages
	for _, page := range pages {
		report.AddPage(page.URL)
	}

	s.logger.Info("crawl completed",
		"pages", len(pages),
	)
	return nil
}

// AnalyzeStep runs every accessibility check over the collected pages
// and finalizes the report with score, conformance and recommendations.
type AnalyzeStep struct {
	analyzer *checker.Analyzer
	logger   *slog.Logger
}

// AnalyzeStepOption configures an AnalyzeStep.
type AnalyzeStepOption func(*AnalyzeStep)

// WithAnalyzeLogger sets a custom logger for the analyze step.
func WithAnalyzeLogger(logger *slog.Logger) AnalyzeStepOption {
	return func(s *AnalyzeStep) {
		s.logger = logger
	}
}

// NewAnalyzeStep creates an analysis step with every built-in check.
func NewAnalyzeStep(opts ...AnalyzeStepOption) *AnalyzeStep {
	s := &AnalyzeStep{
		analyzer: checker.NewAnalyzer(),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *AnalyzeStep) Name() string {
	return "analyze"
}

// Do analyzes the collected pages and finalizes the report.
func (s *AnalyzeStep) Do(ctx context.Context, report *model.Report) error {
	if len(report.Pages) == 0 {
		s.logger.Debug("skipping analysis, no pages collected")
		return nil
	}

	if err := s.analyzer.Analyze(ctx, report.Pages, report); err != nil {
		return err
	}
	report.Finalize()

	s.logger.Info("analysis completed",
		"pages", len(report.Pages),
		"issues", report.TotalIssues,
		"score", report.Score,
	)
	return nil
}

// DefaultPipeline builds the standard evaluation pipeline for a target:
// fetch for single-page audits, crawl for deeper ones, then analyze.
// Per-site settings from the config file (cookie, headers, depth and
// pattern overrides) apply when the target's host has an entry.
func DefaultPipeline(cfg *config.Config, target string, pipelineOpts ...Option) *Pipeline {
	p := New(pipelineOpts...)

	site := siteConfigFor(cfg, target)

	fetchOpts := []fetch.Option{
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
	}
	if site.Cookie != "" {
		fetchOpts = append(fetchOpts, fetch.WithCookie(site.Cookie))
	}
	if len(site.Headers) > 0 {
		fetchOpts = append(fetchOpts, fetch.WithHeaders(site.Headers))
	}
	fetcher := fetch.NewFetcher(fetchOpts...)

	depth := cfg.CrawlDepth
	if site.Depth != 0 {
		depth = site.Depth
	}

	if depth > 0 {
		crawlOpts := []CrawlStepOption{
			WithCrawlMaxDepth(depth),
			WithCrawlMaxPages(cfg.MaxPages),
			WithCrawlDelay(cfg.CrawlDelay),
		}
		if len(site.IgnorePatterns) > 0 {
			crawlOpts = append(crawlOpts, WithCrawlIgnorePatterns(site.IgnorePatterns))
		}
		if len(site.FollowPatterns) > 0 {
			crawlOpts = append(crawlOpts, WithCrawlFollowPatterns(site.FollowPatterns))
		}
		p.AddStep(NewCrawlStep(fetcher, crawlOpts...))
	} else {
		p.AddStep(NewFetchStep(fetcher))
	}
	p.AddStep(NewAnalyzeStep())

	return p
}

// siteConfigFor resolves the per-site settings for a target URL.
func siteConfigFor(cfg *config.Config, target string) config.SiteConfig {
	if cfg.SiteConfigs == nil {
		return config.SiteConfig{}
	}
	normalized, err := fetch.NormalizeURL(target)
	if err != nil {
		return cfg.SiteConfigs.Defaults
	}
	parsed, err := url.Parse(normalized)
	if err != nil {
		return cfg.SiteConfigs.Defaults
	}
	return cfg.SiteConfigs.GetSiteConfig(parsed.Hostname())
}
