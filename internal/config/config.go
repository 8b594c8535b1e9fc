package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTimeout is the HTTP timeout for each page request.
	// Ten seconds accommodates slow servers without hanging the
	// interactive session.
	DefaultTimeout = 10 * time.Second

	// DefaultCrawlDepth of 0 evaluates only the page the user asked for.
	// Site-wide audits opt into deeper crawls via --depth.
	DefaultCrawlDepth = 0

	// DefaultMaxPages caps how many pages a single audit evaluates.
	DefaultMaxPages = 20

	// DefaultCrawlDelay is the pause between requests during crawling.
	DefaultCrawlDelay = 500 * time.Millisecond

	// DefaultUserAgent identifies the evaluator in HTTP requests so
	// operators can recognize audit traffic in their logs.
	DefaultUserAgent = "a11yscan/1.0 (+https://github.com/acessolab/a11yscan)"

	// DefaultMaxBodySize limits the response body size to read.
	// 5MB covers any reasonable HTML document.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// AppName is the application name used for XDG directory paths.
	AppName = "a11yscan"
)

// Config holds all options for an evaluation run. It is populated from
// CLI flags and the optional config file, then passed through the
// application by dependency injection rather than global state.
type Config struct {
	// Timeout is the HTTP timeout for each page request.
	Timeout time.Duration

	// CrawlDepth is the maximum recursion depth for crawling.
	// Depth 0 evaluates only the initial page.
	CrawlDepth int

	// MaxPages caps how many pages one audit evaluates.
	MaxPages int

	// Verbose enables debug-level log output.
	Verbose bool

	// ConfigFilePath is the path to the configuration file. If empty,
	// the tool searches for .a11yscan in the current directory and then
	// in the user's home directory.
	ConfigFilePath string

	// SiteConfigs holds per-site settings loaded from the config file.
	SiteConfigs *File

	// JSONReport switches output to JSON instead of the console report.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport switches output to Markdown.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is where the report is written. When empty, the report
	// goes to stdout.
	ReportFile string

	// Targets is the list of URLs to evaluate.
	Targets []string

	// DBDir is the directory for the audit history database.
	// Defaults to the XDG data directory.
	DBDir string

	// SaveToDB indicates whether audit results are persisted for
	// historical comparison.
	SaveToDB bool

	// CrawlDelay is the pause between requests during crawling.
	CrawlDelay time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64
}

// NewConfig creates a Config with the default values. Callers override
// individual fields after creation.
func NewConfig() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		CrawlDepth:  DefaultCrawlDepth,
		MaxPages:    DefaultMaxPages,
		CrawlDelay:  DefaultCrawlDelay,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// XDGDataDir returns the XDG data directory for the evaluator.
// On Linux: ~/.local/share/a11yscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for the evaluator.
// On Linux: ~/.config/a11yscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// It runs once after CLI parsing, before any evaluation begins.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.CrawlDepth < 0 {
		return ErrInvalidDepth
	}
	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.CrawlDelay < 0 {
		return ErrInvalidCrawlDelay
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	return nil
}
