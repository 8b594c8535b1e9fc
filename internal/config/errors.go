package config

import "errors"

// Validation errors returned by Config.Validate. Sentinel errors let
// callers use errors.Is while keeping human-readable messages.
var (
	// ErrNoTarget is returned when no URL to evaluate was specified.
	ErrNoTarget = errors.New("no target specified: provide a URL to evaluate")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidDepth is returned when the crawl depth is negative.
	ErrInvalidDepth = errors.New("invalid crawl depth: must be non-negative")

	// ErrInvalidMaxPages is returned when the page cap is not positive.
	ErrInvalidMaxPages = errors.New("invalid max pages: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidCrawlDelay is returned when the crawl delay is negative.
	ErrInvalidCrawlDelay = errors.New("invalid crawl delay: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")
)
