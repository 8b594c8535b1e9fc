// Package model defines the core data structures shared across the
// application: accessibility issues, severity levels, WCAG and ABNT
// conformance metadata, parsed pages and evaluation reports.
//
// The package has no dependencies on other internal packages so that
// checkers, reporters and storage can all share these types freely.
package model
