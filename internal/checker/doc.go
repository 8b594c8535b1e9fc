// Package checker implements the accessibility verifications applied to
// parsed pages. Each check covers one group of WCAG 2.2 success criteria
// mapped to ABNT NBR 17225:2025 sections, and the Analyzer coordinates
// them, aggregating issues into a report.
package checker
