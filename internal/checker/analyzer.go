package checker

import (
	"context"

	"github.com/acessolab/a11yscan/internal/model"
)

// Check is implemented by each accessibility verification. A check
// inspects a parsed page and reports zero or more issues.
type Check interface {
	// Name returns the check's name for logging and report metadata.
	Name() string

	// Criterion returns the main WCAG success criterion the check covers.
	Criterion() string

	// Analyze inspects a single page and returns the issues found.
	Analyze(ctx context.Context, page *model.Page) ([]model.Issue, error)
}

// Analyzer coordinates all accessibility checks. Checks run in
// registration order so that report output stays stable, and a failing
// check never prevents the remaining ones from running.
type Analyzer struct {
	checks []Check
}

// NewAnalyzer creates an Analyzer with every built-in check registered.
func NewAnalyzer() *Analyzer {
	a := &Analyzer{}
	a.Register(NewAltTextCheck())
	a.Register(NewStructureCheck())
	a.Register(NewContrastCheck())
	a.Register(NewKeyboardCheck())
	a.Register(NewFormCheck())
	a.Register(NewMediaCheck())
	a.Register(NewDocumentCheck())
	a.Register(NewLinkCheck())
	a.Register(NewTableCheck())
	a.Register(NewARIACheck())
	return a
}

// Register adds a check to the list.
func (a *Analyzer) Register(check Check) {
	a.checks = append(a.checks, check)
}

// Checks returns the registered checks in execution order.
func (a *Analyzer) Checks() []Check {
	return a.checks
}

// Analyze runs every check over every page and records the results on
// the report. The report's issue list handles deduplication, so a
// problem found on several pages is reported once per page and element.
func (a *Analyzer) Analyze(ctx context.Context, pages []*model.Page, report *model.Report) error {
	// Single-page audits leave issues unbound from a page URL, matching
	// the export format consumers already parse. Multi-page audits need
	// the page to make issues locatable.
	tagPages := len(pages) > 1

	for _, check := range a.checks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for _, page := range pages {
			issues, err := check.Analyze(ctx, page)
			if err != nil {
				// A misbehaving check should not sink the whole
				// evaluation; the remaining checks still run.
				continue
			}
			for _, issue := range issues {
				if tagPages {
					issue = issue.WithPage(page.URL)
				}
				report.AddIssue(issue)
			}
		}
		report.PerformedChecks = append(report.PerformedChecks, check.Name())
	}
	return nil
}
