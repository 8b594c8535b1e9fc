package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Report is the complete result of an accessibility evaluation.
// JSON field names follow the Portuguese export format produced by the
// interactive session and the audit subcommand.
type Report struct {
	// ID uniquely identifies this evaluation run.
	ID string `json:"id"`

	// URL is the address that was evaluated.
	URL string `json:"url"`

	// EvaluatedAt is when the evaluation ran.
	EvaluatedAt Timestamp `json:"data_avaliacao"`

	// Score is the overall accessibility score from 0 to 100.
	Score int `json:"pontuacao_geral"`

	// TotalIssues is the number of distinct issues found.
	TotalIssues int `json:"total_problemas"`

	// SeverityCounts maps Portuguese severity names to issue counts.
	SeverityCounts map[string]int `json:"problemas_por_severidade"`

	// Issues lists every distinct problem found, most severe first.
	Issues []Issue `json:"problemas"`

	// Recommendations lists prioritized remediation advice.
	Recommendations []string `json:"recomendacoes"`

	// WCAGConformance maps each WCAG level label ("Nível A", "Nível AA",
	// "Nível AAA") to whether the page conforms.
	WCAGConformance map[string]bool `json:"conformidade_wcag"`

	// ABNTConformance maps ABNT NBR 17225 sections to whether they are met.
	ABNTConformance map[string]bool `json:"conformidade_abnt"`

	// PagesEvaluated lists every URL included in the evaluation.
	PagesEvaluated []string `json:"paginas_avaliadas,omitempty"`

	// PerformedChecks records which checks ran, in order.
	PerformedChecks []string `json:"verificacoes_executadas,omitempty"`

	// Error holds a failure description when the evaluation could not
	// complete. A report with a non-empty Error has no meaningful score.
	Error string `json:"erro,omitempty"`

	// Pages carries the parsed pages between evaluation steps. It is
	// working data for the checks, not part of the exported report.
	Pages []*Page `json:"-"`

	// seen tracks issue keys for deduplication.
	seen map[string]struct{}
}

// NewReport creates an empty report for the given URL with all counters
// initialized and the evaluation timestamp set to now.
func NewReport(url string) *Report {
	return &Report{
		ID:          uuid.NewString(),
		URL:         url,
		EvaluatedAt: Timestamp(time.Now()),
		Score:       100,
		SeverityCounts: map[string]int{
			SeverityCritical.String(): 0,
			SeveritySerious.String():  0,
			SeverityModerate.String(): 0,
			SeverityLow.String():      0,
		},
		WCAGConformance: map[string]bool{},
		ABNTConformance: map[string]bool{},
		seen:            map[string]struct{}{},
	}
}

// AddIssue records an issue, skipping duplicates. Severity counts and the
// total stay in sync with the issue list.
func (r *Report) AddIssue(issue Issue) {
	if r.seen == nil {
		r.seen = map[string]struct{}{}
		for _, existing := range r.Issues {
			r.seen[existing.key()] = struct{}{}
		}
	}
	if _, dup := r.seen[issue.key()]; dup {
		return
	}
	r.seen[issue.key()] = struct{}{}
	r.Issues = append(r.Issues, issue)
	r.SeverityCounts[issue.Severity.String()]++
	r.TotalIssues = len(r.Issues)
}

// AddPage records a URL as part of the evaluation scope.
func (r *Report) AddPage(url string) {
	for _, p := range r.PagesEvaluated {
		if p == url {
			return
		}
	}
	r.PagesEvaluated = append(r.PagesEvaluated, url)
}

// Finalize sorts issues by severity, computes the score and derives the
// conformance maps and recommendations. Call it once after all checks ran.
func (r *Report) Finalize() {
	sort.SliceStable(r.Issues, func(i, j int) bool {
		return r.Issues[i].Severity > r.Issues[j].Severity
	})
	r.Score = r.computeScore()
	r.WCAGConformance = r.assessWCAG()
	r.ABNTConformance = r.assessABNT()
	r.Recommendations = r.buildRecommendations()
}

// computeScore starts at 100 and subtracts the severity weight of every
// issue, with a floor of zero.
func (r *Report) computeScore() int {
	penalty := 0
	for _, issue := range r.Issues {
		penalty += issue.Severity.Weight()
	}
	if penalty >= 100 {
		return 0
	}
	return 100 - penalty
}

// Classification returns the Portuguese quality label for the score.
func (r *Report) Classification() string {
	switch {
	case r.Score >= 90:
		return "Excelente!"
	case r.Score >= 70:
		return "Bom."
	case r.Score >= 50:
		return "Regular."
	default:
		return "Necessita Melhorias Urgentes"
	}
}

// CountBySeverity returns how many issues carry the given severity.
func (r *Report) CountBySeverity(s Severity) int {
	return r.SeverityCounts[s.String()]
}
