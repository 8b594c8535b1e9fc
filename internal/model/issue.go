package model

import "strings"

// Issue represents a single accessibility problem found on a page.
// JSON field names follow the Portuguese export format so that reports
// stay compatible with tooling that consumes them downstream.
type Issue struct {
	// Criterion is the success criterion label, combining the WCAG 2.2
	// identifier with a short category name (e.g. "1.1.1 - Alternativas em Texto").
	Criterion string `json:"criterio"`

	// Description explains the problem in Portuguese.
	Description string `json:"descricao"`

	// Severity is the penalty class of the issue.
	Severity Severity `json:"nivel_severidade"`

	// SeverityName is the Portuguese name of the severity, kept in the
	// export alongside the numeric level for readability.
	SeverityName string `json:"severidade"`

	// WCAGLevel is the conformance level of the violated criterion.
	WCAGLevel Level `json:"nivel_wcag"`

	// Element is a truncated rendering of the offending markup.
	Element string `json:"elemento,omitempty"`

	// Page is the URL of the page where the issue was found.
	Page string `json:"pagina,omitempty"`

	// Suggestion describes how to fix the problem.
	Suggestion string `json:"sugestao"`

	// WCAGRef and ABNTRef are the normative references for the criterion.
	WCAGRef string `json:"referencia_wcag"`
	ABNTRef string `json:"referencia_abnt"`

	// ExampleCode shows corrected markup when a concrete example exists.
	ExampleCode string `json:"codigo_exemplo,omitempty"`
}

// NewIssue builds an Issue for the given criterion label, filling the
// severity name and the normative references from the criterion mapping.
func NewIssue(criterion, description string, severity Severity) Issue {
	info := GetCriterionInfo(CriterionID(criterion))
	return Issue{
		Criterion:    criterion,
		Description:  description,
		Severity:     severity,
		SeverityName: severity.String(),
		WCAGLevel:    info.Level,
		WCAGRef:      info.WCAGRef,
		ABNTRef:      info.ABNTRef,
	}
}

// WithElement returns a copy of the issue with the offending markup attached.
func (i Issue) WithElement(element string) Issue {
	i.Element = element
	return i
}

// WithSuggestion returns a copy of the issue with a fix suggestion attached.
func (i Issue) WithSuggestion(suggestion string) Issue {
	i.Suggestion = suggestion
	return i
}

// WithExample returns a copy of the issue with corrected example markup attached.
func (i Issue) WithExample(code string) Issue {
	i.ExampleCode = code
	return i
}

// WithPage returns a copy of the issue bound to the page it was found on.
func (i Issue) WithPage(url string) Issue {
	i.Page = url
	return i
}

// CriterionID extracts the numeric WCAG identifier from a criterion
// label, e.g. "1.1.1" from "1.1.1 - Alternativas em Texto".
func CriterionID(label string) string {
	if id, _, found := strings.Cut(label, "-"); found {
		return strings.TrimSpace(id)
	}
	return strings.TrimSpace(label)
}

// key identifies an issue for deduplication. Two issues reporting the
// same criterion against the same element on the same page are the same
// problem even when discovered by different code paths.
func (i Issue) key() string {
	return i.Criterion + "|" + i.Page + "|" + i.Element + "|" + i.Description
}
