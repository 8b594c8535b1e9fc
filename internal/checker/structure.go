package checker

import (
	"context"
	"fmt"

	"github.com/acessolab/a11yscan/internal/model"
)

// StructureCheck verifies the page's semantic structure: headings,
// HTML5 landmarks and list markup.
// WCAG 2.2 - 1.3.1 (Nível A), ABNT NBR 17225:2025 - 5.3.
type StructureCheck struct{}

// NewStructureCheck creates the semantic-structure check.
func NewStructureCheck() *StructureCheck {
	return &StructureCheck{}
}

// Name returns the check's name.
func (c *StructureCheck) Name() string {
	return "estrutura-semantica"
}

// Criterion returns the covered WCAG criterion.
func (c *StructureCheck) Criterion() string {
	return "1.3.1"
}

// minLandmarks is the number of distinct HTML5 landmark kinds below
// which the page is flagged for limited semantic markup.
const minLandmarks = 3

// listLikeDivThreshold is how many list-like divs a page tolerates
// before being flagged for using divs instead of list elements.
const listLikeDivThreshold = 3

// Analyze reports missing headings, multiple h1 elements, scarce
// landmarks and div soup standing in for lists.
func (c *StructureCheck) Analyze(_ context.Context, page *model.Page) ([]model.Issue, error) {
	var issues []model.Issue

	if len(page.Headings) == 0 {
		issues = append(issues, model.NewIssue(
			"1.3.1 - Estrutura Semântica",
			"Página sem cabeçalhos (h1-h6)",
			model.SeveritySerious).
			WithElement("<body>").
			WithSuggestion("Use cabeçalhos para estruturar o conteúdo").
			WithExample("<h1>Título Principal</h1>\n<h2>Seção</h2>"))
	}

	h1Count := 0
	for _, h := range page.Headings {
		if h.Level == 1 {
			h1Count++
		}
	}
	if h1Count > 1 {
		issues = append(issues, model.NewIssue(
			"1.3.1 - Estrutura Semântica",
			fmt.Sprintf("Múltiplos elementos H1 encontrados (%d)", h1Count),
			model.SeverityModerate).
			WithElement("<h1>").
			WithSuggestion("Use apenas um H1 por página como título principal").
			WithExample("<h1>Título único da página</h1>"))
	}

	kinds := make(map[string]bool, len(page.Landmarks))
	for _, tag := range page.Landmarks {
		kinds[tag] = true
	}
	if len(kinds) < minLandmarks {
		issues = append(issues, model.NewIssue(
			"1.3.1 - Estrutura Semântica",
			"Uso limitado de elementos HTML5 semânticos",
			model.SeverityModerate).
			WithElement("<body>").
			WithSuggestion("Use <header>, <nav>, <main>, <footer> para estruturar").
			WithExample("<header>...</header>\n<nav>...</nav>\n<main>...</main>"))
	}

	if page.ListLikeDivs > listLikeDivThreshold {
		issues = append(issues, model.NewIssue(
			"1.3.1 - Estrutura Semântica",
			"Possível uso de divs em vez de listas semânticas",
			model.SeverityLow).
			WithElement("<div class='list/item'>").
			WithSuggestion("Use <ul>, <ol> e <li> para listas").
			WithExample("<ul>\n  <li>Item 1</li>\n  <li>Item 2</li>\n</ul>"))
	}

	return issues, nil
}
