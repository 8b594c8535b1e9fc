package checker

import (
	"context"

	"github.com/acessolab/a11yscan/internal/model"
)

// KeyboardCheck verifies keyboard operability: clickable divs and spans
// must be focusable, and the page needs bypass links.
// WCAG 2.2 - 2.1.1 e 2.4.1 (Nível A), ABNT NBR 17225:2025 - 6.1 e 6.4.1.
type KeyboardCheck struct{}

// NewKeyboardCheck creates the keyboard-navigation check.
func NewKeyboardCheck() *KeyboardCheck {
	return &KeyboardCheck{}
}

// Name returns the check's name.
func (c *KeyboardCheck) Name() string {
	return "navegacao-teclado"
}

// Criterion returns the covered WCAG criterion.
func (c *KeyboardCheck) Criterion() string {
	return "2.1.1"
}

// Analyze reports click handlers on non-focusable elements and the
// absence of skip links.
func (c *KeyboardCheck) Analyze(_ context.Context, page *model.Page) ([]model.Issue, error) {
	var issues []model.Issue

	for _, target := range page.ClickTargets {
		if target.HasTabIndex || target.Role == "button" || target.Role == "link" {
			continue
		}
		issues = append(issues, model.NewIssue(
			"2.1.1 - Navegação por Teclado",
			"Elemento interativo não acessível por teclado",
			model.SeverityCritical).
			WithElement(target.HTML).
			WithSuggestion("Use elementos nativos (<button>, <a>) ou adicione tabindex='0' e role apropriado").
			WithExample(`<div role="button" tabindex="0" onkeypress="...">Clique</div>`))
	}

	if len(page.SkipLinks) == 0 {
		issues = append(issues, model.NewIssue(
			"2.4.1 - Bypass de Blocos",
			"Ausência de links para pular navegação (skip links)",
			model.SeveritySerious).
			WithElement("<body>").
			WithSuggestion("Adicione link 'Pular para conteúdo principal' no início da página").
			WithExample(`<a href="#main-content" class="skip-link">Pular para conteúdo</a>`))
	}

	return issues, nil
}
