package checker

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/acessolab/a11yscan/internal/model"
)

// DocumentCheck verifies document-level metadata: the title, the page
// language and the viewport configuration.
// WCAG 2.2 - 2.4.2, 3.1.1 (Nível A) e 1.4.10, 1.4.4 (Nível AA).
type DocumentCheck struct{}

// NewDocumentCheck creates the document-metadata check.
func NewDocumentCheck() *DocumentCheck {
	return &DocumentCheck{}
}

// Name returns the check's name.
func (c *DocumentCheck) Name() string {
	return "documento"
}

// Criterion returns the covered WCAG criterion.
func (c *DocumentCheck) Criterion() string {
	return "2.4.2"
}

// minTitleLength is the length under which a title carries no meaning.
const minTitleLength = 3

// Analyze reports missing or too-short titles, missing or malformed
// language declarations, and viewport problems.
func (c *DocumentCheck) Analyze(_ context.Context, page *model.Page) ([]model.Issue, error) {
	var issues []model.Issue

	title := strings.TrimSpace(page.Title)
	switch {
	case !page.HasTitle:
		issues = append(issues, model.NewIssue(
			"2.4.2 - Título da Página",
			"Página sem elemento <title>",
			model.SeverityCritical).
			WithElement("<head>").
			WithSuggestion("Adicione <title> descritivo no <head>").
			WithExample("<head>\n  <title>Nome da Página - Nome do Site</title>\n</head>"))
	case len([]rune(title)) < minTitleLength:
		issues = append(issues, model.NewIssue(
			"2.4.2 - Título da Página",
			"Título da página muito curto ou vazio",
			model.SeveritySerious).
			WithElement(fmt.Sprintf("<title>%s</title>", title)).
			WithSuggestion("Forneça título descritivo e significativo").
			WithExample("<title>Página Inicial - Minha Empresa</title>"))
	}

	lang := strings.TrimSpace(page.Lang)
	if lang == "" {
		issues = append(issues, model.NewIssue(
			"3.1.1 - Idioma da Página",
			"Atributo lang ausente no elemento <html>",
			model.SeverityCritical).
			WithElement("<html>").
			WithSuggestion("Adicione atributo lang no elemento html").
			WithExample(`<html lang="pt-BR">`))
	} else if _, err := language.Parse(lang); err != nil {
		issues = append(issues, model.NewIssue(
			"3.1.1 - Idioma da Página",
			fmt.Sprintf("Atributo lang inválido: '%s'", lang),
			model.SeverityModerate).
			WithElement(fmt.Sprintf("<html lang=%q>", lang)).
			WithSuggestion("Use um código de idioma válido (BCP 47)").
			WithExample(`<html lang="pt-BR">`))
	}

	if !page.HasViewportMeta {
		issues = append(issues, model.NewIssue(
			"1.4.10 - Reflow/Responsividade",
			"Meta tag viewport ausente",
			model.SeveritySerious).
			WithElement("<head>").
			WithSuggestion("Adicione meta viewport para responsividade").
			WithExample(`<meta name="viewport" content="width=device-width, initial-scale=1.0">`))
	} else if blocksZoom(page.Viewport) {
		issues = append(issues, model.NewIssue(
			"1.4.4 - Redimensionamento de Texto",
			"Viewport bloqueia zoom do usuário",
			model.SeverityCritical).
			WithElement(fmt.Sprintf(`<meta name="viewport" content=%q>`, page.Viewport)).
			WithSuggestion("Não bloqueie o zoom: remova user-scalable=no").
			WithExample(`<meta name="viewport" content="width=device-width, initial-scale=1.0">`))
	}

	return issues, nil
}

// blocksZoom reports whether a viewport declaration disables user zoom.
func blocksZoom(viewport string) bool {
	v := strings.ToLower(strings.ReplaceAll(viewport, " ", ""))
	return strings.Contains(v, "user-scalable=no") || strings.Contains(v, "maximum-scale=1")
}
