package checker

import (
	"context"
	"fmt"
	"strings"

	"github.com/acessolab/a11yscan/internal/model"
)

// LinkCheck verifies that every link announces its purpose and that
// context changes are predictable.
// WCAG 2.2 - 2.4.4 (Nível A) e 3.2.5 (Nível AAA).
type LinkCheck struct{}

// NewLinkCheck creates the link-purpose check.
func NewLinkCheck() *LinkCheck {
	return &LinkCheck{}
}

// Name returns the check's name.
func (c *LinkCheck) Name() string {
	return "links"
}

// Criterion returns the covered WCAG criterion.
func (c *LinkCheck) Criterion() string {
	return "2.4.4"
}

// genericLinkTexts are link texts that say nothing about the destination.
var genericLinkTexts = map[string]bool{
	"clique aqui": true,
	"saiba mais":  true,
	"leia mais":   true,
	"aqui":        true,
	"mais":        true,
}

// Analyze reports empty links, generic link texts and unannounced
// new-window targets.
func (c *LinkCheck) Analyze(_ context.Context, page *model.Page) ([]model.Issue, error) {
	var issues []model.Issue

	for _, link := range page.Links {
		text := strings.TrimSpace(link.Text)

		if text == "" && link.AriaLabel == "" && !link.HasImage {
			issues = append(issues, model.NewIssue(
				"2.4.4 - Finalidade do Link",
				"Link sem texto ou descrição",
				model.SeverityCritical).
				WithElement(link.HTML).
				WithSuggestion("Adicione texto descritivo ou aria-label").
				WithExample(`<a href="/sobre" aria-label="Sobre nossa empresa">Saiba mais</a>`))
		}

		if genericLinkTexts[strings.ToLower(text)] && link.AriaLabel == "" {
			issues = append(issues, model.NewIssue(
				"2.4.4 - Finalidade do Link",
				fmt.Sprintf("Link com texto genérico: '%s'", text),
				model.SeverityModerate).
				WithElement(link.HTML).
				WithSuggestion("Use texto descritivo do destino do link").
				WithExample(`<a href="/servicos">Conheça nossos serviços</a>`))
		}

		if link.Target == "_blank" && link.AriaLabel == "" && !announcesNewWindow(text) {
			issues = append(issues, model.NewIssue(
				"3.2.5 - Mudança de Contexto",
				"Link abre em nova janela sem aviso",
				model.SeverityLow).
				WithElement(link.HTML).
				WithSuggestion("Avise que o link abre em nova janela").
				WithExample(`<a href="..." target="_blank" rel="noopener">Link (abre em nova janela)</a>`))
		}
	}

	return issues, nil
}

// announcesNewWindow reports whether the link text warns about opening
// a new window.
func announcesNewWindow(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "nova janela") || strings.Contains(lower, "new window")
}
