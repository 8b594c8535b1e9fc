package checker

import (
	"context"
	"fmt"

	"github.com/acessolab/a11yscan/internal/model"
)

// ARIACheck verifies ARIA usage: role values must exist in the
// specification and id references must resolve.
// WCAG 2.2 - 4.1.2 (Nível A), ABNT NBR 17225:2025 - 8.2.
type ARIACheck struct{}

// NewARIACheck creates the ARIA-validity check.
func NewARIACheck() *ARIACheck {
	return &ARIACheck{}
}

// Name returns the check's name.
func (c *ARIACheck) Name() string {
	return "aria"
}

// Criterion returns the covered WCAG criterion.
func (c *ARIACheck) Criterion() string {
	return "4.1.2"
}

// validRoles lists the ARIA role values accepted by the specification.
var validRoles = map[string]bool{
	"alert": true, "alertdialog": true, "application": true, "article": true,
	"banner": true, "button": true, "checkbox": true, "complementary": true,
	"contentinfo": true, "dialog": true, "directory": true, "document": true,
	"form": true, "grid": true, "gridcell": true, "group": true,
	"heading": true, "img": true, "link": true, "list": true,
	"listbox": true, "listitem": true, "log": true, "main": true,
	"marquee": true, "math": true, "menu": true, "menubar": true,
	"menuitem": true, "menuitemcheckbox": true, "menuitemradio": true,
	"navigation": true, "note": true, "option": true, "presentation": true,
	"progressbar": true, "radio": true, "radiogroup": true, "region": true,
	"row": true, "rowgroup": true, "rowheader": true, "scrollbar": true,
	"search": true, "separator": true, "slider": true, "spinbutton": true,
	"status": true, "tab": true, "tablist": true, "tabpanel": true,
	"textbox": true, "timer": true, "toolbar": true, "tooltip": true,
	"tree": true, "treegrid": true, "treeitem": true,
}

// Analyze reports invalid role values and aria-labelledby references to
// ids that don't exist on the page.
func (c *ARIACheck) Analyze(_ context.Context, page *model.Page) ([]model.Issue, error) {
	var issues []model.Issue

	for _, elem := range page.RoledElements {
		if validRoles[elem.Role] {
			continue
		}
		issues = append(issues, model.NewIssue(
			"4.1.2 - ARIA Válido",
			fmt.Sprintf("Role ARIA inválido: '%s'", elem.Role),
			model.SeveritySerious).
			WithElement(elem.HTML).
			WithSuggestion("Use apenas roles ARIA válidos da especificação").
			WithExample(`<div role="navigation">...</div>`))
	}

	for _, ref := range page.AriaRefs {
		for _, id := range ref.IDs {
			if page.IDs[id] {
				continue
			}
			issues = append(issues, model.NewIssue(
				"4.1.2 - ARIA Referências",
				fmt.Sprintf("aria-labelledby referencia ID inexistente: '%s'", id),
				model.SeveritySerious).
				WithElement(ref.HTML).
				WithSuggestion("Certifique-se que o ID referenciado existe na página").
				WithExample("<h2 id=\"titulo-secao\">Título</h2>\n<div aria-labelledby=\"titulo-secao\">...</div>"))
		}
	}

	return issues, nil
}
