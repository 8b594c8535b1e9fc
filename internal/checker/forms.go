package checker

import (
	"context"
	"fmt"
	"strings"

	"github.com/acessolab/a11yscan/internal/model"
)

// FormCheck verifies that form controls have accessible names and that
// required fields announce themselves to assistive technology.
// WCAG 2.2 - 4.1.2 (Nível A), ABNT NBR 17225:2025 - 8.2.
type FormCheck struct{}

// NewFormCheck creates the form-labeling check.
func NewFormCheck() *FormCheck {
	return &FormCheck{}
}

// Name returns the check's name.
func (c *FormCheck) Name() string {
	return "formularios"
}

// Criterion returns the covered WCAG criterion.
func (c *FormCheck) Criterion() string {
	return "4.1.2"
}

// skippedInputTypes are control types that don't need a visible label.
var skippedInputTypes = map[string]bool{
	"hidden": true,
	"submit": true,
	"button": true,
	"image":  true,
}

// Analyze reports unlabeled fields and required fields missing
// aria-required.
func (c *FormCheck) Analyze(_ context.Context, page *model.Page) ([]model.Issue, error) {
	var issues []model.Issue

	for _, field := range page.Fields {
		if skippedInputTypes[strings.ToLower(field.Type)] {
			continue
		}

		if !hasAccessibleName(field) {
			issues = append(issues, model.NewIssue(
				"4.1.2 - Nome, Função e Valor",
				fmt.Sprintf("Campo de formulário sem label: %s", field.Type),
				model.SeverityCritical).
				WithElement(field.HTML).
				WithSuggestion("Associe um <label> ao campo ou use aria-label").
				WithExample("<label for=\"nome\">Nome:</label>\n<input type=\"text\" id=\"nome\">"))
		}
	}

	for _, field := range page.Fields {
		if !field.Required {
			continue
		}
		if field.AriaRequired != "true" {
			issues = append(issues, model.NewIssue(
				"4.1.2 - Nome, Função e Valor",
				"Campo obrigatório sem aria-required='true'",
				model.SeverityLow).
				WithElement(field.HTML).
				WithSuggestion("Adicione aria-required='true' para leitores de tela").
				WithExample(`<input type="text" required aria-required="true">`))
		}
	}

	return issues, nil
}

// hasAccessibleName reports whether any labeling mechanism names the field.
func hasAccessibleName(field model.FormField) bool {
	return field.HasLabel ||
		field.AriaLabel != "" ||
		field.AriaLabelledBy != "" ||
		field.TitleAttr != ""
}
