package checker

import (
	"context"
	"fmt"
	"strings"

	"github.com/acessolab/a11yscan/internal/model"
)

// AltTextCheck verifies that images carry text alternatives.
// WCAG 2.2 - 1.1.1 (Nível A), ABNT NBR 17225:2025 - 5.1.
type AltTextCheck struct{}

// NewAltTextCheck creates the text-alternative check.
func NewAltTextCheck() *AltTextCheck {
	return &AltTextCheck{}
}

// Name returns the check's name.
func (c *AltTextCheck) Name() string {
	return "alternativas-texto"
}

// Criterion returns the covered WCAG criterion.
func (c *AltTextCheck) Criterion() string {
	return "1.1.1"
}

// decorativeClassHints are class-name fragments that mark an image as
// decorative, exempting it from the empty-alt rule.
var decorativeClassHints = []string{"icon", "decor", "bg", "background"}

// Analyze reports images without alt attributes, non-decorative images
// with empty alt, and image inputs without alt.
func (c *AltTextCheck) Analyze(_ context.Context, page *model.Page) ([]model.Issue, error) {
	var issues []model.Issue

	for _, img := range page.Images {
		src := img.Src
		if src == "" {
			src = "src_desconhecido"
		}

		switch {
		case !img.HasAlt:
			issues = append(issues, model.NewIssue(
				"1.1.1 - Alternativas em Texto",
				fmt.Sprintf("Imagem sem atributo alt: %s", src),
				model.SeverityCritical).
				WithElement(img.HTML).
				WithSuggestion("Adicione um atributo alt descritivo para a imagem").
				WithExample(fmt.Sprintf(`<img src=%q alt="Descrição clara da imagem">`, src)))

		case strings.TrimSpace(img.Alt) == "" && !isDecorative(img):
			issues = append(issues, model.NewIssue(
				"1.1.1 - Alternativas em Texto",
				fmt.Sprintf("Imagem com alt vazio (não decorativa): %s", src),
				model.SeveritySerious).
				WithElement(img.HTML).
				WithSuggestion("Forneça uma descrição textual significativa").
				WithExample(fmt.Sprintf(`<img src=%q alt="Descrição do conteúdo da imagem">`, src)))
		}
	}

	for _, input := range page.ImageInputs {
		if input.HasAlt {
			continue
		}
		issues = append(issues, model.NewIssue(
			"1.1.1 - Alternativas em Texto",
			"Input tipo imagem sem atributo alt",
			model.SeverityCritical).
			WithElement(input.HTML).
			WithSuggestion("Adicione alt descrevendo a ação do botão").
			WithExample(`<input type="image" alt="Enviar formulário">`))
	}

	return issues, nil
}

// isDecorative applies the decorative-image heuristic: images inside
// links that already have text, or images whose classes hint at icons
// and backgrounds.
func isDecorative(img model.Image) bool {
	if img.InLinkWithText {
		return true
	}
	classes := strings.ToLower(img.Classes)
	for _, hint := range decorativeClassHints {
		if strings.Contains(classes, hint) {
			return true
		}
	}
	return false
}
