package checker

import (
	"context"

	"github.com/acessolab/a11yscan/internal/model"
)

// MediaCheck verifies time-based media: videos need captions and nothing
// should start playing on its own.
// WCAG 2.2 - 1.2.2 e 1.4.2 (Nível A), ABNT NBR 17225:2025 - 5.2 e 5.4.2.
type MediaCheck struct{}

// NewMediaCheck creates the multimedia check.
func NewMediaCheck() *MediaCheck {
	return &MediaCheck{}
}

// Name returns the check's name.
func (c *MediaCheck) Name() string {
	return "multimidia"
}

// Criterion returns the covered WCAG criterion.
func (c *MediaCheck) Criterion() string {
	return "1.2.2"
}

// Analyze reports videos without caption tracks and media with autoplay.
func (c *MediaCheck) Analyze(_ context.Context, page *model.Page) ([]model.Issue, error) {
	var issues []model.Issue

	for _, video := range page.Videos {
		if !video.HasCaptions {
			issues = append(issues, model.NewIssue(
				"1.2.2 - Legendas",
				"Vídeo sem legendas/closed captions",
				model.SeverityCritical).
				WithElement(video.HTML).
				WithSuggestion("Adicione <track kind='captions'> com legendas").
				WithExample("<video>\n  <track kind=\"captions\" src=\"legendas.vtt\" srclang=\"pt-BR\">\n</video>"))
		}

		if video.Autoplay {
			issues = append(issues, model.NewIssue(
				"1.4.2 - Controle de Áudio",
				"Vídeo com autoplay pode causar distração",
				model.SeveritySerious).
				WithElement(video.HTML).
				WithSuggestion("Remova autoplay ou forneça controle de pausa").
				WithExample("<video controls>\n  <!-- sem autoplay -->\n</video>"))
		}
	}

	for _, audio := range page.Audios {
		if audio.Autoplay {
			issues = append(issues, model.NewIssue(
				"1.4.2 - Controle de Áudio",
				"Áudio com autoplay",
				model.SeveritySerious).
				WithElement(audio.HTML).
				WithSuggestion("Remova autoplay de elementos de áudio").
				WithExample(`<audio controls src="audio.mp3"></audio>`))
		}
	}

	return issues, nil
}
