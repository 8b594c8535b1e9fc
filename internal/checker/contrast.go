package checker

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/acessolab/a11yscan/internal/model"
)

// ContrastCheck inspects inline styles that set both a text color and a
// background. When both colors parse, the WCAG contrast ratio is
// computed; otherwise a generic advisory is raised so manual review
// still happens.
// WCAG 2.2 - 1.4.3 (Nível AA), ABNT NBR 17225:2025 - 5.4.3.
type ContrastCheck struct{}

// NewContrastCheck creates the color-contrast check.
func NewContrastCheck() *ContrastCheck {
	return &ContrastCheck{}
}

// Name returns the check's name.
func (c *ContrastCheck) Name() string {
	return "contraste-cores"
}

// Criterion returns the covered WCAG criterion.
func (c *ContrastCheck) Criterion() string {
	return "1.4.3"
}

// WCAG minimum contrast ratios for normal and large text.
const (
	minContrastNormal = 4.5
	minContrastLarge  = 3.0
)

var (
	colorDecl = regexp.MustCompile(`(?:^|;)\s*color:\s*([^;]+)`)
	bgDecl    = regexp.MustCompile(`background(?:-color)?:\s*([^;]+)`)
)

// Analyze flags inline styles whose text and background colors fall
// below the WCAG minimums.
func (c *ContrastCheck) Analyze(_ context.Context, page *model.Page) ([]model.Issue, error) {
	var issues []model.Issue

	for _, elem := range page.StyledElements {
		fg := firstMatch(colorDecl, elem.Style)
		bg := firstMatch(bgDecl, elem.Style)
		if fg == "" || bg == "" {
			continue
		}

		fgColor, okFg := parseCSSColor(fg)
		bgColor, okBg := parseCSSColor(bg)
		if !okFg || !okBg {
			issues = append(issues, model.NewIssue(
				"1.4.3 - Contraste de Cores",
				"Verifique contraste entre texto e fundo",
				model.SeverityModerate).
				WithElement(elem.HTML).
				WithSuggestion("Razão de contraste mínima: 4.5:1 para texto normal, 3:1 para texto grande").
				WithExample("Use ferramentas como WebAIM Contrast Checker"))
			continue
		}

		ratio := contrastRatio(fgColor, bgColor)
		switch {
		case ratio < minContrastLarge:
			issues = append(issues, model.NewIssue(
				"1.4.3 - Contraste de Cores",
				fmt.Sprintf("Contraste insuficiente (%.2f:1) entre texto e fundo", ratio),
				model.SeveritySerious).
				WithElement(elem.HTML).
				WithSuggestion("Razão de contraste mínima: 4.5:1 para texto normal, 3:1 para texto grande").
				WithExample(`<p style="color: #1a1a1a; background-color: #ffffff">Texto legível</p>`))
		case ratio < minContrastNormal:
			issues = append(issues, model.NewIssue(
				"1.4.3 - Contraste de Cores",
				fmt.Sprintf("Contraste abaixo do mínimo para texto normal (%.2f:1)", ratio),
				model.SeverityModerate).
				WithElement(elem.HTML).
				WithSuggestion("Razão de contraste mínima: 4.5:1 para texto normal, 3:1 para texto grande").
				WithExample(`<p style="color: #1a1a1a; background-color: #ffffff">Texto legível</p>`))
		}
	}

	return issues, nil
}

func firstMatch(re *regexp.Regexp, style string) string {
	m := re.FindStringSubmatch(style)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// rgb is a color in the sRGB space with 8-bit channels.
type rgb struct {
	r, g, b uint8
}

// namedColors covers the CSS color keywords commonly seen in inline styles.
var namedColors = map[string]rgb{
	"black":   {0, 0, 0},
	"white":   {255, 255, 255},
	"red":     {255, 0, 0},
	"green":   {0, 128, 0},
	"blue":    {0, 0, 255},
	"yellow":  {255, 255, 0},
	"gray":    {128, 128, 128},
	"grey":    {128, 128, 128},
	"silver":  {192, 192, 192},
	"orange":  {255, 165, 0},
	"purple":  {128, 0, 128},
	"brown":   {165, 42, 42},
	"pink":    {255, 192, 203},
	"navy":    {0, 0, 128},
	"maroon":  {128, 0, 0},
	"olive":   {128, 128, 0},
	"teal":    {0, 128, 128},
	"aqua":    {0, 255, 255},
	"cyan":    {0, 255, 255},
	"magenta": {255, 0, 255},
	"fuchsia": {255, 0, 255},
	"lime":    {0, 255, 0},
}

var rgbFunc = regexp.MustCompile(`^rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)`)

// parseCSSColor parses hex, rgb()/rgba() and common named colors.
// Anything else (gradients, var() references, hsl) reports failure so
// the caller can fall back to the generic advisory.
func parseCSSColor(value string) (rgb, bool) {
	value = strings.ToLower(strings.TrimSpace(value))

	if c, ok := namedColors[value]; ok {
		return c, true
	}

	if strings.HasPrefix(value, "#") {
		hex := value[1:]
		switch len(hex) {
		case 3:
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		case 6:
		default:
			return rgb{}, false
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return rgb{}, false
		}
		return rgb{uint8(n >> 16), uint8(n >> 8 & 0xff), uint8(n & 0xff)}, true
	}

	if m := rgbFunc.FindStringSubmatch(value); m != nil {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		if r > 255 || g > 255 || b > 255 {
			return rgb{}, false
		}
		return rgb{uint8(r), uint8(g), uint8(b)}, true
	}

	return rgb{}, false
}

// relativeLuminance implements the WCAG sRGB luminance formula.
func relativeLuminance(c rgb) float64 {
	lin := func(ch uint8) float64 {
		s := float64(ch) / 255
		if s <= 0.04045 {
			return s / 12.92
		}
		return math.Pow((s+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.r) + 0.7152*lin(c.g) + 0.0722*lin(c.b)
}

// contrastRatio computes the WCAG contrast ratio between two colors.
// The result ranges from 1 (identical) to 21 (black on white).
func contrastRatio(a, b rgb) float64 {
	la := relativeLuminance(a)
	lb := relativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}
