package model

// Severity represents how strongly an accessibility issue affects users.
// The ordering matters: higher values are more severe, which keeps issue
// sorting and score penalties consistent across the application.
type Severity int

const (
	// SeverityLow indicates minor issues that cause small inconveniences.
	// Examples: table headers without scope attributes, short page titles.
	SeverityLow Severity = iota

	// SeverityModerate indicates issues that make some tasks noticeably harder.
	// Examples: missing viewport meta tag, generic link text, tables without captions.
	SeverityModerate

	// SeveritySerious indicates issues that block common assistive-technology flows.
	// Examples: form fields without labels, low color contrast, videos without captions.
	SeveritySerious

	// SeverityCritical indicates issues that make content unusable for some users.
	// Examples: images without text alternatives, missing document language,
	// clickable elements unreachable by keyboard.
	SeverityCritical
)

// severityNames holds the Portuguese display names used in console reports
// and in the JSON export format.
var severityNames = map[Severity]string{
	SeverityLow:      "Leve",
	SeverityModerate: "Moderado",
	SeveritySerious:  "Grave",
	SeverityCritical: "Crítico",
}

// String returns the Portuguese display name of the severity level.
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "Desconhecido"
}

// Weight returns the score penalty applied per issue of this severity.
// The overall score starts at 100 and loses Weight() points per issue.
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 10
	case SeveritySerious:
		return 5
	case SeverityModerate:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// ParseSeverity converts a Portuguese severity name back to a Severity.
// Unknown names map to SeverityLow so that imported reports never gain
// phantom penalty weight.
func ParseSeverity(name string) Severity {
	for sev, n := range severityNames {
		if n == name {
			return sev
		}
	}
	return SeverityLow
}

// Level represents a WCAG conformance level.
type Level string

const (
	// LevelA is the minimum WCAG conformance level.
	LevelA Level = "A"
	// LevelAA is the conformance level most legislation requires,
	// including Brazilian public-sector guidance.
	LevelAA Level = "AA"
	// LevelAAA is the highest WCAG conformance level.
	LevelAAA Level = "AAA"
)

// CriterionInfo contains the normative references for a WCAG success
// criterion: its conformance level, the WCAG 2.2 reference, and the
// corresponding section of ABNT NBR 17225:2025.
type CriterionInfo struct {
	Level   Level
	WCAGRef string
	ABNTRef string
}

// criterionInfoMapping maps WCAG success criterion identifiers to their
// normative references. It is the single source of truth for the
// WCAG-to-ABNT correspondence used throughout report generation.
var criterionInfoMapping = map[string]CriterionInfo{
	"1.1.1": {
		Level:   LevelA,
		WCAGRef: "WCAG 2.2 - 1.1.1",
		ABNTRef: "ABNT 5.1 - Alternativas em texto",
	},
	"1.2.2": {
		Level:   LevelA,
		WCAGRef: "WCAG 2.2 - 1.2.2",
		ABNTRef: "ABNT 5.2.2 - Legendas sincronizadas",
	},
	"1.3.1": {
		Level:   LevelA,
		WCAGRef: "WCAG 2.2 - 1.3.1",
		ABNTRef: "ABNT 5.3 - Estrutura semântica",
	},
	"1.4.2": {
		Level:   LevelA,
		WCAGRef: "WCAG 2.2 - 1.4.2",
		ABNTRef: "ABNT 5.4.2 - Controle de reprodução",
	},
	"1.4.3": {
		Level:   LevelAA,
		WCAGRef: "WCAG 2.2 - 1.4.3",
		ABNTRef: "ABNT 5.4.3 - Contraste mínimo",
	},
	"1.4.4": {
		Level:   LevelAA,
		WCAGRef: "WCAG 2.2 - 1.4.4",
		ABNTRef: "ABNT 5.4.4 - Redimensionamento",
	},
	"1.4.10": {
		Level:   LevelAA,
		WCAGRef: "WCAG 2.2 - 1.4.10",
		ABNTRef: "ABNT 5.4.10 - Adaptação visual",
	},
	"2.1.1": {
		Level:   LevelA,
		WCAGRef: "WCAG 2.2 - 2.1.1",
		ABNTRef: "ABNT 6.1 - Navegação por teclado",
	},
	"2.4.1": {
		Level:   LevelA,
		WCAGRef: "WCAG 2.2 - 2.4.1",
		ABNTRef: "ABNT 6.4.1 - Bypass de blocos",
	},
	"2.4.2": {
		Level:   LevelA,
		WCAGRef: "WCAG 2.2 - 2.4.2",
		ABNTRef: "ABNT 6.4.2 - Títulos de página",
	},
	"2.4.4": {
		Level:   LevelA,
		WCAGRef: "WCAG 2.2 - 2.4.4",
		ABNTRef: "ABNT 6.4.4 - Propósito dos links",
	},
	"3.1.1": {
		Level:   LevelA,
		WCAGRef: "WCAG 2.2 - 3.1.1",
		ABNTRef: "ABNT 7.1 - Idioma da página",
	},
	"3.2.5": {
		Level:   LevelAAA,
		WCAGRef: "WCAG 2.2 - 3.2.5",
		ABNTRef: "ABNT 7.2 - Previsibilidade",
	},
	"4.1.1": {
		Level:   LevelA,
		WCAGRef: "WCAG 2.2 - 4.1.1",
		ABNTRef: "ABNT 8.1 - Parsing HTML",
	},
	"4.1.2": {
		Level:   LevelA,
		WCAGRef: "WCAG 2.2 - 4.1.2",
		ABNTRef: "ABNT 8.2 - Nome, função e valor",
	},
}

// GetCriterionInfo returns the normative references for a WCAG success
// criterion. Unknown criteria default to Level A with empty references
// so that every issue still counts toward Level A conformance.
func GetCriterionInfo(criterion string) CriterionInfo {
	if info, ok := criterionInfoMapping[criterion]; ok {
		return info
	}
	return CriterionInfo{Level: LevelA}
}
