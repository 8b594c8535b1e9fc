package model

import "fmt"

// WCAG conformance level labels used as keys in the exported report.
const (
	WCAGLevelAName   = "Nível A"
	WCAGLevelAAName  = "Nível AA"
	WCAGLevelAAAName = "Nível AAA"
)

// abntTrackedSections lists the ABNT NBR 17225:2025 sections whose
// conformance is summarized in the report. Each key is the section label
// used in the export; the value is the section number matched against
// issue references.
var abntTrackedSections = []struct {
	Label   string
	Section string
}{
	{Label: "5.1 - Alternativas em texto", Section: "5.1"},
	{Label: "5.3 - Estrutura semântica", Section: "5.3"},
	{Label: "6.1 - Navegação por teclado", Section: "6.1"},
	{Label: "8.2 - Identificação de campos", Section: "8.2"},
}

// WCAGLevelNames returns the conformance level labels in display order.
func WCAGLevelNames() []string {
	return []string{WCAGLevelAName, WCAGLevelAAName, WCAGLevelAAAName}
}

// ABNTSectionLabels returns the tracked ABNT section labels in display order.
func ABNTSectionLabels() []string {
	labels := make([]string, 0, len(abntTrackedSections))
	for _, section := range abntTrackedSections {
		labels = append(labels, section.Label)
	}
	return labels
}

// assessWCAG derives WCAG conformance from the recorded issues.
// Level A conformance requires zero Level A issues, Level AA additionally
// requires zero Level AA issues, and Level AAA is never claimed because a
// heuristic evaluation cannot verify all AAA criteria.
func (r *Report) assessWCAG() map[string]bool {
	var levelA, levelAA int
	for _, issue := range r.Issues {
		switch issue.WCAGLevel {
		case LevelA:
			levelA++
		case LevelAA:
			levelAA++
		}
	}
	return map[string]bool{
		WCAGLevelAName:   levelA == 0,
		WCAGLevelAAName:  levelA == 0 && levelAA == 0,
		WCAGLevelAAAName: false,
	}
}

// assessABNT marks each tracked ABNT section as non-conforming when any
// issue references it.
func (r *Report) assessABNT() map[string]bool {
	result := make(map[string]bool, len(abntTrackedSections))
	for _, section := range abntTrackedSections {
		result[section.Label] = true
	}
	for _, issue := range r.Issues {
		ref := abntSection(issue.ABNTRef)
		if ref == "" {
			continue
		}
		for _, section := range abntTrackedSections {
			if section.Section == ref {
				result[section.Label] = false
			}
		}
	}
	return result
}

// abntSection extracts the section number from an ABNT reference,
// e.g. "5.1" from "ABNT 5.1 - Alternativas em texto".
func abntSection(ref string) string {
	var section string
	if _, err := fmt.Sscanf(ref, "ABNT %s", &section); err != nil {
		return ""
	}
	return section
}

// buildRecommendations produces the prioritized remediation list shown
// at the end of every report.
func (r *Report) buildRecommendations() []string {
	var recs []string

	critical := r.CountBySeverity(SeverityCritical)
	serious := r.CountBySeverity(SeveritySerious)

	if critical > 0 {
		recs = append(recs, fmt.Sprintf(
			"PRIORIDADE CRÍTICA: Corrigir %d problemas críticos "+
				"(imagens sem alt, formulários sem labels, elementos não acessíveis por teclado)",
			critical))
	}
	if serious > 0 {
		recs = append(recs, fmt.Sprintf(
			"PRIORIDADE ALTA: Resolver %d problemas graves "+
				"(estrutura semântica, contraste, navegação)",
			serious))
	}

	if category, count := r.dominantCategory(); category != "" {
		recs = append(recs, fmt.Sprintf(
			"Categoria com mais problemas: '%s' (%d ocorrências)", category, count))
	}

	levelA := 0
	for _, issue := range r.Issues {
		if issue.WCAGLevel == LevelA {
			levelA++
		}
	}
	if levelA > 0 {
		recs = append(recs, fmt.Sprintf(
			"%d violações do Nível A da WCAG (requisitos mínimos obrigatórios)", levelA))
	}

	recs = append(recs, "Consulte WCAG 2.2 e ABNT NBR 17225:2025 para diretrizes completas")
	return recs
}

// dominantCategory returns the criterion identifier with the most issues.
// Ties break toward the earlier first occurrence so that output stays
// deterministic for a given report.
func (r *Report) dominantCategory() (string, int) {
	counts := map[string]int{}
	var order []string
	for _, issue := range r.Issues {
		id := CriterionID(issue.Criterion)
		if _, seen := counts[id]; !seen {
			order = append(order, id)
		}
		counts[id]++
	}
	best, bestCount := "", 0
	for _, id := range order {
		if counts[id] > bestCount {
			best, bestCount = id, counts[id]
		}
	}
	return best, bestCount
}
