package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/acessolab/a11yscan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format for documentation
// and sharing. Tables, alerts and a mermaid pie chart summarize the
// evaluation; the full issue list follows grouped by severity.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	if report.Error != "" {
		md.Cautionf("A avaliação falhou: %s", report.Error)
		return len(md.String()), md.Build()
	}

	w.writeSummary(md, report)
	w.writeConformance(md, report)
	w.writeRecommendations(md, report)
	w.writeIssues(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and evaluation metadata table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Relatório de Acessibilidade")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Propriedade", "Valor"},
		Rows: [][]string{
			{"URL Avaliada", "`" + report.URL + "`"},
			{"Data da Avaliação", report.EvaluatedAt.String()},
			{"Pontuação", fmt.Sprintf("%d/100", report.Score)},
			{"Classificação", report.Classification()},
			{"Páginas Avaliadas", strconv.Itoa(max(len(report.PagesEvaluated), 1))},
		},
	})
	md.PlainText("")
}

// writeSummary writes the severity distribution table and pie chart.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.Report) {
	md.H2("Distribuição por Severidade")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Severidade", "Quantidade"},
		Rows: [][]string{
			{"🔴 Crítico", strconv.Itoa(report.CountBySeverity(model.SeverityCritical))},
			{"🟠 Grave", strconv.Itoa(report.CountBySeverity(model.SeveritySerious))},
			{"🟡 Moderado", strconv.Itoa(report.CountBySeverity(model.SeverityModerate))},
			{"🔵 Leve", strconv.Itoa(report.CountBySeverity(model.SeverityLow))},
			{"**Total**", "**" + strconv.Itoa(report.TotalIssues) + "**"},
		},
	})
	md.PlainText("")

	if report.TotalIssues > 0 {
		w.writePieChart(md, report)
	}

	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart for the severity distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.Report) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Problemas por Severidade"),
		piechart.WithShowData(true),
	)

	severities := []model.Severity{
		model.SeverityCritical,
		model.SeveritySerious,
		model.SeverityModerate,
		model.SeverityLow,
	}
	for _, severity := range severities {
		if count := report.CountBySeverity(severity); count > 0 {
			chart.LabelAndIntValue(severity.String(), uint64(count))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert matching the worst severity present.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.Report) {
	switch {
	case report.CountBySeverity(model.SeverityCritical) > 0:
		md.Cautionf(
			"%d problemas críticos impedem o uso do site por pessoas com deficiência e exigem correção imediata.",
			report.CountBySeverity(model.SeverityCritical),
		)
	case report.CountBySeverity(model.SeveritySerious) > 0:
		md.Warningf(
			"%d problemas graves dificultam significativamente o acesso e devem ser priorizados.",
			report.CountBySeverity(model.SeveritySerious),
		)
	case report.CountBySeverity(model.SeverityModerate) > 0:
		md.Importantf(
			"%d problemas moderados afetam a experiência de alguns usuários.",
			report.CountBySeverity(model.SeverityModerate),
		)
	case report.TotalIssues > 0:
		md.Note("Apenas problemas leves foram encontrados.")
	default:
		md.Tip("Nenhum problema de acessibilidade foi detectado.")
	}
	md.PlainText("")
}

// writeConformance writes the WCAG and ABNT conformance tables.
func (w *MarkdownWriter) writeConformance(md *markdown.Markdown, report *model.Report) {
	md.H2("Conformidade com Normas")
	md.PlainText("")

	wcagRows := make([][]string, 0, len(model.WCAGLevelNames()))
	for _, level := range model.WCAGLevelNames() {
		wcagRows = append(wcagRows, []string{level, conformanceBadge(report.WCAGConformance[level])})
	}
	md.PlainText("### WCAG 2.2")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Nível", "Situação"},
		Rows:   wcagRows,
	})
	md.PlainText("")

	abntRows := make([][]string, 0, len(model.ABNTSectionLabels()))
	for _, label := range model.ABNTSectionLabels() {
		abntRows = append(abntRows, []string{label, conformanceBadge(report.ABNTConformance[label])})
	}
	md.PlainText("### ABNT NBR 17225:2025")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Seção", "Situação"},
		Rows:   abntRows,
	})
	md.PlainText("")
}

// conformanceBadge renders a conformance flag with a status icon.
func conformanceBadge(conforms bool) string {
	if conforms {
		return "✅ Conforme"
	}
	return "❌ Não Conforme"
}

// writeRecommendations writes the prioritized remediation list.
func (w *MarkdownWriter) writeRecommendations(md *markdown.Markdown, report *model.Report) {
	if len(report.Recommendations) == 0 {
		return
	}

	md.H2("Recomendações Priorizadas")
	md.PlainText("")
	md.OrderedList(report.Recommendations...)
	md.PlainText("")
}

// writeIssues writes every issue grouped by severity.
func (w *MarkdownWriter) writeIssues(md *markdown.Markdown, report *model.Report) {
	md.H2("Problemas Encontrados")
	md.PlainText("")

	if report.TotalIssues == 0 {
		md.PlainText("Nenhum problema encontrado.")
		md.PlainText("")
		return
	}

	severities := []struct {
		level  model.Severity
		header string
	}{
		{model.SeverityCritical, "### 🔴 Crítico"},
		{model.SeveritySerious, "### 🟠 Grave"},
		{model.SeverityModerate, "### 🟡 Moderado"},
		{model.SeverityLow, "### 🔵 Leve"},
	}

	for _, sev := range severities {
		issues := issuesBySeverity(report, sev.level)
		if len(issues) == 0 {
			continue
		}

		md.PlainText(sev.header)
		md.PlainText("")
		w.writeIssueTable(md, issues)
	}
}

// issuesBySeverity filters report issues to a single severity.
func issuesBySeverity(report *model.Report, severity model.Severity) []model.Issue {
	var out []model.Issue
	for _, issue := range report.Issues {
		if issue.Severity == severity {
			out = append(out, issue)
		}
	}
	return out
}

// writeIssueTable writes a table of issues with their references.
func (w *MarkdownWriter) writeIssueTable(md *markdown.Markdown, issues []model.Issue) {
	rows := make([][]string, len(issues))
	for i, issue := range issues {
		rows[i] = []string{
			issue.Criterion,
			truncateString(issue.Description, 60),
			truncateString(issue.Suggestion, 60),
			issue.WCAGRef,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Critério", "Descrição", "Sugestão", "Referência"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, issue := range issues {
		if issue.ExampleCode != "" {
			md.Details(issue.Description, "\n```html\n"+issue.ExampleCode+"\n```\n")
		}
	}
	md.PlainText("")
}

// writeFooter writes the closing reference line.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Avaliação baseada na WCAG 2.2 e na ABNT NBR 17225:2025.*")
}

// truncateString truncates a string to maxLen bytes with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
