package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/acessolab/a11yscan/internal/model"
)

// detailedIssueLimit is how many issues the console report details
// before pointing the reader at the JSON export.
const detailedIssueLimit = 10

// maxExampleLength truncates code examples in the console output.
const maxExampleLength = 80

// ConsoleWriter outputs human-readable Portuguese text reports for
// terminal display.
type ConsoleWriter struct {
	baseWriter

	// maxIssues limits how many issues are detailed. Zero means the
	// default limit; negative means no limit.
	maxIssues int
}

// ConsoleWriterOption configures a ConsoleWriter.
type ConsoleWriterOption func(*ConsoleWriter)

// WithMaxIssues overrides how many issues are detailed in the output.
// A negative value details every issue.
func WithMaxIssues(n int) ConsoleWriterOption {
	return func(w *ConsoleWriter) {
		w.maxIssues = n
	}
}

// NewConsoleWriter creates a ConsoleWriter that outputs to the given writer.
func NewConsoleWriter(output io.Writer, opts ...ConsoleWriterOption) *ConsoleWriter {
	w := &ConsoleWriter{
		baseWriter: newBaseWriter(output),
		maxIssues:  detailedIssueLimit,
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.maxIssues == 0 {
		w.maxIssues = detailedIssueLimit
	}

	return w
}

// Write outputs the full report in human-readable format.
func (w *ConsoleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeConformance(&sb, report)
	w.writeRecommendations(&sb, report)
	w.writeIssues(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report banner with the evaluation metadata.
func (w *ConsoleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 80))
	sb.WriteString("\n")
	sb.WriteString("RELATÓRIO DE AVALIAÇÃO DE ACESSIBILIDADE WEB\n")
	sb.WriteString(strings.Repeat("=", 80))
	sb.WriteString("\n")

	fmt.Fprintf(sb, "\nURL Avaliada: %s\n", report.URL)
	fmt.Fprintf(sb, "Data da Avaliação: %s\n", report.EvaluatedAt)

	if report.Error != "" {
		fmt.Fprintf(sb, "\nERRO: %s\n", report.Error)
		return
	}

	fmt.Fprintf(sb, "\nPONTUAÇÃO GERAL: %d/100\n", report.Score)
	fmt.Fprintf(sb, "Classificação: %s\n", report.Classification())
}

// writeSummary writes the issue totals and severity distribution.
func (w *ConsoleWriter) writeSummary(sb *strings.Builder, report *model.Report) {
	if report.Error != "" {
		return
	}

	fmt.Fprintf(sb, "\nTotal de Problemas: %d\n", report.TotalIssues)
	sb.WriteString("\nDistribuição por Severidade:\n")

	severities := []model.Severity{
		model.SeverityCritical,
		model.SeveritySerious,
		model.SeverityModerate,
		model.SeverityLow,
	}
	for _, severity := range severities {
		if count := report.CountBySeverity(severity); count > 0 {
			fmt.Fprintf(sb, "  %s: %d\n", severity, count)
		}
	}
}

// writeConformance writes the WCAG and ABNT conformance sections.
func (w *ConsoleWriter) writeConformance(sb *strings.Builder, report *model.Report) {
	if report.Error != "" {
		return
	}

	sb.WriteString("\nCONFORMIDADE COM NORMAS:\n")

	sb.WriteString("\nWCAG 2.2:\n")
	for _, level := range model.WCAGLevelNames() {
		fmt.Fprintf(sb, "  %s: %s\n", level, conformanceStatus(report.WCAGConformance[level]))
	}

	sb.WriteString("\nABNT NBR 17225:2025:\n")
	for _, label := range model.ABNTSectionLabels() {
		fmt.Fprintf(sb, "  %s: %s\n", label, conformanceStatus(report.ABNTConformance[label]))
	}
}

// conformanceStatus renders a conformance flag in Portuguese.
func conformanceStatus(conforms bool) string {
	if conforms {
		return "Conforme"
	}
	return "Não Conforme"
}

// writeRecommendations writes the prioritized remediation list.
func (w *ConsoleWriter) writeRecommendations(sb *strings.Builder, report *model.Report) {
	if len(report.Recommendations) == 0 {
		return
	}

	sb.WriteString("\nRECOMENDAÇÕES PRIORIZADAS:\n")
	for i, rec := range report.Recommendations {
		fmt.Fprintf(sb, "\n%d. %s\n", i+1, rec)
	}
}

// writeIssues details the most severe issues up to the configured limit.
func (w *ConsoleWriter) writeIssues(sb *strings.Builder, report *model.Report) {
	if len(report.Issues) == 0 {
		return
	}

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 80))
	sb.WriteString("\n")
	sb.WriteString("DETALHAMENTO DOS PROBLEMAS ENCONTRADOS\n")
	sb.WriteString(strings.Repeat("=", 80))
	sb.WriteString("\n")

	limit := w.maxIssues
	if limit < 0 || limit > len(report.Issues) {
		limit = len(report.Issues)
	}

	for i, issue := range report.Issues[:limit] {
		fmt.Fprintf(sb, "\n%d. %s\n", i+1, issue.Criterion)
		fmt.Fprintf(sb, "   Severidade: %s\n", issue.Severity)
		fmt.Fprintf(sb, "   Descrição: %s\n", issue.Description)
		if issue.Page != "" {
			fmt.Fprintf(sb, "   Página: %s\n", issue.Page)
		}
		fmt.Fprintf(sb, "   Sugestão: %s\n", issue.Suggestion)
		fmt.Fprintf(sb, "   Referência: %s | %s\n", issue.WCAGRef, issue.ABNTRef)
		if issue.ExampleCode != "" {
			fmt.Fprintf(sb, "   Exemplo: %s...\n", truncateString(issue.ExampleCode, maxExampleLength))
		}
	}

	if remaining := len(report.Issues) - limit; remaining > 0 {
		fmt.Fprintf(sb, "\n... e mais %d problemas.\n", remaining)
		sb.WriteString("Exporte o relatório completo em JSON para ver todos os detalhes.\n")
	}
}

// writeFooter writes the closing banner.
func (w *ConsoleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 80))
	sb.WriteString("\n")
	sb.WriteString("Avaliação concluída!\n")
	sb.WriteString(strings.Repeat("=", 80))
	sb.WriteString("\n\n")
}
