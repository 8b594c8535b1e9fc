package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/acessolab/a11yscan/internal/config"
	"github.com/acessolab/a11yscan/internal/database"
	"github.com/acessolab/a11yscan/internal/fetch"
	"github.com/acessolab/a11yscan/internal/model"
	"github.com/spf13/cobra"
)

// Score direction labels for the comparison summary.
const (
	scoreDirectionImproved  = "melhorou"
	scoreDirectionWorsened  = "piorou"
	scoreDirectionUnchanged = "estável"
)

// NewHistoryCmd creates the history command.
// This command compares audit results with historical data stored in
// the database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [url]",
		Short: "Compare audit results with historical data",
		Long: `History displays differences between the current and previous audits.

This command retrieves stored audits from the database and shows:
- New issues that appeared since the last audit
- Resolved issues that are no longer present
- The change in the overall accessibility score

The comparison requires at least two audits in the database for the
specified URL. Use 'a11yscan audit' to evaluate sites and save results.

Examples:
  # Compare the latest two audits for a site
  a11yscan history https://example.com

  # List all stored audits for a site
  a11yscan history --list https://example.com

  # Compare with a specific historical audit by ID
  a11yscan history --with-audit-id 5 https://example.com

  # Output comparison in JSON format
  a11yscan history --json https://example.com

  # List all audited URLs in the database
  a11yscan history --list-urls`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List stored audits for the specified URL")
	cmd.Flags().BoolP("list-urls", "L", false,
		"List all audited URLs in the database")

	// Comparison target flags
	cmd.Flags().Int64P("with-audit-id", "i", 0,
		"Compare with a specific audit by ID (use --list to see available IDs)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	listURLs, err := cmd.Flags().GetBool("list-urls")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database so that a usage
	// error does not take the database lock.
	var target string
	if !listURLs {
		if len(args) == 0 {
			return errors.New("a URL is required (use --list-urls to see audited sites)")
		}

		target, err = fetch.NormalizeURL(args[0])
		if err != nil {
			return fmt.Errorf("invalid URL: %w", err)
		}
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if listURLs {
		return listAuditedURLs(ctx, db)
	}

	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listAuditHistory(ctx, db, target)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	withAuditID, err := cmd.Flags().GetInt64("with-audit-id")
	if err != nil {
		return err
	}

	return runComparison(ctx, db, target, withAuditID, jsonOutput)
}

// listAuditedURLs lists every URL with at least one stored audit.
func listAuditedURLs(ctx context.Context, db *database.AuditDB) error {
	urls, err := db.ListAuditedURLs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list audited URLs: %w", err)
	}

	if len(urls) == 0 {
		fmt.Println("Nenhuma auditoria encontrada no banco de dados.")
		fmt.Println("\nUse 'a11yscan audit <url>' para avaliar um website.")
		return nil
	}

	fmt.Printf("Websites auditados (%d):\n\n", len(urls))
	for _, url := range urls {
		fmt.Printf("  • %s\n", url)
	}
	fmt.Println("\nUse 'a11yscan history --list <url>' para ver as auditorias de um website.")

	return nil
}

// listAuditHistory lists all stored audits for a specific URL.
func listAuditHistory(ctx context.Context, db *database.AuditDB, url string) error {
	audits, err := db.GetAuditMetadata(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to get audit history: %w", err)
	}

	if len(audits) == 0 {
		fmt.Printf("Nenhuma auditoria encontrada para %s\n", url)
		fmt.Println("\nUse 'a11yscan audit' para avaliar este website.")
		return nil
	}

	fmt.Printf("Auditorias de %s (%d):\n\n", url, len(audits))
	fmt.Printf("  %-6s  %-20s  %-10s  %s\n", "ID", "Data", "Pontuação", "Problemas")
	fmt.Println("  " + strings.Repeat("-", 60))

	for _, meta := range audits {
		fmt.Printf("  %-6d  %-20s  %-10d  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.Score,
			formatSeveritySummary(meta.SeveritySummary),
		)
	}

	fmt.Println("\nUse 'a11yscan history <url>' para comparar as duas auditorias mais recentes.")
	fmt.Println("Use 'a11yscan history --with-audit-id <id> <url>' para comparar com uma auditoria específica.")

	return nil
}

// formatSeveritySummary renders the severity counts as a compact string.
func formatSeveritySummary(summary map[string]int) string {
	if summary == nil {
		return "N/A"
	}

	var parts []string
	for _, severity := range []model.Severity{
		model.SeverityCritical,
		model.SeveritySerious,
		model.SeverityModerate,
		model.SeverityLow,
	} {
		if v := summary[severity.String()]; v > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", severity.String()[:1], v))
		}
	}

	if len(parts) == 0 {
		return "Nenhum problema"
	}
	return strings.Join(parts, " ")
}

// runComparison performs the comparison between stored audits.
func runComparison(ctx context.Context, db *database.AuditDB, url string, withAuditID int64, jsonOutput bool) error {
	audits, err := db.GetAuditHistory(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to get audit history: %w", err)
	}

	if len(audits) == 0 {
		return fmt.Errorf("no audit history found for %s", url)
	}

	if len(audits) < 2 && withAuditID == 0 {
		return fmt.Errorf("at least 2 audits are required for comparison (found %d)", len(audits))
	}

	// The most recent audit is always the current one
	current := audits[0]

	var previous *model.Report
	if withAuditID > 0 {
		previous, err = db.GetAuditByID(ctx, withAuditID)
		if err != nil {
			return fmt.Errorf("failed to get audit with ID %d: %w", withAuditID, err)
		}
		if previous == nil {
			return fmt.Errorf("audit with ID %d not found", withAuditID)
		}
		if previous.URL != url {
			return fmt.Errorf("audit ID %d belongs to %s, not %s", withAuditID, previous.URL, url)
		}
	} else {
		previous = audits[1]
	}

	comparison := compareAudits(previous, current)

	if jsonOutput {
		return outputComparisonJSON(comparison)
	}
	return outputComparisonText(comparison)
}

// ComparisonResult holds the result of comparing two audits.
type ComparisonResult struct {
	// URL is the audited address.
	URL string `json:"url"`

	// Previous contains metadata about the older audit.
	Previous AuditSummary `json:"auditoria_anterior"`

	// Current contains metadata about the newer audit.
	Current AuditSummary `json:"auditoria_atual"`

	// NewIssues lists issues present now but not before.
	NewIssues []model.Issue `json:"novos_problemas,omitempty"`

	// ResolvedIssues lists issues present before but not now.
	ResolvedIssues []model.Issue `json:"problemas_resolvidos,omitempty"`

	// UnchangedCount is the number of issues present in both audits.
	UnchangedCount int `json:"sem_alteracao"`

	// ScoreDelta is the change in the overall score.
	ScoreDelta int `json:"variacao_pontuacao"`

	// Direction summarizes whether accessibility improved, worsened,
	// or stayed the same.
	Direction string `json:"situacao"`
}

// AuditSummary contains audit metadata for comparison display.
type AuditSummary struct {
	// EvaluatedAt is when the audit ran.
	EvaluatedAt time.Time `json:"data"`

	// Score is the overall accessibility score.
	Score int `json:"pontuacao"`

	// TotalIssues is the number of issues found.
	TotalIssues int `json:"total_problemas"`

	// SeverityCounts maps severity names to issue counts.
	SeverityCounts map[string]int `json:"problemas_por_severidade"`
}

// compareAudits compares two audits and generates a comparison result.
func compareAudits(previous, current *model.Report) *ComparisonResult {
	result := &ComparisonResult{
		URL:      current.URL,
		Previous: summarizeAudit(previous),
		Current:  summarizeAudit(current),
	}

	previousIssues := make(map[string]model.Issue, len(previous.Issues))
	for _, issue := range previous.Issues {
		previousIssues[issueKey(issue)] = issue
	}

	currentIssues := make(map[string]model.Issue, len(current.Issues))
	for _, issue := range current.Issues {
		currentIssues[issueKey(issue)] = issue
	}

	for key, issue := range currentIssues {
		if _, exists := previousIssues[key]; !exists {
			result.NewIssues = append(result.NewIssues, issue)
		}
	}

	for key, issue := range previousIssues {
		if _, exists := currentIssues[key]; !exists {
			result.ResolvedIssues = append(result.ResolvedIssues, issue)
		} else {
			result.UnchangedCount++
		}
	}

	result.ScoreDelta = current.Score - previous.Score
	switch {
	case result.ScoreDelta > 0:
		result.Direction = scoreDirectionImproved
	case result.ScoreDelta < 0:
		result.Direction = scoreDirectionWorsened
	default:
		result.Direction = scoreDirectionUnchanged
	}

	return result
}

// summarizeAudit extracts display metadata from a report.
func summarizeAudit(rep *model.Report) AuditSummary {
	return AuditSummary{
		EvaluatedAt:    rep.EvaluatedAt.Time(),
		Score:          rep.Score,
		TotalIssues:    rep.TotalIssues,
		SeverityCounts: rep.SeverityCounts,
	}
}

// issueKey generates a key identifying an issue across audits.
func issueKey(issue model.Issue) string {
	return issue.Criterion + "|" + issue.Description + "|" + issue.Page
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *ComparisonResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonText outputs the comparison result in human-readable
// text format.
func outputComparisonText(result *ComparisonResult) error {
	fmt.Printf("Comparação de auditorias: %s\n", result.URL)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\nSituação: %s\n", formatDirection(result.Direction))

	fmt.Printf("\nAuditoria anterior: %s\n", result.Previous.EvaluatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Auditoria atual:    %s\n", result.Current.EvaluatedAt.Format("2006-01-02 15:04:05"))

	fmt.Printf("\nPontuação: %d -> %d (%s)\n",
		result.Previous.Score, result.Current.Score, formatDelta(result.ScoreDelta))

	fmt.Println("\nResumo de problemas:")
	fmt.Printf("  %-10s  %-10s  %-10s  %-10s\n", "Severidade", "Anterior", "Atual", "Variação")
	fmt.Println("  " + strings.Repeat("-", 45))
	for _, severity := range []model.Severity{
		model.SeverityCritical,
		model.SeveritySerious,
		model.SeverityModerate,
		model.SeverityLow,
	} {
		name := severity.String()
		prev := result.Previous.SeverityCounts[name]
		curr := result.Current.SeverityCounts[name]
		fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", name, prev, curr, formatDelta(curr-prev))
	}
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Total",
		result.Previous.TotalIssues, result.Current.TotalIssues,
		formatDelta(result.Current.TotalIssues-result.Previous.TotalIssues))

	if len(result.NewIssues) > 0 {
		fmt.Printf("\nNovos problemas (%d):\n", len(result.NewIssues))
		for _, issue := range result.NewIssues {
			fmt.Printf("  [+] [%s] %s: %s\n", issue.SeverityName, issue.Criterion, issue.Description)
			if issue.Page != "" {
				fmt.Printf("      Página: %s\n", issue.Page)
			}
		}
	}

	if len(result.ResolvedIssues) > 0 {
		fmt.Printf("\nProblemas resolvidos (%d):\n", len(result.ResolvedIssues))
		for _, issue := range result.ResolvedIssues {
			fmt.Printf("  [-] [%s] %s: %s\n", issue.SeverityName, issue.Criterion, issue.Description)
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Printf("\nSem alteração: %d problemas\n", result.UnchangedCount)
	}

	return nil
}

// formatDirection formats the score direction for display.
func formatDirection(direction string) string {
	switch direction {
	case scoreDirectionImproved:
		return "MELHOROU (pontuação subiu)"
	case scoreDirectionWorsened:
		return "PIOROU (pontuação caiu)"
	default:
		return "ESTÁVEL"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}
