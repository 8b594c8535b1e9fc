package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/acessolab/a11yscan/internal/config"
	"github.com/acessolab/a11yscan/internal/database"
	"github.com/acessolab/a11yscan/internal/fetch"
	"github.com/acessolab/a11yscan/internal/log"
	"github.com/acessolab/a11yscan/internal/model"
	"github.com/acessolab/a11yscan/internal/pipeline"
	"github.com/acessolab/a11yscan/internal/report"
	"github.com/spf13/cobra"
)

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [url]",
		Short: "Evaluate the accessibility of one or more websites",
		Long: `Audit evaluates websites against WCAG 2.2 and ABNT NBR 17225:2025.

It fetches each page, runs automated checks covering text alternatives,
structure, contrast, keyboard access, forms, media, links, tables, and
ARIA usage, then prints a scored report.

Examples:
  # Evaluate a single page
  a11yscan audit https://example.com

  # Evaluate multiple sites
  a11yscan audit https://site1.com https://site2.com

  # Crawl up to depth 2 and evaluate every page found
  a11yscan audit --depth 2 https://example.com

  # Export the report as JSON to a file
  a11yscan audit --json -o relatorio.json https://example.com

  # Use a custom configuration file
  a11yscan audit -c myconfig.yaml https://example.com

Configuration file (.a11yscan) example:
  sites:
    intranet.example.com:
      cookie: "sessao=abc123"
      headers:
        Authorization: "Bearer token"
      depth: 2`,
		Args: cobra.ArbitraryArgs,
		RunE: runAuditCmd,
	}

	// Evaluation behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each request")
	cmd.Flags().IntP("depth", "d", config.DefaultCrawlDepth,
		"Maximum crawl recursion depth (0 evaluates only the given URL)")
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of pages to evaluate per site")
	cmd.Flags().DurationP("delay", "w", config.DefaultCrawlDelay,
		"Delay between requests while crawling")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .a11yscan in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-save", false,
		"Do not record audits in the history database")

	return cmd
}

// runAuditCmd executes the audit command.
func runAuditCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	verbose := getVerboseFlag(cmd)
	cfg.Verbose = verbose
	logger := log.NewSecureLogger(os.Stderr, verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAudit(ctx, cfg, logger)
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.CrawlDepth, err = cmd.Flags().GetInt("depth")
	if err != nil {
		return nil, err
	}

	cfg.MaxPages, err = cmd.Flags().GetInt("max-pages")
	if err != nil {
		return nil, err
	}

	cfg.CrawlDelay, err = cmd.Flags().GetDuration("delay")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load site-specific configurations from config file.
	// If the user explicitly specified a config file path, error if not
	// found. If no path was specified, silently use an empty config.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.SiteConfigs = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave
	cfg.DBDir = config.XDGDataDir()

	// Positional arguments are the URLs to evaluate
	cfg.Targets = args

	return cfg, nil
}

// runAudit evaluates each target sequentially.
func runAudit(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting audit",
		"targets", cfg.Targets,
		"depth", cfg.CrawlDepth,
		"saveToDB", cfg.SaveToDB,
	)

	// Validate and normalize all target URLs before doing any work
	for i, target := range cfg.Targets {
		normalized, err := fetch.NormalizeURL(target)
		if err != nil {
			return fmt.Errorf("invalid URL %q: %w", target, err)
		}
		cfg.Targets[i] = normalized
	}

	var db *database.AuditDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	for _, target := range cfg.Targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p := pipeline.DefaultPipeline(cfg, target, pipeline.WithLogger(logger))

		rep := model.NewReport(target)

		fmt.Printf("Avaliando %s...\n", target)
		startTime := time.Now()

		if err := p.Execute(ctx, rep); err != nil {
			logger.Error("audit failed", "target", target, "error", err)
			fmt.Fprintf(os.Stderr, "Erro ao avaliar %s: %v\n", target, err)
			continue
		}

		elapsed := time.Since(startTime)
		fmt.Printf("Avaliação concluída em %s\n", elapsed.Round(time.Millisecond))

		if err := outputReport(cfg, rep); err != nil {
			logger.Error("report failed", "target", target, "error", err)
		}

		if err := saveAudit(ctx, db, rep, logger); err != nil {
			logger.Error("failed to save audit", "target", target, "error", err)
		}
	}

	return nil
}

// outputReport writes the report in the requested format.
func outputReport(cfg *config.Config, rep *model.Report) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// 0600 because reports can reveal internal URLs and page content
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	default:
		w = report.NewConsoleWriter(output)
	}

	_, err := w.Write(rep)
	return err
}

// saveAudit records the audit in the history database. If db is nil,
// this function is a no-op.
func saveAudit(ctx context.Context, db *database.AuditDB, rep *model.Report, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	if err := db.SaveAudit(ctx, rep); err != nil {
		return fmt.Errorf("failed to save audit: %w", err)
	}

	logger.Info("audit saved to database", "url", rep.URL)
	return nil
}
