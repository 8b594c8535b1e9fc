package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/acessolab/a11yscan/internal/config"
	"github.com/acessolab/a11yscan/internal/model"
)

// TestNewAuditCmd tests the audit command creation.
func TestNewAuditCmd(t *testing.T) {
	t.Parallel()

	cmd := NewAuditCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "audit [url]" {
			t.Errorf("expected use 'audit [url]', got %q", cmd.Use)
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()

		flags := []struct {
			name      string
			shorthand string
		}{
			{name: "timeout", shorthand: "t"},
			{name: "depth", shorthand: "d"},
			{name: "max-pages", shorthand: "p"},
			{name: "delay", shorthand: "w"},
			{name: "config", shorthand: "c"},
			{name: "json", shorthand: "j"},
			{name: "markdown", shorthand: "m"},
			{name: "output", shorthand: "o"},
			{name: "no-save", shorthand: ""},
		}

		for _, f := range flags {
			flag := cmd.Flags().Lookup(f.name)
			if flag == nil {
				t.Errorf("expected %s flag", f.name)
				continue
			}
			if flag.Shorthand != f.shorthand {
				t.Errorf("flag %s: expected shorthand %q, got %q", f.name, f.shorthand, flag.Shorthand)
			}
		}
	})
}

// TestBuildConfig tests building a Config from command flags.
func TestBuildConfig(t *testing.T) {
	t.Run("uses defaults", func(t *testing.T) {
		cmd := NewAuditCmd()

		cfg, err := buildConfig(cmd, []string{"https://example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Timeout != config.DefaultTimeout {
			t.Errorf("expected default timeout, got %v", cfg.Timeout)
		}
		if cfg.CrawlDepth != config.DefaultCrawlDepth {
			t.Errorf("expected default depth, got %d", cfg.CrawlDepth)
		}
		if cfg.MaxPages != config.DefaultMaxPages {
			t.Errorf("expected default max pages, got %d", cfg.MaxPages)
		}
		if !cfg.SaveToDB {
			t.Error("expected SaveToDB to default to true")
		}
		if len(cfg.Targets) != 1 || cfg.Targets[0] != "https://example.com" {
			t.Errorf("expected single target, got %v", cfg.Targets)
		}
	})

	t.Run("applies flag values", func(t *testing.T) {
		cmd := NewAuditCmd()
		for flag, value := range map[string]string{
			"timeout":   "5s",
			"depth":     "2",
			"max-pages": "7",
			"json":      "true",
			"output":    "out.json",
			"no-save":   "true",
		} {
			if err := cmd.Flags().Set(flag, value); err != nil {
				t.Fatalf("failed to set flag %s: %v", flag, err)
			}
		}

		cfg, err := buildConfig(cmd, []string{"https://example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Timeout != 5*time.Second {
			t.Errorf("expected timeout 5s, got %v", cfg.Timeout)
		}
		if cfg.CrawlDepth != 2 {
			t.Errorf("expected depth 2, got %d", cfg.CrawlDepth)
		}
		if cfg.MaxPages != 7 {
			t.Errorf("expected max pages 7, got %d", cfg.MaxPages)
		}
		if !cfg.JSONReport {
			t.Error("expected JSONReport to be true")
		}
		if cfg.ReportFile != "out.json" {
			t.Errorf("expected report file 'out.json', got %q", cfg.ReportFile)
		}
		if cfg.SaveToDB {
			t.Error("expected SaveToDB to be false with --no-save")
		}
	})

	t.Run("loads explicit config file", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "site.yaml")
		content := []byte("sites:\n  intranet.example.com:\n    depth: 3\n")
		if err := os.WriteFile(configPath, content, 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewAuditCmd()
		if err := cmd.Flags().Set("config", configPath); err != nil {
			t.Fatalf("failed to set config flag: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"https://intranet.example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		site, ok := cfg.SiteConfigs.Sites["intranet.example.com"]
		if !ok {
			t.Fatal("expected site config for intranet.example.com")
		}
		if site.Depth != 3 {
			t.Errorf("expected depth 3, got %d", site.Depth)
		}
	})

	t.Run("errors on missing explicit config file", func(t *testing.T) {
		cmd := NewAuditCmd()
		missing := filepath.Join(t.TempDir(), "nope.yaml")
		if err := cmd.Flags().Set("config", missing); err != nil {
			t.Fatalf("failed to set config flag: %v", err)
		}

		if _, err := buildConfig(cmd, []string{"https://example.com"}); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}

// TestOutputReport tests writing the report to a file.
func TestOutputReport(t *testing.T) {
	t.Parallel()

	rep := model.NewReport("https://example.com")
	rep.AddIssue(model.NewIssue(
		"1.1.1 - Alternativas em Texto",
		"Imagem sem atributo alt: banner.png",
		model.SeverityCritical,
	))
	rep.AddPage("https://example.com")
	rep.Finalize()

	t.Run("writes JSON report to file", func(t *testing.T) {
		t.Parallel()

		reportFile := filepath.Join(t.TempDir(), "sub", "relatorio.json")
		cfg := config.NewConfig()
		cfg.JSONReport = true
		cfg.ReportFile = reportFile

		if err := outputReport(cfg, rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(reportFile)
		if err != nil {
			t.Fatalf("failed to read report file: %v", err)
		}
		if !strings.Contains(string(content), "pontuacao_geral") {
			t.Error("expected JSON report to contain the overall score")
		}
	})

	t.Run("writes Markdown report to file", func(t *testing.T) {
		t.Parallel()

		reportFile := filepath.Join(t.TempDir(), "relatorio.md")
		cfg := config.NewConfig()
		cfg.MarkdownReport = true
		cfg.ReportFile = reportFile

		if err := outputReport(cfg, rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(reportFile)
		if err != nil {
			t.Fatalf("failed to read report file: %v", err)
		}
		if !strings.Contains(string(content), "# Relatório de Acessibilidade") {
			t.Error("expected Markdown report heading")
		}
	})
}
