package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/acessolab/a11yscan/internal/config"
	"github.com/acessolab/a11yscan/internal/fetch"
	"github.com/acessolab/a11yscan/internal/model"
)

// testSite serves a tiny two-page site with known accessibility problems.
func testSite(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
  <title>Página Inicial</title>
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body>
  <header><a href="#conteudo">Pular para conteúdo</a><nav><a href="/sobre">Sobre</a></nav></header>
  <main id="conteudo">
    <h1>Bem-vindo</h1>
    <img src="banner.png">
  </main>
  <footer></footer>
</body>
</html>`))
	})
	mux.HandleFunc("/sobre", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
  <title>Sobre Nós</title>
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body>
  <header><a href="#conteudo">Pular para conteúdo</a><nav></nav></header>
  <main id="conteudo"><h1>Sobre</h1></main>
  <footer></footer>
</body>
</html>`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchStep(t *testing.T) {
	t.Parallel()

	t.Run("collects the root page", func(t *testing.T) {
		t.Parallel()
		srv := testSite(t)

		step := NewFetchStep(fetch.NewFetcher())
		report := model.NewReport(srv.URL)

		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("Do() error = %v", err)
		}
		if len(report.Pages) != 1 {
			t.Fatalf("Pages = %d, want 1", len(report.Pages))
		}
		if report.Pages[0].Title != "Página Inicial" {
			t.Errorf("Title = %q", report.Pages[0].Title)
		}
		if len(report.PagesEvaluated) != 1 {
			t.Errorf("PagesEvaluated = %v", report.PagesEvaluated)
		}
	})

	t.Run("unreachable target fails", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		step := NewFetchStep(fetch.NewFetcher())
		if err := step.Do(context.Background(), model.NewReport(srv.URL)); err == nil {
			t.Error("Do() expected error for closed server")
		}
	})

	t.Run("invalid URL fails", func(t *testing.T) {
		t.Parallel()
		step := NewFetchStep(fetch.NewFetcher())
		if err := step.Do(context.Background(), model.NewReport("::bogus::")); err == nil {
			t.Error("Do() expected error for invalid URL")
		}
	})
}

func TestCrawlStep(t *testing.T) {
	t.Parallel()

	srv := testSite(t)

	step := NewCrawlStep(fetch.NewFetcher(),
		WithCrawlMaxDepth(1),
		WithCrawlMaxPages(10),
		WithCrawlDelay(0),
	)
	report := model.NewReport(srv.URL)

	if err := step.Do(context.Background(), report); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if len(report.Pages) != 2 {
		t.Fatalf("Pages = %d, want 2", len(report.Pages))
	}
	if len(report.PagesEvaluated) != 2 {
		t.Errorf("PagesEvaluated = %v", report.PagesEvaluated)
	}
}

func TestAnalyzeStep(t *testing.T) {
	t.Parallel()

	t.Run("fills the report", func(t *testing.T) {
		t.Parallel()
		srv := testSite(t)

		report := model.NewReport(srv.URL)
		fetchStep := NewFetchStep(fetch.NewFetcher())
		if err := fetchStep.Do(context.Background(), report); err != nil {
			t.Fatalf("fetch: %v", err)
		}

		if err := NewAnalyzeStep().Do(context.Background(), report); err != nil {
			t.Fatalf("Do() error = %v", err)
		}

		// The root page has one image without alt.
		if report.CountBySeverity(model.SeverityCritical) == 0 {
			t.Errorf("expected a critical issue, got %+v", report.Issues)
		}
		if report.Score >= 100 {
			t.Errorf("Score = %d, want < 100", report.Score)
		}
		if len(report.PerformedChecks) == 0 {
			t.Error("PerformedChecks should list the executed checks")
		}
		if len(report.Recommendations) == 0 {
			t.Error("Recommendations should not be empty")
		}
	})

	t.Run("no pages is a no-op", func(t *testing.T) {
		t.Parallel()
		report := model.NewReport("https://example.com")
		if err := NewAnalyzeStep().Do(context.Background(), report); err != nil {
			t.Fatalf("Do() error = %v", err)
		}
		if len(report.PerformedChecks) != 0 {
			t.Errorf("PerformedChecks = %v, want none", report.PerformedChecks)
		}
	})
}

func TestDefaultPipeline(t *testing.T) {
	t.Parallel()

	t.Run("single page evaluation", func(t *testing.T) {
		t.Parallel()
		srv := testSite(t)

		cfg := config.NewConfig()
		cfg.Targets = []string{srv.URL}
		cfg.CrawlDelay = 0

		p := DefaultPipeline(cfg, srv.URL)
		if got := p.StepNames(); len(got) != 2 || got[0] != "fetch" || got[1] != "analyze" {
			t.Fatalf("StepNames() = %v", got)
		}

		report := model.NewReport(srv.URL)
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if report.TotalIssues == 0 {
			t.Error("expected issues on the test site")
		}
	})

	t.Run("depth switches to crawling", func(t *testing.T) {
		t.Parallel()
		srv := testSite(t)

		cfg := config.NewConfig()
		cfg.Targets = []string{srv.URL}
		cfg.CrawlDepth = 1
		cfg.CrawlDelay = 0

		p := DefaultPipeline(cfg, srv.URL)
		if got := p.StepNames(); len(got) != 2 || got[0] != "crawl" {
			t.Fatalf("StepNames() = %v", got)
		}

		report := model.NewReport(srv.URL)
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if len(report.PagesEvaluated) != 2 {
			t.Errorf("PagesEvaluated = %v, want 2 pages", report.PagesEvaluated)
		}
	})

	t.Run("site config overrides depth", func(t *testing.T) {
		t.Parallel()
		srv := testSite(t)

		cfg := config.NewConfig()
		cfg.Targets = []string{srv.URL}
		cfg.CrawlDelay = 0
		cfg.SiteConfigs = &config.File{
			Sites: map[string]config.SiteConfig{
				"127.0.0.1": {Depth: 1},
			},
		}

		p := DefaultPipeline(cfg, srv.URL)
		if got := p.StepNames(); got[0] != "crawl" {
			t.Fatalf("StepNames() = %v, want crawl first", got)
		}
	})

	t.Run("failed fetch records the error", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		cfg := config.NewConfig()
		cfg.Targets = []string{srv.URL}

		report := model.NewReport(srv.URL)
		err := DefaultPipeline(cfg, srv.URL).Execute(context.Background(), report)
		if err == nil {
			t.Fatal("Execute() expected error")
		}
		if report.Error == "" {
			t.Error("report.Error should record the failure")
		}
	})
}
