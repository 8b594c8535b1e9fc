package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/acessolab/a11yscan/internal/fetch"
	"github.com/acessolab/a11yscan/internal/model"
)

// testSite serves a small linked site for crawl tests.
func testSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `<html lang="pt-BR"><head><title>Home</title></head><body>
<a href="/sobre">Sobre</a>
<a href="/contato">Contato</a>
<a href="/admin/painel">Admin</a>
<a href="/sobre">Sobre de novo</a>
</body></html>`)
	})
	mux.HandleFunc("/sobre", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html lang="pt-BR"><head><title>Sobre</title></head><body>
<a href="/equipe">Equipe</a>
</body></html>`)
	})
	mux.HandleFunc("/contato", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html lang="pt-BR"><head><title>Contato</title></head><body></body></html>`)
	})
	mux.HandleFunc("/equipe", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html lang="pt-BR"><head><title>Equipe</title></head><body></body></html>`)
	})
	mux.HandleFunc("/admin/painel", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>Admin</title></head><body></body></html>`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSpiderCrawl(t *testing.T) {
	t.Parallel()

	t.Run("depth zero fetches only the start page", func(t *testing.T) {
		t.Parallel()
		srv := testSite(t)
		s := NewSpider(fetch.NewFetcher(), WithMaxDepth(0), WithDelay(0))
		pages, err := s.Crawl(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("Crawl() error = %v", err)
		}
		if len(pages) != 1 {
			t.Fatalf("len(pages) = %d, want 1", len(pages))
		}
		if pages[0].Title != "Home" {
			t.Errorf("pages[0].Title = %q", pages[0].Title)
		}
	})

	t.Run("depth one follows direct links once", func(t *testing.T) {
		t.Parallel()
		srv := testSite(t)
		s := NewSpider(fetch.NewFetcher(), WithMaxDepth(1), WithDelay(0))
		pages, err := s.Crawl(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("Crawl() error = %v", err)
		}
		// Home plus sobre, contato, admin; equipe is at depth 2.
		if len(pages) != 4 {
			t.Fatalf("len(pages) = %d, want 4: %v", len(pages), pageTitles(pages))
		}
		for _, p := range pages {
			if p.Title == "Equipe" {
				t.Error("depth 1 crawl should not reach /equipe")
			}
		}
	})

	t.Run("deduplicates repeated links", func(t *testing.T) {
		t.Parallel()
		srv := testSite(t)
		s := NewSpider(fetch.NewFetcher(), WithMaxDepth(2), WithDelay(0))
		pages, err := s.Crawl(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("Crawl() error = %v", err)
		}
		seen := map[string]int{}
		for _, p := range pages {
			seen[p.URL]++
		}
		for url, count := range seen {
			if count > 1 {
				t.Errorf("URL %q crawled %d times", url, count)
			}
		}
	})

	t.Run("max pages caps the crawl", func(t *testing.T) {
		t.Parallel()
		srv := testSite(t)
		s := NewSpider(fetch.NewFetcher(), WithMaxDepth(3), WithMaxPages(2), WithDelay(0))
		pages, err := s.Crawl(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("Crawl() error = %v", err)
		}
		if len(pages) != 2 {
			t.Errorf("len(pages) = %d, want 2", len(pages))
		}
	})

	t.Run("ignore patterns skip subtrees", func(t *testing.T) {
		t.Parallel()
		srv := testSite(t)
		s := NewSpider(fetch.NewFetcher(),
			WithMaxDepth(2), WithDelay(0),
			WithIgnorePatterns([]string{"/admin/*"}))
		pages, err := s.Crawl(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("Crawl() error = %v", err)
		}
		for _, p := range pages {
			if p.Title == "Admin" {
				t.Error("ignore pattern /admin/* should skip the admin page")
			}
		}
	})

	t.Run("follow patterns restrict the crawl", func(t *testing.T) {
		t.Parallel()
		srv := testSite(t)
		s := NewSpider(fetch.NewFetcher(),
			WithMaxDepth(2), WithDelay(0),
			WithFollowPatterns([]string{"/sobre", "/equipe"}))
		pages, err := s.Crawl(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("Crawl() error = %v", err)
		}
		for _, p := range pages[1:] {
			if p.Title != "Sobre" && p.Title != "Equipe" {
				t.Errorf("unexpected page %q crawled", p.Title)
			}
		}
	})

	t.Run("invalid start URL fails", func(t *testing.T) {
		t.Parallel()
		s := NewSpider(fetch.NewFetcher(), WithDelay(0))
		if _, err := s.Crawl(context.Background(), "ftp://x"); err == nil {
			t.Error("Crawl() expected error for invalid start URL")
		}
	})

	t.Run("unreachable start URL fails", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		s := NewSpider(fetch.NewFetcher(), WithDelay(0))
		_, err := s.Crawl(context.Background(), srv.URL)
		if !errors.Is(err, fetch.ErrRequestFailed) {
			t.Errorf("error = %v, want ErrRequestFailed", err)
		}
	})

	t.Run("canceled context stops the crawl", func(t *testing.T) {
		t.Parallel()
		srv := testSite(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s := NewSpider(fetch.NewFetcher(), WithDelay(0))
		_, err := s.Crawl(ctx, srv.URL)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestNormalizeURLDedup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    string
		b    string
		same bool
	}{
		{name: "fragment ignored", a: "https://ex.com/p#x", b: "https://ex.com/p", same: true},
		{name: "root slash equivalence", a: "https://ex.com", b: "https://ex.com/", same: true},
		{name: "host case insensitive", a: "https://EX.com/p", b: "https://ex.com/p", same: true},
		{name: "different paths differ", a: "https://ex.com/a", b: "https://ex.com/b", same: false},
		{name: "query matters", a: "https://ex.com/p?x=1", b: "https://ex.com/p", same: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := normalizeURL(tt.a) == normalizeURL(tt.b)
			if got != tt.same {
				t.Errorf("normalizeURL equality = %v, want %v", got, tt.same)
			}
		})
	}
}

func TestMatchPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		{name: "subtree glob", pattern: "/admin/*", path: "/admin/painel", want: true},
		{name: "subtree root", pattern: "/admin/*", path: "/admin", want: true},
		{name: "subtree miss", pattern: "/admin/*", path: "/blog", want: false},
		{name: "extension", pattern: "*.pdf", path: "/docs/manual.pdf", want: true},
		{name: "extension miss", pattern: "*.pdf", path: "/docs/manual.html", want: false},
		{name: "single char", pattern: "/api/v?", path: "/api/v2", want: true},
		{name: "exact", pattern: "/sobre", path: "/sobre", want: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := matchPattern(tt.pattern, tt.path); got != tt.want {
				t.Errorf("matchPattern(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
			}
		})
	}
}

// pageTitles lists page titles for failure messages.
func pageTitles(pages []*model.Page) []string {
	out := make([]string, 0, len(pages))
	for _, p := range pages {
		out = append(out, p.Title)
	}
	return out
}
