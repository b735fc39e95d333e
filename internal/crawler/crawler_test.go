package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// newTestSite serves a small site with a handful of interlinked pages.
func newTestSite(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	page := func(title, body string) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprintf(w, `<html><head><title>%s</title></head><body>%s</body></html>`, title, body)
		}
	}

	mux.HandleFunc("/", page("Home", `
		<a href="/about">About</a>
		<a href="/blog">Blog</a>
		<a href="/assets/logo.png">Logo</a>
		<a href="https://other.example.com/">Elsewhere</a>
		<a href="mailto:hi@example.com">Mail</a>
	`))
	mux.HandleFunc("/about", page("About", `<a href="/">Home</a><a href="/about#team">Team</a>`))
	mux.HandleFunc("/blog", page("Blog", `<a href="/blog/post-1">Post</a>`))
	mux.HandleFunc("/blog/post-1", page("Post 1", `<a href="/blog">Back</a>`))
	mux.HandleFunc("/admin/", page("Admin", ``))
	mux.HandleFunc("/broken", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// collectVisitor records visited pages, keyed by path.
type collectVisitor struct {
	mu    sync.Mutex
	pages map[string]*Page
}

func newCollectVisitor() *collectVisitor {
	return &collectVisitor{pages: make(map[string]*Page)}
}

func (v *collectVisitor) visit(_ context.Context, page *Page) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pages[page.Path] = page
	return nil
}

// TestCrawlVisitsSameHostPages tests the breadth-first crawl over a
// small site.
func TestCrawlVisitsSameHostPages(t *testing.T) {
	t.Parallel()

	server := newTestSite(t)
	visitor := newCollectVisitor()

	spider := NewSpider(server.Client(), WithDelay(0))
	if err := spider.Crawl(context.Background(), server.URL, visitor.visit); err != nil {
		t.Fatalf("crawl: %v", err)
	}

	for _, path := range []string{"/", "/about", "/blog", "/blog/post-1"} {
		if visitor.pages[path] == nil {
			t.Errorf("expected %s to be visited, got %d pages", path, len(visitor.pages))
		}
	}

	t.Run("asset and off-host links not fetched", func(t *testing.T) {
		t.Parallel()
		if len(visitor.pages) != 4 {
			t.Errorf("got %d pages, expected exactly 4", len(visitor.pages))
		}
	})

	t.Run("page fields populated", func(t *testing.T) {
		t.Parallel()
		home := visitor.pages["/"]
		if home.Title != "Home" {
			t.Errorf("got title %q", home.Title)
		}
		if home.StatusCode != http.StatusOK {
			t.Errorf("got status %d", home.StatusCode)
		}
		if !strings.Contains(string(home.Body), "About") {
			t.Error("body not captured")
		}
	})

	t.Run("stats reflect the crawl", func(t *testing.T) {
		t.Parallel()
		stats := spider.Stats()
		if stats.PagesVisited != 4 {
			t.Errorf("got %d pages visited, expected 4", stats.PagesVisited)
		}
	})
}

// TestCrawlMaxPages tests the page cap.
func TestCrawlMaxPages(t *testing.T) {
	t.Parallel()

	server := newTestSite(t)
	visitor := newCollectVisitor()

	spider := NewSpider(server.Client(), WithDelay(0), WithMaxPages(2), WithConcurrency(1))
	if err := spider.Crawl(context.Background(), server.URL, visitor.visit); err != nil {
		t.Fatalf("crawl: %v", err)
	}

	if len(visitor.pages) > 2 {
		t.Errorf("got %d pages, expected at most 2", len(visitor.pages))
	}
}

// TestCrawlIgnorePatterns tests glob-based skip lists.
func TestCrawlIgnorePatterns(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><a href="/keep">k</a><a href="/admin/panel">a</a></body></html>`)
	})
	mux.HandleFunc("/keep", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>kept</body></html>`)
	})
	mux.HandleFunc("/admin/panel", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>admin</body></html>`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	visitor := newCollectVisitor()
	spider := NewSpider(server.Client(), WithDelay(0), WithIgnorePatterns([]string{"/admin/*"}))
	if err := spider.Crawl(context.Background(), server.URL, visitor.visit); err != nil {
		t.Fatal(err)
	}

	if visitor.pages["/admin/panel"] != nil {
		t.Error("ignored path was fetched")
	}
	if visitor.pages["/keep"] == nil {
		t.Error("non-ignored path was not fetched")
	}
}

// TestCrawlFollowPatterns tests the allow-list mode.
func TestCrawlFollowPatterns(t *testing.T) {
	t.Parallel()

	server := newTestSite(t)
	visitor := newCollectVisitor()

	spider := NewSpider(server.Client(), WithDelay(0), WithFollowPatterns([]string{"/blog/*", "/blog"}))
	if err := spider.Crawl(context.Background(), server.URL, visitor.visit); err != nil {
		t.Fatal(err)
	}

	if visitor.pages["/about"] != nil {
		t.Error("path outside follow patterns was fetched")
	}
	if visitor.pages["/blog"] == nil || visitor.pages["/blog/post-1"] == nil {
		t.Errorf("followed paths missing, got %d pages", len(visitor.pages))
	}
}

// TestCrawlVisitorErrorAborts tests that a visitor error stops the crawl.
func TestCrawlVisitorErrorAborts(t *testing.T) {
	t.Parallel()

	server := newTestSite(t)
	boom := errors.New("boom")

	spider := NewSpider(server.Client(), WithDelay(0))
	err := spider.Crawl(context.Background(), server.URL, func(context.Context, *Page) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("got err %v, expected the visitor error", err)
	}
}

// TestCrawlSkipsFailedFetches tests that an error page is skipped
// without aborting the crawl.
func TestCrawlSkipsFailedFetches(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><a href="/broken">b</a><a href="/fine">f</a></body></html>`)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/fine", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>ok</body></html>`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	visitor := newCollectVisitor()
	spider := NewSpider(server.Client(), WithDelay(0))
	if err := spider.Crawl(context.Background(), server.URL, visitor.visit); err != nil {
		t.Fatal(err)
	}

	if visitor.pages["/broken"] != nil {
		t.Error("error page delivered to the visitor")
	}
	if visitor.pages["/fine"] == nil {
		t.Error("healthy page not visited")
	}
}

// TestCrawlSendsConfiguredHeaders tests cookie and header injection.
func TestCrawlSendsConfiguredHeaders(t *testing.T) {
	t.Parallel()

	var (
		mu     sync.Mutex
		cookie string
		custom string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		cookie = r.Header.Get("Cookie")
		custom = r.Header.Get("X-Preview")
		mu.Unlock()
		fmt.Fprint(w, `<html><body>ok</body></html>`)
	}))
	t.Cleanup(server.Close)

	spider := NewSpider(server.Client(),
		WithDelay(0),
		WithCookie("consent=yes"),
		WithHeaders(map[string]string{"X-Preview": "1"}),
	)
	if err := spider.Crawl(context.Background(), server.URL, func(context.Context, *Page) error {
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	mu.Lock()
	defer mu.Unlock()
	if cookie != "consent=yes" {
		t.Errorf("got cookie %q", cookie)
	}
	if custom != "1" {
		t.Errorf("got X-Preview %q", custom)
	}
}

// TestParserClassifiesLinks tests link extraction and classification.
func TestParserClassifiesLinks(t *testing.T) {
	t.Parallel()

	parser, err := NewParser("https://example.com/blog/")
	if err != nil {
		t.Fatal(err)
	}

	html := `<html><head><title>Links</title></head><body>
		<a href="post-1">Relative</a>
		<a href="/pricing">Absolute</a>
		<a href="https://example.com/contact#form">Fragment</a>
		<a href="https://www.example.com/docs">WWW</a>
		<a href="https://elsewhere.example.org/">External</a>
		<a href="/brochure.pdf">PDF</a>
		<a href="mailto:x@example.com">Mail</a>
		<a href="javascript:void(0)">JS</a>
		<a href="/pricing">Duplicate</a>
	</body></html>`

	result, err := parser.Parse(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	if result.Title != "Links" {
		t.Errorf("got title %q", result.Title)
	}

	wantInternal := []string{
		"https://example.com/blog/post-1",
		"https://example.com/pricing",
		"https://example.com/contact",
		"https://www.example.com/docs",
	}
	if len(result.InternalLinks) != len(wantInternal) {
		t.Fatalf("got internal links %v, expected %v", result.InternalLinks, wantInternal)
	}
	for i, want := range wantInternal {
		if result.InternalLinks[i] != want {
			t.Errorf("got internal links %v, expected %v", result.InternalLinks, wantInternal)
		}
	}

	if len(result.ExternalLinks) != 1 || result.ExternalLinks[0] != "https://elsewhere.example.org/" {
		t.Errorf("got external links %v", result.ExternalLinks)
	}
}

// TestMatchPattern tests the glob matcher.
func TestMatchPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/admin/*", "/admin/dashboard", true},
		{"/admin/*", "/admin", true},
		{"/admin/*", "/administrator", false},
		{"*.pdf", "/docs/file.pdf", true},
		{"*.pdf", "/docs/file.html", false},
		{"/api/v?", "/api/v1", true},
		{"/api/v?", "/api/v10", false},
		{"/logout*", "/logout-confirm", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" vs "+tt.path, func(t *testing.T) {
			t.Parallel()
			if got := matchPattern(tt.pattern, tt.path); got != tt.want {
				t.Errorf("matchPattern(%q, %q) = %v, expected %v", tt.pattern, tt.path, got, tt.want)
			}
		})
	}
}
