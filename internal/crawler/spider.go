package crawler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Page is one fetched page handed to the crawl visitor.
type Page struct {
	// URL is the absolute URL the page was fetched from.
	URL string

	// Path is the URL path, "/" for the root.
	Path string

	// Title is the page title extracted during link parsing.
	Title string

	// StatusCode is the HTTP response status.
	StatusCode int

	// ContentType is the response Content-Type header.
	ContentType string

	// Body is the response body, capped at the configured size.
	Body []byte
}

// Visitor is called once per successfully fetched page. Returning an
// error aborts the crawl.
type Visitor func(ctx context.Context, page *Page) error

// Spider crawls the pages of one site.
// It manages a queue of URLs to visit and respects page and rate limits.
//
// Design decision: We call it "Spider" rather than "Crawler" because:
//  1. "Spider" is the traditional term for web crawlers
//  2. Distinguishes the component from the package name
//  3. Clearer in code: crawler.NewSpider() vs crawler.NewCrawler()
type Spider struct {
	// client is the HTTP client used for fetches.
	client *http.Client

	// maxPages limits the total number of pages to crawl.
	// This prevents runaway crawling on large sites.
	maxPages int

	// concurrency bounds the number of in-flight fetches.
	concurrency int

	// delay is the per-worker pause after each request.
	// This is a politeness setting to avoid overwhelming servers.
	delay time.Duration

	// userAgent is the User-Agent header to use.
	userAgent string

	// cookie is an optional Cookie header sent with every request.
	cookie string

	// headers are optional extra headers sent with every request.
	headers map[string]string

	// maxBodySize limits the size of response bodies to read.
	maxBodySize int64

	// ignorePatterns are URL path patterns to skip during crawling.
	// Patterns use glob syntax (e.g., "/admin/*", "*.pdf").
	ignorePatterns []string

	// followPatterns are URL path patterns to follow during crawling.
	// If set, only URLs matching these patterns are crawled.
	// Empty means all URLs are allowed (subject to ignorePatterns).
	followPatterns []string

	// logger for structured logging.
	logger *slog.Logger

	// mutex protects visited and pageCount.
	mutex sync.Mutex

	// visited tracks URLs already visited to avoid duplicates.
	visited map[string]bool

	// pageCount tracks pages crawled.
	pageCount int
}

// SpiderOption configures a Spider.
type SpiderOption func(*Spider)

// WithMaxPages sets the maximum number of pages to crawl.
func WithMaxPages(maxPages int) SpiderOption {
	return func(s *Spider) {
		s.maxPages = maxPages
	}
}

// WithConcurrency sets the number of concurrent fetches.
func WithConcurrency(n int) SpiderOption {
	return func(s *Spider) {
		s.concurrency = n
	}
}

// WithDelay sets the per-worker delay after each request.
func WithDelay(d time.Duration) SpiderOption {
	return func(s *Spider) {
		s.delay = d
	}
}

// WithSpiderUserAgent sets a custom User-Agent header.
func WithSpiderUserAgent(ua string) SpiderOption {
	return func(s *Spider) {
		s.userAgent = ua
	}
}

// WithCookie sets a Cookie header sent with every request, for pages
// behind a consent wall or preview login.
func WithCookie(cookie string) SpiderOption {
	return func(s *Spider) {
		s.cookie = cookie
	}
}

// WithHeaders sets extra headers sent with every request.
func WithHeaders(headers map[string]string) SpiderOption {
	return func(s *Spider) {
		s.headers = headers
	}
}

// WithSpiderMaxBodySize sets the maximum response body size.
func WithSpiderMaxBodySize(size int64) SpiderOption {
	return func(s *Spider) {
		s.maxBodySize = size
	}
}

// WithIgnorePatterns sets URL path patterns to skip during crawling.
// Patterns use glob syntax (e.g., "/admin/*", "*.pdf", "/logout*").
// URLs matching any of these patterns will not be crawled.
func WithIgnorePatterns(patterns []string) SpiderOption {
	return func(s *Spider) {
		s.ignorePatterns = patterns
	}
}

// WithFollowPatterns sets URL path patterns to follow during crawling.
// Patterns use glob syntax (e.g., "/docs/*", "/blog/*").
// If set, only URLs matching at least one pattern are crawled; the
// start URL is always fetched.
func WithFollowPatterns(patterns []string) SpiderOption {
	return func(s *Spider) {
		s.followPatterns = patterns
	}
}

// WithSpiderLogger sets a custom logger.
func WithSpiderLogger(logger *slog.Logger) SpiderOption {
	return func(s *Spider) {
		s.logger = logger
	}
}

// NewSpider creates a new Spider with the given HTTP client.
//
// Design decision: We require an external client because:
//  1. Timeout and transport policy belong to the caller
//  2. Allows for different configurations in tests
func NewSpider(client *http.Client, opts ...SpiderOption) *Spider {
	s := &Spider{
		client:      client,
		maxPages:    50,
		concurrency: 4,
		delay:       500 * time.Millisecond,
		userAgent:   "DesignLens/1.0 (+https://github.com/designlens/designlens)",
		maxBodySize: 5 * 1024 * 1024, // 5MB
		visited:     make(map[string]bool),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.concurrency < 1 {
		s.concurrency = 1
	}

	return s
}

// Crawl fetches pages breadth-first from startURL, calling visit once
// per fetched page. Pages are fetched in concurrent waves; a wave's
// links form the next wave. Fetch failures are logged and skipped, so
// one broken page never costs the rest of the site. A visitor error
// aborts the crawl.
func (s *Spider) Crawl(ctx context.Context, startURL string, visit Visitor) error {
	start, err := url.Parse(startURL)
	if err != nil {
		return fmt.Errorf("invalid start URL: %w", err)
	}
	if start.Scheme != "http" && start.Scheme != "https" {
		start.Scheme = "https"
	}

	frontier := []string{start.String()}

	for len(frontier) > 0 {
		var (
			linkMu sync.Mutex
			next   []string
		)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.concurrency)

		for _, pageURL := range frontier {
			if !s.claim(pageURL) {
				continue
			}

			g.Go(func() error {
				page, links, err := s.fetchPage(gctx, pageURL)
				if err != nil {
					s.logger.Warn("fetch failed", "url", pageURL, "error", err)
					s.unclaim(pageURL)
					return nil
				}

				if err := visit(gctx, page); err != nil {
					return err
				}

				linkMu.Lock()
				next = append(next, links...)
				linkMu.Unlock()

				// Politeness pause before this worker picks up more work.
				if s.delay > 0 {
					select {
					case <-gctx.Done():
						return gctx.Err()
					case <-time.After(s.delay):
					}
				}
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}

		frontier = s.nextFrontier(start.Host, next)
	}

	return nil
}

// claim atomically marks a URL visited and reserves a page slot.
// It returns false when the URL was already visited or the cap is hit.
func (s *Spider) claim(pageURL string) bool {
	key := s.normalizeURL(pageURL)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.visited[key] || s.pageCount >= s.maxPages {
		return false
	}
	s.visited[key] = true
	s.pageCount++
	return true
}

// unclaim releases the page slot of a failed fetch. The URL stays
// visited so it is not retried.
func (s *Spider) unclaim(string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.pageCount--
}

// nextFrontier filters the discovered links down to crawlable same-host
// URLs that have not been visited yet.
func (s *Spider) nextFrontier(baseHost string, links []string) []string {
	var frontier []string
	seen := make(map[string]bool)

	s.mutex.Lock()
	remaining := s.maxPages - s.pageCount
	s.mutex.Unlock()

	for _, link := range links {
		if len(frontier) >= remaining {
			break
		}
		key := s.normalizeURL(link)
		if seen[key] {
			continue
		}
		seen[key] = true

		if !s.isSameSite(baseHost, link) || !s.shouldCrawl(link) {
			continue
		}
		s.mutex.Lock()
		visited := s.visited[key]
		s.mutex.Unlock()
		if visited {
			continue
		}
		frontier = append(frontier, link)
	}
	return frontier
}

// fetchPage fetches a single page and extracts its links.
func (s *Spider) fetchPage(ctx context.Context, pageURL string) (*Page, []string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	if s.cookie != "" {
		req.Header.Set("Cookie", s.cookie)
	}
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // response body

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodySize))
	if err != nil {
		return nil, nil, err
	}

	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, nil, err
	}
	path := u.Path
	if path == "" {
		path = "/"
	}

	page := &Page{
		URL:         pageURL,
		Path:        path,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}

	// Extract links if HTML
	var links []string
	contentType := page.ContentType
	if contentType == "" || strings.Contains(contentType, "text/html") {
		parser, err := NewParser(pageURL)
		if err == nil {
			result, err := parser.Parse(bytes.NewReader(body))
			if err == nil {
				page.Title = result.Title
				links = result.InternalLinks
			}
		}
	}

	return page, links, nil
}

// normalizeURL normalizes a URL for deduplication.
//
// Design decision: We normalize URLs because:
//  1. Same page can have different URL representations
//  2. Fragment (#anchor) doesn't change content
//  3. The empty path and "/" are the same page
func (s *Spider) normalizeURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}

	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
	}

	return u.String()
}

// isSameSite checks if a URL belongs to the site being crawled.
//
// Design decision: We only crawl the same host because an audit is
// scoped to one design system; off-host links say nothing about it.
func (s *Spider) isSameSite(baseHost, targetURL string) bool {
	u, err := url.Parse(targetURL)
	if err != nil {
		return false
	}
	return stripWWW(u.Host) == stripWWW(baseHost)
}

// Reset clears the spider's state, allowing it to be reused.
func (s *Spider) Reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.visited = make(map[string]bool)
	s.pageCount = 0
}

// Stats returns current crawl statistics.
func (s *Spider) Stats() SpiderStats {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return SpiderStats{
		PagesVisited: s.pageCount,
		URLsSeen:     len(s.visited),
	}
}

// SpiderStats contains crawl statistics.
type SpiderStats struct {
	// PagesVisited is the number of pages successfully crawled.
	PagesVisited int

	// URLsSeen is the number of unique URLs encountered.
	URLsSeen int
}

// shouldCrawl checks if a URL should be crawled based on ignore/follow patterns.
//
// Logic:
//  1. If URL matches any ignorePattern, skip it (return false)
//  2. If followPatterns is set and URL matches none, skip it (return false)
//  3. Otherwise, crawl it (return true)
func (s *Spider) shouldCrawl(targetURL string) bool {
	u, err := url.Parse(targetURL)
	if err != nil {
		return false
	}

	path := u.Path
	if path == "" {
		path = "/"
	}

	for _, pattern := range s.ignorePatterns {
		if matchPattern(pattern, path) {
			return false
		}
	}

	if len(s.followPatterns) > 0 {
		for _, pattern := range s.followPatterns {
			if matchPattern(pattern, path) {
				return true
			}
		}
		return false
	}

	return true
}

// matchPattern checks if a path matches a glob pattern.
// Patterns can use:
//   - * to match any sequence of non-separator characters
//   - ? to match any single character
//
// Examples:
//   - "/admin/*" matches "/admin/dashboard", "/admin/users"
//   - "*.pdf" matches "/docs/file.pdf"
//   - "/api/v?" matches "/api/v1", "/api/v2"
func matchPattern(pattern, path string) bool {
	// For patterns like "/admin/*", match "/admin" and anything below it.
	if strings.HasSuffix(pattern, "/*") {
		prefix := strings.TrimSuffix(pattern, "/*")
		if strings.HasPrefix(path, prefix+"/") || path == prefix {
			return true
		}
	}

	// Handle extension patterns like "*.pdf"
	if strings.HasPrefix(pattern, "*.") {
		ext := strings.TrimPrefix(pattern, "*")
		if strings.HasSuffix(path, ext) {
			return true
		}
	}

	// filepath.Match handles * and ? for single-segment patterns.
	matched, err := filepath.Match(pattern, path)
	if err != nil {
		return false
	}
	if matched {
		return true
	}

	// Also try matching just the filename for patterns like "*.pdf"
	if strings.Contains(pattern, "*") && !strings.Contains(pattern, "/") {
		matched, err := filepath.Match(pattern, filepath.Base(path))
		if err == nil && matched {
			return true
		}
	}

	return false
}
