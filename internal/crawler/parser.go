package crawler

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Parser extracts links and metadata from HTML content.
//
// Design decision: We use goquery rather than walking x/net/html nodes
// by hand because:
//  1. It correctly handles malformed HTML common on the web
//  2. Attribute iteration over every anchor is a one-liner
//  3. The auditor already depends on it for page analysis
type Parser struct {
	// base is the URL relative links are resolved against.
	base *url.URL
}

// ParseResult contains the link information extracted from an HTML page.
//
// Design decision: We return a result struct rather than separate
// methods because a single parsing pass is more efficient and the
// caller can choose what to use.
type ParseResult struct {
	// Title is the text of the first <title> element.
	Title string

	// InternalLinks are absolute same-host URLs, deduplicated, in
	// document order. Fragments are stripped.
	InternalLinks []string

	// ExternalLinks are absolute URLs pointing off-host.
	ExternalLinks []string
}

// skippedExtensions are path suffixes that never lead to an HTML page
// worth auditing.
var skippedExtensions = []string{
	".pdf", ".zip", ".gz", ".tar",
	".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".ico",
	".css", ".js", ".json", ".xml", ".rss",
	".mp3", ".mp4", ".webm", ".avi",
	".woff", ".woff2", ".ttf", ".eot",
}

// NewParser creates a new HTML parser with the given base URL.
// The base URL is used to resolve relative links.
func NewParser(baseURL string) (*Parser, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	return &Parser{base: base}, nil
}

// Parse parses HTML content and extracts its title and links.
func (p *Parser) Parse(content io.Reader) (*ParseResult, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	result := &ParseResult{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		resolved := p.resolveURL(href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true

		if p.isInternal(resolved) {
			result.InternalLinks = append(result.InternalLinks, resolved)
		} else {
			result.ExternalLinks = append(result.ExternalLinks, resolved)
		}
	})

	return result, nil
}

// resolveURL resolves a relative URL against the base URL and filters
// out links that cannot lead to an auditable page. Returns "" for links
// that should be dropped.
//
// Design decision: We resolve URLs rather than storing them as-is
// because it makes deduplication possible and removes ambiguity from
// the crawl queue.
func (p *Parser) resolveURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}

	lower := strings.ToLower(href)
	for _, scheme := range []string{"mailto:", "tel:", "javascript:", "data:", "ftp:"} {
		if strings.HasPrefix(lower, scheme) {
			return ""
		}
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := p.base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}

	// Fragments never change the fetched content.
	resolved.Fragment = ""

	pathLower := strings.ToLower(resolved.Path)
	for _, ext := range skippedExtensions {
		if strings.HasSuffix(pathLower, ext) {
			return ""
		}
	}

	return resolved.String()
}

// isInternal reports whether an absolute URL points at the same host as
// the base URL. A www prefix on either side is ignored, matching how
// sites typically serve the same content on both.
func (p *Parser) isInternal(absolute string) bool {
	u, err := url.Parse(absolute)
	if err != nil {
		return false
	}
	return stripWWW(u.Host) == stripWWW(p.base.Host)
}

// stripWWW removes a leading "www." from a lower-cased host.
func stripWWW(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}
