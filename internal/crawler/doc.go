// Package crawler provides web crawling functionality for site audits.
//
// # Architecture
//
// The crawler package is designed around the Spider type, which coordinates
// the crawling process. Crawling proceeds breadth-first in waves: each wave
// of same-host pages is fetched concurrently, the links they expose form
// the next wave, and the process stops at the page cap.
//
// Design decision: We implement our own crawler rather than using a
// third-party library because:
//  1. The auditor needs the raw HTML of each page, not extracted data
//  2. We need tight control over request timing to stay polite
//  3. Same-host scoping and glob-based skip lists are trivial to own
//  4. Reduces external dependencies and potential security issues
//
// # Components
//
//   - Spider: The main crawler that coordinates the crawling process
//   - Parser: HTML parser that extracts and classifies links
//
// # Politeness
//
// The crawler is designed to be polite:
//   - Delays between requests per worker (configurable)
//   - Bounded concurrency (configurable)
//   - Page cap per site
//   - Memory limits prevent runaway reads on large responses
//
// # Usage
//
//	spider := crawler.NewSpider(httpClient, crawler.WithMaxPages(50))
//	err := spider.Crawl(ctx, "https://example.com", func(ctx context.Context, page *crawler.Page) error {
//	    // analyze page.Body
//	    return nil
//	})
package crawler
