package audit

import (
	"strings"
	"testing"

	"github.com/designlens/designlens/internal/dom"
)

// mustParse parses an HTML fragment into a document for tests.
func mustParse(t *testing.T, htmlText string) *dom.Document {
	t.Helper()
	doc, err := dom.Parse(strings.NewReader(htmlText), "https://example.com/page")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

// mustQueryOne returns the single element matching sel, failing the test
// otherwise.
func mustQueryOne(t *testing.T, doc *dom.Document, sel string) *dom.Element {
	t.Helper()
	matches, err := doc.QueryAll(sel)
	if err != nil {
		t.Fatalf("query %q: %v", sel, err)
	}
	if len(matches) != 1 {
		t.Fatalf("query %q matched %d elements, expected 1", sel, len(matches))
	}
	return matches[0]
}
