package dom

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// Document is a parsed HTML page with its <style> stylesheets compiled
// for per-element style resolution.
type Document struct {
	// URL is the full URL the document was fetched from.
	URL string

	// Title is the text of the first <title> element.
	Title string

	gq    *goquery.Document
	rules []styleRule
	cache map[*html.Node]Style
}

// styleRule is one qualified stylesheet rule with its selector compiled.
type styleRule struct {
	sel   cascadia.Selector
	decls []declaration
}

// declaration is a single property:value pair.
type declaration struct {
	property string
	value    string
}

// Parse reads an HTML document and compiles its embedded stylesheets.
func Parse(r io.Reader, pageURL string) (*Document, error) {
	gq, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	d := &Document{
		URL:   pageURL,
		Title: strings.TrimSpace(gq.Find("title").First().Text()),
		gq:    gq,
		cache: make(map[*html.Node]Style),
	}
	d.compileStylesheets()

	return d, nil
}

// compileStylesheets parses every <style> element and compiles the
// selectors of its qualified rules. Unparseable sheets and selectors are
// skipped; a broken stylesheet never aborts page analysis.
func (d *Document) compileStylesheets() {
	d.gq.Find("style").Each(func(_ int, s *goquery.Selection) {
		sheet, err := parser.Parse(s.Text())
		if err != nil {
			return
		}
		for _, rule := range sheet.Rules {
			if len(rule.Declarations) == 0 {
				continue
			}
			decls := make([]declaration, 0, len(rule.Declarations))
			for _, decl := range rule.Declarations {
				decls = append(decls, declaration{
					property: strings.ToLower(strings.TrimSpace(decl.Property)),
					value:    strings.TrimSpace(decl.Value),
				})
			}
			for _, selText := range rule.Selectors {
				sel, err := cascadia.Compile(selText)
				if err != nil {
					continue
				}
				d.rules = append(d.rules, styleRule{sel: sel, decls: decls})
			}
		}
	})
}

// Root returns the document's root node.
func (d *Document) Root() *html.Node {
	return d.gq.Nodes[0]
}

// Body returns the <body> element, or nil for documents without one.
func (d *Document) Body() *Element {
	sel := d.gq.Find("body").First()
	if len(sel.Nodes) == 0 {
		return nil
	}
	return &Element{node: sel.Nodes[0], doc: d}
}

// Each visits every element under <body> in document order. Documents
// without a body are walked from the root so fragments still work.
func (d *Document) Each(fn func(*Element)) {
	start := d.Root()
	if body := d.Body(); body != nil {
		start = body.node
	}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			fn(&Element{node: n, doc: d})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(start)
}

// QueryAll returns the elements matching a CSS selector, in document
// order. An invalid selector returns an error rather than panicking.
func (d *Document) QueryAll(selector string) ([]*Element, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, err
	}
	nodes := sel.MatchAll(d.Root())
	elems := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		elems = append(elems, &Element{node: n, doc: d})
	}
	return elems, nil
}

// ComputedStyle resolves the element's style map: stylesheet rules in
// source order, inline style attribute last. Results are cached per node.
func (d *Document) ComputedStyle(el *Element) Style {
	if s, ok := d.cache[el.node]; ok {
		return s
	}

	s := make(Style)
	for _, rule := range d.rules {
		if rule.sel.Match(el.node) {
			for _, decl := range rule.decls {
				s[decl.property] = decl.value
			}
		}
	}

	if inline := el.Attr("style"); inline != "" {
		decls, err := parser.ParseDeclarations(inline)
		if err == nil {
			for _, decl := range decls {
				s[strings.ToLower(strings.TrimSpace(decl.Property))] = strings.TrimSpace(decl.Value)
			}
		}
	}

	d.cache[el.node] = s
	return s
}
