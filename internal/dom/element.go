package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Element is a handle on one element node of a Document.
type Element struct {
	node *html.Node
	doc  *Document
}

// Node returns the underlying HTML node.
func (e *Element) Node() *html.Node {
	return e.node
}

// Document returns the document the element belongs to.
func (e *Element) Document() *Document {
	return e.doc
}

// TagName returns the lower-cased tag name.
func (e *Element) TagName() string {
	return strings.ToLower(e.node.Data)
}

// Attr returns the value of the named attribute, or "" when absent.
func (e *Element) Attr(name string) string {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present, even if empty.
func (e *Element) HasAttr(name string) bool {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}

// ID returns the element's id attribute.
func (e *Element) ID() string {
	return e.Attr("id")
}

// Classes returns the element's class tokens, split on whitespace.
func (e *Element) Classes() []string {
	raw := e.Attr("class")
	if raw == "" {
		return nil
	}
	return strings.Fields(raw)
}

// HasClassSubstring reports whether any class token contains the given
// lower-cased substring.
func (e *Element) HasClassSubstring(sub string) bool {
	for _, c := range e.Classes() {
		if strings.Contains(strings.ToLower(c), sub) {
			return true
		}
	}
	return false
}

// Parent returns the parent element, or nil at the top of the element
// tree (the document node is never returned).
func (e *Element) Parent() *Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return &Element{node: p, doc: e.doc}
}

// HasDirectText reports whether the element has a child text node with
// non-empty trimmed content. Text inherited from descendants does not
// count, so containers do not dilute contrast results.
func (e *Element) HasDirectText() bool {
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			return true
		}
	}
	return false
}

// Text returns the trimmed text content of the element's subtree.
func (e *Element) Text() string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// InsideTag reports whether the element is, or is a descendant of, an
// element with the given lower-cased tag name.
func (e *Element) InsideTag(tag string) bool {
	for el := e; el != nil; el = el.Parent() {
		if el.TagName() == tag {
			return true
		}
	}
	return false
}

// SameTagSiblingCount returns how many siblings under the element's
// parent share its tag, and the element's 1-based position among them.
func (e *Element) SameTagSiblingCount() (count, index int) {
	parent := e.node.Parent
	if parent == nil {
		return 1, 1
	}
	tag := e.node.Data
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != tag {
			continue
		}
		count++
		if c == e.node {
			index = count
		}
	}
	if count == 0 {
		return 1, 1
	}
	return count, index
}

// Style returns the element's computed style map.
func (e *Element) Style() Style {
	return e.doc.ComputedStyle(e)
}
