package selector

import (
	"fmt"
	"strings"

	"github.com/designlens/designlens/internal/dom"
)

// Generate builds a selector that uniquely addresses el in its document.
//
// The cheapest stable path is a bare id selector; failing that, the
// generator climbs the ancestor chain building tag/id/class segments with
// nth-of-type disambiguation, testing the accumulated path for uniqueness
// after every step. The walk stops at the first unique path. Uniqueness is
// always verified with a live query, never assumed from naming convention.
func Generate(el *dom.Element) string {
	if el == nil {
		return ""
	}
	tag := el.TagName()
	if el.Document() == nil {
		return tag
	}

	if id := el.ID(); usableIdentifier(id) {
		sel := "#" + id
		if matchesOnly(el, sel) {
			return sel
		}
	}

	path := ""
	for cur := el; cur != nil; cur = cur.Parent() {
		seg := segment(cur)
		if path == "" {
			path = seg
		} else {
			path = seg + " > " + path
		}
		if matchesOnly(el, path) {
			return path
		}
	}

	if path == "" {
		return tag
	}
	return path
}

// segment builds one path segment for an element: its tag name, a stable
// id or the first usable class token, and an nth-of-type index when the
// tag has same-tag siblings.
func segment(el *dom.Element) string {
	seg := el.TagName()

	if id := el.ID(); usableIdentifier(id) {
		seg += "#" + id
	} else {
		for _, class := range el.Classes() {
			if !usableIdentifier(class) || strings.Contains(class, ":") {
				continue
			}
			seg += "." + class
			break
		}
	}

	if count, index := el.SameTagSiblingCount(); count > 1 {
		seg += fmt.Sprintf(":nth-of-type(%d)", index)
	}

	return seg
}

// usableIdentifier reports whether a token can appear in a selector:
// non-empty, no whitespace, selector-safe characters only, and stable
// across reloads.
func usableIdentifier(token string) bool {
	if token == "" || strings.ContainsAny(token, " \t\n\r") {
		return false
	}
	for _, r := range token {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return !IsDynamicIdentifier(token)
}

// matchesOnly reports whether sel matches exactly el and nothing else in
// the document. Query errors count as no match.
func matchesOnly(el *dom.Element, sel string) bool {
	matches, err := el.Document().QueryAll(sel)
	if err != nil {
		return false
	}
	return len(matches) == 1 && matches[0].Node() == el.Node()
}
