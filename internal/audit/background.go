package audit

import (
	"github.com/designlens/designlens/internal/css"
	"github.com/designlens/designlens/internal/dom"
)

// canvasWhite is the deterministic fallback when no ancestor paints a
// background, mirroring the default page canvas.
const canvasWhite = "#FFFFFF"

// EffectiveBackground resolves the background color a viewer actually
// perceives behind an element. If the element's own background is
// non-transparent it is returned unchanged; otherwise the parent chain is
// walked upward until the first painted background is found.
//
// This is a structural approximation over the DOM ancestry. It never
// inspects sibling z-order or rendered pixels, so absolutely positioned
// overlays are attributed to their DOM parent, not their visual one.
func EffectiveBackground(el *dom.Element) string {
	for cur := el; cur != nil; cur = cur.Parent() {
		raw := cur.Style().BackgroundColor()
		if raw == "" || css.IsTransparent(raw) {
			continue
		}
		if hex, ok := css.RGBToHex(raw); ok {
			return hex
		}
		// Painted but not a flat color (gradient, image token). Keep
		// walking: the next opaque ancestor is the best approximation.
	}
	return canvasWhite
}

// resolvedTextColor returns the text color in effect for an element as a
// hex value, walking the ancestor chain for the nearest declared color.
// Elements with no declared color anywhere inherit the default black.
func resolvedTextColor(el *dom.Element) string {
	for cur := el; cur != nil; cur = cur.Parent() {
		raw := cur.Style().Color()
		if raw == "" || css.IsTransparent(raw) {
			continue
		}
		if hex, ok := css.RGBToHex(raw); ok {
			return hex
		}
	}
	return "#000000"
}

// defaultFontSizes approximates browser default sizes for elements whose
// font size is commonly set by the user-agent stylesheet.
var defaultFontSizes = map[string]float64{
	"h1": 32, "h2": 24, "h3": 18.72, "h4": 16, "h5": 13.28, "h6": 10.72,
	"small": 13.33,
}

// boldByDefault lists elements the user-agent stylesheet renders bold.
var boldByDefault = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"b": true, "strong": true, "th": true,
}

// resolvedFontSize returns the font size in effect for an element in
// pixels, walking ancestors for the nearest declared size and falling
// back to user-agent defaults.
func resolvedFontSize(el *dom.Element) float64 {
	for cur := el; cur != nil; cur = cur.Parent() {
		if size, ok := cur.Style().FontSizePx(); ok {
			return size
		}
	}
	if size, ok := defaultFontSizes[el.TagName()]; ok {
		return size
	}
	return 16
}

// resolvedFontFamily returns the font family in effect for an element,
// walking ancestors for the nearest declared family.
func resolvedFontFamily(el *dom.Element) string {
	for cur := el; cur != nil; cur = cur.Parent() {
		if family := cur.Style().FontFamily(); family != "" {
			return family
		}
	}
	return ""
}

// resolvedFontWeight returns the font weight in effect for an element,
// walking ancestors for the nearest declared weight and falling back to
// user-agent defaults.
func resolvedFontWeight(el *dom.Element) int {
	for cur := el; cur != nil; cur = cur.Parent() {
		if w := cur.Style().Get("font-weight"); w != "" {
			return cur.Style().FontWeight()
		}
	}
	if boldByDefault[el.TagName()] {
		return 700
	}
	return 400
}
