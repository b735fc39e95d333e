package audit

import (
	"strconv"
	"strings"

	"github.com/designlens/designlens/internal/dom"
)

// decorativeMaxDim is the size (in px) at or below which a box is treated
// as an icon rather than a content element.
const decorativeMaxDim = 64.0

// iconAncestorDepth is how many ancestors are inspected for icon-family
// class tokens. Icon wrappers rarely nest deeper than this.
const iconAncestorDepth = 3

// iconClassKeywords are class-token families marking icons, social
// widgets, and other decorative chrome, including named third-party
// sharing widgets.
var iconClassKeywords = []string{
	"icon",
	"social",
	"share",
	"badge",
	"avatar",
	"emoji",
	// Named sharing widgets.
	"addthis",
	"sharethis",
	"addtoany",
	"shareaholic",
}

// IsDecorative reports whether an element is an icon, social widget, or
// similarly decorative box whose colors say nothing about the design
// system and would pollute the palette.
func IsDecorative(el *dom.Element) bool {
	if el == nil {
		return false
	}

	if el.Attr("role") == "img" {
		return true
	}

	if hasIconClassFamily(el) {
		return true
	}

	w, h, wOK, hOK := boxDimensions(el)

	if el.TagName() == "svg" || el.InsideTag("svg") {
		// Shapes inside an svg rarely declare width/height themselves;
		// size them by the enclosing svg element.
		sw, sh, swOK, shOK := w, h, wOK, hOK
		if !swOK || !shOK {
			if svg := enclosingTag(el, "svg"); svg != nil {
				sw, sh, swOK, shOK = boxDimensions(svg)
			}
		}
		if swOK && shOK && sw <= decorativeMaxDim && sh <= decorativeMaxDim {
			return true
		}
	}

	if wOK && hOK && w > 0 && h > 0 && w <= decorativeMaxDim && h <= decorativeMaxDim {
		return true
	}

	if el.Style().BackgroundImage() != "" {
		if (wOK && w <= decorativeMaxDim) || (hOK && h <= decorativeMaxDim) {
			return true
		}
	}

	return false
}

// enclosingTag returns the nearest ancestor (or the element itself) with
// the given tag name, or nil.
func enclosingTag(el *dom.Element, tag string) *dom.Element {
	for cur := el; cur != nil; cur = cur.Parent() {
		if cur.TagName() == tag {
			return cur
		}
	}
	return nil
}

// hasIconClassFamily checks the element and its nearest ancestors for
// icon-family class tokens.
func hasIconClassFamily(el *dom.Element) bool {
	cur := el
	for depth := 0; cur != nil && depth <= iconAncestorDepth; depth++ {
		for _, keyword := range iconClassKeywords {
			if cur.HasClassSubstring(keyword) {
				return true
			}
		}
		cur = cur.Parent()
	}
	return false
}

// boxDimensions returns the element's declared width and height in
// pixels, consulting the computed style first and the width/height
// attributes second. Without a rendering engine these declarations are
// the only dimension signal available.
func boxDimensions(el *dom.Element) (w, h float64, wOK, hOK bool) {
	style := el.Style()
	if v, ok := style.WidthPx(); ok {
		w, wOK = v, true
	} else if v, ok := attrPx(el, "width"); ok {
		w, wOK = v, true
	}
	if v, ok := style.HeightPx(); ok {
		h, hOK = v, true
	} else if v, ok := attrPx(el, "height"); ok {
		h, hOK = v, true
	}
	return w, h, wOK, hOK
}

// attrPx parses a numeric width/height attribute, tolerating a px suffix.
func attrPx(el *dom.Element, name string) (float64, bool) {
	raw := strings.TrimSuffix(strings.TrimSpace(el.Attr(name)), "px")
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// buttonStyledClasses are class-token substrings marking an anchor that
// is styled as a button.
var buttonStyledClasses = []string{"btn", "button"}

// IsButtonStyled reports whether an anchor carries button styling, either
// through a button-family class or an explicit role.
func IsButtonStyled(el *dom.Element) bool {
	if el.Attr("role") == "button" {
		return true
	}
	for _, keyword := range buttonStyledClasses {
		if el.HasClassSubstring(keyword) {
			return true
		}
	}
	return false
}

// IsGhostButton reports whether an element is an interactive control with
// no visible text and no accessible label. Ghost buttons carry no
// communicable color contrast at all, so they are excluded from all color
// and contrast tracking.
func IsGhostButton(el *dom.Element) bool {
	if el == nil {
		return false
	}
	tag := el.TagName()
	if tag != "button" && !(tag == "a" && IsButtonStyled(el)) {
		return false
	}
	if el.Text() != "" {
		return false
	}
	return el.Attr("aria-label") == ""
}
