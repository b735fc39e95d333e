package dom

import (
	"strconv"
	"strings"
)

// Style is a resolved property map for one element.
type Style map[string]string

// defaultFontSizePx is the browser default used to resolve relative units.
const defaultFontSizePx = 16.0

// Get returns the value of a property, or "" when unset.
func (s Style) Get(property string) string {
	return s[property]
}

// Color returns the declared text color, or "" when unset.
func (s Style) Color() string {
	return s["color"]
}

// BackgroundColor returns the declared background color. The background
// shorthand is consulted when background-color is unset; only a leading
// color token is recognized there.
func (s Style) BackgroundColor() string {
	if v := s["background-color"]; v != "" {
		return v
	}
	v := strings.TrimSpace(s["background"])
	if v == "" {
		return ""
	}
	// A shorthand starting with a url() or gradient carries no flat color.
	first := strings.Fields(v)[0]
	if strings.HasPrefix(first, "#") || strings.HasPrefix(first, "rgb") || first == "transparent" {
		if strings.HasPrefix(first, "rgb") {
			// rgb(...) values contain spaces; return up to the closing paren.
			if i := strings.Index(v, ")"); i >= 0 {
				return v[:i+1]
			}
		}
		return first
	}
	return ""
}

// BorderColor returns the declared border color from border-color or the
// border shorthand's color token.
func (s Style) BorderColor() string {
	if v := s["border-color"]; v != "" {
		return v
	}
	for _, token := range strings.Fields(s["border"]) {
		if strings.HasPrefix(token, "#") || strings.HasPrefix(token, "rgb") {
			return token
		}
	}
	return ""
}

// BackgroundImage returns the declared background-image, with "none"
// treated as unset.
func (s Style) BackgroundImage() string {
	v := strings.TrimSpace(s["background-image"])
	if v == "" || strings.EqualFold(v, "none") {
		return ""
	}
	return v
}

// FontSizePx returns the font size in pixels. Relative em/rem values are
// resolved against the 16px browser default and pt values are converted;
// anything else (percentages, keywords) returns ok=false.
func (s Style) FontSizePx() (float64, bool) {
	return parseSizePx(s["font-size"])
}

// FontWeight returns the numeric font weight, with "bold" mapped to 700.
// Unset or unrecognized values return the normal weight of 400.
func (s Style) FontWeight() int {
	v := strings.ToLower(strings.TrimSpace(s["font-weight"]))
	switch v {
	case "", "normal":
		return 400
	case "bold":
		return 700
	case "bolder":
		return 700
	case "lighter":
		return 300
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 1000 {
		return n
	}
	return 400
}

// FontFamily returns the declared font family list, as written.
func (s Style) FontFamily() string {
	return strings.TrimSpace(s["font-family"])
}

// WidthPx returns the declared width in pixels.
func (s Style) WidthPx() (float64, bool) { return parseSizePx(s["width"]) }

// HeightPx returns the declared height in pixels.
func (s Style) HeightPx() (float64, bool) { return parseSizePx(s["height"]) }

// parseSizePx converts a CSS length to pixels. Supported units are px,
// em, rem (against the 16px default), and pt.
func parseSizePx(v string) (float64, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return 0, false
	}

	switch {
	case strings.HasSuffix(v, "px"):
		if n, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64); err == nil {
			return n, true
		}
	case strings.HasSuffix(v, "rem"):
		if n, err := strconv.ParseFloat(strings.TrimSuffix(v, "rem"), 64); err == nil {
			return n * defaultFontSizePx, true
		}
	case strings.HasSuffix(v, "em"):
		if n, err := strconv.ParseFloat(strings.TrimSuffix(v, "em"), 64); err == nil {
			return n * defaultFontSizePx, true
		}
	case strings.HasSuffix(v, "pt"):
		if n, err := strconv.ParseFloat(strings.TrimSuffix(v, "pt"), 64); err == nil {
			return n * 96.0 / 72.0, true
		}
	}
	return 0, false
}
