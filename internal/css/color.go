package css

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// hexPattern matches exactly six hex digits.
var hexPattern = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)

// rgbPattern matches the three leading integer channels of an rgb() or
// rgba() functional string. The alpha channel, if present, is ignored.
var rgbPattern = regexp.MustCompile(`^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})`)

// transparentValues are the raw color strings treated as "no paint".
// The match is exact after trimming and lower-casing: an rgba value with
// any non-zero alpha (even 0.01) counts as opaque paint, matching the
// downstream tooling this auditor mimics.
var transparentValues = map[string]bool{
	"transparent":      true,
	"rgba(0, 0, 0, 0)": true,
	"inherit":          true,
	"initial":          true,
}

// IsTransparent reports whether a raw color string represents no visible
// paint. No partial matching and no alpha parsing is performed.
func IsTransparent(raw string) bool {
	return transparentValues[strings.ToLower(strings.TrimSpace(raw))]
}

// RGBToHex converts a color string to "#RRGGBB" uppercase form.
// Already-hex input is returned upper-cased; rgb()/rgba() input is parsed
// by extracting exactly three integer channels. Any other form returns
// ok=false.
func RGBToHex(raw string) (string, bool) {
	s := strings.TrimSpace(raw)

	if hex, found := strings.CutPrefix(s, "#"); found {
		if !hexPattern.MatchString(hex) {
			return "", false
		}
		return "#" + strings.ToUpper(hex), true
	}

	m := rgbPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}

	r, _ := strconv.Atoi(m[1]) //nolint:errcheck // pattern guarantees digits
	g, _ := strconv.Atoi(m[2]) //nolint:errcheck // pattern guarantees digits
	b, _ := strconv.Atoi(m[3]) //nolint:errcheck // pattern guarantees digits
	if r > 255 || g > 255 || b > 255 {
		return "", false
	}

	return fmt.Sprintf("#%06X", r<<16|g<<8|b), true
}

// HexToRGB decodes a "#RRGGBB" (or bare "RRGGBB") string into its integer
// channels. Input with anything other than exactly six hex digits after
// stripping the leading "#" returns ok=false.
func HexToRGB(raw string) (r, g, b int, ok bool) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if !hexPattern.MatchString(s) {
		return 0, 0, 0, false
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}

	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF), true
}
