package css

import "math"

// Level is a WCAG conformance classification for a contrast ratio.
type Level string

// WCAG conformance levels.
const (
	// LevelAAA is the enhanced contrast level.
	LevelAAA Level = "AAA"
	// LevelAA is the minimum contrast level.
	LevelAA Level = "AA"
	// LevelFail means the ratio meets neither level.
	LevelFail Level = "Fail"
)

// WCAG 2.x contrast thresholds.
const (
	// thresholdAAANormal is the AAA ratio for normal-size text.
	thresholdAAANormal = 7.0
	// thresholdAANormal is the AA ratio for normal-size text, and the
	// AAA ratio for large text.
	thresholdAANormal = 4.5
	// thresholdAALarge is the AA ratio for large text.
	thresholdAALarge = 3.0
)

// Large-text boundaries. WCAG defines large text as 18pt (24px) or 14pt
// (18.66px) bold; the thresholds below follow the pixel convention used by
// common audit tooling.
const (
	// largeTextSizePx is the size at which any weight counts as large.
	largeTextSizePx = 18.0
	// boldTextSizePx is the size at which bold text counts as large.
	boldTextSizePx = 14.0
	// boldWeight is the minimum font weight considered bold.
	boldWeight = 700
)

// RelativeLuminance computes the WCAG relative luminance of a hex color.
// The result is in [0, 1]: 0 for black, 1 for white. Input that is not a
// valid 6-digit hex string returns ok=false.
func RelativeLuminance(hex string) (float64, bool) {
	r, g, b, ok := HexToRGB(hex)
	if !ok {
		return 0, false
	}
	return 0.2126*gammaCorrect(r) + 0.7152*gammaCorrect(g) + 0.0722*gammaCorrect(b), true
}

// gammaCorrect applies the WCAG piecewise sRGB gamma correction to one
// 8-bit channel value.
func gammaCorrect(channel int) float64 {
	c := float64(channel) / 255.0
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// ContrastRatio computes the WCAG contrast ratio between two hex colors.
// The ratio is symmetric by construction and lies in [1, 21]. Either input
// failing to parse returns ok=false.
func ContrastRatio(hexA, hexB string) (float64, bool) {
	la, ok := RelativeLuminance(hexA)
	if !ok {
		return 0, false
	}
	lb, ok := RelativeLuminance(hexB)
	if !ok {
		return 0, false
	}

	lighter := math.Max(la, lb)
	darker := math.Min(la, lb)
	return (lighter + 0.05) / (darker + 0.05), true
}

// ClassifyRatio maps a contrast ratio to its WCAG conformance level.
// Large text uses the relaxed thresholds.
func ClassifyRatio(ratio float64, isLargeText bool) Level {
	if isLargeText {
		switch {
		case ratio >= thresholdAANormal:
			return LevelAAA
		case ratio >= thresholdAALarge:
			return LevelAA
		default:
			return LevelFail
		}
	}
	switch {
	case ratio >= thresholdAAANormal:
		return LevelAAA
	case ratio >= thresholdAANormal:
		return LevelAA
	default:
		return LevelFail
	}
}

// IsLargeText reports whether text qualifies for the relaxed large-text
// thresholds: at least 18px at any weight, or at least 14px in bold.
func IsLargeText(fontSizePx float64, fontWeight int) bool {
	if fontSizePx >= largeTextSizePx {
		return true
	}
	return fontSizePx >= boldTextSizePx && fontWeight >= boldWeight
}
