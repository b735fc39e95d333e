package css

import (
	"fmt"
	"testing"
)

// TestIsTransparent tests the narrow no-paint classification.
func TestIsTransparent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "transparent keyword", raw: "transparent", want: true},
		{name: "fully transparent rgba", raw: "rgba(0, 0, 0, 0)", want: true},
		{name: "inherit keyword", raw: "inherit", want: true},
		{name: "initial keyword", raw: "initial", want: true},
		{name: "upper case normalized", raw: "TRANSPARENT", want: true},
		{name: "surrounding whitespace trimmed", raw: "  transparent  ", want: true},
		{name: "near-transparent rgba is paint", raw: "rgba(0,0,0,0.01)", want: false},
		{name: "rgba without canonical spacing is paint", raw: "rgba(0,0,0,0)", want: false},
		{name: "opaque color", raw: "rgb(255, 0, 0)", want: false},
		{name: "empty string", raw: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsTransparent(tt.raw); got != tt.want {
				t.Errorf("IsTransparent(%q) = %v, expected %v", tt.raw, got, tt.want)
			}
		})
	}
}

// TestRGBToHex tests color string to hex conversion.
func TestRGBToHex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{name: "rgb form", raw: "rgb(255, 0, 0)", want: "#FF0000", wantOK: true},
		{name: "rgba channels parsed alpha ignored", raw: "rgba(0,0,0,0.5)", want: "#000000", wantOK: true},
		{name: "already hex upper-cased", raw: "#ff8800", want: "#FF8800", wantOK: true},
		{name: "hex already uppercase", raw: "#ABCDEF", want: "#ABCDEF", wantOK: true},
		{name: "no spacing accepted", raw: "rgb(1,2,3)", want: "#010203", wantOK: true},
		{name: "channel above 255 rejected", raw: "rgb(300, 0, 0)", wantOK: false},
		{name: "shorthand hex rejected", raw: "#fff", wantOK: false},
		{name: "named color rejected", raw: "red", wantOK: false},
		{name: "empty string rejected", raw: "", wantOK: false},
		{name: "hsl rejected", raw: "hsl(0, 100%, 50%)", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := RGBToHex(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("RGBToHex(%q) ok = %v, expected %v", tt.raw, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("RGBToHex(%q) = %q, expected %q", tt.raw, got, tt.want)
			}
		})
	}
}

// TestHexToRGB tests hex decoding.
func TestHexToRGB(t *testing.T) {
	t.Parallel()

	t.Run("decodes channels", func(t *testing.T) {
		t.Parallel()
		r, g, b, ok := HexToRGB("#1A2B3C")
		if !ok {
			t.Fatal("expected ok")
		}
		if r != 0x1A || g != 0x2B || b != 0x3C {
			t.Errorf("got (%d,%d,%d), expected (26,43,60)", r, g, b)
		}
	})

	t.Run("accepts bare hex", func(t *testing.T) {
		t.Parallel()
		if _, _, _, ok := HexToRGB("FFFFFF"); !ok {
			t.Error("expected bare 6-digit hex to be accepted")
		}
	})

	t.Run("rejects shorthand", func(t *testing.T) {
		t.Parallel()
		if _, _, _, ok := HexToRGB("#FFF"); ok {
			t.Error("expected shorthand hex to be rejected")
		}
	})

	t.Run("rejects non-hex input", func(t *testing.T) {
		t.Parallel()
		if _, _, _, ok := HexToRGB("#GGGGGG"); ok {
			t.Error("expected non-hex digits to be rejected")
		}
	})
}

// TestRoundTrip ensures the codec is self-consistent.
func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, hex := range []string{"#000000", "#FFFFFF", "#FF8800", "#123456"} {
		r, g, b, ok := HexToRGB(hex)
		if !ok {
			t.Fatalf("HexToRGB(%q) failed", hex)
		}
		got, ok := RGBToHex(fmt.Sprintf("rgb(%d, %d, %d)", r, g, b))
		if !ok || got != hex {
			t.Errorf("round trip of %q produced %q", hex, got)
		}
	}
}
