package audit

import "testing"

// TestEffectiveBackground tests the ancestry walk behind a text element.
func TestEffectiveBackground(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		sel  string
		want string
	}{
		{
			name: "element's own background wins",
			html: `<body><p style="background-color: rgb(10, 20, 30)">hi</p></body>`,
			sel:  "p",
			want: "#0A141E",
		},
		{
			name: "transparent element inherits from parent",
			html: `<body><div style="background-color: #336699"><p style="background-color: transparent">hi</p></div></body>`,
			sel:  "p",
			want: "#336699",
		},
		{
			name: "rgba zero is treated as transparent",
			html: `<body><div style="background-color: #00FF00"><p style="background-color: rgba(0, 0, 0, 0)">hi</p></div></body>`,
			sel:  "p",
			want: "#00FF00",
		},
		{
			name: "walk skips unset ancestors",
			html: `<body style="background-color: rgb(255, 0, 0)"><div><section><p>hi</p></section></div></body>`,
			sel:  "p",
			want: "#FF0000",
		},
		{
			name: "no painted ancestor falls back to white",
			html: `<body><div><p>hi</p></div></body>`,
			sel:  "p",
			want: "#FFFFFF",
		},
		{
			name: "gradient background keeps walking",
			html: `<body><div style="background-color: #222222"><p style="background: linear-gradient(red, blue)">hi</p></div></body>`,
			sel:  "p",
			want: "#222222",
		},
		{
			name: "stylesheet rule supplies the background",
			html: `<head><style>.hero { background-color: #123456; }</style></head><body><div class="hero"><p>hi</p></div></body>`,
			sel:  "p",
			want: "#123456",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := mustParse(t, tt.html)
			el := mustQueryOne(t, doc, tt.sel)
			if got := EffectiveBackground(el); got != tt.want {
				t.Errorf("EffectiveBackground() = %q, expected %q", got, tt.want)
			}
		})
	}
}

// TestResolvedTextColor tests the inherited-color walk.
func TestResolvedTextColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		sel  string
		want string
	}{
		{
			name: "own declared color",
			html: `<body><p style="color: #AABBCC">hi</p></body>`,
			sel:  "p",
			want: "#AABBCC",
		},
		{
			name: "inherited from ancestor",
			html: `<body style="color: rgb(100, 100, 100)"><div><p>hi</p></div></body>`,
			sel:  "p",
			want: "#646464",
		},
		{
			name: "no declaration defaults to black",
			html: `<body><p>hi</p></body>`,
			sel:  "p",
			want: "#000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := mustParse(t, tt.html)
			el := mustQueryOne(t, doc, tt.sel)
			if got := resolvedTextColor(el); got != tt.want {
				t.Errorf("resolvedTextColor() = %q, expected %q", got, tt.want)
			}
		})
	}
}

// TestResolvedFontSize tests declared, inherited, and user-agent sizes.
func TestResolvedFontSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		sel  string
		want float64
	}{
		{
			name: "declared px size",
			html: `<body><p style="font-size: 20px">hi</p></body>`,
			sel:  "p",
			want: 20,
		},
		{
			name: "inherited size",
			html: `<body><div style="font-size: 18px"><p>hi</p></div></body>`,
			sel:  "p",
			want: 18,
		},
		{
			name: "h1 user-agent default",
			html: `<body><h1>hi</h1></body>`,
			sel:  "h1",
			want: 32,
		},
		{
			name: "plain paragraph default",
			html: `<body><p>hi</p></body>`,
			sel:  "p",
			want: 16,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := mustParse(t, tt.html)
			el := mustQueryOne(t, doc, tt.sel)
			if got := resolvedFontSize(el); got != tt.want {
				t.Errorf("resolvedFontSize() = %v, expected %v", got, tt.want)
			}
		})
	}
}

// TestResolvedFontWeight tests declared and user-agent weights.
func TestResolvedFontWeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		sel  string
		want int
	}{
		{
			name: "declared bold keyword",
			html: `<body><p style="font-weight: bold">hi</p></body>`,
			sel:  "p",
			want: 700,
		},
		{
			name: "declared numeric weight",
			html: `<body><p style="font-weight: 300">hi</p></body>`,
			sel:  "p",
			want: 300,
		},
		{
			name: "headings are bold by default",
			html: `<body><h2>hi</h2></body>`,
			sel:  "h2",
			want: 700,
		},
		{
			name: "strong is bold by default",
			html: `<body><p><strong>hi</strong></p></body>`,
			sel:  "strong",
			want: 700,
		},
		{
			name: "plain text defaults to normal",
			html: `<body><p>hi</p></body>`,
			sel:  "p",
			want: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := mustParse(t, tt.html)
			el := mustQueryOne(t, doc, tt.sel)
			if got := resolvedFontWeight(el); got != tt.want {
				t.Errorf("resolvedFontWeight() = %d, expected %d", got, tt.want)
			}
		})
	}
}
