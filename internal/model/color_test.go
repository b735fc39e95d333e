package model

import "testing"

// TestColorEntryAddUsage tests the ordered-set semantics of UsedAs.
func TestColorEntryAddUsage(t *testing.T) {
	t.Parallel()

	entry := &ColorEntry{}
	entry.AddUsage(UsageBackground)
	entry.AddUsage(UsageText)
	entry.AddUsage(UsageBackground)

	t.Run("no duplicate tags", func(t *testing.T) {
		t.Parallel()
		if len(entry.UsedAs) != 2 {
			t.Errorf("got %d tags, expected 2", len(entry.UsedAs))
		}
	})

	t.Run("insertion order preserved", func(t *testing.T) {
		t.Parallel()
		if entry.UsedAs[0] != UsageBackground || entry.UsedAs[1] != UsageText {
			t.Errorf("got %v, expected [background text]", entry.UsedAs)
		}
	})
}

// TestColorDataEntry tests upsert behavior of the color map.
func TestColorDataEntry(t *testing.T) {
	t.Parallel()

	data := NewColorData()

	first := data.Entry("#FF0000")
	first.Count++
	second := data.Entry("#FF0000")
	second.Count++

	t.Run("same hex returns same entry", func(t *testing.T) {
		t.Parallel()
		if first != second {
			t.Error("expected the same entry for repeated hex")
		}
		if first.Count != 2 {
			t.Errorf("got count %d, expected 2", first.Count)
		}
	})

	t.Run("entry map holds one key", func(t *testing.T) {
		t.Parallel()
		if len(data.Colors) != 1 {
			t.Errorf("got %d keys, expected 1", len(data.Colors))
		}
	})
}

// TestPaletteSets tests ordered-set semantics of the palette.
func TestPaletteSets(t *testing.T) {
	t.Parallel()

	var p Palette
	p.AddBackground("#FFFFFF")
	p.AddText("#111111")
	p.AddBackground("#FFFFFF")
	p.AddBorder("#111111")

	t.Run("all set unions every usage", func(t *testing.T) {
		t.Parallel()
		if len(p.All) != 2 {
			t.Errorf("got %d colors in All, expected 2", len(p.All))
		}
	})

	t.Run("backgrounds deduplicated", func(t *testing.T) {
		t.Parallel()
		if len(p.Backgrounds) != 1 {
			t.Errorf("got %d backgrounds, expected 1", len(p.Backgrounds))
		}
	})

	t.Run("same hex may appear in several sets", func(t *testing.T) {
		t.Parallel()
		if len(p.Text) != 1 || len(p.Borders) != 1 {
			t.Errorf("got text=%v borders=%v, expected one entry each", p.Text, p.Borders)
		}
	})
}

// TestClassifyElement tests tag-to-kind classification.
func TestClassifyElement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		tag          string
		buttonStyled bool
		want         ElementKind
	}{
		{name: "h1 is heading", tag: "h1", want: KindHeading},
		{name: "h6 is heading", tag: "h6", want: KindHeading},
		{name: "p is paragraph", tag: "p", want: KindParagraph},
		{name: "blockquote is paragraph", tag: "blockquote", want: KindParagraph},
		{name: "button is button", tag: "button", want: KindButton},
		{name: "button-styled anchor is button", tag: "a", buttonStyled: true, want: KindButton},
		{name: "plain anchor is link", tag: "a", want: KindLink},
		{name: "div is generic", tag: "div", want: KindGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ClassifyElement(tt.tag, tt.buttonStyled); got != tt.want {
				t.Errorf("ClassifyElement(%q, %v) = %v, expected %v", tt.tag, tt.buttonStyled, got, tt.want)
			}
		})
	}
}
