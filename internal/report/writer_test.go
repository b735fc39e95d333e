package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/designlens/designlens/internal/model"
)

// sampleReport builds a small but fully populated report.
func sampleReport() *model.AccumulatedReport {
	report := model.NewAccumulatedReport("example.com")
	report.AddPage("/")
	report.AddPage("/about")

	white := report.ColorData.Entry("#FFFFFF")
	white.Count = 4
	white.AddUsage(model.UsageBackground)
	white.Instances = append(white.Instances, model.ColorInstance{
		Page:        "https://example.com/",
		TagName:     "body",
		CSSProperty: "background-color",
	})
	report.Palette.AddBackground("#FFFFFF")

	dark := report.ColorData.Entry("#222222")
	dark.Count = 3
	dark.AddUsage(model.UsageText)
	report.Palette.AddText("#222222")

	gray := report.ColorData.Entry("#8A8A8A")
	gray.Count = 1
	gray.AddUsage(model.UsageText)
	report.Palette.AddText("#8A8A8A")

	report.ColorData.ContrastPairs = append(report.ColorData.ContrastPairs,
		model.ContrastPair{
			TextHex:       "#222222",
			BackgroundHex: "#FFFFFF",
			Ratio:         15.94,
			Passes:        true,
			WCAGLevel:     "AAA",
			Page:          "https://example.com/",
			TagName:       "p",
		},
		model.ContrastPair{
			TextHex:       "#8A8A8A",
			BackgroundHex: "#FFFFFF",
			Ratio:         3.45,
			Passes:        false,
			WCAGLevel:     "Fail",
			Page:          "https://example.com/about",
			TagName:       "p",
		},
	)

	report.Headings["h1"].Locations = append(report.Headings["h1"].Locations, model.StyleLocation{
		Page:       "https://example.com/",
		Selector:   "h1",
		Text:       "Welcome",
		FontSize:   32,
		FontWeight: 700,
		Color:      "#222222",
	})
	report.Links["nav"].Locations = append(report.Links["nav"].Locations, model.StyleLocation{
		Page:     "https://example.com/",
		Selector: "nav a",
		Text:     "Home",
	})
	report.Images = append(report.Images, model.ImageInfo{
		Page:     "https://example.com/",
		Src:      "/logo.png",
		Alt:      "Logo",
		Selector: "img.logo",
	})
	report.QualityChecks[model.CheckMissingAlt] = []model.QualityIssue{
		{
			Page:     "https://example.com/about",
			Selector: "img:nth-of-type(2)",
			Detail:   "image has no alt attribute",
		},
	}

	return report
}

// TestSimpleWriter tests the human-readable text output.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	writer := NewSimpleWriter(&buf)

	n, err := writer.Write(sampleReport())
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if n != buf.Len() {
		t.Errorf("got byte count %d, buffer has %d", n, buf.Len())
	}

	output := buf.String()
	for _, want := range []string{
		"DESIGNLENS REPORT",
		"Site:           example.com",
		"Pages Analyzed: 2",
		"COLOR PALETTE",
		"#FFFFFF",
		"background",
		"STYLE INVENTORY",
		"h1=1",
		"Images: 1",
		"2 pairs measured, 1 failing WCAG AA",
		"[FAIL] #8A8A8A on #FFFFFF",
		"Missing Alt Text: 1",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q", want)
		}
	}

	t.Run("issue details hidden without verbose", func(t *testing.T) {
		t.Parallel()
		if strings.Contains(output, "img:nth-of-type(2)") {
			t.Error("issue selector shown without verbose")
		}
	})
}

// TestSimpleWriterVerbose tests the verbose detail sections.
func TestSimpleWriterVerbose(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	writer := NewSimpleWriter(&buf, WithVerbose(true))

	if _, err := writer.Write(sampleReport()); err != nil {
		t.Fatal(err)
	}

	output := buf.String()
	for _, want := range []string{
		"- /about",
		"img:nth-of-type(2)",
		"image has no alt attribute",
		"Page: https://example.com/about",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("verbose output missing %q", want)
		}
	}
}

// TestSimpleWriterEmptyReport tests section elision on an empty report.
func TestSimpleWriterEmptyReport(t *testing.T) {
	t.Parallel()

	t.Run("sections hidden by default", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(model.NewAccumulatedReport("example.com")); err != nil {
			t.Fatal(err)
		}
		if strings.Contains(buf.String(), "COLOR PALETTE") {
			t.Error("empty palette section shown without showEmpty")
		}
	})

	t.Run("sections shown with showEmpty", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithShowEmpty(true)).Write(model.NewAccumulatedReport("example.com")); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "No colors recorded") {
			t.Error("showEmpty did not include the empty palette section")
		}
	})
}

// TestJSONWriter tests JSON output and indent options.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("compact output round-trips", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		n, err := NewJSONWriter(&buf).Write(sampleReport())
		if err != nil {
			t.Fatal(err)
		}
		if n != buf.Len() {
			t.Errorf("got byte count %d, buffer has %d", n, buf.Len())
		}

		var decoded model.AccumulatedReport
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.Metadata.Domain != "example.com" {
			t.Errorf("got domain %q", decoded.Metadata.Domain)
		}
		if len(decoded.ColorData.ContrastPairs) != 2 {
			t.Errorf("got %d contrast pairs", len(decoded.ColorData.ContrastPairs))
		}
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(sampleReport()); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "\n  \"") {
			t.Error("pretty output not indented")
		}
		if !strings.HasSuffix(buf.String(), "\n") {
			t.Error("output missing trailing newline")
		}
	})

	t.Run("custom indent prefix", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithIndent(">", "\t")).Write(sampleReport()); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "\n>\t") {
			t.Error("custom prefix and indent not applied")
		}
	})
}

// TestFullJSONWriter tests the version-wrapped JSON output.
func TestFullJSONWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewFullJSONWriter(&buf, "1.2.3").Write(sampleReport()); err != nil {
		t.Fatal(err)
	}

	var wrapped JSONReport
	if err := json.Unmarshal(buf.Bytes(), &wrapped); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if wrapped.Version != "1.2.3" {
		t.Errorf("got version %q", wrapped.Version)
	}
	if wrapped.Report == nil || wrapped.Report.Metadata.Domain != "example.com" {
		t.Error("wrapped report missing or wrong")
	}
}

// TestMarkdownWriter tests the markdown output sections.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewMarkdownWriter(&buf).Write(sampleReport()); err != nil {
		t.Fatal(err)
	}

	output := buf.String()
	for _, want := range []string{
		"# DesignLens Report",
		"## Color Palette",
		"`#FFFFFF`",
		"## Contrast",
		"mermaid",
		"`#8A8A8A`",
		"3.45",
		"## Style Inventory",
		"### Headings",
		"Images found: 1",
		"### Missing Alt Text",
		"img:nth-of-type(2)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

// TestMarkdownWriterEmptyReport tests the no-data paths.
func TestMarkdownWriterEmptyReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewMarkdownWriter(&buf).Write(model.NewAccumulatedReport("example.com")); err != nil {
		t.Fatal(err)
	}

	output := buf.String()
	if !strings.Contains(output, "No colors recorded.") {
		t.Error("empty palette note missing")
	}
	if !strings.Contains(output, "No contrast pairs measured.") {
		t.Error("empty contrast note missing")
	}
}

// TestCSVWriter tests the CSV rows round-trip through a CSV reader.
func TestCSVWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := NewCSVWriter(&buf).Write(sampleReport())
	if err != nil {
		t.Fatal(err)
	}
	if n != buf.Len() {
		t.Errorf("got byte count %d, buffer has %d", n, buf.Len())
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	// Header + 3 color rows + 2 contrast rows.
	if len(records) != 6 {
		t.Fatalf("got %d records, expected 6", len(records))
	}
	if records[0][0] != "record" || records[0][1] != "hex" {
		t.Errorf("unexpected header %v", records[0])
	}

	t.Run("color rows", func(t *testing.T) {
		t.Parallel()
		first := records[1]
		if first[0] != "color" || first[1] != "#FFFFFF" || first[3] != "4" || first[4] != "background" {
			t.Errorf("unexpected first color row %v", first)
		}
	})

	t.Run("contrast rows", func(t *testing.T) {
		t.Parallel()
		failing := records[5]
		if failing[0] != "contrast" {
			t.Fatalf("unexpected record kind %q", failing[0])
		}
		if failing[1] != "#8A8A8A" || failing[2] != "#FFFFFF" || failing[5] != "3.45" || failing[6] != "Fail" {
			t.Errorf("unexpected contrast row %v", failing)
		}
	})
}

// errorWriter always fails, for MultiWriter error propagation.
type errorWriter struct{ err error }

func (w *errorWriter) Write(*model.AccumulatedReport) (int, error) {
	return 0, w.err
}

// TestMultiWriter tests fan-out and error propagation.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()
		var first, second bytes.Buffer
		multi := NewMultiWriter(NewJSONWriter(&first), NewSimpleWriter(&second))

		n, err := multi.Write(sampleReport())
		if err != nil {
			t.Fatal(err)
		}
		if first.Len() == 0 || second.Len() == 0 {
			t.Error("one of the writers got no output")
		}
		if n != first.Len()+second.Len() {
			t.Errorf("got total %d, buffers hold %d", n, first.Len()+second.Len())
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		var after bytes.Buffer
		multi := NewMultiWriter(&errorWriter{err: boom}, NewJSONWriter(&after))

		if _, err := multi.Write(sampleReport()); !errors.Is(err, boom) {
			t.Errorf("got err %v, expected the writer error", err)
		}
		if after.Len() != 0 {
			t.Error("writer after the failure still ran")
		}
	})
}

// TestCheckLabel tests quality check key formatting.
func TestCheckLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		check string
		want  string
	}{
		{model.CheckMissingAlt, "Missing Alt Text"},
		{model.CheckGhostButtons, "Ghost Buttons"},
		{model.CheckHeadingSkips, "Heading Level Skips"},
	}

	for _, tt := range tests {
		t.Run(tt.check, func(t *testing.T) {
			t.Parallel()
			if got := checkLabel(tt.check); got != tt.want {
				t.Errorf("checkLabel(%q) = %q, expected %q", tt.check, got, tt.want)
			}
		})
	}
}

// TestTruncateString tests the markdown cell truncation helper.
func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"long string truncated", "hello world", 8, "hello..."},
		{"tiny max hard-cut", "hello", 2, "he"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := truncateString(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncateString(%q, %d) = %q, expected %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}
