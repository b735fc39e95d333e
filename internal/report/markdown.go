package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/designlens/designlens/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.AccumulatedReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writePalette(md, report)
	w.writeContrast(md, report)
	w.writeInventory(md, report)
	w.writeQualityChecks(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with audit information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.AccumulatedReport) {
	md.H1("DesignLens Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Site", "`" + report.Metadata.Domain + "`"},
			{"Pages Analyzed", strconv.Itoa(len(report.Metadata.PagesAnalyzed))},
			{"Distinct Colors", strconv.Itoa(len(report.Palette.All))},
			{"Contrast Pairs", strconv.Itoa(w.pairCount(report))},
		},
	})
	md.PlainText("")
}

// pairCount returns the number of recorded contrast pairs.
func (w *MarkdownWriter) pairCount(report *model.AccumulatedReport) int {
	if report.ColorData == nil {
		return 0
	}
	return len(report.ColorData.ContrastPairs)
}

// writePalette writes the color palette table.
func (w *MarkdownWriter) writePalette(md *markdown.Markdown, report *model.AccumulatedReport) {
	md.H2("Color Palette")
	md.PlainText("")

	colors := orderedColors(report)
	if len(colors) == 0 {
		md.PlainText("No colors recorded.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(colors))
	for _, hex := range colors {
		entry := report.ColorData.Colors[hex]
		rows = append(rows, []string{
			"`" + hex + "`",
			strconv.Itoa(entry.Count),
			usageLabel(entry.UsedAs),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Color", "Sightings", "Used As"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeContrast writes the contrast summary, distribution chart, and
// failure table.
func (w *MarkdownWriter) writeContrast(md *markdown.Markdown, report *model.AccumulatedReport) {
	md.H2("Contrast")
	md.PlainText("")

	if w.pairCount(report) == 0 {
		md.PlainText("No contrast pairs measured.")
		md.PlainText("")
		return
	}

	var aaa, aa, fail int
	for _, pair := range report.ColorData.ContrastPairs {
		switch pair.WCAGLevel {
		case "AAA":
			aaa++
		case "AA":
			aa++
		default:
			fail++
		}
	}

	w.writeContrastChart(md, aaa, aa, fail)

	failures := contrastFailures(report)
	switch {
	case fail > 0:
		md.Warningf("%d text/background pair(s) fail WCAG AA contrast.", fail)
	case aa > 0:
		md.Importantf("All pairs pass WCAG AA; %d pair(s) fall short of AAA.", aa)
	default:
		md.Tip("Every measured pair passes WCAG AAA contrast.")
	}
	md.PlainText("")

	if len(failures) == 0 {
		return
	}

	rows := make([][]string, 0, len(failures))
	for _, pair := range failures {
		size := "normal"
		if pair.IsLargeText {
			size = "large"
		}
		rows = append(rows, []string{
			"`" + pair.TextHex + "`",
			"`" + pair.BackgroundHex + "`",
			fmt.Sprintf("%.2f", pair.Ratio),
			size,
			"`" + pair.TagName + "`",
			truncateString(pair.Page, 50),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Text", "Background", "Ratio", "Size", "Element", "Page"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeContrastChart writes a mermaid pie chart of WCAG level distribution.
func (w *MarkdownWriter) writeContrastChart(md *markdown.Markdown, aaa, aa, fail int) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Contrast Level Distribution"),
		piechart.WithShowData(true),
	)

	if aaa > 0 {
		chart.LabelAndIntValue("AAA", uint64(aaa))
	}
	if aa > 0 {
		chart.LabelAndIntValue("AA", uint64(aa))
	}
	if fail > 0 {
		chart.LabelAndIntValue("Fail", uint64(fail))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeInventory writes the typography and component inventory tables.
func (w *MarkdownWriter) writeInventory(md *markdown.Markdown, report *model.AccumulatedReport) {
	md.H2("Style Inventory")
	md.PlainText("")

	groups := []struct {
		label  string
		kinds  []string
		styles map[string]*model.StyleGroup
	}{
		{"Headings", model.HeadingLevels, report.Headings},
		{"Paragraphs", model.ParagraphKinds, report.Paragraphs},
		{"Buttons", model.ButtonKinds, report.Buttons},
		{"Links", model.LinkKinds, report.Links},
	}

	for _, group := range groups {
		rows := w.inventoryRows(group.kinds, group.styles)
		if len(rows) == 0 {
			continue
		}
		md.PlainText("### " + group.label)
		md.PlainText("")
		md.Table(markdown.TableSet{
			Header: []string{"Type", "Count", "Sample", "Style"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	md.PlainTextf("Images found: %d", len(report.Images))
	md.PlainText("")
}

// inventoryRows builds the table rows for one style map, one row per
// sub-type with sightings. The first sighting supplies the sample.
func (w *MarkdownWriter) inventoryRows(kinds []string, styles map[string]*model.StyleGroup) [][]string {
	var rows [][]string
	for _, kind := range kinds {
		group := styles[kind]
		if group == nil || len(group.Locations) == 0 {
			continue
		}
		first := group.Locations[0]
		style := "-"
		if first.FontSize > 0 {
			style = fmt.Sprintf("%.0fpx / %d", first.FontSize, first.FontWeight)
			if first.Color != "" {
				style += " / " + first.Color
			}
		}
		rows = append(rows, []string{
			"`" + kind + "`",
			strconv.Itoa(len(group.Locations)),
			truncateString(first.Text, 40),
			style,
		})
	}
	return rows
}

// writeQualityChecks writes the accessibility findings tables.
func (w *MarkdownWriter) writeQualityChecks(md *markdown.Markdown, report *model.AccumulatedReport) {
	md.H2("Quality Checks")
	md.PlainText("")

	var total int
	for _, issues := range report.QualityChecks {
		total += len(issues)
	}
	if total == 0 {
		md.Tip("No accessibility or consistency issues detected.")
		md.PlainText("")
		return
	}

	for _, check := range model.QualityCheckNames {
		issues := report.QualityChecks[check]
		if len(issues) == 0 {
			continue
		}

		md.PlainText("### " + checkLabel(check))
		md.PlainText("")

		rows := make([][]string, 0, len(issues))
		for _, issue := range issues {
			detail := issue.Detail
			if detail == "" {
				detail = "-"
			}
			rows = append(rows, []string{
				"`" + truncateString(issue.Selector, 40) + "`",
				truncateString(detail, 60),
				truncateString(issue.Page, 50),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Selector", "Detail", "Page"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [DesignLens](https://github.com/designlens/designlens)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
