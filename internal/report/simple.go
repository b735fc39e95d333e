package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/designlens/designlens/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no findings are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.AccumulatedReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writePalette(&sb, report)
	w.writeInventory(&sb, report)
	w.writeContrast(&sb, report)
	w.writeQualityChecks(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with audit information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.AccumulatedReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         DESIGNLENS REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Site:           %s\n", report.Metadata.Domain))
	sb.WriteString(fmt.Sprintf("Pages Analyzed: %d\n", len(report.Metadata.PagesAnalyzed)))
	if w.verbose {
		for _, page := range report.Metadata.PagesAnalyzed {
			sb.WriteString(fmt.Sprintf("  - %s\n", page))
		}
	}
	sb.WriteString("\n")
}

// writePalette writes the site-wide color palette section.
func (w *SimpleWriter) writePalette(sb *strings.Builder, report *model.AccumulatedReport) {
	colors := orderedColors(report)
	if len(colors) == 0 && !w.showEmpty {
		return
	}

	w.writeSectionHeader(sb, "COLOR PALETTE")

	if len(colors) == 0 {
		sb.WriteString("  No colors recorded\n\n")
		return
	}

	sb.WriteString(fmt.Sprintf("  %d distinct colors (%d backgrounds, %d text, %d borders)\n\n",
		len(report.Palette.All),
		len(report.Palette.Backgrounds),
		len(report.Palette.Text),
		len(report.Palette.Borders),
	))

	for _, hex := range colors {
		entry := report.ColorData.Colors[hex]
		sb.WriteString(fmt.Sprintf("  %s  x%-4d %s\n", hex, entry.Count, usageLabel(entry.UsedAs)))
	}
	sb.WriteString("\n")
}

// writeInventory writes the typography and component inventory section.
func (w *SimpleWriter) writeInventory(sb *strings.Builder, report *model.AccumulatedReport) {
	total := inventoryCount(report.Headings) + inventoryCount(report.Paragraphs) +
		inventoryCount(report.Buttons) + inventoryCount(report.Links)
	if total == 0 && !w.showEmpty {
		return
	}

	w.writeSectionHeader(sb, "STYLE INVENTORY")

	w.writeInventoryGroup(sb, "Headings", model.HeadingLevels, report.Headings)
	w.writeInventoryGroup(sb, "Paragraphs", model.ParagraphKinds, report.Paragraphs)
	w.writeInventoryGroup(sb, "Buttons", model.ButtonKinds, report.Buttons)
	w.writeInventoryGroup(sb, "Links", model.LinkKinds, report.Links)
	sb.WriteString(fmt.Sprintf("  Images: %d\n", len(report.Images)))
	sb.WriteString("\n")
}

// writeInventoryGroup writes the sighting counts for one style map.
func (w *SimpleWriter) writeInventoryGroup(sb *strings.Builder, label string, kinds []string, groups map[string]*model.StyleGroup) {
	var parts []string
	for _, kind := range kinds {
		group := groups[kind]
		if group == nil || len(group.Locations) == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%d", kind, len(group.Locations)))
	}
	if len(parts) == 0 && !w.showEmpty {
		return
	}
	if len(parts) == 0 {
		parts = []string{"none"}
	}
	sb.WriteString(fmt.Sprintf("  %-11s %s\n", label+":", strings.Join(parts, ", ")))
}

// writeContrast writes the contrast measurement section.
func (w *SimpleWriter) writeContrast(sb *strings.Builder, report *model.AccumulatedReport) {
	if report.ColorData == nil || (len(report.ColorData.ContrastPairs) == 0 && !w.showEmpty) {
		return
	}

	w.writeSectionHeader(sb, "CONTRAST")

	pairs := report.ColorData.ContrastPairs
	failures := contrastFailures(report)
	sb.WriteString(fmt.Sprintf("  %d pairs measured, %d failing WCAG AA\n\n", len(pairs), len(failures)))

	for _, pair := range failures {
		size := "normal"
		if pair.IsLargeText {
			size = "large"
		}
		sb.WriteString(fmt.Sprintf("  [FAIL] %s on %s  ratio %.2f (%s text, <%s>)\n",
			pair.TextHex, pair.BackgroundHex, pair.Ratio, size, pair.TagName))
		if w.verbose {
			sb.WriteString(fmt.Sprintf("         Page: %s\n", pair.Page))
		}
	}
	if len(failures) > 0 {
		sb.WriteString("\n")
	}
}

// writeQualityChecks writes the accessibility findings section.
func (w *SimpleWriter) writeQualityChecks(sb *strings.Builder, report *model.AccumulatedReport) {
	var total int
	for _, issues := range report.QualityChecks {
		total += len(issues)
	}
	if total == 0 && !w.showEmpty {
		return
	}

	w.writeSectionHeader(sb, "QUALITY CHECKS")

	for _, check := range model.QualityCheckNames {
		issues := report.QualityChecks[check]
		if len(issues) == 0 && !w.showEmpty {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s: %d\n", checkLabel(check), len(issues)))
		if !w.verbose {
			continue
		}
		for _, issue := range issues {
			sb.WriteString(fmt.Sprintf("    * %s\n", issue.Selector))
			if issue.Detail != "" {
				sb.WriteString(fmt.Sprintf("      %s\n", issue.Detail))
			}
			sb.WriteString(fmt.Sprintf("      Page: %s\n", issue.Page))
		}
	}
	sb.WriteString("\n")
}

// writeSectionHeader writes a dashed section divider with its title.
func (w *SimpleWriter) writeSectionHeader(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by DesignLens\n")
	sb.WriteString("https://github.com/designlens/designlens\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
