package report

import (
	"io"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/designlens/designlens/internal/model"
)

// Writer defines the interface for report output.
// Implementations write audit results in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.AccumulatedReport) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.AccumulatedReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// titleCaser renders labels for human-readable output.
var titleCaser = cases.Title(language.English)

// checkLabel turns a quality check key like "missing_alt_text" into a
// display label like "Missing Alt Text".
func checkLabel(check string) string {
	return titleCaser.String(strings.ReplaceAll(check, "_", " "))
}

// usageLabel joins a color entry's usage tags into one display string.
func usageLabel(tags []model.UsageTag) string {
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ", ")
}

// orderedColors returns the report's color hex values in a stable order:
// palette insertion order first, then any stragglers sorted.
func orderedColors(report *model.AccumulatedReport) []string {
	if report.ColorData == nil {
		return nil
	}

	ordered := make([]string, 0, len(report.ColorData.Colors))
	seen := make(map[string]bool, len(report.ColorData.Colors))
	for _, hex := range report.Palette.All {
		if report.ColorData.Colors[hex] != nil && !seen[hex] {
			ordered = append(ordered, hex)
			seen[hex] = true
		}
	}

	var rest []string
	for hex := range report.ColorData.Colors {
		if !seen[hex] {
			rest = append(rest, hex)
		}
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}

// contrastFailures returns the report's failing contrast pairs in
// recorded order.
func contrastFailures(report *model.AccumulatedReport) []model.ContrastPair {
	if report.ColorData == nil {
		return nil
	}
	var failures []model.ContrastPair
	for _, pair := range report.ColorData.ContrastPairs {
		if !pair.Passes {
			failures = append(failures, pair)
		}
	}
	return failures
}

// inventoryCount sums the sightings across one style map.
func inventoryCount(groups map[string]*model.StyleGroup) int {
	var n int
	for _, g := range groups {
		if g != nil {
			n += len(g.Locations)
		}
	}
	return n
}
