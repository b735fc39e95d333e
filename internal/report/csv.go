package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/designlens/designlens/internal/model"
)

// csvHeader is the unified header row. Color rows and contrast rows share
// one table, discriminated by the record column, so the output stays a
// single valid CSV file.
var csvHeader = []string{
	"record",
	"hex",
	"paired_hex",
	"count",
	"used_as",
	"ratio",
	"wcag_level",
	"large_text",
	"tag",
	"page",
}

// CSVWriter outputs color usage and contrast measurements as flat CSV
// rows for spreadsheet analysis.
//
// Design decision: We emit one file with a discriminator column rather
// than two files because the Writer interface addresses a single output
// destination, and a "record" column keeps both datasets filterable in
// any spreadsheet tool.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{
		baseWriter: newBaseWriter(output),
	}
}

// countingWriter tracks bytes written so Write can report them; the csv
// package does not expose a byte count.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}

// Write outputs the report's color and contrast data as CSV.
func (w *CSVWriter) Write(report *model.AccumulatedReport) (int, error) {
	counter := &countingWriter{w: w.output}
	cw := csv.NewWriter(counter)

	if err := cw.Write(csvHeader); err != nil {
		return counter.n, err
	}
	if err := w.writeColorRows(cw, report); err != nil {
		return counter.n, err
	}
	if err := w.writeContrastRows(cw, report); err != nil {
		return counter.n, err
	}

	cw.Flush()
	return counter.n, cw.Error()
}

// writeColorRows writes one row per distinct color.
func (w *CSVWriter) writeColorRows(cw *csv.Writer, report *model.AccumulatedReport) error {
	for _, hex := range orderedColors(report) {
		entry := report.ColorData.Colors[hex]
		row := []string{
			"color",
			hex,
			"",
			strconv.Itoa(entry.Count),
			usageLabel(entry.UsedAs),
			"",
			"",
			"",
			"",
			"",
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// writeContrastRows writes one row per measured contrast pair.
func (w *CSVWriter) writeContrastRows(cw *csv.Writer, report *model.AccumulatedReport) error {
	if report.ColorData == nil {
		return nil
	}
	for _, pair := range report.ColorData.ContrastPairs {
		row := []string{
			"contrast",
			pair.TextHex,
			pair.BackgroundHex,
			"",
			"",
			strconv.FormatFloat(pair.Ratio, 'f', 2, 64),
			pair.WCAGLevel,
			strconv.FormatBool(pair.IsLargeText),
			pair.TagName,
			pair.Page,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}
