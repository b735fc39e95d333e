package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/designlens/designlens/internal/config"
	"github.com/designlens/designlens/internal/database"
	"github.com/designlens/designlens/internal/model"
)

// Constants for the overall design-health direction between two audits.
const (
	changeWorsened  = "worsened"
	changeImproved  = "improved"
	changeUnchanged = "unchanged"
)

// NewCompareCmd creates the compare command.
// This command compares audit snapshots stored in the history table.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <domain>",
		Short: "Compare audit snapshots for a domain over time",
		Long: `Compare displays how a site's design system drifted between two audits.

Every completed "designlens audit" run archives a snapshot of the
accumulated report. This command retrieves those snapshots and shows:
- Colors that appeared in or vanished from the palette
- Contrast failures that are new or have been resolved
- Quality check deltas (missing alt text, ghost buttons, ...)

The comparison requires at least two snapshots for the specified domain.
Use "designlens report" to list audited domains.

Examples:
  # Compare the latest two audits of a site
  designlens compare example.com

  # List all archived audits for a site
  designlens compare --list example.com

  # Compare the latest audit with a specific snapshot by ID
  designlens compare --with-snapshot-id 5 example.com

  # Compare with the first audit since a date
  designlens compare --since "2026-01-01" example.com

  # Output the comparison in JSON format
  designlens compare --json example.com`,
		Args: cobra.ExactArgs(1),
		RunE: runCompareCmd,
	}

	cmd.Flags().BoolP("list", "l", false,
		"List archived audit snapshots for the domain")
	cmd.Flags().Int64P("with-snapshot-id", "i", 0,
		"Compare with a specific snapshot by ID (use --list to see available IDs)")
	cmd.Flags().StringP("since", "s", "",
		"Compare with the first snapshot taken after this date (format: YYYY-MM-DD)")
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	domain := strings.ToLower(strings.TrimSpace(args[0]))
	if domain == "" {
		return errors.New("domain is required")
	}

	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	withSnapshotID, err := cmd.Flags().GetInt64("with-snapshot-id")
	if err != nil {
		return err
	}
	sinceDate, err := cmd.Flags().GetString("since")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if listHistory {
		return listAuditHistory(ctx, out, db, domain)
	}
	return runComparison(ctx, out, db, domain, withSnapshotID, sinceDate, jsonOutput, markdownOutput)
}

// listAuditHistory lists all archived snapshots for a domain.
func listAuditHistory(ctx context.Context, out io.Writer, db *database.AuditDB, domain string) error {
	entries, err := db.History(ctx, domain)
	if err != nil {
		return fmt.Errorf("failed to get audit history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintf(out, "No audit history found for %s\n", domain)
		fmt.Fprintln(out, "\nUse \"designlens audit\" to audit this site.")
		return nil
	}

	fmt.Fprintf(out, "Audit history for %s (%d audits):\n\n", domain, len(entries))
	fmt.Fprintf(out, "  %-6s  %-20s  %s\n", "ID", "Date", "Pages")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 40))

	for _, entry := range entries {
		fmt.Fprintf(out, "  %-6d  %-20s  %d\n",
			entry.ID,
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
			entry.PagesAnalyzed,
		)
	}

	fmt.Fprintln(out, "\nUse \"designlens compare <domain>\" to compare the latest two audits.")
	fmt.Fprintln(out, "Use \"designlens compare --with-snapshot-id <id> <domain>\" to compare with a specific audit.")

	return nil
}

// runComparison loads the two snapshots to compare and renders the result.
func runComparison(ctx context.Context, out io.Writer, db *database.AuditDB, domain string, withSnapshotID int64, sinceDate string, jsonOutput, markdownOutput bool) error {
	entries, err := db.History(ctx, domain)
	if err != nil {
		return fmt.Errorf("failed to get audit history: %w", err)
	}

	if len(entries) == 0 {
		return fmt.Errorf("no audit history found for %s", domain)
	}
	if len(entries) < 2 {
		return fmt.Errorf("at least 2 audits are required for comparison (found %d)", len(entries))
	}

	// The newest snapshot is always the current side of the comparison.
	currentEntry := entries[0]

	var previousEntry *database.HistoryEntry
	switch {
	case withSnapshotID > 0:
		// The id must belong to this domain's history; snapshots of other
		// domains are not comparable.
		for i := range entries {
			if entries[i].ID == withSnapshotID {
				previousEntry = &entries[i]
				break
			}
		}
		if previousEntry == nil {
			return fmt.Errorf("snapshot %d not found in the history of %s", withSnapshotID, domain)
		}
	case sinceDate != "":
		parsedDate, err := time.Parse("2006-01-02", sinceDate)
		if err != nil {
			return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
		}
		// Entries are newest first, so walk backwards to find the oldest
		// snapshot taken at or after the date.
		for i := len(entries) - 1; i >= 0; i-- {
			if !entries[i].CreatedAt.Before(parsedDate) {
				previousEntry = &entries[i]
				break
			}
		}
		if previousEntry == nil {
			return fmt.Errorf("no audits found since %s", sinceDate)
		}
		if previousEntry.ID == currentEntry.ID {
			return fmt.Errorf("only one audit found since %s; at least 2 are required for comparison", sinceDate)
		}
	default:
		previousEntry = &entries[1]
	}

	previous, err := db.LoadSnapshot(ctx, previousEntry.ID)
	if err != nil {
		return fmt.Errorf("failed to load snapshot %d: %w", previousEntry.ID, err)
	}
	current, err := db.LoadSnapshot(ctx, currentEntry.ID)
	if err != nil {
		return fmt.Errorf("failed to load snapshot %d: %w", currentEntry.ID, err)
	}

	comparison := compareSnapshots(domain, previous, current, *previousEntry, currentEntry)

	if jsonOutput {
		return outputComparisonJSON(out, comparison)
	}
	if markdownOutput {
		return outputComparisonMarkdown(out, comparison)
	}
	return outputComparisonText(out, comparison)
}

// ComparisonResult holds the result of comparing two audit snapshots.
type ComparisonResult struct {
	// Domain is the audited site.
	Domain string `json:"domain"`

	// PreviousAudit summarizes the older snapshot.
	PreviousAudit AuditSummary `json:"previous_audit"`

	// CurrentAudit summarizes the newer snapshot.
	CurrentAudit AuditSummary `json:"current_audit"`

	// NewColors lists palette colors present only in the current audit.
	NewColors []string `json:"new_colors,omitempty"`

	// RemovedColors lists palette colors present only in the previous audit.
	RemovedColors []string `json:"removed_colors,omitempty"`

	// NewFailures lists contrast failures introduced since the previous audit.
	NewFailures []model.ContrastPair `json:"new_contrast_failures,omitempty"`

	// ResolvedFailures lists contrast failures that are gone in the current audit.
	ResolvedFailures []model.ContrastPair `json:"resolved_contrast_failures,omitempty"`

	// UnchangedFailures is the number of failures present in both audits.
	UnchangedFailures int `json:"unchanged_failure_count"`

	// QualityDeltas maps each quality check to its change in finding count.
	QualityDeltas map[string]int `json:"quality_deltas,omitempty"`

	// Change describes the overall design-health movement.
	Change AuditChange `json:"change"`
}

// AuditSummary contains the headline numbers of one snapshot.
type AuditSummary struct {
	// SnapshotID is the history row id of the snapshot.
	SnapshotID int64 `json:"snapshot_id"`

	// TakenAt is when the snapshot was archived.
	TakenAt time.Time `json:"taken_at"`

	// PagesAnalyzed is the number of pages merged into the snapshot.
	PagesAnalyzed int `json:"pages_analyzed"`

	// DistinctColors is the size of the site-wide palette.
	DistinctColors int `json:"distinct_colors"`

	// ContrastPairs is the number of measured text/background pairs.
	ContrastPairs int `json:"contrast_pairs"`

	// FailingPairs is the number of pairs below WCAG AA.
	FailingPairs int `json:"failing_pairs"`

	// QualityIssues is the total finding count across all quality checks.
	QualityIssues int `json:"quality_issues"`
}

// AuditChange describes the movement between two snapshots.
type AuditChange struct {
	// Direction is "improved", "worsened", or "unchanged".
	Direction string `json:"direction"`

	// ColorDelta is the change in distinct palette colors.
	ColorDelta int `json:"color_delta"`

	// FailingDelta is the change in failing contrast pairs.
	FailingDelta int `json:"failing_delta"`

	// QualityDelta is the change in total quality findings.
	QualityDelta int `json:"quality_delta"`
}

// compareSnapshots diffs two accumulated reports and builds the comparison.
func compareSnapshots(domain string, previous, current *model.AccumulatedReport, previousEntry, currentEntry database.HistoryEntry) *ComparisonResult {
	result := &ComparisonResult{
		Domain:        domain,
		PreviousAudit: summarizeSnapshot(previous, previousEntry),
		CurrentAudit:  summarizeSnapshot(current, currentEntry),
	}

	// Palette drift. Insertion order of the current palette is kept for
	// new colors; the previous palette's order for removed ones.
	previousColors := make(map[string]bool, len(previous.Palette.All))
	for _, hex := range previous.Palette.All {
		previousColors[hex] = true
	}
	currentColors := make(map[string]bool, len(current.Palette.All))
	for _, hex := range current.Palette.All {
		currentColors[hex] = true
	}
	for _, hex := range current.Palette.All {
		if !previousColors[hex] {
			result.NewColors = append(result.NewColors, hex)
		}
	}
	for _, hex := range previous.Palette.All {
		if !currentColors[hex] {
			result.RemovedColors = append(result.RemovedColors, hex)
		}
	}

	// Contrast drift, keyed per page and location so the same bad pair on
	// two pages counts as two independent failures.
	previousFailures := make(map[string]model.ContrastPair)
	for _, pair := range failingPairs(previous) {
		previousFailures[failureKey(pair)] = pair
	}
	currentFailures := make(map[string]model.ContrastPair)
	for _, pair := range failingPairs(current) {
		currentFailures[failureKey(pair)] = pair
	}
	for _, pair := range failingPairs(current) {
		if _, exists := previousFailures[failureKey(pair)]; !exists {
			result.NewFailures = append(result.NewFailures, pair)
		}
	}
	for _, pair := range failingPairs(previous) {
		if _, exists := currentFailures[failureKey(pair)]; exists {
			result.UnchangedFailures++
		} else {
			result.ResolvedFailures = append(result.ResolvedFailures, pair)
		}
	}

	// Quality check drift, only for checks whose count actually moved.
	for _, check := range model.QualityCheckNames {
		delta := len(current.QualityChecks[check]) - len(previous.QualityChecks[check])
		if delta != 0 {
			if result.QualityDeltas == nil {
				result.QualityDeltas = make(map[string]int)
			}
			result.QualityDeltas[check] = delta
		}
	}

	result.Change = calculateChange(result.PreviousAudit, result.CurrentAudit)
	return result
}

// summarizeSnapshot extracts the headline numbers from one snapshot.
func summarizeSnapshot(report *model.AccumulatedReport, entry database.HistoryEntry) AuditSummary {
	summary := AuditSummary{
		SnapshotID:     entry.ID,
		TakenAt:        entry.CreatedAt,
		PagesAnalyzed:  len(report.Metadata.PagesAnalyzed),
		DistinctColors: len(report.Palette.All),
	}
	if report.ColorData != nil {
		summary.ContrastPairs = len(report.ColorData.ContrastPairs)
	}
	summary.FailingPairs = len(failingPairs(report))
	for _, issues := range report.QualityChecks {
		summary.QualityIssues += len(issues)
	}
	return summary
}

// failingPairs returns the contrast pairs below WCAG AA.
func failingPairs(report *model.AccumulatedReport) []model.ContrastPair {
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

// failureKey generates a unique key for a contrast failure for comparison.
func failureKey(pair model.ContrastPair) string {
	return pair.TextHex + "|" + pair.BackgroundHex + "|" + pair.Page + "|" + pair.Location
}

// calculateChange calculates the overall movement between two snapshots.
func calculateChange(previous, current AuditSummary) AuditChange {
	change := AuditChange{
		ColorDelta:   current.DistinctColors - previous.DistinctColors,
		FailingDelta: current.FailingPairs - previous.FailingPairs,
		QualityDelta: current.QualityIssues - previous.QualityIssues,
	}

	// Contrast failures weigh more than other quality findings when
	// deciding the overall direction.
	previousScore := previous.FailingPairs*10 + previous.QualityIssues
	currentScore := current.FailingPairs*10 + current.QualityIssues

	switch {
	case currentScore < previousScore:
		change.Direction = changeImproved
	case currentScore > previousScore:
		change.Direction = changeWorsened
	default:
		change.Direction = changeUnchanged
	}
	return change
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(out io.Writer, result *ComparisonResult) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonMarkdown outputs the comparison result in Markdown format.
func outputComparisonMarkdown(out io.Writer, result *ComparisonResult) error {
	fmt.Fprintf(out, "# Audit Comparison: %s\n\n", result.Domain)

	fmt.Fprintln(out, "## Summary")
	fmt.Fprintf(out, "\n**Design Status:** %s\n\n", formatChangeDirection(result.Change.Direction))

	fmt.Fprintln(out, "| Metric | Previous | Current | Change |")
	fmt.Fprintln(out, "|--------|----------|---------|--------|")
	fmt.Fprintf(out, "| Date | %s | %s | - |\n",
		result.PreviousAudit.TakenAt.Format("2006-01-02 15:04"),
		result.CurrentAudit.TakenAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "| Pages analyzed | %d | %d | %s |\n",
		result.PreviousAudit.PagesAnalyzed,
		result.CurrentAudit.PagesAnalyzed,
		formatDelta(result.CurrentAudit.PagesAnalyzed-result.PreviousAudit.PagesAnalyzed))
	fmt.Fprintf(out, "| Distinct colors | %d | %d | %s |\n",
		result.PreviousAudit.DistinctColors,
		result.CurrentAudit.DistinctColors,
		formatDelta(result.Change.ColorDelta))
	fmt.Fprintf(out, "| Contrast pairs | %d | %d | %s |\n",
		result.PreviousAudit.ContrastPairs,
		result.CurrentAudit.ContrastPairs,
		formatDelta(result.CurrentAudit.ContrastPairs-result.PreviousAudit.ContrastPairs))
	fmt.Fprintf(out, "| Failing pairs | %d | %d | %s |\n",
		result.PreviousAudit.FailingPairs,
		result.CurrentAudit.FailingPairs,
		formatDelta(result.Change.FailingDelta))
	fmt.Fprintf(out, "| Quality issues | %d | %d | %s |\n",
		result.PreviousAudit.QualityIssues,
		result.CurrentAudit.QualityIssues,
		formatDelta(result.Change.QualityDelta))

	if len(result.NewColors) > 0 {
		fmt.Fprintf(out, "\n## New Colors (%d)\n\n", len(result.NewColors))
		for _, hex := range result.NewColors {
			fmt.Fprintf(out, "- `%s`\n", hex)
		}
	}
	if len(result.RemovedColors) > 0 {
		fmt.Fprintf(out, "\n## Removed Colors (%d)\n\n", len(result.RemovedColors))
		for _, hex := range result.RemovedColors {
			fmt.Fprintf(out, "- ~~`%s`~~\n", hex)
		}
	}

	if len(result.NewFailures) > 0 {
		fmt.Fprintf(out, "\n## New Contrast Failures (%d)\n\n", len(result.NewFailures))
		for _, pair := range result.NewFailures {
			fmt.Fprintf(out, "- **%s on %s** ratio %.2f\n", pair.TextHex, pair.BackgroundHex, pair.Ratio)
			if pair.Page != "" {
				fmt.Fprintf(out, "  - Page: `%s`\n", pair.Page)
			}
		}
	}
	if len(result.ResolvedFailures) > 0 {
		fmt.Fprintf(out, "\n## Resolved Contrast Failures (%d)\n\n", len(result.ResolvedFailures))
		for _, pair := range result.ResolvedFailures {
			fmt.Fprintf(out, "- ~~**%s on %s** ratio %.2f~~\n", pair.TextHex, pair.BackgroundHex, pair.Ratio)
		}
	}

	if result.UnchangedFailures > 0 {
		fmt.Fprintf(out, "\n---\n\n*%d contrast failures unchanged*\n", result.UnchangedFailures)
	}

	return nil
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(out io.Writer, result *ComparisonResult) error {
	fmt.Fprintf(out, "Audit Comparison: %s\n", result.Domain)
	fmt.Fprintln(out, strings.Repeat("=", 60))

	fmt.Fprintf(out, "\nDesign Status: %s\n", formatChangeDirection(result.Change.Direction))

	fmt.Fprintf(out, "\nPrevious audit: %s (snapshot %d)\n",
		result.PreviousAudit.TakenAt.Format("2006-01-02 15:04:05"), result.PreviousAudit.SnapshotID)
	fmt.Fprintf(out, "Current audit:  %s (snapshot %d)\n",
		result.CurrentAudit.TakenAt.Format("2006-01-02 15:04:05"), result.CurrentAudit.SnapshotID)

	fmt.Fprintln(out, "\nAudit Summary:")
	fmt.Fprintf(out, "  %-16s  %-10s  %-10s  %-10s\n", "Metric", "Previous", "Current", "Change")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 50))
	fmt.Fprintf(out, "  %-16s  %-10d  %-10d  %-10s\n", "Pages analyzed",
		result.PreviousAudit.PagesAnalyzed, result.CurrentAudit.PagesAnalyzed,
		formatDelta(result.CurrentAudit.PagesAnalyzed-result.PreviousAudit.PagesAnalyzed))
	fmt.Fprintf(out, "  %-16s  %-10d  %-10d  %-10s\n", "Distinct colors",
		result.PreviousAudit.DistinctColors, result.CurrentAudit.DistinctColors,
		formatDelta(result.Change.ColorDelta))
	fmt.Fprintf(out, "  %-16s  %-10d  %-10d  %-10s\n", "Contrast pairs",
		result.PreviousAudit.ContrastPairs, result.CurrentAudit.ContrastPairs,
		formatDelta(result.CurrentAudit.ContrastPairs-result.PreviousAudit.ContrastPairs))
	fmt.Fprintf(out, "  %-16s  %-10d  %-10d  %-10s\n", "Failing pairs",
		result.PreviousAudit.FailingPairs, result.CurrentAudit.FailingPairs,
		formatDelta(result.Change.FailingDelta))
	fmt.Fprintf(out, "  %-16s  %-10d  %-10d  %-10s\n", "Quality issues",
		result.PreviousAudit.QualityIssues, result.CurrentAudit.QualityIssues,
		formatDelta(result.Change.QualityDelta))

	if len(result.NewColors) > 0 {
		fmt.Fprintf(out, "\nNew Colors (%d): %s\n", len(result.NewColors), strings.Join(result.NewColors, " "))
	}
	if len(result.RemovedColors) > 0 {
		fmt.Fprintf(out, "\nRemoved Colors (%d): %s\n", len(result.RemovedColors), strings.Join(result.RemovedColors, " "))
	}

	if len(result.NewFailures) > 0 {
		fmt.Fprintf(out, "\nNew Contrast Failures (%d):\n", len(result.NewFailures))
		for _, pair := range result.NewFailures {
			fmt.Fprintf(out, "  [+] %s on %s  ratio %.2f\n", pair.TextHex, pair.BackgroundHex, pair.Ratio)
			if pair.Page != "" {
				fmt.Fprintf(out, "      Page: %s\n", pair.Page)
			}
		}
	}
	if len(result.ResolvedFailures) > 0 {
		fmt.Fprintf(out, "\nResolved Contrast Failures (%d):\n", len(result.ResolvedFailures))
		for _, pair := range result.ResolvedFailures {
			fmt.Fprintf(out, "  [-] %s on %s  ratio %.2f\n", pair.TextHex, pair.BackgroundHex, pair.Ratio)
		}
	}

	if len(result.QualityDeltas) > 0 {
		fmt.Fprintln(out, "\nQuality Check Changes:")
		for _, check := range model.QualityCheckNames {
			if delta, ok := result.QualityDeltas[check]; ok {
				fmt.Fprintf(out, "  %-24s %s\n", checkLabelText(check), formatDelta(delta))
			}
		}
	}

	if result.UnchangedFailures > 0 {
		fmt.Fprintf(out, "\nUnchanged: %d contrast failures\n", result.UnchangedFailures)
	}

	return nil
}

// formatChangeDirection formats the change direction for display.
func formatChangeDirection(direction string) string {
	switch direction {
	case changeImproved:
		return "IMPROVED (fewer findings)"
	case changeWorsened:
		return "WORSENED (more findings)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}

// checkLabelText turns a quality check name into a display label,
// e.g. "missing_alt_text" into "missing alt text".
func checkLabelText(check string) string {
	return strings.ReplaceAll(check, "_", " ")
}
