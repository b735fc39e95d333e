package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/designlens/designlens/internal/config"
	"github.com/designlens/designlens/internal/database"
)

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [domain]",
		Short: "Render the persisted audit report for a domain",
		Long: `Report renders the accumulated audit report persisted by earlier
"designlens audit" runs, without crawling anything.

Run without a domain to list every domain with a persisted report.

Examples:
  # List audited domains
  designlens report

  # Render the persisted report for a domain
  designlens report example.com

  # Export it as JSON
  designlens report --json -o report.json example.com`,
		Args: cobra.MaximumNArgs(1),
		RunE: runReportCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown and --csv)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json and --csv)")
	cmd.Flags().Bool("csv", false,
		"Output CSV color and contrast rows (mutually exclusive with --json and --markdown)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runReportCmd executes the report command.
func runReportCmd(cmd *cobra.Command, args []string) error {
	cfg := config.NewConfig()
	cfg.DBDir = config.XDGDataDir()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return err
	}
	if cfg.CSVReport, err = cmd.Flags().GetBool("csv"); err != nil {
		return err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return err
	}
	if err := cfg.ValidateReportFormat(); err != nil {
		return err
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()

	if len(args) == 0 {
		domains, err := db.Domains(ctx)
		if err != nil {
			return fmt.Errorf("failed to list domains: %w", err)
		}
		if len(domains) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No audit reports found. Run \"designlens audit <url>\" first.")
			return nil
		}
		for _, domain := range domains {
			fmt.Fprintln(cmd.OutOrStdout(), domain)
		}
		return nil
	}

	domain := args[0]
	auditReport, err := db.Load(ctx, domain)
	if err != nil {
		return fmt.Errorf("failed to load report: %w", err)
	}
	if auditReport == nil {
		return fmt.Errorf("no audit report for %q (run \"designlens audit %s\" first)", domain, domain)
	}

	return outputReport(cfg, auditReport)
}
