// Package main provides the entry point for the DesignLens CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for DesignLens.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "designlens",
		Short: "Visual design and accessibility auditor for websites",
		Long: `DesignLens audits the visual design system of a website.
It crawls a site, inventories headings, body copy, buttons, and links,
extracts the color palette, and measures WCAG contrast compliance.

Audit results accumulate across runs: re-auditing a site merges newly
analyzed pages into the persisted report instead of replacing it.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAuditCmd())
	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewResetCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
