package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/designlens/designlens/internal/config"
	"github.com/designlens/designlens/internal/database"
)

// NewResetCmd creates the reset command.
func NewResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <domain>",
		Short: "Delete the persisted audit report for a domain",
		Long: `Reset deletes the accumulated audit report for a domain so the next
audit starts from scratch. Historical snapshots are kept.

Examples:
  designlens reset example.com`,
		Args: cobra.ExactArgs(1),
		RunE: runResetCmd,
	}
}

// runResetCmd executes the reset command.
func runResetCmd(cmd *cobra.Command, args []string) error {
	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	domain := args[0]
	if err := db.Reset(cmd.Context(), domain); err != nil {
		return fmt.Errorf("failed to reset report: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Audit report for %s deleted.\n", domain)
	return nil
}
