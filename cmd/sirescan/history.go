package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sirescan/internal/config"
	"sirescan/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [sire]",
		Short: "Show stored fee rows from previous harvest runs",
		Long: `History reads the local harvest database and prints the fee rows
recorded for a sire across past runs.

Examples:
  # All stored fee rows for one sire, newest run first
  sirescan history "Into Mischief"

  # Only the most recent run's rows
  sirescan history --latest "Into Mischief"

  # Every sire with stored history
  sirescan history --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list", "l", false, "List all sires with stored history")
	cmd.Flags().Bool("latest", false, "Show only the most recent run's fee rows")
	cmd.Flags().String("db-dir", "", "Database directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	latest, err := cmd.Flags().GetBool("latest")
	if err != nil {
		return err
	}
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	if !list && len(args) == 0 {
		return fmt.Errorf("a sire name is required unless --list is given")
	}

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(dbDir, opts)
	if err != nil {
		return fmt.Errorf("no harvest history available: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if list {
		names, err := db.ListSires(ctx)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintln(out, "no sires in history")
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	name := args[0]
	if latest {
		fees, err := db.LatestFees(ctx, name)
		if err != nil {
			return err
		}
		if len(fees) == 0 {
			fmt.Fprintf(out, "no stored fees for %q\n", name)
			return nil
		}
		for _, fee := range fees {
			fmt.Fprintf(out, "%d\t$%d\n", fee.Year, fee.Amount)
		}
		return nil
	}

	fees, err := db.History(ctx, name)
	if err != nil {
		return err
	}
	if len(fees) == 0 {
		fmt.Fprintf(out, "no stored fees for %q\n", name)
		return nil
	}
	for _, fee := range fees {
		fmt.Fprintf(out, "run %d (%s)\t%d\t$%d\n",
			fee.RunID, fee.RunStarted.Format("2006-01-02"), fee.FeeYear, fee.Amount)
	}
	return nil
}
