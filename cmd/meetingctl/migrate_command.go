package main

import (
	"fmt"
	"strconv"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-capture/internal/infrastructure/database"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, revert or inspect database migrations",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := ctx.database()
			if err != nil {
				return err
			}
			n, err := database.Migrate(db, migrate.Up, 0)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migrations\n", n)
			return nil
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Revert the last migration, or the given number of steps",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := parseSteps(args)
			if err != nil {
				return err
			}
			_, db, err := ctx.database()
			if err != nil {
				return err
			}
			n, err := database.Migrate(db, migrate.Down, steps)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reverted %d migrations\n", n)
			return nil
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show which migrations are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := ctx.database()
			if err != nil {
				return err
			}
			statuses, err := database.Status(db)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(statuses))
			for _, s := range statuses {
				applied := "pending"
				if s.AppliedAt != nil {
					applied = s.AppliedAt.Format("2006-01-02 15:04:05")
				}
				rows = append(rows, []string{s.ID, applied})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Migration", "Applied"}, rows))
			return nil
		},
	})

	return migrateCmd
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("steps must be a positive integer, got %q", args[0])
	}
	return n, nil
}
