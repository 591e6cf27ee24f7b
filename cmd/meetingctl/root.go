package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "meetingctl",
		Short:         "Operate the meeting capture engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newAwaitingCommand(ctx))
	rootCmd.AddCommand(newEligibilityCommand(ctx))
	rootCmd.AddCommand(newQuickCloseCommand(ctx))
	rootCmd.AddCommand(newDecisionsCommand(ctx))
	rootCmd.AddCommand(newTokenCommand(ctx))

	return rootCmd
}
