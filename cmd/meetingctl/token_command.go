package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-capture/pkg/jwt"
)

func newTokenCommand(ctx *commandContext) *cobra.Command {
	var expiry time.Duration

	cmd := &cobra.Command{
		Use:   "token [user-id]",
		Short: "Mint a development access token; a random user id is used when omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := uuid.New()
			if len(args) == 1 {
				id, err := uuid.Parse(args[0])
				if err != nil {
					return fmt.Errorf("invalid user id %q: %w", args[0], err)
				}
				userID = id
			}

			cfg, err := ctx.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Server.Environment == "production" {
				return fmt.Errorf("refusing to mint tokens in production")
			}

			token, err := jwt.NewManager(cfg.JWT.AccessSecret).GenerateAccessToken(userID, expiry)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"User", "Token"}, [][]string{{userID.String(), token}}))
			return nil
		},
	}

	cmd.Flags().DurationVar(&expiry, "expiry", 24*time.Hour, "Token lifetime")

	return cmd
}
