package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
)

func newAwaitingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "awaiting <space|area> <scope-id>",
		Short: "List scheduled meetings in a scope that ended without a capture",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := parseScope(args[0], args[1])
			if err != nil {
				return err
			}
			svc, err := ctx.captureService(cmd.Context())
			if err != nil {
				return err
			}
			meetings, err := svc.ListAwaitingCapture(cmd.Context(), scope)
			if err != nil {
				return err
			}
			if len(meetings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No meetings awaiting capture")
				return nil
			}

			rows := make([][]string, 0, len(meetings))
			for _, m := range meetings {
				rows = append(rows, []string{m.ID.String(), m.Title, formatTime(m.ScheduledEnd)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Meeting", "Title", "Ended"}, rows))
			return nil
		},
	}
}

func newEligibilityCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "eligibility <meeting-id>",
		Short: "Check whether a meeting can still be captured",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMeetingID(args[0])
			if err != nil {
				return err
			}
			svc, err := ctx.captureService(cmd.Context())
			if err != nil {
				return err
			}
			e, err := svc.CheckEligibility(cmd.Context(), id)
			if err != nil {
				return err
			}
			rows := [][]string{
				{"Can capture", yesNo(e.CanCapture)},
				{"Awaiting capture", yesNo(e.AwaitingCapture)},
			}
			if e.Reason != "" {
				rows = append(rows, []string{"Reason", e.Reason})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Meeting", id.String()}, rows))
			return nil
		},
	}
}

func newQuickCloseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "quick-close <meeting-id>",
		Short: "Capture a meeting with no decisions or action items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMeetingID(args[0])
			if err != nil {
				return err
			}
			svc, err := ctx.captureService(cmd.Context())
			if err != nil {
				return err
			}
			result, err := svc.QuickClose(cmd.Context(), id, nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Meeting %s captured\n", id)
			if result.Page != nil {
				fmt.Fprintf(out, "Notes: %s\n", result.Page.URL)
			}
			if result.HasWarnings() {
				rows := make([][]string, 0, len(result.Errors))
				for _, e := range result.Errors {
					rows = append(rows, []string{string(e.Producer), e.ItemRef, e.Message})
				}
				fmt.Fprintln(out, renderTable([]string{"Producer", "Item", "Error"}, rows))
			}
			return nil
		},
	}
}

func newDecisionsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "decisions <space|area> <scope-id>",
		Short: "List the decisions captured meetings propagated into a scope",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := parseScope(args[0], args[1])
			if err != nil {
				return err
			}
			store, err := ctx.decisionReader(cmd.Context())
			if err != nil {
				return err
			}
			entries, err := store.ListDecisions(cmd.Context(), scope)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No decisions recorded")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				recorded := e.RecordedAt
				rows = append(rows, []string{formatTime(&recorded), e.MeetingTitle, e.Decision.Text})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Recorded", "Meeting", "Decision"}, rows))
			return nil
		},
	}
}

func parseScope(scopeType, scopeID string) (entities.Scope, error) {
	t := entities.ScopeType(strings.ToLower(strings.TrimSpace(scopeType)))
	if t != entities.ScopeTypeSpace && t != entities.ScopeTypeArea {
		return entities.Scope{}, fmt.Errorf("scope type must be space or area, got %q", scopeType)
	}
	id, err := uuid.Parse(scopeID)
	if err != nil {
		return entities.Scope{}, fmt.Errorf("invalid scope id %q: %w", scopeID, err)
	}
	return entities.Scope{Type: t, ID: id}, nil
}

func parseMeetingID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid meeting id %q: %w", s, err)
	}
	return id, nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
