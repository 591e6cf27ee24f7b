package capture

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
)

var resolutionLabels = map[entities.ResolutionStatus]string{
	entities.ResolutionResolved:          "Resolved",
	entities.ResolutionPartiallyResolved: "Partially resolved",
	entities.ResolutionNotAddressed:      "Not addressed",
	entities.ResolutionDeferred:          "Deferred",
}

// RenderNotes renders the markdown notes page for a capture
func RenderNotes(meeting *entities.Meeting, data *entities.CaptureData, capturedAt time.Time) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", meeting.Title)
	fmt.Fprintf(&sb, "*Captured %s, scope %s*\n", capturedAt.UTC().Format("2006-01-02 15:04 MST"), meeting.Scope)
	if meeting.ScheduledStart != nil {
		fmt.Fprintf(&sb, "\n**Scheduled:** %s (%d min)\n", meeting.ScheduledStart.UTC().Format("2006-01-02 15:04 MST"), meeting.DurationMinutes)
	}
	if meeting.Purpose != nil && strings.TrimSpace(*meeting.Purpose) != "" {
		fmt.Fprintf(&sb, "\n**Purpose:** %s\n", strings.TrimSpace(*meeting.Purpose))
	}

	if summary := data.SummaryText(); summary != "" {
		sb.WriteString("\n## Summary\n\n")
		sb.WriteString(summary)
		sb.WriteString("\n")
	}

	if len(data.OutcomeResolutions) > 0 {
		sb.WriteString("\n## Expected outcomes\n\n")
		for _, r := range data.OutcomeResolutions {
			check := " "
			if r.Status == entities.ResolutionResolved {
				check = "x"
			}
			fmt.Fprintf(&sb, "- [%s] %s (%s)\n", check, r.Label, resolutionLabels[r.Status])
		}
	}

	var decisions []entities.Decision
	for _, d := range data.Decisions {
		if d.Confirmed && d.IsMade() {
			decisions = append(decisions, d)
		}
	}
	if len(decisions) > 0 {
		sb.WriteString("\n## Decisions\n\n")
		for _, d := range decisions {
			fmt.Fprintf(&sb, "- %s\n", strings.TrimSpace(d.Text))
			if d.Rationale != nil && strings.TrimSpace(*d.Rationale) != "" {
				fmt.Fprintf(&sb, "  - Rationale: %s\n", strings.TrimSpace(*d.Rationale))
			}
		}
	}

	var items []entities.ActionItem
	for _, a := range data.ActionItems {
		if strings.TrimSpace(a.Text) != "" {
			items = append(items, a)
		}
	}
	if len(items) > 0 {
		sb.WriteString("\n## Action items\n\n")
		for _, a := range items {
			fmt.Fprintf(&sb, "- [ ] %s", strings.TrimSpace(a.Text))
			if a.DueDate != nil {
				fmt.Fprintf(&sb, " (due %s)", a.DueDate.Format("2006-01-02"))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
