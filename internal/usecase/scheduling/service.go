package scheduling

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
)

// Service defines the interface for the scheduler use case
type Service interface {
	// Schedule moves a draft meeting with a schedule window to scheduled, then
	// best-effort creates the calendar event and the owner task.
	Schedule(ctx context.Context, meetingID uuid.UUID, opts ScheduleOptions) (*ScheduleResult, error)
}

// ScheduleOptions tunes the collaborator calls made while scheduling
type ScheduleOptions struct {
	OnlineMeeting bool
}

// ScheduleResult reports the scheduling fact and what the collaborators managed to do
type ScheduleResult struct {
	Meeting              *entities.Meeting `json:"meeting"`
	CalendarEventCreated bool              `json:"calendar_event_created"`
	CalendarEventID      *string           `json:"calendar_event_id,omitempty"`
	JoinURL              *string           `json:"join_url,omitempty"`
	OwnerTaskCreated     bool              `json:"owner_task_created"`
	OwnerTaskID          *string           `json:"owner_task_id,omitempty"`
	Warnings             []string          `json:"warnings"`
}

func (r *ScheduleResult) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Ensure SchedulingService implements Service interface
var _ Service = (*SchedulingService)(nil)
