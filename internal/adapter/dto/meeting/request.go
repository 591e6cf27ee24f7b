package meeting

import (
	"time"
)

// ScopeRequest identifies the space or area a meeting belongs to
type ScopeRequest struct {
	Type string `json:"type" validate:"required,oneof=space area"`
	ID   string `json:"id" validate:"required,uuid"`
}

// OutcomeRequest declares one expected outcome
type OutcomeRequest struct {
	Label      string `json:"label" validate:"required,min=1,max=500"`
	Type       string `json:"type" validate:"required,oneof=decision action_item information custom"`
	Provenance string `json:"provenance,omitempty" validate:"omitempty,oneof=ai_suggested manual"`
}

// AttendeeRequest declares one attendee. UserID is empty for external attendees.
type AttendeeRequest struct {
	Email        string  `json:"email" validate:"required,email"`
	DisplayName  *string `json:"display_name,omitempty" validate:"omitempty,max=255"`
	UserID       *string `json:"user_id,omitempty" validate:"omitempty,uuid"`
	AttendeeType string  `json:"attendee_type,omitempty" validate:"omitempty,oneof=required optional"`
	IsOwner      bool    `json:"is_owner"`
}

// CreateMeetingRequest represents the request to create a meeting
type CreateMeetingRequest struct {
	Title            string            `json:"title" validate:"required,min=1,max=255"`
	Purpose          *string           `json:"purpose,omitempty" validate:"omitempty,max=5000"`
	DurationMinutes  int               `json:"duration_minutes" validate:"required,min=1,max=1440"`
	Scope            ScopeRequest      `json:"scope"`
	ParentTaskID     *string           `json:"parent_task_id,omitempty" validate:"omitempty,max=255"`
	ExpectedOutcomes []OutcomeRequest  `json:"expected_outcomes,omitempty" validate:"omitempty,max=50,dive"`
	Attendees        []AttendeeRequest `json:"attendees,omitempty" validate:"omitempty,max=200,dive"`
	ScheduledStart   *time.Time        `json:"scheduled_start,omitempty"`
	ScheduledEnd     *time.Time        `json:"scheduled_end,omitempty"`
}

// ReplaceOutcomesRequest represents the request to replace a draft meeting's outcomes
type ReplaceOutcomesRequest struct {
	ExpectedOutcomes []OutcomeRequest `json:"expected_outcomes" validate:"max=50,dive"`
}

// ScheduleMeetingRequest represents the request to schedule a meeting
type ScheduleMeetingRequest struct {
	OnlineMeeting bool `json:"online_meeting"`
}

// SuggestMeetingRequest represents the request for title and outcome suggestions
type SuggestMeetingRequest struct {
	Purpose string `json:"purpose" validate:"required,min=1,max=2000"`
}
