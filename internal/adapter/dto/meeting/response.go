package meeting

import (
	"time"
)

// ScopeResponse represents a scope in API responses
type ScopeResponse struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// OutcomeResponse represents an expected outcome in API responses
type OutcomeResponse struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Type       string `json:"type"`
	Provenance string `json:"provenance"`
	Position   int    `json:"position"`
}

// AttendeeResponse represents an attendee in API responses
type AttendeeResponse struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	DisplayName  *string `json:"display_name,omitempty"`
	UserID       *string `json:"user_id,omitempty"`
	AttendeeType string  `json:"attendee_type"`
	IsOwner      bool    `json:"is_owner"`
}

// MeetingResponse represents a meeting in API responses
type MeetingResponse struct {
	ID               string             `json:"id"`
	Title            string             `json:"title"`
	Purpose          *string            `json:"purpose,omitempty"`
	Status           string             `json:"status"`
	AwaitingCapture  bool               `json:"awaiting_capture"`
	ScheduledStart   *time.Time         `json:"scheduled_start,omitempty"`
	ScheduledEnd     *time.Time         `json:"scheduled_end,omitempty"`
	DurationMinutes  int                `json:"duration_minutes"`
	Scope            ScopeResponse      `json:"scope"`
	OwnerID          string             `json:"owner_id"`
	ParentTaskID     *string            `json:"parent_task_id,omitempty"`
	OwnerTaskID      *string            `json:"owner_task_id,omitempty"`
	CalendarEventID  *string            `json:"calendar_event_id,omitempty"`
	JoinURL          *string            `json:"join_url,omitempty"`
	NotesPageRef     *string            `json:"notes_page_ref,omitempty"`
	CapturedAt       *time.Time         `json:"captured_at,omitempty"`
	CancelledAt      *time.Time         `json:"cancelled_at,omitempty"`
	Attendees        []AttendeeResponse `json:"attendees"`
	ExpectedOutcomes []OutcomeResponse  `json:"expected_outcomes"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// ScheduleResponse represents the result of scheduling a meeting
type ScheduleResponse struct {
	Meeting              *MeetingResponse `json:"meeting"`
	CalendarEventCreated bool             `json:"calendar_event_created"`
	CalendarEventID      *string          `json:"calendar_event_id,omitempty"`
	JoinURL              *string          `json:"join_url,omitempty"`
	OwnerTaskCreated     bool             `json:"owner_task_created"`
	OwnerTaskID          *string          `json:"owner_task_id,omitempty"`
	Warnings             []string         `json:"warnings"`
}

// SuggestedOutcomeResponse represents one suggested outcome
type SuggestedOutcomeResponse struct {
	Label string `json:"label"`
	Type  string `json:"type"`
}

// SuggestionsResponse represents advisory title and outcome suggestions
type SuggestionsResponse struct {
	Titles   []string                   `json:"titles"`
	Outcomes []SuggestedOutcomeResponse `json:"outcomes"`
	Warning  string                     `json:"warning,omitempty"`
}

// ListMeetingsResponse represents a list of meetings
type ListMeetingsResponse struct {
	Meetings []*MeetingResponse `json:"meetings"`
	Total    int                `json:"total"`
}
