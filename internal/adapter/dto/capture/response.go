package capture

import (
	"time"
)

// OutcomeResolutionResponse represents a resolution in API responses
type OutcomeResolutionResponse struct {
	OutcomeID string `json:"outcome_id"`
	Label     string `json:"label"`
	Status    string `json:"status"`
}

// DecisionResponse represents a decision in API responses
type DecisionResponse struct {
	ID                 string  `json:"id"`
	Text               string  `json:"text"`
	Rationale          *string `json:"rationale,omitempty"`
	OwnerID            *string `json:"owner_id,omitempty"`
	OutcomeID          *string `json:"outcome_id,omitempty"`
	PropagateToContext bool    `json:"propagate_to_context"`
	Confirmed          bool    `json:"confirmed"`
}

// ActionItemResponse represents an action item in API responses
type ActionItemResponse struct {
	ID               string     `json:"id"`
	Text             string     `json:"text"`
	OwnerID          *string    `json:"owner_id,omitempty"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	ConvertToSubtask bool       `json:"convert_to_subtask"`
}

// SeedResponse is the starting point of a capture session
type SeedResponse struct {
	MeetingID          string                      `json:"meeting_id"`
	OutcomeResolutions []OutcomeResolutionResponse `json:"outcome_resolutions"`
	Decisions          []DecisionResponse          `json:"decisions"`
}

// EligibilityResponse reports whether a meeting can be captured
type EligibilityResponse struct {
	MeetingID       string `json:"meeting_id"`
	CanCapture      bool   `json:"can_capture"`
	AwaitingCapture bool   `json:"awaiting_capture"`
	Reason          string `json:"reason,omitempty"`
}

// PageResponse points at the produced notes page
type PageResponse struct {
	Key string `json:"key"`
	URL string `json:"url,omitempty"`
}

// SubtaskResponse points at a created subtask
type SubtaskResponse struct {
	ActionItemID string `json:"action_item_id"`
	TaskID       string `json:"task_id"`
	URL          string `json:"url,omitempty"`
}

// ProducerErrorResponse is one artifact that could not be produced
type ProducerErrorResponse struct {
	Producer string `json:"producer"`
	ItemRef  string `json:"item_ref,omitempty"`
	Message  string `json:"message"`
}

// CaptureResultResponse is returned for a committed capture, with or without warnings
type CaptureResultResponse struct {
	MeetingID      string                  `json:"meeting_id"`
	Status         string                  `json:"status"`
	Page           *PageResponse           `json:"page"`
	Subtasks       []SubtaskResponse       `json:"subtasks"`
	DecisionsCount int                     `json:"decisions_count"`
	Errors         []ProducerErrorResponse `json:"errors"`
}

// CaptureRecordResponse represents a persisted capture
type CaptureRecordResponse struct {
	ID                 string                      `json:"id"`
	MeetingID          string                      `json:"meeting_id"`
	Version            int                         `json:"version"`
	Summary            *string                     `json:"summary,omitempty"`
	OutcomeResolutions []OutcomeResolutionResponse `json:"outcome_resolutions"`
	Decisions          []DecisionResponse          `json:"decisions"`
	ActionItems        []ActionItemResponse        `json:"action_items"`
	CaptureStartedAt   time.Time                   `json:"capture_started_at"`
	CaptureCompletedAt *time.Time                  `json:"capture_completed_at,omitempty"`
	Page               *PageResponse               `json:"page,omitempty"`
	Subtasks           []SubtaskResponse           `json:"subtasks"`
	DecisionsCount     int                         `json:"decisions_count"`
	CapturedBy         *string                     `json:"captured_by,omitempty"`
	CapturedAt         time.Time                   `json:"captured_at"`
}
