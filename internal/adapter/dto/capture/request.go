package capture

import (
	"time"
)

// OutcomeResolutionRequest records how one expected outcome was resolved
type OutcomeResolutionRequest struct {
	OutcomeID string `json:"outcome_id" validate:"required,uuid"`
	Label     string `json:"label" validate:"required,max=500"`
	Status    string `json:"status" validate:"required,oneof=resolved partially_resolved not_addressed deferred"`
}

// DecisionRequest records one decision. PropagateToContext defaults to true when omitted.
type DecisionRequest struct {
	ID                 string  `json:"id" validate:"required,uuid"`
	Text               string  `json:"text" validate:"max=5000"`
	Rationale          *string `json:"rationale,omitempty" validate:"omitempty,max=5000"`
	OwnerID            *string `json:"owner_id,omitempty" validate:"omitempty,uuid"`
	OutcomeID          *string `json:"outcome_id,omitempty" validate:"omitempty,uuid"`
	PropagateToContext *bool   `json:"propagate_to_context,omitempty"`
	Confirmed          bool    `json:"confirmed"`
}

// ActionItemRequest records one follow-up
type ActionItemRequest struct {
	ID               string     `json:"id" validate:"required,uuid"`
	Text             string     `json:"text" validate:"max=5000"`
	OwnerID          *string    `json:"owner_id,omitempty" validate:"omitempty,uuid"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	ConvertToSubtask bool       `json:"convert_to_subtask"`
}

// SubmitCaptureRequest is the finished capture document
type SubmitCaptureRequest struct {
	Version            int                        `json:"version" validate:"min=0"`
	Summary            *string                    `json:"summary,omitempty" validate:"omitempty,max=20000"`
	OutcomeResolutions []OutcomeResolutionRequest `json:"outcome_resolutions" validate:"max=50,dive"`
	Decisions          []DecisionRequest          `json:"decisions" validate:"max=200,dive"`
	ActionItems        []ActionItemRequest        `json:"action_items" validate:"max=200,dive"`
	CaptureStartedAt   *time.Time                 `json:"capture_started_at,omitempty"`
	CaptureCompletedAt *time.Time                 `json:"capture_completed_at,omitempty"`
}
