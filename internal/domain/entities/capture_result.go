package entities

import "github.com/google/uuid"

// ProducerName identifies one of the capture artifact producers
type ProducerName string

const (
	ProducerContext  ProducerName = "context"
	ProducerNotes    ProducerName = "notes"
	ProducerSubtasks ProducerName = "subtasks"
)

// PageRef points at the notes page produced for a meeting
type PageRef struct {
	Key string `json:"key"`
	URL string `json:"url,omitempty"`
}

// SubtaskRef points at a subtask created from an action item
type SubtaskRef struct {
	ActionItemID uuid.UUID `json:"action_item_id"`
	TaskID       string    `json:"task_id"`
	URL          string    `json:"url,omitempty"`
}

// ProducerError is a failure scoped to one artifact. It is reported in the capture
// result and never aborts the capture.
type ProducerError struct {
	Producer ProducerName `json:"producer"`
	ItemRef  string       `json:"item_ref,omitempty"`
	Message  string       `json:"message"`
}

// CaptureResult aggregates what the producers materialized for a committed capture
type CaptureResult struct {
	MeetingID      uuid.UUID       `json:"meeting_id"`
	Page           *PageRef        `json:"page"`
	Subtasks       []SubtaskRef    `json:"subtasks"`
	DecisionsCount int             `json:"decisions_count"`
	Errors         []ProducerError `json:"errors"`
}

// HasWarnings reports whether the capture committed with producer failures
func (r *CaptureResult) HasWarnings() bool {
	return len(r.Errors) > 0
}

// Artifacts returns the pointers stored alongside the capture record
func (r *CaptureResult) Artifacts() CaptureArtifacts {
	return CaptureArtifacts{
		Page:           r.Page,
		Subtasks:       r.Subtasks,
		DecisionsCount: r.DecisionsCount,
	}
}

// CaptureSeed is the projection of a meeting's expected outcomes into a new capture session
type CaptureSeed struct {
	MeetingID          uuid.UUID           `json:"meeting_id"`
	OutcomeResolutions []OutcomeResolution `json:"outcome_resolutions"`
	Decisions          []Decision          `json:"decisions"`
}

// Eligibility is the result of a capture eligibility check
type Eligibility struct {
	CanCapture      bool   `json:"can_capture"`
	Reason          string `json:"reason,omitempty"`
	AwaitingCapture bool   `json:"awaiting_capture"`
}
