package meeting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	"github.com/johnquangdev/meeting-capture/internal/domain/gateways"
)

// Service defines the interface for the meeting store use case
type Service interface {
	// CreateMeeting validates and persists a new draft meeting. It never schedules.
	CreateMeeting(ctx context.Context, input CreateMeetingInput) (*entities.Meeting, error)

	// GetMeeting retrieves a meeting with attendees and expected outcomes
	GetMeeting(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// ReplaceOutcomes swaps the expected outcomes of a draft meeting
	ReplaceOutcomes(ctx context.Context, id uuid.UUID, outcomes []OutcomeInput) (*entities.Meeting, error)

	// CancelMeeting moves a draft or scheduled meeting to cancelled
	CancelMeeting(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// SuggestMeeting returns advisory titles and outcomes for a purpose. It never fails;
	// an unavailable source yields empty lists and a warning.
	SuggestMeeting(ctx context.Context, purpose string) *SuggestOutput
}

// CreateMeetingInput represents input for creating a meeting
type CreateMeetingInput struct {
	Title            string
	Purpose          *string
	DurationMinutes  int
	Scope            entities.Scope
	OwnerID          uuid.UUID
	ParentTaskID     *string
	ExpectedOutcomes []OutcomeInput
	Attendees        []AttendeeInput
	ScheduledStart   *time.Time
	ScheduledEnd     *time.Time
}

// OutcomeInput declares one expected outcome
type OutcomeInput struct {
	Label      string
	Type       entities.OutcomeType
	Provenance entities.OutcomeProvenance
}

// AttendeeInput declares one attendee
type AttendeeInput struct {
	Email        string
	DisplayName  *string
	UserID       *uuid.UUID
	AttendeeType entities.AttendeeType
	IsOwner      bool
}

// SuggestOutput holds advisory suggestions
type SuggestOutput struct {
	Titles   []string                    `json:"titles"`
	Outcomes []gateways.SuggestedOutcome `json:"outcomes"`
	Warning  string                      `json:"warning,omitempty"`
}

// Ensure MeetingService implements Service interface
var _ Service = (*MeetingService)(nil)
