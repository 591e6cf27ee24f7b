package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access. Status changes are
// conditional updates: they report whether the row was in one of the expected statuses
// instead of reading first and writing after.
type MeetingRepository interface {
	// Create persists a meeting together with its attendees and expected outcomes
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting with attendees and expected outcomes loaded
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// ReplaceOutcomes swaps the expected outcomes of a draft meeting.
	// Returns false when the meeting is no longer a draft.
	ReplaceOutcomes(ctx context.Context, meetingID uuid.UUID, outcomes []entities.ExpectedOutcome) (bool, error)

	// TransitionStatus moves a meeting to `to` only if its status is one of `from`.
	// Returns false when no row matched.
	TransitionStatus(ctx context.Context, id uuid.UUID, from []entities.MeetingStatus, to entities.MeetingStatus) (bool, error)

	// CommitCapture atomically moves the meeting to captured (from draft or scheduled)
	// and inserts the capture record. Returns false, and writes nothing, when the
	// meeting was not capturable.
	CommitCapture(ctx context.Context, record *entities.CaptureRecord) (bool, error)

	// FindCaptureRecord retrieves the capture record of a captured meeting
	FindCaptureRecord(ctx context.Context, meetingID uuid.UUID) (*entities.CaptureRecord, error)

	// UpdateCaptureArtifacts stores the artifact pointers of a committed capture
	UpdateCaptureArtifacts(ctx context.Context, meetingID uuid.UUID, artifacts entities.CaptureArtifacts) error

	// UpdateScheduleRefs stores the external references obtained while scheduling
	UpdateScheduleRefs(ctx context.Context, id uuid.UUID, refs ScheduleRefs) error

	// ListAwaitingCapture retrieves scheduled meetings in scope whose end is before now
	ListAwaitingCapture(ctx context.Context, scope entities.Scope, now time.Time) ([]*entities.Meeting, error)
}

// ScheduleRefs holds the best-effort references produced by scheduling. Nil fields are left untouched.
type ScheduleRefs struct {
	CalendarEventID *string
	JoinURL         *string
	OwnerTaskID     *string
}

// IsEmpty reports whether there is nothing to store
func (r ScheduleRefs) IsEmpty() bool {
	return r.CalendarEventID == nil && r.JoinURL == nil && r.OwnerTaskID == nil
}
