package entities

import (
	"time"

	"github.com/google/uuid"
)

// MeetingStatus represents the stored lifecycle status of a meeting.
// Awaiting-capture is derived (see Meeting.IsAwaitingCapture), never stored.
type MeetingStatus string

const (
	MeetingStatusDraft     MeetingStatus = "draft"
	MeetingStatusScheduled MeetingStatus = "scheduled"
	MeetingStatusCaptured  MeetingStatus = "captured"
	MeetingStatusCancelled MeetingStatus = "cancelled"
)

// CapturableStatuses are the statuses from which the captured transition is legal.
var CapturableStatuses = []MeetingStatus{MeetingStatusDraft, MeetingStatusScheduled}

// IsTerminal reports whether no further transition is possible.
func (s MeetingStatus) IsTerminal() bool {
	return s == MeetingStatusCaptured || s == MeetingStatusCancelled
}

// IsValid reports whether s is a known status.
func (s MeetingStatus) IsValid() bool {
	switch s {
	case MeetingStatusDraft, MeetingStatusScheduled, MeetingStatusCaptured, MeetingStatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether from -> to is legal:
// draft->scheduled, draft|scheduled->captured, draft|scheduled->cancelled.
func CanTransition(from, to MeetingStatus) bool {
	if from.IsTerminal() {
		return false
	}
	switch to {
	case MeetingStatusScheduled:
		return from == MeetingStatusDraft
	case MeetingStatusCaptured, MeetingStatusCancelled:
		return from == MeetingStatusDraft || from == MeetingStatusScheduled
	}
	return false
}

// ScopeType is the kind of organizational context a meeting belongs to
type ScopeType string

const (
	ScopeTypeSpace ScopeType = "space"
	ScopeTypeArea  ScopeType = "area"
)

// Scope is the context boundary used for decision propagation.
type Scope struct {
	Type ScopeType `gorm:"type:varchar(20);not null" json:"type" validate:"required,oneof=space area"`
	ID   uuid.UUID `gorm:"type:uuid;not null" json:"id" validate:"required"`
}

// String renders the scope as "<type>:<id>".
func (s Scope) String() string {
	return string(s.Type) + ":" + s.ID.String()
}

// Meeting is the authoritative meeting record
type Meeting struct {
	ID               uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title            string            `gorm:"type:varchar(255);not null" json:"title"`
	Purpose          *string           `gorm:"type:text" json:"purpose,omitempty"`
	Status           MeetingStatus     `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	ScheduledStart   *time.Time        `gorm:"index" json:"scheduled_start,omitempty"`
	ScheduledEnd     *time.Time        `gorm:"index" json:"scheduled_end,omitempty"`
	DurationMinutes  int               `gorm:"not null;check:duration_minutes > 0" json:"duration_minutes"`
	Scope            Scope             `gorm:"embedded;embeddedPrefix:scope_" json:"scope"`
	OwnerID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"owner_id"`
	ParentTaskID     *string           `gorm:"type:varchar(255)" json:"parent_task_id,omitempty"`
	OwnerTaskID      *string           `gorm:"type:varchar(255)" json:"owner_task_id,omitempty"`
	CalendarEventID  *string           `gorm:"type:varchar(255)" json:"calendar_event_id,omitempty"`
	JoinURL          *string           `gorm:"type:text" json:"join_url,omitempty"`
	NotesPageRef     *string           `gorm:"type:text" json:"notes_page_ref,omitempty"`
	CapturedAt       *time.Time        `json:"captured_at,omitempty"`
	CancelledAt      *time.Time        `json:"cancelled_at,omitempty"`
	Attendees        []Attendee        `gorm:"foreignKey:MeetingID" json:"attendees,omitempty"`
	ExpectedOutcomes []ExpectedOutcome `gorm:"foreignKey:MeetingID" json:"expected_outcomes,omitempty"`
	CreatedAt        time.Time         `gorm:"default:now()" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// HasSchedule reports whether both schedule fields are set
func (m *Meeting) HasSchedule() bool {
	return m.ScheduledStart != nil && m.ScheduledEnd != nil
}

// IsAwaitingCapture is the derived awaiting_capture state: scheduled and already over.
func (m *Meeting) IsAwaitingCapture(now time.Time) bool {
	return m.Status == MeetingStatusScheduled &&
		m.ScheduledEnd != nil &&
		m.ScheduledEnd.Before(now)
}

// CanCapture reports whether the stored status still allows capture.
func (m *Meeting) CanCapture() bool {
	return CanTransition(m.Status, MeetingStatusCaptured)
}

// Owner returns the attendee flagged as owner, if any
func (m *Meeting) Owner() *Attendee {
	for i := range m.Attendees {
		if m.Attendees[i].IsOwner {
			return &m.Attendees[i]
		}
	}
	return nil
}

// OutcomeByID looks up a declared outcome
func (m *Meeting) OutcomeByID(id uuid.UUID) (*ExpectedOutcome, bool) {
	for i := range m.ExpectedOutcomes {
		if m.ExpectedOutcomes[i].ID == id {
			return &m.ExpectedOutcomes[i], true
		}
	}
	return nil, false
}

// ValidateSchedule checks the schedule window invariant. A start without an end is
// completed from the duration; an end without a start, or an end not after the
// start, is rejected.
func ValidateSchedule(start, end *time.Time, durationMinutes int) (*time.Time, *time.Time, error) {
	if durationMinutes <= 0 {
		return nil, nil, ErrInvalidDuration
	}
	if end != nil && start == nil {
		return nil, nil, ErrScheduleEndWithoutStart
	}
	if start == nil {
		return nil, nil, nil
	}
	if end == nil {
		derived := start.Add(time.Duration(durationMinutes) * time.Minute)
		return start, &derived, nil
	}
	if !end.After(*start) {
		return nil, nil, ErrScheduleEndBeforeStart
	}
	return start, end, nil
}
