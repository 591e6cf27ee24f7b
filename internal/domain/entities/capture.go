package entities

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CurrentCaptureDataVersion is the CaptureData document version this engine writes
const CurrentCaptureDataVersion = 1

// ResolutionStatus is how far an expected outcome was resolved in the meeting
type ResolutionStatus string

const (
	ResolutionResolved          ResolutionStatus = "resolved"
	ResolutionPartiallyResolved ResolutionStatus = "partially_resolved"
	ResolutionNotAddressed      ResolutionStatus = "not_addressed"
	ResolutionDeferred          ResolutionStatus = "deferred"
)

// CaptureData is the capture wizard's working document. Once submitted it is persisted
// verbatim as the meeting's capture record.
type CaptureData struct {
	Version            int                 `json:"version" validate:"gte=0"`
	Summary            *string             `json:"summary,omitempty" validate:"omitempty,max=20000"`
	OutcomeResolutions []OutcomeResolution `json:"outcome_resolutions" validate:"dive"`
	Decisions          []Decision          `json:"decisions" validate:"dive"`
	ActionItems        []ActionItem        `json:"action_items" validate:"dive"`
	CaptureStartedAt   time.Time           `json:"capture_started_at"`
	CaptureCompletedAt *time.Time          `json:"capture_completed_at,omitempty"`
}

// OutcomeResolution records the resolution of one expected outcome. Label is a
// denormalized copy kept for audit.
type OutcomeResolution struct {
	OutcomeID uuid.UUID        `json:"outcome_id" validate:"required"`
	Label     string           `json:"label" validate:"required,max=500"`
	Status    ResolutionStatus `json:"status" validate:"required,oneof=resolved partially_resolved not_addressed deferred"`
}

// IsResolved reports whether the outcome was at least partially resolved
func (r OutcomeResolution) IsResolved() bool {
	return r.Status == ResolutionResolved || r.Status == ResolutionPartiallyResolved
}

// Decision is a decision recorded during capture. Seeded decisions carry OutcomeID and
// default to confirmed; freeform ones need explicit confirmation.
type Decision struct {
	ID                 uuid.UUID  `json:"id" validate:"required"`
	Text               string     `json:"text" validate:"max=5000"`
	Rationale          *string    `json:"rationale,omitempty" validate:"omitempty,max=5000"`
	OwnerID            *uuid.UUID `json:"owner_id,omitempty"`
	OutcomeID          *uuid.UUID `json:"outcome_id,omitempty"`
	PropagateToContext bool       `json:"propagate_to_context"`
	Confirmed          bool       `json:"confirmed"`
}

// UnmarshalJSON defaults propagate_to_context to true when the field is absent.
func (d *Decision) UnmarshalJSON(b []byte) error {
	type decisionAlias Decision
	aux := decisionAlias{PropagateToContext: true}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*d = Decision(aux)
	return nil
}

// IsMade reports whether any decision text was written
func (d Decision) IsMade() bool {
	return strings.TrimSpace(d.Text) != ""
}

// ShouldPropagate reports whether the decision goes to the scope context store
func (d Decision) ShouldPropagate() bool {
	return d.Confirmed && d.PropagateToContext && d.IsMade()
}

// Normalize fills defaults on a submitted document without touching user content.
func (c *CaptureData) Normalize(now time.Time) {
	if c.Version == 0 {
		c.Version = CurrentCaptureDataVersion
	}
	if c.CaptureStartedAt.IsZero() {
		c.CaptureStartedAt = now
	}
	if c.CaptureCompletedAt == nil {
		completed := now
		c.CaptureCompletedAt = &completed
	}
	if c.OutcomeResolutions == nil {
		c.OutcomeResolutions = []OutcomeResolution{}
	}
	if c.Decisions == nil {
		c.Decisions = []Decision{}
	}
	if c.ActionItems == nil {
		c.ActionItems = []ActionItem{}
	}
}

// SummaryText returns the trimmed summary or ""
func (c *CaptureData) SummaryText() string {
	if c.Summary == nil {
		return ""
	}
	return strings.TrimSpace(*c.Summary)
}

// HasNotableContent reports whether a notes page is worth producing: a summary, a
// resolved outcome, or a confirmed decision with text.
func (c *CaptureData) HasNotableContent() bool {
	if c.SummaryText() != "" {
		return true
	}
	for _, r := range c.OutcomeResolutions {
		if r.IsResolved() {
			return true
		}
	}
	for _, d := range c.Decisions {
		if d.Confirmed && d.IsMade() {
			return true
		}
	}
	return false
}

// PropagatableDecisions returns the decisions destined for the context store, in order
func (c *CaptureData) PropagatableDecisions() []Decision {
	out := make([]Decision, 0, len(c.Decisions))
	for _, d := range c.Decisions {
		if d.ShouldPropagate() {
			out = append(out, d)
		}
	}
	return out
}

// SubtaskCandidates returns the action items flagged for subtask conversion, in order
func (c *CaptureData) SubtaskCandidates() []ActionItem {
	out := make([]ActionItem, 0, len(c.ActionItems))
	for _, a := range c.ActionItems {
		if a.ConvertToSubtask && strings.TrimSpace(a.Text) != "" {
			out = append(out, a)
		}
	}
	return out
}

// CheckConsistency verifies references against the meeting: every resolution and
// seeded decision points at a declared outcome, and item ids are unique.
func (c *CaptureData) CheckConsistency(m *Meeting) error {
	if c.Version > CurrentCaptureDataVersion {
		return ErrUnsupportedVersion
	}
	seenOutcomes := make(map[uuid.UUID]struct{}, len(c.OutcomeResolutions))
	for _, r := range c.OutcomeResolutions {
		if _, ok := m.OutcomeByID(r.OutcomeID); !ok {
			return ErrUnknownOutcome
		}
		if _, dup := seenOutcomes[r.OutcomeID]; dup {
			return ErrDuplicateItemID
		}
		seenOutcomes[r.OutcomeID] = struct{}{}
	}
	seen := make(map[uuid.UUID]struct{}, len(c.Decisions)+len(c.ActionItems))
	for _, d := range c.Decisions {
		if d.OutcomeID != nil {
			if _, ok := m.OutcomeByID(*d.OutcomeID); !ok {
				return ErrUnknownOutcome
			}
		}
		if _, dup := seen[d.ID]; dup {
			return ErrDuplicateItemID
		}
		seen[d.ID] = struct{}{}
	}
	for _, a := range c.ActionItems {
		if _, dup := seen[a.ID]; dup {
			return ErrDuplicateItemID
		}
		seen[a.ID] = struct{}{}
	}
	return nil
}

// CaptureArtifacts are the pointers to artifacts materialized from a capture
type CaptureArtifacts struct {
	Page           *PageRef     `json:"page,omitempty"`
	Subtasks       []SubtaskRef `json:"subtasks"`
	DecisionsCount int          `json:"decisions_count"`
}

// CaptureRecord is the immutable persisted capture of a meeting. Data is written once;
// only Artifacts is filled in after the producers ran.
type CaptureRecord struct {
	ID         uuid.UUID                            `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID  uuid.UUID                            `gorm:"type:uuid;not null;uniqueIndex" json:"meeting_id"`
	Version    int                                  `gorm:"not null" json:"version"`
	Data       datatypes.JSONType[CaptureData]      `gorm:"type:jsonb;not null" json:"data"`
	Artifacts  datatypes.JSONType[CaptureArtifacts] `gorm:"type:jsonb;not null;default:'{}'" json:"artifacts"`
	CapturedBy *uuid.UUID                           `gorm:"type:uuid" json:"captured_by,omitempty"`
	CapturedAt time.Time                            `gorm:"not null" json:"captured_at"`
	CreatedAt  time.Time                            `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for CaptureRecord
func (CaptureRecord) TableName() string {
	return "meeting_capture_records"
}
