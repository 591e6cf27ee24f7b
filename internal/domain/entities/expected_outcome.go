package entities

import (
	"time"

	"github.com/google/uuid"
)

// OutcomeType classifies what kind of result an expected outcome asks for
type OutcomeType string

const (
	OutcomeTypeDecision    OutcomeType = "decision"
	OutcomeTypeActionItem  OutcomeType = "action_item"
	OutcomeTypeInformation OutcomeType = "information"
	OutcomeTypeCustom      OutcomeType = "custom"
)

// OutcomeProvenance records who proposed the outcome
type OutcomeProvenance string

const (
	OutcomeProvenanceAISuggested OutcomeProvenance = "ai_suggested"
	OutcomeProvenanceManual      OutcomeProvenance = "manual"
)

// ExpectedOutcome is a goal declared when a meeting is created, resolved during capture.
// Position keeps the declaration order stable across reads.
type ExpectedOutcome struct {
	ID         uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"meeting_id"`
	Label      string            `gorm:"type:varchar(500);not null" json:"label" validate:"required,max=500"`
	Type       OutcomeType       `gorm:"type:varchar(20);not null" json:"type" validate:"required,oneof=decision action_item information custom"`
	Provenance OutcomeProvenance `gorm:"type:varchar(20);not null;default:'manual'" json:"provenance" validate:"required,oneof=ai_suggested manual"`
	Position   int               `gorm:"not null;default:0" json:"position"`
	CreatedAt  time.Time         `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for ExpectedOutcome
func (ExpectedOutcome) TableName() string {
	return "meeting_expected_outcomes"
}

// IsDecision reports whether the outcome asks for a decision
func (o *ExpectedOutcome) IsDecision() bool {
	return o.Type == OutcomeTypeDecision
}
