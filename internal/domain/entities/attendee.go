package entities

import (
	"time"

	"github.com/google/uuid"
)

// AttendeeType represents whether attendance is required
type AttendeeType string

const (
	AttendeeTypeRequired AttendeeType = "required"
	AttendeeTypeOptional AttendeeType = "optional"
)

// Attendee represents a person invited to a meeting. UserID is nil for external attendees.
type Attendee struct {
	ID           uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"meeting_id"`
	Email        string       `gorm:"type:varchar(255);not null" json:"email" validate:"required,email"`
	DisplayName  *string      `gorm:"type:varchar(255)" json:"display_name,omitempty"`
	UserID       *uuid.UUID   `gorm:"type:uuid;index" json:"user_id,omitempty"`
	AttendeeType AttendeeType `gorm:"type:varchar(20);not null;default:'required'" json:"attendee_type" validate:"required,oneof=required optional"`
	IsOwner      bool         `gorm:"default:false" json:"is_owner"`
	CreatedAt    time.Time    `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for Attendee
func (Attendee) TableName() string {
	return "meeting_attendees"
}

// IsExternal reports whether the attendee has no user account
func (a *Attendee) IsExternal() bool {
	return a.UserID == nil
}

// ValidateAttendees enforces the owner invariant: at most one owner attendee, and an
// owner attendee with a user account must be the meeting owner.
func ValidateAttendees(attendees []Attendee, ownerID uuid.UUID) error {
	owners := 0
	for _, a := range attendees {
		if !a.IsOwner {
			continue
		}
		owners++
		if owners > 1 {
			return ErrMultipleOwners
		}
		if a.UserID != nil && *a.UserID != ownerID {
			return ErrOwnerMismatch
		}
	}
	return nil
}
