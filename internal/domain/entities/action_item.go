package entities

import (
	"time"

	"github.com/google/uuid"
)

// ActionItem is a follow-up recorded during capture
type ActionItem struct {
	ID               uuid.UUID  `json:"id" validate:"required"`
	Text             string     `json:"text" validate:"max=5000"`
	OwnerID          *uuid.UUID `json:"owner_id,omitempty"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	ConvertToSubtask bool       `json:"convert_to_subtask"`
}
