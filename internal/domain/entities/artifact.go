package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/xxh3"
)

// ArtifactType identifies what kind of external artifact a ledger row points at
type ArtifactType string

const (
	ArtifactTypeNotesPage ArtifactType = "notes_page"
	ArtifactTypeSubtask   ArtifactType = "subtask"
	ArtifactTypeDecision  ArtifactType = "decision"
	ArtifactTypeOwnerTask ArtifactType = "owner_task"
)

// ArtifactEntry remembers the external reference created for a stable artifact key,
// so retried creates return the existing artifact instead of duplicating it.
type ArtifactEntry struct {
	Key          string       `gorm:"type:varchar(64);primary_key" json:"key"`
	MeetingID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"meeting_id"`
	ArtifactType ArtifactType `gorm:"type:varchar(30);not null" json:"artifact_type"`
	SourceItemID string       `gorm:"type:varchar(255);not null" json:"source_item_id"`
	ExternalRef  string       `gorm:"type:text;not null" json:"external_ref"`
	URL          *string      `gorm:"type:text" json:"url,omitempty"`
	CreatedAt    time.Time    `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for ArtifactEntry
func (ArtifactEntry) TableName() string {
	return "capture_artifacts"
}

// ArtifactKey derives the stable key for an artifact from its meeting, type and source item.
// The same inputs always produce the same 32-char hex key.
func ArtifactKey(meetingID uuid.UUID, artifactType ArtifactType, sourceItemID string) string {
	h := xxh3.HashString128(meetingID.String() + "|" + string(artifactType) + "|" + sourceItemID)
	return fmt.Sprintf("%016x%016x", h.Hi, h.Lo)
}
