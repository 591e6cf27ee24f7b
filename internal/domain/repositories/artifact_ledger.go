package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
)

// ArtifactLedger remembers which external artifact was created for a stable artifact key
type ArtifactLedger interface {
	// Find returns the entry for key, or nil when none was recorded
	Find(ctx context.Context, key string) (*entities.ArtifactEntry, error)

	// Record stores an entry; recording an existing key is a no-op
	Record(ctx context.Context, entry *entities.ArtifactEntry) error
}
