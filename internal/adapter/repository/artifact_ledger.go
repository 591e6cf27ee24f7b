package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	"github.com/johnquangdev/meeting-capture/internal/domain/repositories"
)

// artifactLedger implements the ArtifactLedger interface
type artifactLedger struct {
	db *gorm.DB
}

// NewArtifactLedger creates a new artifact ledger
func NewArtifactLedger(db *gorm.DB) repositories.ArtifactLedger {
	return &artifactLedger{db: db}
}

// Find retrieves an entry by key
func (r *artifactLedger) Find(ctx context.Context, key string) (*entities.ArtifactEntry, error) {
	var entry entities.ArtifactEntry
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// Record inserts an entry, ignoring duplicates
func (r *artifactLedger) Record(ctx context.Context, entry *entities.ArtifactEntry) error {
	if entry == nil {
		return errors.New("entry cannot be nil")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(entry).Error
}
