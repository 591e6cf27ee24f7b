package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	"github.com/johnquangdev/meeting-capture/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// Create inserts the meeting; gorm writes attendees and outcomes in the same transaction
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

// FindByID retrieves a meeting by its ID
func (r *meetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Attendees", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("ExpectedOutcomes", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&meeting).Error

	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// ReplaceOutcomes deletes and re-inserts outcomes while the meeting is still a draft.
// The guarded UPDATE takes the row lock, so a concurrent schedule waits for us.
func (r *meetingRepository) ReplaceOutcomes(ctx context.Context, meetingID uuid.UUID, outcomes []entities.ExpectedOutcome) (bool, error) {
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.Meeting{}).
			Where("id = ? AND status = ?", meetingID, entities.MeetingStatusDraft).
			Update("updated_at", time.Now())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if err := tx.Where("meeting_id = ?", meetingID).Delete(&entities.ExpectedOutcome{}).Error; err != nil {
			return err
		}
		if len(outcomes) > 0 {
			if err := tx.Create(&outcomes).Error; err != nil {
				return err
			}
		}
		applied = true
		return nil
	})
	return applied, err
}

// TransitionStatus is a single conditional UPDATE; RowsAffected tells whether it won
func (r *meetingRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from []entities.MeetingStatus, to entities.MeetingStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(transitionColumns(to, time.Now()))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// CommitCapture flips the meeting to captured and inserts the capture record in one transaction
func (r *meetingRepository) CommitCapture(ctx context.Context, record *entities.CaptureRecord) (bool, error) {
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.Meeting{}).
			Where("id = ? AND status IN ?", record.MeetingID, entities.CapturableStatuses).
			Updates(transitionColumns(entities.MeetingStatusCaptured, record.CapturedAt))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if err := tx.Create(record).Error; err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, err
}

// FindCaptureRecord retrieves the capture record of a meeting
func (r *meetingRepository) FindCaptureRecord(ctx context.Context, meetingID uuid.UUID) (*entities.CaptureRecord, error) {
	var record entities.CaptureRecord
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		First(&record).Error

	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateCaptureArtifacts writes artifact pointers; the record's data column is left alone
func (r *meetingRepository) UpdateCaptureArtifacts(ctx context.Context, meetingID uuid.UUID, artifacts entities.CaptureArtifacts) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.CaptureRecord{}).
			Where("meeting_id = ?", meetingID).
			Update("artifacts", datatypes.NewJSONType(artifacts)).Error; err != nil {
			return err
		}

		if artifacts.Page == nil {
			return nil
		}
		return tx.Model(&entities.Meeting{}).
			Where("id = ?", meetingID).
			Update("notes_page_ref", artifacts.Page.Key).Error
	})
}

// UpdateScheduleRefs stores the non-nil references
func (r *meetingRepository) UpdateScheduleRefs(ctx context.Context, id uuid.UUID, refs repositories.ScheduleRefs) error {
	if refs.IsEmpty() {
		return nil
	}

	updates := map[string]interface{}{}
	if refs.CalendarEventID != nil {
		updates["calendar_event_id"] = *refs.CalendarEventID
	}
	if refs.JoinURL != nil {
		updates["join_url"] = *refs.JoinURL
	}
	if refs.OwnerTaskID != nil {
		updates["owner_task_id"] = *refs.OwnerTaskID
	}

	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// ListAwaitingCapture retrieves scheduled meetings in scope that already ended
func (r *meetingRepository) ListAwaitingCapture(ctx context.Context, scope entities.Scope, now time.Time) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("ExpectedOutcomes", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("scope_type = ? AND scope_id = ?", scope.Type, scope.ID).
		Where("status = ?", entities.MeetingStatusScheduled).
		Where("scheduled_end < ?", now).
		Order("scheduled_end ASC").
		Find(&meetings).Error
	return meetings, err
}

func transitionColumns(to entities.MeetingStatus, at time.Time) map[string]interface{} {
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": at,
	}
	switch to {
	case entities.MeetingStatusCaptured:
		updates["captured_at"] = at
	case entities.MeetingStatusCancelled:
		updates["cancelled_at"] = at
	}
	return updates
}
