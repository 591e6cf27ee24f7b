package meeting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	"github.com/johnquangdev/meeting-capture/internal/domain/gateways"
	"github.com/johnquangdev/meeting-capture/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/meeting-capture/internal/usecase/errors"
	"github.com/johnquangdev/meeting-capture/pkg/callcontext"
	"github.com/johnquangdev/meeting-capture/pkg/validator"
)

// MeetingService handles meeting store business logic
type MeetingService struct {
	meetingRepo repositories.MeetingRepository
	suggestions gateways.SuggestionSource
	validator   *validator.CustomValidator
	logger      *zap.Logger
	callTimeout time.Duration
	now         func() time.Time
}

// NewMeetingService creates a new meeting service. suggestions may be nil.
func NewMeetingService(
	meetingRepo repositories.MeetingRepository,
	suggestions gateways.SuggestionSource,
	callTimeout time.Duration,
	logger *zap.Logger,
) *MeetingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MeetingService{
		meetingRepo: meetingRepo,
		suggestions: suggestions,
		validator:   validator.New(),
		logger:      logger,
		callTimeout: callTimeout,
		now:         time.Now,
	}
}

// CreateMeeting validates and persists a new draft meeting
func (s *MeetingService) CreateMeeting(ctx context.Context, input CreateMeetingInput) (*entities.Meeting, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", usecaseErrors.ErrValidation)
	}
	if err := s.validator.Validate(input.Scope); err != nil {
		return nil, fmt.Errorf("%w: scope: %v", usecaseErrors.ErrValidation, err)
	}
	if input.OwnerID == uuid.Nil {
		return nil, fmt.Errorf("%w: owner is required", usecaseErrors.ErrValidation)
	}

	start, end, err := entities.ValidateSchedule(input.ScheduledStart, input.ScheduledEnd, input.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrValidation, err)
	}

	meetingID := uuid.New()
	outcomes, err := s.buildOutcomes(meetingID, input.ExpectedOutcomes)
	if err != nil {
		return nil, err
	}

	attendees := make([]entities.Attendee, 0, len(input.Attendees))
	for i, a := range input.Attendees {
		attendeeType := a.AttendeeType
		if attendeeType == "" {
			attendeeType = entities.AttendeeTypeRequired
		}
		attendee := entities.Attendee{
			ID:           uuid.New(),
			MeetingID:    meetingID,
			Email:        strings.TrimSpace(a.Email),
			DisplayName:  a.DisplayName,
			UserID:       a.UserID,
			AttendeeType: attendeeType,
			IsOwner:      a.IsOwner,
		}
		if err := s.validator.Validate(attendee); err != nil {
			return nil, fmt.Errorf("%w: attendees[%d]: %v", usecaseErrors.ErrValidation, i, err)
		}
		attendees = append(attendees, attendee)
	}
	if err := entities.ValidateAttendees(attendees, input.OwnerID); err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrValidation, err)
	}

	now := s.now()
	meeting := &entities.Meeting{
		ID:               meetingID,
		Title:            title,
		Purpose:          input.Purpose,
		Status:           entities.MeetingStatusDraft,
		ScheduledStart:   start,
		ScheduledEnd:     end,
		DurationMinutes:  input.DurationMinutes,
		Scope:            input.Scope,
		OwnerID:          input.OwnerID,
		ParentTaskID:     input.ParentTaskID,
		Attendees:        attendees,
		ExpectedOutcomes: outcomes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	s.logger.Info("meeting created",
		zap.String("meeting_id", meeting.ID.String()),
		zap.String("scope", meeting.Scope.String()),
		zap.Int("expected_outcomes", len(outcomes)),
	)
	return meeting, nil
}

// GetMeeting retrieves a meeting by ID
func (s *MeetingService) GetMeeting(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	return meeting, nil
}

// ReplaceOutcomes swaps the expected outcomes while the meeting is a draft
func (s *MeetingService) ReplaceOutcomes(ctx context.Context, id uuid.UUID, inputs []OutcomeInput) (*entities.Meeting, error) {
	meeting, err := s.GetMeeting(ctx, id)
	if err != nil {
		return nil, err
	}
	if meeting.Status != entities.MeetingStatusDraft {
		return nil, fmt.Errorf("%w: status is %s", usecaseErrors.ErrNotDraft, meeting.Status)
	}

	outcomes, err := s.buildOutcomes(id, inputs)
	if err != nil {
		return nil, err
	}

	applied, err := s.meetingRepo.ReplaceOutcomes(ctx, id, outcomes)
	if err != nil {
		return nil, fmt.Errorf("failed to replace outcomes: %w", err)
	}
	if !applied {
		return nil, usecaseErrors.ErrNotDraft
	}

	meeting.ExpectedOutcomes = outcomes
	return meeting, nil
}

// CancelMeeting cancels a draft or scheduled meeting
func (s *MeetingService) CancelMeeting(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.GetMeeting(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entities.CanTransition(meeting.Status, entities.MeetingStatusCancelled) {
		return nil, fmt.Errorf("%w: cannot cancel a %s meeting", usecaseErrors.ErrInvalidTransition, meeting.Status)
	}

	applied, err := s.meetingRepo.TransitionStatus(ctx, id, entities.CapturableStatuses, entities.MeetingStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel meeting: %w", err)
	}
	if !applied {
		// Captured or cancelled between our read and the update
		return nil, fmt.Errorf("%w: meeting changed status concurrently", usecaseErrors.ErrInvalidTransition)
	}

	now := s.now()
	meeting.Status = entities.MeetingStatusCancelled
	meeting.CancelledAt = &now
	meeting.UpdatedAt = now

	s.logger.Info("meeting cancelled", zap.String("meeting_id", id.String()))
	return meeting, nil
}

// SuggestMeeting asks the suggestion source, bounded by the collaborator timeout
func (s *MeetingService) SuggestMeeting(ctx context.Context, purpose string) *SuggestOutput {
	out := &SuggestOutput{Titles: []string{}, Outcomes: []gateways.SuggestedOutcome{}}
	if s.suggestions == nil {
		out.Warning = "suggestions are not available"
		return out
	}
	if strings.TrimSpace(purpose) == "" {
		return out
	}

	var got *gateways.Suggestions
	err := callcontext.Run(ctx, uuid.Nil, "suggestions", "", s.callTimeout, func(ctx context.Context) error {
		var err error
		got, err = s.suggestions.Suggest(ctx, purpose)
		return err
	})
	if err != nil {
		s.logger.Warn("suggestion source unavailable", zap.Error(err))
		out.Warning = "suggestions are temporarily unavailable"
		return out
	}

	if got != nil {
		out.Titles = append(out.Titles, got.Titles...)
		out.Outcomes = append(out.Outcomes, got.Outcomes...)
	}
	return out
}

func (s *MeetingService) buildOutcomes(meetingID uuid.UUID, inputs []OutcomeInput) ([]entities.ExpectedOutcome, error) {
	now := s.now()
	outcomes := make([]entities.ExpectedOutcome, 0, len(inputs))
	for i, in := range inputs {
		provenance := in.Provenance
		if provenance == "" {
			provenance = entities.OutcomeProvenanceManual
		}
		outcome := entities.ExpectedOutcome{
			ID:         uuid.New(),
			MeetingID:  meetingID,
			Label:      strings.TrimSpace(in.Label),
			Type:       in.Type,
			Provenance: provenance,
			Position:   i,
			CreatedAt:  now,
		}
		if err := s.validator.Validate(outcome); err != nil {
			return nil, fmt.Errorf("%w: expected_outcomes[%d]: %v", usecaseErrors.ErrValidation, i, err)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}
