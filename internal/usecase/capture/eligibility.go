package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/meeting-capture/internal/usecase/errors"
)

// Eligibility derives capture eligibility from the stored status and the clock
func Eligibility(meeting *entities.Meeting, now time.Time) *entities.Eligibility {
	e := &entities.Eligibility{
		CanCapture:      meeting.CanCapture(),
		AwaitingCapture: meeting.IsAwaitingCapture(now),
	}
	switch meeting.Status {
	case entities.MeetingStatusCaptured:
		e.Reason = "already captured"
	case entities.MeetingStatusCancelled:
		e.Reason = "meeting was cancelled"
	}
	return e
}

// CheckEligibility reports whether a meeting can be captured
func (s *CaptureService) CheckEligibility(ctx context.Context, meetingID uuid.UUID) (*entities.Eligibility, error) {
	meeting, err := s.getMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	return Eligibility(meeting, s.now()), nil
}

// ListAwaitingCapture lists scheduled meetings in scope whose end has passed
func (s *CaptureService) ListAwaitingCapture(ctx context.Context, scope entities.Scope) ([]*entities.Meeting, error) {
	if err := s.validator.Validate(scope); err != nil {
		return nil, fmt.Errorf("%w: scope: %v", usecaseErrors.ErrValidation, err)
	}
	meetings, err := s.meetingRepo.ListAwaitingCapture(ctx, scope, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings awaiting capture: %w", err)
	}
	return meetings, nil
}
