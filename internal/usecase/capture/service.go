package capture

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
)

// Service defines the interface for the capture use case
type Service interface {
	// SeedCapture projects the meeting's expected outcomes into a capture session seed
	SeedCapture(ctx context.Context, meetingID uuid.UUID) (*entities.CaptureSeed, error)

	// CheckEligibility reports whether the meeting can still be captured. Advisory only;
	// Capture re-checks atomically.
	CheckEligibility(ctx context.Context, meetingID uuid.UUID) (*entities.Eligibility, error)

	// ListAwaitingCapture lists scheduled meetings in scope that already ended
	ListAwaitingCapture(ctx context.Context, scope entities.Scope) ([]*entities.Meeting, error)

	// Capture commits the capture record and materializes its artifacts
	Capture(ctx context.Context, input CaptureInput) (*entities.CaptureResult, error)

	// QuickClose captures the meeting with no decisions or action items
	QuickClose(ctx context.Context, meetingID uuid.UUID, capturedBy *uuid.UUID) (*entities.CaptureResult, error)

	// GetCapture retrieves the persisted capture record
	GetCapture(ctx context.Context, meetingID uuid.UUID) (*entities.CaptureRecord, error)
}

// CaptureInput represents a capture submission
type CaptureInput struct {
	MeetingID  uuid.UUID
	Data       entities.CaptureData
	CapturedBy *uuid.UUID
}

// Ensure CaptureService implements Service interface
var _ Service = (*CaptureService)(nil)
