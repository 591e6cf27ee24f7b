package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	"github.com/johnquangdev/meeting-capture/internal/domain/gateways"
	"github.com/johnquangdev/meeting-capture/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/meeting-capture/internal/usecase/errors"
	"github.com/johnquangdev/meeting-capture/pkg/callcontext"
)

var tracer = otel.Tracer("scheduling")

// SchedulingService handles the draft -> scheduled transition
type SchedulingService struct {
	meetingRepo repositories.MeetingRepository
	ledger      repositories.ArtifactLedger
	calendar    gateways.CalendarGateway
	rooms       gateways.OnlineRoomProvider
	tasks       gateways.TaskGateway
	logger      *zap.Logger

	callTimeout     time.Duration
	retryMaxElapsed time.Duration
	retryInitial    time.Duration
}

// NewSchedulingService creates a new scheduling service. rooms may be nil.
func NewSchedulingService(
	meetingRepo repositories.MeetingRepository,
	ledger repositories.ArtifactLedger,
	calendar gateways.CalendarGateway,
	rooms gateways.OnlineRoomProvider,
	tasks gateways.TaskGateway,
	callTimeout time.Duration,
	retryMaxElapsed time.Duration,
	logger *zap.Logger,
) *SchedulingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchedulingService{
		meetingRepo:     meetingRepo,
		ledger:          ledger,
		calendar:        calendar,
		rooms:           rooms,
		tasks:           tasks,
		logger:          logger,
		callTimeout:     callTimeout,
		retryMaxElapsed: retryMaxElapsed,
		retryInitial:    500 * time.Millisecond,
	}
}

// Schedule transitions the meeting first; collaborator failures after that only add warnings
func (s *SchedulingService) Schedule(ctx context.Context, meetingID uuid.UUID, opts ScheduleOptions) (*ScheduleResult, error) {
	ctx, span := tracer.Start(ctx, "Scheduling.Service.Schedule")
	defer span.End()
	span.SetAttributes(attribute.String("meeting_id", meetingID.String()))

	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}

	if meeting.Status != entities.MeetingStatusDraft {
		return nil, fmt.Errorf("%w: cannot schedule a %s meeting", usecaseErrors.ErrInvalidTransition, meeting.Status)
	}
	if !meeting.HasSchedule() {
		return nil, usecaseErrors.ErrScheduleMissing
	}

	applied, err := s.meetingRepo.TransitionStatus(ctx, meetingID,
		[]entities.MeetingStatus{entities.MeetingStatusDraft}, entities.MeetingStatusScheduled)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to schedule meeting: %w", err)
	}
	if !applied {
		return nil, fmt.Errorf("%w: meeting changed status concurrently", usecaseErrors.ErrInvalidTransition)
	}
	meeting.Status = entities.MeetingStatusScheduled

	s.logger.Info("📅 Meeting scheduled",
		zap.String("meeting_id", meetingID.String()),
		zap.Time("scheduled_start", *meeting.ScheduledStart),
	)

	result := &ScheduleResult{Meeting: meeting, Warnings: []string{}}
	var refs repositories.ScheduleRefs

	s.createCalendarEvent(ctx, meeting, opts, result)
	if opts.OnlineMeeting && result.JoinURL == nil {
		s.createOnlineRoom(ctx, meeting, result)
	}
	s.createOwnerTask(ctx, meeting, result)

	refs.CalendarEventID = result.CalendarEventID
	refs.JoinURL = result.JoinURL
	refs.OwnerTaskID = result.OwnerTaskID
	if !refs.IsEmpty() {
		if err := s.meetingRepo.UpdateScheduleRefs(ctx, meetingID, refs); err != nil {
			s.logger.Warn("failed to store schedule references",
				zap.String("meeting_id", meetingID.String()),
				zap.Error(err),
			)
			result.warn("external references could not be stored on the meeting")
		}
	}
	meeting.CalendarEventID = refs.CalendarEventID
	meeting.JoinURL = refs.JoinURL
	meeting.OwnerTaskID = refs.OwnerTaskID

	span.SetAttributes(
		attribute.Bool("calendar_event_created", result.CalendarEventCreated),
		attribute.Bool("owner_task_created", result.OwnerTaskCreated),
	)
	return result, nil
}

func (s *SchedulingService) createCalendarEvent(ctx context.Context, meeting *entities.Meeting, opts ScheduleOptions, result *ScheduleResult) {
	if s.calendar == nil {
		result.warn("calendar: not configured")
		return
	}

	var event *gateways.CalendarEvent
	err := s.retry(ctx, meeting.ID, "calendar", func(ctx context.Context) error {
		var err error
		event, err = s.calendar.CreateEvent(ctx, meeting, gateways.CalendarOptions{OnlineMeeting: opts.OnlineMeeting})
		return err
	})
	if err != nil {
		s.logger.Warn("⚠️ Calendar event creation failed",
			zap.String("meeting_id", meeting.ID.String()),
			zap.Error(err),
		)
		result.warn(fmt.Sprintf("calendar: %v", err))
		return
	}
	if event == nil {
		s.logger.Warn("⚠️ Calendar returned no event", zap.String("meeting_id", meeting.ID.String()))
		result.warn("calendar: no event returned")
		return
	}

	result.CalendarEventCreated = true
	result.CalendarEventID = &event.EventID
	if event.JoinURL != "" {
		joinURL := event.JoinURL
		result.JoinURL = &joinURL
	}
}

func (s *SchedulingService) createOnlineRoom(ctx context.Context, meeting *entities.Meeting, result *ScheduleResult) {
	if s.rooms == nil {
		result.warn("online meeting: no join URL available")
		return
	}

	var joinURL string
	err := callcontext.Run(ctx, meeting.ID, "rooms", "", s.callTimeout, func(ctx context.Context) error {
		var err error
		joinURL, err = s.rooms.CreateRoom(ctx, meeting)
		return err
	})
	if err != nil || joinURL == "" {
		s.logger.Warn("⚠️ Online room creation failed",
			zap.String("meeting_id", meeting.ID.String()),
			zap.Error(err),
		)
		result.warn("online meeting: room could not be created")
		return
	}
	result.JoinURL = &joinURL
}

func (s *SchedulingService) createOwnerTask(ctx context.Context, meeting *entities.Meeting, result *ScheduleResult) {
	if s.tasks == nil {
		result.warn("owner task: not configured")
		return
	}

	key := entities.ArtifactKey(meeting.ID, entities.ArtifactTypeOwnerTask, meeting.ID.String())
	if s.ledger != nil {
		existing, err := s.ledger.Find(ctx, key)
		if err != nil {
			s.logger.Warn("artifact ledger lookup failed", zap.String("key", key), zap.Error(err))
		} else if existing != nil {
			taskID := existing.ExternalRef
			result.OwnerTaskCreated = true
			result.OwnerTaskID = &taskID
			return
		}
	}

	var taskID string
	err := s.retry(ctx, meeting.ID, "tasks", func(ctx context.Context) error {
		var err error
		taskID, err = s.tasks.CreateOwnerTask(ctx, meeting)
		return err
	})
	if err != nil {
		s.logger.Warn("⚠️ Owner task creation failed",
			zap.String("meeting_id", meeting.ID.String()),
			zap.Error(err),
		)
		result.warn(fmt.Sprintf("owner task: %v", err))
		return
	}

	result.OwnerTaskCreated = true
	result.OwnerTaskID = &taskID

	if s.ledger != nil {
		entry := &entities.ArtifactEntry{
			Key:          key,
			MeetingID:    meeting.ID,
			ArtifactType: entities.ArtifactTypeOwnerTask,
			SourceItemID: meeting.ID.String(),
			ExternalRef:  taskID,
		}
		if err := s.ledger.Record(ctx, entry); err != nil {
			s.logger.Warn("failed to record owner task", zap.String("key", key), zap.Error(err))
		}
	}
}

// retry runs fn with a per-attempt timeout, retrying transient failures with exponential backoff
func (s *SchedulingService) retry(ctx context.Context, meetingID uuid.UUID, collaborator string, fn func(context.Context) error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.retryInitial
	bo.MaxElapsedTime = s.retryMaxElapsed
	bo.MaxInterval = 5 * time.Second

	attempt := 0
	op := func() error {
		attempt++
		err := callcontext.Run(ctx, meetingID, collaborator, fmt.Sprintf("attempt-%d", attempt), s.callTimeout, fn)
		if err != nil && !callcontext.IsRetryableError(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.Retry(op, backoff.WithContext(bo, ctx))
}
