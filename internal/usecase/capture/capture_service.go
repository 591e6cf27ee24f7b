package capture

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	"github.com/johnquangdev/meeting-capture/internal/domain/gateways"
	"github.com/johnquangdev/meeting-capture/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/meeting-capture/internal/usecase/errors"
	"github.com/johnquangdev/meeting-capture/pkg/validator"
)

var tracer = otel.Tracer("capture")

// Options holds the capture engine tunables
type Options struct {
	CallTimeout       time.Duration
	QuickCloseSummary string
}

// CaptureService runs the capture pipeline: lock, persist, fan out, report
type CaptureService struct {
	meetingRepo repositories.MeetingRepository
	producers   []producer
	validator   *validator.CustomValidator
	logger      *zap.Logger
	opts        Options
	now         func() time.Time
}

// NewCaptureService creates a new capture service
func NewCaptureService(
	meetingRepo repositories.MeetingRepository,
	ledger repositories.ArtifactLedger,
	notes gateways.NotesStore,
	subtasks gateways.SubtaskStore,
	contextStore gateways.ContextStore,
	opts Options,
	logger *zap.Logger,
) *CaptureService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.QuickCloseSummary == "" {
		opts.QuickCloseSummary = "No notable outcomes."
	}

	producers := []producer{
		&contextProducer{store: contextStore, timeout: opts.CallTimeout},
		&notesProducer{store: notes, timeout: opts.CallTimeout},
		&subtaskProducer{store: subtasks, ledger: ledger, timeout: opts.CallTimeout, logger: logger},
	}
	sort.Slice(producers, func(i, j int) bool { return producers[i].Name() < producers[j].Name() })

	return &CaptureService{
		meetingRepo: meetingRepo,
		producers:   producers,
		validator:   validator.New(),
		logger:      logger,
		opts:        opts,
		now:         time.Now,
	}
}

// SeedCapture projects the meeting's expected outcomes into a seed
func (s *CaptureService) SeedCapture(ctx context.Context, meetingID uuid.UUID) (*entities.CaptureSeed, error) {
	meeting, err := s.getMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	return Seed(meeting), nil
}

// Capture validates the submission, commits the captured transition together with the
// capture record, then runs the producers. Only the commit can fail the call.
func (s *CaptureService) Capture(ctx context.Context, input CaptureInput) (*entities.CaptureResult, error) {
	ctx, span := tracer.Start(ctx, "Capture.Service.Capture")
	defer span.End()
	span.SetAttributes(attribute.String("meeting_id", input.MeetingID.String()))

	data := input.Data
	if err := s.validator.Validate(data); err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrValidation, err)
	}

	meeting, err := s.getMeeting(ctx, input.MeetingID)
	if err != nil {
		return nil, err
	}
	if !meeting.CanCapture() {
		return nil, fmt.Errorf("%w: meeting is %s", usecaseErrors.ErrCaptureConflict, meeting.Status)
	}
	if err := data.CheckConsistency(meeting); err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrValidation, err)
	}

	now := s.now()
	data.Normalize(now)

	record := &entities.CaptureRecord{
		ID:         uuid.New(),
		MeetingID:  meeting.ID,
		Version:    data.Version,
		Data:       datatypes.NewJSONType(data),
		Artifacts:  datatypes.NewJSONType(entities.CaptureArtifacts{Subtasks: []entities.SubtaskRef{}}),
		CapturedBy: input.CapturedBy,
		CapturedAt: now,
	}

	applied, err := s.meetingRepo.CommitCapture(ctx, record)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "commit failed")
		return nil, fmt.Errorf("failed to commit capture: %w", err)
	}
	if !applied {
		span.SetStatus(codes.Error, "lock lost")
		return nil, fmt.Errorf("%w: another capture committed first", usecaseErrors.ErrCaptureConflict)
	}

	meeting.Status = entities.MeetingStatusCaptured
	meeting.CapturedAt = &now

	s.logger.Info("✅ Capture committed",
		zap.String("meeting_id", meeting.ID.String()),
		zap.Int("decisions", len(data.Decisions)),
		zap.Int("action_items", len(data.ActionItems)),
	)

	// The captured transition is durable from here on; nothing below fails the call.
	// Producers outlive the caller, bounded only by the per-call timeout.
	bg := context.WithoutCancel(ctx)
	job := &captureJob{meeting: meeting, data: &data, capturedAt: now}
	result := s.fanOut(bg, job)

	if err := s.meetingRepo.UpdateCaptureArtifacts(bg, meeting.ID, result.Artifacts()); err != nil {
		s.logger.Warn("failed to store capture artifacts",
			zap.String("meeting_id", meeting.ID.String()),
			zap.Error(err),
		)
	}

	span.SetAttributes(
		attribute.Int("decisions_count", result.DecisionsCount),
		attribute.Int("subtasks", len(result.Subtasks)),
		attribute.Int("producer_errors", len(result.Errors)),
	)
	return result, nil
}

// QuickClose captures with an empty outcome set and the fixed summary, through the same pipeline
func (s *CaptureService) QuickClose(ctx context.Context, meetingID uuid.UUID, capturedBy *uuid.UUID) (*entities.CaptureResult, error) {
	meeting, err := s.getMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	summary := s.opts.QuickCloseSummary
	data := ToCaptureData(Seed(meeting), now)
	data.Summary = &summary
	data.Decisions = []entities.Decision{}
	data.ActionItems = []entities.ActionItem{}

	return s.Capture(ctx, CaptureInput{MeetingID: meetingID, Data: data, CapturedBy: capturedBy})
}

// GetCapture retrieves the capture record of a captured meeting
func (s *CaptureService) GetCapture(ctx context.Context, meetingID uuid.UUID) (*entities.CaptureRecord, error) {
	record, err := s.meetingRepo.FindCaptureRecord(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrCaptureNotFound
		}
		return nil, fmt.Errorf("failed to get capture record: %w", err)
	}
	return record, nil
}

// fanOut runs every producer concurrently and aggregates their results. Errors are
// ordered by producer name, then by item order, whatever the completion order.
func (s *CaptureService) fanOut(ctx context.Context, job *captureJob) *entities.CaptureResult {
	reports := make([][]artifactResult, len(s.producers))

	var wg sync.WaitGroup
	for i, p := range s.producers {
		wg.Add(1)
		go func(i int, p producer) {
			defer wg.Done()
			pctx, span := tracer.Start(ctx, "Capture.Producer."+string(p.Name()))
			defer span.End()

			reports[i] = p.Produce(pctx, job)
			for _, r := range reports[i] {
				if r.Err != nil {
					span.RecordError(r.Err, trace.WithAttributes(attribute.String("item_ref", r.ItemRef)))
				}
			}
		}(i, p)
	}
	wg.Wait()

	result := &entities.CaptureResult{
		MeetingID: job.meeting.ID,
		Subtasks:  []entities.SubtaskRef{},
		Errors:    []entities.ProducerError{},
	}

	for i, p := range s.producers {
		for _, r := range reports[i] {
			if r.Err != nil {
				result.Errors = append(result.Errors, entities.ProducerError{
					Producer: p.Name(),
					ItemRef:  r.ItemRef,
					Message:  r.Err.Error(),
				})
				s.logger.Warn("⚠️ Capture producer failed",
					zap.String("meeting_id", job.meeting.ID.String()),
					zap.String("producer", string(p.Name())),
					zap.String("item_ref", r.ItemRef),
					zap.Error(r.Err),
				)
				continue
			}
			switch {
			case r.Page != nil:
				result.Page = r.Page
			case r.Subtask != nil:
				result.Subtasks = append(result.Subtasks, *r.Subtask)
			case r.Decision:
				result.DecisionsCount++
			}
		}
	}
	return result
}

func (s *CaptureService) getMeeting(ctx context.Context, meetingID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	return meeting, nil
}
