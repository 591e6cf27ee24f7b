package capture

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	"github.com/johnquangdev/meeting-capture/internal/domain/gateways"
	"github.com/johnquangdev/meeting-capture/internal/domain/repositories"
	"github.com/johnquangdev/meeting-capture/pkg/callcontext"
)

// captureJob is what every producer reads. It is shared read-only across producers.
type captureJob struct {
	meeting    *entities.Meeting
	data       *entities.CaptureData
	capturedAt time.Time
}

// artifactResult is one producer outcome: an artifact on success, Err otherwise
type artifactResult struct {
	ItemRef  string
	Page     *entities.PageRef
	Subtask  *entities.SubtaskRef
	Decision bool
	Err      error
}

// producer materializes one kind of artifact from a committed capture.
// Failures are returned as results, never as a Go error.
type producer interface {
	Name() entities.ProducerName
	Produce(ctx context.Context, job *captureJob) []artifactResult
}

// notesProducer writes one summary page when the capture has notable content
type notesProducer struct {
	store   gateways.NotesStore
	timeout time.Duration
}

func (p *notesProducer) Name() entities.ProducerName { return entities.ProducerNotes }

func (p *notesProducer) Produce(ctx context.Context, job *captureJob) []artifactResult {
	if !job.data.HasNotableContent() {
		return nil
	}

	key := entities.ArtifactKey(job.meeting.ID, entities.ArtifactTypeNotesPage, job.meeting.ID.String())
	page := gateways.NotesPage{
		MeetingID: job.meeting.ID,
		Title:     job.meeting.Title,
		Markdown:  RenderNotes(job.meeting, job.data, job.capturedAt),
	}

	var ref *entities.PageRef
	err := callcontext.Run(ctx, job.meeting.ID, string(entities.ProducerNotes), "page", p.timeout, func(ctx context.Context) error {
		var err error
		ref, err = p.store.PutPage(ctx, key, page)
		return err
	})
	return []artifactResult{{ItemRef: "page", Page: ref, Err: err}}
}

// subtaskProducer creates one subtask per flagged action item. The ledger makes a
// retried create return the subtask made the first time.
type subtaskProducer struct {
	store   gateways.SubtaskStore
	ledger  repositories.ArtifactLedger
	timeout time.Duration
	logger  *zap.Logger
}

func (p *subtaskProducer) Name() entities.ProducerName { return entities.ProducerSubtasks }

func (p *subtaskProducer) Produce(ctx context.Context, job *captureJob) []artifactResult {
	candidates := job.data.SubtaskCandidates()
	results := make([]artifactResult, 0, len(candidates))

	for _, item := range candidates {
		itemRef := item.ID.String()
		ref, err := p.createOne(ctx, job, item)
		results = append(results, artifactResult{ItemRef: itemRef, Subtask: ref, Err: err})
	}
	return results
}

func (p *subtaskProducer) createOne(ctx context.Context, job *captureJob, item entities.ActionItem) (*entities.SubtaskRef, error) {
	meetingID := job.meeting.ID
	key := entities.ArtifactKey(meetingID, entities.ArtifactTypeSubtask, item.ID.String())

	if p.ledger != nil {
		existing, err := p.ledger.Find(ctx, key)
		if err != nil {
			p.logger.Warn("artifact ledger lookup failed", zap.String("key", key), zap.Error(err))
		} else if existing != nil {
			ref := &entities.SubtaskRef{ActionItemID: item.ID, TaskID: existing.ExternalRef}
			if existing.URL != nil {
				ref.URL = *existing.URL
			}
			return ref, nil
		}
	}

	req := gateways.SubtaskRequest{
		MeetingID:    meetingID,
		MeetingTitle: job.meeting.Title,
		Scope:        job.meeting.Scope,
		ParentTaskID: job.meeting.ParentTaskID,
		ActionItem:   item,
	}

	var ref *entities.SubtaskRef
	err := callcontext.Run(ctx, meetingID, string(entities.ProducerSubtasks), item.ID.String(), p.timeout, func(ctx context.Context) error {
		var err error
		ref, err = p.store.CreateSubtask(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	if p.ledger != nil {
		entry := &entities.ArtifactEntry{
			Key:          key,
			MeetingID:    meetingID,
			ArtifactType: entities.ArtifactTypeSubtask,
			SourceItemID: item.ID.String(),
			ExternalRef:  ref.TaskID,
		}
		if ref.URL != "" {
			url := ref.URL
			entry.URL = &url
		}
		if err := p.ledger.Record(ctx, entry); err != nil {
			p.logger.Warn("failed to record subtask", zap.String("key", key), zap.Error(err))
		}
	}
	return ref, nil
}

// contextProducer writes each confirmed, propagatable decision into the scope context
type contextProducer struct {
	store   gateways.ContextStore
	timeout time.Duration
}

func (p *contextProducer) Name() entities.ProducerName { return entities.ProducerContext }

func (p *contextProducer) Produce(ctx context.Context, job *captureJob) []artifactResult {
	decisions := job.data.PropagatableDecisions()
	results := make([]artifactResult, 0, len(decisions))

	for _, d := range decisions {
		itemRef := d.ID.String()
		key := entities.ArtifactKey(job.meeting.ID, entities.ArtifactTypeDecision, itemRef)
		entry := gateways.ContextEntry{
			Scope:        job.meeting.Scope,
			MeetingID:    job.meeting.ID,
			MeetingTitle: job.meeting.Title,
			Decision:     d,
			RecordedAt:   job.capturedAt,
		}

		err := callcontext.Run(ctx, job.meeting.ID, string(entities.ProducerContext), itemRef, p.timeout, func(ctx context.Context) error {
			return p.store.PutDecision(ctx, key, entry)
		})
		results = append(results, artifactResult{ItemRef: itemRef, Decision: err == nil, Err: err})
	}
	return results
}
