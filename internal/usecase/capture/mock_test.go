package capture

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	"github.com/johnquangdev/meeting-capture/internal/domain/gateways"
	"github.com/johnquangdev/meeting-capture/internal/domain/repositories"
)

// mockMeetingRepo keeps meetings and capture records in memory. CommitCapture is a
// compare-and-set under the mutex, like the conditional UPDATE it stands in for.
type mockMeetingRepo struct {
	repositories.MeetingRepository
	mu        sync.Mutex
	meetings  map[uuid.UUID]*entities.Meeting
	records   map[uuid.UUID]*entities.CaptureRecord
	artifacts map[uuid.UUID]entities.CaptureArtifacts
	awaiting  []*entities.Meeting
}

func newMockMeetingRepo(ms ...*entities.Meeting) *mockMeetingRepo {
	r := &mockMeetingRepo{
		meetings:  make(map[uuid.UUID]*entities.Meeting),
		records:   make(map[uuid.UUID]*entities.CaptureRecord),
		artifacts: make(map[uuid.UUID]entities.CaptureArtifacts),
	}
	for _, m := range ms {
		r.meetings[m.ID] = m
	}
	return r
}

func (r *mockMeetingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *mockMeetingRepo) CommitCapture(ctx context.Context, record *entities.CaptureRecord) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[record.MeetingID]
	if !ok || !m.CanCapture() {
		return false, nil
	}
	m.Status = entities.MeetingStatusCaptured
	r.records[record.MeetingID] = record
	return true, nil
}

func (r *mockMeetingRepo) FindCaptureRecord(ctx context.Context, meetingID uuid.UUID) (*entities.CaptureRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[meetingID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rec, nil
}

func (r *mockMeetingRepo) UpdateCaptureArtifacts(ctx context.Context, meetingID uuid.UUID, a entities.CaptureArtifacts) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.artifacts[meetingID] = a
	return nil
}

func (r *mockMeetingRepo) ListAwaitingCapture(ctx context.Context, scope entities.Scope, now time.Time) ([]*entities.Meeting, error) {
	return r.awaiting, nil
}

type mockNotes struct {
	mu    sync.Mutex
	pages map[string]gateways.NotesPage
	err   error
	block bool
}

func (n *mockNotes) PutPage(ctx context.Context, key string, page gateways.NotesPage) (*entities.PageRef, error) {
	if n.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if n.err != nil {
		return nil, n.err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pages[key] = page
	return &entities.PageRef{Key: key, URL: "https://notes.example/" + key}, nil
}

type mockSubtasks struct {
	mu      sync.Mutex
	created []gateways.SubtaskRequest
	failOn  map[uuid.UUID]bool
	err     error
}

func (s *mockSubtasks) CreateSubtask(ctx context.Context, req gateways.SubtaskRequest) (*entities.SubtaskRef, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.failOn[req.ActionItem.ID] {
		return nil, errors.New("task api: status 400: invalid name")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, req)
	return &entities.SubtaskRef{ActionItemID: req.ActionItem.ID, TaskID: "task-" + req.ActionItem.ID.String()[:8]}, nil
}

type mockContext struct {
	mu      sync.Mutex
	entries map[string]gateways.ContextEntry
	err     error
}

func (c *mockContext) PutDecision(ctx context.Context, key string, entry gateways.ContextEntry) error {
	if c.err != nil {
		return c.err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
	return nil
}

type mockLedger struct {
	mu      sync.Mutex
	entries map[string]*entities.ArtifactEntry
}

func (l *mockLedger) Find(ctx context.Context, key string) (*entities.ArtifactEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries[key], nil
}

func (l *mockLedger) Record(ctx context.Context, e *entities.ArtifactEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.entries[e.Key]; !ok {
		l.entries[e.Key] = e
	}
	return nil
}

type fixture struct {
	repo     *mockMeetingRepo
	notes    *mockNotes
	subtasks *mockSubtasks
	context  *mockContext
	ledger   *mockLedger
	svc      *CaptureService
}

func newFixture(ms ...*entities.Meeting) *fixture {
	f := &fixture{
		repo:     newMockMeetingRepo(ms...),
		notes:    &mockNotes{pages: map[string]gateways.NotesPage{}},
		subtasks: &mockSubtasks{failOn: map[uuid.UUID]bool{}},
		context:  &mockContext{entries: map[string]gateways.ContextEntry{}},
		ledger:   &mockLedger{entries: map[string]*entities.ArtifactEntry{}},
	}
	f.svc = NewCaptureService(f.repo, f.ledger, f.notes, f.subtasks, f.context, Options{CallTimeout: time.Second}, nil)
	f.svc.now = func() time.Time { return testNow }
	return f
}

func (f *fixture) artifactCount() int {
	return len(f.notes.pages) + len(f.subtasks.created) + len(f.context.entries)
}
