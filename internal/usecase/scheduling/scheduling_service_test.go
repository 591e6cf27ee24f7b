package scheduling

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	"github.com/johnquangdev/meeting-capture/internal/domain/gateways"
	"github.com/johnquangdev/meeting-capture/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/meeting-capture/internal/usecase/errors"
)

type mockMeetingRepo struct {
	repositories.MeetingRepository
	mu       sync.Mutex
	meetings map[uuid.UUID]*entities.Meeting
	refs     map[uuid.UUID]repositories.ScheduleRefs
}

func newMockMeetingRepo(ms ...*entities.Meeting) *mockMeetingRepo {
	r := &mockMeetingRepo{
		meetings: make(map[uuid.UUID]*entities.Meeting),
		refs:     make(map[uuid.UUID]repositories.ScheduleRefs),
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

func (r *mockMeetingRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from []entities.MeetingStatus, to entities.MeetingStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.meetings[id]
	for _, s := range from {
		if m.Status == s {
			m.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (r *mockMeetingRepo) UpdateScheduleRefs(ctx context.Context, id uuid.UUID, refs repositories.ScheduleRefs) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refs[id] = refs
	return nil
}

type mockLedger struct {
	entries map[string]*entities.ArtifactEntry
}

func (l *mockLedger) Find(ctx context.Context, key string) (*entities.ArtifactEntry, error) {
	return l.entries[key], nil
}

func (l *mockLedger) Record(ctx context.Context, e *entities.ArtifactEntry) error {
	l.entries[e.Key] = e
	return nil
}

type mockCalendar struct {
	errs  []error
	calls int
	event *gateways.CalendarEvent
}

func (c *mockCalendar) CreateEvent(ctx context.Context, m *entities.Meeting, opts gateways.CalendarOptions) (*gateways.CalendarEvent, error) {
	c.calls++
	if len(c.errs) > 0 {
		err := c.errs[0]
		c.errs = c.errs[1:]
		return nil, err
	}
	return c.event, nil
}

type mockRooms struct{ url string }

func (r mockRooms) CreateRoom(ctx context.Context, m *entities.Meeting) (string, error) {
	return r.url, nil
}

type mockTasks struct {
	calls int
	err   error
}

func (t *mockTasks) CreateOwnerTask(ctx context.Context, m *entities.Meeting) (string, error) {
	t.calls++
	if t.err != nil {
		return "", t.err
	}
	return "task-1", nil
}

func draftMeeting(withSchedule bool) *entities.Meeting {
	m := &entities.Meeting{
		ID:              uuid.New(),
		Title:           "Vendor review",
		Status:          entities.MeetingStatusDraft,
		DurationMinutes: 30,
		Scope:           entities.Scope{Type: entities.ScopeTypeArea, ID: uuid.New()},
		OwnerID:         uuid.New(),
	}
	if withSchedule {
		start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
		end := start.Add(30 * time.Minute)
		m.ScheduledStart, m.ScheduledEnd = &start, &end
	}
	return m
}

func newService(repo *mockMeetingRepo, cal *mockCalendar, rooms gateways.OnlineRoomProvider, tasks *mockTasks, ledger *mockLedger) *SchedulingService {
	svc := NewSchedulingService(repo, ledger, cal, rooms, tasks, time.Second, 200*time.Millisecond, nil)
	svc.retryInitial = time.Millisecond
	return svc
}

func TestScheduleWithoutWindowIsPrecondition(t *testing.T) {
	m := draftMeeting(false)
	repo := newMockMeetingRepo(m)
	svc := newService(repo, &mockCalendar{}, nil, &mockTasks{}, &mockLedger{entries: map[string]*entities.ArtifactEntry{}})

	_, err := svc.Schedule(context.Background(), m.ID, ScheduleOptions{})
	if !errors.Is(err, usecaseErrors.ErrPrecondition) {
		t.Fatalf("expected precondition error, got %v", err)
	}
	if repo.meetings[m.ID].Status != entities.MeetingStatusDraft {
		t.Fatalf("meeting must stay draft")
	}
}

func TestScheduleSurvivesCalendarFailure(t *testing.T) {
	m := draftMeeting(true)
	repo := newMockMeetingRepo(m)
	cal := &mockCalendar{errs: []error{errors.New("invalid credentials")}}
	tasks := &mockTasks{}
	svc := newService(repo, cal, nil, tasks, &mockLedger{entries: map[string]*entities.ArtifactEntry{}})

	result, err := svc.Schedule(context.Background(), m.ID, ScheduleOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Meeting.Status != entities.MeetingStatusScheduled || repo.meetings[m.ID].Status != entities.MeetingStatusScheduled {
		t.Fatalf("expected scheduled meeting")
	}
	if result.CalendarEventCreated {
		t.Fatalf("expected calendar_event_created=false")
	}
	if cal.calls != 1 {
		t.Fatalf("non-transient failure must not be retried, got %d calls", cal.calls)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", result.Warnings)
	}
	if !result.OwnerTaskCreated || *repo.refs[m.ID].OwnerTaskID != "task-1" {
		t.Fatalf("expected owner task stored, got %+v", repo.refs[m.ID])
	}
}

func TestScheduleSurvivesEmptyCalendarResponse(t *testing.T) {
	m := draftMeeting(true)
	repo := newMockMeetingRepo(m)
	cal := &mockCalendar{}
	svc := newService(repo, cal, nil, &mockTasks{}, &mockLedger{entries: map[string]*entities.ArtifactEntry{}})

	result, err := svc.Schedule(context.Background(), m.ID, ScheduleOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.meetings[m.ID].Status != entities.MeetingStatusScheduled {
		t.Fatalf("expected scheduled meeting")
	}
	if result.CalendarEventCreated || result.CalendarEventID != nil {
		t.Fatalf("expected no calendar event, got %+v", result)
	}
	if len(result.Warnings) != 1 || result.Warnings[0] != "calendar: no event returned" {
		t.Fatalf("unexpected warnings %v", result.Warnings)
	}
	if !result.OwnerTaskCreated {
		t.Fatalf("owner task must still be created")
	}
}

func TestScheduleRetriesTransientCalendarErrors(t *testing.T) {
	m := draftMeeting(true)
	cal := &mockCalendar{
		errs:  []error{errors.New("googleapi: status 503 service unavailable")},
		event: &gateways.CalendarEvent{EventID: "evt-1", JoinURL: "https://meet.example/abc"},
	}
	svc := newService(newMockMeetingRepo(m), cal, nil, &mockTasks{}, &mockLedger{entries: map[string]*entities.ArtifactEntry{}})

	result, err := svc.Schedule(context.Background(), m.ID, ScheduleOptions{OnlineMeeting: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cal.calls != 2 || !result.CalendarEventCreated {
		t.Fatalf("expected retry then success, calls=%d", cal.calls)
	}
	if result.JoinURL == nil || *result.JoinURL != "https://meet.example/abc" {
		t.Fatalf("expected calendar join url, got %v", result.JoinURL)
	}
}

func TestScheduleOnlineFallsBackToRoom(t *testing.T) {
	m := draftMeeting(true)
	cal := &mockCalendar{event: &gateways.CalendarEvent{EventID: "evt-1"}}
	svc := newService(newMockMeetingRepo(m), cal, mockRooms{url: "https://rooms.example/meeting-1"}, &mockTasks{}, &mockLedger{entries: map[string]*entities.ArtifactEntry{}})

	result, err := svc.Schedule(context.Background(), m.ID, ScheduleOptions{OnlineMeeting: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.JoinURL == nil || *result.JoinURL != "https://rooms.example/meeting-1" {
		t.Fatalf("expected room join url, got %v", result.JoinURL)
	}
}

func TestScheduleReusesRecordedOwnerTask(t *testing.T) {
	m := draftMeeting(true)
	ledger := &mockLedger{entries: map[string]*entities.ArtifactEntry{}}
	key := entities.ArtifactKey(m.ID, entities.ArtifactTypeOwnerTask, m.ID.String())
	ledger.entries[key] = &entities.ArtifactEntry{Key: key, ExternalRef: "task-existing"}
	tasks := &mockTasks{}
	svc := newService(newMockMeetingRepo(m), &mockCalendar{event: &gateways.CalendarEvent{EventID: "evt"}}, nil, tasks, ledger)

	result, err := svc.Schedule(context.Background(), m.ID, ScheduleOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tasks.calls != 0 || *result.OwnerTaskID != "task-existing" {
		t.Fatalf("expected recorded owner task reused, calls=%d", tasks.calls)
	}
}

func TestScheduleTwiceFails(t *testing.T) {
	m := draftMeeting(true)
	svc := newService(newMockMeetingRepo(m), &mockCalendar{event: &gateways.CalendarEvent{EventID: "evt"}}, nil, &mockTasks{}, &mockLedger{entries: map[string]*entities.ArtifactEntry{}})

	if _, err := svc.Schedule(context.Background(), m.ID, ScheduleOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := svc.Schedule(context.Background(), m.ID, ScheduleOptions{})
	if !errors.Is(err, usecaseErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestScheduleUnknownMeeting(t *testing.T) {
	svc := newService(newMockMeetingRepo(), &mockCalendar{}, nil, &mockTasks{}, &mockLedger{entries: map[string]*entities.ArtifactEntry{}})
	_, err := svc.Schedule(context.Background(), uuid.New(), ScheduleOptions{})
	if !errors.Is(err, usecaseErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
