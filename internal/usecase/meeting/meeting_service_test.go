package meeting

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

// mockMeetingRepo is a minimal in-memory repository
type mockMeetingRepo struct {
	repositories.MeetingRepository
	mu       sync.Mutex
	meetings map[uuid.UUID]*entities.Meeting
}

func newMockMeetingRepo() *mockMeetingRepo {
	return &mockMeetingRepo{meetings: make(map[uuid.UUID]*entities.Meeting)}
}

func (r *mockMeetingRepo) Create(ctx context.Context, m *entities.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.meetings[m.ID] = &cp
	return nil
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

func (r *mockMeetingRepo) ReplaceOutcomes(ctx context.Context, id uuid.UUID, outcomes []entities.ExpectedOutcome) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok || m.Status != entities.MeetingStatusDraft {
		return false, nil
	}
	m.ExpectedOutcomes = outcomes
	return true, nil
}

func (r *mockMeetingRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from []entities.MeetingStatus, to entities.MeetingStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok {
		return false, nil
	}
	for _, s := range from {
		if m.Status == s {
			m.Status = to
			return true, nil
		}
	}
	return false, nil
}

type stubSuggestions struct {
	got *gateways.Suggestions
	err error
}

func (s stubSuggestions) Suggest(ctx context.Context, purpose string) (*gateways.Suggestions, error) {
	return s.got, s.err
}

func validInput() CreateMeetingInput {
	owner := uuid.New()
	return CreateMeetingInput{
		Title:           "Vendor review",
		DurationMinutes: 30,
		Scope:           entities.Scope{Type: entities.ScopeTypeSpace, ID: uuid.New()},
		OwnerID:         owner,
		ExpectedOutcomes: []OutcomeInput{
			{Label: "Pick vendor", Type: entities.OutcomeTypeDecision},
			{Label: "Share pricing", Type: entities.OutcomeTypeInformation, Provenance: entities.OutcomeProvenanceAISuggested},
		},
		Attendees: []AttendeeInput{
			{Email: "owner@example.com", UserID: &owner, IsOwner: true},
			{Email: "guest@example.com", AttendeeType: entities.AttendeeTypeOptional},
		},
	}
}

func TestCreateMeetingStartsAsDraft(t *testing.T) {
	svc := NewMeetingService(newMockMeetingRepo(), nil, time.Second, nil)

	m, err := svc.CreateMeeting(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Status != entities.MeetingStatusDraft {
		t.Fatalf("expected draft, got %s", m.Status)
	}
	for i, o := range m.ExpectedOutcomes {
		if o.Position != i || o.MeetingID != m.ID {
			t.Fatalf("outcome %d not linked in order: %+v", i, o)
		}
	}
	if m.ExpectedOutcomes[0].Provenance != entities.OutcomeProvenanceManual {
		t.Fatalf("expected manual provenance default")
	}
	if m.Attendees[0].AttendeeType != entities.AttendeeTypeRequired {
		t.Fatalf("expected required attendee default")
	}
}

func TestCreateMeetingWithScheduleStaysDraft(t *testing.T) {
	svc := NewMeetingService(newMockMeetingRepo(), nil, time.Second, nil)
	in := validInput()
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	in.ScheduledStart = &start

	m, err := svc.CreateMeeting(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Status != entities.MeetingStatusDraft {
		t.Fatalf("creation must not schedule, got %s", m.Status)
	}
	if m.ScheduledEnd == nil || !m.ScheduledEnd.Equal(start.Add(30*time.Minute)) {
		t.Fatalf("expected end derived from duration, got %v", m.ScheduledEnd)
	}
}

func TestCreateMeetingValidation(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	before := start.Add(-time.Minute)

	tests := []struct {
		name   string
		mutate func(*CreateMeetingInput)
	}{
		{"zero duration", func(in *CreateMeetingInput) { in.DurationMinutes = 0 }},
		{"blank title", func(in *CreateMeetingInput) { in.Title = "  " }},
		{"end without start", func(in *CreateMeetingInput) { in.ScheduledEnd = &start }},
		{"end before start", func(in *CreateMeetingInput) { in.ScheduledStart = &start; in.ScheduledEnd = &before }},
		{"bad scope type", func(in *CreateMeetingInput) { in.Scope.Type = "team" }},
		{"bad outcome type", func(in *CreateMeetingInput) { in.ExpectedOutcomes[0].Type = "vibe" }},
		{"bad email", func(in *CreateMeetingInput) { in.Attendees[1].Email = "not-an-email" }},
		{"two owners", func(in *CreateMeetingInput) { in.Attendees[1].IsOwner = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockMeetingRepo()
			svc := NewMeetingService(repo, nil, time.Second, nil)
			in := validInput()
			tt.mutate(&in)

			_, err := svc.CreateMeeting(context.Background(), in)
			if !errors.Is(err, usecaseErrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(repo.meetings) != 0 {
				t.Fatalf("nothing must be written on validation failure")
			}
		})
	}
}

func TestGetMeetingNotFound(t *testing.T) {
	svc := NewMeetingService(newMockMeetingRepo(), nil, time.Second, nil)
	_, err := svc.GetMeeting(context.Background(), uuid.New())
	if !errors.Is(err, usecaseErrors.ErrMeetingNotFound) || !errors.Is(err, usecaseErrors.ErrNotFound) {
		t.Fatalf("expected meeting not found, got %v", err)
	}
}

func TestReplaceOutcomesOnlyWhileDraft(t *testing.T) {
	repo := newMockMeetingRepo()
	svc := NewMeetingService(repo, nil, time.Second, nil)
	m, _ := svc.CreateMeeting(context.Background(), validInput())

	got, err := svc.ReplaceOutcomes(context.Background(), m.ID, []OutcomeInput{{Label: "Agree budget", Type: entities.OutcomeTypeDecision}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.ExpectedOutcomes) != 1 || got.ExpectedOutcomes[0].Label != "Agree budget" {
		t.Fatalf("unexpected outcomes %+v", got.ExpectedOutcomes)
	}

	repo.meetings[m.ID].Status = entities.MeetingStatusScheduled
	_, err = svc.ReplaceOutcomes(context.Background(), m.ID, nil)
	if !errors.Is(err, usecaseErrors.ErrPrecondition) {
		t.Fatalf("expected precondition error, got %v", err)
	}
}

func TestCancelMeeting(t *testing.T) {
	repo := newMockMeetingRepo()
	svc := NewMeetingService(repo, nil, time.Second, nil)
	m, _ := svc.CreateMeeting(context.Background(), validInput())

	got, err := svc.CancelMeeting(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != entities.MeetingStatusCancelled || got.CancelledAt == nil {
		t.Fatalf("expected cancelled meeting, got %+v", got)
	}

	_, err = svc.CancelMeeting(context.Background(), m.ID)
	if !errors.Is(err, usecaseErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition on second cancel, got %v", err)
	}
}

func TestSuggestMeetingNeverFails(t *testing.T) {
	svc := NewMeetingService(newMockMeetingRepo(), stubSuggestions{err: errors.New("connection refused")}, time.Second, nil)
	out := svc.SuggestMeeting(context.Background(), "pick a vendor")
	if out.Warning == "" || len(out.Titles) != 0 || out.Outcomes == nil {
		t.Fatalf("expected empty suggestions with warning, got %+v", out)
	}

	svc = NewMeetingService(newMockMeetingRepo(), stubSuggestions{got: &gateways.Suggestions{
		Titles:   []string{"Vendor review"},
		Outcomes: []gateways.SuggestedOutcome{{Label: "Pick vendor", Type: entities.OutcomeTypeDecision}},
	}}, time.Second, nil)
	out = svc.SuggestMeeting(context.Background(), "pick a vendor")
	if out.Warning != "" || len(out.Titles) != 1 || len(out.Outcomes) != 1 {
		t.Fatalf("unexpected suggestions %+v", out)
	}
}
