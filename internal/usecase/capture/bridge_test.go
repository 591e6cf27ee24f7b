package capture

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
)

var testNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func vendorMeeting(status entities.MeetingStatus) *entities.Meeting {
	id := uuid.New()
	start := testNow.Add(-2 * time.Hour)
	end := start.Add(30 * time.Minute)
	parent := "parent-task"
	return &entities.Meeting{
		ID:              id,
		Title:           "Vendor review",
		Status:          status,
		ScheduledStart:  &start,
		ScheduledEnd:    &end,
		DurationMinutes: 30,
		Scope:           entities.Scope{Type: entities.ScopeTypeSpace, ID: uuid.New()},
		OwnerID:         uuid.New(),
		ParentTaskID:    &parent,
		ExpectedOutcomes: []entities.ExpectedOutcome{
			{ID: uuid.New(), MeetingID: id, Label: "Pick vendor", Type: entities.OutcomeTypeDecision, Position: 0},
			{ID: uuid.New(), MeetingID: id, Label: "Review pricing", Type: entities.OutcomeTypeInformation, Position: 1},
		},
	}
}

func TestSeedProjectsOutcomes(t *testing.T) {
	m := vendorMeeting(entities.MeetingStatusScheduled)
	seed := Seed(m)

	if len(seed.OutcomeResolutions) != 2 {
		t.Fatalf("expected 2 resolutions, got %d", len(seed.OutcomeResolutions))
	}
	for i, r := range seed.OutcomeResolutions {
		if r.OutcomeID != m.ExpectedOutcomes[i].ID || r.Status != entities.ResolutionNotAddressed {
			t.Fatalf("unexpected resolution %d: %+v", i, r)
		}
	}
	if len(seed.Decisions) != 1 {
		t.Fatalf("expected exactly 1 draft decision, got %d", len(seed.Decisions))
	}
	d := seed.Decisions[0]
	if d.OutcomeID == nil || *d.OutcomeID != m.ExpectedOutcomes[0].ID {
		t.Fatalf("draft decision not linked to the decision outcome")
	}
	if d.Text != "" || !d.Confirmed || !d.PropagateToContext {
		t.Fatalf("unexpected draft decision defaults %+v", d)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	m := vendorMeeting(entities.MeetingStatusDraft)
	if !reflect.DeepEqual(Seed(m), Seed(m)) {
		t.Fatalf("seeding twice must yield identical seeds")
	}
	if SeededDecisionID(m.ExpectedOutcomes[0].ID) == SeededDecisionID(m.ExpectedOutcomes[1].ID) {
		t.Fatalf("seeded ids must differ per outcome")
	}
}

func TestSeedWithoutOutcomes(t *testing.T) {
	seed := Seed(&entities.Meeting{ID: uuid.New()})
	if seed.OutcomeResolutions == nil || seed.Decisions == nil {
		t.Fatalf("empty seed lists must not be nil")
	}
}

func TestToCaptureDataCopiesSeed(t *testing.T) {
	seed := Seed(vendorMeeting(entities.MeetingStatusDraft))
	data := ToCaptureData(seed, testNow)
	data.Decisions[0].Text = "edited"

	if seed.Decisions[0].Text != "" {
		t.Fatalf("editing the document must not change the seed")
	}
	if data.Version != entities.CurrentCaptureDataVersion || !data.CaptureStartedAt.Equal(testNow) || data.CaptureCompletedAt != nil {
		t.Fatalf("unexpected document header %+v", data)
	}
}

func TestEligibility(t *testing.T) {
	tests := []struct {
		status   entities.MeetingStatus
		can      bool
		awaiting bool
		reason   string
	}{
		{entities.MeetingStatusDraft, true, false, ""},
		{entities.MeetingStatusScheduled, true, true, ""},
		{entities.MeetingStatusCaptured, false, false, "already captured"},
		{entities.MeetingStatusCancelled, false, false, "meeting was cancelled"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			e := Eligibility(vendorMeeting(tt.status), testNow)
			if e.CanCapture != tt.can || e.AwaitingCapture != tt.awaiting || e.Reason != tt.reason {
				t.Fatalf("unexpected eligibility %+v", e)
			}
		})
	}
}

func TestRenderNotes(t *testing.T) {
	m := vendorMeeting(entities.MeetingStatusScheduled)
	summary := "Went with Acme."
	due := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	data := &entities.CaptureData{
		Summary: &summary,
		OutcomeResolutions: []entities.OutcomeResolution{
			{OutcomeID: m.ExpectedOutcomes[0].ID, Label: "Pick vendor", Status: entities.ResolutionResolved},
		},
		Decisions: []entities.Decision{
			{ID: uuid.New(), Text: "Acme", Confirmed: true},
			{ID: uuid.New(), Text: "Unconfirmed idea"},
		},
		ActionItems: []entities.ActionItem{{ID: uuid.New(), Text: "Send contract", DueDate: &due}},
	}

	md := RenderNotes(m, data, testNow)
	for _, want := range []string{"# Vendor review", "## Summary", "Went with Acme.", "- [x] Pick vendor (Resolved)", "- Acme", "- [ ] Send contract (due 2026-03-09)"} {
		if !strings.Contains(md, want) {
			t.Errorf("notes missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "Unconfirmed idea") {
		t.Errorf("unconfirmed decisions must not be rendered")
	}
}
