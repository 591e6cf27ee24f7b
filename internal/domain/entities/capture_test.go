package entities

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestDecisionDefaultsPropagateToContext(t *testing.T) {
	var d Decision
	if err := json.Unmarshal([]byte(`{"id":"`+uuid.NewString()+`","text":"Go with A","confirmed":true}`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !d.PropagateToContext {
		t.Fatalf("propagate_to_context should default to true")
	}

	if err := json.Unmarshal([]byte(`{"id":"`+uuid.NewString()+`","propagate_to_context":false}`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.PropagateToContext {
		t.Fatalf("explicit false must be kept")
	}
}

func TestPropagatableDecisionsFiltersEmptyAndUnconfirmed(t *testing.T) {
	data := CaptureData{
		Decisions: []Decision{
			{ID: uuid.New(), Text: "Pick vendor A", Confirmed: true, PropagateToContext: true},
			{ID: uuid.New(), Text: "   ", Confirmed: true, PropagateToContext: true},
			{ID: uuid.New(), Text: "Maybe later", Confirmed: false, PropagateToContext: true},
			{ID: uuid.New(), Text: "Keep local", Confirmed: true, PropagateToContext: false},
		},
	}

	got := data.PropagatableDecisions()
	if len(got) != 1 || got[0].Text != "Pick vendor A" {
		t.Fatalf("expected only the confirmed decision with text, got %+v", got)
	}
}

func TestHasNotableContent(t *testing.T) {
	empty := CaptureData{}
	if empty.HasNotableContent() {
		t.Fatalf("empty capture has nothing to write")
	}

	summary := "  "
	blank := CaptureData{Summary: &summary}
	if blank.HasNotableContent() {
		t.Fatalf("blank summary is not notable")
	}

	resolved := CaptureData{OutcomeResolutions: []OutcomeResolution{{Status: ResolutionPartiallyResolved}}}
	if !resolved.HasNotableContent() {
		t.Fatalf("partially resolved outcome is notable")
	}
}

func TestNormalize(t *testing.T) {
	now := time.Now()
	data := CaptureData{}
	data.Normalize(now)

	if data.Version != CurrentCaptureDataVersion {
		t.Fatalf("expected version %d, got %d", CurrentCaptureDataVersion, data.Version)
	}
	if data.CaptureCompletedAt == nil || !data.CaptureCompletedAt.Equal(now) {
		t.Fatalf("expected completion stamped at now")
	}
	if data.Decisions == nil || data.ActionItems == nil || data.OutcomeResolutions == nil {
		t.Fatalf("expected empty slices, not nil")
	}

	earlier := now.Add(-time.Hour)
	kept := CaptureData{CaptureCompletedAt: &earlier}
	kept.Normalize(now)
	if !kept.CaptureCompletedAt.Equal(earlier) {
		t.Fatalf("existing completion timestamp must be kept")
	}
}

func TestCheckConsistency(t *testing.T) {
	outcome := ExpectedOutcome{ID: uuid.New(), Label: "Pick vendor", Type: OutcomeTypeDecision}
	m := &Meeting{ExpectedOutcomes: []ExpectedOutcome{outcome}}
	stray := uuid.New()
	shared := uuid.New()

	tests := []struct {
		name string
		data CaptureData
		want error
	}{
		{"valid", CaptureData{
			OutcomeResolutions: []OutcomeResolution{{OutcomeID: outcome.ID}},
			Decisions:          []Decision{{ID: uuid.New(), OutcomeID: &outcome.ID}},
		}, nil},
		{"unknown resolution", CaptureData{
			OutcomeResolutions: []OutcomeResolution{{OutcomeID: stray}},
		}, ErrUnknownOutcome},
		{"unknown decision outcome", CaptureData{
			Decisions: []Decision{{ID: uuid.New(), OutcomeID: &stray}},
		}, ErrUnknownOutcome},
		{"duplicate resolution", CaptureData{
			OutcomeResolutions: []OutcomeResolution{{OutcomeID: outcome.ID}, {OutcomeID: outcome.ID}},
		}, ErrDuplicateItemID},
		{"shared item id", CaptureData{
			Decisions:   []Decision{{ID: shared}},
			ActionItems: []ActionItem{{ID: shared}},
		}, ErrDuplicateItemID},
		{"future version", CaptureData{Version: 2}, ErrUnsupportedVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.data.CheckConsistency(m); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestArtifactKeyIsStable(t *testing.T) {
	meetingID := uuid.New()
	a := ArtifactKey(meetingID, ArtifactTypeSubtask, "item-1")
	b := ArtifactKey(meetingID, ArtifactTypeSubtask, "item-1")
	c := ArtifactKey(meetingID, ArtifactTypeSubtask, "item-2")

	if a != b {
		t.Fatalf("same inputs must give the same key")
	}
	if a == c {
		t.Fatalf("different items must give different keys")
	}
	if len(a) != 32 {
		t.Fatalf("expected 32 hex chars, got %d", len(a))
	}
}
