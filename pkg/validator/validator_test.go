package validator

import (
	"testing"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
)

func TestValidateUsesJSONNames(t *testing.T) {
	cv := New()
	data := entities.CaptureData{
		OutcomeResolutions: []entities.OutcomeResolution{
			{OutcomeID: uuid.New(), Label: "Pick vendor", Status: "maybe"},
		},
	}

	err := cv.Validate(&data)
	if err == nil {
		t.Fatalf("expected invalid resolution status to fail")
	}
	fields := FieldErrors(err)
	if fields["CaptureData.outcome_resolutions[0].status"] != "oneof" {
		t.Fatalf("unexpected field errors %v", fields)
	}
}

func TestValidateAcceptsWellFormedCapture(t *testing.T) {
	cv := New()
	data := entities.CaptureData{
		Decisions:   []entities.Decision{{ID: uuid.New(), Text: "Go with A", Confirmed: true}},
		ActionItems: []entities.ActionItem{{ID: uuid.New(), Text: "Send contract", ConvertToSubtask: true}},
	}
	if err := cv.Validate(&data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
