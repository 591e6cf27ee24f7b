package capture

import (
	"time"

	"github.com/google/uuid"
	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
)

// seededDecisionNamespace scopes the name-based ids of seeded decisions
var seededDecisionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("meeting-capture/seeded-decision"))

// SeededDecisionID derives the draft decision id for a decision-typed outcome.
// The same outcome always yields the same id, so reloading a session never adds rows.
func SeededDecisionID(outcomeID uuid.UUID) uuid.UUID {
	return uuid.NewSHA1(seededDecisionNamespace, outcomeID[:])
}

// Seed projects expected outcomes into a capture seed: one not_addressed resolution per
// outcome, plus one confirmed empty draft decision per decision-typed outcome.
func Seed(meeting *entities.Meeting) *entities.CaptureSeed {
	seed := &entities.CaptureSeed{
		MeetingID:          meeting.ID,
		OutcomeResolutions: make([]entities.OutcomeResolution, 0, len(meeting.ExpectedOutcomes)),
		Decisions:          []entities.Decision{},
	}

	for i := range meeting.ExpectedOutcomes {
		outcome := &meeting.ExpectedOutcomes[i]
		seed.OutcomeResolutions = append(seed.OutcomeResolutions, entities.OutcomeResolution{
			OutcomeID: outcome.ID,
			Label:     outcome.Label,
			Status:    entities.ResolutionNotAddressed,
		})

		if !outcome.IsDecision() {
			continue
		}
		outcomeID := outcome.ID
		seed.Decisions = append(seed.Decisions, entities.Decision{
			ID:                 SeededDecisionID(outcomeID),
			Text:               "",
			OutcomeID:          &outcomeID,
			PropagateToContext: true,
			Confirmed:          true,
		})
	}
	return seed
}

// ToCaptureData starts a capture document from a seed
func ToCaptureData(seed *entities.CaptureSeed, startedAt time.Time) entities.CaptureData {
	data := entities.CaptureData{
		Version:            entities.CurrentCaptureDataVersion,
		OutcomeResolutions: append([]entities.OutcomeResolution{}, seed.OutcomeResolutions...),
		Decisions:          append([]entities.Decision{}, seed.Decisions...),
		ActionItems:        []entities.ActionItem{},
		CaptureStartedAt:   startedAt,
	}
	return data
}
