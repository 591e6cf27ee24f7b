package suggestions

import (
	"context"
	"strings"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	"github.com/johnquangdev/meeting-capture/internal/domain/gateways"
	"github.com/johnquangdev/meeting-capture/pkg/ai"
)

// GroqSource adapts the Groq client to the suggestion port
type GroqSource struct {
	client *ai.GroqClient
}

var _ gateways.SuggestionSource = (*GroqSource)(nil)

// NewGroqSource creates a new Groq-backed suggestion source
func NewGroqSource(client *ai.GroqClient) *GroqSource {
	return &GroqSource{client: client}
}

// Suggest asks the model and drops malformed outcomes
func (s *GroqSource) Suggest(ctx context.Context, purpose string) (*gateways.Suggestions, error) {
	raw, err := s.client.SuggestMeeting(ctx, purpose)
	if err != nil {
		return nil, err
	}

	out := &gateways.Suggestions{Titles: []string{}, Outcomes: []gateways.SuggestedOutcome{}}
	for _, t := range raw.Titles {
		if t = strings.TrimSpace(t); t != "" {
			out.Titles = append(out.Titles, t)
		}
	}
	for _, o := range raw.Outcomes {
		label := strings.TrimSpace(o.Label)
		typ := entities.OutcomeType(o.Type)
		if label == "" || !validOutcomeType(typ) {
			continue
		}
		out.Outcomes = append(out.Outcomes, gateways.SuggestedOutcome{Label: label, Type: typ})
	}
	return out, nil
}

func validOutcomeType(t entities.OutcomeType) bool {
	switch t {
	case entities.OutcomeTypeDecision, entities.OutcomeTypeActionItem, entities.OutcomeTypeInformation, entities.OutcomeTypeCustom:
		return true
	}
	return false
}

// StaticSource derives suggestions from the purpose text; used in mock mode
type StaticSource struct{}

var _ gateways.SuggestionSource = StaticSource{}

// Suggest (mock) returns the purpose as a title and one decision outcome
func (StaticSource) Suggest(ctx context.Context, purpose string) (*gateways.Suggestions, error) {
	purpose = strings.TrimSpace(purpose)
	out := &gateways.Suggestions{Titles: []string{}, Outcomes: []gateways.SuggestedOutcome{}}
	if purpose == "" {
		return out, nil
	}
	title := purpose
	if len(title) > 60 {
		title = strings.TrimSpace(title[:60])
	}
	out.Titles = append(out.Titles, title)
	out.Outcomes = append(out.Outcomes, gateways.SuggestedOutcome{
		Label: "Decide: " + title,
		Type:  entities.OutcomeTypeDecision,
	})
	return out, nil
}
