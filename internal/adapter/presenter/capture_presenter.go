package presenter

import (
	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-capture/internal/adapter/dto/capture"
	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
)

// ToSeedResponse converts a CaptureSeed to SeedResponse DTO
func ToSeedResponse(seed *entities.CaptureSeed) *capture.SeedResponse {
	return &capture.SeedResponse{
		MeetingID:          seed.MeetingID.String(),
		OutcomeResolutions: toResolutionResponses(seed.OutcomeResolutions),
		Decisions:          toDecisionResponses(seed.Decisions),
	}
}

// ToEligibilityResponse converts an Eligibility to EligibilityResponse DTO
func ToEligibilityResponse(meetingID uuid.UUID, e *entities.Eligibility) *capture.EligibilityResponse {
	return &capture.EligibilityResponse{
		MeetingID:       meetingID.String(),
		CanCapture:      e.CanCapture,
		AwaitingCapture: e.AwaitingCapture,
		Reason:          e.Reason,
	}
}

// ToCaptureResultResponse converts a CaptureResult to CaptureResultResponse DTO
func ToCaptureResultResponse(r *entities.CaptureResult) *capture.CaptureResultResponse {
	response := &capture.CaptureResultResponse{
		MeetingID:      r.MeetingID.String(),
		Status:         string(entities.MeetingStatusCaptured),
		Page:           toPageResponse(r.Page),
		Subtasks:       toSubtaskResponses(r.Subtasks),
		DecisionsCount: r.DecisionsCount,
		Errors:         make([]capture.ProducerErrorResponse, 0, len(r.Errors)),
	}
	for _, e := range r.Errors {
		response.Errors = append(response.Errors, capture.ProducerErrorResponse{
			Producer: string(e.Producer),
			ItemRef:  e.ItemRef,
			Message:  e.Message,
		})
	}
	return response
}

// ToCaptureRecordResponse converts a CaptureRecord to CaptureRecordResponse DTO
func ToCaptureRecordResponse(rec *entities.CaptureRecord) *capture.CaptureRecordResponse {
	data := rec.Data.Data()
	artifacts := rec.Artifacts.Data()

	response := &capture.CaptureRecordResponse{
		ID:                 rec.ID.String(),
		MeetingID:          rec.MeetingID.String(),
		Version:            rec.Version,
		Summary:            data.Summary,
		OutcomeResolutions: toResolutionResponses(data.OutcomeResolutions),
		Decisions:          toDecisionResponses(data.Decisions),
		ActionItems:        make([]capture.ActionItemResponse, 0, len(data.ActionItems)),
		CaptureStartedAt:   data.CaptureStartedAt,
		CaptureCompletedAt: data.CaptureCompletedAt,
		Page:               toPageResponse(artifacts.Page),
		Subtasks:           toSubtaskResponses(artifacts.Subtasks),
		DecisionsCount:     artifacts.DecisionsCount,
		CapturedBy:         uuidPtrString(rec.CapturedBy),
		CapturedAt:         rec.CapturedAt,
	}
	for _, a := range data.ActionItems {
		response.ActionItems = append(response.ActionItems, capture.ActionItemResponse{
			ID:               a.ID.String(),
			Text:             a.Text,
			OwnerID:          uuidPtrString(a.OwnerID),
			DueDate:          a.DueDate,
			ConvertToSubtask: a.ConvertToSubtask,
		})
	}
	return response
}

func toResolutionResponses(rs []entities.OutcomeResolution) []capture.OutcomeResolutionResponse {
	out := make([]capture.OutcomeResolutionResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, capture.OutcomeResolutionResponse{
			OutcomeID: r.OutcomeID.String(),
			Label:     r.Label,
			Status:    string(r.Status),
		})
	}
	return out
}

func toDecisionResponses(ds []entities.Decision) []capture.DecisionResponse {
	out := make([]capture.DecisionResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, capture.DecisionResponse{
			ID:                 d.ID.String(),
			Text:               d.Text,
			Rationale:          d.Rationale,
			OwnerID:            uuidPtrString(d.OwnerID),
			OutcomeID:          uuidPtrString(d.OutcomeID),
			PropagateToContext: d.PropagateToContext,
			Confirmed:          d.Confirmed,
		})
	}
	return out
}

func toPageResponse(p *entities.PageRef) *capture.PageResponse {
	if p == nil {
		return nil
	}
	return &capture.PageResponse{Key: p.Key, URL: p.URL}
}

func toSubtaskResponses(refs []entities.SubtaskRef) []capture.SubtaskResponse {
	out := make([]capture.SubtaskResponse, 0, len(refs))
	for _, r := range refs {
		out = append(out, capture.SubtaskResponse{
			ActionItemID: r.ActionItemID.String(),
			TaskID:       r.TaskID,
			URL:          r.URL,
		})
	}
	return out
}

func uuidPtrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
