package presenter

import (
	"time"

	"github.com/johnquangdev/meeting-capture/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	meetingUsecase "github.com/johnquangdev/meeting-capture/internal/usecase/meeting"
	schedulingUsecase "github.com/johnquangdev/meeting-capture/internal/usecase/scheduling"
)

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting, now time.Time) *meeting.MeetingResponse {
	if m == nil {
		return nil
	}

	response := &meeting.MeetingResponse{
		ID:               m.ID.String(),
		Title:            m.Title,
		Purpose:          m.Purpose,
		Status:           string(m.Status),
		AwaitingCapture:  m.IsAwaitingCapture(now),
		ScheduledStart:   m.ScheduledStart,
		ScheduledEnd:     m.ScheduledEnd,
		DurationMinutes:  m.DurationMinutes,
		Scope:            meeting.ScopeResponse{Type: string(m.Scope.Type), ID: m.Scope.ID.String()},
		OwnerID:          m.OwnerID.String(),
		ParentTaskID:     m.ParentTaskID,
		OwnerTaskID:      m.OwnerTaskID,
		CalendarEventID:  m.CalendarEventID,
		JoinURL:          m.JoinURL,
		NotesPageRef:     m.NotesPageRef,
		CapturedAt:       m.CapturedAt,
		CancelledAt:      m.CancelledAt,
		Attendees:        make([]meeting.AttendeeResponse, 0, len(m.Attendees)),
		ExpectedOutcomes: make([]meeting.OutcomeResponse, 0, len(m.ExpectedOutcomes)),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}

	for _, a := range m.Attendees {
		response.Attendees = append(response.Attendees, meeting.AttendeeResponse{
			ID:           a.ID.String(),
			Email:        a.Email,
			DisplayName:  a.DisplayName,
			UserID:       uuidPtrString(a.UserID),
			AttendeeType: string(a.AttendeeType),
			IsOwner:      a.IsOwner,
		})
	}
	for _, o := range m.ExpectedOutcomes {
		response.ExpectedOutcomes = append(response.ExpectedOutcomes, meeting.OutcomeResponse{
			ID:         o.ID.String(),
			Label:      o.Label,
			Type:       string(o.Type),
			Provenance: string(o.Provenance),
			Position:   o.Position,
		})
	}

	return response
}

// ToMeetingListResponse converts meetings to ListMeetingsResponse DTO
func ToMeetingListResponse(ms []*entities.Meeting, now time.Time) *meeting.ListMeetingsResponse {
	response := &meeting.ListMeetingsResponse{
		Meetings: make([]*meeting.MeetingResponse, 0, len(ms)),
		Total:    len(ms),
	}
	for _, m := range ms {
		response.Meetings = append(response.Meetings, ToMeetingResponse(m, now))
	}
	return response
}

// ToScheduleResponse converts a ScheduleResult to ScheduleResponse DTO
func ToScheduleResponse(r *schedulingUsecase.ScheduleResult, now time.Time) *meeting.ScheduleResponse {
	warnings := r.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return &meeting.ScheduleResponse{
		Meeting:              ToMeetingResponse(r.Meeting, now),
		CalendarEventCreated: r.CalendarEventCreated,
		CalendarEventID:      r.CalendarEventID,
		JoinURL:              r.JoinURL,
		OwnerTaskCreated:     r.OwnerTaskCreated,
		OwnerTaskID:          r.OwnerTaskID,
		Warnings:             warnings,
	}
}

// ToSuggestionsResponse converts SuggestOutput to SuggestionsResponse DTO
func ToSuggestionsResponse(out *meetingUsecase.SuggestOutput) *meeting.SuggestionsResponse {
	response := &meeting.SuggestionsResponse{
		Titles:   out.Titles,
		Outcomes: make([]meeting.SuggestedOutcomeResponse, 0, len(out.Outcomes)),
		Warning:  out.Warning,
	}
	if response.Titles == nil {
		response.Titles = []string{}
	}
	for _, o := range out.Outcomes {
		response.Outcomes = append(response.Outcomes, meeting.SuggestedOutcomeResponse{Label: o.Label, Type: string(o.Type)})
	}
	return response
}
