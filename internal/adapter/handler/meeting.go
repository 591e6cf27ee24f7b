package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-capture/errors"
	"github.com/johnquangdev/meeting-capture/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-capture/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	meetingUsecase "github.com/johnquangdev/meeting-capture/internal/usecase/meeting"
	schedulingUsecase "github.com/johnquangdev/meeting-capture/internal/usecase/scheduling"
)

// Meeting handles meeting store and scheduling HTTP requests
type Meeting struct {
	meetingService    meetingUsecase.Service
	schedulingService schedulingUsecase.Service
	logger            *zap.Logger
	now               func() time.Time
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService meetingUsecase.Service, schedulingService schedulingUsecase.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		meetingService:    meetingService,
		schedulingService: schedulingService,
		logger:            logger,
		now:               time.Now,
	}
}

// CreateMeeting handles POST /meetings
// @Summary      Create a meeting
// @Description  Creates a draft meeting with its expected outcomes and attendees. Never schedules.
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      meeting.CreateMeetingRequest  true  "Meeting creation request"
// @Success      201      {object}  common.SuccessResponse{data=meeting.MeetingResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      401      {object}  common.ErrorResponse
// @Router       /meetings [post]
func (h *Meeting) CreateMeeting(c echo.Context) error {
	var req meeting.CreateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	ownerID, ok := currentUserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	input := meetingUsecase.CreateMeetingInput{
		Title:            req.Title,
		Purpose:          req.Purpose,
		DurationMinutes:  req.DurationMinutes,
		Scope:            entities.Scope{Type: entities.ScopeType(req.Scope.Type), ID: uuid.MustParse(req.Scope.ID)},
		OwnerID:          ownerID,
		ParentTaskID:     req.ParentTaskID,
		ExpectedOutcomes: toOutcomeInputs(req.ExpectedOutcomes),
		ScheduledStart:   req.ScheduledStart,
		ScheduledEnd:     req.ScheduledEnd,
	}
	for _, a := range req.Attendees {
		input.Attendees = append(input.Attendees, meetingUsecase.AttendeeInput{
			Email:        a.Email,
			DisplayName:  a.DisplayName,
			UserID:       parseOptionalUUID(a.UserID),
			AttendeeType: entities.AttendeeType(a.AttendeeType),
			IsOwner:      a.IsOwner,
		})
	}

	m, err := h.meetingService.CreateMeeting(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, mapUsecaseError(err, uuid.Nil, string(entities.MeetingStatusDraft)))
	}

	return HandleSuccessWithStatus(h.logger, c, http.StatusCreated, presenter.ToMeetingResponse(m, h.now()))
}

// GetMeeting handles GET /meetings/:id
// @Summary      Get a meeting
// @Description  Returns a meeting with attendees and expected outcomes
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  common.SuccessResponse{data=meeting.MeetingResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Router       /meetings/{id} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.meetingService.GetMeeting(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, mapUsecaseError(err, id, ""))
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m, h.now()))
}

// ReplaceOutcomes handles PUT /meetings/:id/outcomes
// @Summary      Replace expected outcomes
// @Description  Replaces the expected outcomes of a draft meeting, keeping the given order
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "Meeting ID"
// @Param        request  body      meeting.ReplaceOutcomesRequest  true  "Outcomes"
// @Success      200      {object}  common.SuccessResponse{data=meeting.MeetingResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Failure      412      {object}  common.ErrorResponse  "Meeting is no longer a draft"
// @Router       /meetings/{id}/outcomes [put]
func (h *Meeting) ReplaceOutcomes(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meeting.ReplaceOutcomesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.meetingService.ReplaceOutcomes(c.Request().Context(), id, toOutcomeInputs(req.ExpectedOutcomes))
	if err != nil {
		return HandleError(h.logger, c, mapUsecaseError(err, id, string(entities.MeetingStatusDraft)))
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m, h.now()))
}

// CancelMeeting handles POST /meetings/:id/cancel
// @Summary      Cancel a meeting
// @Description  Cancels a draft or scheduled meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  common.SuccessResponse{data=meeting.MeetingResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Failure      412  {object}  common.ErrorResponse  "Meeting is captured or cancelled"
// @Router       /meetings/{id}/cancel [post]
func (h *Meeting) CancelMeeting(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.meetingService.CancelMeeting(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, mapUsecaseError(err, id, string(entities.MeetingStatusCancelled)))
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m, h.now()))
}

// ScheduleMeeting handles POST /meetings/:id/schedule
// @Summary      Schedule a meeting
// @Description  Moves a draft meeting with a schedule window to scheduled. Calendar and owner task
// @Description  creation are best-effort and reported as warnings.
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true   "Meeting ID"
// @Param        request  body      meeting.ScheduleMeetingRequest  false  "Schedule options"
// @Success      200      {object}  common.SuccessResponse{data=meeting.ScheduleResponse}
// @Failure      404      {object}  common.ErrorResponse
// @Failure      412      {object}  common.ErrorResponse  "Not a draft, or no schedule window"
// @Router       /meetings/{id}/schedule [post]
func (h *Meeting) ScheduleMeeting(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meeting.ScheduleMeetingRequest
	if c.Request().ContentLength > 0 {
		if err := bindAndValidate(c, &req); err != nil {
			return HandleError(h.logger, c, err)
		}
	}

	result, err := h.schedulingService.Schedule(c.Request().Context(), id, schedulingUsecase.ScheduleOptions{
		OnlineMeeting: req.OnlineMeeting,
	})
	if err != nil {
		return HandleError(h.logger, c, mapUsecaseError(err, id, string(entities.MeetingStatusScheduled)))
	}

	return HandleSuccess(h.logger, c, presenter.ToScheduleResponse(result, h.now()))
}

// SuggestMeeting handles POST /meetings/suggestions
// @Summary      Suggest titles and outcomes
// @Description  Advisory suggestions for a meeting purpose. An unavailable source yields empty lists and a warning.
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      meeting.SuggestMeetingRequest  true  "Purpose"
// @Success      200      {object}  common.SuccessResponse{data=meeting.SuggestionsResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Router       /meetings/suggestions [post]
func (h *Meeting) SuggestMeeting(c echo.Context) error {
	var req meeting.SuggestMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	out := h.meetingService.SuggestMeeting(c.Request().Context(), req.Purpose)
	return HandleSuccess(h.logger, c, presenter.ToSuggestionsResponse(out))
}

func toOutcomeInputs(reqs []meeting.OutcomeRequest) []meetingUsecase.OutcomeInput {
	inputs := make([]meetingUsecase.OutcomeInput, 0, len(reqs))
	for _, o := range reqs {
		inputs = append(inputs, meetingUsecase.OutcomeInput{
			Label:      o.Label,
			Type:       entities.OutcomeType(o.Type),
			Provenance: entities.OutcomeProvenance(o.Provenance),
		})
	}
	return inputs
}
