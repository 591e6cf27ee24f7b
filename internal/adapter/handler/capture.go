package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-capture/errors"
	"github.com/johnquangdev/meeting-capture/internal/adapter/dto/capture"
	"github.com/johnquangdev/meeting-capture/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	captureUsecase "github.com/johnquangdev/meeting-capture/internal/usecase/capture"
)

// Capture handles capture session HTTP requests
type Capture struct {
	captureService captureUsecase.Service
	logger         *zap.Logger
	now            func() time.Time
}

// NewCaptureHandler creates a new capture handler
func NewCaptureHandler(captureService captureUsecase.Service, logger *zap.Logger) *Capture {
	return &Capture{
		captureService: captureService,
		logger:         logger,
		now:            time.Now,
	}
}

// GetEligibility handles GET /meetings/:id/capture/eligibility
// @Summary      Check capture eligibility
// @Description  Advisory check; the submit re-checks atomically
// @Tags         Capture
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  common.SuccessResponse{data=capture.EligibilityResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Router       /meetings/{id}/capture/eligibility [get]
func (h *Capture) GetEligibility(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	e, err := h.captureService.CheckEligibility(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, mapUsecaseError(err, id, ""))
	}

	return HandleSuccess(h.logger, c, presenter.ToEligibilityResponse(id, e))
}

// GetSeed handles GET /meetings/:id/capture/seed
// @Summary      Seed a capture session
// @Description  Projects the meeting's expected outcomes into resolutions and draft decisions. Deterministic.
// @Tags         Capture
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  common.SuccessResponse{data=capture.SeedResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Router       /meetings/{id}/capture/seed [get]
func (h *Capture) GetSeed(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	seed, err := h.captureService.SeedCapture(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, mapUsecaseError(err, id, ""))
	}

	return HandleSuccess(h.logger, c, presenter.ToSeedResponse(seed))
}

// SubmitCapture handles POST /meetings/:id/capture
// @Summary      Submit a capture
// @Description  Commits the capture and produces notes, subtasks and context entries. Producer failures
// @Description  are listed in errors and do not fail the request.
// @Tags         Capture
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "Meeting ID"
// @Param        request  body      capture.SubmitCaptureRequest  true  "Capture document"
// @Success      200      {object}  common.SuccessResponse{data=capture.CaptureResultResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Failure      409      {object}  common.ErrorResponse  "Already captured or cancelled"
// @Router       /meetings/{id}/capture [post]
func (h *Capture) SubmitCapture(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req capture.SubmitCaptureRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	input := captureUsecase.CaptureInput{
		MeetingID:  id,
		Data:       toCaptureData(&req, h.now()),
		CapturedBy: userIDPtr(c),
	}

	result, err := h.captureService.Capture(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, mapUsecaseError(err, id, string(entities.MeetingStatusCaptured)))
	}

	return HandleSuccess(h.logger, c, presenter.ToCaptureResultResponse(result))
}

// QuickClose handles POST /meetings/:id/capture/quick-close
// @Summary      Quick-close a meeting
// @Description  Captures the meeting with no decisions or action items and a fixed summary
// @Tags         Capture
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  common.SuccessResponse{data=capture.CaptureResultResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Failure      409  {object}  common.ErrorResponse  "Already captured or cancelled"
// @Router       /meetings/{id}/capture/quick-close [post]
func (h *Capture) QuickClose(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.captureService.QuickClose(c.Request().Context(), id, userIDPtr(c))
	if err != nil {
		return HandleError(h.logger, c, mapUsecaseError(err, id, string(entities.MeetingStatusCaptured)))
	}

	return HandleSuccess(h.logger, c, presenter.ToCaptureResultResponse(result))
}

// GetCapture handles GET /meetings/:id/capture
// @Summary      Get a capture record
// @Description  Returns the persisted capture document and its artifact pointers
// @Tags         Capture
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  common.SuccessResponse{data=capture.CaptureRecordResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Router       /meetings/{id}/capture [get]
func (h *Capture) GetCapture(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	record, err := h.captureService.GetCapture(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, mapUsecaseError(err, id, ""))
	}

	return HandleSuccess(h.logger, c, presenter.ToCaptureRecordResponse(record))
}

// ListAwaitingCapture handles GET /scopes/:type/:id/awaiting-capture
// @Summary      List meetings awaiting capture
// @Description  Scheduled meetings in the scope whose end has passed
// @Tags         Capture
// @Produce      json
// @Security     BearerAuth
// @Param        type  path      string  true  "Scope type (space or area)"
// @Param        id    path      string  true  "Scope ID"
// @Success      200   {object}  common.SuccessResponse{data=meeting.ListMeetingsResponse}
// @Failure      400   {object}  common.ErrorResponse
// @Router       /scopes/{type}/{id}/awaiting-capture [get]
func (h *Capture) ListAwaitingCapture(c echo.Context) error {
	scopeType := entities.ScopeType(c.Param("type"))
	if scopeType != entities.ScopeTypeSpace && scopeType != entities.ScopeTypeArea {
		return HandleError(h.logger, c, errors.ErrScopeInvalid(string(scopeType)))
	}
	scopeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid scope id"))
	}

	meetings, err := h.captureService.ListAwaitingCapture(c.Request().Context(), entities.Scope{Type: scopeType, ID: scopeID})
	if err != nil {
		return HandleError(h.logger, c, mapUsecaseError(err, uuid.Nil, ""))
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingListResponse(meetings, h.now()))
}

func userIDPtr(c echo.Context) *uuid.UUID {
	id, ok := currentUserID(c)
	if !ok {
		return nil
	}
	return &id
}

// toCaptureData converts a validated request into the capture document
func toCaptureData(req *capture.SubmitCaptureRequest, now time.Time) entities.CaptureData {
	data := entities.CaptureData{
		Version:            req.Version,
		Summary:            req.Summary,
		OutcomeResolutions: make([]entities.OutcomeResolution, 0, len(req.OutcomeResolutions)),
		Decisions:          make([]entities.Decision, 0, len(req.Decisions)),
		ActionItems:        make([]entities.ActionItem, 0, len(req.ActionItems)),
		CaptureStartedAt:   now,
		CaptureCompletedAt: req.CaptureCompletedAt,
	}
	if req.CaptureStartedAt != nil {
		data.CaptureStartedAt = *req.CaptureStartedAt
	}

	for _, r := range req.OutcomeResolutions {
		data.OutcomeResolutions = append(data.OutcomeResolutions, entities.OutcomeResolution{
			OutcomeID: uuid.MustParse(r.OutcomeID),
			Label:     r.Label,
			Status:    entities.ResolutionStatus(r.Status),
		})
	}
	for _, d := range req.Decisions {
		propagate := true
		if d.PropagateToContext != nil {
			propagate = *d.PropagateToContext
		}
		data.Decisions = append(data.Decisions, entities.Decision{
			ID:                 uuid.MustParse(d.ID),
			Text:               d.Text,
			Rationale:          d.Rationale,
			OwnerID:            parseOptionalUUID(d.OwnerID),
			OutcomeID:          parseOptionalUUID(d.OutcomeID),
			PropagateToContext: propagate,
			Confirmed:          d.Confirmed,
		})
	}
	for _, a := range req.ActionItems {
		data.ActionItems = append(data.ActionItems, entities.ActionItem{
			ID:               uuid.MustParse(a.ID),
			Text:             a.Text,
			OwnerID:          parseOptionalUUID(a.OwnerID),
			DueDate:          a.DueDate,
			ConvertToSubtask: a.ConvertToSubtask,
		})
	}
	return data
}
