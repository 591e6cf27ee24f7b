package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-capture/errors"
	"github.com/johnquangdev/meeting-capture/internal/adapter/dto/common"
	usecaseErrors "github.com/johnquangdev/meeting-capture/internal/usecase/errors"
	"github.com/johnquangdev/meeting-capture/pkg/validator"
)

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return HandleSuccessWithStatus(logger, c, http.StatusOK, data)
}

// HandleSuccessWithStatus writes a standardized success response with a custom status
func HandleSuccessWithStatus(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := common.SuccessResponse{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := common.ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
			Details: appErr.Details,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := common.ErrorResponse{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
		Info:    err.Error(),
	}

	return c.JSON(http.StatusInternalServerError, body)
}

// mapUsecaseError translates use-case errors into AppErrors
func mapUsecaseError(err error, meetingID uuid.UUID, target string) error {
	id := meetingID.String()
	switch {
	case stdErrors.Is(err, usecaseErrors.ErrValidation):
		return errors.ErrValidationFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound):
		return errors.ErrMeetingNotFound(id)
	case stdErrors.Is(err, usecaseErrors.ErrCaptureNotFound):
		return errors.ErrCaptureNotFound(id)
	case stdErrors.Is(err, usecaseErrors.ErrNotFound):
		return errors.ErrNotFound("resource")
	case stdErrors.Is(err, usecaseErrors.ErrInvalidTransition):
		return errors.ErrInvalidTransition(id, target, err)
	case stdErrors.Is(err, usecaseErrors.ErrPrecondition):
		return errors.ErrPreconditionFailed(err).WithDetail("meeting_id", id)
	case stdErrors.Is(err, usecaseErrors.ErrConflict):
		return errors.ErrCaptureConflict(id, err)
	}
	return errors.ErrInternal(err)
}

// bindAndValidate binds the request body and validates it
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		appErr := errors.ErrValidationFailed(err)
		for field, tag := range validator.FieldErrors(err) {
			appErr = appErr.WithDetail(field, tag)
		}
		return appErr
	}
	return nil
}

// parseMeetingID reads the :id path parameter
func parseMeetingID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument("invalid meeting id")
	}
	return id, nil
}

// currentUserID returns the authenticated user set by the auth middleware, if any
func currentUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get("user_id").(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// parseOptionalUUID parses an optional id that already passed `uuid` validation
func parseOptionalUUID(s *string) *uuid.UUID {
	if s == nil || *s == "" {
		return nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil
	}
	return &id
}
