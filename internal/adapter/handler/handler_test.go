package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-capture/errors"
	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	captureUsecase "github.com/johnquangdev/meeting-capture/internal/usecase/capture"
	usecaseErrors "github.com/johnquangdev/meeting-capture/internal/usecase/errors"
	meetingUsecase "github.com/johnquangdev/meeting-capture/internal/usecase/meeting"
	schedulingUsecase "github.com/johnquangdev/meeting-capture/internal/usecase/scheduling"
	"github.com/johnquangdev/meeting-capture/pkg/validator"
)

type mockMeetingService struct {
	meetingUsecase.Service
	created *meetingUsecase.CreateMeetingInput
	err     error
}

func (m *mockMeetingService) CreateMeeting(ctx context.Context, in meetingUsecase.CreateMeetingInput) (*entities.Meeting, error) {
	m.created = &in
	if m.err != nil {
		return nil, m.err
	}
	return &entities.Meeting{ID: uuid.New(), Title: in.Title, Status: entities.MeetingStatusDraft, Scope: in.Scope}, nil
}

type mockSchedulingService struct {
	err error
}

func (m *mockSchedulingService) Schedule(ctx context.Context, id uuid.UUID, opts schedulingUsecase.ScheduleOptions) (*schedulingUsecase.ScheduleResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &schedulingUsecase.ScheduleResult{
		Meeting:  &entities.Meeting{ID: id, Status: entities.MeetingStatusScheduled},
		Warnings: []string{"calendar: invalid credentials"},
	}, nil
}

type mockCaptureService struct {
	captureUsecase.Service
	input  *captureUsecase.CaptureInput
	result *entities.CaptureResult
	err    error
}

func (m *mockCaptureService) Capture(ctx context.Context, in captureUsecase.CaptureInput) (*entities.CaptureResult, error) {
	m.input = &in
	return m.result, m.err
}

func newTestEcho(meetingSvc meetingUsecase.Service, schedulingSvc schedulingUsecase.Service, captureSvc captureUsecase.Service, userID uuid.UUID) *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	auth := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("user_id", userID)
			return next(c)
		}
	}
	rt := NewRouter(nil, NewMeetingHandler(meetingSvc, schedulingSvc, nil), NewCaptureHandler(captureSvc, nil), auth)
	rt.Setup(e)
	return e
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Info    string            `json:"info"`
	Details map[string]string `json:"details"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return env
}

func TestCreateMeeting(t *testing.T) {
	owner := uuid.New()
	svc := &mockMeetingService{}
	e := newTestEcho(svc, &mockSchedulingService{}, &mockCaptureService{}, owner)

	body := fmt.Sprintf(`{"title":"Vendor review","duration_minutes":30,"scope":{"type":"space","id":"%s"},
		"expected_outcomes":[{"label":"Pick vendor","type":"decision"}],
		"attendees":[{"email":"a@example.com","is_owner":true,"user_id":"%s"}]}`, uuid.New(), owner)
	rec := doRequest(e, http.MethodPost, "/v1/meetings", body)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.created.OwnerID != owner || len(svc.created.ExpectedOutcomes) != 1 {
		t.Fatalf("unexpected input %+v", svc.created)
	}
	if *svc.created.Attendees[0].UserID != owner {
		t.Fatalf("attendee user id not parsed")
	}
}

func TestCreateMeetingValidationFailure(t *testing.T) {
	e := newTestEcho(&mockMeetingService{}, &mockSchedulingService{}, &mockCaptureService{}, uuid.New())

	rec := doRequest(e, http.MethodPost, "/v1/meetings", `{"title":"","duration_minutes":0,"scope":{"type":"team","id":"x"}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	env := decode(t, rec)
	if env.Code != int(errors.ErrorCode_VALIDATION) {
		t.Fatalf("expected validation code, got %d", env.Code)
	}
	if env.Details["CreateMeetingRequest.scope.type"] != "oneof" {
		t.Fatalf("expected field detail, got %v", env.Details)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   errors.ErrorCode
	}{
		{"not found", usecaseErrors.ErrMeetingNotFound, http.StatusNotFound, errors.ErrorCode_MEETING_NOT_FOUND},
		{"no schedule", usecaseErrors.ErrScheduleMissing, http.StatusPreconditionFailed, errors.ErrorCode_PRECONDITION_FAILED},
		{"not draft", fmt.Errorf("%w: status is scheduled", usecaseErrors.ErrInvalidTransition), http.StatusPreconditionFailed, errors.ErrorCode_INVALID_TRANSITION},
		{"internal", fmt.Errorf("connection refused"), http.StatusInternalServerError, errors.ErrorCode_INTERNAL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho(&mockMeetingService{}, &mockSchedulingService{err: tt.err}, &mockCaptureService{}, uuid.New())
			rec := doRequest(e, http.MethodPost, "/v1/meetings/"+uuid.NewString()+"/schedule", "")
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			if env := decode(t, rec); env.Code != int(tt.code) {
				t.Fatalf("expected code %d, got %d", tt.code, env.Code)
			}
		})
	}
}

func TestScheduleReturnsWarnings(t *testing.T) {
	e := newTestEcho(&mockMeetingService{}, &mockSchedulingService{}, &mockCaptureService{}, uuid.New())
	rec := doRequest(e, http.MethodPost, "/v1/meetings/"+uuid.NewString()+"/schedule", `{"online_meeting":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var data struct {
		CalendarEventCreated bool     `json:"calendar_event_created"`
		Warnings             []string `json:"warnings"`
	}
	json.Unmarshal(decode(t, rec).Data, &data)
	if data.CalendarEventCreated || len(data.Warnings) != 1 {
		t.Fatalf("unexpected schedule response %+v", data)
	}
}

func TestGetMeetingInvalidID(t *testing.T) {
	e := newTestEcho(&mockMeetingService{}, &mockSchedulingService{}, &mockCaptureService{}, uuid.New())
	rec := doRequest(e, http.MethodGet, "/v1/meetings/not-a-uuid", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSubmitCaptureWithWarnings(t *testing.T) {
	meetingID := uuid.New()
	user := uuid.New()
	itemID := uuid.New()
	svc := &mockCaptureService{result: &entities.CaptureResult{
		MeetingID: meetingID,
		Subtasks:  []entities.SubtaskRef{},
		Errors:    []entities.ProducerError{{Producer: entities.ProducerSubtasks, ItemRef: itemID.String(), Message: "boom"}},
	}}
	e := newTestEcho(&mockMeetingService{}, &mockSchedulingService{}, svc, user)

	body := fmt.Sprintf(`{"version":1,"outcome_resolutions":[],"decisions":[{"id":"%s","text":"Go","confirmed":true}],
		"action_items":[{"id":"%s","text":"Send","convert_to_subtask":true}]}`, uuid.New(), itemID)
	rec := doRequest(e, http.MethodPost, "/v1/meetings/"+meetingID.String()+"/capture", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("committed with warnings must be 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !svc.input.Data.Decisions[0].PropagateToContext {
		t.Fatalf("propagate_to_context must default to true")
	}
	if svc.input.CapturedBy == nil || *svc.input.CapturedBy != user {
		t.Fatalf("captured_by must be the caller")
	}
	var data struct {
		Status string `json:"status"`
		Errors []struct {
			Producer string `json:"producer"`
		} `json:"errors"`
	}
	json.Unmarshal(decode(t, rec).Data, &data)
	if data.Status != "captured" || len(data.Errors) != 1 || data.Errors[0].Producer != "subtasks" {
		t.Fatalf("unexpected capture response %+v", data)
	}
}

func TestSubmitCaptureConflict(t *testing.T) {
	svc := &mockCaptureService{err: fmt.Errorf("%w: another capture committed first", usecaseErrors.ErrCaptureConflict)}
	e := newTestEcho(&mockMeetingService{}, &mockSchedulingService{}, svc, uuid.New())

	rec := doRequest(e, http.MethodPost, "/v1/meetings/"+uuid.NewString()+"/capture", `{"decisions":[],"action_items":[],"outcome_resolutions":[]}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if env := decode(t, rec); env.Code != int(errors.ErrorCode_CAPTURE_CONFLICT) {
		t.Fatalf("unexpected code %d", env.Code)
	}
}

func TestListAwaitingCaptureRejectsScopeType(t *testing.T) {
	e := newTestEcho(&mockMeetingService{}, &mockSchedulingService{}, &mockCaptureService{}, uuid.New())
	rec := doRequest(e, http.MethodGet, "/v1/scopes/team/"+uuid.NewString()+"/awaiting-capture", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env := decode(t, rec); env.Code != int(errors.ErrorCode_SCOPE_INVALID) {
		t.Fatalf("unexpected code %d", env.Code)
	}
}

func TestHealth(t *testing.T) {
	e := newTestEcho(&mockMeetingService{}, &mockSchedulingService{}, &mockCaptureService{}, uuid.New())
	rec := doRequest(e, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
