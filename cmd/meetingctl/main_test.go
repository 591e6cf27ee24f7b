package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	"github.com/johnquangdev/meeting-capture/internal/domain/gateways"
	captureUsecase "github.com/johnquangdev/meeting-capture/internal/usecase/capture"
	"github.com/johnquangdev/meeting-capture/pkg/config"
)

type fakeCaptureService struct {
	captureUsecase.Service
	meetings    []*entities.Meeting
	eligibility *entities.Eligibility
	result      *entities.CaptureResult
	scope       entities.Scope
	closed      uuid.UUID
}

func (f *fakeCaptureService) ListAwaitingCapture(ctx context.Context, scope entities.Scope) ([]*entities.Meeting, error) {
	f.scope = scope
	return f.meetings, nil
}

func (f *fakeCaptureService) CheckEligibility(ctx context.Context, id uuid.UUID) (*entities.Eligibility, error) {
	return f.eligibility, nil
}

func (f *fakeCaptureService) QuickClose(ctx context.Context, id uuid.UUID, capturedBy *uuid.UUID) (*entities.CaptureResult, error) {
	f.closed = id
	return f.result, nil
}

type fakeDecisionReader struct {
	entries []gateways.ContextEntry
	scope   entities.Scope
}

func (f *fakeDecisionReader) ListDecisions(ctx context.Context, scope entities.Scope) ([]gateways.ContextEntry, error) {
	f.scope = scope
	return f.entries, nil
}

func testContext(svc captureUsecase.Service) *commandContext {
	return &commandContext{
		loadConfig: func() (*config.Config, error) { return &config.Config{}, nil },
		openDB:     func(*config.Config) (*gorm.DB, error) { return nil, nil },
		newCapture: func(context.Context, *config.Config, *gorm.DB) (captureUsecase.Service, error) {
			return svc, nil
		},
	}
}

func run(t *testing.T, ctx *commandContext, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(ctx)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAwaitingCommand(t *testing.T) {
	end := time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)
	svc := &fakeCaptureService{meetings: []*entities.Meeting{
		{ID: uuid.New(), Title: "Vendor review", ScheduledEnd: &end},
	}}
	scopeID := uuid.New()

	out, err := run(t, testContext(svc), "awaiting", "Space", scopeID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.scope.Type != entities.ScopeTypeSpace || svc.scope.ID != scopeID {
		t.Fatalf("unexpected scope %v", svc.scope)
	}
	if !strings.Contains(out, "Vendor review") || !strings.Contains(out, "2026-03-02T11:00:00Z") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestAwaitingCommandEmpty(t *testing.T) {
	out, err := run(t, testContext(&fakeCaptureService{}), "awaiting", "area", uuid.NewString())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "No meetings awaiting capture") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestAwaitingCommandRejectsScopeType(t *testing.T) {
	_, err := run(t, testContext(&fakeCaptureService{}), "awaiting", "team", uuid.NewString())
	if err == nil || !strings.Contains(err.Error(), "space or area") {
		t.Fatalf("expected scope type error, got %v", err)
	}
}

func TestEligibilityCommand(t *testing.T) {
	svc := &fakeCaptureService{eligibility: &entities.Eligibility{CanCapture: false, Reason: "already captured"}}
	out, err := run(t, testContext(svc), "eligibility", uuid.NewString())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "already captured") || !strings.Contains(out, "no") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestQuickCloseCommand(t *testing.T) {
	id := uuid.New()
	svc := &fakeCaptureService{result: &entities.CaptureResult{
		MeetingID: id,
		Page:      &entities.PageRef{Key: "k", URL: "https://notes.example.com/k.md"},
		Errors:    []entities.ProducerError{{Producer: entities.ProducerNotes, Message: "timeout"}},
	}}

	out, err := run(t, testContext(svc), "quick-close", id.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.closed != id {
		t.Fatalf("expected quick close of %s", id)
	}
	for _, want := range []string{"captured", "https://notes.example.com/k.md", "timeout"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInvalidMeetingID(t *testing.T) {
	_, err := run(t, testContext(&fakeCaptureService{}), "quick-close", "nope")
	if err == nil {
		t.Fatal("expected error for invalid meeting id")
	}
}

func TestConfigErrorIsReturned(t *testing.T) {
	ctx := testContext(&fakeCaptureService{})
	ctx.loadConfig = func() (*config.Config, error) { return nil, errors.New("JWT_ACCESS_SECRET is required") }
	_, err := run(t, ctx, "eligibility", uuid.NewString())
	if err == nil || !strings.Contains(err.Error(), "JWT_ACCESS_SECRET") {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestParseSteps(t *testing.T) {
	tests := []struct {
		args    []string
		want    int
		wantErr bool
	}{
		{nil, 1, false},
		{[]string{"3"}, 3, false},
		{[]string{"0"}, 0, true},
		{[]string{"x"}, 0, true},
	}
	for _, tt := range tests {
		got, err := parseSteps(tt.args)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseSteps(%v) = %d, %v", tt.args, got, err)
		}
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"only"}})
	if !strings.Contains(out, "only") || !strings.Contains(out, "╭") {
		t.Fatalf("unexpected table:\n%s", out)
	}
	if renderTable(nil, nil) != "" {
		t.Fatal("expected empty output without headers")
	}
}

func TestTokenCommandMintsVerifiableToken(t *testing.T) {
	ctx := testContext(&fakeCaptureService{})
	ctx.loadConfig = func() (*config.Config, error) {
		cfg := &config.Config{}
		cfg.JWT.AccessSecret = "test-secret"
		return cfg, nil
	}
	userID := uuid.New()

	out, err := run(t, ctx, "token", userID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, userID.String()) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestTokenCommandRefusesProduction(t *testing.T) {
	ctx := testContext(&fakeCaptureService{})
	ctx.loadConfig = func() (*config.Config, error) {
		cfg := &config.Config{}
		cfg.Server.Environment = "production"
		return cfg, nil
	}
	if _, err := run(t, ctx, "token"); err == nil {
		t.Fatal("expected refusal in production")
	}
}

func TestDecisionsCommand(t *testing.T) {
	reader := &fakeDecisionReader{entries: []gateways.ContextEntry{{
		MeetingTitle: "Vendor review",
		Decision:     entities.Decision{Text: "Go with Acme"},
		RecordedAt:   time.Date(2026, 3, 2, 11, 5, 0, 0, time.UTC),
	}}}
	ctx := testContext(&fakeCaptureService{})
	ctx.newDecisions = func(context.Context, *config.Config) (gateways.ContextReader, error) {
		return reader, nil
	}
	scopeID := uuid.New()

	out, err := run(t, ctx, "decisions", "area", scopeID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reader.scope.Type != entities.ScopeTypeArea || reader.scope.ID != scopeID {
		t.Fatalf("unexpected scope %v", reader.scope)
	}
	if !strings.Contains(out, "Go with Acme") || !strings.Contains(out, "2026-03-02T11:05:00Z") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	reader.entries = nil
	out, err = run(t, ctx, "decisions", "space", scopeID.String())
	if err != nil || !strings.Contains(out, "No decisions recorded") {
		t.Fatalf("unexpected result %q %v", out, err)
	}
}
