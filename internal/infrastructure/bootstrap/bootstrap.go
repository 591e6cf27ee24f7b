// Package bootstrap selects real or in-memory adapters from configuration and builds
// the use-case services shared by the API server and meetingctl.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-capture/internal/adapter/repository"
	"github.com/johnquangdev/meeting-capture/internal/domain/gateways"
	"github.com/johnquangdev/meeting-capture/internal/domain/repositories"
	"github.com/johnquangdev/meeting-capture/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-capture/internal/infrastructure/external/calendar"
	"github.com/johnquangdev/meeting-capture/internal/infrastructure/external/livekit"
	"github.com/johnquangdev/meeting-capture/internal/infrastructure/external/suggestions"
	"github.com/johnquangdev/meeting-capture/internal/infrastructure/external/tasks"
	"github.com/johnquangdev/meeting-capture/internal/infrastructure/storage"
	captureUsecase "github.com/johnquangdev/meeting-capture/internal/usecase/capture"
	meetingUsecase "github.com/johnquangdev/meeting-capture/internal/usecase/meeting"
	schedulingUsecase "github.com/johnquangdev/meeting-capture/internal/usecase/scheduling"
	"github.com/johnquangdev/meeting-capture/pkg/ai"
	"github.com/johnquangdev/meeting-capture/pkg/config"
)

// TaskClient creates both owner tasks and follow-up subtasks
type TaskClient interface {
	gateways.TaskGateway
	gateways.SubtaskStore
}

// ContextClient writes and lists scope decisions
type ContextClient interface {
	gateways.ContextStore
	gateways.ContextReader
}

// Gateways holds the collaborators the services talk to
type Gateways struct {
	Calendar    gateways.CalendarGateway
	Rooms       gateways.OnlineRoomProvider
	Tasks       TaskClient
	Notes       gateways.NotesStore
	Context     ContextClient
	Suggestions gateways.SuggestionSource

	closers []func() error
}

// Close releases connections opened by NewGateways
func (g *Gateways) Close() {
	for i := len(g.closers) - 1; i >= 0; i-- {
		_ = g.closers[i]()
	}
}

// NewGateways connects every adapter, falling back to the in-memory or mock variant
// wherever the configuration asks for it
func NewGateways(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Gateways, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Gateways{}

	if cfg.Redis.UseMock {
		logger.Warn("⚠️  Context store running in MEMORY mode")
		g.Context = cache.NewMemoryContextStore()
	} else {
		client, err := cache.NewRedisClient(cfg)
		if err != nil {
			return nil, err
		}
		g.closers = append(g.closers, client.Close)
		g.Context = cache.NewRedisContextStore(client)
	}

	if cfg.Storage.UseMock {
		logger.Warn("⚠️  Notes store running in MEMORY mode")
		g.Notes = storage.NewMemoryNotesStore()
	} else {
		notes, err := storage.NewMinIONotesStore(ctx, &cfg.Storage)
		if err != nil {
			g.Close()
			return nil, err
		}
		g.Notes = notes
	}

	if cfg.Calendar.UseMock {
		logger.Warn("⚠️  Calendar running in MOCK mode")
		g.Calendar = calendar.MockCalendar{}
	} else {
		cal, err := calendar.NewGoogleCalendar(ctx, &cfg.Calendar)
		if err != nil {
			g.Close()
			return nil, fmt.Errorf("failed to create calendar client: %w", err)
		}
		g.Calendar = cal
	}

	if cfg.LiveKit.UseMock {
		logger.Warn("⚠️  LiveKit running in MOCK mode (no real server needed)")
	}
	g.Rooms = livekit.NewRoomProvider(&cfg.LiveKit)

	if cfg.Tasks.UseMock {
		logger.Warn("⚠️  Task API running in MOCK mode")
		g.Tasks = tasks.NewMockClient(cfg.Tasks.TaskURLBase)
	} else {
		g.Tasks = tasks.NewClient(&cfg.Tasks)
	}

	var source gateways.SuggestionSource = suggestions.StaticSource{}
	if !cfg.Groq.UseMock {
		source = suggestions.NewGroqSource(ai.NewGroqClient(&cfg.Groq))
	}
	g.Suggestions = cache.NewCachedSuggestionSource(source, cfg.Capture.SuggestionCacheTTL)

	return g, nil
}

// Services are the use cases exposed over HTTP and the CLI
type Services struct {
	MeetingRepo repositories.MeetingRepository
	Meeting     meetingUsecase.Service
	Scheduling  schedulingUsecase.Service
	Capture     captureUsecase.Service
}

// NewServices builds the use cases on top of the database and gateways
func NewServices(db *gorm.DB, g *Gateways, cfg *config.Config, logger *zap.Logger) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}
	meetingRepo := repository.NewMeetingRepository(db)
	ledger := repository.NewArtifactLedger(db)

	return &Services{
		MeetingRepo: meetingRepo,
		Meeting: meetingUsecase.NewMeetingService(
			meetingRepo,
			g.Suggestions,
			cfg.Capture.CallTimeout,
			logger.Named("meeting"),
		),
		Scheduling: schedulingUsecase.NewSchedulingService(
			meetingRepo,
			ledger,
			g.Calendar,
			g.Rooms,
			g.Tasks,
			cfg.Capture.CallTimeout,
			cfg.Capture.ScheduleRetryMaxElapsed,
			logger.Named("scheduling"),
		),
		Capture: captureUsecase.NewCaptureService(
			meetingRepo,
			ledger,
			g.Notes,
			g.Tasks,
			g.Context,
			captureUsecase.Options{
				CallTimeout:       cfg.Capture.CallTimeout,
				QuickCloseSummary: cfg.Capture.QuickCloseSummary,
			},
			logger.Named("capture"),
		),
	}
}
