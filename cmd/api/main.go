package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/zap"

	_ "github.com/johnquangdev/meeting-capture/docs"
	"github.com/johnquangdev/meeting-capture/internal/adapter/handler"
	"github.com/johnquangdev/meeting-capture/internal/infrastructure/bootstrap"
	"github.com/johnquangdev/meeting-capture/internal/infrastructure/database"
	httpmw "github.com/johnquangdev/meeting-capture/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-capture/internal/infrastructure/telemetry"
	"github.com/johnquangdev/meeting-capture/pkg/config"
	"github.com/johnquangdev/meeting-capture/pkg/jwt"
	pkgvalidator "github.com/johnquangdev/meeting-capture/pkg/validator"
)

// @title           Meeting Capture API
// @version         1.0
// @description     Meeting lifecycle, scheduling and post-meeting capture orchestration.

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	rootCtx := context.Background()

	log.Println("📡 Initializing telemetry...")
	shutdownTelemetry, err := telemetry.Setup(rootCtx, &cfg.Telemetry)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())
	e.Use(otelecho.Middleware(cfg.Telemetry.ServiceName))
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	log.Println("🔧 Initializing dependencies...")

	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	log.Println("🔌 Connecting gateways...")
	gws, err := bootstrap.NewGateways(rootCtx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize gateways: %v", err)
	}
	defer gws.Close()

	log.Println("⚙️  Initializing services...")
	services := bootstrap.NewServices(db, gws, cfg, logger)

	log.Println("🔑 Initializing JWT verifier...")
	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret)
	authEchoMW := httpmw.EchoAuth(jwtManager, logger)

	log.Println("🛣️  Setting up routes...")
	meetingHandler := handler.NewMeetingHandler(services.Meeting, services.Scheduling, logger)
	captureHandler := handler.NewCaptureHandler(services.Capture, logger)
	router := handler.NewRouter(cfg, meetingHandler, captureHandler, authEchoMW)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}
	if err := shutdownTelemetry(ctx); err != nil {
		log.Printf("⚠️  Telemetry shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Server.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
