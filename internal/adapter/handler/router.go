package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/meeting-capture/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	meetingHandler *Meeting
	captureHandler *Capture
	authMiddleware echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, meetingHandler *Meeting, captureHandler *Capture, authMiddleware echo.MiddlewareFunc) *Router {
	return &Router{
		cfg:            cfg,
		meetingHandler: meetingHandler,
		captureHandler: captureHandler,
		authMiddleware: authMiddleware,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")
	if rt.authMiddleware != nil {
		v1.Use(rt.authMiddleware)
	}

	rt.setupMeetingRoutes(v1)
	rt.setupCaptureRoutes(v1)
}

// setupMeetingRoutes configures meeting store and scheduling routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")

	meetings.POST("", rt.meetingHandler.CreateMeeting)
	meetings.POST("/suggestions", rt.meetingHandler.SuggestMeeting)
	meetings.GET("/:id", rt.meetingHandler.GetMeeting)
	meetings.PUT("/:id/outcomes", rt.meetingHandler.ReplaceOutcomes)
	meetings.POST("/:id/cancel", rt.meetingHandler.CancelMeeting)
	meetings.POST("/:id/schedule", rt.meetingHandler.ScheduleMeeting)
}

// setupCaptureRoutes configures capture routes
func (rt *Router) setupCaptureRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")

	meetings.GET("/:id/capture/eligibility", rt.captureHandler.GetEligibility)
	meetings.GET("/:id/capture/seed", rt.captureHandler.GetSeed)
	meetings.GET("/:id/capture", rt.captureHandler.GetCapture)
	meetings.POST("/:id/capture", rt.captureHandler.SubmitCapture)
	meetings.POST("/:id/capture/quick-close", rt.captureHandler.QuickClose)

	g.GET("/scopes/:type/:id/awaiting-capture", rt.captureHandler.ListAwaitingCapture)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	env := "production"
	if rt.cfg != nil && rt.cfg.Server.Environment != "" {
		env = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": env,
	})
}
