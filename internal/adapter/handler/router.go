package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/meeting-facilitator/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg                  *config.Config
	meetingHandler       *Meeting
	facilitationHandler  *Facilitation
	minutesHandler       *Minutes
	transcriptionHandler *Transcription
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	meetingHandler *Meeting,
	facilitationHandler *Facilitation,
	minutesHandler *Minutes,
	transcriptionHandler *Transcription,
) *Router {
	return &Router{
		cfg:                  cfg,
		meetingHandler:       meetingHandler,
		facilitationHandler:  facilitationHandler,
		minutesHandler:       minutesHandler,
		transcriptionHandler: transcriptionHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupMeetingRoutes(v1)
	rt.setupFacilitationRoutes(v1)
	rt.setupMinutesRoutes(v1)
}

// setupMeetingRoutes configures meeting and comment log routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	g.POST("/meeting", rt.meetingHandler.CreateMeeting)
	g.GET("/meeting/:id", rt.meetingHandler.GetMeeting)
	g.POST("/message", rt.meetingHandler.PostMessage)
	g.GET("/meeting/:id/messages", rt.meetingHandler.ListMessages)
	g.POST("/meeting/:id/transcriptions", rt.transcriptionHandler.Transcribe)
}

// setupFacilitationRoutes configures the facilitator routes
func (rt *Router) setupFacilitationRoutes(g *echo.Group) {
	g.GET("/meeting/:id/agent-feedback", rt.facilitationHandler.AgentFeedback)
	g.GET("/meeting/:id/intervention", rt.facilitationHandler.AllowIntervention)
	g.POST("/meeting/:id/intervention/check", rt.facilitationHandler.CheckIntervention)
	g.GET("/meeting/:id/feedbacks", rt.facilitationHandler.ListFeedbacks)
}

// setupMinutesRoutes configures minutes routes
func (rt *Router) setupMinutesRoutes(g *echo.Group) {
	g.GET("/meeting/:id/minutes", rt.minutesHandler.GetMinutes)
	g.POST("/meeting/:id/minutes/export", rt.minutesHandler.ExportMinutes)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	environment := ""
	if rt.cfg != nil {
		environment = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": environment,
	})
}
