package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/team-assistant/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/team-assistant/pkg/config"
	"github.com/johnquangdev/team-assistant/pkg/jwt"
)

// Router holds all handlers
type Router struct {
	cfg              *config.Config
	meetingHandler   *Meeting
	assistantHandler *Assistant
	jwtManager       *jwt.Manager
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, meetingHandler *Meeting, assistantHandler *Assistant, jwtManager *jwt.Manager) *Router {
	return &Router{
		cfg:              cfg,
		meetingHandler:   meetingHandler,
		assistantHandler: assistantHandler,
		jwtManager:       jwtManager,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")
	if !rt.cfg.Auth.Disabled {
		v1.Use(middleware.EchoAuth(rt.jwtManager))
	}

	rt.setupMeetingRoutes(v1)
	rt.setupAssistantRoutes(v1)
}

// setupMeetingRoutes configures transcript processing routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetingGroup := g.Group("/meetings")
	meetingGroup.POST("/process", rt.meetingHandler.Process)
	meetingGroup.POST("/ingest", rt.meetingHandler.Ingest)

	g.GET("/runs/:id", rt.meetingHandler.GetRun)
}

// setupAssistantRoutes configures question answering routes
func (rt *Router) setupAssistantRoutes(g *echo.Group) {
	assistantGroup := g.Group("/assistant")
	assistantGroup.POST("/ask", rt.assistantHandler.Ask)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
