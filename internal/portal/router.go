package portal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Experiencepwunkr/globomail/internal/portal/auth"
	"github.com/Experiencepwunkr/globomail/internal/portal/handler"
	"github.com/Experiencepwunkr/globomail/internal/portal/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	tokens *auth.TokenManager,
	agentHandler *handler.AgentHandler,
	requestHandler *handler.RequestHandler,
	adminHandler *handler.AdminHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Public registration and login
		v1.POST("/agents", agentHandler.Register)
		v1.POST("/auth/login", agentHandler.Login)

		// Agent operations
		authed := v1.Group("")
		authed.Use(middleware.RequireAuth(tokens))
		{
			authed.GET("/agents/me", agentHandler.Me)
			authed.GET("/agents/me/requests", requestHandler.MyRequests)
			authed.POST("/services/:serviceType/submit", requestHandler.Submit)
		}

		// Back-office operations
		admin := v1.Group("/admin")
		admin.Use(middleware.RequireAuth(tokens), middleware.RequireAdmin())
		{
			admin.GET("/requests", adminHandler.ListOpen)
			admin.POST("/requests/:id/update", adminHandler.UpdateStatus)
			admin.GET("/requests/:id/history", adminHandler.History)
			admin.POST("/payments", adminHandler.RecordPayment)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
