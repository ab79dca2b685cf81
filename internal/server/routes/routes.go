package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/formrelay/internal/api/dto/common"
	"github.com/osa911/formrelay/internal/api/middleware"
	"github.com/osa911/formrelay/internal/logging"
	"github.com/osa911/formrelay/internal/utils"
)

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware) {
	logger := logging.GetGlobalLogger()

	// Create base API v1 group
	v1 := router.Group("/api/v1")

	// Health check endpoint
	SetupHealthRoutes(router, h.Health)

	// Contact routes (public)
	SetupContactRoutes(v1, h.Contact, m)

	router.NoRoute(func(c *gin.Context) {
		utils.HandleFailure(c, http.StatusNotFound, common.ErrCodeNotFound, "Route not found", nil)
	})

	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, logger *logging.Logger, cfg GlobalConfig) {
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.CORS))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.PreserveRequestBody(middleware.BodyReaderOption{
		MaxBodySize: cfg.MaxBodySize,
	}))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit))
}
