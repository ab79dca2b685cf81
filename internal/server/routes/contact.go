package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/osa911/formrelay/internal/api/handlers"
	"github.com/osa911/formrelay/internal/api/middleware"
)

// SetupContactRoutes configures contact form routes
func SetupContactRoutes(router *gin.RouterGroup, contact *handlers.ContactHandler, m *Middleware) {
	// Each submit sends an email, so every client gets its own budget on
	// top of the global limiter: a burst of 5, then one per second.
	perClient := middleware.NewClientRateLimiter(middleware.RateLimitConfig{
		RPS:   1,
		Burst: 5,
	})

	public := router.Group("/contact")
	{
		public.POST("/submit",
			perClient.Middleware(),
			m.Validation.ValidateContactRequest(),
			contact.Submit,
		)
		public.POST("/validate",
			m.Validation.ValidateContactRequest(),
			contact.Validate,
		)
	}
}
