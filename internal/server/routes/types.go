package routes

import (
	"github.com/osa911/formrelay/internal/api/handlers"
	"github.com/osa911/formrelay/internal/api/middleware"
)

// Handlers contains all the route handlers
type Handlers struct {
	Health  *handlers.HealthHandler
	Contact *handlers.ContactHandler
}

// Middleware contains all the middleware
type Middleware struct {
	Validation *middleware.ValidationMiddleware
}

// GlobalConfig configures the middleware applied to every route
type GlobalConfig struct {
	CORS        middleware.CORSConfig
	RateLimit   middleware.RateLimitConfig
	MaxBodySize int64
}
