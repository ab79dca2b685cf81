package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/osa911/formrelay/internal/api/handlers"
	"github.com/osa911/formrelay/internal/api/middleware"
	"github.com/osa911/formrelay/internal/api/sanitization"
	"github.com/osa911/formrelay/internal/config"
	"github.com/osa911/formrelay/internal/logging"
	"github.com/osa911/formrelay/internal/server/routes"
)

// NewServer creates a new server instance
func NewServer(cfg *config.Config, deps Dependencies) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server config is required")
	}
	if deps.Sender == nil {
		return nil, errors.New("relay sender is required")
	}

	// Set release mode for production
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	// Create a new engine without default middleware
	router := gin.New()

	return &Server{
		router: router,
		cfg:    cfg,
		deps:   deps,
		logger: logging.GetGlobalLogger(),
	}, nil
}

// Init wires middleware, handlers and routes
func (s *Server) Init() error {
	validationMiddleware, err := middleware.NewValidationMiddleware(s.logger)
	if err != nil {
		return fmt.Errorf("failed to create validation middleware: %w", err)
	}

	contactHandler := handlers.NewContactHandler(s.deps.Sender, s.deps.Catalog, handlers.ContactOptions{
		NameMode:         s.cfg.NameMode(),
		OwnerEmail:       s.cfg.RelayOwnerEmail,
		Subject:          s.cfg.ContactSubject,
		StatusClearDelay: s.cfg.ContactStatusClear,
		Sanitize:         sanitization.Sanitizer(s.cfg.ContactStripHTML),
	})

	h := &routes.Handlers{
		Health:  handlers.NewHealthHandler(),
		Contact: contactHandler,
	}
	m := &routes.Middleware{
		Validation: validationMiddleware,
	}

	s.router.Use(otelgin.Middleware(s.cfg.ServiceName))
	routes.SetupGlobalMiddleware(s.router, s.logger, routes.GlobalConfig{
		CORS: middleware.CORSConfig{
			AllowedOrigins: s.cfg.AllowedOrigins,
			Development:    s.cfg.Environment == "development",
		},
		RateLimit: middleware.RateLimitConfig{
			RPS:   s.cfg.RateLimitRPS,
			Burst: s.cfg.RateLimitBurst,
		},
		MaxBodySize: s.cfg.MaxBodyBytes,
	})
	routes.Setup(s.router, h, m)

	s.httpServer = &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      s.cfg.RelayTimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("server not initialized")
	}

	s.logger.Info("Starting HTTP server on port %s", s.cfg.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
