package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/formrelay/internal/config"
	"github.com/osa911/formrelay/internal/locale"
	"github.com/osa911/formrelay/internal/logging"
	"github.com/osa911/formrelay/internal/relay"
)

// Server represents the HTTP server
type Server struct {
	router     *gin.Engine
	cfg        *config.Config
	deps       Dependencies
	logger     *logging.Logger
	httpServer *http.Server
}

// Dependencies holds the collaborators the handlers need
type Dependencies struct {
	// Sender delivers submissions to the relay service
	Sender relay.Sender
	// Catalog holds localized messages; nil means English only
	Catalog *locale.Catalog
}
