package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/osa911/formrelay/internal/utils"
	"github.com/osa911/formrelay/internal/version"
)

// HealthResponse reports liveness and the running build.
type HealthResponse struct {
	Status string            `json:"status"`
	Uptime string            `json:"uptime"`
	Build  version.BuildInfo `json:"build"`
}

type HealthHandler struct {
	startedAt time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

func (h *HealthHandler) Check(c *gin.Context) {
	utils.HandleSuccess(c, HealthResponse{
		Status: "ok",
		Uptime: time.Since(h.startedAt).Truncate(time.Second).String(),
		Build:  version.GetBuildInfo(),
	})
}
