package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/osa911/formrelay/internal/api/constants"
	"github.com/osa911/formrelay/internal/logging"
	"github.com/osa911/formrelay/internal/utils"
)

// RequestLogger is a middleware that logs request information.
// The logger drops the lines unless LOG_REQUESTS is enabled.
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Start timer
		start := time.Now()
		path := c.Request.URL.Path

		// Process request
		c.Next()

		logger.LogHTTPRequest(
			c.Request.Method,
			path,
			utils.GetRealIP(c),
			c.GetString(constants.ContextKeyRequestID),
			c.Writer.Status(),
			time.Since(start).String(),
		)
	}
}
