package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/osa911/formrelay/internal/api/dto/common"
	"github.com/osa911/formrelay/internal/logging"
)

// HandleAPIError is a utility function for consistent error handling across the API
// It ensures error details are only exposed outside gin's release mode
func HandleAPIError(c *gin.Context, err error, status int, code common.ErrorCode, message string) {
	// Log the error
	logger := logging.GetGlobalLogger()
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		GetRealIP(c),
		status,
		message,
		err,
	)

	// In production, don't expose error details
	var errorDetails interface{}
	if err != nil && gin.Mode() != gin.ReleaseMode {
		errorDetails = err.Error()
	}

	c.JSON(status, common.NewErrorResponse(code, message, errorDetails))
}
