package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/formrelay/internal/api/constants"
	"github.com/osa911/formrelay/internal/api/dto/common"
)

// DefaultMaxBodySize caps request bodies when no limit is configured.
const DefaultMaxBodySize = 64 * 1024

// BodyReaderOption defines options for body reader middleware
type BodyReaderOption struct {
	MaxBodySize int64
}

// PreserveRequestBody middleware reads the request body once and restores it
// This allows validators and controllers to both read the body
func PreserveRequestBody(option BodyReaderOption) gin.HandlerFunc {
	if option.MaxBodySize <= 0 {
		option.MaxBodySize = DefaultMaxBodySize
	}

	return func(c *gin.Context) {
		// Only process requests that can carry a body
		if c.Request.Body == nil || (c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch) {
			c.Next()
			return
		}

		if c.Request.ContentLength > option.MaxBodySize {
			abortTooLarge(c)
			return
		}

		bodyBytes, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, option.MaxBodySize))
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				abortTooLarge(c)
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest,
				common.NewErrorResponse(common.ErrCodeBadRequest, "Error reading request body", nil))
			return
		}

		// Restore the body for subsequent middleware
		c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		// Store body in context for potential use later
		c.Set(constants.ContextKeyRawBody, bodyBytes)

		c.Next()
	}
}

func abortTooLarge(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
		common.NewErrorResponse(common.ErrCodeRequestTooLarge, "Request body too large", nil))
}
