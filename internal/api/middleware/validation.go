package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/osa911/formrelay/internal/api/constants"
	"github.com/osa911/formrelay/internal/api/dto/common"
	"github.com/osa911/formrelay/internal/api/dto/v1/contact"
	"github.com/osa911/formrelay/internal/api/validation"
	"github.com/osa911/formrelay/internal/logging"
)

// ValidationMiddleware handles request validation
type ValidationMiddleware struct {
	logger *logging.Logger
}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware(logger *logging.Logger) (*ValidationMiddleware, error) {
	if err := validation.RegisterBindingValidators(); err != nil {
		return nil, err
	}
	return &ValidationMiddleware{logger: logger}, nil
}

// ValidateContactRequest decodes and length-checks a contact submission and
// stores it under constants.ContextKeyContact.
func (m *ValidationMiddleware) ValidateContactRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contact.ContactRequest

		// ShouldBindBodyWith keeps the body readable for later handlers.
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			m.logger.Debug("Contact request rejected: %v", err)

			var details interface{}
			if fields := validation.FormatValidationError(err); len(fields) > 0 {
				details = fields
			}
			c.AbortWithStatusJSON(http.StatusBadRequest,
				common.NewErrorResponse(common.ErrCodeBadRequest, "Invalid request body", details))
			return
		}

		c.Set(constants.ContextKeyContact, &req)
		c.Next()
	}
}
