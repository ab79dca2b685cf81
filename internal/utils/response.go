package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/formrelay/internal/api/dto/common"
)

// HandleSuccess sends a success response with data
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(data))
}

// HandleFailure sends an error envelope whose details are safe to expose in
// every mode, such as field errors or form state.
func HandleFailure(c *gin.Context, status int, code common.ErrorCode, message string, details interface{}) {
	c.JSON(status, common.NewErrorResponse(code, message, details))
}
