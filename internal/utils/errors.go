package utils

import (
	"github.com/swiftstatic/swiftstatic/internal/api/dto/common"
	"github.com/swiftstatic/swiftstatic/internal/logging"

	"github.com/gin-gonic/gin"
)

// HandleAPIError logs err with request details and sends a generic message.
// Error details never reach the client.
func HandleAPIError(c *gin.Context, logger *logging.Logger, err error, status int, message string) {
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		c.ClientIP(),
		status,
		message,
		err,
	)
	c.AbortWithStatusJSON(status, common.NewErrorResponse(message, nil))
}
