package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/swiftstatic/swiftstatic/internal/api/constants"
	"github.com/swiftstatic/swiftstatic/internal/api/dto/common"
	"github.com/swiftstatic/swiftstatic/internal/logging"

	"github.com/gin-gonic/gin"
)

// Recovery turns a handler panic into a 500 with the usual {ok, message} body
func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("[PANIC] %s %s | %s | %s | %v\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					c.ClientIP(),
					c.GetString(constants.ContextKeyRequestID),
					rec,
					debug.Stack(),
				)

				if c.Writer.Written() {
					c.Abort()
					return
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, common.NewErrorResponse(common.MsgInternalError, nil))
			}
		}()

		c.Next()
	}
}
