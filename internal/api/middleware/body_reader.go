package middleware

import (
	"net/http"

	"github.com/swiftstatic/swiftstatic/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// LimitRequestBody rejects bodies larger than maxBytes with 413. Declared
// lengths are checked up front; chunked bodies fail when the handler reads
// past the limit.
func LimitRequestBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.NewErrorResponse(common.MsgBodyTooLarge, nil))
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
