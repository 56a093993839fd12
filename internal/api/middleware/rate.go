package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/swiftstatic/swiftstatic/internal/api/constants"
	"github.com/swiftstatic/swiftstatic/internal/api/dto/common"
	"github.com/swiftstatic/swiftstatic/internal/logging"
	"github.com/swiftstatic/swiftstatic/internal/metrics"
	"github.com/swiftstatic/swiftstatic/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for the global flood guard
type RateLimitConfig struct {
	// Requests per second
	RPS float64
	// Burst size (number of requests that can be made in a single burst)
	Burst int
}

// RateLimitMiddleware caps the whole process at config.RPS, regardless of client.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(config.RPS), config.Burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.NewErrorResponse(common.MsgServerBusy, nil))
			return
		}
		c.Next()
	}
}

// FormRateLimit counts every request against the caller's fixed window and
// rejects it with 429 once the quota is spent. Requests that go on to fail
// validation still count.
func FormRateLimit(limiter *ratelimit.Limiter, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn("rate limiter unavailable, allowing request: %v", err)
		}
		c.Set(constants.ContextKeyRateLimit, res)

		reset := seconds(res.ResetAfter)
		c.Header(constants.HeaderRateLimitLimit, strconv.Itoa(res.Limit))
		c.Header(constants.HeaderRateLimitRemaining, strconv.Itoa(res.Remaining))
		c.Header(constants.HeaderRateLimitReset, strconv.Itoa(reset))

		if !res.Allowed {
			metrics.IncSubmission(formName(c.FullPath()), metrics.OutcomeRateLimited)
			c.Header("Retry-After", strconv.Itoa(reset))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				common.NewErrorResponse(TooManyRequestsMessage(limiter.Window()), nil))
			return
		}
		c.Next()
	}
}

// TooManyRequestsMessage names the window in whole minutes.
func TooManyRequestsMessage(window time.Duration) string {
	minutes := int(math.Ceil(window.Minutes()))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf(common.MsgTooManyRequests, minutes)
}

func seconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}

func formName(path string) string {
	switch path {
	case "/api/booking":
		return "booking"
	case "/api/contact":
		return "contact"
	default:
		return "unknown"
	}
}
