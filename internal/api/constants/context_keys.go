package constants

// Context keys set by middleware
const (
	ContextKeyRequestID = "RequestID"
	ContextKeyRateLimit = "rateLimit"
)

// Request and response headers
const (
	HeaderRequestID      = "X-Request-ID"
	HeaderRecaptchaToken = "X-Recaptcha-Token"

	HeaderRateLimitLimit     = "RateLimit-Limit"
	HeaderRateLimitRemaining = "RateLimit-Remaining"
	HeaderRateLimitReset     = "RateLimit-Reset"
)

// MaxBodyBytes caps form request bodies.
const MaxBodyBytes = 64 << 10
