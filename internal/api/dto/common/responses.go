package common

// Result is the body of every form and error response.
type Result struct {
	OK      bool     `json:"ok"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// Messages returned to clients
const (
	MsgInvalidBody      = "Invalid request body."
	MsgBodyTooLarge     = "Request body too large."
	MsgTooManyRequests  = "Too many requests – please try again in %d minutes."
	MsgServerBusy       = "Too many requests – please try again later."
	MsgEmailUnavailable = "Email service unavailable."
	MsgRecaptchaFailed  = "reCAPTCHA verification failed."
	MsgNotFound         = "Not found."
	MsgInternalError    = "Something went wrong."
	MsgHealthy          = "Health check OK"
)

// NewSuccessResponse creates a new successful response
func NewSuccessResponse(message string) Result {
	return Result{OK: true, Message: message}
}

// NewErrorResponse creates a new error response
func NewErrorResponse(message string, fields []string) Result {
	return Result{OK: false, Message: message, Fields: fields}
}
