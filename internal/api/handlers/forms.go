package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/swiftstatic/swiftstatic/internal/api/constants"
	"github.com/swiftstatic/swiftstatic/internal/api/dto/common"
	"github.com/swiftstatic/swiftstatic/internal/logging"
	"github.com/swiftstatic/swiftstatic/internal/metrics"
	"github.com/swiftstatic/swiftstatic/internal/ratelimit"
	"github.com/swiftstatic/swiftstatic/internal/service"
	"github.com/swiftstatic/swiftstatic/internal/submission"
	"github.com/swiftstatic/swiftstatic/internal/utils"

	"github.com/gin-gonic/gin"
)

// FormSubmitter is implemented by service.FormService.
type FormSubmitter interface {
	Submit(ctx context.Context, form submission.Form) (string, error)
}

type FormHandler struct {
	forms     FormSubmitter
	recaptcha *service.RecaptchaService
	logger    *logging.Logger
}

// NewFormHandler builds the booking and contact handlers. recaptcha may be nil.
func NewFormHandler(forms FormSubmitter, recaptcha *service.RecaptchaService, logger *logging.Logger) *FormHandler {
	return &FormHandler{
		forms:     forms,
		recaptcha: recaptcha,
		logger:    logger,
	}
}

func (h *FormHandler) Booking(c *gin.Context) {
	h.submit(c, &submission.BookingRequest{})
}

func (h *FormHandler) Contact(c *gin.Context) {
	h.submit(c, &submission.ContactRequest{})
}

func (h *FormHandler) submit(c *gin.Context, form submission.Form) {
	ctx := c.Request.Context()

	if h.recaptcha.Enabled() {
		if err := h.recaptcha.Verify(ctx, c.GetHeader(constants.HeaderRecaptchaToken), c.ClientIP()); err != nil {
			metrics.IncSubmission(string(form.Kind()), metrics.OutcomeSpam)
			h.logger.Warn("%s from %s rejected: %v", form.Endpoint(), c.ClientIP(), err)
			utils.HandleError(c, http.StatusBadRequest, common.MsgRecaptchaFailed)
			return
		}
	}

	// JSON or urlencoded, picked by Content-Type. Validation runs after
	// trimming, in the service.
	if err := c.ShouldBind(form); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.HandleError(c, http.StatusRequestEntityTooLarge, common.MsgBodyTooLarge)
			return
		}
		utils.HandleError(c, http.StatusBadRequest, common.MsgInvalidBody)
		return
	}

	ack, err := h.forms.Submit(ctx, form)
	if err != nil {
		var verr *submission.ValidationError
		switch {
		case errors.As(err, &verr):
			c.AbortWithStatusJSON(http.StatusBadRequest, common.NewErrorResponse(verr.Message, verr.Fields))
		case errors.Is(err, service.ErrDispatch):
			utils.HandleAPIError(c, h.logger, err, http.StatusServiceUnavailable, common.MsgEmailUnavailable)
		default:
			utils.HandleAPIError(c, h.logger, err, http.StatusInternalServerError, common.MsgInternalError)
		}
		return
	}

	h.logger.Debug("%s accepted from %s%s", form.Endpoint(), c.ClientIP(), quotaNote(c))
	utils.HandleSuccess(c, ack)
}

// quotaNote describes what is left of the caller's rate-limit window, when the
// limiter ran for this request.
func quotaNote(c *gin.Context) string {
	v, ok := c.Get(constants.ContextKeyRateLimit)
	if !ok {
		return ""
	}
	res, ok := v.(ratelimit.Result)
	if !ok {
		return ""
	}
	return fmt.Sprintf(" (%d of %d submissions left)", res.Remaining, res.Limit)
}
