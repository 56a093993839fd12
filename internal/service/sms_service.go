package service

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/swiftstatic/swiftstatic/internal/config"
	"github.com/swiftstatic/swiftstatic/internal/submission"
)

// smsMaxLen keeps alerts within two concatenated segments.
const smsMaxLen = 300

// messageCreator is the slice of the Twilio REST client the alerter uses.
type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// SMSAlerter texts the operator through Twilio.
type SMSAlerter struct {
	api  messageCreator
	from string
	to   string
}

// NewSMSAlerter returns nil unless every Twilio setting and the destination are present.
func NewSMSAlerter(cfg config.AlertConfig) *SMSAlerter {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" || cfg.TwilioFromNumber == "" || cfg.SMSTo == "" {
		return nil
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   cfg.TwilioAccountSID,
		Password:   cfg.TwilioAuthToken,
		AccountSid: cfg.TwilioAccountSID,
	})
	return &SMSAlerter{api: client.Api, from: cfg.TwilioFromNumber, to: cfg.SMSTo}
}

func (s *SMSAlerter) Name() string { return "sms" }

// Alert ignores ctx: the Twilio client does not take one.
func (s *SMSAlerter) Alert(_ context.Context, form submission.Form) error {
	body := form.Summary()
	if r := []rune(body); len(r) > smsMaxLen {
		body = string(r[:smsMaxLen-1]) + "…"
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(s.to)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send sms alert: %w", err)
	}
	return nil
}
