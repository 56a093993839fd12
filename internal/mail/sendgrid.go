package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender delivers through the SendGrid v3 API.
type SendGridSender struct {
	client *sendgrid.Client
}

func NewSendGridSender(apiKey string) *SendGridSender {
	return &SendGridSender{client: sendgrid.NewSendClient(apiKey)}
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	from := sgmail.NewEmail(msg.FromName, msg.From)
	to := sgmail.NewEmail("", msg.To)
	message := sgmail.NewSingleEmail(from, msg.Subject, to, "", msg.HTML)
	if msg.ReplyTo != "" {
		message.SetReplyTo(sgmail.NewEmail("", msg.ReplyTo))
	}
	if msg.Tag != "" {
		message.AddCategories(msg.Tag)
	}

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return errors.Join(ErrSendFailed, fmt.Errorf("sendgrid: %w", err))
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return errors.Join(ErrSendFailed, fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body))
	}
	return nil
}
