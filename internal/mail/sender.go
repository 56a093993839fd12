// Package mail delivers operator notifications through a pluggable provider:
// SMTP (Gmail by default), SendGrid, Postmark, or a development sender that
// writes messages to disk.
package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/swiftstatic/swiftstatic/internal/config"
)

var (
	// ErrNotConfigured is returned by every send when credentials are missing.
	ErrNotConfigured = errors.New("email credentials not configured")
	// ErrSendFailed wraps provider failures.
	ErrSendFailed = errors.New("email send failed")
)

// Message is a fully rendered email.
type Message struct {
	FromName string
	From     string
	To       string
	ReplyTo  string
	Subject  string
	HTML     string
	Tag      string
}

// Sender is the interface every provider implements.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Verifier is implemented by senders that can check their connection up front.
type Verifier interface {
	Verify(ctx context.Context) error
}

// Disabled always fails with ErrNotConfigured. It stands in for a provider whose
// credentials are missing so the endpoints degrade instead of the process dying.
type Disabled struct {
	Reason string
}

func (d Disabled) Send(ctx context.Context, msg Message) error {
	return fmt.Errorf("%w: %s", ErrNotConfigured, d.Reason)
}

func (d Disabled) Verify(ctx context.Context) error {
	return fmt.Errorf("%w: %s", ErrNotConfigured, d.Reason)
}

// New picks the provider named in cfg. Missing credentials yield a Disabled
// sender, never an error; only an unknown provider name is an error.
func New(cfg config.MailConfig) (Sender, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "smtp":
		if cfg.User == "" || cfg.Password == "" {
			return Disabled{Reason: "EMAIL_USER / EMAIL_PASS not set"}, nil
		}
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.User, cfg.Password), nil
	case "sendgrid":
		if cfg.SendGridAPIKey == "" || cfg.User == "" {
			return Disabled{Reason: "SENDGRID_API_KEY / EMAIL_USER not set"}, nil
		}
		return NewSendGridSender(cfg.SendGridAPIKey), nil
	case "postmark":
		if cfg.PostmarkServerToken == "" || cfg.User == "" {
			return Disabled{Reason: "POSTMARK_SERVER_TOKEN / EMAIL_USER not set"}, nil
		}
		return NewPostmarkSender(cfg.PostmarkServerToken, cfg.PostmarkAccountToken), nil
	case "dev":
		return NewDevSender(cfg.DevDir), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}

// IsDisabled reports whether s is the Disabled stand-in.
func IsDisabled(s Sender) bool {
	_, ok := s.(Disabled)
	return ok
}

func (m Message) validate() error {
	if m.From == "" || m.To == "" {
		return fmt.Errorf("%w: sender and recipient are required", ErrSendFailed)
	}
	if m.Subject == "" || m.HTML == "" {
		return fmt.Errorf("%w: subject and body are required", ErrSendFailed)
	}
	return nil
}
