package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/swiftstatic/swiftstatic/internal/config"
	"github.com/swiftstatic/swiftstatic/internal/logging"
	"github.com/swiftstatic/swiftstatic/internal/mail"
	"github.com/swiftstatic/swiftstatic/internal/metrics"
	"github.com/swiftstatic/swiftstatic/internal/submission"
)

const (
	alertTimeout = 10 * time.Second
	// fallbackFrom is used by the dev provider, which needs no account.
	fallbackFrom = "no-reply@swiftstatic.local"
)

// Alerter notifies the operator about a submission that was already emailed.
type Alerter interface {
	Name() string
	Alert(ctx context.Context, form submission.Form) error
}

// FormService validates a submission and emails it to the operator.
type FormService struct {
	sender   mail.Sender
	site     string
	from     string
	to       string
	alerters []Alerter
	logger   *logging.Logger
	tracer   trace.Tracer

	mu      sync.Mutex
	closing bool
	alerts  sync.WaitGroup
}

func NewFormService(cfg *config.Config, sender mail.Sender, logger *logging.Logger, alerters ...Alerter) *FormService {
	from := cfg.Mail.User
	if from == "" {
		from = fallbackFrom
	}
	to := cfg.Mail.Recipient()
	if to == "" {
		to = cfg.Mail.MailtoAddress
	}

	var active []Alerter
	for _, a := range alerters {
		if a != nil {
			active = append(active, a)
		}
	}

	return &FormService{
		sender:   sender,
		site:     cfg.SiteName,
		from:     from,
		to:       to,
		alerters: active,
		logger:   logger,
		tracer:   otel.Tracer("github.com/swiftstatic/swiftstatic/internal/service"),
	}
}

// Submit returns the acknowledgement for form. Errors wrap
// submission.ErrValidation or ErrDispatch.
func (s *FormService) Submit(ctx context.Context, form submission.Form) (string, error) {
	kind := string(form.Kind())

	form.Normalize()
	if err := form.Validate(); err != nil {
		metrics.IncSubmission(kind, metrics.OutcomeInvalid)
		return "", err
	}

	n := form.Notification(s.site)
	msg := mail.Message{
		FromName: s.site + " Bot",
		From:     s.from,
		To:       s.to,
		ReplyTo:  n.ReplyTo,
		Subject:  n.Subject,
		HTML:     n.HTML,
		Tag:      kind,
	}

	if err := s.send(ctx, kind, msg); err != nil {
		metrics.IncSubmission(kind, metrics.OutcomeSendFailed)
		return "", errors.Join(ErrDispatch, err)
	}
	metrics.IncSubmission(kind, metrics.OutcomeSent)
	s.logger.Info("%s submission emailed to %s", kind, s.to)

	s.alert(ctx, form)
	return form.Acknowledgement(), nil
}

func (s *FormService) send(ctx context.Context, kind string, msg mail.Message) error {
	ctx, span := s.tracer.Start(ctx, "mail.send", trace.WithAttributes(
		attribute.String("form.kind", kind),
	))
	defer span.End()

	start := time.Now()
	err := s.sender.Send(ctx, msg)
	metrics.ObserveDispatch(kind, time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
	}
	return err
}

// alert runs every alerter in the background, detached from the request.
func (s *FormService) alert(ctx context.Context, form submission.Form) {
	if len(s.alerters) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)

	// Add must not race the Wait in shutdown; once draining starts new alerts
	// are dropped.
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		s.logger.Warn("Shutting down, %s alerts skipped", form.Kind())
		return
	}

	for _, a := range s.alerters {
		s.alerts.Add(1)
		go func(a Alerter) {
			defer s.alerts.Done()

			ctx, cancel := context.WithTimeout(ctx, alertTimeout)
			defer cancel()

			if err := a.Alert(ctx, form); err != nil {
				metrics.IncAlertFailure(a.Name())
				s.logger.Warn("%s alert failed: %v", a.Name(), err)
			}
		}(a)
	}
}

// Wait blocks until in-flight alerts finish or ctx ends. Submissions that
// arrive afterwards are still emailed but no longer alert.
func (s *FormService) Wait(ctx context.Context) error {
	s.mu.Lock()
	s.closing = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.alerts.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
