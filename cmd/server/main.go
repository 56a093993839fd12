package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/swiftstatic/swiftstatic/internal/config"
	"github.com/swiftstatic/swiftstatic/internal/logging"
	"github.com/swiftstatic/swiftstatic/internal/mail"
	"github.com/swiftstatic/swiftstatic/internal/ratelimit"
	"github.com/swiftstatic/swiftstatic/internal/server"
	"github.com/swiftstatic/swiftstatic/internal/service"
	"github.com/swiftstatic/swiftstatic/internal/telemetry"
	"github.com/swiftstatic/swiftstatic/internal/version"
	"github.com/swiftstatic/swiftstatic/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger configuration
	logConfig := logging.DefaultConfig()
	logConfig.Level = cfg.LogLevel
	logConfig.File = cfg.LogFile
	logConfig.Requests = cfg.LogRequests
	if err := logging.Configure(logConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid logging config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.GetLogger()

	err = run(cfg, logger)
	if err != nil {
		logger.Error("Server stopped: %v", err)
	}
	logger.Close()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting %s %s in %s mode", cfg.SiteName, version.Info(), cfg.Environment)

	shutdownTracing, err := telemetry.Init(ctx, cfg.OTLPEndpoint, "swiftstatic", version.Version)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("Tracing shutdown: %v", err)
		}
	}()

	sender, err := newSender(ctx, cfg, logger)
	if err != nil {
		return err
	}

	store, err := newStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	limiter, err := ratelimit.New(store, cfg.RateLimit.FormLimit, cfg.RateLimit.FormWindow)
	if err != nil {
		return err
	}
	logger.Info("Form submissions limited to %d per %s per client", limiter.Limit(), limiter.Window())

	forms := service.NewFormService(cfg, sender, logger, alerters(cfg, logger)...)
	recaptcha := service.NewRecaptchaService(cfg.RecaptchaSecret, cfg.RecaptchaMinScore)
	if recaptcha.Enabled() {
		logger.Info("reCAPTCHA verification enabled (min score %.2f)", cfg.RecaptchaMinScore)
	}

	srv, err := server.NewServer(server.Options{
		Config:    cfg,
		Logger:    logger,
		Forms:     forms,
		Recaptcha: recaptcha,
		Limiter:   limiter,
		Static:    staticFiles(cfg, logger),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	serveErr := srv.Start(ctx)

	// Let in-flight alerts finish before the process exits
	drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := forms.Wait(drainCtx); err != nil {
		logger.Warn("Pending alerts abandoned: %v", err)
	}

	return serveErr
}

func newSender(ctx context.Context, cfg *config.Config, logger *logging.Logger) (mail.Sender, error) {
	sender, err := mail.New(cfg.Mail)
	if err != nil {
		return nil, err
	}

	if mail.IsDisabled(sender) {
		logger.Warn("Email sending disabled: %v", sender.Send(ctx, mail.Message{}))
		return sender, nil
	}

	logger.Info("Email provider: %s", cfg.Mail.Provider)
	if v, ok := sender.(mail.Verifier); ok {
		verifyCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		if err := v.Verify(verifyCtx); err != nil {
			logger.Warn("Email transporter verification failed: %v", err)
		} else {
			logger.Info("Email transporter ready")
		}
	}
	return sender, nil
}

type closableStore interface {
	ratelimit.Store
	io.Closer
}

func newStore(ctx context.Context, cfg *config.Config, logger *logging.Logger) (closableStore, error) {
	if cfg.RateLimit.RedisURL == "" {
		return ratelimit.NewMemoryStore(time.Minute), nil
	}

	client, err := ratelimit.Connect(ctx, cfg.RateLimit.RedisURL)
	if err != nil {
		return nil, err
	}
	logger.Info("Rate limit counters stored in Redis")
	return ratelimit.NewRedisStore(client, ""), nil
}

func alerters(cfg *config.Config, logger *logging.Logger) []service.Alerter {
	var out []service.Alerter
	if tg := service.NewTelegramAlerter(cfg.Alerts.TelegramBotToken, cfg.Alerts.TelegramChatID); tg != nil {
		out = append(out, tg)
	}
	if sms := service.NewSMSAlerter(cfg.Alerts); sms != nil {
		out = append(out, sms)
	}
	for _, a := range out {
		logger.Info("Operator alerts enabled: %s", a.Name())
	}
	return out
}

func staticFiles(cfg *config.Config, logger *logging.Logger) fs.FS {
	if cfg.StaticDir == "" {
		return web.Static()
	}
	logger.Info("Serving static files from %s", cfg.StaticDir)
	return os.DirFS(cfg.StaticDir)
}
