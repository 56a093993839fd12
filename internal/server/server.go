package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/swiftstatic/swiftstatic/internal/api/constants"
	"github.com/swiftstatic/swiftstatic/internal/api/handlers"
	"github.com/swiftstatic/swiftstatic/internal/api/middleware"
	"github.com/swiftstatic/swiftstatic/internal/config"
	"github.com/swiftstatic/swiftstatic/internal/logging"
	"github.com/swiftstatic/swiftstatic/internal/metrics"
	"github.com/swiftstatic/swiftstatic/internal/ratelimit"
	"github.com/swiftstatic/swiftstatic/internal/server/routes"
	"github.com/swiftstatic/swiftstatic/internal/service"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// Options are the collaborators the server is assembled from.
type Options struct {
	Config    *config.Config
	Logger    *logging.Logger
	Forms     handlers.FormSubmitter
	Recaptcha *service.RecaptchaService
	Limiter   *ratelimit.Limiter
	Static    fs.FS
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	logger *logging.Logger
}

// NewServer creates a new server instance
func NewServer(opts Options) (*Server, error) {
	if opts.Config == nil || opts.Logger == nil || opts.Forms == nil || opts.Limiter == nil || opts.Static == nil {
		return nil, errors.New("server: missing dependency")
	}
	cfg := opts.Config

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}

	routes.SetupGlobalMiddleware(router, cfg.SiteName, opts.Logger, middleware.RateLimitConfig{
		RPS:   cfg.RateLimit.GlobalRPS,
		Burst: cfg.RateLimit.GlobalBurst,
	}, cfg.AllowedOrigins)

	h := &routes.Handlers{
		Forms:  handlers.NewFormHandler(opts.Forms, opts.Recaptcha, opts.Logger),
		Health: handlers.NewHealthHandler(),
		Static: handlers.NewStaticHandler(opts.Static),
	}
	if cfg.MetricsEnabled {
		metrics.Register()
		h.Metrics = metrics.Handler()
	}

	m := &routes.Middleware{
		FormRateLimit: middleware.FormRateLimit(opts.Limiter, opts.Logger),
		BodyLimit:     middleware.LimitRequestBody(constants.MaxBodyBytes),
	}

	routes.Setup(router, h, m, opts.Logger)

	return &Server{
		router: router,
		cfg:    cfg,
		logger: opts.Logger,
	}, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.cfg.Port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", s.cfg.Port, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening on %s", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down, draining for up to %s", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return <-errCh
}
