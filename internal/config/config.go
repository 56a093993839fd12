package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment    string   `env:"ENV" envDefault:"development"`
	Port           string   `env:"PORT" envDefault:"3000"`
	SiteName       string   `env:"SITE_NAME" envDefault:"SwiftStatic"`
	StaticDir      string   `env:"STATIC_DIR"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// Logging Configuration
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`
	LogRequests bool   `env:"LOG_REQUESTS" envDefault:"false"`

	Mail      MailConfig
	RateLimit RateLimitConfig
	Alerts    AlertConfig

	// Optional spam check
	RecaptchaSecret   string  `env:"RECAPTCHA_SECRET_KEY"`
	RecaptchaMinScore float64 `env:"RECAPTCHA_MIN_SCORE" envDefault:"0.5"`

	// Telemetry Configuration
	OTLPEndpoint   string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"false"`
}

// MailConfig describes the email-sending collaborator.
type MailConfig struct {
	Provider string `env:"MAIL_PROVIDER" envDefault:"smtp"`

	// Account used to send notifications
	User        string `env:"EMAIL_USER"`
	Password    string `env:"EMAIL_PASS"`
	NotifyEmail string `env:"NOTIFY_EMAIL"`

	SMTPHost string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort int    `env:"SMTP_PORT" envDefault:"587"`

	SendGridAPIKey       string `env:"SENDGRID_API_KEY"`
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	DevDir               string `env:"MAIL_DEV_DIR" envDefault:"./tmp/mail"`

	// Address clients put in their mailto: fallback link
	MailtoAddress string `env:"MAILTO_ADDRESS" envDefault:"swiftstaticc@gmail.com"`
}

// Recipient returns the operator address notifications go to.
func (m MailConfig) Recipient() string {
	if m.NotifyEmail != "" {
		return m.NotifyEmail
	}
	return m.User
}

// RateLimitConfig bounds form submissions per client and overall request flow.
type RateLimitConfig struct {
	FormLimit   int           `env:"FORM_RATE_LIMIT" envDefault:"10"`
	FormWindow  time.Duration `env:"FORM_RATE_WINDOW" envDefault:"15m"`
	GlobalRPS   float64       `env:"GLOBAL_RPS" envDefault:"50"`
	GlobalBurst int           `env:"GLOBAL_BURST" envDefault:"100"`
	RedisURL    string        `env:"REDIS_URL"`
}

// AlertConfig holds the optional operator alert channels.
type AlertConfig struct {
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `env:"TELEGRAM_CHAT_ID"`

	TwilioAccountSID string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber string `env:"TWILIO_FROM_NUMBER"`
	SMSTo            string `env:"ALERT_SMS_TO"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	envLocations := []string{".env"}

	// If ENV is set, try to load that specific file first
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		// godotenv.Load never overrides variables that are already set,
		// so the more specific file wins when both exist.
		_ = godotenv.Load(loc)
	}

	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.RateLimit.FormLimit <= 0 {
		return fmt.Errorf("FORM_RATE_LIMIT must be positive, got %d", c.RateLimit.FormLimit)
	}
	if c.RateLimit.FormWindow <= 0 {
		return fmt.Errorf("FORM_RATE_WINDOW must be positive, got %s", c.RateLimit.FormWindow)
	}
	switch strings.ToLower(c.Mail.Provider) {
	case "smtp", "sendgrid", "postmark", "dev":
	default:
		return fmt.Errorf("unknown MAIL_PROVIDER %q", c.Mail.Provider)
	}
	return nil
}
