package mail

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftstatic/swiftstatic/internal/config"
)

func TestNewMissingCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MailConfig
	}{
		{"smtp without password", config.MailConfig{Provider: "smtp", User: "bot@x.co"}},
		{"smtp without user", config.MailConfig{Provider: "smtp", Password: "secret"}},
		{"sendgrid without key", config.MailConfig{Provider: "sendgrid", User: "bot@x.co"}},
		{"postmark without token", config.MailConfig{Provider: "postmark", User: "bot@x.co"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.cfg)
			require.NoError(t, err)
			assert.True(t, IsDisabled(s))

			err = s.Send(context.Background(), Message{})
			assert.True(t, errors.Is(err, ErrNotConfigured))
		})
	}
}

func TestNewProviders(t *testing.T) {
	s, err := New(config.MailConfig{Provider: "smtp", User: "bot@x.co", Password: "p", SMTPHost: "smtp.gmail.com", SMTPPort: 587})
	require.NoError(t, err)
	assert.IsType(t, &SMTPSender{}, s)

	s, err = New(config.MailConfig{Provider: "SendGrid", User: "bot@x.co", SendGridAPIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &SendGridSender{}, s)

	s, err = New(config.MailConfig{Provider: "postmark", User: "bot@x.co", PostmarkServerToken: "t"})
	require.NoError(t, err)
	assert.IsType(t, &PostmarkSender{}, s)

	s, err = New(config.MailConfig{Provider: "dev", DevDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &DevSender{}, s)
	assert.False(t, IsDisabled(s))

	_, err = New(config.MailConfig{Provider: "pigeon"})
	assert.Error(t, err)
}

func TestMessageValidate(t *testing.T) {
	err := NewDevSender(t.TempDir()).Send(context.Background(), Message{From: "bot@x.co", To: "ops@x.co", Subject: "Hi"})
	assert.True(t, errors.Is(err, ErrSendFailed))
}

func TestDevSenderWritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "mail")
	s := NewDevSender(dir)

	msg := Message{
		FromName: "SwiftStatic Bot",
		From:     "bot@x.co",
		To:       "ops@x.co",
		ReplyTo:  "ann@x.co",
		Subject:  "[SwiftStatic Contact] Hi",
		HTML:     "<p>Hello</p>",
		Tag:      "contact",
	}
	require.NoError(t, s.Send(context.Background(), msg))
	require.NoError(t, s.Send(context.Background(), msg))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 4, "two sends in the same second must not collide")

	for _, e := range entries {
		assert.Contains(t, e.Name(), "_contact_")
		if !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)

		var env devEnvelope
		require.NoError(t, json.Unmarshal(data, &env))
		assert.Equal(t, "ops@x.co", env.To)
		assert.Equal(t, "ann@x.co", env.ReplyTo)
		assert.Equal(t, msg.Subject, env.Subject)

		body, err := os.ReadFile(filepath.Join(dir, env.HTMLFile))
		require.NoError(t, err)
		assert.Equal(t, msg.HTML, string(body))
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "swiftstatic_contact_hi", slug("[SwiftStatic Contact] Hi"))
	assert.Equal(t, "email", slug("!!!"))
	assert.Len(t, slug(strings.Repeat("a", 200)), 60)
}
