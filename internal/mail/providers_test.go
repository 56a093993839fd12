package mail

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mrz1836/postmark"
	"github.com/sendgrid/sendgrid-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage() Message {
	return Message{
		FromName: "SwiftStatic Bot",
		From:     "bot@swiftstatic.dev",
		To:       "ops@swiftstatic.dev",
		ReplyTo:  "ann@x.co",
		Subject:  "[SwiftStatic Contact] Hi",
		HTML:     "<p>Test</p>",
		Tag:      "contact",
	}
}

func newSendGridTestSender(t *testing.T, handler http.HandlerFunc) *SendGridSender {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &SendGridSender{client: &sendgrid.Client{Request: sendgrid.GetRequest("sg-key", "/v3/mail/send", srv.URL)}}
}

func TestSendGridSend(t *testing.T) {
	var got map[string]any
	s := newSendGridTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		assert.Equal(t, "Bearer sg-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	})

	require.NoError(t, s.Send(context.Background(), testMessage()))

	assert.Equal(t, "[SwiftStatic Contact] Hi", got["subject"])
	assert.Equal(t, map[string]any{"email": "ann@x.co"}, got["reply_to"])
	assert.Equal(t, []any{"contact"}, got["categories"])
}

func TestSendGridErrorStatus(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			s := newSendGridTestSender(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				_, _ = io.WriteString(w, `{"errors":[{"message":"denied"}]}`)
			})

			err := s.Send(context.Background(), testMessage())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSendFailed))
			assert.Contains(t, err.Error(), "denied")
		})
	}
}

func newPostmarkTestSender(t *testing.T, handler http.HandlerFunc) *PostmarkSender {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := postmark.NewClient("pm-server", "pm-account")
	client.BaseURL = srv.URL
	return &PostmarkSender{client: client}
}

func TestPostmarkSend(t *testing.T) {
	var got map[string]any
	s := newPostmarkTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/email", r.URL.Path)
		assert.Equal(t, "pm-server", r.Header.Get("X-Postmark-Server-Token"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"To":"ops@swiftstatic.dev","SubmittedAt":"2026-10-19T10:00:00Z","MessageID":"b7bc2f4a","ErrorCode":0,"Message":"OK"}`)
	})

	require.NoError(t, s.Send(context.Background(), testMessage()))

	assert.Equal(t, `"SwiftStatic Bot" <bot@swiftstatic.dev>`, got["From"])
	assert.Equal(t, "ann@x.co", got["ReplyTo"])
	assert.Equal(t, "contact", got["Tag"])
	assert.Equal(t, "<p>Test</p>", got["HtmlBody"])
}

func TestPostmarkErrorCode(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"unprocessable", http.StatusUnprocessableEntity},
		{"ok status with error code", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newPostmarkTestSender(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, `{"ErrorCode":406,"Message":"You tried to send to a recipient that has been marked as inactive."}`)
			})

			err := s.Send(context.Background(), testMessage())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSendFailed))
		})
	}
}

func TestSMTPSendFailures(t *testing.T) {
	// A port nothing listens on
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	s := NewSMTPSender("127.0.0.1", port, "bot@swiftstatic.dev", "secret")

	t.Run("unreachable server", func(t *testing.T) {
		err := s.Send(context.Background(), testMessage())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSendFailed))
	})

	t.Run("bad recipient", func(t *testing.T) {
		msg := testMessage()
		msg.To = "not an address"
		err := s.Send(context.Background(), msg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSendFailed))
		assert.Contains(t, err.Error(), "invalid recipient")
	})

	t.Run("incomplete message", func(t *testing.T) {
		msg := testMessage()
		msg.HTML = ""
		assert.True(t, errors.Is(s.Send(context.Background(), msg), ErrSendFailed))
	})
}
