package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftstatic/swiftstatic/internal/submission"
)

type recordingUI struct {
	mu      sync.Mutex
	busy    []bool
	marked  [][]string
	opened  []string
	success []submission.Kind
	openErr error
}

func (r *recordingUI) SetBusy(b bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.busy = append(r.busy, b)
}

func (r *recordingUI) MarkInvalid(fields []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.marked = append(r.marked, fields)
}

func (r *recordingUI) Open(u string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opened = append(r.opened, u)
	return r.openErr
}

func (r *recordingUI) ShowSuccess(kind submission.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success = append(r.success, kind)
}

func (r *recordingUI) ui() UI {
	return UI{Control: r, Fields: r, Opener: r, Success: r}
}

type recordingDisplay struct {
	mu      sync.Mutex
	shown   []Toast
	removed []Toast
}

func (d *recordingDisplay) Show(t Toast) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shown = append(d.shown, t)
}

func (d *recordingDisplay) Remove(t Toast) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.removed = append(d.removed, t)
}

func (d *recordingDisplay) last() Toast {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shown[len(d.shown)-1]
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *recordingUI, *recordingDisplay, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	ui := &recordingUI{}
	display := &recordingDisplay{}
	c := New(srv.URL,
		WithUI(ui.ui()),
		WithToaster(NewToaster(display, time.Hour)),
		WithHTTPClient(&http.Client{Timeout: 2 * time.Second}),
	)
	return c, ui, display, &hits
}

func contact() *submission.ContactRequest {
	return &submission.ContactRequest{Name: "Ann", Email: "ann@x.co", Plan: "Growth", Subject: "Hi", Message: "Test"}
}

func booking() *submission.BookingRequest {
	return &submission.BookingRequest{Name: "Ann", Email: "ann@x.co", Service: "Redesign", Date: "2026-11-02", Time: "10:00", Message: "Call me & soon"}
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestSubmitDelivered(t *testing.T) {
	var got map[string]string
	c, ui, display, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/contact", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		respond(http.StatusOK, `{"ok":true,"message":"Message received!"}`)(w, r)
	})

	res := c.Submit(context.Background(), contact())
	assert.Equal(t, Delivered, res.Outcome)
	assert.Equal(t, "Message received!", res.Message)
	assert.Equal(t, "Growth", got["plan"])

	assert.Empty(t, ui.opened)
	assert.Equal(t, []bool{true, false}, ui.busy)
	assert.Equal(t, []submission.Kind{submission.KindContact}, ui.success)
	assert.Equal(t, "✅ Message sent! We'll reply within 24 hours.", display.last().Message)
}

func TestSubmitInvalidSendsNothing(t *testing.T) {
	c, ui, display, hits := newTestClient(t, respond(http.StatusOK, `{"ok":true}`))

	form := booking()
	form.Time = "  "
	form.Email = "ann@x"

	res := c.Submit(context.Background(), form)
	assert.Equal(t, Invalid, res.Outcome)
	assert.ElementsMatch(t, []string{"time", "email"}, res.Fields)
	assert.Zero(t, hits.Load())
	assert.Empty(t, ui.busy, "control untouched")
	assert.Empty(t, ui.success)

	toast := display.last()
	assert.Equal(t, LevelError, toast.Level)
	assert.Equal(t, "⚠️ Please fill in all required fields correctly.", toast.Message)
}

func TestSubmitFallbackCases(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"service unavailable", respond(http.StatusServiceUnavailable, `{"ok":false,"message":"Email service unavailable."}`)},
		{"rate limited", respond(http.StatusTooManyRequests, `{"ok":false,"message":"Too many requests"}`)},
		{"server validation", respond(http.StatusBadRequest, `{"ok":false,"message":"Missing required fields."}`)},
		{"html error page", respond(http.StatusBadGateway, `<html>bad gateway</html>`)},
		{"ok status garbage body", respond(http.StatusOK, `not json`)},
		{"ok status empty body", respond(http.StatusOK, ``)},
		{"ok status ok false", respond(http.StatusOK, `{"ok":false}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ui, display, hits := newTestClient(t, tt.handler)

			form := booking()
			res := c.Submit(context.Background(), form)
			assert.Equal(t, FallbackRequired, res.Outcome)
			assert.NotEmpty(t, res.Reason)
			assert.Equal(t, int32(1), hits.Load())

			require.Len(t, ui.opened, 1, "exactly one mailto")
			assert.Equal(t, res.Mailto, ui.opened[0])

			u, err := url.Parse(ui.opened[0])
			require.NoError(t, err)
			assert.Equal(t, "swiftstaticc@gmail.com", u.Opaque)
			q := u.Query()
			assert.Equal(t, "Free Call Booking: Ann", q.Get("subject"))
			for _, v := range []string{form.Name, form.Email, form.Service, form.Date, form.Time, form.Message} {
				assert.Contains(t, q.Get("body"), v)
			}

			assert.Equal(t, "📧 Opening email client to complete booking.", display.last().Message)
			assert.Equal(t, []submission.Kind{submission.KindBooking}, ui.success)
			assert.Equal(t, []bool{true, false}, ui.busy)
		})
	}
}

func TestSubmitNetworkErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	ui := &recordingUI{}
	c := New(base, WithUI(ui.ui()), WithMailto("hello@swiftstatic.dev"), WithSite("Swift"))

	res := c.Submit(context.Background(), contact())
	assert.Equal(t, FallbackRequired, res.Outcome)
	assert.Contains(t, res.Reason, "network error")

	require.Len(t, ui.opened, 1)
	u, err := url.Parse(ui.opened[0])
	require.NoError(t, err)
	assert.Equal(t, "hello@swiftstatic.dev", u.Opaque)
	assert.Equal(t, "[Swift Contact] Hi", u.Query().Get("subject"))
	assert.Equal(t, []bool{true, false}, ui.busy)
}

func TestSubmitOpenerFailureStillCompletes(t *testing.T) {
	c, ui, _, _ := newTestClient(t, respond(http.StatusServiceUnavailable, `{"ok":false}`))
	ui.openErr = errors.New("no mail client")

	res := c.Submit(context.Background(), contact())
	assert.Equal(t, FallbackRequired, res.Outcome)
	assert.Contains(t, res.Reason, "no mail client")
	assert.Len(t, ui.success, 1)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "invalid", Invalid.String())
	assert.Equal(t, "delivered", Delivered.String())
	assert.Equal(t, "fallback", FallbackRequired.String())
	assert.Equal(t, "Outcome(9)", Outcome(9).String())
}
