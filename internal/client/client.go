// Package client submits forms the way the site's script does: validate
// locally, POST to the API, and fall back to a mailto: draft whenever the
// server cannot confirm delivery.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/swiftstatic/swiftstatic/internal/submission"
)

const (
	DefaultTimeout = 15 * time.Second
	DefaultMailto  = "swiftstaticc@gmail.com"
	DefaultSite    = "SwiftStatic"

	// maxResponseBytes bounds how much of a reply is read.
	maxResponseBytes = 64 << 10
)

// Outcome is how a submission ended.
type Outcome int

const (
	Invalid Outcome = iota
	Delivered
	FallbackRequired
)

func (o Outcome) String() string {
	switch o {
	case Invalid:
		return "invalid"
	case Delivered:
		return "delivered"
	case FallbackRequired:
		return "fallback"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result describes a finished submission.
type Result struct {
	Outcome Outcome
	// Fields that failed local validation
	Fields []string
	// Message is the server's reply when there was one
	Message string
	// Reason explains why the fallback was needed
	Reason string
	// Mailto is the draft that was opened on fallback
	Mailto string
}

type Client struct {
	baseURL string
	http    *http.Client
	mailto  string
	site    string
	toaster *Toaster
	ui      UI
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithMailto(address string) Option {
	return func(c *Client) { c.mailto = address }
}

func WithSite(name string) Option {
	return func(c *Client) { c.site = name }
}

func WithUI(ui UI) Option {
	return func(c *Client) { c.ui = ui }
}

func WithToaster(t *Toaster) Option {
	return func(c *Client) { c.toaster = t }
}

// New returns a client posting to baseURL, e.g. "https://swiftstatic.dev".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		mailto:  DefaultMailto,
		site:    DefaultSite,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.ui = c.ui.withDefaults()
	if c.toaster == nil {
		c.toaster = NewToaster(noopDisplay{}, ToastTTL)
	}
	return c
}

// Submit runs one submission end to end. It never returns an error: every
// failure past local validation ends in FallbackRequired.
func (c *Client) Submit(ctx context.Context, form submission.Form) Result {
	msgs := messagesFor(form.Kind())

	form.Normalize()
	if err := form.Validate(); err != nil {
		var fields []string
		var verr *submission.ValidationError
		if errors.As(err, &verr) {
			fields = verr.Fields
		}
		c.ui.Fields.MarkInvalid(fields)
		c.toaster.Show(msgInvalid, LevelError)
		return Result{Outcome: Invalid, Fields: fields}
	}
	c.ui.Fields.MarkInvalid(nil)

	c.ui.Control.SetBusy(true)
	defer c.ui.Control.SetBusy(false)

	res := c.deliver(ctx, form)
	if res.Outcome == Delivered {
		c.toaster.Show(msgs.delivered, LevelSuccess)
		c.ui.Success.ShowSuccess(form.Kind())
		return res
	}

	res.Mailto = form.Mailto(c.mailto, c.site)
	if err := c.ui.Opener.Open(res.Mailto); err != nil {
		res.Reason = fmt.Sprintf("%s; opening mail client: %v", res.Reason, err)
	}
	c.toaster.Show(msgs.fallback, LevelSuccess)
	c.ui.Success.ShowSuccess(form.Kind())
	return res
}

type reply struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// deliver reports Delivered only for a 2xx whose body decodes to {ok:true}.
func (c *Client) deliver(ctx context.Context, form submission.Form) Result {
	body, err := json.Marshal(form)
	if err != nil {
		return fallback("encode request: " + err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+form.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return fallback("build request: " + err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fallback("network error: " + err.Error())
	}
	defer resp.Body.Close()

	var r reply
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&r)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		res := fallback(fmt.Sprintf("server returned %d", resp.StatusCode))
		if decodeErr == nil {
			res.Message = r.Message
		}
		return res
	}
	if decodeErr != nil {
		return fallback("malformed response: " + decodeErr.Error())
	}
	if !r.OK {
		res := fallback("server did not confirm delivery")
		res.Message = r.Message
		return res
	}
	return Result{Outcome: Delivered, Message: r.Message}
}

func fallback(reason string) Result {
	return Result{Outcome: FallbackRequired, Reason: reason}
}
