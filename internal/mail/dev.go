package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DevSender writes each message to dir as an .html body plus a .json envelope.
type DevSender struct {
	dir string
}

func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir}
}

type devEnvelope struct {
	ID       string `json:"id"`
	SentAt   string `json:"sent_at"`
	From     string `json:"from"`
	To       string `json:"to"`
	ReplyTo  string `json:"reply_to,omitempty"`
	Subject  string `json:"subject"`
	Tag      string `json:"tag,omitempty"`
	HTMLFile string `json:"html_file"`
}

func (d *DevSender) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrSendFailed, d.dir, err)
	}

	now := time.Now()
	id := uuid.NewString()
	label := msg.Tag
	if label == "" {
		label = msg.Subject
	}
	base := fmt.Sprintf("%s_%s_%s", now.Format("20060102_150405"), slug(label), id[:8])

	htmlFile := base + ".html"
	if err := os.WriteFile(filepath.Join(d.dir, htmlFile), []byte(msg.HTML), 0o644); err != nil {
		return fmt.Errorf("%w: write body: %v", ErrSendFailed, err)
	}

	data, err := json.MarshalIndent(devEnvelope{
		ID:       id,
		SentAt:   now.Format(time.RFC3339),
		From:     fmt.Sprintf("%s <%s>", msg.FromName, msg.From),
		To:       msg.To,
		ReplyTo:  msg.ReplyTo,
		Subject:  msg.Subject,
		Tag:      msg.Tag,
		HTMLFile: htmlFile,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode envelope: %v", ErrSendFailed, err)
	}
	if err := os.WriteFile(filepath.Join(d.dir, base+".json"), data, 0o644); err != nil {
		return fmt.Errorf("%w: write envelope: %v", ErrSendFailed, err)
	}
	return nil
}

func (d *DevSender) Verify(ctx context.Context) error {
	return os.MkdirAll(d.dir, 0o755)
}

var unsafeFilename = regexp.MustCompile(`[^a-z0-9_.-]+`)

func slug(s string) string {
	s = unsafeFilename.ReplaceAllString(strings.ToLower(strings.ReplaceAll(s, " ", "_")), "")
	if len(s) > 60 {
		s = s[:60]
	}
	if s == "" {
		return "email"
	}
	return s
}
