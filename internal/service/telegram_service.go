package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/swiftstatic/swiftstatic/internal/submission"
)

const telegramAPI = "https://api.telegram.org"

// TelegramAlerter posts a short notice about each delivered submission to a chat.
type TelegramAlerter struct {
	botToken string
	chatID   string
	apiBase  string
	client   *http.Client
}

// NewTelegramAlerter returns nil when the bot token or chat ID is missing.
func NewTelegramAlerter(botToken, chatID string) *TelegramAlerter {
	if botToken == "" || chatID == "" {
		return nil
	}
	return &TelegramAlerter{
		botToken: botToken,
		chatID:   chatID,
		apiBase:  telegramAPI,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// telegramMessage represents a Telegram API message
type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

func (s *TelegramAlerter) Name() string { return "telegram" }

func (s *TelegramAlerter) Alert(ctx context.Context, form submission.Form) error {
	text := fmt.Sprintf("🆕 <b>New %s submission</b>\n\n%s", form.Kind(), submission.Escape(form.Summary()))

	jsonData, err := json.Marshal(telegramMessage{
		ChatID:    s.chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal telegram message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}
	return nil
}
