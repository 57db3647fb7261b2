package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pairsentry/pairsentry/internal/config"
)

// telegramPause is the pause after each send, keeping channel posts
// under the Bot API flood limits during a busy cycle.
const telegramPause = 2 * time.Second

// TelegramChannel publishes to a Telegram channel via the Bot API.
type TelegramChannel struct {
	cfg     config.TelegramConfig
	client  *http.Client
	baseURL string
	pause   time.Duration
}

// NewTelegram creates a TelegramChannel from cfg.
func NewTelegram(cfg config.TelegramConfig) *TelegramChannel {
	return &TelegramChannel{
		cfg:     cfg,
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://api.telegram.org",
		pause:   telegramPause,
	}
}

func (t *TelegramChannel) Name() string       { return "telegram" }
func (t *TelegramChannel) IsConfigured() bool { return t.cfg.BotToken != "" && t.cfg.ChannelID != "" }

func (t *TelegramChannel) Send(ctx context.Context, evt Event) error {
	if err := t.SendMessage(ctx, t.cfg.ChannelID, evt.Text); err != nil {
		return err
	}
	select {
	case <-time.After(t.pause):
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

// SendMessage posts text to one chat. Used both for channel publishes
// and for conversational replies from the bot loop.
func (t *TelegramChannel) SendMessage(ctx context.Context, chatID, text string) error {
	// Telegram max message length is 4096 chars.
	if len(text) > 4096 {
		text = text[:4093] + "..."
	}
	payload := map[string]any{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.cfg.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := t.client.Do(req) // #nosec G107 -- URL is the Telegram API base + user-configured bot token
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("telegram API returned %d", resp.StatusCode)
	}
	return nil
}
