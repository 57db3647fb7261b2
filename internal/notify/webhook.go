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

// WebhookChannel POSTs published pairs to a generic HTTP endpoint.
type WebhookChannel struct {
	cfg    config.NotifyConfig
	client *http.Client
}

// NewWebhook creates a WebhookChannel from cfg.
func NewWebhook(cfg config.NotifyConfig) *WebhookChannel {
	return &WebhookChannel{cfg: cfg, client: &http.Client{Timeout: 5 * time.Second}}
}

func (w *WebhookChannel) Name() string       { return "webhook" }
func (w *WebhookChannel) IsConfigured() bool { return w.cfg.WebhookURL != "" }

func (w *WebhookChannel) Send(ctx context.Context, evt Event) error {
	payload := map[string]any{
		"token":       evt.Pair.Token,
		"address":     evt.Pair.Address,
		"price":       evt.Pair.Price,
		"age_minutes": evt.Pair.AgeMinutes,
		"liquidity":   evt.Pair.Liquidity,
		"market_cap":  evt.Pair.MarketCap,
		"score":       evt.Pair.SecurityScore(),
		"ts":          time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.WebhookURL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := w.client.Do(req) // #nosec G107 -- URL is a user-configured webhook endpoint
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}
