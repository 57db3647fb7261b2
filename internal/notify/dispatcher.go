package notify

import (
	"context"
	"log/slog"

	"github.com/pairsentry/pairsentry/internal/config"
)

// Dispatcher fans out events to all configured channels.
type Dispatcher struct {
	channels []Channel
}

// NewDispatcher creates a Dispatcher from the given config.
// Only channels with IsConfigured() == true are active.
func NewDispatcher(cfg config.Config) *Dispatcher {
	d := &Dispatcher{}
	channels := []Channel{
		NewTelegram(cfg.Telegram),
		NewWebhook(cfg.Notify),
	}
	for _, ch := range channels {
		if ch.IsConfigured() {
			d.channels = append(d.channels, ch)
		}
	}
	return d
}

// NewDispatcherWith builds a Dispatcher over an explicit channel list.
// Used by tests and by callers that construct channels themselves.
func NewDispatcherWith(channels ...Channel) *Dispatcher {
	d := &Dispatcher{}
	for _, ch := range channels {
		if ch.IsConfigured() {
			d.channels = append(d.channels, ch)
		}
	}
	return d
}

// IsAnyConfigured returns true if at least one channel is ready to send.
func (d *Dispatcher) IsAnyConfigured() bool {
	return len(d.channels) > 0
}

// Notify sends evt to all configured channels. Errors are logged but
// never returned; one failed channel must not block the others.
func (d *Dispatcher) Notify(ctx context.Context, evt Event) {
	for _, ch := range d.channels {
		if err := ch.Send(ctx, evt); err != nil {
			slog.Warn("notify: channel send failed", "channel", ch.Name(), "pair", evt.Pair.Token, "error", err)
		}
	}
}
