package notify

import (
	"context"

	"github.com/pairsentry/pairsentry/models"
)

// Event is one publishable evaluation result.
type Event struct {
	Pair models.PairData
	// Text is the rendered announcement, Telegram-flavoured HTML.
	Text string
}

// Channel is implemented by each publish target.
type Channel interface {
	Name() string
	IsConfigured() bool
	Send(ctx context.Context, evt Event) error
}
