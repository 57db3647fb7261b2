// Package tgbot runs the conversational Telegram bot: a getUpdates
// long-poll loop dispatching commands and free-text messages.
package tgbot

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pairsentry/pairsentry/internal/config"
	"github.com/pairsentry/pairsentry/internal/database"
	"github.com/pairsentry/pairsentry/internal/parse"
	"github.com/pairsentry/pairsentry/models"
)

const defaultPollTimeout = 30

// Sender posts a reply to one chat.
type Sender interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// Replier produces assistant replies for free-text messages.
type Replier interface {
	Available(ctx context.Context) bool
	Process(ctx context.Context, text string) (string, error)
}

// Bot is the long-polling update loop.
type Bot struct {
	cfg      config.TelegramConfig
	sender   Sender
	replier  Replier
	store    database.Store
	baseURL  string
	client   *http.Client
	offset   int64
	interval time.Duration
}

// New wires a Bot. replier may be nil; free-text messages then get a
// hint to configure the assistant.
func New(cfg config.TelegramConfig, sender Sender, replier Replier, store database.Store) *Bot {
	timeout := cfg.PollTimeoutSec
	if timeout <= 0 {
		timeout = defaultPollTimeout
	}
	return &Bot{
		cfg:     cfg,
		sender:  sender,
		replier: replier,
		store:   store,
		baseURL: "https://api.telegram.org",
		// The HTTP timeout must outlive the long-poll window.
		client:   &http.Client{Timeout: time.Duration(timeout+10) * time.Second},
		interval: time.Duration(timeout) * time.Second,
	}
}

// Run polls for updates until ctx is cancelled. Per-update errors are
// logged and never stop the loop.
func (b *Bot) Run(ctx context.Context) error {
	slog.Info("tgbot: starting update loop")
	for {
		select {
		case <-ctx.Done():
			slog.Info("tgbot: update loop stopped")
			return ctx.Err()
		default:
		}

		updates, err := b.getUpdates(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Warn("tgbot: getUpdates failed, retrying", "error", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= b.offset {
				b.offset = u.UpdateID + 1
			}
			if u.Message == nil || u.Message.Text == "" {
				continue
			}
			if err := b.handleMessage(ctx, u.Message); err != nil {
				slog.Warn("tgbot: message handling failed", "chat", u.Message.Chat.ID, "error", err)
			}
		}
	}
}

type update struct {
	UpdateID int64    `json:"update_id"`
	Message  *message `json:"message"`
}

type message struct {
	Text string `json:"text"`
	Chat struct {
		ID int64 `json:"id"`
	} `json:"chat"`
	From struct {
		FirstName string `json:"first_name"`
	} `json:"from"`
}

type updatesResponse struct {
	OK          bool     `json:"ok"`
	Description string   `json:"description"`
	Result      []update `json:"result"`
}

func (b *Bot) getUpdates(ctx context.Context) ([]update, error) {
	url := fmt.Sprintf("%s/bot%s/getUpdates?timeout=%d&offset=%d",
		b.baseURL, b.cfg.BotToken, int(b.interval.Seconds()), b.offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}
	var decoded updatesResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode updates: %w", err)
	}
	if !decoded.OK {
		return nil, fmt.Errorf("telegram API: %s", decoded.Description)
	}
	return decoded.Result, nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *message) error {
	chatID := strconv.FormatInt(msg.Chat.ID, 10)
	text := strings.TrimSpace(msg.Text)

	if strings.HasPrefix(text, "/") {
		cmd := strings.ToLower(strings.Fields(text)[0])
		// Commands may carry a bot-name suffix in groups.
		if i := strings.Index(cmd, "@"); i > 0 {
			cmd = cmd[:i]
		}
		return b.handleCommand(ctx, chatID, cmd, msg)
	}

	if b.replier == nil || !b.replier.Available(ctx) {
		return b.sender.SendMessage(ctx, chatID,
			"The assistant is not configured. Run <code>pairsentry onboard</code> to add a Gemini API key, or use /help.")
	}
	reply, err := b.replier.Process(ctx, text)
	if err != nil {
		if sendErr := b.sender.SendMessage(ctx, chatID, "Sorry, I could not process that right now."); sendErr != nil {
			return sendErr
		}
		return err
	}
	return b.sender.SendMessage(ctx, chatID, reply)
}

func (b *Bot) handleCommand(ctx context.Context, chatID, cmd string, msg *message) error {
	switch cmd {
	case "/start":
		name := msg.From.FirstName
		if name == "" {
			name = "there"
		}
		return b.sender.SendMessage(ctx, chatID, fmt.Sprintf(
			"Hi %s! 👋 I watch newly listed Solana pairs, score their security and publish the clean ones.\nUse /help to see what I can do.",
			html.EscapeString(name)))
	case "/help":
		return b.sender.SendMessage(ctx, chatID, helpText)
	case "/info":
		return b.sender.SendMessage(ctx, chatID, infoText)
	case "/trends":
		return b.sendTrends(ctx, chatID)
	case "/support":
		return b.sender.SendMessage(ctx, chatID, supportText)
	default:
		return b.sender.SendMessage(ctx, chatID, "Unknown command. Use /help to see what I understand.")
	}
}

const helpText = `<b>Commands</b>
/start — introduction
/info — how pairs are evaluated
/trends — recently evaluated pairs
/support — get help
Anything else — ask me about tracked pairs in plain language.`

const infoText = `I monitor newly listed Solana pairs from Dexscreener.
Each pair's on-chain security indicators are collected from Birdeye and GoPlus,
weighted by severity and reduced to a 0-100 score.
Only pairs scoring above the publish threshold are announced to the channel.`

const supportText = `Questions or a misbehaving bot? Open an issue at
https://github.com/pairsentry/pairsentry/issues`

func (b *Bot) sendTrends(ctx context.Context, chatID string) error {
	if b.store == nil {
		return b.sender.SendMessage(ctx, chatID, "Pair storage is not configured.")
	}
	pairs, err := b.store.RecentPairs(ctx, 10)
	if err != nil {
		if sendErr := b.sender.SendMessage(ctx, chatID, "Could not read recent pairs."); sendErr != nil {
			return sendErr
		}
		return err
	}
	if len(pairs) == 0 {
		return b.sender.SendMessage(ctx, chatID, "No pairs evaluated yet. Run <code>pairsentry watch</code> first.")
	}

	var sb strings.Builder
	sb.WriteString("<b>Recently evaluated pairs</b>\n")
	for _, p := range pairs {
		sb.WriteString(formatTrendLine(p))
	}
	return b.sender.SendMessage(ctx, chatID, sb.String())
}

func formatTrendLine(p models.PairData) string {
	score := "n/a"
	if s := p.SecurityScore(); s != nil {
		score = fmt.Sprintf("%.1f", *s)
	}
	return fmt.Sprintf("· %s — $%s liq, %s old, score %s\n",
		html.EscapeString(p.Token), parse.FormatMoney(p.Liquidity), parse.FormatMinutes(p.AgeMinutes), score)
}
