package tgbot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pairsentry/pairsentry/internal/config"
	"github.com/pairsentry/pairsentry/models"
)

type stubSender struct {
	sent []string
	err  error
}

func (s *stubSender) SendMessage(ctx context.Context, chatID, text string) error {
	s.sent = append(s.sent, text)
	return s.err
}

type stubReplier struct {
	available bool
	reply     string
	err       error
	asked     []string
}

func (s *stubReplier) Available(ctx context.Context) bool { return s.available }

func (s *stubReplier) Process(ctx context.Context, text string) (string, error) {
	s.asked = append(s.asked, text)
	return s.reply, s.err
}

type stubStore struct {
	pairs []models.PairData
	err   error
}

func (s *stubStore) SavePair(ctx context.Context, pair models.PairData) error { return nil }

func (s *stubStore) RecentPairs(ctx context.Context, limit int) ([]models.PairData, error) {
	return s.pairs, s.err
}

func (s *stubStore) FindPair(ctx context.Context, token string) (*models.PairData, error) {
	return nil, nil
}

func (s *stubStore) Migrate(ctx context.Context) error { return nil }
func (s *stubStore) Ping(ctx context.Context) error    { return nil }
func (s *stubStore) Close() error                      { return nil }
func (s *stubStore) Driver() string                    { return "stub" }

func chatMessage(text string) *message {
	m := &message{Text: text}
	m.Chat.ID = 42
	m.From.FirstName = "Ada"
	return m
}

func TestHandleCommandStart(t *testing.T) {
	sender := &stubSender{}
	b := New(config.TelegramConfig{BotToken: "t"}, sender, nil, nil)

	require.NoError(t, b.handleMessage(context.Background(), chatMessage("/start")))
	require.Len(t, sender.sent, 1)
	require.Contains(t, sender.sent[0], "Hi Ada!")
}

func TestHandleCommandStripsBotSuffix(t *testing.T) {
	sender := &stubSender{}
	b := New(config.TelegramConfig{BotToken: "t"}, sender, nil, nil)

	require.NoError(t, b.handleMessage(context.Background(), chatMessage("/help@pairsentry_bot")))
	require.Len(t, sender.sent, 1)
	require.Contains(t, sender.sent[0], "Commands")
}

func TestHandleCommandTrends(t *testing.T) {
	score := 99.1
	profile := models.NewSecurityProfile()
	profile.Score = &score
	store := &stubStore{pairs: []models.PairData{
		{Token: "BONK/SOL", Liquidity: 18000, AgeMinutes: 95, Security: profile},
	}}
	sender := &stubSender{}
	b := New(config.TelegramConfig{BotToken: "t"}, sender, nil, store)

	require.NoError(t, b.handleMessage(context.Background(), chatMessage("/trends")))
	require.Len(t, sender.sent, 1)
	require.Contains(t, sender.sent[0], "BONK/SOL")
	require.Contains(t, sender.sent[0], "score 99.1")
}

func TestHandleCommandTrendsEmpty(t *testing.T) {
	sender := &stubSender{}
	b := New(config.TelegramConfig{BotToken: "t"}, sender, nil, &stubStore{})

	require.NoError(t, b.handleMessage(context.Background(), chatMessage("/trends")))
	require.Contains(t, sender.sent[0], "No pairs evaluated yet")
}

func TestHandleCommandUnknown(t *testing.T) {
	sender := &stubSender{}
	b := New(config.TelegramConfig{BotToken: "t"}, sender, nil, nil)

	require.NoError(t, b.handleMessage(context.Background(), chatMessage("/frobnicate")))
	require.Contains(t, sender.sent[0], "Unknown command")
}

func TestFreeTextGoesToReplier(t *testing.T) {
	sender := &stubSender{}
	replier := &stubReplier{available: true, reply: "BONK looks fine."}
	b := New(config.TelegramConfig{BotToken: "t"}, sender, replier, nil)

	require.NoError(t, b.handleMessage(context.Background(), chatMessage("is BONK safe")))
	require.Equal(t, []string{"is BONK safe"}, replier.asked)
	require.Equal(t, []string{"BONK looks fine."}, sender.sent)
}

func TestFreeTextWithoutAssistant(t *testing.T) {
	sender := &stubSender{}
	b := New(config.TelegramConfig{BotToken: "t"}, sender, nil, nil)

	require.NoError(t, b.handleMessage(context.Background(), chatMessage("hello")))
	require.Contains(t, sender.sent[0], "assistant is not configured")
}

func TestFreeTextReplierFailureStillAnswers(t *testing.T) {
	sender := &stubSender{}
	replier := &stubReplier{available: true, err: errors.New("quota")}
	b := New(config.TelegramConfig{BotToken: "t"}, sender, replier, nil)

	err := b.handleMessage(context.Background(), chatMessage("hello"))
	require.Error(t, err)
	require.Contains(t, sender.sent[0], "could not process")
}

func TestGetUpdatesAdvancesOffset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bott/getUpdates", r.URL.Path)
		w.Write([]byte(`{"ok": true, "result": [
			{"update_id": 7, "message": {"text": "hi", "chat": {"id": 1}}},
			{"update_id": 8, "message": {"text": "yo", "chat": {"id": 1}}}
		]}`))
	}))
	defer srv.Close()

	b := New(config.TelegramConfig{BotToken: "t", PollTimeoutSec: 1}, &stubSender{}, nil, nil)
	b.baseURL = srv.URL

	updates, err := b.getUpdates(context.Background())
	require.NoError(t, err)
	require.Len(t, updates, 2)

	for _, u := range updates {
		if u.UpdateID >= b.offset {
			b.offset = u.UpdateID + 1
		}
	}
	require.Equal(t, int64(9), b.offset)
}

func TestGetUpdatesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok": false, "description": "Unauthorized"}`))
	}))
	defer srv.Close()

	b := New(config.TelegramConfig{BotToken: "t", PollTimeoutSec: 1}, &stubSender{}, nil, nil)
	b.baseURL = srv.URL

	_, err := b.getUpdates(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "Unauthorized")
}
