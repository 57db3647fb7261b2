package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pairsentry/pairsentry/internal/assistant"
	"github.com/pairsentry/pairsentry/internal/config"
	"github.com/pairsentry/pairsentry/internal/database"
	"github.com/pairsentry/pairsentry/internal/dataset"
	"github.com/pairsentry/pairsentry/internal/notify"
	"github.com/pairsentry/pairsentry/internal/tgbot"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the conversational Telegram bot",
	Long: `Starts the long-polling Telegram bot. Users can ask about tracked
pairs in plain language (requires a Gemini API key) or use commands
like /trends and /info. Runs until interrupted.`,
	RunE: runBot,
}

func runBot(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.Telegram.BotToken == "" {
		return fmt.Errorf("telegram bot token not configured — run 'pairsentry onboard'")
	}

	store, err := database.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	processor := assistant.NewProcessor(
		assistant.NewGemini(cfg.Gemini),
		assistant.NewTranslator(),
		dataset.New(cfg.Dataset.Path),
		cfg.Gemini,
	)

	sender := notify.NewTelegram(cfg.Telegram)
	bot := tgbot.New(cfg.Telegram, sender, processor, store)

	if err := bot.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
