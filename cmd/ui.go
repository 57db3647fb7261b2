package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pairsentry/pairsentry/internal/config"
	"github.com/pairsentry/pairsentry/internal/database"
	"github.com/pairsentry/pairsentry/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the terminal dashboard",
	Long:  `Opens the interactive terminal UI for browsing evaluated pairs and their risk reports.`,
	RunE:  runUI,
}

func runUI(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := database.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	app := tui.NewApp(cfg, store)
	return app.Run()
}
