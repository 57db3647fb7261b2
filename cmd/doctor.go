package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pairsentry/pairsentry/internal/assistant"
	"github.com/pairsentry/pairsentry/internal/config"
	"github.com/pairsentry/pairsentry/internal/database"
	"github.com/pairsentry/pairsentry/internal/providers/birdeye"
	"github.com/pairsentry/pairsentry/internal/providers/goplus"
	"github.com/pairsentry/pairsentry/internal/risk"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Verify credentials, storage, and provider reachability",
	Long: `Checks that the weight table loads, the database can be reached,
the Telegram and provider credentials are set, and the Gemini API
responds.`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	allOK := true

	fmt.Println("=== pairsentry doctor ===")
	fmt.Println()

	// Check weight table
	fmt.Print("Weight table ............. ")
	table, err := risk.Load()
	if err != nil {
		fmt.Printf("FAIL (%s)\n", err)
		allOK = false
	} else {
		fmt.Printf("OK (%d indicators, max score %.2f)\n", table.Len(), table.MaxScore())
	}

	// Check database
	fmt.Print("Database ................. ")
	store, err := database.New(cfg.Database)
	if err != nil {
		fmt.Printf("FAIL (%s)\n", err)
		allOK = false
	} else {
		if err := store.Ping(ctx); err != nil {
			fmt.Printf("FAIL (%s)\n", err)
			allOK = false
		} else {
			fmt.Printf("OK (%s: %s)\n", store.Driver(), cfg.Database.Path)
		}
		store.Close()
	}

	// Check Telegram credentials
	fmt.Print("Telegram ................. ")
	switch {
	case cfg.Telegram.BotToken == "":
		fmt.Println("WARN (bot token missing — run 'pairsentry onboard')")
		allOK = false
	case cfg.Telegram.ChannelID == "":
		fmt.Println("WARN (channel not set — publishing disabled)")
	default:
		fmt.Printf("OK (channel %s)\n", cfg.Telegram.ChannelID)
	}

	// Check security providers
	fmt.Print("Birdeye .................. ")
	be := birdeye.New(cfg.Providers)
	if !be.Configured() {
		fmt.Println("disabled (no API key — GoPlus data only)")
	} else {
		fmt.Println("OK (API key set)")
	}

	fmt.Print("GoPlus ................... ")
	gp := goplus.New(cfg.Providers)
	if gp.Configured() {
		fmt.Println("OK (public API)")
	} else {
		fmt.Println("disabled")
	}
	if !be.Configured() && !gp.Configured() {
		fmt.Println("  WARN: no security provider active — pairs cannot be scored")
		allOK = false
	}

	// Check Gemini
	fmt.Print("Gemini assistant ......... ")
	gen := assistant.NewGemini(cfg.Gemini)
	switch {
	case cfg.Gemini.APIKey == "":
		fmt.Println("disabled (command-only bot — run 'pairsentry onboard' to enable chat)")
	case gen.IsAvailable(ctx):
		fmt.Printf("OK (%s)\n", cfg.Gemini.Model)
	default:
		fmt.Println("FAIL (API key set but model unreachable)")
		allOK = false
	}

	fmt.Println()
	if allOK {
		fmt.Println(successStyle.Render("All checks passed — pairsentry is ready!"))
	} else {
		fmt.Println(warnStyle.Render("Some checks failed — run 'pairsentry onboard' to fix."))
	}

	return nil
}
