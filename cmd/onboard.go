package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pairsentry/pairsentry/internal/config"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Interactive setup wizard for pairsentry",
	Long: `Walks you through configuring pairsentry:
  - Telegram bot credentials and publish channel
  - Security data providers (Birdeye key; GoPlus needs none)
  - Gemini API key (optional — enables the conversational bot)
  - Storage backend and watch settings

Without a Gemini key the bot still answers commands; free-text chat
is disabled.`,
	RunE: runOnboard,
}

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#7C3AED")).
	MarginBottom(1)

var successStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#10B981"))

var warnStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#F59E0B"))

var dimStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#6B7280"))

func runOnboard(cmd *cobra.Command, args []string) error {
	fmt.Println()
	fmt.Println(headerStyle.Render("  pairsentry — Solana pair security monitor"))
	fmt.Println(dimStyle.Render("  Scores newly listed pairs and publishes the clean ones to Telegram.\n"))

	// Load existing config or start fresh.
	cfg, err := config.Load(cfgFile)
	if err != nil {
		cfg = &config.Config{}
	}

	// --- Step 1: Telegram ---
	fmt.Println(headerStyle.Render("  Step 1/4 · Telegram"))
	fmt.Println(dimStyle.Render("  The bot token comes from @BotFather. The channel is where"))
	fmt.Println(dimStyle.Render("  qualifying pairs get published; the bot must be an admin there.\n"))

	telegramForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Telegram bot token").
				Placeholder("123456:ABC-DEF...").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Telegram.BotToken),
			huh.NewInput().
				Title("Publish channel (leave blank to disable publishing)").
				Description("Channel username like @mypairs or a numeric chat ID.").
				Placeholder("@mypairs").
				Value(&cfg.Telegram.ChannelID),
		),
	)
	if err := telegramForm.Run(); err != nil {
		return err
	}

	// --- Step 2: Security providers ---
	fmt.Println(headerStyle.Render("  Step 2/4 · Security providers"))
	fmt.Println(dimStyle.Render("  GoPlus is public and always on. Birdeye needs an API key from"))
	fmt.Println(dimStyle.Render("  bds.birdeye.so and adds a second opinion per indicator.\n"))

	providerForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Birdeye API key (leave blank to skip)").
				Placeholder("(optional)").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Providers.BirdeyeAPIKey),
		),
	)
	if err := providerForm.Run(); err != nil {
		return err
	}

	// --- Step 3: Gemini assistant (optional) ---
	fmt.Println(headerStyle.Render("  Step 3/4 · Gemini assistant (optional)"))
	fmt.Println(dimStyle.Render("  Enables free-text chat with the bot. Get a key at"))
	fmt.Println(dimStyle.Render("  aistudio.google.com → API keys. Leave blank for command-only mode.\n"))

	model := cfg.Gemini.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	geminiForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Gemini API key (leave blank to skip)").
				Placeholder("AIza...  (optional)").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Gemini.APIKey),
			huh.NewSelect[string]().
				Title("Model").
				Options(
					huh.NewOption("gemini-2.0-flash (fast, default)", "gemini-2.0-flash"),
					huh.NewOption("gemini-2.0-flash-lite (cheapest)", "gemini-2.0-flash-lite"),
					huh.NewOption("gemini-2.5-flash", "gemini-2.5-flash"),
					huh.NewOption("gemini-2.5-pro (highest quality)", "gemini-2.5-pro"),
				).
				Value(&model),
		),
	)
	if err := geminiForm.Run(); err != nil {
		return err
	}
	cfg.Gemini.Model = model

	// --- Step 4: Storage and watch settings ---
	fmt.Println(headerStyle.Render("  Step 4/4 · Storage and watch settings"))

	driver := cfg.Database.Driver
	if driver == "" {
		driver = "sqlite"
	}
	threshold := formatFloat(cfg.Watch.PublishThreshold, 98.0)
	minLiquidity := formatFloat(cfg.Watch.MinLiquidity, 2000.0)

	watchForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Database backend").
				Options(
					huh.NewOption("SQLite (local file, default)", "sqlite"),
					huh.NewOption("MySQL", "mysql"),
				).
				Value(&driver),
			huh.NewInput().
				Title("MySQL DSN (only for MySQL)").
				Placeholder("user:pass@tcp(host:3306)/pairsentry").
				Value(&cfg.Database.DSN),
			huh.NewInput().
				Title("Publish threshold (0-100)").
				Description("Pairs must score strictly above this to be published.").
				Value(&threshold).
				Validate(validateFloat),
			huh.NewInput().
				Title("Minimum liquidity (USD)").
				Value(&minLiquidity).
				Validate(validateFloat),
			huh.NewInput().
				Title("Cron schedule (leave blank for one-shot watch)").
				Placeholder("*/10 * * * *").
				Value(&cfg.Watch.Schedule),
		),
	)
	if err := watchForm.Run(); err != nil {
		return err
	}

	cfg.Database.Driver = driver
	cfg.Watch.PublishThreshold, _ = strconv.ParseFloat(threshold, 64)
	cfg.Watch.MinLiquidity, _ = strconv.ParseFloat(minLiquidity, 64)

	if err := config.Save(cfg, cfgFile); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	path, _ := config.ConfigPath(cfgFile)
	fmt.Println()
	fmt.Println(successStyle.Render("  Configuration saved to " + path))
	fmt.Println(dimStyle.Render("  Next steps:"))
	fmt.Println(dimStyle.Render("    pairsentry doctor     verify everything works"))
	fmt.Println(dimStyle.Render("    pairsentry watch      run an evaluation cycle"))
	fmt.Println(dimStyle.Render("    pairsentry bot        start the conversational bot"))
	fmt.Println()
	return nil
}

func formatFloat(v, fallback float64) string {
	if v == 0 {
		v = fallback
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func validateFloat(s string) error {
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("enter a number")
	}
	return nil
}
