package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	cfgFile string
	verbose bool
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pairsentry",
	Short: "Solana pair monitoring with security scoring and Telegram publishing",
	Long: `pairsentry watches newly listed Solana trading pairs, collects their
on-chain security indicators from Birdeye and GoPlus, reduces them to a
0-100 score and publishes the pairs that pass the threshold to a
Telegram channel.

Get started:
  pairsentry onboard    Interactive setup wizard
  pairsentry doctor     Verify credentials and storage
  pairsentry watch      Run an evaluation cycle (or --schedule)
  pairsentry score      Score a single token address
  pairsentry bot        Run the conversational Telegram bot
  pairsentry ui         Launch the terminal dashboard`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.pairsentry/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable verbose/debug output")

	rootCmd.Version = Version
	rootCmd.AddCommand(
		onboardCmd,
		watchCmd,
		botCmd,
		scoreCmd,
		uiCmd,
		configCmd,
		doctorCmd,
	)
}

func initLogging() {
	if verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
		slog.Debug("Verbose logging enabled")
	}
}
