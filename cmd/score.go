package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pairsentry/pairsentry/internal/collector"
	"github.com/pairsentry/pairsentry/internal/config"
	"github.com/pairsentry/pairsentry/internal/parse"
	"github.com/pairsentry/pairsentry/internal/providers/birdeye"
	"github.com/pairsentry/pairsentry/internal/providers/goplus"
	"github.com/pairsentry/pairsentry/internal/risk"
)

var scoreCmd = &cobra.Command{
	Use:   "score <address>",
	Short: "Score a single token address",
	Long: `Collects security indicators for one Solana token address from the
configured providers, prints the tier-grouped findings and the derived
0-100 score, and reports whether the token would be published.`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func runScore(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	address, err := parse.SolanaAddress(args[0])
	if err != nil {
		return fmt.Errorf("invalid token address: %w", err)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	table, err := risk.Load()
	if err != nil {
		return fmt.Errorf("loading weight table: %w", err)
	}

	be := birdeye.New(cfg.Providers)
	gp := goplus.New(cfg.Providers)
	if !be.Configured() && !gp.Configured() {
		return fmt.Errorf("no security provider configured — run 'pairsentry onboard'")
	}

	raw := collector.New(table, be, gp).Collect(ctx, address)
	profile, err := risk.Evaluate(table, raw)
	if err != nil {
		return err
	}

	if profile.Failed() {
		fmt.Printf("Security check failed: %s\n", profile.Err)
		fmt.Println("The token cannot be scored and would not be published.")
		return nil
	}

	report := risk.BuildReport(profile)
	if report.Empty() {
		fmt.Println("No risk indicators observed.")
	} else {
		fmt.Print(report.String())
	}

	fmt.Printf("\nSecurity score: %.2f / 100 (%d findings)\n", *profile.Score, profile.FindingCount())
	threshold := cfg.Watch.PublishThreshold
	if risk.ShouldPublish(profile, threshold) {
		fmt.Printf("Verdict: would publish (score above %.1f).\n", threshold)
	} else {
		fmt.Printf("Verdict: would NOT publish (threshold %.1f).\n", threshold)
	}
	return nil
}
