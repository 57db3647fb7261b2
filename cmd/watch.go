package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pairsentry/pairsentry/internal/collector"
	"github.com/pairsentry/pairsentry/internal/config"
	"github.com/pairsentry/pairsentry/internal/database"
	"github.com/pairsentry/pairsentry/internal/dataset"
	"github.com/pairsentry/pairsentry/internal/dexscreener"
	"github.com/pairsentry/pairsentry/internal/notify"
	"github.com/pairsentry/pairsentry/internal/providers/birdeye"
	"github.com/pairsentry/pairsentry/internal/providers/goplus"
	"github.com/pairsentry/pairsentry/internal/risk"
	"github.com/pairsentry/pairsentry/internal/watcher"
)

var watchSchedule string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Evaluate newly listed pairs and publish the ones that qualify",
	Long: `Fetches the current Solana pair listing, scores each pair's security
indicators and publishes pairs scoring above the threshold to the
configured channels.

Runs one cycle and exits. With --schedule (or watch.schedule in the
config) it keeps running cycles on the cron expression until
interrupted.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "",
		"cron expression for recurring cycles (e.g. \"*/10 * * * *\")")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	w, cleanup, err := buildWatcher(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	schedule := watchSchedule
	if schedule == "" {
		schedule = cfg.Watch.Schedule
	}
	if schedule != "" {
		sched := watcher.NewScheduler(w)
		if err := sched.Run(ctx, schedule); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	}

	stats, err := w.RunCycle(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Evaluated %d of %d pairs (%d failed), published %d.\n",
		stats.Evaluated, stats.Fetched, stats.Failed, stats.Published)
	return nil
}

// buildWatcher wires the full evaluation pipeline from cfg. The
// returned cleanup closes the database.
func buildWatcher(ctx context.Context, cfg *config.Config) (*watcher.Watcher, func(), error) {
	table, err := risk.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading weight table: %w", err)
	}

	store, err := database.New(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}

	source := dexscreener.New(cfg.Watch)
	security := collector.New(table, birdeye.New(cfg.Providers), goplus.New(cfg.Providers))
	ds := dataset.New(cfg.Dataset.Path)
	dispatcher := notify.NewDispatcher(*cfg)

	w := watcher.New(source, security, table, store, ds, dispatcher, cfg.Watch.PublishThreshold)
	return w, func() { store.Close() }, nil
}
