package watcher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler runs recurring evaluation cycles with robfig/cron.
type Scheduler struct {
	watcher *Watcher
	cron    *cron.Cron
}

// NewScheduler wraps w for recurring execution.
func NewScheduler(w *Watcher) *Scheduler {
	return &Scheduler{watcher: w, cron: cron.New()}
}

// Run registers expr and blocks until ctx is cancelled. A cycle that
// fails is logged; the schedule keeps firing.
func (s *Scheduler) Run(ctx context.Context, expr string) error {
	_, err := s.cron.AddFunc(expr, func() {
		if _, err := s.watcher.RunCycle(ctx); err != nil {
			slog.Warn("watcher: scheduled cycle failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("watcher: invalid cron expression %q: %w", expr, err)
	}

	s.cron.Start()
	slog.Info("watcher: schedule started", "expr", expr)
	<-ctx.Done()

	stop := s.cron.Stop()
	<-stop.Done()
	return ctx.Err()
}
