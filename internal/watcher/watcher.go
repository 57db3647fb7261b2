// Package watcher orchestrates the evaluation cycle: fetch new pairs,
// persist them, score each one and publish the pairs that qualify.
package watcher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pairsentry/pairsentry/internal/notify"
	"github.com/pairsentry/pairsentry/internal/risk"
	"github.com/pairsentry/pairsentry/models"
)

// PairSource lists the pairs to evaluate in one cycle.
type PairSource interface {
	NewPairs(ctx context.Context) ([]models.PairData, error)
}

// SecuritySource gathers raw security findings for one token address.
type SecuritySource interface {
	Collect(ctx context.Context, address string) models.RawSecurityFindings
}

// PairRecorder persists evaluated pairs.
type PairRecorder interface {
	SavePair(ctx context.Context, pair models.PairData) error
}

// PairAppender appends evaluated pairs to the flat dataset.
type PairAppender interface {
	Append(pairs []models.PairData) error
}

// Publisher announces qualifying pairs.
type Publisher interface {
	Notify(ctx context.Context, evt notify.Event)
}

// Watcher runs evaluation cycles. Every collaborator except the pair
// source and table may be nil; the corresponding step is then skipped.
type Watcher struct {
	source    PairSource
	security  SecuritySource
	table     *risk.Table
	store     PairRecorder
	dataset   PairAppender
	publisher Publisher
	threshold float64
}

// New wires a Watcher publishing above threshold.
func New(source PairSource, security SecuritySource, table *risk.Table, store PairRecorder, ds PairAppender, publisher Publisher, threshold float64) *Watcher {
	if threshold <= 0 {
		threshold = risk.DefaultPublishThreshold
	}
	return &Watcher{
		source:    source,
		security:  security,
		table:     table,
		store:     store,
		dataset:   ds,
		publisher: publisher,
		threshold: threshold,
	}
}

// CycleStats summarises one completed cycle.
type CycleStats struct {
	Fetched   int
	Evaluated int
	Failed    int
	Published int
}

// RunCycle performs one full evaluation cycle. A pair whose security
// check fails is recorded with an unknown score and never published;
// it does not abort the cycle.
func (w *Watcher) RunCycle(ctx context.Context) (CycleStats, error) {
	var stats CycleStats

	pairs, err := w.source.NewPairs(ctx)
	if err != nil {
		return stats, fmt.Errorf("watcher: fetching pairs: %w", err)
	}
	stats.Fetched = len(pairs)
	slog.Info("watcher: cycle started", "pairs", len(pairs))

	for i := range pairs {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		pair := &pairs[i]
		w.evaluate(ctx, pair, &stats)
		w.persist(ctx, *pair)
		w.publish(ctx, *pair, &stats)
	}

	if w.dataset != nil {
		if err := w.dataset.Append(pairs); err != nil {
			slog.Warn("watcher: dataset append failed", "error", err)
		}
	}

	slog.Info("watcher: cycle finished",
		"fetched", stats.Fetched, "evaluated", stats.Evaluated,
		"failed", stats.Failed, "published", stats.Published)
	return stats, nil
}

func (w *Watcher) evaluate(ctx context.Context, pair *models.PairData, stats *CycleStats) {
	if w.security == nil || w.table == nil {
		return
	}
	raw := w.security.Collect(ctx, pair.Address)
	profile, err := risk.Evaluate(w.table, raw)
	if err != nil {
		slog.Warn("watcher: evaluation failed", "pair", pair.Token, "error", err)
		stats.Failed++
		pair.Security = profile
		return
	}
	pair.Security = profile
	if profile.Failed() {
		slog.Warn("watcher: security check failed", "pair", pair.Token, "error", profile.Err)
		stats.Failed++
		return
	}
	stats.Evaluated++
}

func (w *Watcher) persist(ctx context.Context, pair models.PairData) {
	if w.store == nil {
		return
	}
	if err := w.store.SavePair(ctx, pair); err != nil {
		slog.Warn("watcher: persisting pair failed", "pair", pair.Token, "error", err)
	}
}

func (w *Watcher) publish(ctx context.Context, pair models.PairData, stats *CycleStats) {
	if w.publisher == nil {
		return
	}
	if !risk.ShouldPublish(pair.Security, w.threshold) {
		return
	}
	w.publisher.Notify(ctx, notify.Event{Pair: pair, Text: notify.FormatPair(pair)})
	stats.Published++
}
