// Package collector assembles per-provider security observations into
// the raw findings structure consumed by the risk pipeline.
package collector

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/pairsentry/pairsentry/internal/providers"
	"github.com/pairsentry/pairsentry/internal/risk"
	"github.com/pairsentry/pairsentry/models"
)

// Collector queries both security providers for one token and merges
// their observations, using the weight-table taxonomy for tier
// placement.
type Collector struct {
	table   *risk.Table
	birdeye providers.Source
	goplus  providers.Source
}

// New returns a Collector over the given sources. Either source may be
// unconfigured.
func New(table *risk.Table, birdeye, goplus providers.Source) *Collector {
	return &Collector{table: table, birdeye: birdeye, goplus: goplus}
}

// Collect produces the raw security findings for one token address.
// A failure from any configured provider yields findings with the
// error set and no sections: partial data from a failed extraction
// must not flow into scoring.
func (c *Collector) Collect(ctx context.Context, address string) models.RawSecurityFindings {
	birdeyeData, birdeyeErr := c.query(ctx, c.birdeye, address)
	goplusData, goplusErr := c.query(ctx, c.goplus, address)

	var failures []string
	if birdeyeErr != nil {
		failures = append(failures, birdeyeErr.Error())
	}
	if goplusErr != nil {
		failures = append(failures, goplusErr.Error())
	}
	if len(failures) > 0 {
		return models.RawSecurityFindings{Err: strings.Join(failures, "; ")}
	}

	var raw models.RawSecurityFindings
	for _, lvl := range models.RiskLevels() {
		indicators := c.table.Indicators(lvl)
		sort.Slice(indicators, func(i, j int) bool { return indicators[i] < indicators[j] })

		section := models.RawSection{Level: lvl.Code()}
		for _, ind := range indicators {
			item := models.RawItem{
				Title:   string(ind),
				Birdeye: observed(birdeyeData, ind),
				GoPlus:  observed(goplusData, ind),
			}
			if item.Birdeye == nil && item.GoPlus == nil {
				continue
			}
			section.Items = append(section.Items, item)
		}
		if len(section.Items) > 0 {
			raw.Sections = append(raw.Sections, section)
		}
	}
	return raw
}

func (c *Collector) query(ctx context.Context, src providers.Source, address string) (map[string]string, error) {
	if src == nil || !src.Configured() {
		return nil, nil
	}
	data, err := src.TokenSecurity(ctx, address)
	if err != nil {
		slog.Warn("collector: provider query failed",
			"provider", src.Name(), "address", address, "error", err)
		return nil, err
	}
	return data, nil
}

func observed(data map[string]string, ind models.Indicator) *string {
	v, ok := data[string(ind)]
	if !ok {
		return nil
	}
	return &v
}
