// Package dexscreener lists newly created Solana pairs from the
// Dexscreener public API.
package dexscreener

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/pairsentry/pairsentry/internal/config"
	"github.com/pairsentry/pairsentry/internal/parse"
	"github.com/pairsentry/pairsentry/models"
)

const defaultBaseURL = "https://api.dexscreener.com"

// Client is an HTTP client for the Dexscreener search endpoint.
type Client struct {
	baseURL      string
	minLiquidity float64
	minAge       time.Duration
	maxPairs     int
	http         *http.Client
	now          func() time.Time
}

// New returns a Client applying cfg's listing filters.
func New(cfg config.WatchConfig) *Client {
	base := cfg.DexscreenerBaseURL
	if base == "" {
		base = defaultBaseURL
	}
	maxPairs := cfg.MaxPairs
	if maxPairs <= 0 {
		maxPairs = 100
	}
	return &Client{
		baseURL:      base,
		minLiquidity: cfg.MinLiquidity,
		minAge:       time.Duration(cfg.MinAgeMinutes) * time.Minute,
		maxPairs:     maxPairs,
		http:         &http.Client{Timeout: 15 * time.Second},
		now:          time.Now,
	}
}

// NewPairs fetches the current Solana pair listing, youngest first,
// filtered by minimum liquidity and age. Pairs that fail to parse are
// skipped, never abort the batch.
func (c *Client) NewPairs(ctx context.Context) ([]models.PairData, error) {
	url := c.baseURL + "/latest/dex/search?q=SOL"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dexscreener: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dexscreener: search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("dexscreener: search HTTP %d: %s", resp.StatusCode, string(b))
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("dexscreener: decode response: %w", err)
	}

	now := c.now()
	pairs := make([]models.PairData, 0, len(decoded.Pairs))
	for _, p := range decoded.Pairs {
		pair, err := c.convert(p, now)
		if err != nil {
			slog.Debug("dexscreener: skipping pair", "pair", p.URL, "error", err)
			continue
		}
		if pair.Liquidity < c.minLiquidity || time.Duration(pair.AgeMinutes)*time.Minute < c.minAge {
			continue
		}
		pairs = append(pairs, pair)
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].AgeMinutes < pairs[j].AgeMinutes })
	if len(pairs) > c.maxPairs {
		pairs = pairs[:c.maxPairs]
	}
	return pairs, nil
}

func (c *Client) convert(p pairPayload, now time.Time) (models.PairData, error) {
	if p.ChainID != "solana" {
		return models.PairData{}, fmt.Errorf("chain %q is not solana", p.ChainID)
	}
	address, err := parse.SolanaAddress(p.URL)
	if err != nil {
		return models.PairData{}, err
	}
	price := 0.0
	if p.PriceUSD != "" {
		price, err = strconv.ParseFloat(p.PriceUSD, 64)
		if err != nil {
			return models.PairData{}, fmt.Errorf("price %q: %w", p.PriceUSD, err)
		}
	}
	if p.PairCreatedAt <= 0 {
		return models.PairData{}, fmt.Errorf("pair has no creation time")
	}
	age := now.Sub(time.UnixMilli(p.PairCreatedAt))
	if age < 0 {
		age = 0
	}

	return models.PairData{
		Token:                p.BaseToken.Symbol + "/" + p.QuoteToken.Symbol,
		Description:          p.BaseToken.Name,
		Address:              address,
		Price:                price,
		AgeMinutes:           int(age / time.Minute),
		Buys:                 p.Txns.H24.Buys,
		Sells:                p.Txns.H24.Sells,
		Volume:               p.Volume["h24"],
		Liquidity:            p.Liquidity.USD,
		MarketCap:            p.MarketCap,
		FiveMinChange:        p.PriceChange["m5"],
		OneHourChange:        p.PriceChange["h1"],
		SixHourChange:        p.PriceChange["h6"],
		TwentyFourHourChange: p.PriceChange["h24"],
		EvaluatedAt:          now,
	}, nil
}
