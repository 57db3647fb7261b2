package dexscreener

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pairsentry/pairsentry/internal/config"
)

// solAddr is a valid 32-byte base58 address (the wrapped SOL mint).
const solAddr = "So11111111111111111111111111111111111111112"

const searchBody = `{
  "pairs": [
    {
      "chainId": "solana",
      "dexId": "raydium",
      "url": "https://dexscreener.com/solana/` + solAddr + `",
      "baseToken": {"address": "` + solAddr + `", "name": "Bonk Inu", "symbol": "BONK"},
      "quoteToken": {"address": "` + solAddr + `", "name": "Wrapped SOL", "symbol": "SOL"},
      "priceUsd": "0.0000235",
      "txns": {"h24": {"buys": 120, "sells": 45}},
      "volume": {"h24": 54000},
      "priceChange": {"m5": 1.5, "h1": -2.25, "h24": 10},
      "liquidity": {"usd": 18000},
      "marketCap": 920000,
      "pairCreatedAt": %d
    },
    {
      "chainId": "ethereum",
      "dexId": "uniswap",
      "url": "https://dexscreener.com/ethereum/0xdeadbeef",
      "baseToken": {"name": "Not Solana", "symbol": "NOPE"},
      "quoteToken": {"symbol": "WETH"},
      "priceUsd": "1.0",
      "pairCreatedAt": %d
    },
    {
      "chainId": "solana",
      "dexId": "orca",
      "url": "https://dexscreener.com/solana/` + solAddr + `",
      "baseToken": {"name": "Thin Pool", "symbol": "THIN"},
      "quoteToken": {"symbol": "SOL"},
      "priceUsd": "0.5",
      "liquidity": {"usd": 150},
      "pairCreatedAt": %d
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, cfg config.WatchConfig) (*Client, time.Time) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg.DexscreenerBaseURL = srv.URL
	c := New(cfg)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, now
}

func TestNewPairsFiltersAndConverts(t *testing.T) {
	var now time.Time
	handler := func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/latest/dex/search", r.URL.Path)
		require.Equal(t, "SOL", r.URL.Query().Get("q"))
		created := now.Add(-30 * time.Minute).UnixMilli()
		w.Write([]byte(formatBody(created)))
	}
	c, n := newTestClient(t, handler, config.WatchConfig{MinLiquidity: 2000, MinAgeMinutes: 3})
	now = n

	pairs, err := c.NewPairs(context.Background())
	require.NoError(t, err)
	require.Len(t, pairs, 1)

	p := pairs[0]
	require.Equal(t, "BONK/SOL", p.Token)
	require.Equal(t, "Bonk Inu", p.Description)
	require.Equal(t, solAddr, p.Address)
	require.InDelta(t, 0.0000235, p.Price, 1e-12)
	require.Equal(t, 30, p.AgeMinutes)
	require.Equal(t, 120, p.Buys)
	require.Equal(t, 45, p.Sells)
	require.InDelta(t, 54000, p.Volume, 1e-9)
	require.InDelta(t, 18000, p.Liquidity, 1e-9)
	require.InDelta(t, 920000, p.MarketCap, 1e-9)
	require.NotNil(t, p.FiveMinChange)
	require.InDelta(t, 1.5, *p.FiveMinChange, 1e-9)
	require.NotNil(t, p.OneHourChange)
	require.InDelta(t, -2.25, *p.OneHourChange, 1e-9)
	require.Nil(t, p.SixHourChange)
	require.Equal(t, now, p.EvaluatedAt)
}

func TestNewPairsSkipsTooYoung(t *testing.T) {
	var now time.Time
	handler := func(w http.ResponseWriter, r *http.Request) {
		created := now.Add(-1 * time.Minute).UnixMilli()
		w.Write([]byte(formatBody(created)))
	}
	c, n := newTestClient(t, handler, config.WatchConfig{MinLiquidity: 2000, MinAgeMinutes: 3})
	now = n

	pairs, err := c.NewPairs(context.Background())
	require.NoError(t, err)
	require.Empty(t, pairs)
}

func TestNewPairsCapsBatch(t *testing.T) {
	var now time.Time
	handler := func(w http.ResponseWriter, r *http.Request) {
		created := now.Add(-30 * time.Minute).UnixMilli()
		w.Write([]byte(formatBody(created)))
	}
	c, n := newTestClient(t, handler, config.WatchConfig{MaxPairs: 1})
	now = n

	pairs, err := c.NewPairs(context.Background())
	require.NoError(t, err)
	require.Len(t, pairs, 1)
}

func TestNewPairsSortsYoungestFirst(t *testing.T) {
	var now time.Time
	handler := func(w http.ResponseWriter, r *http.Request) {
		older := now.Add(-60 * time.Minute).UnixMilli()
		younger := now.Add(-10 * time.Minute).UnixMilli()
		body := `{"pairs": [
			{"chainId": "solana", "url": "https://dexscreener.com/solana/` + solAddr + `",
			 "baseToken": {"name": "Old", "symbol": "OLD"}, "quoteToken": {"symbol": "SOL"},
			 "liquidity": {"usd": 9000}, "pairCreatedAt": ` + itoa(older) + `},
			{"chainId": "solana", "url": "https://dexscreener.com/solana/` + solAddr + `",
			 "baseToken": {"name": "New", "symbol": "NEW"}, "quoteToken": {"symbol": "SOL"},
			 "liquidity": {"usd": 9000}, "pairCreatedAt": ` + itoa(younger) + `}
		]}`
		w.Write([]byte(body))
	}
	c, n := newTestClient(t, handler, config.WatchConfig{MinLiquidity: 2000, MinAgeMinutes: 3})
	now = n

	pairs, err := c.NewPairs(context.Background())
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	require.Equal(t, "NEW/SOL", pairs[0].Token)
	require.Equal(t, "OLD/SOL", pairs[1].Token)
}

func TestNewPairsServerError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}
	c, _ := newTestClient(t, handler, config.WatchConfig{})

	_, err := c.NewPairs(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}

func formatBody(created int64) string {
	return fmt.Sprintf(searchBody, created, created, created)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
