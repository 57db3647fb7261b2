// Package birdeye fetches token security data from the Birdeye public
// API (provider A of the risk pipeline).
package birdeye

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pairsentry/pairsentry/internal/config"
	"github.com/pairsentry/pairsentry/internal/providers"
)

const defaultBaseURL = "https://public-api.birdeye.so"

// Client is an HTTP client for Birdeye's token_security endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New returns a Client from cfg. An empty API key leaves the client
// unconfigured; it then reports no observations rather than failing
// evaluations.
func New(cfg config.ProvidersConfig) *Client {
	base := cfg.BirdeyeBaseURL
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		baseURL: base,
		apiKey:  cfg.BirdeyeAPIKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Name() string { return "birdeye" }

func (c *Client) Configured() bool { return c.apiKey != "" }

type securityResponse struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
}

// TokenSecurity fetches the security view of one token and flattens it
// into indicator key → raw text value. Null fields are dropped; field
// names are canonicalised to the shared indicator vocabulary.
func (c *Client) TokenSecurity(ctx context.Context, address string) (map[string]string, error) {
	url := fmt.Sprintf("%s/defi/token_security?address=%s", c.baseURL, address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("birdeye: build request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("x-chain", "solana")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("birdeye: token security for %s: %w", address, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("birdeye: token security HTTP %d: %s", resp.StatusCode, string(b))
	}

	var decoded securityResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("birdeye: decode response: %w", err)
	}
	if !decoded.Success {
		return nil, fmt.Errorf("birdeye: API reported failure for %s", address)
	}

	return providers.Flatten(decoded.Data, fieldAliases), nil
}

// fieldAliases maps Birdeye response fields onto the shared indicator
// vocabulary where the names diverge.
var fieldAliases = map[string]string{
	"freezeable":               "freezable",
	"freeze_authority":         "freeze_authority",
	"mint_tx":                  "mint_authority",
	"top10_holder_percent":     "top_10_holders",
	"creator_percentage":       "creator_percentage",
	"creator_balance":          "creator_balance",
	"mutable_metadata":         "mutable_metadata",
	"transfer_fee_enable":      "transfer_fee",
	"transfer_fee_data":        "transfer_fee_upgradable",
	"is_true_token":            "fake_token",
	"non_transferable":         "cannot_sell_all",
	"jup_strict_list":          "jupiter_strict_list",
	"lock_info":                "liquidity_locked",
	"pre_market_holder":        "dev_wallet_activity",
	"owner_of_owner_authority": "hidden_owner",
}
