// Package goplus fetches token security data from the GoPlus Labs
// public API (provider B of the risk pipeline).
package goplus

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

const defaultBaseURL = "https://api.gopluslabs.io"

// Client is an HTTP client for the GoPlus token_security endpoint.
// The endpoint is unauthenticated.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client from cfg.
func New(cfg config.ProvidersConfig) *Client {
	base := cfg.GoPlusBaseURL
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Name() string { return "goplus" }

func (c *Client) Configured() bool { return c.baseURL != "" }

type securityResponse struct {
	Code    int                       `json:"code"`
	Message string                    `json:"message"`
	Result  map[string]map[string]any `json:"result"`
}

// TokenSecurity fetches the security view of one token and flattens it
// into indicator key → raw text value.
func (c *Client) TokenSecurity(ctx context.Context, address string) (map[string]string, error) {
	url := fmt.Sprintf("%s/api/v1/token_security/solana?contract_addresses=%s", c.baseURL, address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("goplus: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("goplus: token security for %s: %w", address, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("goplus: token security HTTP %d: %s", resp.StatusCode, string(b))
	}

	var decoded securityResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("goplus: decode response: %w", err)
	}
	// GoPlus signals success with code 1.
	if decoded.Code != 1 {
		return nil, fmt.Errorf("goplus: API code %d (%s) for %s", decoded.Code, decoded.Message, address)
	}

	data, ok := decoded.Result[address]
	if !ok {
		// Case differences in the echoed address key occur in practice.
		for _, v := range decoded.Result {
			data = v
			break
		}
	}
	if data == nil {
		return nil, fmt.Errorf("goplus: no result for %s", address)
	}

	return providers.Flatten(data, fieldAliases), nil
}

// fieldAliases maps GoPlus response fields onto the shared indicator
// vocabulary where the names diverge.
var fieldAliases = map[string]string{
	"mintable_authority":        "mint_authority",
	"freezable_authority":       "freeze_authority",
	"balance_mutable_authority": "balance_mutable_authority",
	"closable":                  "selfdestruct",
	"metadata_mutable":          "mutable_metadata",
	"transfer_fee_upgradable":   "transfer_fee_upgradable",
	"holder_count":              "holder_count",
	"lp_holder_count":           "lp_holder_count",
	"holders":                   "top_10_holders",
	"creator_address":           "creator_balance",
	"default_account_state":     "freezable",
	"none_transferable":         "cannot_sell_all",
	"trusted_token":             "fake_token",
}
