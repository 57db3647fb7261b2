package dexscreener

// searchResponse mirrors the relevant slice of the Dexscreener pair
// search payload.
type searchResponse struct {
	Pairs []pairPayload `json:"pairs"`
}

type pairPayload struct {
	ChainID    string       `json:"chainId"`
	DexID      string       `json:"dexId"`
	URL        string       `json:"url"`
	BaseToken  tokenPayload `json:"baseToken"`
	QuoteToken tokenPayload `json:"quoteToken"`
	PriceUSD   string       `json:"priceUsd"`

	Txns struct {
		H24 txnsPayload `json:"h24"`
	} `json:"txns"`

	Volume      map[string]float64  `json:"volume"`
	PriceChange map[string]*float64 `json:"priceChange"`

	Liquidity struct {
		USD float64 `json:"usd"`
	} `json:"liquidity"`

	MarketCap     float64 `json:"marketCap"`
	PairCreatedAt int64   `json:"pairCreatedAt"` // ms since epoch
}

type tokenPayload struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

type txnsPayload struct {
	Buys  int `json:"buys"`
	Sells int `json:"sells"`
}
