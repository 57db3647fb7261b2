package models

import "time"

// PairData is one trading pair as listed by the pair source.
type PairData struct {
	// Token is the pair symbol, e.g. "BONK/SOL".
	Token       string
	Description string
	// Address is the base token's Solana address.
	Address string
	Price   float64
	// AgeMinutes is the pair age at evaluation time, in whole minutes.
	AgeMinutes int
	Buys       int
	Sells      int
	Volume     float64
	Makers     int

	FiveMinChange        *float64
	OneHourChange        *float64
	SixHourChange        *float64
	TwentyFourHourChange *float64

	Liquidity float64
	MarketCap float64

	Security *SecurityProfile

	EvaluatedAt time.Time
}

// SecurityScore returns the derived score, or nil when the pair has
// not been evaluated or its security check failed.
func (p PairData) SecurityScore() *float64 {
	if p.Security == nil {
		return nil
	}
	return p.Security.Score
}

// TimeFrame names one price-change window a pair reports.
type TimeFrame struct {
	Label string
	Value func(PairData) *float64
}

// TimeFrames returns the reported price-change windows in display order.
func TimeFrames() []TimeFrame {
	return []TimeFrame{
		{Label: "5m", Value: func(p PairData) *float64 { return p.FiveMinChange }},
		{Label: "1h", Value: func(p PairData) *float64 { return p.OneHourChange }},
		{Label: "6h", Value: func(p PairData) *float64 { return p.SixHourChange }},
		{Label: "24h", Value: func(p PairData) *float64 { return p.TwentyFourHourChange }},
	}
}
