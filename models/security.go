package models

// Indicator identifies a single risk check (e.g. "honeypot",
// "mintable"). Keys are normalised to lowercase with interior
// whitespace collapsed to underscores, so they stay stable across
// display-text changes in the data sources.
type Indicator string

// Observation is one provider's reported value for an indicator.
// The zero value means the provider did not report the indicator
// (a missing cell and the "N/A" sentinel both collapse to it).
// An empty-but-present Value is a real observation.
type Observation struct {
	Value   string
	Present bool
}

// Observed wraps a raw provider value as a present observation.
func Observed(v string) Observation {
	return Observation{Value: v, Present: true}
}

// Finding is one indicator's observations from both providers within
// one tier.
type Finding struct {
	Indicator Indicator
	Level     RiskLevel
	Birdeye   Observation
	GoPlus    Observation
}

// SecurityProfile is a token's full set of findings plus the derived
// score. Score stays nil until the reducer has run. A non-empty Err
// marks an upstream extraction failure; such a profile carries no
// findings and its score must be treated as unknown, never as safe.
type SecurityProfile struct {
	Findings map[RiskLevel]map[Indicator]Finding
	Score    *float64
	Err      string
}

// NewSecurityProfile returns an empty profile with all four tiers
// initialised.
func NewSecurityProfile() *SecurityProfile {
	findings := make(map[RiskLevel]map[Indicator]Finding, 4)
	for _, lvl := range RiskLevels() {
		findings[lvl] = make(map[Indicator]Finding)
	}
	return &SecurityProfile{Findings: findings}
}

// Put records a finding, overwriting any previous observation of the
// same (tier, indicator).
func (p *SecurityProfile) Put(f Finding) {
	p.Findings[f.Level][f.Indicator] = f
}

// Failed reports whether risk extraction failed outright.
func (p *SecurityProfile) Failed() bool { return p.Err != "" }

// FindingCount returns the total number of findings across all tiers.
func (p *SecurityProfile) FindingCount() int {
	n := 0
	for _, tier := range p.Findings {
		n += len(tier)
	}
	return n
}

// RawItem is one extracted row of the security source: an indicator
// title plus up to two provider cell values. A nil provider value
// means the cell was missing entirely.
type RawItem struct {
	Hidden  bool
	Title   string
	Birdeye *string
	GoPlus  *string
}

// RawSection groups raw items under one severity tier as presented by
// the source. Level carries the tier code.
type RawSection struct {
	Hidden bool
	Level  string
	Items  []RawItem
}

// RawSecurityFindings is the input boundary from the security
// collector. Err is set instead of sections when extraction failed.
type RawSecurityFindings struct {
	Sections []RawSection
	Err      string
}
