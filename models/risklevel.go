package models

// RiskLevel represents one of the four fixed risk severity tiers.
// The underlying value is the stable short code used as a mapping key
// by the weight table and the upstream data sources.
type RiskLevel string

const (
	RiskCritical RiskLevel = "c"
	RiskHigh     RiskLevel = "h"
	RiskMedium   RiskLevel = "m"
	RiskLow      RiskLevel = "n"
)

// RiskLevels returns all tiers in fixed display order, most severe first.
func RiskLevels() []RiskLevel {
	return []RiskLevel{RiskCritical, RiskHigh, RiskMedium, RiskLow}
}

var riskLabels = map[RiskLevel]string{
	RiskCritical: "Critical",
	RiskHigh:     "High",
	RiskMedium:   "Medium",
	RiskLow:      "Low",
}

var riskGlyphs = map[RiskLevel]string{
	RiskCritical: "⚠️⚠️",
	RiskHigh:     "⚠️",
	RiskMedium:   "⚡️",
	RiskLow:      "🍏",
}

// Code returns the stable short code ("c", "h", "m", "n").
func (r RiskLevel) Code() string { return string(r) }

// Label returns the human-readable tier name.
func (r RiskLevel) Label() string { return riskLabels[r] }

// Glyph returns the display glyph used in published messages.
func (r RiskLevel) Glyph() string { return riskGlyphs[r] }

// Weight returns a numeric weight for sorting (higher = more severe).
func (r RiskLevel) Weight() int {
	switch r {
	case RiskCritical:
		return 4
	case RiskHigh:
		return 3
	case RiskMedium:
		return 2
	case RiskLow:
		return 1
	default:
		return 0
	}
}

func (r RiskLevel) String() string { return r.Label() }

// MapRiskLevel normalises a tier code or label to a RiskLevel.
// The second return is false for unrecognised input.
func MapRiskLevel(raw string) (RiskLevel, bool) {
	switch raw {
	case "c", "C", "Critical", "critical", "CRITICAL":
		return RiskCritical, true
	case "h", "H", "High", "high", "HIGH":
		return RiskHigh, true
	case "m", "M", "Medium", "medium", "MEDIUM":
		return RiskMedium, true
	case "n", "N", "Low", "low", "LOW":
		return RiskLow, true
	default:
		return "", false
	}
}
