package risk

import (
	"errors"
	"log/slog"
	"math"

	"github.com/pairsentry/pairsentry/models"
)

// ErrProfileFailed is returned when a profile with an extraction
// error reaches the reducer. Such profiles must be treated as unknown
// risk by the caller, never scored.
var ErrProfileFailed = errors.New("risk: profile has an extraction error")

// Score reduces a profile's findings against the weight table into a
// single value in [0, 100]. 100 means no configured indicator was
// observed by either provider.
//
// The penalty is presence-only: a provider observation subtracts the
// indicator's |weight| regardless of what the observed text says.
// Text polarity is indicator-specific and deliberately not inspected
// here; an indicator whose positive-sounding value denotes safety
// still costs its weight when reported. Unconfigured indicators
// contribute nothing, and an unobserved indicator is neutral rather
// than a penalty.
func Score(t *Table, profile *models.SecurityProfile) (float64, error) {
	if profile.Failed() {
		return 0, ErrProfileFailed
	}
	if t == nil || t.maxScore == 0 {
		return 0, ErrEmptyTable
	}

	score := t.maxScore
	for _, lvl := range models.RiskLevels() {
		for ind, f := range profile.Findings[lvl] {
			w, ok := t.Lookup(lvl, ind)
			if !ok {
				slog.Debug("risk: skipping unconfigured indicator",
					"tier", lvl.Code(), "indicator", string(ind))
				continue
			}
			if f.Birdeye.Present {
				score -= math.Abs(w.Birdeye)
			}
			if f.GoPlus.Present {
				score -= math.Abs(w.GoPlus)
			}
		}
	}

	return clamp(score/t.maxScore*100, 0, 100), nil
}

// Evaluate normalises raw findings and scores them, attaching the
// score to the returned profile. A profile with an extraction error
// comes back unscored (Score nil); the only possible error is an
// empty weight table.
func Evaluate(t *Table, raw models.RawSecurityFindings) (*models.SecurityProfile, error) {
	profile := Normalize(raw)
	if profile.Failed() {
		return profile, nil
	}
	s, err := Score(t, profile)
	if err != nil {
		return nil, err
	}
	profile.Score = &s
	return profile, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
