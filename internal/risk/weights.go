// Package risk implements the security-risk scoring pipeline: the
// static weighted indicator taxonomy, the finding normaliser, the
// score reducer, and the publish gate.
//
// The pipeline is pure, synchronous computation. The only shared
// state is the weight table, which is immutable after Load and safe
// to use from concurrent evaluations without locking.
package risk

import (
	_ "embed"
	"errors"
	"fmt"
	"math"

	"go.yaml.in/yaml/v3"

	"github.com/pairsentry/pairsentry/models"
)

//go:embed weights.yaml
var weightsYAML []byte

// ErrEmptyTable is returned when the weight table carries no usable
// weights. Scoring against an empty table would divide by zero, so
// this is fatal at startup.
var ErrEmptyTable = errors.New("risk: weight table is empty")

// Weight is the immutable penalty magnitude pair for one indicator,
// one value per provider.
type Weight struct {
	Birdeye float64 `yaml:"birdeye"`
	GoPlus  float64 `yaml:"goplus"`
}

// Table maps (tier, indicator) to its scoring weight. It is read-only
// configuration, versioned with the codebase.
type Table struct {
	weights  map[models.RiskLevel]map[models.Indicator]Weight
	maxScore float64
}

// Load parses the embedded weight table. It is called once at process
// start; any error here is a configuration invariant violation and
// must abort startup.
func Load() (*Table, error) {
	return parseTable(weightsYAML)
}

// ParseTable parses a YAML weight table from data. Load covers the
// embedded table; this entry point exists for custom tables.
func ParseTable(data []byte) (*Table, error) {
	return parseTable(data)
}

func parseTable(data []byte) (*Table, error) {
	var raw map[string]map[string]Weight
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("risk: parsing weight table: %w", err)
	}

	t := &Table{weights: make(map[models.RiskLevel]map[models.Indicator]Weight, 4)}
	for _, lvl := range models.RiskLevels() {
		t.weights[lvl] = make(map[models.Indicator]Weight)
	}

	for code, indicators := range raw {
		lvl, ok := models.MapRiskLevel(code)
		if !ok {
			return nil, fmt.Errorf("risk: weight table has unknown tier code %q", code)
		}
		for key, w := range indicators {
			ind := NormalizeIndicator(key)
			if _, dup := t.weights[lvl][ind]; dup {
				return nil, fmt.Errorf("risk: duplicate indicator %q in tier %s", ind, lvl.Code())
			}
			t.weights[lvl][ind] = w
			// The clean-token ceiling counts the weight pair once per
			// provider, so a fully flagged token bottoms out at half
			// the ceiling rather than zero.
			t.maxScore += 2 * (math.Abs(w.Birdeye) + math.Abs(w.GoPlus))
		}
	}

	if t.maxScore == 0 {
		return nil, ErrEmptyTable
	}
	return t, nil
}

// Lookup returns the weight configured for (tier, indicator). The
// second return is false when the pair is unconfigured; callers treat
// that as zero weight, not as an error.
func (t *Table) Lookup(lvl models.RiskLevel, ind models.Indicator) (Weight, bool) {
	w, ok := t.weights[lvl][ind]
	return w, ok
}

// MaxScore is the raw score of a token with zero observed indicators:
// the sum of |birdeye| + |goplus| over the whole table. Computed once
// at load since the table never changes within a run.
func (t *Table) MaxScore() float64 { return t.maxScore }

// Len returns the number of configured indicators across all tiers.
func (t *Table) Len() int {
	n := 0
	for _, tier := range t.weights {
		n += len(tier)
	}
	return n
}

// Indicators returns the configured indicators for one tier.
func (t *Table) Indicators(lvl models.RiskLevel) []models.Indicator {
	out := make([]models.Indicator, 0, len(t.weights[lvl]))
	for ind := range t.weights[lvl] {
		out = append(out, ind)
	}
	return out
}
