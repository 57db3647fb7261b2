package risk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pairsentry/pairsentry/models"
)

func TestLoadEmbeddedTable(t *testing.T) {
	tbl, err := Load()
	require.NoError(t, err)
	require.GreaterOrEqual(t, tbl.Len(), 60)
	require.Greater(t, tbl.MaxScore(), 0.0)

	w, ok := tbl.Lookup(models.RiskCritical, "honeypot")
	require.True(t, ok)
	require.Negative(t, w.Birdeye)
	require.Negative(t, w.GoPlus)

	_, ok = tbl.Lookup(models.RiskLow, "honeypot")
	require.False(t, ok)
	_, ok = tbl.Lookup(models.RiskCritical, "unknown_future_check")
	require.False(t, ok)
}

func TestEmbeddedTableCoversAllTiers(t *testing.T) {
	tbl, err := Load()
	require.NoError(t, err)
	for _, lvl := range models.RiskLevels() {
		require.NotEmpty(t, tbl.Indicators(lvl), "tier %s has no indicators", lvl.Code())
	}
}

func TestParseTableRejectsUnknownTier(t *testing.T) {
	_, err := parseTable([]byte(`
z:
  honeypot: {birdeye: -0.5, goplus: -0.5}
`))
	require.Error(t, err)
}

func TestParseTableRejectsMalformedYAML(t *testing.T) {
	_, err := parseTable([]byte("c: [not a map"))
	require.Error(t, err)
}

func TestParseTableNormalisesKeys(t *testing.T) {
	tbl, err := parseTable([]byte(`
c:
  "Owner Change Balance": {birdeye: -0.5, goplus: -0.5}
`))
	require.NoError(t, err)
	_, ok := tbl.Lookup(models.RiskCritical, "owner_change_balance")
	require.True(t, ok)
}
