package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pairsentry/pairsentry/models"
)

func testPair(token string, score *float64) models.PairData {
	p := models.PairData{
		Token:       token,
		Description: "test pair",
		Address:     "addr",
		Price:       0.5,
		AgeMinutes:  10,
		Volume:      5300,
		Liquidity:   2000,
		MarketCap:   100000,
	}
	if score != nil {
		profile := models.NewSecurityProfile()
		profile.Score = score
		p.Security = profile
	}
	return p
}

func TestAppendWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.csv")
	d := New(path)
	score := 99.5

	require.NoError(t, d.Append([]models.PairData{testPair("A/SOL", &score)}))
	require.NoError(t, d.Append([]models.PairData{testPair("B/SOL", nil)}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "token,description,address,price,age,volume,liquidity,market_cap,security_score", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "A/SOL,"))
	require.Contains(t, lines[1], "99.50")
	// A failed security check leaves the score column empty.
	require.True(t, strings.HasSuffix(lines[2], ","))
}

func TestAppendEmptyIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.csv")
	require.NoError(t, New(path).Append(nil))
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.csv")
	d := New(path)
	score := 68.75
	require.NoError(t, d.Append([]models.PairData{testPair("BONK/SOL", &score)}))

	got, err := d.Lookup("bonk/sol")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "BONK/SOL", got["token"])
	require.Equal(t, "68.75", got["security_score"])

	missing, err := d.Lookup("NOPE/SOL")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestLookupWithoutFile(t *testing.T) {
	d := New(filepath.Join(t.TempDir(), "absent.csv"))
	got, err := d.Lookup("ANY/SOL")
	require.NoError(t, err)
	require.Nil(t, got)
}
