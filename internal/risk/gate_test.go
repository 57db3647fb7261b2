package risk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pairsentry/pairsentry/models"
)

func scored(v float64) *models.SecurityProfile {
	p := models.NewSecurityProfile()
	p.Score = &v
	return p
}

func TestShouldPublishAboveThreshold(t *testing.T) {
	require.True(t, ShouldPublish(scored(100), DefaultPublishThreshold))
	require.True(t, ShouldPublish(scored(98.01), 98))
}

func TestShouldPublishThresholdIsStrict(t *testing.T) {
	// Exactly at the threshold does not publish.
	require.False(t, ShouldPublish(scored(98), 98))
	require.False(t, ShouldPublish(scored(68.75), DefaultPublishThreshold))
}

func TestShouldPublishFailsClosed(t *testing.T) {
	failed := models.NewSecurityProfile()
	failed.Err = "timeout"
	require.False(t, ShouldPublish(failed, 0))

	// Even a stale partial score on an error-flagged profile never
	// publishes.
	v := 100.0
	failed.Score = &v
	require.False(t, ShouldPublish(failed, 0))

	require.False(t, ShouldPublish(nil, 0))
	require.False(t, ShouldPublish(models.NewSecurityProfile(), 0))
}

func TestCleanProfilePublishesEndToEnd(t *testing.T) {
	tbl := mustParse(t, honeypotOnlyTable)

	profile, err := Evaluate(tbl, models.RawSecurityFindings{})
	require.NoError(t, err)
	require.NotNil(t, profile.Score)
	require.Equal(t, 100.0, *profile.Score)
	require.True(t, ShouldPublish(profile, 98))
}
