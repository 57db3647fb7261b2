package risk

import (
	"strings"

	"github.com/pairsentry/pairsentry/models"
)

// naSentinel marks a provider cell that carries no observation.
// Distinct from an empty string, which is a real (if useless) value.
const naSentinel = "N/A"

// NormalizeIndicator converts a source display title into a stable
// indicator key: lowercased, trimmed, interior whitespace runs
// collapsed to single underscores. Normalising an already-normalised
// key is a no-op.
func NormalizeIndicator(title string) models.Indicator {
	fields := strings.Fields(strings.ToLower(title))
	return models.Indicator(strings.Join(fields, "_"))
}

// Normalize converts raw extraction output into a SecurityProfile with
// findings populated and score unset.
//
// Sections and items flagged hidden by the source presentation are
// skipped. Sections with an unrecognised tier code are skipped too:
// the source vocabulary drifts without notice and must not break
// evaluation. If the extraction itself failed, the profile comes back
// with every tier empty and Err set; partial data from a failed
// extraction could understate risk.
func Normalize(raw models.RawSecurityFindings) *models.SecurityProfile {
	profile := models.NewSecurityProfile()
	if raw.Err != "" {
		profile.Err = raw.Err
		return profile
	}

	for _, section := range raw.Sections {
		if section.Hidden {
			continue
		}
		lvl, ok := models.MapRiskLevel(section.Level)
		if !ok {
			continue
		}
		for _, item := range section.Items {
			if item.Hidden {
				continue
			}
			profile.Put(models.Finding{
				Indicator: NormalizeIndicator(item.Title),
				Level:     lvl,
				Birdeye:   observation(item.Birdeye),
				GoPlus:    observation(item.GoPlus),
			})
		}
	}
	return profile
}

func observation(cell *string) models.Observation {
	if cell == nil || *cell == naSentinel {
		return models.Observation{}
	}
	return models.Observed(*cell)
}
