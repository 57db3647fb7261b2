package risk

import "github.com/pairsentry/pairsentry/models"

// DefaultPublishThreshold is deliberately strict: a false negative on
// token security is far more costly than a missed post.
const DefaultPublishThreshold = 98.0

// ShouldPublish converts a scored profile into the publish decision.
// Profiles with an extraction error or no computed score never
// publish (fail closed). Otherwise the pair publishes iff its score
// strictly exceeds the threshold.
func ShouldPublish(profile *models.SecurityProfile, threshold float64) bool {
	if profile == nil || profile.Failed() || profile.Score == nil {
		return false
	}
	return *profile.Score > threshold
}
