package scoring

import (
	"github.com/dcoelho/company-match/config"
	"github.com/dcoelho/company-match/model"
)

// Combine merges the three signals into a single composite confidence score
// using the configured weights. The weights are validated at configuration
// load time to be non-negative and sum to 1; the result is clamped to [0,1]
// to guard against floating-point overshoot.
func Combine(signals model.SignalSet, weights config.Weights) float64 {
	combined := weights.String*signals.StringSimilarity +
		weights.Phonetic*signals.PhoneticSimilarity +
		weights.Dominance*signals.ScoreDominance
	return clamp01(combined)
}
