package scoring

// Tier is the ranked classification derived from a total score. It is a pure
// function of the score and is recomputed whenever the score changes.
type Tier string

const (
	TierA Tier = "Tier A"
	TierB Tier = "Tier B"
	TierC Tier = "Tier C"
	TierD Tier = "Tier D"
)

// Tier thresholds, inclusive lower bounds evaluated high to low.
const (
	tierAThreshold = 8.5
	tierBThreshold = 7.0
	tierCThreshold = 5.5
)

// TierFor maps a total score onto the tier ladder. First match wins; there is
// no hysteresis.
func TierFor(totalScore float64) Tier {
	switch {
	case totalScore >= tierAThreshold:
		return TierA
	case totalScore >= tierBThreshold:
		return TierB
	case totalScore >= tierCThreshold:
		return TierC
	default:
		return TierD
	}
}
