package scoring

import (
	"github.com/sherpa-labs/sherpa/internal/store"
)

// The engine is pure computation over its arguments: no I/O, no shared state,
// safe to call from any number of sessions at once. It does not validate
// score domains: out-of-band values pass through unchecked and the caller is
// responsible for constraining inputs (see Domain).

// Input bundles the raw per-criterion scores for one evaluation, plus the
// additional-criteria scores and the weight snapshot they are judged under.
type Input struct {
	Service      map[string]float64
	Research     map[string]float64
	Intelligence map[string]float64
	Resource     map[string]float64

	AdditionalScores  map[string]float64
	AdditionalWeights map[string]store.AdditionalWeight
}

// GroupAverages are the four raw group means on the [0,10] scale.
type GroupAverages struct {
	Service      float64 `json:"service"`
	Research     float64 `json:"research"`
	Intelligence float64 `json:"intelligence"`
	Resource     float64 `json:"resource"`
}

// Result is the complete derived output for one evaluation.
type Result struct {
	ServiceResearch      store.AxisPoint `json:"service_research_score"`
	IntelligenceResource store.AxisPoint `json:"intelligence_resource_score"`
	TotalScore           float64         `json:"total_score"`
	Tier                 Tier            `json:"tier"`
	BaseScore            float64         `json:"base_score"`
	AdditionalScore      float64         `json:"additional_score"`
	GroupAverages        GroupAverages   `json:"group_averages"`
}

// AxisScore returns the arithmetic mean of a criterion group's raw scores,
// or 0 for an empty group so an empty framework never divides by zero.
func AxisScore(scores map[string]float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, v := range scores {
		sum += v
	}
	return sum / float64(len(scores))
}

// PlotValue maps a raw group average on [0,10] onto the [-10,10] plot range.
func PlotValue(avg float64) float64 {
	return avg*2 - 10
}

// AdditionalScore aggregates the weighted additional criteria into a single
// modifier. Only keys present in both maps contribute:
//
//	positive:      score * weight
//	negative:      (10 - score) * weight   (raw score is severity; 10 cancels the weight)
//	bidirectional: score * weight when score >= 5, else -(10 - score) * weight
//
// The sum is rescaled by n*5 so a maximally-scored single criterion
// contributes at most weight/5, a perturbation of the base score rather
// than a dominator.
func AdditionalScore(scores map[string]float64, weights map[string]store.AdditionalWeight) float64 {
	var sum float64
	n := 0
	for key, score := range scores {
		w, ok := weights[key]
		if !ok {
			continue
		}
		switch w.Type {
		case store.TypeNegative:
			sum += (10 - score) * w.Weight
		case store.TypeBidirectional:
			if score >= 5 {
				sum += score * w.Weight
			} else {
				sum += (10 - score) * w.Weight * -1
			}
		default: // positive
			sum += score * w.Weight
		}
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / (float64(n) * 5)
}

// Evaluate is the single entry point the rest of the system calls. It is
// idempotent and side-effect-free: the same input always produces the same
// axis pairs, total score, and tier.
func Evaluate(in Input) Result {
	avgs := GroupAverages{
		Service:      AxisScore(in.Service),
		Research:     AxisScore(in.Research),
		Intelligence: AxisScore(in.Intelligence),
		Resource:     AxisScore(in.Resource),
	}

	baseScore := (avgs.Service + avgs.Research + avgs.Intelligence + avgs.Resource) / 4
	additionalScore := AdditionalScore(in.AdditionalScores, in.AdditionalWeights)
	totalScore := baseScore + additionalScore

	return Result{
		ServiceResearch: store.AxisPoint{
			X: PlotValue(avgs.Service),
			Y: PlotValue(avgs.Research),
		},
		IntelligenceResource: store.AxisPoint{
			X: PlotValue(avgs.Intelligence),
			Y: PlotValue(avgs.Resource),
		},
		TotalScore:      totalScore,
		Tier:            TierFor(totalScore),
		BaseScore:       baseScore,
		AdditionalScore: additionalScore,
		GroupAverages:   avgs,
	}
}

// Apply writes the derived fields of a result onto a compass, replacing any
// prior values.
func (r Result) Apply(c *store.Compass) {
	c.ServiceResearch = r.ServiceResearch
	c.IntelligenceResource = r.IntelligenceResource
	c.TotalScore = r.TotalScore
	c.Tier = string(r.Tier)
}
