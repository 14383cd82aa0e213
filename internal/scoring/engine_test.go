package scoring

import (
	"math"
	"testing"

	"github.com/sherpa-labs/sherpa/internal/store"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestAxisScore(t *testing.T) {
	t.Run("empty group is zero", func(t *testing.T) {
		if got := AxisScore(map[string]float64{}); got != 0 {
			t.Errorf("expected 0 for empty group, got %f", got)
		}
		if got := AxisScore(nil); got != 0 {
			t.Errorf("expected 0 for nil group, got %f", got)
		}
	})

	t.Run("mean", func(t *testing.T) {
		got := AxisScore(map[string]float64{"a": 10, "b": 0, "c": 5})
		if !almostEqual(got, 5) {
			t.Errorf("expected 5, got %f", got)
		}
	})
}

func TestPlotValue(t *testing.T) {
	tests := []struct {
		avg  float64
		want float64
	}{
		{0, -10},
		{5, 0},
		{10, 10},
		{2.5, -5},
	}
	for _, tt := range tests {
		if got := PlotValue(tt.avg); !almostEqual(got, tt.want) {
			t.Errorf("PlotValue(%f) = %f, want %f", tt.avg, got, tt.want)
		}
	}
}

func TestPlotValueExtremes(t *testing.T) {
	// Max raw average plots to 10, min to -10.
	full := map[string]float64{"a": 10, "b": 10, "c": 10}
	if got := PlotValue(AxisScore(full)); !almostEqual(got, 10) {
		t.Errorf("expected 10, got %f", got)
	}
	empty := map[string]float64{"a": 0, "b": 0, "c": 0}
	if got := PlotValue(AxisScore(empty)); !almostEqual(got, -10) {
		t.Errorf("expected -10, got %f", got)
	}
}

func TestTierBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  Tier
	}{
		{10, TierA},
		{8.5, TierA}, // inclusive lower bound
		{8.4999, TierB},
		{7.0, TierB},
		{6.9999, TierC},
		{5.5, TierC},
		{5.4999, TierD},
		{0, TierD},
		{-1, TierD},
	}
	for _, tt := range tests {
		if got := TierFor(tt.score); got != tt.want {
			t.Errorf("TierFor(%f) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestAdditionalScore(t *testing.T) {
	t.Run("positive max single criterion", func(t *testing.T) {
		got := AdditionalScore(
			map[string]float64{"k": 10},
			map[string]store.AdditionalWeight{"k": {Weight: 1, Type: store.TypePositive}},
		)
		if !almostEqual(got, 2.0) {
			t.Errorf("expected 2.0, got %f", got)
		}
	})

	t.Run("negative severity 10 cancels weight", func(t *testing.T) {
		got := AdditionalScore(
			map[string]float64{"k": 10},
			map[string]store.AdditionalWeight{"k": {Weight: 1, Type: store.TypeNegative}},
		)
		if !almostEqual(got, 0) {
			t.Errorf("expected 0, got %f", got)
		}
	})

	t.Run("bidirectional pivot at 5", func(t *testing.T) {
		w := map[string]store.AdditionalWeight{"k": {Weight: 1, Type: store.TypeBidirectional}}

		// score == 5 takes the >= 5 branch: contribution 5*1, scaled /5 = 1.
		atPivot := AdditionalScore(map[string]float64{"k": 5}, w)
		if !almostEqual(atPivot, 1.0) {
			t.Errorf("expected 1.0 at pivot, got %f", atPivot)
		}

		// Just below the pivot the sign flips: -(10-4.999)*1 / 5.
		below := AdditionalScore(map[string]float64{"k": 4.999}, w)
		if below >= 0 {
			t.Errorf("expected negative contribution below pivot, got %f", below)
		}
		want := -(10 - 4.999) / 5
		if !almostEqual(below, want) {
			t.Errorf("expected %f, got %f", want, below)
		}
	})

	t.Run("no overlapping keys is zero", func(t *testing.T) {
		got := AdditionalScore(
			map[string]float64{"a": 10},
			map[string]store.AdditionalWeight{"b": {Weight: 1, Type: store.TypePositive}},
		)
		if got != 0 {
			t.Errorf("expected 0, got %f", got)
		}
	})

	t.Run("empty maps are zero", func(t *testing.T) {
		if got := AdditionalScore(nil, nil); got != 0 {
			t.Errorf("expected 0, got %f", got)
		}
	})

	t.Run("mixed types", func(t *testing.T) {
		got := AdditionalScore(
			map[string]float64{"p": 10, "n": 0},
			map[string]store.AdditionalWeight{
				"p": {Weight: 1, Type: store.TypePositive},
				"n": {Weight: 1, Type: store.TypeNegative},
			},
		)
		// p: 10*1 = 10, n: (10-0)*1 = 10, sum 20 / (2*5) = 2.
		if !almostEqual(got, 2.0) {
			t.Errorf("expected 2.0, got %f", got)
		}
	})
}

func TestEvaluateEndToEnd(t *testing.T) {
	result := Evaluate(Input{
		Service:      map[string]float64{"a": 10, "b": 0},
		Research:     map[string]float64{"c": 5},
		Intelligence: map[string]float64{"d": 10},
		Resource:     map[string]float64{"e": 0},
	})

	if !almostEqual(result.BaseScore, 6.25) {
		t.Errorf("base score = %f, want 6.25", result.BaseScore)
	}
	if !almostEqual(result.TotalScore, 6.25) {
		t.Errorf("total score = %f, want 6.25", result.TotalScore)
	}
	if result.Tier != TierC {
		t.Errorf("tier = %s, want Tier C", result.Tier)
	}
	if !almostEqual(result.ServiceResearch.X, 0) || !almostEqual(result.ServiceResearch.Y, 0) {
		t.Errorf("service/research axis = (%f,%f), want (0,0)",
			result.ServiceResearch.X, result.ServiceResearch.Y)
	}
	if !almostEqual(result.IntelligenceResource.X, 10) || !almostEqual(result.IntelligenceResource.Y, -10) {
		t.Errorf("intelligence/resource axis = (%f,%f), want (10,-10)",
			result.IntelligenceResource.X, result.IntelligenceResource.Y)
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	in := Input{
		Service:          map[string]float64{"a": 7.5, "b": 3.2},
		Research:         map[string]float64{"c": 9},
		Intelligence:     map[string]float64{"d": 4.4},
		Resource:         map[string]float64{"e": 6.1},
		AdditionalScores: map[string]float64{"x": 8},
		AdditionalWeights: map[string]store.AdditionalWeight{
			"x": {Weight: 0.7, Type: store.TypePositive},
		},
	}
	first := Evaluate(in)
	second := Evaluate(in)
	if first != second {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}
}

func TestEvaluateEmptyInput(t *testing.T) {
	result := Evaluate(Input{})
	if result.TotalScore != 0 {
		t.Errorf("expected 0 total for empty input, got %f", result.TotalScore)
	}
	if result.Tier != TierD {
		t.Errorf("expected Tier D for empty input, got %s", result.Tier)
	}
	if result.ServiceResearch.X != -10 || result.IntelligenceResource.Y != -10 {
		t.Error("empty groups should plot at -10")
	}
}

func TestResultApply(t *testing.T) {
	c := &store.Compass{Tier: "Tier A", TotalScore: 9.9}
	Evaluate(Input{
		Service:  map[string]float64{"a": 5},
		Research: map[string]float64{"b": 5},
	}).Apply(c)
	if c.Tier != string(TierD) {
		t.Errorf("apply did not replace tier, got %s", c.Tier)
	}
	if !almostEqual(c.TotalScore, 2.5) {
		t.Errorf("apply did not replace total score, got %f", c.TotalScore)
	}
}

func TestDomainClamp(t *testing.T) {
	tests := []struct {
		d    Domain
		v    float64
		want float64
	}{
		{DomainStandard, 12, 10},
		{DomainStandard, -3, 0},
		{DomainStandard, 5, 5},
		{DomainCompact, 4, 3},
		{DomainSigned, -2, -1},
	}
	for _, tt := range tests {
		if got := tt.d.Clamp(tt.v); got != tt.want {
			t.Errorf("Clamp(%f) = %f, want %f", tt.v, got, tt.want)
		}
	}
	if !DomainStandard.Contains(DomainStandard.Default) {
		t.Error("default must lie within its domain")
	}
}
