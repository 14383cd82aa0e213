package chart

import (
	"fmt"
	"sort"

	"github.com/sherpa-labs/sherpa/internal/store"
)

// AxisKind selects which axis pair a compass chart plots.
type AxisKind string

const (
	AxisServiceResearch      AxisKind = "service_research"
	AxisIntelligenceResource AxisKind = "intelligence_resource"
)

// Valid reports whether k names a known axis pair.
func (k AxisKind) Valid() bool {
	return k == AxisServiceResearch || k == AxisIntelligenceResource
}

// tierColors maps a tier to its display color.
var tierColors = map[string]string{
	"Tier A": "#3dc5bd",
	"Tier B": "#5884c5",
	"Tier C": "#f4be55",
	"Tier D": "#ff9f64",
}

const fallbackColor = "#9e9e9e"

// TierColor returns the display color for a tier, or a neutral grey for
// anything unrecognized.
func TierColor(tier string) string {
	if c, ok := tierColors[tier]; ok {
		return c
	}
	return fallbackColor
}

// CompassFigure plots saved evaluations on one axis pair quadrant. Each
// compass becomes a bubble sized by its total score and colored by tier,
// with quadrant corner labels and dashed center lines.
func CompassFigure(compasses []store.Compass, kind AxisKind) Figure {
	xs := make([]float64, len(compasses))
	ys := make([]float64, len(compasses))
	texts := make([]string, len(compasses))
	hovers := make([]string, len(compasses))
	sizes := make([]float64, len(compasses))
	colors := make([]string, len(compasses))

	for i, c := range compasses {
		pt := c.ServiceResearch
		if kind == AxisIntelligenceResource {
			pt = c.IntelligenceResource
		}
		// The first axis of the pair is plotted vertically, the
		// second horizontally.
		xs[i] = pt.Y
		ys[i] = pt.X
		texts[i] = c.Name
		sizes[i] = c.TotalScore * bubbleScale
		colors[i] = TierColor(c.Tier)
		hovers[i] = fmt.Sprintf("%s<br>Total: %.2f<br>%s", c.Name, c.TotalScore, c.Tier)
	}

	var xTitle, yTitle string
	var quadrants [4]string
	switch kind {
	case AxisIntelligenceResource:
		xTitle, yTitle = "Resource Orientation", "Intelligence Orientation"
		quadrants = [4]string{"Resource-Focused", "Full-Spectrum", "Balanced", "Intelligence-Focused"}
	default:
		xTitle, yTitle = "Research Orientation", "Service Orientation"
		quadrants = [4]string{"Research-Focused", "Full-Spectrum", "Balanced", "Service-Focused"}
	}

	return Figure{
		Traces: []Trace{{
			Name:      "Compasses",
			Mode:      "markers",
			X:         xs,
			Y:         ys,
			Text:      texts,
			HoverText: hovers,
			Marker: &Marker{
				Sizes:   sizes,
				Colors:  colors,
				Opacity: 0.85,
			},
		}},
		Layout: Layout{
			Title: fmt.Sprintf("%s vs %s", yTitle, xTitle),
			XAxis: Axis{Title: xTitle, Range: [2]float64{-11, 11}, ZeroLine: false},
			YAxis: Axis{Title: yTitle, Range: [2]float64{-11, 11}, ZeroLine: false},
			Annotations: []Annotation{
				{X: -5, Y: 5, Text: quadrants[0]},
				{X: 5, Y: 5, Text: quadrants[1]},
				{X: -5, Y: -5, Text: quadrants[2]},
				{X: 5, Y: -5, Text: quadrants[3]},
			},
			Shapes: []Shape{
				{Type: "line", X0: 0, Y0: -10, X1: 0, Y1: 10, Color: "gray", Dash: "dash"},
				{Type: "line", X0: -10, Y0: 0, X1: 10, Y1: 0, Color: "gray", Dash: "dash"},
			},
		},
	}
}

// ScoreBarFigure ranks saved evaluations by total score, one bar per
// compass colored by tier, highest first.
func ScoreBarFigure(compasses []store.Compass) Figure {
	sorted := make([]store.Compass, len(compasses))
	copy(sorted, compasses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalScore > sorted[j].TotalScore
	})

	xs := make([]float64, len(sorted))
	ys := make([]float64, len(sorted))
	texts := make([]string, len(sorted))
	colors := make([]string, len(sorted))
	for i, c := range sorted {
		xs[i] = float64(i)
		ys[i] = c.TotalScore
		texts[i] = c.Name
		colors[i] = TierColor(c.Tier)
	}

	right := float64(len(sorted))
	if right == 0 {
		right = 1
	}

	return Figure{
		Traces: []Trace{{
			Name:   "Total Scores",
			Mode:   "bars",
			X:      xs,
			Y:      ys,
			Text:   texts,
			Marker: &Marker{Colors: colors},
		}},
		Layout: Layout{
			Title: "Evaluation Ranking",
			XAxis: Axis{Title: "Subnet"},
			YAxis: Axis{Title: "Total Score", Range: [2]float64{0, 12}},
			Shapes: []Shape{
				tierBand(-0.5, right, 8.5, 12, "Tier A"),
				tierBand(-0.5, right, 7.0, 8.5, "Tier B"),
				tierBand(-0.5, right, 5.5, 7.0, "Tier C"),
				tierBand(-0.5, right, 0, 5.5, "Tier D"),
			},
		},
	}
}

// tierBand is a translucent background rectangle marking one tier range.
func tierBand(x0, x1, y0, y1 float64, tier string) Shape {
	return Shape{
		Type:      "rect",
		X0:        x0,
		Y0:        y0,
		X1:        x1,
		Y1:        y1,
		FillColor: TierColor(tier) + "22",
	}
}
