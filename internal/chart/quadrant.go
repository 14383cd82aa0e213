package chart

import (
	"fmt"
	"math"
)

const (
	// bubbleScale converts an evaluation score into a marker size.
	bubbleScale = 18.0

	// curveSamples is the resolution of each reference curve.
	curveSamples = 200
)

// referenceShifts are the horizontal shifts of the maturity reference
// curves, paired with the horizon label drawn at each curve.
var referenceShifts = []struct {
	Shift float64
	Label string
}{
	{6, "6 months"},
	{9, "12 months"},
	{12, "18 months"},
	{15, "24 months"},
	{18, "30 months"},
}

// Point is one subnet positioned on the quadrant map.
type Point struct {
	Label string
	X     float64
	Y     float64
	Score float64
	Notes string
}

// QuadrantFigure builds the subnet landscape map: one bubble per point,
// sized by score and colored on a red-to-green gradient, over the
// maturity reference curves.
func QuadrantFigure(points []Point) Figure {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	texts := make([]string, len(points))
	hovers := make([]string, len(points))
	sizes := make([]float64, len(points))

	scores := make([]float64, len(points))
	for i, p := range points {
		scores[i] = p.Score
	}
	norms := normalizeScores(scores)

	colors := make([]string, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
		texts[i] = p.Label
		sizes[i] = p.Score * bubbleScale
		colors[i] = gradientColor(norms[i])
		hovers[i] = hoverLabel(p)
	}

	traces := ReferenceCurves()
	traces = append(traces, Trace{
		Name: "Subnets",
		Mode: "markers",
		X:    xs,
		Y:    ys,
		Text: texts,
		HoverText: hovers,
		Marker: &Marker{
			Sizes:   sizes,
			Colors:  colors,
			Opacity: 0.85,
		},
	})

	return Figure{
		Traces: traces,
		Layout: Layout{
			Title: "Subnet Landscape",
			XAxis: Axis{
				Title:        "Service → Research",
				Range:        [2]float64{-10, 10},
				TickInterval: 5,
				ZeroLine:     true,
			},
			YAxis: Axis{
				Title:        "Resource → Intelligence",
				Range:        [2]float64{-10, 10},
				TickInterval: 5,
				ZeroLine:     true,
			},
		},
	}
}

// ReferenceCurves returns the shifted sigmoid curves that sketch the
// expected maturity trajectory across the map. Each curve is
//
//	y = 20/(1+e^(-0.4*(x+shift))) - 11.9
//
// sampled uniformly over the plot range.
func ReferenceCurves() []Trace {
	traces := make([]Trace, 0, len(referenceShifts))
	for _, ref := range referenceShifts {
		xs := make([]float64, curveSamples)
		ys := make([]float64, curveSamples)
		for i := 0; i < curveSamples; i++ {
			x := -10 + 20*float64(i)/float64(curveSamples-1)
			xs[i] = x
			ys[i] = referenceY(x, ref.Shift)
		}
		traces = append(traces, Trace{
			Name: ref.Label,
			Mode: "lines",
			X:    xs,
			Y:    ys,
			Line: &Line{Color: "rgba(128,128,128,0.45)", Width: 1, Dash: "dot"},
		})
	}
	return traces
}

func referenceY(x, shift float64) float64 {
	return 20/(1+math.Exp(-0.4*(x+shift))) - 11.9
}

// normalizeScores maps scores onto [0,1] by min-max scaling. When all
// scores are equal (or there are none) every point gets 0.5 so the
// gradient degenerates to the midpoint instead of dividing by zero.
func normalizeScores(scores []float64) []float64 {
	norms := make([]float64, len(scores))
	if len(scores) == 0 {
		return norms
	}
	min, max := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	for i, s := range scores {
		if max == min {
			norms[i] = 0.5
			continue
		}
		norms[i] = (s - min) / (max - min)
	}
	return norms
}

// gradientColor interpolates red (0) to green (1) for a normalized score.
func gradientColor(norm float64) string {
	if norm < 0 {
		norm = 0
	}
	if norm > 1 {
		norm = 1
	}
	r := int(math.Round(255 * (1 - norm)))
	g := int(math.Round(255 * norm))
	return fmt.Sprintf("rgb(%d,%d,0)", r, g)
}

func hoverLabel(p Point) string {
	s := fmt.Sprintf("%s<br>Score: %.2f", p.Label, p.Score)
	if p.Notes != "" {
		s += "<br>" + p.Notes
	}
	return s
}
