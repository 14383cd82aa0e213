// Package chart builds serializable figure documents for the quadrant and
// ranking views. The output is a rendering contract, not a binding to any
// charting library: any 2D plotting capability that honors the trace, size,
// color, and curve semantics can draw it.
package chart

// Figure is a complete renderable chart: data traces plus layout.
type Figure struct {
	Traces []Trace `json:"traces"`
	Layout Layout  `json:"layout"`
}

// Trace is one drawable series.
type Trace struct {
	Name      string    `json:"name,omitempty"`
	Mode      string    `json:"mode"` // "markers", "lines", "bars"
	X         []float64 `json:"x"`
	Y         []float64 `json:"y"`
	Text      []string  `json:"text,omitempty"`
	HoverText []string  `json:"hover_text,omitempty"`
	Marker    *Marker   `json:"marker,omitempty"`
	Line      *Line     `json:"line,omitempty"`
}

// Marker styles the points of a marker trace. Sizes and Colors are parallel
// to the trace's X/Y series.
type Marker struct {
	Sizes   []float64 `json:"sizes,omitempty"`
	Colors  []string  `json:"colors,omitempty"`
	Opacity float64   `json:"opacity,omitempty"`
}

// Line styles a line trace.
type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
	Dash  string  `json:"dash,omitempty"`
}

// Layout describes titles, axes, and static decoration.
type Layout struct {
	Title       string       `json:"title,omitempty"`
	XAxis       Axis         `json:"xaxis"`
	YAxis       Axis         `json:"yaxis"`
	Annotations []Annotation `json:"annotations,omitempty"`
	Shapes      []Shape      `json:"shapes,omitempty"`
}

// Axis is one plot axis with a fixed range.
type Axis struct {
	Title        string     `json:"title,omitempty"`
	Range        [2]float64 `json:"range"`
	TickInterval float64    `json:"tick_interval,omitempty"`
	ZeroLine     bool       `json:"zero_line"`
}

// Annotation is a fixed text label placed in data coordinates.
type Annotation struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Text string  `json:"text"`
}

// Shape is a static line or rectangle placed in data coordinates.
type Shape struct {
	Type      string  `json:"type"` // "line" or "rect"
	X0        float64 `json:"x0"`
	Y0        float64 `json:"y0"`
	X1        float64 `json:"x1"`
	Y1        float64 `json:"y1"`
	Color     string  `json:"color,omitempty"`
	Dash      string  `json:"dash,omitempty"`
	FillColor string  `json:"fill_color,omitempty"`
}
