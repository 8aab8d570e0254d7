// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"math"
	"sort"
)

// ExtendMode defines how gradients extend beyond their defined bounds.
type ExtendMode int

const (
	// ExtendPad extends edge colors beyond bounds (default behavior).
	ExtendPad ExtendMode = iota
	// ExtendRepeat repeats the gradient pattern.
	ExtendRepeat
	// ExtendReflect mirrors the gradient pattern.
	ExtendReflect
)

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  Color
}

// Gradient is a logical gradient description. Gradients are immutable once
// constructed; snapshots share them and each resolves its own Shader.
type Gradient interface {
	// ColorAt returns the gradient color at user-space point (x, y).
	ColorAt(x, y float64) Color

	isGradient()
}

// LinearGradient is a color transition along the line from Start to End.
type LinearGradient struct {
	Start, End Point
	Extend     ExtendMode
	stops      []ColorStop
}

// NewLinearGradient creates a linear gradient from (x0, y0) to (x1, y1).
func NewLinearGradient(x0, y0, x1, y1 float64, extend ExtendMode, stops ...ColorStop) *LinearGradient {
	return &LinearGradient{
		Start:  Pt(x0, y0),
		End:    Pt(x1, y1),
		Extend: extend,
		stops:  sortStops(stops),
	}
}

// Stops returns a copy of the color stops, sorted by offset.
func (g *LinearGradient) Stops() []ColorStop {
	return append([]ColorStop(nil), g.stops...)
}

func (*LinearGradient) isGradient() {}

// ColorAt implements Gradient.
func (g *LinearGradient) ColorAt(x, y float64) Color {
	dx := g.End.X - g.Start.X
	dy := g.End.Y - g.Start.Y
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return firstStopColor(g.stops)
	}

	// Project the point onto the gradient line.
	t := ((x-g.Start.X)*dx + (y-g.Start.Y)*dy) / lengthSq
	return colorAtOffset(g.stops, t, g.Extend)
}

// RadialGradient is a color transition from Center outwards to Radius.
type RadialGradient struct {
	Center Point
	Radius float64
	Extend ExtendMode
	stops  []ColorStop
}

// NewRadialGradient creates a radial gradient centered on (cx, cy).
func NewRadialGradient(cx, cy, radius float64, extend ExtendMode, stops ...ColorStop) *RadialGradient {
	return &RadialGradient{
		Center: Pt(cx, cy),
		Radius: radius,
		Extend: extend,
		stops:  sortStops(stops),
	}
}

// Stops returns a copy of the color stops, sorted by offset.
func (g *RadialGradient) Stops() []ColorStop {
	return append([]ColorStop(nil), g.stops...)
}

func (*RadialGradient) isGradient() {}

// ColorAt implements Gradient.
func (g *RadialGradient) ColorAt(x, y float64) Color {
	if g.Radius <= 0 {
		return firstStopColor(g.stops)
	}
	t := math.Hypot(x-g.Center.X, y-g.Center.Y) / g.Radius
	return colorAtOffset(g.stops, t, g.Extend)
}

func sortStops(stops []ColorStop) []ColorStop {
	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

func applyExtendMode(t float64, mode ExtendMode) float64 {
	switch mode {
	case ExtendRepeat:
		t -= math.Floor(t)
	case ExtendReflect:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if int(period)%2 == 1 {
			t = 1 - t
		}
	default:
		t = clamp01(t)
	}
	return t
}

func firstStopColor(stops []ColorStop) Color {
	if len(stops) == 0 {
		return Transparent
	}
	return stops[0].Color
}

// colorAtOffset expects stops sorted by offset.
func colorAtOffset(stops []ColorStop, t float64, mode ExtendMode) Color {
	switch len(stops) {
	case 0:
		return Transparent
	case 1:
		return stops[0].Color
	}

	t = applyExtendMode(t, mode)

	idx := sort.Search(len(stops), func(i int) bool {
		return stops[i].Offset >= t
	})
	if idx == 0 {
		return stops[0].Color
	}
	if idx >= len(stops) {
		return stops[len(stops)-1].Color
	}

	s0, s1 := stops[idx-1], stops[idx]
	span := s1.Offset - s0.Offset
	if span <= 0 {
		return s1.Color
	}
	return s0.Color.Lerp(s1.Color, (t-s0.Offset)/span)
}
