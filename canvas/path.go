// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import "math"

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo moves to a point without drawing.
type MoveTo struct {
	Point Point
}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

// Close closes the current subpath.
type Close struct{}

func (MoveTo) isPathElement()  {}
func (LineTo) isPathElement()  {}
func (QuadTo) isPathElement()  {}
func (CubicTo) isPathElement() {}
func (Close) isPathElement()   {}

// Path is a vector path in user space.
// Paths handed to a Canvas must not be modified afterwards.
type Path struct {
	elements []PathElement
	start    Point
	current  Point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{elements: make([]PathElement, 0, 16)}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) *Path {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
	return p
}

// LineTo adds a line to (x, y).
func (p *Path) LineTo(x, y float64) *Path {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
	return p
}

// QuadraticTo adds a quadratic Bezier curve.
func (p *Path) QuadraticTo(cx, cy, x, y float64) *Path {
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: pt})
	p.current = pt
	return p
}

// CubicTo adds a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *Path {
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    pt,
	})
	p.current = pt
	return p
}

// Close closes the current subpath.
func (p *Path) Close() *Path {
	p.elements = append(p.elements, Close{})
	p.current = p.start
	return p
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.elements) == 0
}

// Rectangle appends a closed rectangle subpath.
func (p *Path) Rectangle(x, y, w, h float64) *Path {
	return p.MoveTo(x, y).LineTo(x+w, y).LineTo(x+w, y+h).LineTo(x, y+h).Close()
}

// Ellipse appends a closed ellipse subpath approximated by four cubics.
func (p *Path) Ellipse(cx, cy, rx, ry float64) *Path {
	const k = 0.5522847498307936
	ox, oy := rx*k, ry*k

	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	p.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	p.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	p.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	return p.Close()
}

// Circle appends a closed circle subpath.
func (p *Path) Circle(cx, cy, r float64) *Path {
	return p.Ellipse(cx, cy, r, r)
}

// Transform returns a copy of the path with every point mapped through m.
func (p *Path) Transform(m Matrix) *Path {
	out := &Path{
		elements: make([]PathElement, len(p.elements)),
		start:    m.TransformPoint(p.start),
		current:  m.TransformPoint(p.current),
	}
	for i, e := range p.elements {
		switch e := e.(type) {
		case MoveTo:
			out.elements[i] = MoveTo{Point: m.TransformPoint(e.Point)}
		case LineTo:
			out.elements[i] = LineTo{Point: m.TransformPoint(e.Point)}
		case QuadTo:
			out.elements[i] = QuadTo{Control: m.TransformPoint(e.Control), Point: m.TransformPoint(e.Point)}
		case CubicTo:
			out.elements[i] = CubicTo{
				Control1: m.TransformPoint(e.Control1),
				Control2: m.TransformPoint(e.Control2),
				Point:    m.TransformPoint(e.Point),
			}
		case Close:
			out.elements[i] = e
		}
	}
	return out
}

// Flatten converts the path into polylines, one per subpath, approximating
// curves with line segments no longer than tolerance device units apart.
// Closed subpaths end with their starting point.
func (p *Path) Flatten(tolerance float64) [][]Point {
	if tolerance <= 0 {
		tolerance = 0.25
	}

	var (
		out     [][]Point
		cur     []Point
		start   Point
		current Point
	)
	flush := func() {
		if len(cur) > 1 {
			out = append(out, cur)
		}
		cur = nil
	}

	for _, e := range p.elements {
		switch e := e.(type) {
		case MoveTo:
			flush()
			start, current = e.Point, e.Point
			cur = []Point{current}
		case LineTo:
			if cur == nil {
				cur = []Point{current}
			}
			current = e.Point
			cur = append(cur, current)
		case QuadTo:
			if cur == nil {
				cur = []Point{current}
			}
			n := segments(current, e.Control, e.Point, e.Point, tolerance)
			p0 := current
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				mt := 1 - t
				cur = append(cur, Point{
					X: mt*mt*p0.X + 2*mt*t*e.Control.X + t*t*e.Point.X,
					Y: mt*mt*p0.Y + 2*mt*t*e.Control.Y + t*t*e.Point.Y,
				})
			}
			current = e.Point
		case CubicTo:
			if cur == nil {
				cur = []Point{current}
			}
			n := segments(current, e.Control1, e.Control2, e.Point, tolerance)
			p0 := current
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				mt := 1 - t
				a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
				cur = append(cur, Point{
					X: a*p0.X + b*e.Control1.X + c*e.Control2.X + d*e.Point.X,
					Y: a*p0.Y + b*e.Control1.Y + c*e.Control2.Y + d*e.Point.Y,
				})
			}
			current = e.Point
		case Close:
			if cur != nil {
				cur = append(cur, start)
			}
			flush()
			current = start
		}
	}
	flush()
	return out
}

// segments estimates how many line segments approximate a curve within
// tolerance, from the length of its control polygon.
func segments(p0, p1, p2, p3 Point, tolerance float64) int {
	l := math.Hypot(p1.X-p0.X, p1.Y-p0.Y) +
		math.Hypot(p2.X-p1.X, p2.Y-p1.Y) +
		math.Hypot(p3.X-p2.X, p3.Y-p2.Y)
	n := int(math.Ceil(math.Sqrt(l / tolerance)))
	return max(1, min(n, 256))
}
