// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import "fmt"

// Canvas is an open drawing session on a surface: a backend Context plus the
// state stack through which every drawing command is issued.
//
// Canvas is NOT safe for concurrent use.
type Canvas struct {
	ctx    Context
	stack  *Stack
	width  int
	height int
}

// New opens a canvas on ctx for a target of the given size. The bottom
// snapshot is DefaultState and is applied to ctx immediately.
func New(ctx Context, width, height int) (*Canvas, error) {
	return NewWithState(ctx, width, height, DefaultState())
}

// NewWithState is like New with a custom bottom state.
func NewWithState(ctx Context, width, height int, base State) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("canvas: invalid dimensions: width=%d, height=%d", width, height)
	}
	stack, err := NewStack(ctx, base)
	if err != nil {
		return nil, err
	}
	return &Canvas{
		ctx:    ctx,
		stack:  stack,
		width:  width,
		height: height,
	}, nil
}

// Width returns the target width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the target height in pixels.
func (c *Canvas) Height() int { return c.height }

// Size returns width and height as a convenience.
func (c *Canvas) Size() (width, height int) { return c.width, c.height }

// Stack returns the canvas state stack.
func (c *Canvas) Stack() *Stack { return c.stack }

// State returns a copy of the active state.
func (c *Canvas) State() State { return c.stack.Current() }

// Depth returns the number of snapshots on the stack.
func (c *Canvas) Depth() int { return c.stack.Depth() }

// Closed reports whether the canvas has been closed.
func (c *Canvas) Closed() bool { return c.stack.Closed() }

// Push saves the active state. Close the returned session to restore it.
func (c *Canvas) Push() (*Session, error) { return c.stack.Push() }

// Pop restores the state saved by the most recent Push.
// Prefer closing the Session returned by Push.
func (c *Canvas) Pop() error { return c.stack.Pop() }

// SetTransform replaces the current transform.
func (c *Canvas) SetTransform(m Matrix) error { return c.stack.SetTransform(m) }

// Transform multiplies the current transform by m (m is applied first).
func (c *Canvas) Transform(m Matrix) error {
	return c.stack.SetTransform(c.stack.Current().Transform.Multiply(m))
}

// ResetTransform restores the identity transform.
func (c *Canvas) ResetTransform() error { return c.stack.SetTransform(Identity()) }

// Translate applies a translation to the current transform.
func (c *Canvas) Translate(x, y float64) error { return c.Transform(Translate(x, y)) }

// Scale applies a scale to the current transform.
func (c *Canvas) Scale(x, y float64) error { return c.Transform(Scale(x, y)) }

// Rotate applies a rotation (radians) to the current transform.
func (c *Canvas) Rotate(angle float64) error { return c.Transform(Rotate(angle)) }

// SetFillColor selects a solid fill.
func (c *Canvas) SetFillColor(col Color) error { return c.stack.SetFillColor(col) }

// SetFillGradient selects a gradient fill.
func (c *Canvas) SetFillGradient(g Gradient) error { return c.stack.SetFillGradient(g) }

// SetFillTexture selects a texture fill.
func (c *Canvas) SetFillTexture(tf *TextureFill) error { return c.stack.SetFillTexture(tf) }

// SetStrokeWidth sets the stroke width.
func (c *Canvas) SetStrokeWidth(w float64) error { return c.stack.SetStrokeWidth(w) }

// SetStrokeColor selects a solid stroke.
func (c *Canvas) SetStrokeColor(col Color) error { return c.stack.SetStrokeColor(col) }

// SetStrokeGradient selects a gradient stroke.
func (c *Canvas) SetStrokeGradient(g Gradient) error { return c.stack.SetStrokeGradient(g) }

// SetClip replaces the clip region. A nil clip removes clipping.
func (c *Canvas) SetClip(clip *Clip) error { return c.stack.SetClip(clip) }

// ClipRect clips to a rectangle in the current user space.
func (c *Canvas) ClipRect(x, y, w, h float64) error {
	return c.stack.SetClip(&Clip{Rect: R(x, y, w, h), Transform: c.stack.Current().Transform})
}

// ClipPath clips to a path in the current user space. A nil or empty path
// removes clipping, like ClearClip.
func (c *Canvas) ClipPath(p *Path) error {
	if p.IsEmpty() {
		return c.ClearClip()
	}
	return c.stack.SetClip(&Clip{Path: p, Rect: Bounds(pathPoints(p)), Transform: c.stack.Current().Transform})
}

// ClearClip removes clipping.
func (c *Canvas) ClearClip() error { return c.stack.SetClip(nil) }

// Clear fills the whole canvas with col.
func (c *Canvas) Clear(col Color) error {
	if c.stack.Closed() {
		return ErrClosed
	}
	return c.ctx.Clear(col)
}

// FillPath fills p with the active fill source.
func (c *Canvas) FillPath(p *Path) error {
	sh, err := c.stack.FillShader()
	if err != nil {
		return err
	}
	if p.IsEmpty() {
		return nil
	}
	return c.ctx.Fill(p, sh)
}

// StrokePath strokes p with the active stroke source and width.
func (c *Canvas) StrokePath(p *Path) error {
	sh, err := c.stack.StrokeShader()
	if err != nil {
		return err
	}
	if p.IsEmpty() {
		return nil
	}
	return c.ctx.Stroke(p, sh)
}

// FillRect fills a rectangle.
func (c *Canvas) FillRect(x, y, w, h float64) error {
	return c.FillPath(NewPath().Rectangle(x, y, w, h))
}

// StrokeRect strokes a rectangle outline.
func (c *Canvas) StrokeRect(x, y, w, h float64) error {
	return c.StrokePath(NewPath().Rectangle(x, y, w, h))
}

// FillCircle fills a circle.
func (c *Canvas) FillCircle(x, y, r float64) error {
	return c.FillPath(NewPath().Circle(x, y, r))
}

// StrokeCircle strokes a circle outline.
func (c *Canvas) StrokeCircle(x, y, r float64) error {
	return c.StrokePath(NewPath().Circle(x, y, r))
}

// FillEllipse fills an ellipse.
func (c *Canvas) FillEllipse(x, y, rx, ry float64) error {
	return c.FillPath(NewPath().Ellipse(x, y, rx, ry))
}

// DrawLine strokes a line segment.
func (c *Canvas) DrawLine(x1, y1, x2, y2 float64) error {
	return c.StrokePath(NewPath().MoveTo(x1, y1).LineTo(x2, y2))
}

// DrawPolygon fills the closed polygon through points.
func (c *Canvas) DrawPolygon(points []Point) error {
	if len(points) < 3 {
		return nil
	}
	p := NewPath().MoveTo(points[0].X, points[0].Y)
	for _, pt := range points[1:] {
		p.LineTo(pt.X, pt.Y)
	}
	return c.FillPath(p.Close())
}

// DrawTexture draws t at (x, y) at its natural size.
func (c *Canvas) DrawTexture(t Texture, x, y float64) error {
	return c.DrawTextureRect(t, R(x, y, float64(t.Width()), float64(t.Height())))
}

// DrawTextureRect draws t scaled into dst.
func (c *Canvas) DrawTextureRect(t Texture, dst Rect) error {
	if c.stack.Closed() {
		return ErrClosed
	}
	return c.ctx.DrawTexture(t, dst)
}

// DrawText draws text with its baseline origin at (x, y) in the fill color.
func (c *Canvas) DrawText(text string, x, y float64) error {
	if c.stack.Closed() {
		return ErrClosed
	}
	return c.ctx.DrawText(text, Pt(x, y))
}

// Flush commits pending drawing operations to the backend.
func (c *Canvas) Flush() error {
	if c.stack.Closed() {
		return ErrClosed
	}
	return c.ctx.Flush()
}

// Close releases every snapshot, top first, and then the backend context.
// Close is idempotent.
func (c *Canvas) Close() error {
	return c.stack.Close()
}

func pathPoints(p *Path) []Point {
	var pts []Point
	for _, poly := range p.Flatten(1) {
		pts = append(pts, poly...)
	}
	return pts
}
