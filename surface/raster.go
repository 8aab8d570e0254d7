// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/sim/canvas"
)

// flattenTolerance is the device-space tolerance used when strokes are
// flattened into segments.
const flattenTolerance = 0.25

var errForeignShader = errors.New("surface: shader was not created by this surface")

// rasterContext is the canvas.Context of an ImageSurface.
//
// Paths are mapped to device space through the applied transform and
// rasterized into an alpha coverage mask, which is intersected with the clip
// mask and composited with the fill source using source-over.
type rasterContext struct {
	dst    *image.RGBA
	bounds image.Rectangle

	state canvas.State

	// clip is nil when drawing is unclipped. clipFor is the Clip it was
	// rasterized from.
	clip    *image.Alpha
	clipFor *canvas.Clip

	z        *vector.Rasterizer
	coverage *image.Alpha
	closed   bool
}

var _ canvas.Context = (*rasterContext)(nil)

func newRasterContext(dst *image.RGBA) *rasterContext {
	b := dst.Bounds()
	return &rasterContext{
		dst:      dst,
		bounds:   b,
		state:    canvas.DefaultState(),
		z:        vector.NewRasterizer(b.Dx(), b.Dy()),
		coverage: image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy())),
	}
}

// Apply implements canvas.Context.
func (r *rasterContext) Apply(s canvas.State) error {
	if r.closed {
		return canvas.ErrClosed
	}
	r.state = s
	if s.Clip != r.clipFor {
		r.clipFor = s.Clip
		r.clip = r.rasterizeClip(s.Clip)
	}
	return nil
}

func (r *rasterContext) rasterizeClip(c *canvas.Clip) *image.Alpha {
	if c == nil {
		return nil
	}
	var p *canvas.Path
	if c.IsPath() {
		p = c.Path.Transform(c.Transform)
	} else {
		p = canvas.NewPath().Rectangle(c.Rect.X, c.Rect.Y, c.Rect.Width, c.Rect.Height).Transform(c.Transform)
	}
	mask := image.NewAlpha(r.coverage.Rect)
	r.z.Reset(mask.Rect.Dx(), mask.Rect.Dy())
	r.z.DrawOp = draw.Src
	addPath(r.z, p)
	r.z.Draw(mask, mask.Rect, image.Opaque, image.Point{})
	return mask
}

// NewShader implements canvas.Context.
func (r *rasterContext) NewShader(src canvas.ShaderSource) (canvas.Shader, error) {
	if r.closed {
		return nil, canvas.ErrClosed
	}
	switch {
	case src.Texture != nil:
		if src.Texture.Texture == nil {
			return nil, errors.New("surface: texture fill without texture")
		}
		inv, _ := src.Texture.Transform.Invert()
		return &shader{sample: textureSampler(src.Texture, inv)}, nil
	case src.Gradient != nil:
		g := src.Gradient
		return &shader{sample: func(x, y float64) color.NRGBA {
			return g.ColorAt(x, y).NRGBA()
		}}, nil
	default:
		return nil, errors.New("surface: empty shader source")
	}
}

// Clear implements canvas.Context.
func (r *rasterContext) Clear(c canvas.Color) error {
	if r.closed {
		return canvas.ErrClosed
	}
	draw.Draw(r.dst, r.bounds, image.NewUniform(c.NRGBA()), image.Point{}, draw.Src)
	return nil
}

// Fill implements canvas.Context.
func (r *rasterContext) Fill(p *canvas.Path, sh canvas.Shader) error {
	if r.closed {
		return canvas.ErrClosed
	}
	src, err := r.source(sh, r.state.FillColor)
	if err != nil {
		return err
	}
	r.resetCoverage()
	addPath(r.z, p.Transform(r.state.Transform))
	r.z.Draw(r.coverage, r.coverage.Rect, image.Opaque, image.Point{})
	r.composite(src)
	return nil
}

// Stroke implements canvas.Context. Segments are expanded to quads with
// round joins and caps.
func (r *rasterContext) Stroke(p *canvas.Path, sh canvas.Shader) error {
	if r.closed {
		return canvas.ErrClosed
	}
	hw := r.state.StrokeWidth * r.state.Transform.ScaleFactor() / 2
	if hw <= 0 {
		return nil
	}
	src, err := r.source(sh, r.state.StrokeColor)
	if err != nil {
		return err
	}

	outline := canvas.NewPath()
	for _, poly := range p.Transform(r.state.Transform).Flatten(flattenTolerance) {
		for i := 1; i < len(poly); i++ {
			strokeSegment(outline, poly[i-1], poly[i], hw)
		}
		if hw > 0.75 {
			for _, pt := range poly {
				outline.Circle(pt.X, pt.Y, hw)
			}
		}
	}

	r.resetCoverage()
	addPath(r.z, outline)
	r.z.Draw(r.coverage, r.coverage.Rect, image.Opaque, image.Point{})
	r.composite(src)
	return nil
}

// strokeSegment appends the quad covering a segment of half width hw.
// All quads share the winding of canvas.Path.Circle so overlaps accumulate.
func strokeSegment(out *canvas.Path, a, b canvas.Point, hw float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*hw, dx/l*hw
	out.MoveTo(a.X-nx, a.Y-ny).
		LineTo(b.X-nx, b.Y-ny).
		LineTo(b.X+nx, b.Y+ny).
		LineTo(a.X+nx, a.Y+ny).
		Close()
}

// DrawTexture implements canvas.Context.
func (r *rasterContext) DrawTexture(t canvas.Texture, dst canvas.Rect) error {
	if r.closed {
		return canvas.ErrClosed
	}
	img := t.Image()
	tw, th := t.Width(), t.Height()
	if img == nil || tw <= 0 || th <= 0 || dst.Empty() {
		return nil
	}

	m := r.state.Transform.
		Multiply(canvas.Translate(dst.X, dst.Y)).
		Multiply(canvas.Scale(dst.Width/float64(tw), dst.Height/float64(th)))
	aff := f64.Aff3{
		m.A, m.B, m.C + float64(r.bounds.Min.X),
		m.D, m.E, m.F + float64(r.bounds.Min.Y),
	}

	var opts *draw.Options
	if r.clip != nil {
		opts = &draw.Options{DstMask: r.clip, DstMaskP: r.bounds.Min.Mul(-1)}
	}
	draw.BiLinear.Transform(r.dst, aff, img, img.Bounds(), draw.Over, opts)
	return nil
}

// DrawText implements canvas.Context. Text is set in the fixed 7x13 face;
// only the origin is transformed.
func (r *rasterContext) DrawText(text string, at canvas.Point) error {
	if r.closed {
		return canvas.ErrClosed
	}
	if text == "" {
		return nil
	}
	o := r.state.Transform.TransformPoint(at)

	r.resetCoverage()
	d := font.Drawer{
		Dst:  r.coverage,
		Src:  image.Opaque,
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(o.X * 64), Y: fixed.Int26_6(o.Y * 64)},
	}
	d.DrawString(text)
	r.composite(image.NewUniform(r.state.FillColor.NRGBA()))
	return nil
}

// Flush implements canvas.Context. Rendering is immediate.
func (r *rasterContext) Flush() error {
	if r.closed {
		return canvas.ErrClosed
	}
	return nil
}

// Close implements canvas.Context.
func (r *rasterContext) Close() error {
	r.closed = true
	r.clip = nil
	r.clipFor = nil
	return nil
}

func (r *rasterContext) resetCoverage() {
	clear(r.coverage.Pix)
	r.z.Reset(r.coverage.Rect.Dx(), r.coverage.Rect.Dy())
	r.z.DrawOp = draw.Src
}

// composite blends src through the coverage mask, intersected with the clip.
func (r *rasterContext) composite(src image.Image) {
	if r.clip != nil {
		for i, c := range r.coverage.Pix {
			if c != 0 {
				r.coverage.Pix[i] = uint8(uint16(c) * uint16(r.clip.Pix[i]) / 255)
			}
		}
	}
	draw.DrawMask(r.dst, r.bounds, src, image.Point{}, r.coverage, image.Point{}, draw.Over)
}

// source returns the image composited for a draw: a uniform color for solid
// paint, or the shader sampled through the inverse of the current transform.
func (r *rasterContext) source(sh canvas.Shader, solid canvas.Color) (image.Image, error) {
	if sh == nil {
		return image.NewUniform(solid.NRGBA()), nil
	}
	s, ok := sh.(*shader)
	if !ok {
		return nil, errForeignShader
	}
	if s.released {
		return nil, errors.New("surface: shader used after release")
	}
	inv, _ := r.state.Transform.Invert()
	return &paintImage{
		sample: s.sample,
		inv:    inv,
		rect:   image.Rect(0, 0, r.bounds.Dx(), r.bounds.Dy()),
	}, nil
}

// addPath feeds p to z, closing every subpath.
func addPath(z *vector.Rasterizer, p *canvas.Path) {
	open := false
	for _, e := range p.Elements() {
		switch e := e.(type) {
		case canvas.MoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(f32(e.Point.X), f32(e.Point.Y))
			open = true
		case canvas.LineTo:
			z.LineTo(f32(e.Point.X), f32(e.Point.Y))
		case canvas.QuadTo:
			z.QuadTo(f32(e.Control.X), f32(e.Control.Y), f32(e.Point.X), f32(e.Point.Y))
		case canvas.CubicTo:
			z.CubeTo(f32(e.Control1.X), f32(e.Control1.Y),
				f32(e.Control2.X), f32(e.Control2.Y),
				f32(e.Point.X), f32(e.Point.Y))
		case canvas.Close:
			z.ClosePath()
			open = false
		}
	}
	if open {
		z.ClosePath()
	}
}

func f32(v float64) float32 { return float32(v) }
