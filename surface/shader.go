// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/sim/canvas"
)

// sampler returns the paint color at a user-space point.
type sampler func(x, y float64) color.NRGBA

// shader is the canvas.Shader of a raster context.
type shader struct {
	sample   sampler
	released bool
}

// Release implements canvas.Shader.
func (s *shader) Release() {
	s.released = true
	s.sample = nil
}

// paintImage exposes a sampler as an image in device space. Pixel centers
// are mapped back to user space through inv.
type paintImage struct {
	sample sampler
	inv    canvas.Matrix
	rect   image.Rectangle
}

func (p *paintImage) ColorModel() color.Model { return color.NRGBAModel }

func (p *paintImage) Bounds() image.Rectangle { return p.rect }

func (p *paintImage) At(x, y int) color.Color {
	u := p.inv.TransformPoint(canvas.Pt(float64(x)+0.5, float64(y)+0.5))
	return p.sample(u.X, u.Y)
}

// textureSampler samples tf with nearest filtering. inv maps user space
// into texture space.
func textureSampler(tf *canvas.TextureFill, inv canvas.Matrix) sampler {
	img := tf.Texture.Image()
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	return func(x, y float64) color.NRGBA {
		t := inv.TransformPoint(canvas.Pt(x, y))
		ix, okx := canvas.Tile(int(math.Floor(t.X)), w, tf.TileX)
		iy, oky := canvas.Tile(int(math.Floor(t.Y)), h, tf.TileY)
		if !okx || !oky {
			return color.NRGBA{}
		}
		return color.NRGBAModel.Convert(img.At(b.Min.X+ix, b.Min.Y+iy)).(color.NRGBA)
	}
}
