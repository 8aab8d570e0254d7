// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/sim/canvas"
)

// ImageSurface is a CPU-based surface that renders to an *image.RGBA.
//
// Example:
//
//	s := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	c, _ := s.OpenCanvas()
//	c.Clear(canvas.White)
//	c.FillCircle(400, 300, 100)
//	c.Close()
//
//	img := s.Snapshot()
type ImageSurface struct {
	img *image.RGBA

	// open is the canvas currently drawing into img, if any.
	open *canvas.Canvas

	closed bool
}

// NewImageSurface creates a transparent surface with the given dimensions.
// Non-positive dimensions are raised to 1.
func NewImageSurface(width, height int) *ImageSurface {
	width = max(width, 1)
	height = max(height, 1)
	return &ImageSurface{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewImageSurfaceFromImage creates a surface backed by an existing image.
// The surface renders into the provided image directly.
func NewImageSurfaceFromImage(img *image.RGBA) *ImageSurface {
	return &ImageSurface{img: img}
}

// NewImageSurfaceFromPixels creates a surface from row-major pixels.
// len(pixels) must equal width*height.
func NewImageSurfaceFromPixels(width, height int, pixels []canvas.Color) (*ImageSurface, error) {
	if pixels == nil {
		pixels = []canvas.Color{}
	}
	opts := Options{Width: width, Height: height, Pixels: pixels}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	s := NewImageSurface(width, height)
	for i, c := range pixels {
		s.img.Set(i%width, i/width, c.NRGBA())
	}
	return s, nil
}

// NewImageSurfaceFromDecoded copies a decoded image into a new surface.
func NewImageSurfaceFromDecoded(src image.Image) *ImageSurface {
	b := src.Bounds()
	s := NewImageSurface(b.Dx(), b.Dy())
	draw.Draw(s.img, s.img.Bounds(), src, b.Min, draw.Src)
	return s
}

// Width returns the surface width.
func (s *ImageSurface) Width() int {
	if s.img == nil {
		return 0
	}
	return s.img.Bounds().Dx()
}

// Height returns the surface height.
func (s *ImageSurface) Height() int {
	if s.img == nil {
		return 0
	}
	return s.img.Bounds().Dy()
}

// Image returns the underlying image. This is a direct reference, not a copy.
func (s *ImageSurface) Image() image.Image {
	return s.img
}

// RGBA returns the underlying *image.RGBA.
func (s *ImageSurface) RGBA() *image.RGBA {
	return s.img
}

// Snapshot returns a copy of the current surface contents.
func (s *ImageSurface) Snapshot() *image.RGBA {
	if s.closed {
		return nil
	}
	result := image.NewRGBA(image.Rect(0, 0, s.Width(), s.Height()))
	draw.Draw(result, result.Bounds(), s.img, s.img.Bounds().Min, draw.Src)
	return result
}

// Pixel returns the color at (x, y).
func (s *ImageSurface) Pixel(x, y int) canvas.Color {
	if s.closed {
		return canvas.Transparent
	}
	p := image.Pt(x, y).Add(s.img.Bounds().Min)
	if !p.In(s.img.Bounds()) {
		return canvas.Transparent
	}
	return canvas.FromColor(s.img.RGBAAt(p.X, p.Y))
}

// SetPixel sets the color at (x, y).
func (s *ImageSurface) SetPixel(x, y int, c canvas.Color) {
	if s.closed {
		return
	}
	p := image.Pt(x, y).Add(s.img.Bounds().Min)
	s.img.Set(p.X, p.Y, c.NRGBA())
}

// OpenCanvas begins a drawing session on the surface.
func (s *ImageSurface) OpenCanvas() (*canvas.Canvas, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if s.open != nil && !s.open.Closed() {
		return nil, ErrCanvasOpen
	}
	c, err := canvas.New(newRasterContext(s.img), s.Width(), s.Height())
	if err != nil {
		return nil, err
	}
	s.open = c
	return c, nil
}

// Resize changes the surface dimensions, preserving the overlapping region.
func (s *ImageSurface) Resize(width, height int) error {
	if s.closed {
		return ErrClosed
	}
	if s.open != nil && !s.open.Closed() {
		return ErrCanvasOpen
	}
	if width == s.Width() && height == s.Height() {
		return nil
	}
	next := NewImageSurface(width, height).img
	draw.Draw(next, next.Bounds(), s.img, s.img.Bounds().Min, draw.Src)
	s.img = next
	return nil
}

// Close releases resources associated with the surface.
func (s *ImageSurface) Close() error {
	if s.closed {
		return nil
	}
	var err error
	if s.open != nil {
		err = s.open.Close()
		s.open = nil
	}
	s.closed = true
	s.img = nil
	return err
}

// Verify ImageSurface implements the surface interfaces.
var (
	_ Surface          = (*ImageSurface)(nil)
	_ ResizableSurface = (*ImageSurface)(nil)
)
