// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"

	"github.com/gogpu/sim/canvas"
)

// Surface is a bitmap drawing target.
//
// A surface can have at most one open canvas at a time. Surfaces implement
// canvas.Texture so they can be drawn onto other canvases.
type Surface interface {
	canvas.Texture

	// OpenCanvas begins a drawing session on the surface. The caller closes
	// the returned canvas; closing it releases every snapshot still on its
	// stack.
	OpenCanvas() (*canvas.Canvas, error)

	// Pixel returns the color at (x, y). Out-of-range coordinates yield
	// canvas.Transparent.
	Pixel(x, y int) canvas.Color

	// SetPixel sets the color at (x, y). Out-of-range coordinates are ignored.
	SetPixel(x, y int, c canvas.Color)

	// Close releases the surface, closing any open canvas first.
	// Close is idempotent.
	Close() error
}

// ResizableSurface is an optional interface for surfaces that support resizing.
type ResizableSurface interface {
	Surface

	// Resize changes the surface dimensions. Content in the overlapping
	// region is preserved. Resize fails while a canvas is open.
	Resize(width, height int) error
}

// Options configures NewSurface.
type Options struct {
	Width  int
	Height int

	// Pixels optionally initializes the surface, row-major. When set its
	// length must be Width*Height.
	Pixels []canvas.Color
}

// Validate checks the dimensions and pixel count.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("surface: invalid dimensions: width=%d, height=%d", o.Width, o.Height)
	}
	if o.Pixels != nil && len(o.Pixels) != o.Width*o.Height {
		return &PixelCountError{Width: o.Width, Height: o.Height, Got: len(o.Pixels)}
	}
	return nil
}

// NewSurface validates opts and creates an ImageSurface, initialized from
// opts.Pixels when set.
func NewSurface(opts Options) (*ImageSurface, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Pixels != nil {
		return NewImageSurfaceFromPixels(opts.Width, opts.Height, opts.Pixels)
	}
	return NewImageSurface(opts.Width, opts.Height), nil
}

// Errors.
var (
	// ErrClosed is returned when a closed surface is used.
	ErrClosed = errors.New("surface: closed")

	// ErrCanvasOpen is returned when a canvas is opened, or the surface
	// resized, while another canvas is still open.
	ErrCanvasOpen = errors.New("surface: canvas already open")
)

// PixelCountError reports a pixel slice whose length does not match the
// surface dimensions.
type PixelCountError struct {
	Width, Height int
	Got           int
}

func (e *PixelCountError) Error() string {
	return fmt.Sprintf("surface: %dx%d surface needs %d pixels, got %d",
		e.Width, e.Height, e.Width*e.Height, e.Got)
}
