// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package graphics

import (
	"errors"
	"fmt"

	"github.com/gogpu/sim/canvas"
	"github.com/gogpu/sim/component"
	"github.com/gogpu/sim/internal/logging"
	"github.com/gogpu/sim/message"
	"github.com/gogpu/sim/surface"
)

// SizeFunc reports the current output size in pixels.
type SizeFunc func() (width, height int)

// Software is a CPU graphics provider. Its frame surface is resized to the
// output size at the start of every frame.
//
// Software is NOT safe for concurrent use.
type Software struct {
	size    SizeFunc
	frame   *surface.ImageSurface
	created []surface.Surface
	sub     []*message.Subscription
}

var (
	_ Provider           = (*Software)(nil)
	_ component.Provider = (*Software)(nil)
)

// NewSoftware creates a software provider whose frame follows size.
func NewSoftware(size SizeFunc) *Software {
	w, h := size()
	return &Software{
		size:  size,
		frame: surface.NewImageSurface(w, h),
	}
}

// Capabilities implements component.Provider.
func (s *Software) Capabilities() []*component.Capability {
	return []*component.Capability{Capability}
}

// Initialize implements component.Provider.
func (s *Software) Initialize(d *message.Dispatcher) error {
	s.sub = append(s.sub, message.Subscribe(d, func(message.BeforeRender) error {
		return s.resize()
	}))
	return nil
}

func (s *Software) resize() error {
	w, h := s.size()
	if w <= 0 || h <= 0 || (w == s.frame.Width() && h == s.frame.Height()) {
		return nil
	}
	if err := s.frame.Resize(w, h); err != nil {
		return fmt.Errorf("graphics: resize frame: %w", err)
	}
	logging.Logger().Debug("graphics: frame resized", "width", w, "height", h)
	return nil
}

// FrameCanvas implements Provider.
func (s *Software) FrameCanvas() (*canvas.Canvas, error) {
	return s.frame.OpenCanvas()
}

// Frame returns the frame surface.
func (s *Software) Frame() *surface.ImageSurface {
	return s.frame
}

// CreateSurface implements Provider.
func (s *Software) CreateSurface(width, height int, pixels []canvas.Color) (surface.Surface, error) {
	sf, err := surface.NewSurface(surface.Options{Width: width, Height: height, Pixels: pixels})
	if err != nil {
		return nil, err
	}
	s.created = append(s.created, sf)
	return sf, nil
}

// CreateSurfaceFromBytes implements Provider.
func (s *Software) CreateSurfaceFromBytes(data []byte) (surface.Surface, error) {
	img, format, err := Decode(data)
	if err != nil {
		return nil, err
	}
	sf := surface.NewImageSurfaceFromDecoded(img)
	logging.Logger().Debug("graphics: surface decoded", "format", format,
		"width", sf.Width(), "height", sf.Height())
	s.created = append(s.created, sf)
	return sf, nil
}

// Close releases the frame surface and every surface the provider created.
func (s *Software) Close() error {
	for _, sub := range s.sub {
		sub.Unsubscribe()
	}
	s.sub = nil

	var errs []error
	for i := len(s.created) - 1; i >= 0; i-- {
		if err := s.created[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.created = nil
	if err := s.frame.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
