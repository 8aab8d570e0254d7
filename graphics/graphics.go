// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package graphics

import (
	"github.com/gogpu/sim/canvas"
	"github.com/gogpu/sim/component"
	"github.com/gogpu/sim/surface"
)

// Provider is the graphics capability.
type Provider interface {
	// FrameCanvas opens the canvas for the current frame. The caller closes
	// it before the frame ends.
	FrameCanvas() (*canvas.Canvas, error)

	// CreateSurface creates an offscreen surface. pixels is optional; when
	// present it is row-major and its length must be width*height.
	CreateSurface(width, height int, pixels []canvas.Color) (surface.Surface, error)

	// CreateSurfaceFromBytes decodes an encoded image into a new surface.
	CreateSurfaceFromBytes(data []byte) (surface.Surface, error)
}

// Capability identifies graphics providers in a component registry.
var Capability = component.Define[Provider]("graphics")
