// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package graphics defines the graphics capability and a software provider.
//
// The graphics provider hands the host one canvas per frame and creates
// offscreen surfaces for simulation code:
//
//	gfx, err := sim.Component[graphics.Provider](h, graphics.Capability)
//	if err != nil {
//	    return err
//	}
//	sprite, err := gfx.CreateSurfaceFromBytes(pngData)
//
// Software renders frames into a surface.ImageSurface that follows the
// platform output size.
package graphics
