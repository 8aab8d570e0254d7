// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface provides bitmap surfaces that canvases draw into.
//
// A Surface is a pixel target that a simulation can open a canvas on, read
// back pixel by pixel, or use as a texture in other drawing. ImageSurface is
// the built-in CPU implementation: it rasterizes with golang.org/x/image/vector,
// blits textures with golang.org/x/image/draw and renders text with
// golang.org/x/image/font/basicfont.
//
// NewSurface validates Options before creating a surface, so callers taking
// sizes and pixel data from a simulation get errors instead of panics.
//
// # Usage
//
//	s := surface.NewImageSurface(320, 240)
//	defer s.Close()
//
//	c, err := s.OpenCanvas()
//	if err != nil {
//	    return err
//	}
//	c.Clear(canvas.White)
//	c.SetFillColor(canvas.Red)
//	c.FillCircle(160, 120, 50)
//	c.Close()
//
//	saveToPNG(s.Image())
//
// Surfaces are NOT safe for concurrent use.
package surface
