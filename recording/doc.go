// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package recording provides a canvas.Context that captures drawing
// operations as typed commands instead of rasterizing them.
//
// A Recorder is a complete canvas backend. It records state applications,
// shader lifetimes and draw calls in the order they arrive. The
// finished Recording can be inspected (to test drawing code without pixels)
// or replayed onto any other canvas.Context.
//
// # Example
//
//	rec := recording.NewRecorder()
//	c, _ := canvas.New(rec, 800, 600)
//	c.SetFillColor(canvas.Red)
//	c.FillCircle(100, 100, 50)
//	c.Close()
//
//	r := rec.Finish()
//	for _, cmd := range r.Commands() {
//	    fmt.Println(cmd.Type())
//	}
//
//	// Replay onto a raster surface context.
//	r.Playback(target)
//
// Commands are typed structs rather than a binary encoding, so a Recording
// is easy to inspect and compare.
package recording
