// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package message

import "github.com/gogpu/sim/canvas"

// Lifecycle messages dispatched by the host. Per frame the order is
// BeforeRender, Render, AfterRender. Initialize is sent once before the first
// frame and Uninitialize once after the last.

// Initialize is dispatched once when a simulation starts, before the first frame.
type Initialize struct{}

// BeforeRender is dispatched at the start of every frame, after platform
// events have been processed.
type BeforeRender struct{}

// Render is dispatched once per frame with the frame canvas, before the
// simulation's render callback runs.
type Render struct {
	Canvas *canvas.Canvas
}

// AfterRender is dispatched once per frame after the frame canvas has been
// flushed.
type AfterRender struct{}

// Uninitialize is dispatched once after the frame loop exits.
type Uninitialize struct{}
