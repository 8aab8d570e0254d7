// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

// Context is the immediate-mode drawing context a Canvas drives.
//
// A Stack calls Apply whenever the effective state changes: after every
// attribute setter, after every Pop and once for the bottom state when the
// canvas opens. Draw calls always observe the most recently applied state.
// Coordinates passed to draw calls are in user space; the backend maps them
// through the applied transform.
type Context interface {
	// Apply makes s the effective state of the backend.
	Apply(s State) error

	// NewShader resolves a gradient or texture fill into a backend
	// resource. The caller owns the shader and releases it.
	NewShader(src ShaderSource) (Shader, error)

	// Clear fills the whole target with c, ignoring transform and clip.
	Clear(c Color) error

	// Fill fills p. shader is nil for a solid fill with the state's fill color.
	Fill(p *Path, shader Shader) error

	// Stroke strokes p with the state's stroke width. shader is nil for a
	// solid stroke with the state's stroke color.
	Stroke(p *Path, shader Shader) error

	// DrawTexture draws t scaled into dst.
	DrawTexture(t Texture, dst Rect) error

	// DrawText draws text with its baseline origin at at.
	DrawText(text string, at Point) error

	// Flush commits pending drawing operations to the target.
	Flush() error

	// Close releases the context. It is called once, after every snapshot
	// has been released.
	Close() error
}
