// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

// Shader is a backend resource resolved from a gradient or texture fill.
// Each shader is owned by exactly one snapshot and released when that
// snapshot is popped, replaced or discarded.
type Shader interface {
	Release()
}

// ShaderSource is the logical description a Context resolves into a Shader.
// Exactly one of Gradient and Texture is set. Sources are defined in user
// space; the backend maps them through the transform in effect at draw time.
type ShaderSource struct {
	Gradient Gradient
	Texture  *TextureFill
}
