// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

// FillSource identifies what a fill operation paints with.
type FillSource uint8

const (
	// FillSolid paints with the fill color.
	FillSolid FillSource = iota
	// FillGradient paints with the fill gradient.
	FillGradient
	// FillTextured paints with the fill texture.
	FillTextured
)

func (s FillSource) String() string {
	switch s {
	case FillSolid:
		return "Solid"
	case FillGradient:
		return "Gradient"
	case FillTextured:
		return "Textured"
	default:
		return "Unknown"
	}
}

// Clip is a clip region: a rectangle, or a path when Path is non-nil.
// Both are expressed in the user space of Transform.
type Clip struct {
	Rect      Rect
	Path      *Path
	Transform Matrix
}

// IsPath reports whether the clip is a path clip.
func (c *Clip) IsPath() bool {
	return c != nil && c.Path != nil
}

// State is one graphics-state snapshot.
//
// States are values: copying a State copies transform, colors and widths,
// while gradients, texture fills and clip paths are shared immutable
// descriptions. A State never has both FillGradient and FillTexture set.
type State struct {
	Transform Matrix

	FillColor    Color
	FillGradient Gradient
	FillTexture  *TextureFill

	StrokeWidth    float64
	StrokeColor    Color
	StrokeGradient Gradient

	// Clip is nil when drawing is unclipped.
	Clip *Clip
}

// DefaultState returns the state at the bottom of every new stack:
// identity transform, opaque black fill and stroke, 1 unit stroke width,
// no clip.
func DefaultState() State {
	return State{
		Transform:   Identity(),
		FillColor:   Black,
		StrokeWidth: 1,
		StrokeColor: Black,
	}
}

// FillSource reports which fill source is active.
func (s State) FillSource() FillSource {
	switch {
	case s.FillTexture != nil:
		return FillTextured
	case s.FillGradient != nil:
		return FillGradient
	default:
		return FillSolid
	}
}

// fillShaderSource returns the source for the fill shader, if any.
func (s State) fillShaderSource() (ShaderSource, bool) {
	switch s.FillSource() {
	case FillTextured:
		return ShaderSource{Texture: s.FillTexture}, true
	case FillGradient:
		return ShaderSource{Gradient: s.FillGradient}, true
	default:
		return ShaderSource{}, false
	}
}

// strokeShaderSource returns the source for the stroke shader, if any.
func (s State) strokeShaderSource() (ShaderSource, bool) {
	if s.StrokeGradient == nil {
		return ShaderSource{}, false
	}
	return ShaderSource{Gradient: s.StrokeGradient}, true
}
