// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import "image"

// Texture is a bitmap that can be drawn or used as a fill source.
// Surfaces implement Texture.
type Texture interface {
	Width() int
	Height() int

	// Image returns the texture's pixels.
	Image() image.Image
}

// TileMode specifies how a texture fill repeats outside the texture bounds.
type TileMode uint8

const (
	// TileClamp extends the edge pixels.
	TileClamp TileMode = iota
	// TileRepeat repeats the texture.
	TileRepeat
	// TileMirror repeats the texture, mirroring every other copy.
	TileMirror
	// TileNone leaves areas outside the texture transparent.
	TileNone
)

// TextureFill describes a texture used as a fill source.
// Like gradients, texture fills are immutable once set on a canvas.
type TextureFill struct {
	Texture Texture
	TileX   TileMode
	TileY   TileMode

	// Transform maps texture space into user space.
	Transform Matrix
}

// NewTextureFill creates a texture fill with the identity transform.
func NewTextureFill(t Texture, tileX, tileY TileMode) *TextureFill {
	return &TextureFill{
		Texture:   t,
		TileX:     tileX,
		TileY:     tileY,
		Transform: Identity(),
	}
}

// Tile maps coordinate v into [0, size) according to mode.
// It returns false when mode is TileNone and v falls outside.
func Tile(v, size int, mode TileMode) (int, bool) {
	if size <= 0 {
		return 0, false
	}
	switch mode {
	case TileRepeat:
		v %= size
		if v < 0 {
			v += size
		}
	case TileMirror:
		period := 2 * size
		v %= period
		if v < 0 {
			v += period
		}
		if v >= size {
			v = period - 1 - v
		}
	case TileNone:
		if v < 0 || v >= size {
			return 0, false
		}
	default:
		v = max(0, min(v, size-1))
	}
	return v, true
}
