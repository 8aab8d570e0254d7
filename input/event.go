// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package input

import "github.com/gogpu/sim/canvas"

// Event is a raw input event delivered by a platform.
type Event interface {
	isEvent()
}

// KeyEvent reports a key going down or up.
type KeyEvent struct {
	Key  Key
	Down bool
}

// ButtonEvent reports a mouse button going down or up.
type ButtonEvent struct {
	Button MouseButton
	Down   bool
}

// MoveEvent reports the pointer position in output pixels.
type MoveEvent struct {
	Position canvas.Point
}

// ScrollEvent reports wheel movement.
type ScrollEvent struct {
	Delta canvas.Point
}

func (KeyEvent) isEvent()    {}
func (ButtonEvent) isEvent() {}
func (MoveEvent) isEvent()   {}
func (ScrollEvent) isEvent() {}

// Messages dispatched when events are applied at the start of a frame.

// KeyPressed is dispatched when a key goes down.
type KeyPressed struct{ Key Key }

// KeyReleased is dispatched when a key goes up.
type KeyReleased struct{ Key Key }

// ButtonPressed is dispatched when a mouse button goes down.
type ButtonPressed struct {
	Button   MouseButton
	Position canvas.Point
}

// ButtonReleased is dispatched when a mouse button goes up.
type ButtonReleased struct {
	Button   MouseButton
	Position canvas.Point
}
