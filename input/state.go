// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package input

import (
	"slices"
	"sync"

	"github.com/gogpu/sim/canvas"
	"github.com/gogpu/sim/component"
	"github.com/gogpu/sim/message"
)

// Keyboard is the keyboard capability.
type Keyboard interface {
	// IsKeyDown reports whether k is held.
	IsKeyDown(k Key) bool
	// IsKeyPressed reports whether k went down this frame.
	IsKeyPressed(k Key) bool
	// IsKeyReleased reports whether k went up this frame.
	IsKeyReleased(k Key) bool
}

// Mouse is the mouse capability. Positions are in output pixels.
type Mouse interface {
	Position() canvas.Point
	// Delta is the pointer movement during this frame.
	Delta() canvas.Point
	// Scroll is the wheel movement during this frame.
	Scroll() canvas.Point

	IsButtonDown(b MouseButton) bool
	IsButtonPressed(b MouseButton) bool
	IsButtonReleased(b MouseButton) bool
}

// Capabilities of a State.
var (
	KeyboardCapability = component.Define[Keyboard]("keyboard")
	MouseCapability    = component.Define[Mouse]("mouse")
)

// State is a buffered keyboard and mouse component.
//
// Feed may be called from any goroutine; queries and frame updates happen
// on the frame loop goroutine.
type State struct {
	mu      sync.Mutex
	pending []Event

	d *message.Dispatcher

	keys     [keyCount]bool
	pressed  [keyCount]bool
	released [keyCount]bool

	buttons        [buttonCount]bool
	buttonPressed  [buttonCount]bool
	buttonReleased [buttonCount]bool

	position canvas.Point
	tracking bool // position has been reported
	delta    canvas.Point
	scroll   canvas.Point
}

var (
	_ Keyboard           = (*State)(nil)
	_ Mouse              = (*State)(nil)
	_ component.Provider = (*State)(nil)
)

// NewState creates an input state with nothing held.
func NewState() *State {
	return &State{}
}

// Capabilities implements component.Provider.
func (s *State) Capabilities() []*component.Capability {
	return []*component.Capability{KeyboardCapability, MouseCapability}
}

// Initialize implements component.Provider. Pending events are applied on
// BeforeRender and frame edges are cleared on AfterRender.
func (s *State) Initialize(d *message.Dispatcher) error {
	s.d = d
	message.Subscribe(d, func(message.BeforeRender) error { return s.Update() })
	message.SubscribeFunc(d, func(message.AfterRender) { s.EndFrame() })
	return nil
}

// Feed queues events for the next frame. Invalid keys and buttons are dropped.
func (s *State) Feed(events ...Event) {
	s.mu.Lock()
	s.pending = append(s.pending, events...)
	s.mu.Unlock()
}

// Update applies queued events in order and dispatches the resulting
// messages. It stops at the first failing handler; the failing event stays
// applied and the events after it are queued ahead of newer ones for the
// next Update.
func (s *State) Update() error {
	s.mu.Lock()
	events := s.pending
	s.pending = nil
	s.mu.Unlock()

	for i, e := range events {
		if err := s.apply(e); err != nil {
			s.requeue(events[i+1:])
			return err
		}
	}
	return nil
}

func (s *State) requeue(events []Event) {
	if len(events) == 0 {
		return
	}
	s.mu.Lock()
	s.pending = append(slices.Clip(events), s.pending...)
	s.mu.Unlock()
}

func (s *State) apply(e Event) error {
	switch e := e.(type) {
	case KeyEvent:
		if !e.Key.Valid() || s.keys[e.Key] == e.Down {
			return nil
		}
		s.keys[e.Key] = e.Down
		if e.Down {
			s.pressed[e.Key] = true
			return publish(s, KeyPressed{Key: e.Key})
		}
		s.released[e.Key] = true
		return publish(s, KeyReleased{Key: e.Key})

	case ButtonEvent:
		if !e.Button.Valid() || s.buttons[e.Button] == e.Down {
			return nil
		}
		s.buttons[e.Button] = e.Down
		if e.Down {
			s.buttonPressed[e.Button] = true
			return publish(s, ButtonPressed{Button: e.Button, Position: s.position})
		}
		s.buttonReleased[e.Button] = true
		return publish(s, ButtonReleased{Button: e.Button, Position: s.position})

	case MoveEvent:
		// The first position has nothing to move from.
		if s.tracking {
			s.delta = s.delta.Add(e.Position.Sub(s.position))
		}
		s.position = e.Position
		s.tracking = true

	case ScrollEvent:
		s.scroll = s.scroll.Add(e.Delta)
	}
	return nil
}

func publish[M any](s *State, msg M) error {
	if s.d == nil {
		return nil
	}
	return message.Dispatch(s.d, msg)
}

// EndFrame clears the per-frame edges and deltas.
func (s *State) EndFrame() {
	s.pressed = [keyCount]bool{}
	s.released = [keyCount]bool{}
	s.buttonPressed = [buttonCount]bool{}
	s.buttonReleased = [buttonCount]bool{}
	s.delta = canvas.Point{}
	s.scroll = canvas.Point{}
}

// IsKeyDown implements Keyboard.
func (s *State) IsKeyDown(k Key) bool { return k.Valid() && s.keys[k] }

// IsKeyPressed implements Keyboard.
func (s *State) IsKeyPressed(k Key) bool { return k.Valid() && s.pressed[k] }

// IsKeyReleased implements Keyboard.
func (s *State) IsKeyReleased(k Key) bool { return k.Valid() && s.released[k] }

// Position implements Mouse.
func (s *State) Position() canvas.Point { return s.position }

// Delta implements Mouse.
func (s *State) Delta() canvas.Point { return s.delta }

// Scroll implements Mouse.
func (s *State) Scroll() canvas.Point { return s.scroll }

// IsButtonDown implements Mouse.
func (s *State) IsButtonDown(b MouseButton) bool { return b.Valid() && s.buttons[b] }

// IsButtonPressed implements Mouse.
func (s *State) IsButtonPressed(b MouseButton) bool { return b.Valid() && s.buttonPressed[b] }

// IsButtonReleased implements Mouse.
func (s *State) IsButtonReleased(b MouseButton) bool { return b.Valid() && s.buttonReleased[b] }
