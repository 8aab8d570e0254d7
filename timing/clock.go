// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package timing

import (
	"time"

	"github.com/gogpu/sim/component"
	"github.com/gogpu/sim/message"
)

// Clock is the frame timing capability.
type Clock interface {
	// Delta is the time elapsed between the previous frame and this one.
	// It is zero on the first frame.
	Delta() time.Duration
	// Total is the time elapsed since the first frame.
	Total() time.Duration
	// Frame is the number of frames started so far.
	Frame() uint64
}

// Capability is the capability of a Realtime clock.
var Capability = component.Define[Clock]("clock")

// Tick is dispatched right after the clock advances.
type Tick struct {
	Delta time.Duration
	Frame uint64
}

// Option configures a Realtime clock.
type Option func(*Realtime)

// WithNow replaces the time source.
func WithNow(now func() time.Time) Option {
	return func(c *Realtime) {
		if now != nil {
			c.now = now
		}
	}
}

// WithFixedStep makes every frame after the first advance by step,
// regardless of wall time. Non-positive steps are ignored.
func WithFixedStep(step time.Duration) Option {
	return func(c *Realtime) {
		if step > 0 {
			c.step = step
		}
	}
}

// Realtime is a Clock driven by the frame loop.
type Realtime struct {
	now  func() time.Time
	step time.Duration

	last  time.Time
	delta time.Duration
	total time.Duration
	frame uint64
}

var (
	_ Clock              = (*Realtime)(nil)
	_ component.Provider = (*Realtime)(nil)
)

// NewRealtime creates a clock reading the wall clock.
func NewRealtime(opts ...Option) *Realtime {
	c := &Realtime{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Capabilities implements component.Provider.
func (c *Realtime) Capabilities() []*component.Capability {
	return []*component.Capability{Capability}
}

// Initialize implements component.Provider.
func (c *Realtime) Initialize(d *message.Dispatcher) error {
	message.Subscribe(d, func(message.BeforeRender) error {
		c.Advance()
		return message.Dispatch(d, Tick{Delta: c.delta, Frame: c.frame})
	})
	return nil
}

// Advance starts a new frame.
func (c *Realtime) Advance() {
	now := c.now()
	switch {
	case c.frame == 0:
		c.delta = 0
	case c.step > 0:
		c.delta = c.step
	default:
		c.delta = now.Sub(c.last)
		if c.delta < 0 {
			c.delta = 0
		}
	}
	c.last = now
	c.total += c.delta
	c.frame++
}

// Delta implements Clock.
func (c *Realtime) Delta() time.Duration { return c.delta }

// Total implements Clock.
func (c *Realtime) Total() time.Duration { return c.total }

// Frame implements Clock.
func (c *Realtime) Frame() uint64 { return c.frame }
