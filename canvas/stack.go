// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"fmt"

	"github.com/gogpu/sim/internal/logging"
)

// snapshot is one entry of a Stack. Its shaders are resolved lazily from
// the state's fill and stroke sources and owned by this snapshot alone.
type snapshot struct {
	state  State
	fill   Shader
	stroke Shader
}

// release frees the snapshot's shaders, stroke before fill.
func (s *snapshot) release() {
	s.dropStroke()
	s.dropFill()
}

// Stack is the ordered sequence of state snapshots of one open canvas.
//
// The stack is never empty while open: the bottom snapshot holds the
// surface's default state and cannot be popped.
type Stack struct {
	ctx       Context
	snapshots []*snapshot
	closed    bool
}

// NewStack creates a stack whose bottom snapshot is base and applies base to ctx.
func NewStack(ctx Context, base State) (*Stack, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	s := &Stack{
		ctx:       ctx,
		snapshots: make([]*snapshot, 1, 8),
	}
	s.snapshots[0] = &snapshot{state: base}
	if err := ctx.Apply(base); err != nil {
		return nil, fmt.Errorf("canvas: apply base state: %w", err)
	}
	return s, nil
}

func (s *Stack) top() *snapshot {
	return s.snapshots[len(s.snapshots)-1]
}

// Depth returns the number of snapshots, including the bottom one.
// It returns 0 once the stack is closed.
func (s *Stack) Depth() int {
	return len(s.snapshots)
}

// Closed reports whether the stack has been closed.
func (s *Stack) Closed() bool {
	return s.closed
}

// Current returns a copy of the top snapshot's state.
// It returns the zero State once the stack is closed.
func (s *Stack) Current() State {
	if s.closed {
		return State{}
	}
	return s.top().state
}

// Push duplicates the top snapshot and returns the session that ends it.
// The new snapshot shares the previous one's gradient and texture
// descriptions but none of its shaders.
func (s *Stack) Push() (*Session, error) {
	if s.closed {
		return nil, ErrClosed
	}
	snap := &snapshot{state: s.top().state}
	s.snapshots = append(s.snapshots, snap)
	return &Session{stack: s, snap: snap}, nil
}

// Pop removes the top snapshot, releases its shaders and re-applies the
// state beneath it. Pop fails with ErrStackUnderflow, leaving the stack
// unchanged, when only the bottom snapshot remains.
func (s *Stack) Pop() error {
	if s.closed {
		return ErrClosed
	}
	if len(s.snapshots) == 1 {
		return ErrStackUnderflow
	}

	n := len(s.snapshots) - 1
	popped := s.snapshots[n]
	s.snapshots[n] = nil
	s.snapshots = s.snapshots[:n]
	popped.release()

	return s.ctx.Apply(s.top().state)
}

// update mutates the top snapshot and applies the result.
func (s *Stack) update(fn func(*snapshot)) error {
	if s.closed {
		return ErrClosed
	}
	top := s.top()
	fn(top)
	return s.ctx.Apply(top.state)
}

// SetTransform replaces the top snapshot's transform.
func (s *Stack) SetTransform(m Matrix) error {
	return s.update(func(t *snapshot) { t.state.Transform = m })
}

// SetFillColor selects a solid fill with color c, dropping any fill
// gradient or texture of the top snapshot.
func (s *Stack) SetFillColor(c Color) error {
	return s.update(func(t *snapshot) {
		t.state.FillColor = c
		t.state.FillGradient = nil
		t.state.FillTexture = nil
		t.dropFill()
	})
}

// SetFillGradient makes g the fill source, clearing any fill texture.
// A nil g reverts to the solid fill color.
func (s *Stack) SetFillGradient(g Gradient) error {
	return s.update(func(t *snapshot) {
		t.state.FillGradient = g
		t.state.FillTexture = nil
		t.dropFill()
	})
}

// SetFillTexture makes tf the fill source, clearing any fill gradient.
// A nil tf reverts to the solid fill color.
func (s *Stack) SetFillTexture(tf *TextureFill) error {
	return s.update(func(t *snapshot) {
		t.state.FillTexture = tf
		t.state.FillGradient = nil
		t.dropFill()
	})
}

// SetStrokeWidth sets the stroke width of the top snapshot.
func (s *Stack) SetStrokeWidth(w float64) error {
	return s.update(func(t *snapshot) { t.state.StrokeWidth = w })
}

// SetStrokeColor selects a solid stroke with color c, dropping any stroke
// gradient of the top snapshot.
func (s *Stack) SetStrokeColor(c Color) error {
	return s.update(func(t *snapshot) {
		t.state.StrokeColor = c
		t.state.StrokeGradient = nil
		t.dropStroke()
	})
}

// SetStrokeGradient makes g the stroke source. A nil g reverts to the
// solid stroke color.
func (s *Stack) SetStrokeGradient(g Gradient) error {
	return s.update(func(t *snapshot) {
		t.state.StrokeGradient = g
		t.dropStroke()
	})
}

// SetClip replaces the top snapshot's clip. A nil clip removes clipping.
func (s *Stack) SetClip(c *Clip) error {
	return s.update(func(t *snapshot) { t.state.Clip = c })
}

func (t *snapshot) dropFill() {
	if t.fill != nil {
		t.fill.Release()
		t.fill = nil
	}
}

func (t *snapshot) dropStroke() {
	if t.stroke != nil {
		t.stroke.Release()
		t.stroke = nil
	}
}

// FillShader returns the top snapshot's fill shader, resolving and caching
// it on first use. It returns nil for a solid fill.
func (s *Stack) FillShader() (Shader, error) {
	if s.closed {
		return nil, ErrClosed
	}
	top := s.top()
	if top.fill != nil {
		return top.fill, nil
	}
	src, ok := top.state.fillShaderSource()
	if !ok {
		return nil, nil
	}
	sh, err := s.ctx.NewShader(src)
	if err != nil {
		return nil, fmt.Errorf("canvas: resolve fill shader: %w", err)
	}
	top.fill = sh
	return sh, nil
}

// StrokeShader returns the top snapshot's stroke shader, resolving and
// caching it on first use. It returns nil for a solid stroke.
func (s *Stack) StrokeShader() (Shader, error) {
	if s.closed {
		return nil, ErrClosed
	}
	top := s.top()
	if top.stroke != nil {
		return top.stroke, nil
	}
	src, ok := top.state.strokeShaderSource()
	if !ok {
		return nil, nil
	}
	sh, err := s.ctx.NewShader(src)
	if err != nil {
		return nil, fmt.Errorf("canvas: resolve stroke shader: %w", err)
	}
	top.stroke = sh
	return sh, nil
}

// Close releases every snapshot from the top down to and including the
// bottom, then closes the context. Close is idempotent.
func (s *Stack) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if extra := len(s.snapshots) - 1; extra > 0 {
		logging.Logger().Warn("canvas: closing with unbalanced pushes", "pushes", extra)
	}
	for i := len(s.snapshots) - 1; i >= 0; i-- {
		s.snapshots[i].release()
		s.snapshots[i] = nil
	}
	s.snapshots = nil

	if err := s.ctx.Close(); err != nil {
		return fmt.Errorf("canvas: close context: %w", err)
	}
	return nil
}
