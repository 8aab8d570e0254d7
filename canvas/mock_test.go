// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"errors"
	"fmt"
)

// mockShader records its release into the owning mock context.
type mockShader struct {
	id       int
	ctx      *mockContext
	released int
}

func (s *mockShader) Release() {
	s.released++
	s.ctx.releases = append(s.ctx.releases, s.id)
}

// mockContext is a Context that records every call.
type mockContext struct {
	applied  []State
	shaders  []*mockShader
	releases []int
	calls    []string
	closed   int

	applyErr  error
	shaderErr error
	closeErr  error
}

func (m *mockContext) Apply(s State) error {
	if m.applyErr != nil {
		return m.applyErr
	}
	m.applied = append(m.applied, s)
	return nil
}

func (m *mockContext) NewShader(src ShaderSource) (Shader, error) {
	if m.shaderErr != nil {
		return nil, m.shaderErr
	}
	if src.Gradient == nil && src.Texture == nil {
		return nil, errors.New("empty shader source")
	}
	sh := &mockShader{id: len(m.shaders) + 1, ctx: m}
	m.shaders = append(m.shaders, sh)
	return sh, nil
}

func (m *mockContext) Clear(c Color) error {
	m.calls = append(m.calls, fmt.Sprintf("clear %v", c.NRGBA()))
	return nil
}

func (m *mockContext) Fill(p *Path, shader Shader) error {
	m.calls = append(m.calls, "fill"+shaderTag(shader))
	return nil
}

func (m *mockContext) Stroke(p *Path, shader Shader) error {
	m.calls = append(m.calls, "stroke"+shaderTag(shader))
	return nil
}

func (m *mockContext) DrawTexture(t Texture, dst Rect) error {
	m.calls = append(m.calls, fmt.Sprintf("texture %vx%v", dst.Width, dst.Height))
	return nil
}

func (m *mockContext) DrawText(text string, at Point) error {
	m.calls = append(m.calls, "text "+text)
	return nil
}

func (m *mockContext) Flush() error {
	m.calls = append(m.calls, "flush")
	return nil
}

func (m *mockContext) Close() error {
	m.closed++
	return m.closeErr
}

func (m *mockContext) last() State {
	return m.applied[len(m.applied)-1]
}

func shaderTag(sh Shader) string {
	if s, ok := sh.(*mockShader); ok {
		return fmt.Sprintf(" #%d", s.id)
	}
	return ""
}

func testGradient() Gradient {
	return NewLinearGradient(0, 0, 10, 0, ExtendPad,
		ColorStop{Offset: 0, Color: Red},
		ColorStop{Offset: 1, Color: Blue},
	)
}
