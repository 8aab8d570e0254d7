// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func newTestCanvas(t *testing.T) (*Canvas, *mockContext) {
	t.Helper()
	ctx := &mockContext{}
	c, err := New(ctx, 64, 48)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, ctx
}

func TestNewInvalidSize(t *testing.T) {
	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		if _, err := New(&mockContext{}, size[0], size[1]); err == nil {
			t.Errorf("New(%d, %d) should fail", size[0], size[1])
		}
	}
}

func TestCanvasSize(t *testing.T) {
	c, _ := newTestCanvas(t)
	if w, h := c.Size(); w != 64 || h != 48 {
		t.Errorf("Size() = %d, %d; want 64, 48", w, h)
	}
}

func TestCanvasTransformCompose(t *testing.T) {
	c, ctx := newTestCanvas(t)

	_ = c.Translate(10, 20)
	_ = c.Scale(2, 2)

	p := ctx.last().Transform.TransformPoint(Pt(1, 1))
	if p.X != 12 || p.Y != 22 {
		t.Errorf("transformed point = %v, want (12, 22)", p)
	}

	_ = c.ResetTransform()
	if !ctx.last().Transform.IsIdentity() {
		t.Error("ResetTransform should apply the identity")
	}
}

func TestCanvasNestedSessions(t *testing.T) {
	c, ctx := newTestCanvas(t)

	outer, _ := c.Push()
	_ = c.SetFillColor(Red)
	inner, _ := c.Push()
	_ = c.SetFillColor(Blue)
	_ = c.Translate(3, 3)

	if err := inner.Close(); err != nil {
		t.Fatalf("inner Close: %v", err)
	}
	if got := ctx.last(); got.FillColor != Red || !got.Transform.IsIdentity() {
		t.Errorf("after inner pop applied %+v, want red fill and identity", got)
	}

	if err := outer.Close(); err != nil {
		t.Fatalf("outer Close: %v", err)
	}
	if got := ctx.last(); got != DefaultState() {
		t.Errorf("after outer pop applied %+v, want default", got)
	}
	if c.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", c.Depth())
	}
}

func TestCanvasDrawUsesActiveShader(t *testing.T) {
	c, ctx := newTestCanvas(t)

	_ = c.FillRect(0, 0, 4, 4)
	_ = c.SetFillGradient(testGradient())
	_ = c.FillCircle(5, 5, 2)
	_ = c.FillRect(0, 0, 1, 1)
	_ = c.SetStrokeGradient(testGradient())
	_ = c.DrawLine(0, 0, 3, 3)
	_ = c.SetStrokeColor(White)
	_ = c.StrokeRect(1, 1, 2, 2)

	want := []string{"fill", "fill #1", "fill #1", "stroke #2", "stroke"}
	if !slices.Equal(ctx.calls, want) {
		t.Errorf("calls = %v, want %v", ctx.calls, want)
	}
}

func TestCanvasDrawSkipsEmptyPath(t *testing.T) {
	c, ctx := newTestCanvas(t)
	_ = c.FillPath(NewPath())
	_ = c.StrokePath(nil)
	_ = c.DrawPolygon([]Point{{0, 0}, {1, 1}})
	if len(ctx.calls) != 0 {
		t.Errorf("calls = %v, want none", ctx.calls)
	}
}

func TestCanvasTextureAndText(t *testing.T) {
	c, ctx := newTestCanvas(t)
	_ = c.DrawTexture(fakeTexture{3, 2}, 1, 1)
	_ = c.DrawTextureRect(fakeTexture{3, 2}, R(0, 0, 6, 4))
	_ = c.DrawText("hi", 0, 10)
	_ = c.Clear(Black)
	_ = c.Flush()

	want := []string{"texture 3x2", "texture 6x4", "text hi", "clear {0 0 0 255}", "flush"}
	if !slices.Equal(ctx.calls, want) {
		t.Errorf("calls = %v, want %v", ctx.calls, want)
	}
}

func TestCanvasClip(t *testing.T) {
	c, ctx := newTestCanvas(t)
	_ = c.Translate(10, 0)
	_ = c.ClipRect(0, 0, 5, 5)

	clip := ctx.last().Clip
	if clip == nil || clip.IsPath() {
		t.Fatalf("clip = %+v, want rect clip", clip)
	}
	if clip.Transform != Translate(10, 0) {
		t.Errorf("clip transform = %+v, want the current transform", clip.Transform)
	}

	_ = c.ClipPath(NewPath().Circle(0, 0, 2))
	clip = ctx.last().Clip
	if !clip.IsPath() {
		t.Fatal("ClipPath should set a path clip")
	}
	if math.Abs(clip.Rect.Width-4) > 1e-9 {
		t.Errorf("path clip bounds width = %v, want 4", clip.Rect.Width)
	}

	_ = c.ClearClip()
	if ctx.last().Clip != nil {
		t.Error("ClearClip should remove clipping")
	}
}

func TestCanvasClipEmptyPath(t *testing.T) {
	tests := []struct {
		name string
		path *Path
	}{
		{"nil", nil},
		{"empty", NewPath()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ctx := newTestCanvas(t)
			_ = c.ClipRect(0, 0, 5, 5)
			if err := c.ClipPath(tt.path); err != nil {
				t.Fatalf("ClipPath() = %v", err)
			}
			if ctx.last().Clip != nil {
				t.Errorf("clip = %+v, want none", ctx.last().Clip)
			}
		})
	}
}

func TestCanvasClose(t *testing.T) {
	c, ctx := newTestCanvas(t)
	_, _ = c.Push()
	_ = c.SetFillGradient(testGradient())
	_ = c.FillRect(0, 0, 1, 1)

	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !c.Closed() || ctx.closed != 1 {
		t.Fatalf("Closed()=%v, context closed %d times", c.Closed(), ctx.closed)
	}
	if len(ctx.releases) != 1 {
		t.Errorf("releases = %v, want one", ctx.releases)
	}

	for name, op := range map[string]func() error{
		"FillRect":  func() error { return c.FillRect(0, 0, 1, 1) },
		"Stroke":    func() error { return c.StrokeRect(0, 0, 1, 1) },
		"Clear":     func() error { return c.Clear(White) },
		"DrawText":  func() error { return c.DrawText("x", 0, 0) },
		"Texture":   func() error { return c.DrawTexture(fakeTexture{1, 1}, 0, 0) },
		"Flush":     c.Flush,
		"Translate": func() error { return c.Translate(1, 1) },
	} {
		if err := op(); !errors.Is(err, ErrClosed) {
			t.Errorf("%s after Close: error = %v, want ErrClosed", name, err)
		}
	}
}
