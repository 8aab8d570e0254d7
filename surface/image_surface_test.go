// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"testing"

	"github.com/gogpu/sim/canvas"
)

// near reports whether two colors match within 8-bit rounding.
func near(a, b canvas.Color) bool {
	const tol = 2.0 / 255
	d := func(x, y float64) bool { return x-y < tol && y-x < tol }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func openCanvas(t *testing.T, s *ImageSurface) *canvas.Canvas {
	t.Helper()
	c, err := s.OpenCanvas()
	if err != nil {
		t.Fatalf("OpenCanvas: %v", err)
	}
	return c
}

func mustDo(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func TestImageSurfacePixels(t *testing.T) {
	s := NewImageSurface(3, 2)
	defer s.Close()

	if s.Width() != 3 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", s.Width(), s.Height())
	}
	if got := s.Pixel(0, 0); got != canvas.Transparent {
		t.Errorf("new surface pixel = %v, want transparent", got)
	}

	s.SetPixel(2, 1, canvas.Red)
	s.SetPixel(9, 9, canvas.Red)
	if got := s.Pixel(2, 1); got != canvas.Red {
		t.Errorf("Pixel(2, 1) = %v, want red", got)
	}
	if got := s.Pixel(-1, 0); got != canvas.Transparent {
		t.Errorf("out-of-range Pixel = %v, want transparent", got)
	}

	half := canvas.RGBA(0, 0, 1, 0.5)
	s.SetPixel(0, 0, half)
	if got := s.Pixel(0, 0); !near(got, half) {
		t.Errorf("translucent round trip = %v, want %v", got, half)
	}
}

func TestNewImageSurfaceFromPixels(t *testing.T) {
	if _, err := NewImageSurfaceFromPixels(2, 2, make([]canvas.Color, 3)); err == nil {
		t.Error("mismatched pixel count should fail")
	}
	if _, err := NewImageSurfaceFromPixels(2, 2, nil); err == nil {
		t.Error("nil pixels should fail")
	}

	s, err := NewImageSurfaceFromPixels(2, 1, []canvas.Color{canvas.Green, canvas.Blue})
	if err != nil {
		t.Fatalf("NewImageSurfaceFromPixels: %v", err)
	}
	if s.Pixel(0, 0) != canvas.Green || s.Pixel(1, 0) != canvas.Blue {
		t.Errorf("pixels = %v, %v", s.Pixel(0, 0), s.Pixel(1, 0))
	}
}

func TestNewSurface(t *testing.T) {
	pixels := []canvas.Color{canvas.Red, canvas.Green, canvas.Blue, canvas.White}
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"blank", Options{Width: 3, Height: 2}, false},
		{"pixels", Options{Width: 2, Height: 2, Pixels: pixels}, false},
		{"zero width", Options{Width: 0, Height: 2}, true},
		{"negative height", Options{Width: 2, Height: -1}, true},
		{"short pixels", Options{Width: 2, Height: 2, Pixels: pixels[:3]}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSurface(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewSurface() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer s.Close()
			if s.Width() != tt.opts.Width || s.Height() != tt.opts.Height {
				t.Errorf("size = %dx%d", s.Width(), s.Height())
			}
			if tt.opts.Pixels != nil && s.Pixel(1, 1) != canvas.White {
				t.Errorf("Pixel(1, 1) = %v, want white", s.Pixel(1, 1))
			}
		})
	}

	var count *PixelCountError
	if _, err := NewSurface(Options{Width: 2, Height: 2, Pixels: pixels[:3]}); !errors.As(err, &count) {
		t.Errorf("short pixel slice error = %v, want PixelCountError", err)
	} else if count.Got != 3 {
		t.Errorf("PixelCountError.Got = %d, want 3", count.Got)
	}
}

func TestPixelsStoredPremultiplied(t *testing.T) {
	half := canvas.RGBA(1, 0, 0, 0.5)
	s, err := NewImageSurfaceFromPixels(1, 1, []canvas.Color{half})
	if err != nil {
		t.Fatalf("NewImageSurfaceFromPixels: %v", err)
	}
	pix := s.RGBA().Pix
	if pix[3] < 127 || pix[3] > 128 || pix[0] != pix[3] || pix[1] != 0 || pix[2] != 0 {
		t.Errorf("Pix = %v, want premultiplied half red", pix[:4])
	}
	if got := s.Pixel(0, 0); !near(got, half) {
		t.Errorf("Pixel(0, 0) = %v, want %v", got, half)
	}
}

func TestCanvasClearAndFill(t *testing.T) {
	s := NewImageSurface(10, 10)
	c := openCanvas(t, s)

	mustDo(t, c.Clear(canvas.White))
	mustDo(t, c.SetFillColor(canvas.Red))
	mustDo(t, c.FillRect(2, 2, 4, 4))
	mustDo(t, c.Close())

	if got := s.Pixel(3, 3); !near(got, canvas.Red) {
		t.Errorf("inside = %v, want red", got)
	}
	if got := s.Pixel(8, 8); got != canvas.White {
		t.Errorf("outside = %v, want white", got)
	}
}

func TestCanvasTransformAndSession(t *testing.T) {
	s := NewImageSurface(10, 10)
	c := openCanvas(t, s)
	defer c.Close()

	sess, _ := c.Push()
	mustDo(t, c.Translate(5, 5))
	mustDo(t, c.SetFillColor(canvas.Blue))
	mustDo(t, c.FillRect(0, 0, 2, 2))
	mustDo(t, sess.Close())

	mustDo(t, c.FillRect(0, 0, 2, 2))

	if got := s.Pixel(6, 6); !near(got, canvas.Blue) {
		t.Errorf("translated fill = %v, want blue", got)
	}
	if got := s.Pixel(1, 1); !near(got, canvas.Black) {
		t.Errorf("fill after pop = %v, want default black", got)
	}
}

func TestCanvasClip(t *testing.T) {
	s := NewImageSurface(10, 10)
	c := openCanvas(t, s)
	defer c.Close()

	sess, _ := c.Push()
	mustDo(t, c.ClipRect(0, 0, 5, 10))
	mustDo(t, c.SetFillColor(canvas.Green))
	mustDo(t, c.FillRect(0, 0, 10, 10))
	mustDo(t, sess.Close())

	if got := s.Pixel(2, 5); !near(got, canvas.Green) {
		t.Errorf("inside clip = %v, want green", got)
	}
	if got := s.Pixel(7, 5); got != canvas.Transparent {
		t.Errorf("outside clip = %v, want transparent", got)
	}

	// The clip ended with the session.
	mustDo(t, c.FillRect(0, 0, 10, 10))
	if got := s.Pixel(7, 5); !near(got, canvas.Black) {
		t.Errorf("after pop = %v, want black", got)
	}
}

func TestCanvasGradientFill(t *testing.T) {
	s := NewImageSurface(10, 4)
	c := openCanvas(t, s)
	defer c.Close()

	g := canvas.NewLinearGradient(0, 0, 10, 0, canvas.ExtendPad,
		canvas.ColorStop{Offset: 0, Color: canvas.Black},
		canvas.ColorStop{Offset: 1, Color: canvas.White},
	)
	mustDo(t, c.SetFillGradient(g))
	mustDo(t, c.FillRect(0, 0, 10, 4))

	left, right := s.Pixel(1, 2), s.Pixel(8, 2)
	if !(left.R < right.R) {
		t.Errorf("gradient should brighten left to right: %v vs %v", left, right)
	}
	// Pixel center 4.5 of 10.
	if got := s.Pixel(4, 2).R; got < 0.4 || got > 0.5 {
		t.Errorf("midpoint red = %v, want about 0.45", got)
	}
}

func TestCanvasTextureFill(t *testing.T) {
	tex, err := NewImageSurfaceFromPixels(2, 1, []canvas.Color{canvas.Red, canvas.Blue})
	if err != nil {
		t.Fatal(err)
	}
	s := NewImageSurface(6, 2)
	c := openCanvas(t, s)
	defer c.Close()

	mustDo(t, c.SetFillTexture(canvas.NewTextureFill(tex, canvas.TileRepeat, canvas.TileRepeat)))
	mustDo(t, c.FillRect(0, 0, 6, 2))

	want := []canvas.Color{canvas.Red, canvas.Blue, canvas.Red, canvas.Blue, canvas.Red, canvas.Blue}
	for x, w := range want {
		if got := s.Pixel(x, 1); !near(got, w) {
			t.Errorf("Pixel(%d, 1) = %v, want %v", x, got, w)
		}
	}
}

func TestCanvasDrawTexture(t *testing.T) {
	tex, _ := NewImageSurfaceFromPixels(2, 2, []canvas.Color{
		canvas.Green, canvas.Green, canvas.Green, canvas.Green,
	})
	s := NewImageSurface(8, 8)
	c := openCanvas(t, s)
	defer c.Close()

	mustDo(t, c.DrawTextureRect(tex, canvas.R(2, 2, 4, 4)))

	if got := s.Pixel(3, 3); !near(got, canvas.Green) {
		t.Errorf("inside texture = %v, want green", got)
	}
	if got := s.Pixel(0, 0); got != canvas.Transparent {
		t.Errorf("outside texture = %v, want transparent", got)
	}
}

func TestCanvasStroke(t *testing.T) {
	s := NewImageSurface(10, 10)
	c := openCanvas(t, s)
	defer c.Close()

	mustDo(t, c.SetStrokeWidth(2))
	mustDo(t, c.SetStrokeColor(canvas.Red))
	mustDo(t, c.DrawLine(0, 5, 10, 5))

	if got := s.Pixel(5, 4); !near(got, canvas.Red) {
		t.Errorf("on line = %v, want red", got)
	}
	if got := s.Pixel(5, 1); got != canvas.Transparent {
		t.Errorf("off line = %v, want transparent", got)
	}
}

func TestCanvasDrawText(t *testing.T) {
	s := NewImageSurface(20, 16)
	c := openCanvas(t, s)
	defer c.Close()

	mustDo(t, c.SetFillColor(canvas.White))
	mustDo(t, c.DrawText("H", 2, 12))

	lit := 0
	for y := range 16 {
		for x := range 20 {
			if s.Pixel(x, y).A > 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("DrawText drew nothing")
	}
}

func TestOpenCanvasExclusive(t *testing.T) {
	s := NewImageSurface(4, 4)
	c := openCanvas(t, s)

	if _, err := s.OpenCanvas(); !errors.Is(err, ErrCanvasOpen) {
		t.Errorf("second OpenCanvas = %v, want ErrCanvasOpen", err)
	}
	if err := s.Resize(8, 8); !errors.Is(err, ErrCanvasOpen) {
		t.Errorf("Resize while open = %v, want ErrCanvasOpen", err)
	}

	mustDo(t, c.Close())
	c2 := openCanvas(t, s)
	_ = c2.Close()
}

func TestImageSurfaceResize(t *testing.T) {
	s := NewImageSurface(4, 4)
	s.SetPixel(1, 1, canvas.Red)

	mustDo(t, s.Resize(8, 2))
	if s.Width() != 8 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, want 8x2", s.Width(), s.Height())
	}
	if got := s.Pixel(1, 1); got != canvas.Red {
		t.Errorf("preserved pixel = %v, want red", got)
	}
}

func TestImageSurfaceClose(t *testing.T) {
	s := NewImageSurface(4, 4)
	c := openCanvas(t, s)
	_, _ = c.Push()

	mustDo(t, s.Close())
	if !c.Closed() {
		t.Error("closing the surface should close its canvas")
	}
	if _, err := s.OpenCanvas(); !errors.Is(err, ErrClosed) {
		t.Errorf("OpenCanvas after Close = %v, want ErrClosed", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if s.Snapshot() != nil {
		t.Error("Snapshot of closed surface should be nil")
	}
}
