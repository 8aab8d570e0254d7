// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"errors"
	"image"
	"image/color"
	"slices"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/sim/component"
	"github.com/gogpu/sim/message"
)

// mockDevice implements gpucontext.Device for testing.
type mockDevice struct {
	polls     []bool
	destroyed int
}

func (m *mockDevice) Poll(wait bool) { m.polls = append(m.polls, wait) }
func (m *mockDevice) Destroy()       { m.destroyed++ }

// mockProvider implements gpucontext.DeviceProvider for testing.
type mockProvider struct {
	device gpucontext.Device
	format gputypes.TextureFormat
}

func newMockProvider(format gputypes.TextureFormat) (*mockProvider, *mockDevice) {
	dev := &mockDevice{}
	return &mockProvider{device: dev, format: format}, dev
}

func (m *mockProvider) Device() gpucontext.Device             { return m.device }
func (m *mockProvider) Queue() gpucontext.Queue               { return nil }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return nil }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return m.format }

func (m *mockProvider) AdapterInfo() gpucontext.AdapterInfo {
	var info gpucontext.AdapterInfo
	return info
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		provider gpucontext.DeviceProvider
		wantErr  error
	}{
		{"nil provider", nil, ErrNilProvider},
		{"no device", &mockProvider{}, ErrNoDevice},
		{"valid", &mockProvider{device: &mockDevice{}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.provider)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		surface  gputypes.TextureFormat
		want     gputypes.TextureFormat
		wantBGRA bool
	}{
		{"undefined falls back", gputypes.TextureFormatUndefined, gputypes.TextureFormatRGBA8Unorm, false},
		{"bgra", gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8Unorm, true},
		{"rgba", gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8Unorm, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newMockProvider(tt.surface)
			d, err := New(p)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if got := d.Format(); got != tt.want {
				t.Errorf("Format() = %v, want %v", got, tt.want)
			}
			if d.BGRA() != tt.wantBGRA {
				t.Errorf("BGRA() = %v, want %v", d.BGRA(), tt.wantBGRA)
			}
			if d.SurfaceFormat() != tt.surface {
				t.Errorf("SurfaceFormat() = %v, want %v", d.SurfaceFormat(), tt.surface)
			}
		})
	}
}

func TestDevicePollsAfterRender(t *testing.T) {
	p, dev := newMockProvider(gputypes.TextureFormatRGBA8Unorm)
	d, err := New(p)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r := component.NewRegistry(message.NewDispatcher())
	if err := r.Register(d); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if got, err := component.Get[Provider](r, Capability); err != nil || got != Provider(d) {
		t.Fatalf("Get = %v, %v", got, err)
	}

	for range 2 {
		_ = message.Dispatch(r.Dispatcher(), message.AfterRender{})
	}
	if !slices.Equal(dev.polls, []bool{false, false}) {
		t.Errorf("polls = %v, want two non-blocking polls", dev.polls)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	_ = message.Dispatch(r.Dispatcher(), message.AfterRender{})
	if len(dev.polls) != 2 {
		t.Errorf("device polled after Close")
	}
	if dev.destroyed != 0 {
		t.Error("borrowed device must not be destroyed")
	}
}

func TestOwnedDeviceDestroyed(t *testing.T) {
	p, dev := newMockProvider(gputypes.TextureFormatRGBA8Unorm)
	d, err := New(p, WithOwnership())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_ = d.Close()
	_ = d.Close()
	if dev.destroyed != 1 {
		t.Errorf("destroyed = %d, want 1", dev.destroyed)
	}
}

// opaqueDevice exposes no optional device methods.
type opaqueDevice struct{}

func TestOpaqueDevice(t *testing.T) {
	d, err := New(&mockProvider{device: &opaqueDevice{}}, WithOwnership())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	d.Poll()
	if err := d.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
	var _ gpucontext.DeviceProvider = d
}

// mockTexture records uploads and destruction.
type mockTexture struct {
	width, height int
	data          []byte
	updated       int
	destroyed     bool
	premultiplied bool
}

func (m *mockTexture) UpdateData(data []byte) error {
	m.data = slices.Clone(data)
	m.updated++
	return nil
}

func (m *mockTexture) Destroy()                { m.destroyed = true }
func (m *mockTexture) SetPremultiplied(v bool) { m.premultiplied = v }

type mockSink struct {
	created []*mockTexture
	drawn   []any
	failing bool
}

func (s *mockSink) create(w, h int, data []byte) (any, error) {
	if s.failing {
		return nil, errors.New("out of memory")
	}
	tex := &mockTexture{width: w, height: h, data: slices.Clone(data)}
	s.created = append(s.created, tex)
	return tex, nil
}

func (s *mockSink) draw(tex any) error {
	s.drawn = append(s.drawn, tex)
	return nil
}

func testFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.SetRGBA(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	return img
}

func TestPresenterUploadLifecycle(t *testing.T) {
	p := &Presenter{}
	sink := &mockSink{}

	if err := p.upload(testFrame(2, 2), sink.create, sink.draw); err != nil {
		t.Fatalf("first upload: %v", err)
	}
	if err := p.upload(testFrame(2, 2), sink.create, sink.draw); err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if len(sink.created) != 1 {
		t.Fatalf("created %d textures, want 1", len(sink.created))
	}
	first := sink.created[0]
	if first.updated != 1 || !first.premultiplied {
		t.Errorf("texture updated = %d, premultiplied = %v", first.updated, first.premultiplied)
	}

	if err := p.upload(testFrame(4, 3), sink.create, sink.draw); err != nil {
		t.Fatalf("resized upload: %v", err)
	}
	if len(sink.created) != 2 || !first.destroyed {
		t.Errorf("resize should replace the texture and destroy the old one")
	}
	if second := sink.created[1]; second.width != 4 || second.height != 3 {
		t.Errorf("new texture = %dx%d, want 4x3", second.width, second.height)
	}
	if len(sink.drawn) != 3 {
		t.Errorf("drawn %d times, want 3", len(sink.drawn))
	}

	_ = p.Close()
	if !sink.created[1].destroyed {
		t.Error("Close should destroy the current texture")
	}
	if err := p.Present(); !errors.Is(err, ErrPresenterClosed) {
		t.Errorf("Present after Close = %v, want ErrPresenterClosed", err)
	}
}

func TestPresenterCreateFailure(t *testing.T) {
	p := &Presenter{}
	sink := &mockSink{failing: true}
	if err := p.upload(testFrame(1, 1), sink.create, sink.draw); err == nil {
		t.Fatal("upload should fail when texture creation fails")
	}
	if len(sink.drawn) != 0 {
		t.Error("nothing should be drawn without a texture")
	}
}

func TestNewPresenterValidation(t *testing.T) {
	if _, err := NewPresenter(func() *image.RGBA { return nil }, nil, false); !errors.Is(err, ErrNilDrawer) {
		t.Errorf("nil drawer error = %v, want ErrNilDrawer", err)
	}
}

func TestConvertFrame(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4)).SubImage(image.Rect(1, 1, 3, 2)).(*image.RGBA)
	img.SetRGBA(1, 1, color.RGBA{R: 1, G: 2, B: 3, A: 4})
	img.SetRGBA(2, 1, color.RGBA{R: 5, G: 6, B: 7, A: 8})

	if got := ConvertFrame(img, false, nil); !slices.Equal(got, []byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("RGBA = %v", got)
	}
	buf := make([]byte, 0, 64)
	got := ConvertFrame(img, true, buf)
	if !slices.Equal(got, []byte{3, 2, 1, 4, 7, 6, 5, 8}) {
		t.Errorf("BGRA = %v", got)
	}
	if &got[0] != &buf[:1][0] {
		t.Error("ConvertFrame should reuse a large enough buffer")
	}
}
