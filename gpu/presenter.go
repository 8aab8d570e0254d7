// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/sim/component"
	"github.com/gogpu/sim/message"
)

// Presenter errors.
var (
	ErrNilDrawer       = errors.New("gpu: nil TextureDrawer")
	ErrInvalidRenderer = errors.New("gpu: drawer has no TextureCreator")
	ErrInvalidTexture  = errors.New("gpu: created texture is not a gpucontext.Texture")
	ErrPresenterClosed = errors.New("gpu: presenter is closed")
)

// FrameFunc returns the pixels to present, or nil to skip the frame.
type FrameFunc func() *image.RGBA

type textureDestroyer interface {
	Destroy()
}

type textureUpdater interface {
	UpdateData(data []byte) error
}

type createFunc func(width, height int, data []byte) (any, error)
type drawFunc func(tex any) error

// Presenter uploads a frame to a GPU texture after every frame and draws it
// at the origin of the drawer's target.
//
// The texture is created on the first upload and updated in place after
// that. When the frame size changes the old texture is kept until the
// replacement has been created, since in-flight command buffers may still
// sample it.
type Presenter struct {
	frame  FrameFunc
	drawer gpucontext.TextureDrawer
	bgra   bool

	texture any
	old     any
	width   int
	height  int
	buf     []byte
	closed  bool
	sub     *message.Subscription
}

var _ component.Provider = (*Presenter)(nil)

// NewPresenter creates a presenter drawing frames into dc. Pixels are
// swizzled to BGRA when bgra is set.
func NewPresenter(frame FrameFunc, dc gpucontext.TextureDrawer, bgra bool) (*Presenter, error) {
	if dc == nil {
		return nil, ErrNilDrawer
	}
	if frame == nil {
		return nil, errors.New("gpu: nil FrameFunc")
	}
	return &Presenter{frame: frame, drawer: dc, bgra: bgra}, nil
}

// Capabilities implements component.Provider. A presenter only reacts to
// lifecycle messages.
func (p *Presenter) Capabilities() []*component.Capability { return nil }

// Initialize implements component.Provider.
func (p *Presenter) Initialize(d *message.Dispatcher) error {
	p.sub = message.Subscribe(d, func(message.AfterRender) error { return p.Present() })
	return nil
}

// Present uploads and draws the current frame.
func (p *Presenter) Present() error {
	if p.closed {
		return ErrPresenterClosed
	}
	img := p.frame()
	if img == nil {
		return nil
	}
	create := func(w, h int, data []byte) (any, error) {
		creator := p.drawer.TextureCreator()
		if creator == nil {
			return nil, ErrInvalidRenderer
		}
		return creator.NewTextureFromRGBA(w, h, data)
	}
	draw := func(tex any) error {
		gt, ok := tex.(gpucontext.Texture)
		if !ok {
			return ErrInvalidTexture
		}
		return p.drawer.DrawTexture(gt, 0, 0)
	}
	return p.upload(img, create, draw)
}

func (p *Presenter) upload(img *image.RGBA, create createFunc, draw drawFunc) error {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	p.buf = ConvertFrame(img, p.bgra, p.buf)

	if p.texture != nil && (w != p.width || h != p.height) {
		destroy(p.old)
		p.old, p.texture = p.texture, nil
	}
	p.width, p.height = w, h

	if p.texture == nil {
		tex, err := create(w, h, p.buf)
		if err != nil {
			return fmt.Errorf("gpu: create frame texture: %w", err)
		}
		// image.RGBA holds premultiplied alpha.
		if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
			pt.SetPremultiplied(true)
		}
		p.texture = tex
		destroy(p.old)
		p.old = nil
	} else if u, ok := p.texture.(textureUpdater); ok {
		if err := u.UpdateData(p.buf); err != nil {
			return fmt.Errorf("gpu: update frame texture: %w", err)
		}
	}
	return draw(p.texture)
}

// Close destroys the frame textures. Close is idempotent.
func (p *Presenter) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.sub.Unsubscribe()
	destroy(p.old)
	destroy(p.texture)
	p.old, p.texture = nil, nil
	return nil
}

func destroy(tex any) {
	if d, ok := tex.(textureDestroyer); ok {
		d.Destroy()
	}
}

// ConvertFrame packs img into tightly packed rows, reusing dst when it is
// large enough. With bgra set the red and blue channels are swapped.
func ConvertFrame(img *image.RGBA, bgra bool, dst []byte) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	n := w * h * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	row := w * 4
	for y := 0; y < h; y++ {
		src := img.Pix[img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y):][:row]
		out := dst[y*row : (y+1)*row]
		copy(out, src)
		if bgra {
			for i := 0; i < row; i += 4 {
				out[i], out[i+2] = out[i+2], out[i]
			}
		}
	}
	return dst
}
