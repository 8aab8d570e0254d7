// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package headless provides a windowless platform.
//
// The headless platform renders into a software frame and replays scripted
// input. With Config.MaxFrames set it stops after that many frames. It never
// fails to start, so it works as the fallback when no windowing platform is
// available.
package headless

import (
	"image"
	"sync/atomic"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/sim/component"
	"github.com/gogpu/sim/gpu"
	"github.com/gogpu/sim/graphics"
	"github.com/gogpu/sim/input"
	"github.com/gogpu/sim/internal/logging"
	"github.com/gogpu/sim/message"
	"github.com/gogpu/sim/platform"
	"github.com/gogpu/sim/timing"
)

// Name is the name the platform registers under.
const Name = "headless"

// FrameStep is the clock step of a headless frame.
const FrameStep = time.Second / 60

func init() {
	platform.Register(Name, func(cfg platform.Config) (platform.Platform, error) {
		return New(cfg)
	})
}

// Option configures a Platform.
type Option func(*Platform)

// WithScript queues events to be fed to the input component at the start
// of the given zero-based frame.
func WithScript(frame int, events ...input.Event) Option {
	return func(p *Platform) {
		p.script[frame] = append(p.script[frame], events...)
	}
}

// WithDeviceProvider adds a gpu.Device component wrapping dp.
func WithDeviceProvider(dp gpucontext.DeviceProvider) Option {
	return func(p *Platform) { p.device = dp }
}

// WithTextureDrawer presents every frame through dc.
func WithTextureDrawer(dc gpucontext.TextureDrawer) Option {
	return func(p *Platform) { p.drawer = dc }
}

// WithStep overrides the clock step.
func WithStep(step time.Duration) Option {
	return func(p *Platform) { p.step = step }
}

// Platform is the headless platform.
type Platform struct {
	cfg    platform.Config
	script map[int][]input.Event
	device gpucontext.DeviceProvider
	drawer gpucontext.TextureDrawer
	step   time.Duration

	width, height int
	frames        int
	exit          atomic.Bool
	disposed      bool

	graphics *graphics.Software
	input    *input.State
	clock    *timing.Realtime
}

var _ platform.Platform = (*Platform)(nil)

// New creates a headless platform sized from cfg.
func New(cfg platform.Config, opts ...Option) (*Platform, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Platform{
		cfg:    cfg,
		script: make(map[int][]input.Event),
		step:   FrameStep,
		width:  cfg.Width,
		height: cfg.Height,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Capabilities implements component.Provider.
func (p *Platform) Capabilities() []*component.Capability {
	return []*component.Capability{platform.Capability}
}

// Initialize implements component.Provider.
func (*Platform) Initialize(*message.Dispatcher) error { return nil }

// CreateSupportedComponents implements platform.Platform. It returns the
// software graphics provider, the input state and a fixed-step clock, plus
// the GPU components requested through options.
func (p *Platform) CreateSupportedComponents() ([]component.Provider, error) {
	p.graphics = graphics.NewSoftware(p.OutputSize)
	p.input = input.NewState()
	p.clock = timing.NewRealtime(timing.WithFixedStep(p.step))

	components := []component.Provider{p.graphics, p.input, p.clock}

	bgra := false
	if p.device != nil {
		dev, err := gpu.New(p.device)
		if err != nil {
			return nil, err
		}
		bgra = dev.BGRA()
		components = append(components, dev)
	}
	if p.drawer != nil {
		pr, err := gpu.NewPresenter(p.frame, p.drawer, bgra)
		if err != nil {
			return nil, err
		}
		components = append(components, pr)
	}
	return components, nil
}

func (p *Platform) frame() *image.RGBA {
	if p.graphics == nil {
		return nil
	}
	return p.graphics.Frame().RGBA()
}

// ProcessEvents implements platform.Platform by feeding the events scripted
// for the current frame.
func (p *Platform) ProcessEvents() error {
	if events := p.script[p.frames]; len(events) > 0 && p.input != nil {
		p.input.Feed(events...)
		logging.Logger().Debug("headless: scripted input", "frame", p.frames, "events", len(events))
	}
	return nil
}

// EndFrame implements platform.Platform.
func (p *Platform) EndFrame() error {
	p.frames++
	return nil
}

// ShouldExit implements platform.Platform. It is true once the frame budget
// is spent or RequestExit was called.
func (p *Platform) ShouldExit() bool {
	if p.exit.Load() {
		return true
	}
	return p.cfg.MaxFrames > 0 && p.frames >= p.cfg.MaxFrames
}

// RequestExit ends the loop at the next exit check. It may be called from
// any goroutine.
func (p *Platform) RequestExit() {
	p.exit.Store(true)
}

// OutputSize implements platform.Platform.
func (p *Platform) OutputSize() (width, height int) {
	return p.width, p.height
}

// Resize changes the output size. The frame follows at the next frame.
func (p *Platform) Resize(width, height int) {
	if width > 0 && height > 0 {
		p.width, p.height = width, height
	}
}

// Frames returns the number of completed frames.
func (p *Platform) Frames() int {
	return p.frames
}

// Graphics returns the software graphics provider, or nil before
// CreateSupportedComponents.
func (p *Platform) Graphics() *graphics.Software {
	return p.graphics
}

// Dispose implements platform.Platform. Components are closed by the
// registry that holds them, so only platform state is dropped here.
func (p *Platform) Dispose() error {
	if p.disposed {
		return nil
	}
	p.disposed = true
	p.script = nil
	logging.Logger().Debug("headless: disposed", "frames", p.frames)
	return nil
}
