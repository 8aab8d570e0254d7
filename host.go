package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/gogpu/sim/canvas"
	"github.com/gogpu/sim/component"
	"github.com/gogpu/sim/graphics"
	"github.com/gogpu/sim/message"
	"github.com/gogpu/sim/platform"
)

// HostState is the lifecycle state of a Host.
type HostState int

// Host states. Disposed can be reached from any state and is final.
const (
	Uninitialized HostState = iota
	Initialized
	Running
	Stopped
	Disposed
)

var stateNames = [...]string{
	Uninitialized: "Uninitialized",
	Initialized:   "Initialized",
	Running:       "Running",
	Stopped:       "Stopped",
	Disposed:      "Disposed",
}

func (s HostState) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("HostState(%d)", int(s))
}

// run identifies one Start call. Simulations are not required to be
// comparable, so the host tracks the current run instead.
type run struct {
	sim Simulation
}

// Host runs simulations.
//
// Start blocks on the calling goroutine, which then owns the frame loop.
// Stop, Dispose and the accessors may be called from any goroutine.
type Host struct {
	mu         sync.Mutex
	state      HostState
	config     platform.Config
	platforms  *platform.Registry
	dispatcher *message.Dispatcher
	registry   *component.Registry
	platform   platform.Platform
	current    *run
	dispose    bool // Dispose called while running
	frames     uint64
}

// New creates an uninitialized host.
func New(opts ...Option) (*Host, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.config.Validate(); err != nil {
		return nil, err
	}

	switch {
	case o.logger != nil:
		SetLogger(o.logger)
	case o.config.LogLevel != "":
		level, _ := o.config.SlogLevel()
		SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}

	d := message.NewDispatcher()
	return &Host{
		config:     o.config,
		platforms:  o.platforms,
		dispatcher: d,
		registry:   component.NewRegistry(d),
	}, nil
}

// Initialize registers p and the components it supports. With a nil p the
// host creates one from its platform registry, first success winning.
//
// On failure the host stays Uninitialized and everything registered so far
// is closed.
func (h *Host) Initialize(p platform.Platform) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.initializeLocked(p)
}

func (h *Host) initializeLocked(p platform.Platform) error {
	switch h.state {
	case Uninitialized:
	case Disposed:
		return ErrHostDisposed
	default:
		return ErrAlreadyInitialized
	}

	owned := false
	if p == nil {
		created, name, err := h.platforms.Create(h.config)
		if err != nil {
			return err
		}
		Logger().Debug("sim: platform created", "platform", name)
		p, owned = created, true
	}

	if err := h.registerPlatform(p); err != nil {
		_ = h.registry.Close()
		h.dispatcher.Clear()
		if owned {
			_ = p.Dispose()
		}
		return err
	}

	h.platform = p
	h.state = Initialized
	Logger().Info("sim: initialized", "platform", fmt.Sprintf("%T", p), "components", h.registry.Len())
	return nil
}

func (h *Host) registerPlatform(p platform.Platform) error {
	if err := h.registry.Register(p); err != nil {
		return err
	}
	components, err := p.CreateSupportedComponents()
	if err != nil {
		return fmt.Errorf("sim: create components: %w", err)
	}
	for _, c := range components {
		if err := h.registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Start runs s until the platform asks to exit, Stop is called, or a frame
// fails. An uninitialized host initializes itself from its platform
// registry first.
//
// Start dispatches Initialize before the first frame and Uninitialize after
// the last one, even when a frame failed; the frame error is then joined
// with any teardown error. The host ends Stopped.
func (h *Host) Start(s Simulation) error {
	if s == nil {
		return ErrNilSimulation
	}

	h.mu.Lock()
	switch h.state {
	case Disposed:
		h.mu.Unlock()
		return ErrHostDisposed
	case Running:
		h.mu.Unlock()
		return ErrSimulationAlreadyRunning
	case Stopped:
		h.mu.Unlock()
		return ErrStopped
	case Uninitialized:
		if err := h.initializeLocked(nil); err != nil {
			h.mu.Unlock()
			return err
		}
	}
	r := &run{sim: s}
	h.current = r
	h.state = Running
	h.mu.Unlock()

	Logger().Info("sim: started")
	err := h.run(r)
	return errors.Join(err, h.finish())
}

func (h *Host) run(r *run) error {
	if err := r.sim.OnInitialize(h); err != nil {
		return fmt.Errorf("sim: initialize simulation: %w", err)
	}

	err := message.Dispatch(h.dispatcher, message.Initialize{})
	if err == nil {
		err = h.loop(r)
	}

	return errors.Join(
		err,
		message.Dispatch(h.dispatcher, message.Uninitialize{}),
		r.sim.OnUninitialize(h),
	)
}

func (h *Host) loop(r *run) error {
	gfx, err := component.Get[graphics.Provider](h.registry, graphics.Capability)
	if err != nil {
		return err
	}
	for {
		if err := h.frame(r, gfx); err != nil {
			return err
		}
		if h.platform.ShouldExit() || !h.isCurrent(r) {
			return nil
		}
	}
}

func (h *Host) frame(r *run, gfx graphics.Provider) error {
	if err := h.platform.ProcessEvents(); err != nil {
		return fmt.Errorf("sim: process events: %w", err)
	}
	if err := message.Dispatch(h.dispatcher, message.BeforeRender{}); err != nil {
		return err
	}

	c, err := gfx.FrameCanvas()
	if err != nil {
		return fmt.Errorf("sim: frame canvas: %w", err)
	}
	if err := errors.Join(h.render(r, c), c.Flush(), c.Close()); err != nil {
		return err
	}

	if err := message.Dispatch(h.dispatcher, message.AfterRender{}); err != nil {
		return err
	}
	if err := h.platform.EndFrame(); err != nil {
		return fmt.Errorf("sim: end frame: %w", err)
	}

	h.mu.Lock()
	h.frames++
	h.mu.Unlock()
	return nil
}

// render dispatches Render and calls the simulation inside a pushed session.
func (h *Host) render(r *run, c *canvas.Canvas) error {
	if err := message.Dispatch(h.dispatcher, message.Render{Canvas: c}); err != nil {
		return err
	}
	if !h.isCurrent(r) {
		return nil
	}
	session, err := c.Push()
	if err != nil {
		return err
	}
	return errors.Join(r.sim.OnRender(c), session.Close())
}

func (h *Host) isCurrent(r *run) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current == r
}

// finish moves a finished run to Stopped, or tears the host down when
// Dispose was called during the run.
func (h *Host) finish() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = nil
	h.state = Stopped
	Logger().Info("sim: stopped", "frames", h.frames)
	if h.dispose {
		return h.teardownLocked()
	}
	return nil
}

// Stop ends the current simulation after the frame in progress. The
// remaining part of that frame does not call the simulation again.
func (h *Host) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == Running {
		h.current = nil
	}
}

// Dispose releases the components and the platform. Called while a
// simulation runs, it stops the simulation and tears down when the loop
// exits. Dispose is idempotent.
func (h *Host) Dispose() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch {
	case h.state == Disposed:
		return nil
	case h.state == Running:
		h.dispose = true
		h.current = nil
		return nil
	}
	return h.teardownLocked()
}

func (h *Host) teardownLocked() error {
	errs := []error{h.registry.Close()}
	if h.platform != nil {
		if err := h.platform.Dispose(); err != nil {
			errs = append(errs, fmt.Errorf("sim: dispose platform: %w", err))
		}
		h.platform = nil
	}
	h.dispatcher.Clear()
	h.state = Disposed
	Logger().Info("sim: disposed")
	return errors.Join(errs...)
}

// State returns the lifecycle state.
func (h *Host) State() HostState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Frames returns the number of completed frames.
func (h *Host) Frames() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}

// Registry returns the component registry.
func (h *Host) Registry() *component.Registry {
	return h.registry
}

// Dispatcher returns the message dispatcher.
func (h *Host) Dispatcher() *message.Dispatcher {
	return h.dispatcher
}

// Platform returns the platform, or nil before Initialize and after Dispose.
func (h *Host) Platform() platform.Platform {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.platform
}

// Current returns the running simulation, or nil.
func (h *Host) Current() Simulation {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return nil
	}
	return h.current.sim
}

// Component returns the component registered for c as a T.
func Component[T any](h *Host, c *component.Capability) (T, error) {
	if s := h.State(); s == Uninitialized || s == Disposed {
		var zero T
		if s == Disposed {
			return zero, ErrHostDisposed
		}
		return zero, ErrNotInitialized
	}
	return component.Get[T](h.registry, c)
}
