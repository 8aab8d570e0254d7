package sim

import "github.com/gogpu/sim/canvas"

// Simulation is user code driven by a Host.
type Simulation interface {
	// OnInitialize runs once, before the Initialize message.
	OnInitialize(h *Host) error

	// OnRender draws one frame. The canvas state is pushed before the call
	// and restored after it.
	OnRender(c *canvas.Canvas) error

	// OnUninitialize runs once, after the Uninitialize message.
	OnUninitialize(h *Host) error
}

// SimulationFuncs adapts plain functions to Simulation. Nil fields are
// no-ops.
type SimulationFuncs struct {
	Init   func(h *Host) error
	Render func(c *canvas.Canvas) error
	Uninit func(h *Host) error
}

var _ Simulation = SimulationFuncs{}

// OnInitialize implements Simulation.
func (f SimulationFuncs) OnInitialize(h *Host) error {
	if f.Init == nil {
		return nil
	}
	return f.Init(h)
}

// OnRender implements Simulation.
func (f SimulationFuncs) OnRender(c *canvas.Canvas) error {
	if f.Render == nil {
		return nil
	}
	return f.Render(c)
}

// OnUninitialize implements Simulation.
func (f SimulationFuncs) OnUninitialize(h *Host) error {
	if f.Uninit == nil {
		return nil
	}
	return f.Uninit(h)
}
