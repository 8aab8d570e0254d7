// Package sim drives per-frame simulations on pluggable platforms.
//
// # Overview
//
// A [Host] owns the component registry and message dispatcher of one
// running simulation. It picks a platform, registers the components that
// platform supports, then runs the frame loop:
//
//	process events → BeforeRender → Render → user render → AfterRender → end frame
//
// until the platform asks to exit or the simulation is stopped.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/sim"
//		"github.com/gogpu/sim/canvas"
//		_ "github.com/gogpu/sim/platform/headless"
//	)
//
//	h, err := sim.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer h.Dispose()
//
//	err = h.Start(sim.SimulationFuncs{
//		Render: func(c *canvas.Canvas) error {
//			c.SetFillColor(canvas.Red)
//			return c.FillCircle(100, 100, 50)
//		},
//	})
//
// # Components
//
// Components are found by capability ([component.Capability]), not by
// concrete type. Each package that defines a capability exports it:
// graphics.Capability, input.KeyboardCapability, timing.Capability and so
// on. Use [Component] for typed lookups:
//
//	kb, err := sim.Component[input.Keyboard](h, input.KeyboardCapability)
//
// # Drawing
//
// The render callback receives a frame canvas whose state is pushed before
// the call and restored after it, so attribute changes never leak from one
// frame to the next. See package canvas for the state stack.
//
// # Logging
//
// sim is silent by default. Call [SetLogger] to see lifecycle and
// diagnostic output.
package sim
