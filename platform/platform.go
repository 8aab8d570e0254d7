// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package platform

import "github.com/gogpu/sim/component"

// Platform is the host environment of a simulation.
//
// All methods are called from the frame loop goroutine.
type Platform interface {
	component.Provider

	// CreateSupportedComponents returns the components this platform
	// provides. It is called once per initialization.
	CreateSupportedComponents() ([]component.Provider, error)

	// ProcessEvents pumps pending platform events. It is called at the
	// start of every frame.
	ProcessEvents() error

	// ShouldExit reports whether the frame loop should stop. It is checked
	// once per frame, after EndFrame.
	ShouldExit() bool

	// EndFrame presents the finished frame.
	EndFrame() error

	// OutputSize returns the frame size in pixels.
	OutputSize() (width, height int)

	// Dispose releases platform resources.
	Dispose() error
}

// Capability is the capability every Platform implements.
var Capability = component.Define[Platform]("platform")
