// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package input provides keyboard and mouse capabilities.
//
// Platforms feed raw events into a State with Feed. Events are applied at
// the start of each frame (on message.BeforeRender), so every query made
// during a frame observes the same snapshot:
//
//	kb, _ := sim.Component[input.Keyboard](h, input.KeyboardCapability)
//	if kb.IsKeyPressed(input.KeySpace) {
//	    jump()
//	}
//
// Pressed and released edges, mouse movement and scroll deltas last for one
// frame and are cleared on message.AfterRender. Each applied edge is also
// dispatched as a KeyPressed, KeyReleased, ButtonPressed or ButtonReleased
// message.
package input
