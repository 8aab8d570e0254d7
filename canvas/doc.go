// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package canvas implements the stateful 2D drawing surface handed to
// simulation code, and the graphics-state stack behind it.
//
// # State stack
//
// A Canvas owns a Stack of State snapshots. The bottom snapshot is the
// default state of the surface and can never be popped; the top snapshot is
// the active state. Push duplicates the top snapshot and returns a Session
// whose Close performs the matching Pop:
//
//	s, err := c.Push()
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	c.Translate(100, 100)
//	c.SetFillColor(canvas.Red)
//	c.FillRect(0, 0, 10, 10)
//
// Attribute setters only touch the top snapshot and immediately apply the
// effective state to the backend Context. Pop releases the backend resources
// owned by the removed snapshot and re-applies the state beneath it.
//
// # Backends
//
// Concrete renderers implement Context. A Context receives whole State
// values through Apply and resolves gradient and texture fills into Shader
// resources on demand. Resolved shaders are cached per snapshot and owned by
// it exclusively: two snapshots referencing the same gradient each resolve
// their own shader.
//
// A Canvas, its Stack and its Context are used from one goroutine.
package canvas
