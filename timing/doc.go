// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package timing provides the frame clock component.
//
// A Clock advances once per frame, on BeforeRender, so every handler and the
// simulation see the same delta for the whole frame.
package timing
