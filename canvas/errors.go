// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import "errors"

// Canvas errors.
var (
	// ErrStackUnderflow is returned by Pop when only the bottom snapshot remains.
	ErrStackUnderflow = errors.New("canvas: state stack underflow")

	// ErrClosed is returned when a closed canvas is used.
	ErrClosed = errors.New("canvas: canvas is closed")

	// ErrSessionOrder is returned by Session.Close when the session's
	// snapshot is not on top of the stack.
	ErrSessionOrder = errors.New("canvas: session closed out of order")

	// ErrNilContext is returned when a canvas is opened without a Context.
	ErrNilContext = errors.New("canvas: nil Context")
)
