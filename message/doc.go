// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package message provides the typed publish/subscribe dispatcher that
// drives the simulation lifecycle, and the lifecycle message types.
//
// Handlers subscribe per message type and are invoked synchronously, in
// registration order, on the goroutine that calls Dispatch:
//
//	d := message.NewDispatcher()
//	sub := message.Subscribe(d, func(m message.BeforeRender) error {
//	    // react to the start of a frame
//	    return nil
//	})
//	defer sub.Unsubscribe()
//
//	err := message.Dispatch(d, message.BeforeRender{})
//
// Dispatch is fail-fast: the first handler that returns an error aborts the
// dispatch and the error is returned to the caller wrapped in a
// *HandlerError. Handlers subscribed while a dispatch is in flight are not
// called by that dispatch.
package message
