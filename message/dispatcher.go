// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package message

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/gogpu/sim/internal/logging"
)

// Dispatcher routes messages to the handlers subscribed to their type.
//
// Subscription and dispatch are serialized by a mutex, but handlers run
// outside of it, on the dispatching goroutine. A Dispatcher is intended to be
// driven from a single goroutine (the one owning the frame loop).
type Dispatcher struct {
	mu       sync.Mutex
	handlers map[reflect.Type][]*Subscription
	seq      uint64
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[reflect.Type][]*Subscription),
	}
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	d      *Dispatcher
	typ    reflect.Type
	fn     func(any) error
	seq    uint64
	active atomic.Bool
}

// Unsubscribe removes the handler. A handler removed while a dispatch is in
// flight is not called for the rest of that dispatch.
// Unsubscribe is idempotent.
func (s *Subscription) Unsubscribe() {
	if s == nil || !s.active.Swap(false) {
		return
	}
	s.d.remove(s)
}

// Active reports whether the subscription is still registered.
func (s *Subscription) Active() bool {
	return s != nil && s.active.Load()
}

// Type returns the message type the subscription listens to.
func (s *Subscription) Type() reflect.Type {
	return s.typ
}

// Subscribe registers fn for messages of type M.
// Handlers for the same type are invoked in registration order.
func Subscribe[M any](d *Dispatcher, fn func(M) error) *Subscription {
	if fn == nil {
		panic("message: Subscribe handler is nil")
	}
	s := &Subscription{
		d:   d,
		typ: reflect.TypeFor[M](),
		fn:  func(m any) error { return fn(m.(M)) },
	}
	s.active.Store(true)

	d.mu.Lock()
	d.seq++
	s.seq = d.seq
	// Copy-on-write so that snapshots held by in-flight dispatches are
	// never extended.
	list := d.handlers[s.typ]
	next := make([]*Subscription, len(list), len(list)+1)
	copy(next, list)
	d.handlers[s.typ] = append(next, s)
	d.mu.Unlock()

	return s
}

// SubscribeFunc registers a handler that cannot fail.
func SubscribeFunc[M any](d *Dispatcher, fn func(M)) *Subscription {
	if fn == nil {
		panic("message: SubscribeFunc handler is nil")
	}
	return Subscribe(d, func(m M) error {
		fn(m)
		return nil
	})
}

// Dispatch synchronously delivers msg to every handler subscribed to M at the
// time of the call. The first failing handler stops delivery; its error is
// returned wrapped in a *HandlerError.
func Dispatch[M any](d *Dispatcher, msg M) error {
	typ := reflect.TypeFor[M]()

	d.mu.Lock()
	snapshot := d.handlers[typ]
	d.mu.Unlock()

	for i, s := range snapshot {
		if !s.active.Load() {
			continue
		}
		if err := s.fn(msg); err != nil {
			logging.Logger().Debug("message: handler failed",
				"type", typ.String(), "index", i, "error", err)
			return &HandlerError{Type: typ, Index: i, Err: err}
		}
	}
	return nil
}

// Count returns the number of active handlers subscribed to M.
func Count[M any](d *Dispatcher) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handlers[reflect.TypeFor[M]()])
}

// Clear removes every subscription.
func (d *Dispatcher) Clear() {
	d.mu.Lock()
	all := d.handlers
	d.handlers = make(map[reflect.Type][]*Subscription)
	d.mu.Unlock()

	for _, list := range all {
		for _, s := range list {
			s.active.Store(false)
		}
	}
}

// Mark returns a position in the subscription history for UnsubscribeSince.
func (d *Dispatcher) Mark() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seq
}

// UnsubscribeSince removes every subscription made after mark was taken.
func (d *Dispatcher) UnsubscribeSince(mark uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for typ, list := range d.handlers {
		next := make([]*Subscription, 0, len(list))
		for _, s := range list {
			if s.seq > mark {
				s.active.Store(false)
				continue
			}
			next = append(next, s)
		}
		switch {
		case len(next) == 0:
			delete(d.handlers, typ)
		case len(next) != len(list):
			d.handlers[typ] = next
		}
	}
}

func (d *Dispatcher) remove(s *Subscription) {
	d.mu.Lock()
	defer d.mu.Unlock()

	list := d.handlers[s.typ]
	next := make([]*Subscription, 0, len(list))
	for _, other := range list {
		if other != s {
			next = append(next, other)
		}
	}
	if len(next) == 0 {
		delete(d.handlers, s.typ)
		return
	}
	d.handlers[s.typ] = next
}

// HandlerError reports a failure returned by a message handler.
type HandlerError struct {
	// Type is the dispatched message type.
	Type reflect.Type

	// Index is the position of the failing handler in the snapshot.
	Index int

	// Err is the error returned by the handler.
	Err error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("message: handler %d for %s failed: %v", e.Index, e.Type, e.Err)
}

// Unwrap returns the handler's error.
func (e *HandlerError) Unwrap() error {
	return e.Err
}
