// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package component

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/gogpu/sim/internal/logging"
	"github.com/gogpu/sim/message"
)

// Registry holds the providers of one running simulation.
//
// Mutation is serialized, so a registry may be populated from any goroutine,
// but providers' Initialize runs on the registering goroutine.
type Registry struct {
	mu         sync.RWMutex
	dispatcher *message.Dispatcher
	providers  []Provider
	index      map[*Capability]Provider
}

// NewRegistry creates an empty registry whose providers subscribe to d.
func NewRegistry(d *message.Dispatcher) *Registry {
	return &Registry{
		dispatcher: d,
		index:      make(map[*Capability]Provider),
	}
}

// Dispatcher returns the dispatcher passed to providers' Initialize.
func (r *Registry) Dispatcher() *message.Dispatcher {
	return r.dispatcher
}

// Register validates p's declared capabilities, initializes it with the
// registry's dispatcher and indexes it under each capability.
//
// Register fails without side effects if p declares a capability it does not
// implement or one that is already provided. If Initialize fails, p is not
// registered and the subscriptions it made are removed. Initialize runs with the registry locked and must not call
// back into it.
func (r *Registry) Register(p Provider) error {
	if p == nil {
		return ErrNilProvider
	}

	caps := p.Capabilities()

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range caps {
		if !c.ImplementedBy(p) {
			return &CapabilityNotImplementedError{Capability: c, Provider: p}
		}
		if existing, ok := r.index[c]; ok {
			return &DuplicateCapabilityError{Capability: c, Existing: existing}
		}
		for _, prev := range caps[:i] {
			if prev == c {
				return &DuplicateCapabilityError{Capability: c, Existing: p}
			}
		}
	}

	mark := r.dispatcher.Mark()
	if err := p.Initialize(r.dispatcher); err != nil {
		r.dispatcher.UnsubscribeSince(mark)
		return fmt.Errorf("component: initialize %T: %w", p, err)
	}

	r.providers = append(r.providers, p)
	for _, c := range caps {
		r.index[c] = p
	}

	logging.Logger().Debug("component: registered", "provider", fmt.Sprintf("%T", p), "capabilities", len(caps))
	return nil
}

// Lookup returns the provider registered for c.
func (r *Registry) Lookup(c *Capability) (Provider, error) {
	r.mu.RLock()
	p, ok := r.index[c]
	r.mu.RUnlock()

	if !ok {
		return nil, &CapabilityNotFoundError{Capability: c}
	}
	return p, nil
}

// Has reports whether a provider is registered for c.
func (r *Registry) Has(c *Capability) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.index[c]
	return ok
}

// Providers returns the registered providers in registration order.
func (r *Registry) Providers() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers)
}

// Close closes every provider implementing io.Closer, most recently
// registered first, and empties the registry. Errors are joined.
func (r *Registry) Close() error {
	r.mu.Lock()
	providers := r.providers
	r.providers = nil
	r.index = make(map[*Capability]Provider)
	r.mu.Unlock()

	var errs []error
	for i := len(providers) - 1; i >= 0; i-- {
		c, ok := providers[i].(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil {
			logging.Logger().Warn("component: close failed", "provider", fmt.Sprintf("%T", providers[i]), "error", err)
			errs = append(errs, fmt.Errorf("component: close %T: %w", providers[i], err))
		}
	}
	return errors.Join(errs...)
}

// Get returns the provider registered for c as a T.
func Get[T any](r *Registry, c *Capability) (T, error) {
	var zero T
	p, err := r.Lookup(c)
	if err != nil {
		return zero, err
	}
	v, ok := p.(T)
	if !ok {
		return zero, &CapabilityNotImplementedError{Capability: c, Provider: p}
	}
	return v, nil
}

// MustGet is like Get but panics on error.
func MustGet[T any](r *Registry, c *Capability) T {
	v, err := Get[T](r, c)
	if err != nil {
		panic(err)
	}
	return v
}
