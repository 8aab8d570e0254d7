// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package component

import "github.com/gogpu/sim/message"

// Provider is implemented by every component a registry can hold.
type Provider interface {
	// Capabilities lists the capabilities this provider implements.
	Capabilities() []*Capability

	// Initialize is called once, when the provider is registered, so that
	// it can subscribe to lifecycle messages before the frame loop starts.
	Initialize(d *message.Dispatcher) error
}

// Capability identifies a capability interface.
// Capabilities are compared by identity; create each one once with Define
// and share the returned pointer.
type Capability struct {
	name      string
	satisfies func(Provider) bool
}

// Define creates the capability for interface type T.
func Define[T any](name string) *Capability {
	return &Capability{
		name: name,
		satisfies: func(p Provider) bool {
			_, ok := p.(T)
			return ok
		},
	}
}

// Name returns the capability name given to Define.
func (c *Capability) Name() string {
	return c.name
}

// String implements fmt.Stringer.
func (c *Capability) String() string {
	return c.name
}

// ImplementedBy reports whether p implements the capability's interface.
func (c *Capability) ImplementedBy(p Provider) bool {
	return p != nil && c.satisfies(p)
}
