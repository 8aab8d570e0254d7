// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package platform

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/sim/internal/logging"
)

// ErrNoPlatformAvailable is returned when no factory produces a platform.
var ErrNoPlatformAvailable = errors.New("platform: no platform available")

// Factory constructs a platform. A factory that cannot run in the current
// environment returns an error.
type Factory func(cfg Config) (Platform, error)

type entry struct {
	name    string
	factory Factory
}

// Registry holds platform factories in registration order.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries []entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a factory. It panics on a nil factory or a duplicate name,
// both being programming errors in an init function.
func (r *Registry) Register(name string, f Factory) {
	if f == nil {
		panic("platform: Register factory is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if slices.ContainsFunc(r.entries, func(e entry) bool { return e.name == name }) {
		panic("platform: Register called twice for " + name)
	}
	r.entries = append(r.entries, entry{name: name, factory: f})
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.name
	}
	return names
}

// Create tries the factories in registration order and returns the first
// platform constructed without error, along with its name. Failures are
// logged and skipped. When every factory fails the result wraps
// ErrNoPlatformAvailable and the individual errors.
func (r *Registry) Create(cfg Config) (Platform, string, error) {
	r.mu.RLock()
	entries := slices.Clone(r.entries)
	r.mu.RUnlock()

	var errs []error
	for _, e := range entries {
		p, err := e.factory(cfg)
		if err == nil && p == nil {
			err = errors.New("factory returned nil")
		}
		if err != nil {
			logging.Logger().Warn("platform: factory failed", "platform", e.name, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", e.name, err))
			continue
		}
		logging.Logger().Info("platform: selected", "platform", e.name)
		return p, e.name, nil
	}
	if len(errs) == 0 {
		return nil, "", ErrNoPlatformAvailable
	}
	return nil, "", fmt.Errorf("%w: %w", ErrNoPlatformAvailable, errors.Join(errs...))
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry platform packages register with.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a factory to the default registry.
func Register(name string, f Factory) {
	defaultRegistry.Register(name, f)
}
