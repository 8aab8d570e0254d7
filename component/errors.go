// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package component

import (
	"errors"
	"fmt"
)

// Registry errors.
var (
	// ErrDuplicateCapability is returned when a provider declares a capability
	// that another registered provider already satisfies.
	ErrDuplicateCapability = errors.New("component: duplicate capability")

	// ErrCapabilityNotFound is returned when no registered provider
	// satisfies the requested capability.
	ErrCapabilityNotFound = errors.New("component: capability not found")

	// ErrCapabilityNotImplemented is returned when a provider declares a
	// capability whose interface it does not implement.
	ErrCapabilityNotImplemented = errors.New("component: capability not implemented")

	// ErrNilProvider is returned when a nil provider is registered.
	ErrNilProvider = errors.New("component: nil provider")
)

// DuplicateCapabilityError reports the capability that collided and the
// provider already holding it.
type DuplicateCapabilityError struct {
	Capability *Capability
	Existing   Provider
}

func (e *DuplicateCapabilityError) Error() string {
	return fmt.Sprintf("component: duplicate capability %q (already provided by %T)", e.Capability.Name(), e.Existing)
}

// Unwrap returns ErrDuplicateCapability.
func (e *DuplicateCapabilityError) Unwrap() error { return ErrDuplicateCapability }

// CapabilityNotFoundError reports the capability that was requested.
type CapabilityNotFoundError struct {
	Capability *Capability
}

func (e *CapabilityNotFoundError) Error() string {
	return fmt.Sprintf("component: capability not found: %q", e.Capability.Name())
}

// Unwrap returns ErrCapabilityNotFound.
func (e *CapabilityNotFoundError) Unwrap() error { return ErrCapabilityNotFound }

// CapabilityNotImplementedError reports a provider that declared a
// capability it cannot serve.
type CapabilityNotImplementedError struct {
	Capability *Capability
	Provider   Provider
}

func (e *CapabilityNotImplementedError) Error() string {
	return fmt.Sprintf("component: %T declares %q but does not implement it", e.Provider, e.Capability.Name())
}

// Unwrap returns ErrCapabilityNotImplemented.
func (e *CapabilityNotImplementedError) Unwrap() error { return ErrCapabilityNotImplemented }
