// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package component implements the capability registry that holds the
// providers a platform contributes to a running simulation.
//
// A capability is a well-known interface (graphics, keyboard, clock, ...)
// identified by a *Capability value created once with Define. Providers
// declare which capabilities they implement; the registry validates the
// declaration and indexes the provider under each capability at
// registration time, so lookups never scan providers:
//
//	var Graphics = component.Define[graphics.Provider]("graphics")
//
//	reg := component.NewRegistry(dispatcher)
//	if err := reg.Register(softwareGraphics); err != nil {
//	    return err
//	}
//	gfx, err := component.Get[graphics.Provider](reg, Graphics)
//
// At most one provider may satisfy a capability. Registering a second one
// fails with ErrDuplicateCapability; looking up a capability nobody provides
// fails with ErrCapabilityNotFound.
package component
