// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/sim/component"
	"github.com/gogpu/sim/internal/logging"
	"github.com/gogpu/sim/message"
)

// Errors returned by New.
var (
	ErrNilProvider = errors.New("gpu: nil DeviceProvider")
	ErrNoDevice    = errors.New("gpu: provider has no device")
)

// Provider is the GPU capability interface.
type Provider interface {
	gpucontext.DeviceProvider

	// Format is the frame texture format, never TextureFormatUndefined.
	Format() gputypes.TextureFormat
}

// Capability is the capability of a Device.
var Capability = component.Define[Provider]("gpu")

// Option configures a Device.
type Option func(*Device)

// WithOwnership makes Close destroy the device. By default the device
// belongs to the host application and is left alive.
func WithOwnership() Option {
	return func(d *Device) { d.owned = true }
}

// Device handles are opaque in gpucontext; polling and destruction are
// available only on backends that implement them.
type devicePoller interface {
	Poll(wait bool)
}

type deviceDestroyer interface {
	Destroy()
}

// Device is a component wrapping a host DeviceProvider.
type Device struct {
	provider gpucontext.DeviceProvider
	owned    bool
	closed   bool
	sub      *message.Subscription
}

var (
	_ Provider           = (*Device)(nil)
	_ component.Provider = (*Device)(nil)
)

// New wraps p. It fails if p is nil or has no device.
func New(p gpucontext.DeviceProvider, opts ...Option) (*Device, error) {
	if p == nil {
		return nil, ErrNilProvider
	}
	if p.Device() == nil {
		return nil, ErrNoDevice
	}
	d := &Device{provider: p}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Capabilities implements component.Provider.
func (d *Device) Capabilities() []*component.Capability {
	return []*component.Capability{Capability}
}

// Initialize implements component.Provider. The device is polled without
// waiting after every frame.
func (d *Device) Initialize(disp *message.Dispatcher) error {
	d.sub = message.SubscribeFunc(disp, func(message.AfterRender) { d.Poll() })
	return nil
}

// Poll processes completed GPU work without blocking.
func (d *Device) Poll() {
	if d.closed {
		return
	}
	if p, ok := d.provider.Device().(devicePoller); ok {
		p.Poll(false)
	}
}

// Device implements gpucontext.DeviceProvider.
func (d *Device) Device() gpucontext.Device { return d.provider.Device() }

// Queue implements gpucontext.DeviceProvider.
func (d *Device) Queue() gpucontext.Queue { return d.provider.Queue() }

// Adapter implements gpucontext.DeviceProvider.
func (d *Device) Adapter() gpucontext.Adapter { return d.provider.Adapter() }

// AdapterInfo implements gpucontext.DeviceProvider.
func (d *Device) AdapterInfo() gpucontext.AdapterInfo { return d.provider.AdapterInfo() }

// SurfaceFormat implements gpucontext.DeviceProvider.
func (d *Device) SurfaceFormat() gputypes.TextureFormat { return d.provider.SurfaceFormat() }

// Format returns the surface format, or RGBA8Unorm when the provider
// reports none.
func (d *Device) Format() gputypes.TextureFormat {
	if f := d.provider.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
		return f
	}
	return gputypes.TextureFormatRGBA8Unorm
}

// BGRA reports whether frames must be uploaded in BGRA order.
func (d *Device) BGRA() bool {
	return IsBGRA(d.Format())
}

// Close stops polling and destroys the device if it is owned.
// Close is idempotent.
func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.sub.Unsubscribe()
	if d.owned {
		if dd, ok := d.provider.Device().(deviceDestroyer); ok {
			dd.Destroy()
			logging.Logger().Debug("gpu: device destroyed")
		}
	}
	return nil
}

// IsBGRA reports whether f stores blue in the first byte.
func IsBGRA(f gputypes.TextureFormat) bool {
	return f == gputypes.TextureFormatBGRA8Unorm
}
