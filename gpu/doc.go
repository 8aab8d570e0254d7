// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpu exposes a host GPU device to simulation components.
//
// The host application owns the device and hands it over as a
// [gpucontext.DeviceProvider]. [Device] registers it under [Capability], so
// components can look it up the same way they find graphics or input, and
// polls it once per frame. [Presenter] uploads the software frame to a GPU
// texture and draws it through a [gpucontext.TextureDrawer].
package gpu
