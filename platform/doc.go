// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package platform defines the environment a simulation host runs on.
//
// A [Platform] pumps events and presents frames for the host. It also
// supplies the components that make sense for it, such as graphics and input.
// Platforms are constructed by factories registered by name; the host tries
// them in registration order and keeps the first one that succeeds.
//
// Platform packages register themselves in init, database/sql style:
//
//	import _ "github.com/gogpu/sim/platform/headless"
package platform
