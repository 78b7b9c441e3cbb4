// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu manages the graphics resources needed to render into one
// window: a [SurfaceContext] owns the adapter, device, queue and surface
// configuration for a window, and is driven by that window's render
// worker only.
//
// The graphics API itself is consumed through the small set of
// interfaces in this file, implemented by the webgpu package for real
// GPUs and by the nullgpu package for tests and headless runs.
package gpu

import (
	"image/color"

	"cogentcore.org/multiwin/system"
)

// Debug enables verbose logging of surface configuration and frames.
var Debug = false

// Backend is the entry point of a graphics API.
type Backend interface {
	// Name returns the name of the backend, such as "webgpu".
	Name() string

	// CreateSurface creates a presentable surface for the given window.
	// It is called on the control thread, where the window was created.
	CreateSurface(win system.Window) (Surface, error)

	// RequestAdapter returns an adapter matching the given options,
	// or an error wrapping [ErrNoAdapter] if there is none.
	RequestAdapter(opts *AdapterOptions) (Adapter, error)
}

// AdapterOptions are the requirements for [Backend.RequestAdapter].
type AdapterOptions struct {
	// CompatibleSurface is the surface the adapter must be able to present to.
	CompatibleSurface Surface

	// PowerPreference selects between integrated and discrete GPUs.
	PowerPreference PowerPreferences
}

// AdapterInfo describes an adapter.
type AdapterInfo struct {
	Name    string
	Backend string
}

// Limits are the device limits that matter for surfaces.
type Limits struct {
	// MaxTextureDimension2D is the largest width or height of a 2D
	// texture, and thus of a surface configuration.
	MaxTextureDimension2D int
}

// DefaultLimits are the limits guaranteed by every WebGPU adapter.
var DefaultLimits = Limits{MaxTextureDimension2D: 8192}

// Adapter is a physical GPU.
type Adapter interface {
	Info() AdapterInfo
	Limits() Limits

	// RequestDevice opens a logical device and its queue.
	// A nil desc requests default features and limits.
	RequestDevice(desc *DeviceDescriptor) (Device, error)

	Release()
}

// DeviceDescriptor describes the device requested from an adapter.
type DeviceDescriptor struct {
	Label string
}

// Device is a logical GPU device.
type Device interface {
	Queue() Queue
	CreateCommandEncoder(label string) (CommandEncoder, error)
	Release()
}

// Queue accepts command buffers for execution.
type Queue interface {
	Submit(cmds ...CommandBuffer)
}

// CommandEncoder records commands into a [CommandBuffer].
type CommandEncoder interface {
	// ClearPass records a render pass that clears the view to
	// the given color and stores the result.
	ClearPass(view TextureView, c color.Color) error

	// Finish ends recording and returns the commands.
	Finish() (CommandBuffer, error)

	Release()
}

// CommandBuffer is a finished list of commands.
type CommandBuffer interface {
	Release()
}

// TextureView is a view of a texture usable as a render target.
type TextureView interface {
	Release()
}

// Frame is an acquired presentable surface texture.
type Frame interface {
	View() TextureView
	Present() error
	Release()
}

// Surface is the platform surface of one window.
type Surface interface {
	// DefaultConfig derives the preferred configuration of the surface
	// for the given adapter and size.
	DefaultConfig(adapter Adapter, width, height int) (SurfaceConfig, error)

	// Configure applies the configuration. It is called after build
	// and after every resize.
	Configure(adapter Adapter, device Device, config *SurfaceConfig) error

	// AcquireFrame returns the next frame to render into. Errors wrap
	// [ErrSurfaceLost] or [ErrSurfaceOutdated] when reconfiguring the
	// surface may fix them.
	AcquireFrame() (Frame, error)

	Release()
}
