// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"image"
	"strconv"
)

// WindowID identifies a native window. It is assigned by the platform,
// is unique among live windows, and is never reused by the drivers in
// this module.
type WindowID uint64

func (id WindowID) String() string {
	return "win" + strconv.FormatUint(uint64(id), 10)
}

// Window is the shared handle to a native window. It is created on the
// control thread and is read-only afterwards, so it may be used from any
// goroutine: the window coordinator uses it for its identity, and the
// window's render worker uses it to size and configure its surface.
//
// The handle is reference counted: every holder calls [Window.Release]
// when done, and the native window is destroyed on the control thread
// once the last reference is released. A new window starts with one
// reference.
type Window interface {
	// ID returns the unique identity of the window.
	ID() WindowID

	// Title returns the title the window was created with.
	Title() string

	// Size returns the current size of the window framebuffer in pixels.
	Size() image.Point

	// RequestRedraw asks the platform to deliver a
	// [events.WindowPaint] event for this window.
	RequestRedraw()

	// Native returns the driver-specific handle used to create a
	// graphics surface for the window, such as a *glfw.Window.
	Native() any

	// Retain adds a reference to the window and returns it.
	Retain() Window

	// Release drops a reference to the window.
	Release()
}

// NewWindowOptions contains the options for creating a new window.
type NewWindowOptions struct {
	// Title is the window title.
	Title string

	// Size specifies the initial size of the window, in pixels.
	// If zero, [DefaultWindowSize] is used.
	Size image.Point
}

// DefaultWindowSize is the window size used when none is specified.
var DefaultWindowSize = image.Pt(800, 600)

// Fixup fills in defaults for zero values.
func (o *NewWindowOptions) Fixup() {
	if o.Size.X <= 0 || o.Size.Y <= 0 {
		o.Size = DefaultWindowSize
	}
	if o.Title == "" {
		o.Title = "multiwin"
	}
}
