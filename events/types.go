// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "strconv"

// Types determines the type of a window event. Only the events that
// matter for window lifecycle and rendering are represented; everything
// else the platform produces is dropped by the driver.
type Types int32

const (
	// zero value is an unknown type
	UnknownType Types = iota

	// WindowClose is sent when the user or the system asks for
	// the window to be closed.
	WindowClose

	// WindowResize happens when the window has been resized,
	// and carries the new size of the framebuffer in pixels.
	WindowResize

	// WindowPaint is sent when the window content needs to be
	// redrawn, either because the system says so or because
	// a redraw was requested on the window.
	WindowPaint

	// KeyDown is sent when a key is pressed or repeated.
	KeyDown

	// KeyUp is sent when a key is released.
	KeyUp

	// ClearColorChange carries a new clear color for the
	// window's surface, typically after a settings reload.
	ClearColorChange
)

var typesNames = [...]string{
	UnknownType:      "UnknownType",
	WindowClose:      "WindowClose",
	WindowResize:     "WindowResize",
	WindowPaint:      "WindowPaint",
	KeyDown:          "KeyDown",
	KeyUp:            "KeyUp",
	ClearColorChange: "ClearColorChange",
}

// String returns the name of the type.
func (tp Types) String() string {
	if tp < 0 || int(tp) >= len(typesNames) {
		return "Types(" + strconv.Itoa(int(tp)) + ")"
	}
	return typesNames[tp]
}
