// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events defines the window events that flow from the platform
// event loop to the per-window render workers, and the [Mailbox] that
// carries them.
package events

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"cogentcore.org/multiwin/events/key"
)

// Event is the interface for all window events. Events are created on
// the control thread and ownership passes to the single consumer that
// receives them; they must not be modified after being sent.
type Event interface {
	fmt.Stringer

	// Type returns the type of event.
	Type() Types

	// Time returns the time at which the event was generated.
	Time() time.Time
}

// Base is the base type for events, providing the type and time.
type Base struct {
	// Typ is the type of event.
	Typ Types

	// GenTime records the time when the event was first generated.
	GenTime time.Time
}

// Init sets the type and stamps the current time.
func (ev *Base) Init(typ Types) {
	ev.Typ = typ
	ev.GenTime = time.Now()
}

func (ev *Base) Type() Types { return ev.Typ }

func (ev *Base) Time() time.Time { return ev.GenTime }

func (ev *Base) String() string {
	return fmt.Sprintf("%v{Time: %v}", ev.Typ, ev.GenTime.Format("04:05.000"))
}

// Close is a request to close the window.
type Close struct {
	Base
}

// NewClose returns a new [WindowClose] event.
func NewClose() *Close {
	ev := &Close{}
	ev.Init(WindowClose)
	return ev
}

// Resize reports the new framebuffer size of the window, in pixels.
type Resize struct {
	Base

	// Size is the new size in pixels. It may be degenerate (zero or
	// negative on an axis), for example while the window is minimized.
	Size image.Point
}

// NewResize returns a new [WindowResize] event for the given size.
func NewResize(size image.Point) *Resize {
	ev := &Resize{Size: size}
	ev.Init(WindowResize)
	return ev
}

func (ev *Resize) String() string {
	return fmt.Sprintf("%v{Size: %v, Time: %v}", ev.Typ, ev.Size, ev.GenTime.Format("04:05.000"))
}

// Paint is a request to redraw the window content.
type Paint struct {
	Base
}

// NewPaint returns a new [WindowPaint] event.
func NewPaint() *Paint {
	ev := &Paint{}
	ev.Init(WindowPaint)
	return ev
}

// Key is a physical key press or release.
type Key struct {
	Base

	// Code is the physical key code.
	Code key.Codes
}

// NewKey returns a new key event of the given type, which must be
// [KeyDown] or [KeyUp].
func NewKey(typ Types, code key.Codes) *Key {
	ev := &Key{Code: code}
	ev.Init(typ)
	return ev
}

// Pressed returns whether this is a key press (as opposed to a release).
func (ev *Key) Pressed() bool { return ev.Typ == KeyDown }

func (ev *Key) String() string {
	return fmt.Sprintf("%v{Code: %v, Time: %v}", ev.Typ, ev.Code, ev.GenTime.Format("04:05.000"))
}

// ClearColor sets the color that the window's surface is cleared to.
type ClearColor struct {
	Base

	// Color is the new clear color.
	Color color.RGBA
}

// NewClearColor returns a new [ClearColorChange] event.
func NewClearColor(c color.RGBA) *ClearColor {
	ev := &ClearColor{Color: c}
	ev.Init(ClearColorChange)
	return ev
}

func (ev *ClearColor) String() string {
	return fmt.Sprintf("%v{Color: %v, Time: %v}", ev.Typ, ev.Color, ev.GenTime.Format("04:05.000"))
}
