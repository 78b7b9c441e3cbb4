// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package desktop

import (
	"fmt"
	"image"

	"github.com/go-gl/glfw/v3.3/glfw"

	"cogentcore.org/multiwin/events"
	"cogentcore.org/multiwin/system"
	"cogentcore.org/multiwin/system/driver/base"
)

// Window is the implementation of [system.Window] for the desktop platform.
type Window struct {
	*base.Window

	app *App

	// glw is the glfw window; it is only used on the main thread,
	// except by surface creation.
	glw *glfw.Window
}

// Native returns the *glfw.Window.
func (w *Window) Native() any { return w.glw }

func (w *Window) Retain() system.Window {
	w.AddRef()
	return w
}

// RequestRedraw queues a paint event for the window; requests made
// before it is delivered are coalesced.
func (w *Window) RequestRedraw() {
	if !w.MarkRedraw() {
		return
	}
	w.app.RunOnMain(func() {
		if w.TakeRedraw() {
			w.app.deliver(w.ID(), events.NewPaint())
		}
	})
}

func (w *Window) String() string {
	return fmt.Sprintf("desktop.Window{%v %q %v}", w.ID(), w.Title(), w.Size())
}

func framebufferSize(glw *glfw.Window) image.Point {
	wd, ht := glw.GetFramebufferSize()
	return image.Pt(wd, ht)
}

func (w *Window) closeRequested(gw *glfw.Window) {
	// the window is destroyed once its last reference is released
	gw.SetShouldClose(false)
	w.app.deliver(w.ID(), events.NewClose())
}

func (w *Window) fbResized(gw *glfw.Window, width, height int) {
	size := image.Pt(width, height)
	w.SetSize(size)
	w.app.deliver(w.ID(), events.NewResize(size))
}

func (w *Window) refresh(gw *glfw.Window) {
	w.RequestRedraw()
}
