// Copyright 2023 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package base

import (
	"fmt"
	"image"
	"sync/atomic"

	"cogentcore.org/multiwin/system"
)

// Window contains the data and logic common to all implementations of
// [system.Window]. Drivers embed it and implement Native, Retain and
// RequestRedraw.
type Window struct {
	id    system.WindowID
	title string
	size  atomic.Pointer[image.Point]
	refs  atomic.Int32

	// redraw is set while a paint event is pending for the window.
	redraw atomic.Bool

	runOnMain func(func())
	destroy   func()
	destroyed atomic.Bool
}

// NewWindow returns a new [Window] with one reference. When the last
// reference is released, destroy is run through runOnMain.
func NewWindow(id system.WindowID, title string, size image.Point, runOnMain func(func()), destroy func()) *Window {
	w := &Window{id: id, title: title, runOnMain: runOnMain, destroy: destroy}
	w.SetSize(size)
	w.refs.Store(1)
	return w
}

func (w *Window) ID() system.WindowID { return w.id }

func (w *Window) Title() string { return w.title }

func (w *Window) Size() image.Point { return *w.size.Load() }

// SetSize records the new framebuffer size. It is called by the
// driver on the control thread.
func (w *Window) SetSize(size image.Point) {
	w.size.Store(&size)
}

// AddRef adds a reference to the window.
func (w *Window) AddRef() {
	if w.refs.Add(1) <= 1 {
		panic(fmt.Sprintf("system: retain of destroyed window %v", w.id))
	}
}

// Release drops a reference; the last one destroys the window.
func (w *Window) Release() {
	n := w.refs.Add(-1)
	switch {
	case n == 0:
		w.runOnMain(w.Destroy)
	case n < 0:
		panic(fmt.Sprintf("system: release of destroyed window %v", w.id))
	}
}

// Refs returns the current number of references.
func (w *Window) Refs() int {
	return int(w.refs.Load())
}

// Destroy runs the destroy function of the window, at most once. It is
// called on the control thread when the last reference is released, and
// by drivers tearing down windows that are still referenced at exit.
func (w *Window) Destroy() {
	if w.destroyed.Swap(true) {
		return
	}
	if w.destroy != nil {
		w.destroy()
	}
}

// IsDestroyed returns whether the last reference has been released or
// the window has been destroyed.
func (w *Window) IsDestroyed() bool {
	return w.refs.Load() <= 0 || w.destroyed.Load()
}

// MarkRedraw flags a paint as pending. It returns true if no paint was
// pending already, in which case the caller must arrange for one to be
// delivered; this coalesces redraw requests made before the paint runs.
func (w *Window) MarkRedraw() bool {
	return w.redraw.CompareAndSwap(false, true)
}

// TakeRedraw clears the pending paint flag, returning whether it was set.
func (w *Window) TakeRedraw() bool {
	return w.redraw.Swap(false)
}
