// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// based on golang.org/x/exp/shiny:
// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package system provides the narrow operating system interface that
// the window coordinator consumes: creating native windows, running the
// single-threaded event loop, and delivering window events.
package system

import "cogentcore.org/multiwin/events"

// App represents the platform windowing system. Its event loop runs on a
// single control thread, and all [Handler] calls are made on that thread.
type App interface {
	// Name returns the name of the platform driver, such as
	// "desktop" or "offscreen".
	Name() string

	// NewWindow creates a new native window. A nil opts is valid and
	// means to use the default option values. It must be called on
	// the control thread.
	NewWindow(opts *NewWindowOptions) (Window, error)

	// RunOnMain runs the given function on the control thread, where
	// [App.MainLoop] is running. It is safe to call from any goroutine
	// and never blocks; the function runs on a later loop iteration.
	RunOnMain(f func())

	// Exit asks the event loop to stop. A non-nil error marks the exit
	// as a failure and is returned by [App.MainLoop]. Only the first
	// call has any effect.
	Exit(err error)

	// MainLoop runs the event loop, calling [Handler.OnActivation]
	// once the platform is able to create windows, and
	// [Handler.OnEvent] for every window event, until [App.Exit]
	// is called. It must be called from the main thread.
	MainLoop(h Handler) error

	// Terminate runs the functions still queued with [App.RunOnMain],
	// such as the destruction of windows released after MainLoop
	// returned, and then shuts the platform down. It must be called on
	// the main thread once the render workers have exited.
	Terminate()
}

// Handler is the pair of entry points that the platform calls.
type Handler interface {
	// OnActivation is called once, when the platform becomes able
	// to create windows.
	OnActivation()

	// OnEvent is called for every event tagged with a window.
	OnEvent(id WindowID, ev events.Event)
}

// HandlerFuncs adapts a pair of functions to the [Handler] interface.
// Nil functions are skipped.
type HandlerFuncs struct {
	Activation func()
	Event      func(id WindowID, ev events.Event)
}

func (h HandlerFuncs) OnActivation() {
	if h.Activation != nil {
		h.Activation()
	}
}

func (h HandlerFuncs) OnEvent(id WindowID, ev events.Event) {
	if h.Event != nil {
		h.Event(id, ev)
	}
}
