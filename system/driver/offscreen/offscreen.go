// Copyright 2023 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package offscreen implements an in-memory platform driver with no
// native windows. It is used for testing and for headless runs, where
// window events are injected with [App.Post] or replayed from a script.
package offscreen

import (
	"fmt"
	"image"
	"log/slog"
	"sync"

	"cogentcore.org/multiwin/base/errors"
	"cogentcore.org/multiwin/events"
	"cogentcore.org/multiwin/system"
	"cogentcore.org/multiwin/system/driver/base"
)

// ErrInjected is returned by [App.NewWindow] when a failure was
// requested with [App.FailNextWindow].
var ErrInjected = errors.New("offscreen: injected window creation failure")

// App is the offscreen [system.App].
type App struct {
	base.AppMulti[*Window]

	wake chan struct{}

	mu        sync.Mutex
	handler   system.Handler
	failNext  int
	destroyed []system.WindowID
}

// NewApp returns a new offscreen app.
func NewApp() *App {
	a := &App{
		AppMulti: base.NewAppMulti[*Window]("offscreen"),
		wake:     make(chan struct{}, 1),
	}
	a.Wake = func() {
		select {
		case a.wake <- struct{}{}:
		default:
		}
	}
	return a
}

// SetHandler sets the handler that receives events. [App.MainLoop] sets
// it too; tests that drive the handler directly call it instead.
func (a *App) SetHandler(h system.Handler) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.handler = h
}

func (a *App) getHandler() system.Handler {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.handler
}

// FailNextWindow makes the next n calls to [App.NewWindow] fail.
func (a *App) FailNextWindow(n int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failNext = n
}

func (a *App) NewWindow(opts *system.NewWindowOptions) (system.Window, error) {
	a.mu.Lock()
	if a.failNext > 0 {
		a.failNext--
		a.mu.Unlock()
		return nil, ErrInjected
	}
	a.mu.Unlock()

	o := system.NewWindowOptions{}
	if opts != nil {
		o = *opts
	}
	o.Fixup()
	id := a.NextID()
	w := &Window{app: a}
	w.Window = base.NewWindow(id, o.Title, o.Size, a.RunOnMain, func() { a.destroyWindow(id) })
	a.AddWindow(w)
	slog.Debug("offscreen: new window", "id", id, "size", o.Size)
	return w, nil
}

func (a *App) destroyWindow(id system.WindowID) {
	a.RemoveWindow(id)
	a.mu.Lock()
	a.destroyed = append(a.destroyed, id)
	a.mu.Unlock()
	slog.Debug("offscreen: window destroyed", "id", id)
}

// Destroyed returns the ids of the windows destroyed so far, in order.
func (a *App) Destroyed() []system.WindowID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]system.WindowID(nil), a.destroyed...)
}

// Post delivers the event for the given window on the control thread.
// It is safe to call from any goroutine. Events for windows that do not
// exist are delivered anyway, as a real platform may race like that.
func (a *App) Post(id system.WindowID, ev events.Event) {
	a.RunOnMain(func() { a.deliver(id, ev) })
}

// Resize sets the size of the window and posts the resize event.
func (a *App) Resize(id system.WindowID, size image.Point) {
	a.RunOnMain(func() {
		if w, ok := a.WindowByID(id); ok {
			w.SetSize(size)
		}
		a.deliver(id, events.NewResize(size))
	})
}

func (a *App) deliver(id system.WindowID, ev events.Event) {
	if h := a.getHandler(); h != nil {
		h.OnEvent(id, ev)
	}
}

// MainLoop calls the activation handler and then runs queued functions,
// including posted events, until [App.Exit] is called.
func (a *App) MainLoop(h system.Handler) error {
	a.SetHandler(h)
	h.OnActivation()
	for !a.IsExiting() {
		if a.RunQueued() == 0 && !a.IsExiting() {
			<-a.wake
		}
	}
	return a.ExitErr()
}

// Terminate runs any remaining queued functions, such as window
// destruction after workers have stopped, and destroys the windows that
// are still referenced.
func (a *App) Terminate() {
	a.SetTerminated()
	for _, id := range a.WindowIDs() {
		if w, ok := a.WindowByID(id); ok {
			slog.Warn("offscreen: window still referenced at exit", "id", id, "refs", w.Refs())
			w.Destroy()
		}
	}
}

// Window is an offscreen [system.Window].
type Window struct {
	*base.Window
	app *App
}

func (w *Window) Native() any { return w }

func (w *Window) Retain() system.Window {
	w.AddRef()
	return w
}

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
	return fmt.Sprintf("offscreen.Window{%v %q %v}", w.ID(), w.Title(), w.Size())
}
