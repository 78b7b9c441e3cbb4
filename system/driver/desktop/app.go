// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// based on golang.org/x/exp/shiny:
// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package desktop implements the [system.App] for desktop platforms,
// using glfw for native windows and the event loop.
package desktop

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"

	"cogentcore.org/multiwin/events"
	"cogentcore.org/multiwin/system"
	"cogentcore.org/multiwin/system/driver/base"
)

func init() {
	// glfw requires all calls to be made on the main thread
	runtime.LockOSThread()
}

// App is the [system.App] implementation for the desktop platform.
type App struct {
	base.AppMulti[*Window]

	mu      sync.Mutex
	handler system.Handler
}

// NewApp initializes glfw and returns the desktop app. It must be
// called on the main thread.
func NewApp() (*App, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("desktop: failed to initialize glfw: %w", err)
	}
	a := &App{AppMulti: base.NewAppMulti[*Window]("desktop")}
	// PostEmptyEvent may be called from any goroutine, and makes
	// glfw.WaitEvents return so the queue runs.
	a.Wake = glfw.PostEmptyEvent
	return a, nil
}

func (a *App) NewWindow(opts *system.NewWindowOptions) (system.Window, error) {
	o := system.NewWindowOptions{}
	if opts != nil {
		o = *opts
	}
	o.Fixup()

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glw, err := glfw.CreateWindow(o.Size.X, o.Size.Y, o.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("desktop: creating window: %w", err)
	}

	id := a.NextID()
	w := &Window{app: a, glw: glw}
	w.Window = base.NewWindow(id, o.Title, framebufferSize(glw), a.RunOnMain, func() { a.destroyWindow(w) })
	a.AddWindow(w)

	glw.SetCloseCallback(w.closeRequested)
	glw.SetFramebufferSizeCallback(w.fbResized)
	glw.SetRefreshCallback(w.refresh)
	glw.SetKeyCallback(w.keyEvent)

	slog.Debug("desktop: new window", "id", id, "size", w.Size())
	return w, nil
}

// destroyWindow is the destroy function of the window, run at most once
// by [base.Window.Destroy].
func (a *App) destroyWindow(w *Window) {
	a.RemoveWindow(w.ID())
	w.glw.Destroy()
	slog.Debug("desktop: window destroyed", "id", w.ID())
}

func (a *App) getHandler() system.Handler {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.handler
}

func (a *App) deliver(id system.WindowID, ev events.Event) {
	if h := a.getHandler(); h != nil {
		h.OnEvent(id, ev)
	}
}

// MainLoop runs the glfw event loop on the main thread, interleaved
// with the functions queued by [App.RunOnMain], until [App.Exit].
func (a *App) MainLoop(h system.Handler) error {
	a.mu.Lock()
	a.handler = h
	a.mu.Unlock()

	h.OnActivation()
	for !a.IsExiting() {
		a.RunQueued()
		if a.IsExiting() {
			break
		}
		if a.NQueued() == 0 {
			glfw.WaitEvents()
		}
	}
	return a.ExitErr()
}

// Terminate runs the remaining queued functions, which destroy the
// windows released by exiting render workers, destroys the windows that
// are still referenced, and terminates glfw. Releases made afterwards by
// late render workers neither destroy a window again nor wake glfw.
func (a *App) Terminate() {
	a.SetTerminated()
	for _, id := range a.WindowIDs() {
		if w, ok := a.WindowByID(id); ok {
			slog.Warn("desktop: window still referenced at exit", "id", id, "refs", w.Refs())
			w.Destroy()
		}
	}
	glfw.Terminate()
}
