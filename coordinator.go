// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package multiwin coordinates any number of native windows, each of
// which is rendered by its own [Worker] on a dedicated OS thread.
//
// The [Coordinator] is the [system.Handler] of the platform: it runs on
// the single control thread, creates windows and their workers, routes
// window events to the matching worker, and asks the platform to exit
// once the last window is gone. It never blocks on graphics work.
package multiwin

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"maps"
	"slices"

	"golang.org/x/sync/errgroup"

	"cogentcore.org/multiwin/base/errors"
	"cogentcore.org/multiwin/events"
	"cogentcore.org/multiwin/events/key"
	"cogentcore.org/multiwin/gpu"
	"cogentcore.org/multiwin/system"
)

// DefaultNewWindowKey is the key that opens a new window by default.
const DefaultNewWindowKey = key.CodeN

// Coordinator owns the registry of live render workers, keyed by
// window. All of its methods except [Coordinator.Wait] must be called
// on the control thread, which is where the platform calls it as a
// [system.Handler].
type Coordinator struct {
	app     system.App
	backend gpu.Backend
	opts    options

	// workers is the registry: a window is present from the creation
	// of its worker until the window is closed or its worker fails.
	workers map[system.WindowID]*Handle

	group    errgroup.Group
	nCreated int
	exited   bool
}

type options struct {
	window       system.NewWindowOptions
	surface      gpu.SurfaceOptions
	newWindowKey key.Codes
	initial      int
}

// Option configures a [Coordinator].
type Option func(o *options)

// WithWindowOptions sets the options of new windows. The title is used
// as a prefix, followed by the window number.
func WithWindowOptions(opts system.NewWindowOptions) Option {
	return func(o *options) { o.window = opts }
}

// WithSurfaceOptions sets the options of the surface contexts of new windows.
func WithSurfaceOptions(opts gpu.SurfaceOptions) Option {
	return func(o *options) { o.surface = opts }
}

// WithNewWindowKey sets the key that opens a new window when pressed in
// any window. [key.CodeUnknown] disables it.
func WithNewWindowKey(code key.Codes) Option {
	return func(o *options) { o.newWindowKey = code }
}

// WithInitialWindows sets the number of windows created on activation,
// which defaults to one.
func WithInitialWindows(n int) Option {
	return func(o *options) { o.initial = n }
}

// NewCoordinator returns a new coordinator for the given platform and
// graphics backend. It does not create any window until
// [Coordinator.OnActivation] or [Coordinator.CreateWindow] is called.
func NewCoordinator(app system.App, backend gpu.Backend, opts ...Option) *Coordinator {
	c := &Coordinator{
		app:     app,
		backend: backend,
		workers: map[system.WindowID]*Handle{},
		opts:    options{newWindowKey: DefaultNewWindowKey, initial: 1},
	}
	for _, opt := range opts {
		opt(&c.opts)
	}
	c.opts.window.Fixup()
	return c
}

// OnActivation creates the initial windows. A window creation failure
// is fatal: it is logged and the platform is asked to exit.
func (c *Coordinator) OnActivation() {
	for range max(c.opts.initial, 1) {
		if !c.createOrExit() {
			return
		}
	}
}

// OnEvent implements [system.Handler] with [Coordinator.Dispatch].
func (c *Coordinator) OnEvent(id system.WindowID, ev events.Event) {
	c.Dispatch(id, ev)
}

// CreateWindow creates a new native window and its surface, spawns the
// render worker for it and records it in the registry. The worker builds
// its surface context on its own thread, so this does not wait for the
// graphics device.
func (c *Coordinator) CreateWindow() (system.WindowID, error) {
	c.nCreated++
	wopts := c.opts.window
	wopts.Title = fmt.Sprintf("%s %d", wopts.Title, c.nCreated)
	win, err := c.app.NewWindow(&wopts)
	if err != nil {
		return 0, fmt.Errorf("multiwin: creating window: %w", err)
	}
	sc, err := gpu.NewSurfaceContext(c.backend, win, &c.opts.surface)
	if err != nil {
		win.Release()
		return 0, fmt.Errorf("multiwin: creating window: %w", err)
	}
	w := newWorker(win, sc, c.workerFailed)
	id := win.ID()
	c.workers[id] = w.handle
	c.group.Go(w.Run)
	slog.Info("multiwin: window created", "window", id, "title", wopts.Title, "size", win.Size(), "windows", len(c.workers))
	return id, nil
}

// createOrExit creates a window, treating failure as fatal.
func (c *Coordinator) createOrExit() bool {
	if _, err := c.CreateWindow(); err != nil {
		errors.Log(err)
		c.app.Exit(err)
		return false
	}
	return true
}

// Dispatch handles one event for the given window. A close request
// removes the window, and asks the platform to exit if it was the last
// one. A press of the new-window key creates a window. Any other event
// is forwarded to the worker of the window, or dropped if there is none,
// which happens for events that race with the close of their window.
func (c *Coordinator) Dispatch(id system.WindowID, ev events.Event) {
	switch ev := ev.(type) {
	case *events.Close:
		c.remove(id, "closed")
		return
	case *events.Key:
		if ev.Pressed() && c.opts.newWindowKey != key.CodeUnknown && ev.Code == c.opts.newWindowKey {
			c.createOrExit()
			return
		}
	}
	h, ok := c.workers[id]
	if !ok {
		slog.Debug("multiwin: dropping event for unknown window", "window", id, "event", ev)
		return
	}
	if !h.Send(ev) {
		slog.Debug("multiwin: dropping event for stopped worker", "window", id, "event", ev)
	}
}

// Broadcast forwards the event to the workers of all windows. A
// [events.ClearColor] event also becomes the clear color of windows
// created afterwards.
func (c *Coordinator) Broadcast(ev events.Event) {
	if cc, ok := ev.(*events.ClearColor); ok {
		c.opts.surface.ClearColor = cc.Color
	}
	for _, id := range c.IDs() {
		c.workers[id].Send(ev)
	}
}

// SetClearColor broadcasts a new clear color to all windows.
func (c *Coordinator) SetClearColor(clr color.RGBA) {
	c.Broadcast(events.NewClearColor(clr))
}

// remove removes the window from the registry and closes its handle,
// which stops the worker. It signals exit, once, when the registry
// becomes empty.
func (c *Coordinator) remove(id system.WindowID, reason string) {
	h, ok := c.workers[id]
	if !ok {
		slog.Debug("multiwin: remove of unknown window", "window", id, "reason", reason)
		return
	}
	delete(c.workers, id)
	h.Close()
	slog.Info("multiwin: window removed", "window", id, "reason", reason, "windows", len(c.workers))
	if len(c.workers) == 0 && !c.exited {
		c.exited = true
		slog.Info("multiwin: last window removed, exiting")
		c.app.Exit(nil)
	}
}

// workerFailed is called on the worker goroutine after a fatal error.
// The window is removed on the control thread as if it had been closed.
func (c *Coordinator) workerFailed(h *Handle, err error) {
	c.app.RunOnMain(func() {
		if cur, ok := c.workers[h.id]; ok && cur == h {
			c.remove(h.id, "worker failed")
		}
	})
}

// Handle returns the handle of the worker for the given window.
func (c *Coordinator) Handle(id system.WindowID) (*Handle, bool) {
	h, ok := c.workers[id]
	return h, ok
}

// Len returns the number of windows in the registry.
func (c *Coordinator) Len() int {
	return len(c.workers)
}

// IDs returns the ids of the windows in the registry, in increasing order.
func (c *Coordinator) IDs() []system.WindowID {
	return slices.Sorted(maps.Keys(c.workers))
}

// Shutdown closes the handles of all remaining windows, which stops
// their workers. It is used when the platform exits for a reason other
// than the last window being closed.
func (c *Coordinator) Shutdown() {
	for _, id := range c.IDs() {
		h := c.workers[id]
		delete(c.workers, id)
		h.Close()
	}
}

// Wait waits for all workers ever spawned to exit, and returns the
// first fatal worker error, if any. It returns ctx.Err() if the context
// is done first. It may be called from any goroutine once no more
// windows are being created.
func (c *Coordinator) Wait(ctx context.Context) error {
	done := make(chan error, 1)
	go func() { done <- c.group.Wait() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
