// Copyright 2023 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Based on golang.org/x/exp/shiny:
// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package base provides the data and logic shared by the platform
// drivers: window identity allocation, the run-on-main queue,
// exit signaling, and reference counted windows.
package base

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"cogentcore.org/multiwin/system"
)

// App contains the data and logic common to all implementations of
// [system.App]. Drivers embed it and call [App.RunQueued] from their
// event loop.
type App struct {
	// Wake is called after a function is queued with [App.RunOnMain]
	// or after [App.Exit], to unblock an event loop that is waiting
	// for platform events. It may be nil.
	Wake func()

	name   string
	nextID atomic.Uint64
	queue  funcQueue

	exitOnce sync.Once
	exiting  atomic.Bool
	exitErr  error

	terminated atomic.Bool
}

// NewApp returns a new [App] for the driver with the given name.
func NewApp(name string) App {
	return App{name: name}
}

func (a *App) Name() string {
	return a.name
}

// NextID allocates a new window identity. Identities start
// at 1 and are never reused.
func (a *App) NextID() system.WindowID {
	return system.WindowID(a.nextID.Add(1))
}

// RunOnMain queues f to run on the control thread. Once the app is
// terminated, f is dropped and the event loop is not woken.
func (a *App) RunOnMain(f func()) {
	if a.terminated.Load() {
		slog.Debug("dropping function queued after terminate", "app", a.name)
		return
	}
	a.queue.push(f)
	if a.Wake != nil {
		a.Wake()
	}
}

// RunQueued runs all functions queued with [App.RunOnMain], in order,
// and returns how many were run. Functions queued while running are
// left for the next call. It must be called on the control thread.
func (a *App) RunQueued() int {
	fs := a.queue.take()
	for _, f := range fs {
		f()
	}
	return len(fs)
}

// NQueued returns the number of functions waiting to run on main.
func (a *App) NQueued() int {
	return a.queue.len()
}

// Exit marks the app as exiting. Only the first call has any effect.
func (a *App) Exit(err error) {
	a.exitOnce.Do(func() {
		a.exitErr = err
		a.exiting.Store(true)
		if err != nil {
			slog.Error("app exiting with error", "app", a.name, "err", err)
		} else {
			slog.Debug("app exiting", "app", a.name)
		}
		if a.Wake != nil {
			a.Wake()
		}
	})
}

// SetTerminated runs the functions still queued with [App.RunOnMain] and
// marks the app as terminated, after which nothing more is queued.
// Drivers call it before shutting the platform down.
func (a *App) SetTerminated() {
	a.RunQueued()
	a.terminated.Store(true)
}

// IsTerminated returns whether [App.SetTerminated] has been called.
func (a *App) IsTerminated() bool {
	return a.terminated.Load()
}

// IsExiting returns whether [App.Exit] has been called.
func (a *App) IsExiting() bool {
	return a.exiting.Load()
}

// ExitErr returns the error passed to the first [App.Exit] call.
// It is only meaningful once [App.IsExiting] returns true.
func (a *App) ExitErr() error {
	if !a.IsExiting() {
		return nil
	}
	return a.exitErr
}
