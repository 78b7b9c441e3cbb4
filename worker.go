// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package multiwin

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"

	"cogentcore.org/multiwin/events"
	"cogentcore.org/multiwin/gpu"
	"cogentcore.org/multiwin/system"
)

// WorkerStates are the states of a render [Worker].
type WorkerStates int32

const (
	// Spawned is the state of a worker whose goroutine has not started yet.
	Spawned WorkerStates = iota

	// Building means the worker is acquiring its graphics device.
	Building

	// Ready means the worker is waiting for events.
	Ready

	// Resizing means the worker is reconfiguring its surface.
	Resizing

	// Painting means the worker is rendering a frame.
	Painting

	// Stopped means the worker exited after its mailbox was closed.
	Stopped

	// Failed means the worker exited with a fatal error.
	Failed
)

var workerStateNames = [...]string{"Spawned", "Building", "Ready", "Resizing", "Painting", "Stopped", "Failed"}

func (ws WorkerStates) String() string {
	if ws < 0 || int(ws) >= len(workerStateNames) {
		return fmt.Sprintf("WorkerStates(%d)", int32(ws))
	}
	return workerStateNames[ws]
}

// IsTerminal returns whether the state is [Stopped] or [Failed].
func (ws WorkerStates) IsTerminal() bool {
	return ws == Stopped || ws == Failed
}

// Worker renders one window on its own locked OS thread. It owns the
// [gpu.SurfaceContext] of the window exclusively, and holds its own
// reference to the window. It only ever receives events through its
// mailbox, and exits when the mailbox is closed and drained.
type Worker struct {
	handle  *Handle
	win     system.Window
	sc      *gpu.SurfaceContext
	mailbox *events.Mailbox

	// onFail is called from the worker goroutine after a fatal error.
	onFail func(h *Handle, err error)
}

// Handle is the coordinator's side of a [Worker]: the sending side of
// its mailbox and the coordinator's reference to the window. It does not
// own any graphics resources. Apart from Done, Err and State, its
// methods must only be called on the control thread.
type Handle struct {
	id      system.WindowID
	win     system.Window
	mailbox *events.Mailbox
	closed  bool

	state atomic.Int32
	done  chan struct{}

	// err is written before done is closed.
	err error
}

// newWorker returns a worker for the given window and surface context,
// and the handle for it. The worker takes an extra reference to the
// window; the handle keeps the one passed in.
func newWorker(win system.Window, sc *gpu.SurfaceContext, onFail func(h *Handle, err error)) *Worker {
	mb := events.NewMailbox()
	h := &Handle{id: win.ID(), win: win, mailbox: mb, done: make(chan struct{})}
	return &Worker{handle: h, win: win.Retain(), sc: sc, mailbox: mb, onFail: onFail}
}

// Run builds the surface context and then applies the events received
// through the mailbox until it is closed. It locks the calling goroutine
// to its OS thread for its whole duration, and releases the surface
// context and the worker's window reference before returning.
func (w *Worker) Run() (err error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	h := w.handle
	defer func() {
		w.sc.Release()
		w.win.Release()
		if err != nil {
			w.setState(Failed)
			slog.Error("multiwin: render worker failed", "window", h.id, "err", err)
		} else {
			w.setState(Stopped)
		}
		h.err = err
		close(h.done)
		if err != nil && w.onFail != nil {
			w.onFail(h, err)
		}
	}()

	w.setState(Building)
	if err := w.sc.Build(); err != nil {
		w.mailbox.Close()
		return fmt.Errorf("multiwin: building %v: %w", h.id, err)
	}
	w.setState(Ready)

	for {
		ev, ok := w.mailbox.Receive()
		if !ok {
			return nil
		}
		if err := w.apply(ev); err != nil {
			w.mailbox.Close()
			return fmt.Errorf("multiwin: %v on %v: %w", ev.Type(), h.id, err)
		}
	}
}

// apply applies one event to the surface context.
func (w *Worker) apply(ev events.Event) error {
	switch ev := ev.(type) {
	case *events.Resize:
		w.setState(Resizing)
		defer w.setState(Ready)
		return w.sc.Resize(ev.Size)
	case *events.Paint:
		w.setState(Painting)
		defer w.setState(Ready)
		return w.sc.Paint()
	case *events.ClearColor:
		w.sc.SetClearColor(ev.Color)
		w.win.RequestRedraw()
	default:
		slog.Debug("multiwin: render worker ignoring event", "window", w.handle.id, "event", ev)
	}
	return nil
}

func (w *Worker) setState(st WorkerStates) {
	old := WorkerStates(w.handle.state.Swap(int32(st)))
	if old != st {
		slog.Debug("multiwin: render worker state", "window", w.handle.id, "from", old, "to", st)
	}
}

// ID returns the id of the window.
func (h *Handle) ID() system.WindowID {
	return h.id
}

// Window returns the window. It is only valid until [Handle.Close].
func (h *Handle) Window() system.Window {
	return h.win
}

// Send queues the event for the worker. It never blocks, and returns
// false if the worker no longer accepts events.
func (h *Handle) Send(ev events.Event) bool {
	return h.mailbox.Send(ev)
}

// Close closes the mailbox, which makes the worker exit once it has
// applied the events already sent, and releases the coordinator's
// reference to the window. It is safe to call more than once.
func (h *Handle) Close() {
	if h.closed {
		return
	}
	h.closed = true
	h.mailbox.Close()
	h.win.Release()
}

// Done returns a channel that is closed when the worker has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Err returns the fatal error of the worker, if any. It is only
// meaningful after [Handle.Done] is closed.
func (h *Handle) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}

// State returns the current state of the worker.
func (h *Handle) State() WorkerStates {
	return WorkerStates(h.state.Load())
}

// Pending returns the number of events waiting in the mailbox.
func (h *Handle) Pending() int {
	return h.mailbox.Len()
}
