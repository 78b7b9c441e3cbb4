// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package multiwin

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/multiwin/events"
	"cogentcore.org/multiwin/gpu"
	"cogentcore.org/multiwin/gpu/nullgpu"
	"cogentcore.org/multiwin/system"
	"cogentcore.org/multiwin/system/driver/offscreen"
)

func TestWorkerStatesString(t *testing.T) {
	assert.Equal(t, "Building", Building.String())
	assert.Equal(t, "Failed", Failed.String())
	assert.Equal(t, "WorkerStates(42)", WorkerStates(42).String())
	assert.True(t, Stopped.IsTerminal())
	assert.False(t, Ready.IsTerminal())
}

func newTestWorker(t *testing.T, onFail func(*Handle, error)) (*Worker, *offscreen.App, *nullgpu.Backend) {
	t.Helper()
	app := offscreen.NewApp()
	be := nullgpu.NewBackend()
	win, err := app.NewWindow(&system.NewWindowOptions{Size: image.Pt(300, 200)})
	require.NoError(t, err)
	sc, err := gpu.NewSurfaceContext(be, win, nil)
	require.NoError(t, err)
	w := newWorker(win, sc, onFail)
	assert.Equal(t, Spawned, w.handle.State())
	return w, app, be
}

func TestWorkerRun(t *testing.T) {
	w, app, be := newTestWorker(t, nil)
	h := w.handle

	// events sent before the worker starts are applied after build
	h.Send(events.NewResize(image.Pt(64, 32)))
	h.Send(events.NewKey(events.KeyDown, 0))
	h.Send(events.NewPaint())
	h.Close()
	require.NoError(t, w.Run())

	assert.Equal(t, Stopped, h.State())
	assert.NoError(t, h.Err())
	sf := be.Surface(h.ID())
	configs := sf.Configs()
	require.Len(t, configs, 2)
	assert.Equal(t, image.Pt(300, 200), configs[0].Size())
	assert.Equal(t, image.Pt(64, 32), configs[1].Size())
	assert.Equal(t, 1, sf.Presents())
	assert.True(t, sf.Released())

	// both references are gone, so the window is destroyed on main
	app.RunQueued()
	assert.Equal(t, []system.WindowID{h.ID()}, app.Destroyed())
}

func TestWorkerBuildError(t *testing.T) {
	var failed *Handle
	w, _, be := newTestWorker(t, func(h *Handle, err error) { failed = h })
	be.FailDevice(nullgpu.ErrInjected)
	h := w.handle

	err := w.Run()
	assert.ErrorIs(t, err, nullgpu.ErrInjected)
	assert.Equal(t, Failed, h.State())
	assert.Equal(t, err, h.Err())
	assert.Same(t, h, failed)
	assert.False(t, h.Send(events.NewPaint()))
	adapters, devices := be.Live()
	assert.Zero(t, adapters)
	assert.Zero(t, devices)
	h.Close()
}
