// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/multiwin/base/errors"
	"cogentcore.org/multiwin/gpu"
	"cogentcore.org/multiwin/gpu/nullgpu"
	"cogentcore.org/multiwin/system"
	"cogentcore.org/multiwin/system/driver/offscreen"
)

func newContext(t *testing.T, size image.Point) (*gpu.SurfaceContext, *nullgpu.Surface, *nullgpu.Backend) {
	t.Helper()
	app := offscreen.NewApp()
	be := nullgpu.NewBackend()
	win, err := app.NewWindow(&system.NewWindowOptions{Size: size})
	require.NoError(t, err)
	sc, err := gpu.NewSurfaceContext(be, win, &gpu.SurfaceOptions{PowerPreference: gpu.HighPerformance})
	require.NoError(t, err)
	t.Cleanup(sc.Release)
	return sc, be.Surface(win.ID()), be
}

func TestClampSize(t *testing.T) {
	tests := []struct {
		in, want image.Point
		max      int
	}{
		{image.Pt(800, 600), image.Pt(800, 600), 8192},
		{image.Pt(0, 0), image.Pt(1, 1), 8192},
		{image.Pt(-3, 10), image.Pt(1, 10), 8192},
		{image.Pt(9000, 10), image.Pt(8192, 10), 8192},
		{image.Pt(9000, 0), image.Pt(9000, 1), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, gpu.ClampSize(tt.in, tt.max), "%v max %d", tt.in, tt.max)
	}
}

func TestNotBuilt(t *testing.T) {
	sc, sf, _ := newContext(t, image.Pt(100, 100))
	assert.ErrorIs(t, sc.Resize(image.Pt(10, 10)), gpu.ErrNotBuilt)
	assert.ErrorIs(t, sc.Paint(), gpu.ErrNotBuilt)
	_, ok := sc.Config()
	assert.False(t, ok)
	assert.Empty(t, sf.Configs())
	assert.Zero(t, sf.Acquires())
}

func TestBuild(t *testing.T) {
	sc, sf, _ := newContext(t, image.Pt(640, 480))
	require.NoError(t, sc.Build())
	assert.True(t, sc.IsBuilt())
	cfg, ok := sc.Config()
	require.True(t, ok)
	assert.Equal(t, image.Pt(640, 480), cfg.Size())
	assert.Equal(t, gpu.Fifo, cfg.PresentMode)
	assert.Equal(t, []gpu.SurfaceConfig{cfg}, sf.Configs())

	assert.ErrorIs(t, sc.Build(), gpu.ErrAlreadyBuilt)
	assert.Len(t, sf.Configs(), 1)
}

func TestBuildDegenerateWindow(t *testing.T) {
	sc, _, _ := newContext(t, image.Pt(800, 600))
	sc.Window().(*offscreen.Window).SetSize(image.Pt(0, 0))
	require.NoError(t, sc.Build())
	cfg, _ := sc.Config()
	assert.Equal(t, image.Pt(1, 1), cfg.Size())
}

func TestBuildNoAdapter(t *testing.T) {
	sc, sf, be := newContext(t, image.Pt(100, 100))
	be.FailAdapter(true)
	assert.ErrorIs(t, sc.Build(), gpu.ErrNoAdapter)
	assert.False(t, sc.IsBuilt())
	assert.Empty(t, sf.Configs())
}

func TestBuildConfigureFailure(t *testing.T) {
	sc, sf, be := newContext(t, image.Pt(100, 100))
	sf.FailConfigure(nullgpu.ErrInjected)
	assert.ErrorIs(t, sc.Build(), nullgpu.ErrInjected)
	adapters, devices := be.Live()
	assert.Zero(t, adapters)
	assert.Zero(t, devices)
}

func TestResize(t *testing.T) {
	sc, sf, be := newContext(t, image.Pt(100, 100))
	require.NoError(t, sc.Build())
	require.NoError(t, sc.Resize(image.Pt(200, 150)))
	require.NoError(t, sc.Resize(image.Pt(0, -1)))
	require.NoError(t, sc.Resize(image.Pt(be.Limits.MaxTextureDimension2D+1, 5)))
	configs := sf.Configs()
	require.Len(t, configs, 4)
	assert.Equal(t, image.Pt(200, 150), configs[1].Size())
	assert.Equal(t, image.Pt(1, 1), configs[2].Size())
	assert.Equal(t, image.Pt(be.Limits.MaxTextureDimension2D, 5), configs[3].Size())
	cfg, _ := sc.Config()
	assert.Equal(t, configs[3], cfg)
}

func TestPaint(t *testing.T) {
	sc, sf, _ := newContext(t, image.Pt(100, 100))
	require.NoError(t, sc.Build())
	require.NoError(t, sc.Paint())
	clr, ok := sf.LastClear()
	require.True(t, ok)
	assert.Equal(t, gpu.DefaultClearColor, clr)

	blue := color.RGBA{0, 0, 255, 255}
	sc.SetClearColor(blue)
	require.NoError(t, sc.Paint())
	clr, _ = sf.LastClear()
	assert.Equal(t, blue, clr)
	assert.Equal(t, 2, sc.Paints())
	assert.Equal(t, 2, sf.Presents())
}

func TestPaintRetryOnce(t *testing.T) {
	for _, lost := range []error{gpu.ErrSurfaceLost, gpu.ErrSurfaceOutdated} {
		sc, sf, _ := newContext(t, image.Pt(100, 100))
		require.NoError(t, sc.Build())

		sf.LoseFrames(1, lost)
		require.NoError(t, sc.Paint())
		assert.Equal(t, 1, sf.Presents())
		assert.Equal(t, 2, sf.Acquires())
		// reconfigured with the same configuration
		configs := sf.Configs()
		require.Len(t, configs, 2)
		assert.Equal(t, configs[0], configs[1])

		sf.LoseFrames(2, lost)
		assert.ErrorIs(t, sc.Paint(), lost)
		assert.Equal(t, 1, sf.Presents())
		assert.Equal(t, 4, sf.Acquires())
	}
}

func TestPaintRetryWindowSize(t *testing.T) {
	sc, sf, _ := newContext(t, image.Pt(100, 100))
	require.NoError(t, sc.Build())

	// the window grew without a resize reaching the context
	sc.Window().(*offscreen.Window).SetSize(image.Pt(300, 200))
	sf.LoseFrames(1, gpu.ErrSurfaceOutdated)
	require.NoError(t, sc.Paint())
	cfg, ok := sc.Config()
	require.True(t, ok)
	assert.Equal(t, image.Pt(300, 200), cfg.Size())
	configs := sf.Configs()
	require.Len(t, configs, 2)
	assert.Equal(t, cfg, configs[1])
	assert.Equal(t, 1, sf.Presents())
}

func TestPaintOtherError(t *testing.T) {
	sc, sf, _ := newContext(t, image.Pt(100, 100))
	require.NoError(t, sc.Build())
	other := errors.New("device lost")
	sf.LoseFrames(1, other)
	assert.ErrorIs(t, sc.Paint(), other)
	assert.Equal(t, 1, sf.Acquires())
	assert.Len(t, sf.Configs(), 1)
}

func TestRelease(t *testing.T) {
	sc, sf, be := newContext(t, image.Pt(100, 100))
	require.NoError(t, sc.Build())
	sc.Release()
	sc.Release()
	assert.True(t, sf.Released())
	adapters, devices := be.Live()
	assert.Zero(t, adapters)
	assert.Zero(t, devices)
	assert.ErrorIs(t, sc.Paint(), gpu.ErrReleased)
	assert.ErrorIs(t, sc.Build(), gpu.ErrReleased)
}
