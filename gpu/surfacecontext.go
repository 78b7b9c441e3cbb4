// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync"

	"cogentcore.org/multiwin/base/errors"
	"cogentcore.org/multiwin/system"
)

// DefaultClearColor is the color a surface is cleared to by default.
var DefaultClearColor = color.RGBA{R: 77, G: 51, B: 26, A: 255}

// SurfaceOptions are the options for [NewSurfaceContext].
type SurfaceOptions struct {
	// PowerPreference is passed to [Backend.RequestAdapter].
	PowerPreference PowerPreferences

	// ClearColor is the initial clear color. If nil,
	// [DefaultClearColor] is used.
	ClearColor color.Color
}

// SurfaceContext holds the graphics resources needed to render into one
// window: the surface, and the adapter, device, queue and configuration
// that are acquired by [SurfaceContext.Build].
//
// Except for [SurfaceContext.Config] and [SurfaceContext.Paints], which
// may be read from any goroutine, all methods must be called from the
// goroutine that owns the context, which is the window's render worker.
type SurfaceContext struct {
	backend Backend
	win     system.Window
	opts    SurfaceOptions
	surface Surface

	adapter Adapter
	device  Device
	queue   Queue
	limits  Limits

	clearColor color.Color
	built      bool
	released   bool

	// mu protects the fields below, which are observable from
	// other goroutines.
	mu     sync.Mutex
	config SurfaceConfig
	paints int
}

// NewSurfaceContext creates the surface for the given window. It does
// not acquire any device resources, and is cheap enough to call on the
// control thread right after the window is created, which is where
// some platforms require surfaces to be created.
func NewSurfaceContext(backend Backend, win system.Window, opts *SurfaceOptions) (*SurfaceContext, error) {
	sc := &SurfaceContext{backend: backend, win: win}
	if opts != nil {
		sc.opts = *opts
	}
	sc.clearColor = sc.opts.ClearColor
	if sc.clearColor == nil {
		sc.clearColor = DefaultClearColor
	}
	sf, err := backend.CreateSurface(win)
	if err != nil {
		return nil, fmt.Errorf("gpu: creating surface for %v: %w", win.ID(), err)
	}
	sc.surface = sf
	return sc, nil
}

// Build acquires an adapter compatible with the surface, a device and
// its queue, and configures the surface for the current size of the
// window. It then requests an initial redraw. Build must be called
// exactly once, before any other operation.
func (sc *SurfaceContext) Build() error {
	if sc.released {
		return ErrReleased
	}
	if sc.built {
		return ErrAlreadyBuilt
	}
	adapter, err := sc.backend.RequestAdapter(&AdapterOptions{
		CompatibleSurface: sc.surface,
		PowerPreference:   sc.opts.PowerPreference,
	})
	if err != nil {
		return fmt.Errorf("gpu: requesting adapter: %w", err)
	}
	device, err := adapter.RequestDevice(nil)
	if err != nil {
		adapter.Release()
		return fmt.Errorf("gpu: requesting device from %q: %w", adapter.Info().Name, err)
	}
	limits := adapter.Limits()
	size := ClampSize(sc.win.Size(), limits.MaxTextureDimension2D)
	config, err := sc.surface.DefaultConfig(adapter, size.X, size.Y)
	if err == nil {
		err = sc.surface.Configure(adapter, device, &config)
	}
	if err != nil {
		device.Release()
		adapter.Release()
		return fmt.Errorf("gpu: configuring surface: %w", err)
	}
	sc.adapter = adapter
	sc.device = device
	sc.queue = device.Queue()
	sc.limits = limits
	sc.setConfig(config)
	sc.built = true
	slog.Info("gpu: surface built", "window", sc.win.ID(), "adapter", adapter.Info().Name, "config", config)
	sc.win.RequestRedraw()
	return nil
}

// IsBuilt returns whether [SurfaceContext.Build] has succeeded.
func (sc *SurfaceContext) IsBuilt() bool {
	return sc.built
}

// Resize reconfigures the surface for the given size in pixels. Each
// axis is clamped to [1, MaxTextureDimension2D], so degenerate sizes
// from minimized windows become 1x1.
func (sc *SurfaceContext) Resize(size image.Point) error {
	if err := sc.usable(); err != nil {
		return err
	}
	size = ClampSize(size, sc.limits.MaxTextureDimension2D)
	config, _ := sc.Config()
	config.Width, config.Height = size.X, size.Y
	if err := sc.surface.Configure(sc.adapter, sc.device, &config); err != nil {
		return fmt.Errorf("gpu: resizing surface to %v: %w", size, err)
	}
	sc.setConfig(config)
	if Debug {
		slog.Debug("gpu: surface resized", "window", sc.win.ID(), "config", config)
	}
	return nil
}

// Paint renders one frame, clearing the surface to the clear color, and
// presents it. If the frame cannot be acquired because the surface is
// lost or outdated, the surface is reconfigured for the current size of
// the window and acquisition is retried once. Any other error, or a
// second failure, is returned.
func (sc *SurfaceContext) Paint() error {
	if err := sc.usable(); err != nil {
		return err
	}
	frame, err := sc.surface.AcquireFrame()
	if errors.Is(err, ErrSurfaceLost) || errors.Is(err, ErrSurfaceOutdated) {
		slog.Warn("gpu: reconfiguring surface", "window", sc.win.ID(), "err", err)
		config, _ := sc.Config()
		size := ClampSize(sc.win.Size(), sc.limits.MaxTextureDimension2D)
		config.Width, config.Height = size.X, size.Y
		if cerr := sc.surface.Configure(sc.adapter, sc.device, &config); cerr != nil {
			return fmt.Errorf("gpu: reconfiguring surface: %w", cerr)
		}
		sc.setConfig(config)
		frame, err = sc.surface.AcquireFrame()
	}
	if err != nil {
		return fmt.Errorf("gpu: acquiring frame: %w", err)
	}
	defer frame.Release()

	enc, err := sc.device.CreateCommandEncoder("paint")
	if err != nil {
		return fmt.Errorf("gpu: creating command encoder: %w", err)
	}
	defer enc.Release()
	if err := enc.ClearPass(frame.View(), sc.clearColor); err != nil {
		return fmt.Errorf("gpu: recording clear pass: %w", err)
	}
	cmd, err := enc.Finish()
	if err != nil {
		return fmt.Errorf("gpu: finishing commands: %w", err)
	}
	defer cmd.Release()
	sc.queue.Submit(cmd)
	if err := frame.Present(); err != nil {
		return fmt.Errorf("gpu: presenting frame: %w", err)
	}
	sc.mu.Lock()
	sc.paints++
	sc.mu.Unlock()
	return nil
}

// SetClearColor sets the color used by subsequent paints.
func (sc *SurfaceContext) SetClearColor(c color.Color) {
	if c == nil {
		c = DefaultClearColor
	}
	sc.clearColor = c
}

// ClearColor returns the current clear color.
func (sc *SurfaceContext) ClearColor() color.Color {
	return sc.clearColor
}

// Config returns the current surface configuration, and whether the
// context has been built; the configuration is meaningless otherwise.
func (sc *SurfaceContext) Config() (SurfaceConfig, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.config, sc.config.Width > 0
}

// Paints returns the number of frames presented so far.
func (sc *SurfaceContext) Paints() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.paints
}

// Window returns the window of the surface.
func (sc *SurfaceContext) Window() system.Window {
	return sc.win
}

// Release releases all graphics resources. It is safe to call more
// than once, and on a context that was never built.
func (sc *SurfaceContext) Release() {
	if sc.released {
		return
	}
	sc.released = true
	sc.built = false
	if sc.device != nil {
		sc.device.Release()
		sc.device = nil
	}
	if sc.adapter != nil {
		sc.adapter.Release()
		sc.adapter = nil
	}
	if sc.surface != nil {
		sc.surface.Release()
		sc.surface = nil
	}
	sc.queue = nil
}

func (sc *SurfaceContext) usable() error {
	if sc.released {
		return ErrReleased
	}
	if !sc.built {
		return ErrNotBuilt
	}
	return nil
}

func (sc *SurfaceContext) setConfig(config SurfaceConfig) {
	sc.mu.Lock()
	sc.config = config
	sc.mu.Unlock()
}
