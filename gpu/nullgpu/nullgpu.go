// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nullgpu provides a [gpu.Backend] that renders nothing and
// records every operation, for tests and headless runs. It is safe for
// concurrent use by any number of render workers.
package nullgpu

import (
	"image/color"
	"sync"

	"cogentcore.org/multiwin/base/errors"
	"cogentcore.org/multiwin/gpu"
	"cogentcore.org/multiwin/system"
)

// ErrInjected is the default error returned by injected failures.
var ErrInjected = errors.New("nullgpu: injected failure")

// Backend is a [gpu.Backend] without a GPU.
type Backend struct {
	// Limits are reported by every adapter.
	Limits gpu.Limits

	// Format is the surface format of default configurations.
	Format gpu.TextureFormats

	mu         sync.Mutex
	adapterErr error
	deviceErr  error
	surfaces   map[system.WindowID]*Surface
	adapters   int
	devices    int
}

// NewBackend returns a new backend with [gpu.DefaultLimits].
func NewBackend() *Backend {
	return &Backend{
		Limits:   gpu.DefaultLimits,
		Format:   gpu.BGRA8UnormSrgb,
		surfaces: map[system.WindowID]*Surface{},
	}
}

func (b *Backend) Name() string { return "null" }

// FailAdapter makes subsequent adapter requests fail with an error
// wrapping [gpu.ErrNoAdapter], until it is called with false.
func (b *Backend) FailAdapter(fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.adapterErr = nil
	if fail {
		b.adapterErr = errors.Join(gpu.ErrNoAdapter, ErrInjected)
	}
}

// FailDevice makes subsequent device requests fail with the given
// error. A nil error restores normal behavior.
func (b *Backend) FailDevice(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deviceErr = err
}

func (b *Backend) CreateSurface(win system.Window) (gpu.Surface, error) {
	sf := &Surface{backend: b, id: win.ID()}
	b.mu.Lock()
	b.surfaces[win.ID()] = sf
	b.mu.Unlock()
	return sf, nil
}

func (b *Backend) RequestAdapter(opts *gpu.AdapterOptions) (gpu.Adapter, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.adapterErr != nil {
		return nil, b.adapterErr
	}
	if opts == nil || opts.CompatibleSurface == nil {
		return nil, errors.Join(gpu.ErrNoAdapter, errors.New("nullgpu: no compatible surface"))
	}
	b.adapters++
	return &Adapter{backend: b, power: opts.PowerPreference}, nil
}

// Surface returns the surface created for the given window, or nil.
func (b *Backend) Surface(id system.WindowID) *Surface {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surfaces[id]
}

// Live returns the number of adapters and devices not yet released.
func (b *Backend) Live() (adapters, devices int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.adapters, b.devices
}

// Adapter is a [gpu.Adapter] of a [Backend].
type Adapter struct {
	backend *Backend
	power   gpu.PowerPreferences
}

func (a *Adapter) Info() gpu.AdapterInfo {
	return gpu.AdapterInfo{Name: "null adapter (" + a.power.String() + ")", Backend: "null"}
}

func (a *Adapter) Limits() gpu.Limits { return a.backend.Limits }

func (a *Adapter) RequestDevice(desc *gpu.DeviceDescriptor) (gpu.Device, error) {
	b := a.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.deviceErr != nil {
		return nil, b.deviceErr
	}
	b.devices++
	return &Device{backend: b}, nil
}

func (a *Adapter) Release() {
	a.backend.mu.Lock()
	a.backend.adapters--
	a.backend.mu.Unlock()
}

// Device is a [gpu.Device] of a [Backend].
type Device struct {
	backend *Backend
}

func (d *Device) Queue() gpu.Queue { return queue{} }

func (d *Device) CreateCommandEncoder(label string) (gpu.CommandEncoder, error) {
	return &encoder{}, nil
}

func (d *Device) Release() {
	d.backend.mu.Lock()
	d.backend.devices--
	d.backend.mu.Unlock()
}

type queue struct{}

func (queue) Submit(cmds ...gpu.CommandBuffer) {
	for _, cmd := range cmds {
		cmd.(*commands).frame.submitted = true
	}
}

type encoder struct {
	frame *Frame
}

func (e *encoder) ClearPass(view gpu.TextureView, c color.Color) error {
	v, ok := view.(*textureView)
	if !ok {
		return errors.New("nullgpu: foreign texture view")
	}
	e.frame = v.frame
	r, g, b, a := c.RGBA()
	v.frame.Clear = color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
	return nil
}

func (e *encoder) Finish() (gpu.CommandBuffer, error) {
	if e.frame == nil {
		return nil, errors.New("nullgpu: no commands recorded")
	}
	return &commands{frame: e.frame}, nil
}

func (e *encoder) Release() {}

type commands struct {
	frame *Frame
}

func (c *commands) Release() {}

type textureView struct {
	frame *Frame
}

func (v *textureView) Release() {}

// Frame is a [gpu.Frame] of a [Surface].
type Frame struct {
	surface *Surface

	// Clear is the color the frame was cleared to.
	Clear color.RGBA

	submitted bool
}

func (f *Frame) View() gpu.TextureView { return &textureView{frame: f} }

func (f *Frame) Present() error {
	if !f.submitted {
		return errors.New("nullgpu: presenting frame without submitted commands")
	}
	f.surface.presented(f)
	return nil
}

func (f *Frame) Release() {}

// Surface is a [gpu.Surface] of a [Backend]. It records every
// configuration and presented frame.
type Surface struct {
	backend *Backend
	id      system.WindowID

	mu        sync.Mutex
	configs   []gpu.SurfaceConfig
	frames    []Frame
	acquires  int
	loseNext  int
	loseErr   error
	released  bool
	configErr error
}

// LoseFrames makes the next n frame acquisitions fail with err, which
// typically wraps [gpu.ErrSurfaceLost] or [gpu.ErrSurfaceOutdated].
func (s *Surface) LoseFrames(n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loseNext = n
	s.loseErr = err
}

// FailConfigure makes subsequent configurations fail with err.
func (s *Surface) FailConfigure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configErr = err
}

func (s *Surface) DefaultConfig(adapter gpu.Adapter, width, height int) (gpu.SurfaceConfig, error) {
	return gpu.SurfaceConfig{Format: s.backend.Format, Width: width, Height: height, PresentMode: gpu.Fifo}, nil
}

func (s *Surface) Configure(adapter gpu.Adapter, device gpu.Device, config *gpu.SurfaceConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.configErr != nil {
		return s.configErr
	}
	if config.Width < 1 || config.Height < 1 {
		return errors.New("nullgpu: invalid surface size " + config.String())
	}
	if maxDim := adapter.Limits().MaxTextureDimension2D; config.Width > maxDim || config.Height > maxDim {
		return errors.New("nullgpu: surface size exceeds limits " + config.String())
	}
	s.configs = append(s.configs, *config)
	return nil
}

func (s *Surface) AcquireFrame() (gpu.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acquires++
	if s.loseNext > 0 {
		s.loseNext--
		return nil, s.loseErr
	}
	if len(s.configs) == 0 {
		return nil, errors.Join(gpu.ErrSurfaceOutdated, errors.New("nullgpu: surface not configured"))
	}
	return &Frame{surface: s}, nil
}

func (s *Surface) presented(f *Frame) {
	s.mu.Lock()
	s.frames = append(s.frames, *f)
	s.mu.Unlock()
}

func (s *Surface) Release() {
	s.mu.Lock()
	s.released = true
	s.mu.Unlock()
}

// Configs returns every configuration applied so far, in order.
func (s *Surface) Configs() []gpu.SurfaceConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]gpu.SurfaceConfig(nil), s.configs...)
}

// Config returns the last applied configuration, and whether there is one.
func (s *Surface) Config() (gpu.SurfaceConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.configs) == 0 {
		return gpu.SurfaceConfig{}, false
	}
	return s.configs[len(s.configs)-1], true
}

// Presents returns the number of presented frames.
func (s *Surface) Presents() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

// LastClear returns the clear color of the last presented frame.
func (s *Surface) LastClear() (color.RGBA, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return color.RGBA{}, false
	}
	return s.frames[len(s.frames)-1].Clear, true
}

// Acquires returns the number of frame acquisitions, including failed ones.
func (s *Surface) Acquires() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acquires
}

// Released returns whether the surface has been released.
func (s *Surface) Released() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}
