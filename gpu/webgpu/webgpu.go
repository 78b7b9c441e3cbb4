// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package webgpu implements [gpu.Backend] with WebGPU, for windows of
// the desktop driver, whose native handle is a *glfw.Window.
package webgpu

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strings"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"

	"cogentcore.org/multiwin/base/errors"
	"cogentcore.org/multiwin/gpu"
	"cogentcore.org/multiwin/system"
)

// Backend is the WebGPU [gpu.Backend]. All windows share one instance;
// each surface context gets its own adapter and device.
type Backend struct {
	once     sync.Once
	instance *wgpu.Instance
}

// NewBackend returns a new WebGPU backend. The instance is created
// lazily, on the first surface creation.
func NewBackend() *Backend {
	return &Backend{}
}

func (b *Backend) Name() string { return "webgpu" }

// Instance returns the WebGPU instance.
func (b *Backend) Instance() *wgpu.Instance {
	b.once.Do(func() {
		b.instance = wgpu.CreateInstance(nil)
	})
	return b.instance
}

// Release releases the instance. It must be called after all surface
// contexts have been released.
func (b *Backend) Release() {
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

func (b *Backend) CreateSurface(win system.Window) (gpu.Surface, error) {
	glw, ok := win.Native().(*glfw.Window)
	if !ok || glw == nil {
		return nil, fmt.Errorf("webgpu: window %v of type %T has no glfw window", win.ID(), win.Native())
	}
	sf := b.Instance().CreateSurface(wgpuglfw.GetSurfaceDescriptor(glw))
	if sf == nil {
		return nil, fmt.Errorf("webgpu: could not create surface for window %v", win.ID())
	}
	return &Surface{surface: sf, win: win}, nil
}

func (b *Backend) RequestAdapter(opts *gpu.AdapterOptions) (gpu.Adapter, error) {
	ropts := &wgpu.RequestAdapterOptions{}
	if opts != nil {
		ropts.PowerPreference = powerPreference(opts.PowerPreference)
		if sf, ok := opts.CompatibleSurface.(*Surface); ok {
			ropts.CompatibleSurface = sf.surface
		}
	}
	ad, err := b.Instance().RequestAdapter(ropts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", gpu.ErrNoAdapter, err)
	}
	if ad == nil {
		return nil, gpu.ErrNoAdapter
	}
	return &Adapter{adapter: ad}, nil
}

func powerPreference(pp gpu.PowerPreferences) wgpu.PowerPreference {
	switch pp {
	case gpu.LowPower:
		return wgpu.PowerPreferenceLowPower
	case gpu.HighPerformance:
		return wgpu.PowerPreferenceHighPerformance
	}
	return wgpu.PowerPreferenceUndefined
}

// Adapter is a WebGPU [gpu.Adapter].
type Adapter struct {
	adapter *wgpu.Adapter
}

func (a *Adapter) Info() gpu.AdapterInfo {
	info := a.adapter.GetInfo()
	return gpu.AdapterInfo{Name: info.Name, Backend: info.BackendType.String()}
}

func (a *Adapter) Limits() gpu.Limits {
	limits := a.adapter.GetLimits()
	return gpu.Limits{MaxTextureDimension2D: int(limits.Limits.MaxTextureDimension2D)}
}

func (a *Adapter) RequestDevice(desc *gpu.DeviceDescriptor) (gpu.Device, error) {
	var wdesc *wgpu.DeviceDescriptor
	if desc != nil {
		wdesc = &wgpu.DeviceDescriptor{Label: desc.Label}
	}
	dev, err := a.adapter.RequestDevice(wdesc)
	if err != nil {
		return nil, err
	}
	return &Device{device: dev, queue: dev.GetQueue()}, nil
}

func (a *Adapter) Release() {
	a.adapter.Release()
}

// Device is a WebGPU [gpu.Device].
type Device struct {
	device *wgpu.Device
	queue  *wgpu.Queue
}

func (d *Device) Queue() gpu.Queue { return queue{d.queue} }

func (d *Device) CreateCommandEncoder(label string) (gpu.CommandEncoder, error) {
	enc, err := d.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, err
	}
	return &encoder{encoder: enc}, nil
}

func (d *Device) Release() {
	d.queue.Release()
	d.device.Release()
}

type queue struct {
	queue *wgpu.Queue
}

func (q queue) Submit(cmds ...gpu.CommandBuffer) {
	bufs := make([]*wgpu.CommandBuffer, 0, len(cmds))
	for _, cmd := range cmds {
		bufs = append(bufs, cmd.(*commandBuffer).buffer)
	}
	q.queue.Submit(bufs...)
}

type encoder struct {
	encoder *wgpu.CommandEncoder
}

func (e *encoder) ClearPass(view gpu.TextureView, c color.Color) error {
	tv, ok := view.(*textureView)
	if !ok {
		return errors.New("webgpu: foreign texture view")
	}
	r, g, b, a := c.RGBA()
	rp := e.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:    tv.view,
			LoadOp:  wgpu.LoadOpClear,
			StoreOp: wgpu.StoreOpStore,
			ClearValue: wgpu.Color{
				R: float64(r) / 0xffff,
				G: float64(g) / 0xffff,
				B: float64(b) / 0xffff,
				A: float64(a) / 0xffff,
			},
		}},
	})
	err := rp.End()
	rp.Release() // must happen before Finish
	return err
}

func (e *encoder) Finish() (gpu.CommandBuffer, error) {
	buf, err := e.encoder.Finish(nil)
	if err != nil {
		return nil, err
	}
	return &commandBuffer{buffer: buf}, nil
}

func (e *encoder) Release() {
	e.encoder.Release()
}

type commandBuffer struct {
	buffer *wgpu.CommandBuffer
}

func (c *commandBuffer) Release() {
	c.buffer.Release()
}

type textureView struct {
	view *wgpu.TextureView
}

func (v *textureView) Release() {
	v.view.Release()
}

// Surface is a WebGPU [gpu.Surface].
type Surface struct {
	surface *wgpu.Surface
	win     system.Window

	// size is the size of the current configuration, and maxDim the
	// texture size limit of the adapter it was configured with.
	size   image.Point
	maxDim int

	// format is the native format of the current configuration.
	format wgpu.TextureFormat
	alpha  wgpu.CompositeAlphaMode
}

func (s *Surface) DefaultConfig(adapter gpu.Adapter, width, height int) (gpu.SurfaceConfig, error) {
	caps := s.surface.GetCapabilities(adapter.(*Adapter).adapter)
	if len(caps.Formats) == 0 {
		return gpu.SurfaceConfig{}, fmt.Errorf("%w: surface has no formats", gpu.ErrNoAdapter)
	}
	s.format = caps.Formats[0]
	if len(caps.AlphaModes) > 0 {
		s.alpha = caps.AlphaModes[0]
	}
	return gpu.SurfaceConfig{
		Format:      textureFormat(s.format),
		Width:       width,
		Height:      height,
		PresentMode: gpu.Fifo,
	}, nil
}

func (s *Surface) Configure(adapter gpu.Adapter, device gpu.Device, config *gpu.SurfaceConfig) error {
	if config.Format != gpu.UndefinedFormat {
		s.format = nativeFormat(config.Format, s.format)
	}
	s.surface.Configure(adapter.(*Adapter).adapter, device.(*Device).device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      s.format,
		Width:       uint32(config.Width),
		Height:      uint32(config.Height),
		PresentMode: presentMode(config.PresentMode),
		AlphaMode:   s.alpha,
	})
	s.size = config.Size()
	s.maxDim = adapter.Limits().MaxTextureDimension2D
	if gpu.Debug {
		slog.Debug("webgpu: configured surface", "config", config)
	}
	return nil
}

// AcquireFrame returns the next surface texture. The binding reports
// only validation errors from [wgpu.Surface.GetCurrentTexture] and drops
// the surface status, so an outdated or lost surface may not produce
// an error at all, and a lost one may yield a texture with no native
// handle. The configured size is therefore checked against the window
// first, and a mismatch is reported as [gpu.ErrSurfaceOutdated].
func (s *Surface) AcquireFrame() (gpu.Frame, error) {
	if err := checkSize(s.size, s.win.Size(), s.maxDim); err != nil {
		return nil, err
	}
	tex, err := s.surface.GetCurrentTexture()
	if err != nil {
		return nil, acquireError(err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		return nil, err
	}
	return &frame{surface: s, view: &textureView{view: view}}, nil
}

// checkSize returns [gpu.ErrSurfaceOutdated] if the configured size no
// longer matches the clamped size of the window.
func checkSize(configured, win image.Point, maxDim int) error {
	if want := gpu.ClampSize(win, maxDim); want != configured {
		return fmt.Errorf("%w: configured for %v, window is %v", gpu.ErrSurfaceOutdated, configured, want)
	}
	return nil
}

// acquireError maps the status of a failed texture acquisition, when it
// is present in the error text, to the gpu sentinel errors.
func acquireError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "outdated"):
		return fmt.Errorf("%w: %w", gpu.ErrSurfaceOutdated, err)
	case strings.Contains(msg, "lost"), strings.Contains(msg, "timeout"):
		return fmt.Errorf("%w: %w", gpu.ErrSurfaceLost, err)
	}
	return err
}

func (s *Surface) Release() {
	s.surface.Release()
}

// frame holds the view of a surface texture. The texture itself is
// owned by the surface and is not released.
type frame struct {
	surface *Surface
	view    *textureView
}

func (f *frame) View() gpu.TextureView { return f.view }

func (f *frame) Present() error {
	f.surface.surface.Present()
	return nil
}

func (f *frame) Release() {
	f.view.Release()
}

func presentMode(pm gpu.PresentModes) wgpu.PresentMode {
	switch pm {
	case gpu.Mailbox:
		return wgpu.PresentModeMailbox
	case gpu.Immediate:
		return wgpu.PresentModeImmediate
	}
	return wgpu.PresentModeFifo
}

var formats = map[wgpu.TextureFormat]gpu.TextureFormats{
	wgpu.TextureFormatRGBA8Unorm:     gpu.RGBA8Unorm,
	wgpu.TextureFormatRGBA8UnormSrgb: gpu.RGBA8UnormSrgb,
	wgpu.TextureFormatBGRA8Unorm:     gpu.BGRA8Unorm,
	wgpu.TextureFormatBGRA8UnormSrgb: gpu.BGRA8UnormSrgb,
}

func textureFormat(tf wgpu.TextureFormat) gpu.TextureFormats {
	return formats[tf]
}

// nativeFormat returns the native format for tf, or def if there is none.
func nativeFormat(tf gpu.TextureFormats, def wgpu.TextureFormat) wgpu.TextureFormat {
	for nf, f := range formats {
		if f == tf {
			return nf
		}
	}
	return def
}
