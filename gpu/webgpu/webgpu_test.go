// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webgpu

import (
	"image"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"

	"cogentcore.org/multiwin/base/errors"
	"cogentcore.org/multiwin/gpu"
)

func TestAcquireError(t *testing.T) {
	assert.ErrorIs(t, acquireError(errors.New("Surface texture is Outdated")), gpu.ErrSurfaceOutdated)
	assert.ErrorIs(t, acquireError(errors.New("surface lost")), gpu.ErrSurfaceLost)
	assert.ErrorIs(t, acquireError(errors.New("Timeout")), gpu.ErrSurfaceLost)
	other := errors.New("out of memory")
	assert.Equal(t, other, acquireError(other))
}

func TestFormats(t *testing.T) {
	assert.Equal(t, gpu.BGRA8UnormSrgb, textureFormat(wgpu.TextureFormatBGRA8UnormSrgb))
	assert.Equal(t, gpu.UndefinedFormat, textureFormat(wgpu.TextureFormatR8Unorm))
	assert.Equal(t, wgpu.TextureFormatRGBA8Unorm, nativeFormat(gpu.RGBA8Unorm, wgpu.TextureFormatBGRA8Unorm))
	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, nativeFormat(gpu.UndefinedFormat, wgpu.TextureFormatBGRA8Unorm))
}

func TestPresentMode(t *testing.T) {
	assert.Equal(t, wgpu.PresentModeFifo, presentMode(gpu.Fifo))
	assert.Equal(t, wgpu.PresentModeMailbox, presentMode(gpu.Mailbox))
	assert.Equal(t, wgpu.PowerPreferenceHighPerformance, powerPreference(gpu.HighPerformance))
	assert.Equal(t, wgpu.PowerPreferenceUndefined, powerPreference(gpu.PowerUndefined))
}

func TestCheckSize(t *testing.T) {
	assert.NoError(t, checkSize(image.Pt(800, 600), image.Pt(800, 600), 8192))
	assert.NoError(t, checkSize(image.Pt(1, 1), image.Pt(0, 0), 8192))
	assert.NoError(t, checkSize(image.Pt(8192, 10), image.Pt(9000, 10), 8192))
	assert.ErrorIs(t, checkSize(image.Pt(800, 600), image.Pt(1024, 768), 8192), gpu.ErrSurfaceOutdated)
}
