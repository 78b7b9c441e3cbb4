// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"
)

// PowerPreferences select the kind of adapter to request.
type PowerPreferences int32

const (
	// PowerUndefined lets the backend decide.
	PowerUndefined PowerPreferences = iota

	// LowPower prefers integrated GPUs.
	LowPower

	// HighPerformance prefers discrete GPUs.
	HighPerformance
)

func (pp PowerPreferences) String() string {
	switch pp {
	case LowPower:
		return "LowPower"
	case HighPerformance:
		return "HighPerformance"
	}
	return "PowerUndefined"
}

// TextureFormats are the surface texture formats.
type TextureFormats int32

const (
	UndefinedFormat TextureFormats = iota
	RGBA8Unorm
	RGBA8UnormSrgb
	BGRA8Unorm
	BGRA8UnormSrgb
)

func (tf TextureFormats) String() string {
	switch tf {
	case RGBA8Unorm:
		return "RGBA8Unorm"
	case RGBA8UnormSrgb:
		return "RGBA8UnormSrgb"
	case BGRA8Unorm:
		return "BGRA8Unorm"
	case BGRA8UnormSrgb:
		return "BGRA8UnormSrgb"
	}
	return "UndefinedFormat"
}

// PresentModes determine how frames are queued for display.
type PresentModes int32

const (
	// Fifo waits for vertical blank; always supported.
	Fifo PresentModes = iota

	// Mailbox replaces the queued frame with the newest one.
	Mailbox

	// Immediate presents without waiting, which may tear.
	Immediate
)

func (pm PresentModes) String() string {
	switch pm {
	case Mailbox:
		return "Mailbox"
	case Immediate:
		return "Immediate"
	}
	return "Fifo"
}

// SurfaceConfig is the configuration of a surface.
type SurfaceConfig struct {
	Format      TextureFormats
	Width       int
	Height      int
	PresentMode PresentModes
}

// Size returns the configured size.
func (sc *SurfaceConfig) Size() image.Point {
	return image.Pt(sc.Width, sc.Height)
}

func (sc SurfaceConfig) String() string {
	return fmt.Sprintf("%dx%d %v %v", sc.Width, sc.Height, sc.Format, sc.PresentMode)
}

// ClampSize clamps each axis of size to [1, maxDim]. A maxDim of zero
// or less means no upper bound. Zero or negative sizes happen when a
// window is minimized, and are not valid surface configurations.
func ClampSize(size image.Point, maxDim int) image.Point {
	clamp := func(v int) int {
		if v < 1 {
			return 1
		}
		if maxDim > 0 && v > maxDim {
			return maxDim
		}
		return v
	}
	return image.Pt(clamp(size.X), clamp(size.Y))
}
