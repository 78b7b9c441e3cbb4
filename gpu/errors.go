// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "cogentcore.org/multiwin/base/errors"

var (
	// ErrNotBuilt is returned by operations on a [SurfaceContext]
	// that has not been built.
	ErrNotBuilt = errors.New("gpu: surface context not built")

	// ErrAlreadyBuilt is returned by a second call to [SurfaceContext.Build].
	ErrAlreadyBuilt = errors.New("gpu: surface context already built")

	// ErrReleased is returned by operations on a released [SurfaceContext].
	ErrReleased = errors.New("gpu: surface context released")

	// ErrNoAdapter means no adapter can present to the surface.
	ErrNoAdapter = errors.New("gpu: no compatible adapter")

	// ErrSurfaceLost means the surface must be reconfigured
	// before frames can be acquired again.
	ErrSurfaceLost = errors.New("gpu: surface lost")

	// ErrSurfaceOutdated means the surface no longer matches the window,
	// typically after a resize that has not been applied yet.
	ErrSurfaceOutdated = errors.New("gpu: surface outdated")
)
