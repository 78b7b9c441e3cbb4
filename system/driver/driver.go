// Copyright 2023 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver provides the platform driver selected by name.
package driver

import (
	"fmt"

	"cogentcore.org/multiwin/system"
	"cogentcore.org/multiwin/system/driver/desktop"
	"cogentcore.org/multiwin/system/driver/offscreen"
)

// Platforms are the names accepted by [New].
var Platforms = []string{"desktop", "offscreen"}

// New returns the app of the named platform driver.
func New(platform string) (system.App, error) {
	switch platform {
	case "desktop", "":
		a, err := desktop.NewApp()
		if err != nil {
			return nil, err
		}
		return a, nil
	case "offscreen":
		return offscreen.NewApp(), nil
	}
	return nil, fmt.Errorf("driver: unknown platform %q, must be one of %v", platform, Platforms)
}
