// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of the multiwin command,
// which can be loaded from a TOML or YAML file.
package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"cogentcore.org/multiwin/events/key"
	"cogentcore.org/multiwin/gpu"
)

// DefaultPath is the config file loaded when none is specified.
// It is not an error for it to be missing.
const DefaultPath = "~/.config/multiwin/config.toml"

// Config is the main config struct that contains all of the
// configuration options for multiwin.
type Config struct {

	// Title is the window title; the window number is appended.
	Title string

	// Width is the initial window width, in pixels.
	Width int

	// Height is the initial window height, in pixels.
	Height int

	// ClearColor is the color windows are cleared to: a hex color
	// such as #4d331a, or a CSS color name.
	ClearColor string

	// NewWindowKey is the name of the key that opens a new window.
	NewWindowKey string

	// Platform is the platform driver: desktop or offscreen.
	Platform string

	// Backend is the graphics backend: webgpu or null.
	Backend string

	// PowerPreference selects the GPU: high or low.
	PowerPreference string

	// LogLevel is the minimum level of log messages:
	// debug, info, warn or error.
	LogLevel string
}

// Valid values of the enumerated fields.
var (
	Platforms        = []string{"desktop", "offscreen"}
	Backends         = []string{"webgpu", "null"}
	PowerPreferences = []string{"high", "low"}
	LogLevels        = []string{"debug", "info", "warn", "error"}
)

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Title:           "multiwin",
		Width:           800,
		Height:          600,
		ClearColor:      "#4d331a",
		NewWindowKey:    "N",
		Platform:        "desktop",
		Backend:         "webgpu",
		PowerPreference: "high",
		LogLevel:        "info",
	}
}

// Load reads the config file at path into cfg, overriding the fields
// the file sets. The path may start with ~. The format is determined by
// the extension: .toml, or .yaml and .yml. Errors for missing files wrap
// [os.ErrNotExist].
func Load(cfg *Config, path string) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(b, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, cfg)
	default:
		return fmt.Errorf("config: unsupported file type %q for %s", ext, path)
	}
	if err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg.Validate()
}

// Validate returns an error describing the first invalid field.
func (cfg *Config) Validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("config: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if _, err := ParseColor(cfg.ClearColor); err != nil {
		return err
	}
	if _, err := ParseKey(cfg.NewWindowKey); err != nil {
		return err
	}
	check := func(field, value string, valid []string) error {
		if !slices.Contains(valid, value) {
			return fmt.Errorf("config: invalid %s %q, must be one of %v", field, value, valid)
		}
		return nil
	}
	if err := check("Platform", cfg.Platform, Platforms); err != nil {
		return err
	}
	if err := check("Backend", cfg.Backend, Backends); err != nil {
		return err
	}
	if err := check("PowerPreference", cfg.PowerPreference, PowerPreferences); err != nil {
		return err
	}
	return check("LogLevel", cfg.LogLevel, LogLevels)
}

// Color returns the parsed clear color, or [gpu.DefaultClearColor] if
// it is invalid.
func (cfg *Config) Color() color.RGBA {
	c, err := ParseColor(cfg.ClearColor)
	if err != nil {
		return gpu.DefaultClearColor
	}
	return c
}

// Key returns the parsed new window key, or [key.CodeUnknown] if it is
// empty or invalid.
func (cfg *Config) Key() key.Codes {
	k, _ := ParseKey(cfg.NewWindowKey)
	return k
}

// Power returns the power preference for the graphics backend.
func (cfg *Config) Power() gpu.PowerPreferences {
	if cfg.PowerPreference == "low" {
		return gpu.LowPower
	}
	return gpu.HighPerformance
}
