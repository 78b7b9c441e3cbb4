// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/multiwin/events/key"
	"cogentcore.org/multiwin/gpu"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, gpu.DefaultClearColor, cfg.Color())
	assert.Equal(t, key.CodeN, cfg.Key())
	assert.Equal(t, gpu.HighPerformance, cfg.Power())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0666))
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
Title = "demo"
Width = 1024
ClearColor = "steelblue"
NewWindowKey = "F2"
Platform = "offscreen"
Backend = "null"
`)
	cfg := Defaults()
	require.NoError(t, Load(cfg, path))
	assert.Equal(t, "demo", cfg.Title)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, color.RGBA{70, 130, 180, 255}, cfg.Color())
	assert.Equal(t, key.CodeF2, cfg.Key())
	assert.Equal(t, "offscreen", cfg.Platform)
	assert.Equal(t, "null", cfg.Backend)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
height: 300
clearcolor: "#00ff00"
powerpreference: low
loglevel: debug
`)
	cfg := Defaults()
	require.NoError(t, Load(cfg, path))
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 300, cfg.Height)
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, cfg.Color())
	assert.Equal(t, gpu.LowPower, cfg.Power())
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	cfg := Defaults()
	assert.ErrorIs(t, Load(cfg, filepath.Join(t.TempDir(), "missing.toml")), os.ErrNotExist)
	assert.Error(t, Load(cfg, writeFile(t, "config.json", `{}`)))
	assert.Error(t, Load(cfg, writeFile(t, "bad.toml", `Width = "wide"`)))
	assert.ErrorContains(t, Load(cfg, writeFile(t, "platform.toml", `Platform = "web"`)), "Platform")
	assert.ErrorContains(t, Load(cfg, writeFile(t, "color.toml", `ClearColor = "notacolor"`)), "color")
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#4d331a", color.RGBA{77, 51, 26, 255}},
		{"#fff", color.RGBA{255, 255, 255, 255}},
		{"#10203040", color.RGBA{4, 8, 12, 64}},
		{"#ff000080", color.RGBA{128, 0, 0, 128}},
		{"#00ff0000", color.RGBA{}},
		{"Red", color.RGBA{255, 0, 0, 255}},
		{" navy ", color.RGBA{0, 0, 128, 255}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if assert.NoError(t, err, tt.in) {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
	for _, bad := range []string{"", "#12", "#ggg", "#1234567", "nocolor"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey("n")
	require.NoError(t, err)
	assert.Equal(t, key.CodeN, k)
	k, err = ParseKey("")
	require.NoError(t, err)
	assert.Equal(t, key.CodeUnknown, k)
	_, err = ParseKey("Hyper")
	assert.Error(t, err)
}

func TestWatch(t *testing.T) {
	path := writeFile(t, "config.toml", `Title = "one"`)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 10)
	require.NoError(t, Watch(ctx, path, *Defaults(), func(cfg *Config) { got <- cfg }))

	require.NoError(t, os.WriteFile(path, []byte(`ClearColor = "blue"`), 0666))
	// a write may be seen half done first, so wait for the final content
	blue := color.RGBA{0, 0, 255, 255}
	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-got:
			if cfg.Color() != blue {
				continue
			}
			assert.Equal(t, "multiwin", cfg.Title)
			return
		case <-timeout:
			require.FailNow(t, "config was not reloaded")
		}
	}
}
