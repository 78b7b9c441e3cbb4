// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"cogentcore.org/multiwin"
	"cogentcore.org/multiwin/base/errors"
	"cogentcore.org/multiwin/base/logx"
	"cogentcore.org/multiwin/config"
	"cogentcore.org/multiwin/gpu"
	"cogentcore.org/multiwin/gpu/nullgpu"
	"cogentcore.org/multiwin/gpu/webgpu"
	"cogentcore.org/multiwin/system"
	"cogentcore.org/multiwin/system/driver"
	"cogentcore.org/multiwin/system/driver/offscreen"
)

// JoinTimeout is how long the command waits for the render workers
// to exit after the event loop has returned.
const JoinTimeout = 5 * time.Second

// flags are the command line flags, which override the config file.
type flags struct {
	config   string
	platform string
	backend  string
	logLevel string
	windows  int
	script   string
}

// NewRootCommand returns the multiwin command.
func NewRootCommand() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "multiwin",
		Short: "Open windows that are each rendered by their own thread",
		Long: `multiwin opens one or more windows, each of which is rendered by a
dedicated worker thread that owns the graphics device of the window.
Press the new window key (N by default) in any window to open another
one. The command exits once the last window is closed.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return run(cfg, path, f)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "config file (.toml, .yaml or .yml); default "+config.DefaultPath)
	fs.StringVar(&f.platform, "platform", "", "platform driver: desktop or offscreen")
	fs.StringVar(&f.backend, "backend", "", "graphics backend: webgpu or null")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.IntVarP(&f.windows, "windows", "n", 1, "number of windows to open at startup")
	fs.StringVar(&f.script, "script", "", "event script to replay (offscreen platform only)")
	return cmd
}

// loadConfig returns the config from the config file, with the flags
// that were set applied, and the path of the file to watch, if any.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, string, error) {
	cfg := config.Defaults()
	path := f.config
	if path == "" {
		path = config.DefaultPath
	}
	if err := config.Load(cfg, path); err != nil {
		if f.config != "" || !errors.Is(err, os.ErrNotExist) {
			return nil, "", err
		}
		path = ""
	}
	fs := cmd.Flags()
	if fs.Changed("platform") {
		cfg.Platform = f.platform
	}
	if fs.Changed("backend") {
		cfg.Backend = f.backend
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if f.script != "" && !fs.Changed("platform") {
		cfg.Platform = "offscreen"
	}
	if cfg.Platform == "offscreen" && !fs.Changed("backend") {
		cfg.Backend = "null"
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	if cfg.Platform == "offscreen" && cfg.Backend == "webgpu" {
		return nil, "", fmt.Errorf("the webgpu backend needs the desktop platform")
	}
	if f.script != "" && cfg.Platform != "offscreen" {
		return nil, "", fmt.Errorf("--script needs the offscreen platform")
	}
	if f.windows < 1 {
		return nil, "", fmt.Errorf("--windows must be at least 1, got %d", f.windows)
	}
	return cfg, path, nil
}

func newBackend(name string) gpu.Backend {
	if name == "null" {
		return nullgpu.NewBackend()
	}
	return webgpu.NewBackend()
}

// run runs the event loop until the last window is closed, and then
// joins the render workers.
func run(cfg *config.Config, path string, f *flags) error {
	level, err := logx.LevelFromString(cfg.LogLevel)
	if err != nil {
		return err
	}
	logx.UserLevel = level
	logx.SetDefaultLogger()

	app, err := driver.New(cfg.Platform)
	if err != nil {
		return err
	}
	backend := newBackend(cfg.Backend)
	c := multiwin.NewCoordinator(app, backend,
		multiwin.WithWindowOptions(system.NewWindowOptions{Title: cfg.Title, Size: image.Pt(cfg.Width, cfg.Height)}),
		multiwin.WithSurfaceOptions(gpu.SurfaceOptions{PowerPreference: cfg.Power(), ClearColor: cfg.Color()}),
		multiwin.WithNewWindowKey(cfg.Key()),
		multiwin.WithInitialWindows(f.windows),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if path != "" {
		err := config.Watch(ctx, path, *config.Defaults(), func(ncfg *config.Config) {
			app.RunOnMain(func() { c.SetClearColor(ncfg.Color()) })
		})
		errors.Log(err)
	}
	if f.script != "" {
		if err := playScript(app, f.script); err != nil {
			return err
		}
	}

	slog.Info("multiwin: starting", "platform", app.Name(), "backend", backend.Name(), "windows", f.windows)
	err = app.MainLoop(c)
	c.Shutdown()

	jctx, jcancel := context.WithTimeout(context.Background(), JoinTimeout)
	defer jcancel()
	werr := c.Wait(jctx)
	if errors.Is(werr, context.DeadlineExceeded) {
		slog.Warn("multiwin: render workers did not exit in time", "timeout", JoinTimeout)
	}
	app.Terminate()
	if wb, ok := backend.(*webgpu.Backend); ok {
		wb.Release()
	}
	if err != nil {
		return err
	}
	return werr
}

func playScript(app system.App, path string) error {
	oa, ok := app.(*offscreen.App)
	if !ok {
		return fmt.Errorf("--script needs the offscreen platform")
	}
	fp, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	steps, err := offscreen.ParseScript(fp)
	if err != nil {
		return err
	}
	oa.Play(steps)
	return nil
}
