// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx configures the default [slog] logger with a
// level-colored handler and a user-selected verbosity.
package logx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// UserLevel is the verbosity [slog.Level] that the user has selected for
// what logging messages should be shown. It is set from the build tags
// (Debug with "debug", Warn with "release", Info otherwise) and can be
// overridden from config or flags before calling [SetDefaultLogger].
var UserLevel = defaultUserLevel

// SetDefaultLogger sets the default logger to a [Handler] writing to
// os.Stderr with a level of [UserLevel].
func SetDefaultLogger() {
	slog.SetDefault(NewLogger(os.Stderr))
}

// NewLogger returns a new logger writing to the given writer
// with a level of [UserLevel].
func NewLogger(w io.Writer) *slog.Logger {
	return slog.New(NewHandler(w, &slog.HandlerOptions{Level: UserLevel}))
}

// LevelFromString returns the [slog.Level] for the given name
// (debug, info, warn, error), case insensitive.
func LevelFromString(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("logx: unknown level %q", s)
}
