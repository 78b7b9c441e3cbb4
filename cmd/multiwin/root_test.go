// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0666))
	return path
}

func TestScript(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.toml", `LogLevel = "warn"`)
	script := writeFile(t, dir, "smoke.txt", `
# open a second window from the first, then close both
resize 1 320 240
paint 1
key 1 N
wait 10ms
paint 2
close 1
close 2
`)
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--config", cfg, "--script", script})
	assert.NoError(t, cmd.Execute())
}

func TestFlagErrors(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.toml", "")
	tests := [][]string{
		{"--config", cfg, "--platform", "offscreen", "--backend", "webgpu"},
		{"--config", cfg, "--platform", "web"},
		{"--config", cfg, "--platform", "offscreen", "--windows", "0"},
		{"--config", cfg, "--platform", "desktop", "--script", "x"},
		{"--config", filepath.Join(dir, "missing.toml")},
		{"--config", cfg, "extra"},
	}
	for _, args := range tests {
		cmd := NewRootCommand()
		cmd.SetArgs(args)
		cmd.SetErr(new(nopWriter))
		assert.Error(t, cmd.Execute(), "%v", args)
	}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
