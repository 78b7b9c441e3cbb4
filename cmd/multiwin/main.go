// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command multiwin opens windows that are each rendered by their own
// worker thread. Press N in any window to open another one; the
// command exits when the last window is closed.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "multiwin: %s\n", err)
		os.Exit(1)
	}
}
