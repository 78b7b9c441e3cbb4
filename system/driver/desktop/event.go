// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"cogentcore.org/multiwin/events"
	"cogentcore.org/multiwin/events/key"
)

// physical key
func (w *Window) keyEvent(gw *glfw.Window, ky glfw.Key, scancode int, action glfw.Action, mod glfw.ModifierKey) {
	ec := GlfwKeyCode(ky)
	if ec == key.CodeUnknown {
		return
	}
	typ := events.KeyDown
	if action == glfw.Release {
		typ = events.KeyUp
	}
	w.app.deliver(w.ID(), events.NewKey(typ, ec))
}

// GlfwKeyCode returns the physical key code for the glfw key.
func GlfwKeyCode(kcode glfw.Key) key.Codes {
	switch {
	case kcode >= glfw.KeyA && kcode <= glfw.KeyZ:
		return key.CodeA + key.Codes(kcode-glfw.KeyA)
	case kcode >= glfw.Key1 && kcode <= glfw.Key9:
		return key.Code1 + key.Codes(kcode-glfw.Key1)
	case kcode >= glfw.KeyF1 && kcode <= glfw.KeyF12:
		return key.CodeF1 + key.Codes(kcode-glfw.KeyF1)
	}
	switch kcode {
	case glfw.Key0:
		return key.Code0
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return key.CodeReturnEnter
	case glfw.KeyEscape:
		return key.CodeEscape
	case glfw.KeyBackspace:
		return key.CodeBackspace
	case glfw.KeyTab:
		return key.CodeTab
	case glfw.KeySpace:
		return key.CodeSpacebar
	case glfw.KeyRight:
		return key.CodeRightArrow
	case glfw.KeyLeft:
		return key.CodeLeftArrow
	case glfw.KeyDown:
		return key.CodeDownArrow
	case glfw.KeyUp:
		return key.CodeUpArrow
	default:
		return key.CodeUnknown
	}
}
