// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"cogentcore.org/multiwin/events/key"
)

// ParseColor parses a color in one of the forms #rgb, #rrggbb or
// #rrggbbaa, or a CSS color name such as "steelblue". The alpha of
// #rrggbbaa is not premultiplied; the returned color is.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("config: empty color")
	}
	if s[0] != '#' {
		c, ok := colornames.Map[strings.ToLower(s)]
		if !ok {
			return color.RGBA{}, fmt.Errorf("config: color name not found: %q", s)
		}
		return c, nil
	}
	x := s[1:]
	if len(x) == 3 {
		x = string([]byte{x[0], x[0], x[1], x[1], x[2], x[2]})
	}
	if len(x) == 6 {
		x += "ff"
	}
	if len(x) != 8 {
		return color.RGBA{}, fmt.Errorf("config: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(x, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("config: invalid hex color %q: %w", s, err)
	}
	// hex colors are not premultiplied
	nc := color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return color.RGBAModel.Convert(nc).(color.RGBA), nil
}

// ParseKey parses a key name such as "N", "F2" or "Escape". The empty
// string is valid and returns [key.CodeUnknown], which disables the key.
func ParseKey(s string) (key.Codes, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return key.CodeUnknown, nil
	}
	var k key.Codes
	if !k.SetString(s) {
		return key.CodeUnknown, fmt.Errorf("config: unknown key %q", s)
	}
	return k, nil
}
