// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package key defines the physical key codes carried by key events.
package key

import (
	"strconv"
	"strings"
)

// Codes is the physical key code, independent of keyboard layout.
// The values follow the USB HID usage table, as in x/mobile and shiny.
type Codes int32

const (
	CodeUnknown Codes = 0

	CodeA Codes = 4
	CodeB Codes = 5
	CodeC Codes = 6
	CodeD Codes = 7
	CodeE Codes = 8
	CodeF Codes = 9
	CodeG Codes = 10
	CodeH Codes = 11
	CodeI Codes = 12
	CodeJ Codes = 13
	CodeK Codes = 14
	CodeL Codes = 15
	CodeM Codes = 16
	CodeN Codes = 17
	CodeO Codes = 18
	CodeP Codes = 19
	CodeQ Codes = 20
	CodeR Codes = 21
	CodeS Codes = 22
	CodeT Codes = 23
	CodeU Codes = 24
	CodeV Codes = 25
	CodeW Codes = 26
	CodeX Codes = 27
	CodeY Codes = 28
	CodeZ Codes = 29

	Code1 Codes = 30
	Code2 Codes = 31
	Code3 Codes = 32
	Code4 Codes = 33
	Code5 Codes = 34
	Code6 Codes = 35
	Code7 Codes = 36
	Code8 Codes = 37
	Code9 Codes = 38
	Code0 Codes = 39

	CodeReturnEnter Codes = 40
	CodeEscape      Codes = 41
	CodeBackspace   Codes = 42
	CodeTab         Codes = 43
	CodeSpacebar    Codes = 44

	CodeF1  Codes = 58
	CodeF2  Codes = 59
	CodeF3  Codes = 60
	CodeF4  Codes = 61
	CodeF5  Codes = 62
	CodeF6  Codes = 63
	CodeF7  Codes = 64
	CodeF8  Codes = 65
	CodeF9  Codes = 66
	CodeF10 Codes = 67
	CodeF11 Codes = 68
	CodeF12 Codes = 69

	CodeRightArrow Codes = 79
	CodeLeftArrow  Codes = 80
	CodeDownArrow  Codes = 81
	CodeUpArrow    Codes = 82
)

var codeNames = map[Codes]string{
	CodeUnknown:     "Unknown",
	CodeReturnEnter: "ReturnEnter",
	CodeEscape:      "Escape",
	CodeBackspace:   "Backspace",
	CodeTab:         "Tab",
	CodeSpacebar:    "Spacebar",
	CodeRightArrow:  "RightArrow",
	CodeLeftArrow:   "LeftArrow",
	CodeDownArrow:   "DownArrow",
	CodeUpArrow:     "UpArrow",
}

func init() {
	for c := CodeA; c <= CodeZ; c++ {
		codeNames[c] = string(rune('A' + c - CodeA))
	}
	codeNames[Code0] = "0"
	for c := Code1; c <= Code9; c++ {
		codeNames[c] = string(rune('1' + c - Code1))
	}
	for c := CodeF1; c <= CodeF12; c++ {
		codeNames[c] = "F" + strconv.Itoa(int(c-CodeF1)+1)
	}
}

// String returns the name of the code, such as "N", "7", "Escape" or "F5".
func (c Codes) String() string {
	if nm, ok := codeNames[c]; ok {
		return nm
	}
	return "Unknown"
}

// SetString sets the code from its name, case insensitive.
// It returns false if the name is not known.
func (c *Codes) SetString(s string) bool {
	s = strings.TrimSpace(s)
	for code, nm := range codeNames {
		if code != CodeUnknown && strings.EqualFold(nm, s) {
			*c = code
			return true
		}
	}
	return false
}
