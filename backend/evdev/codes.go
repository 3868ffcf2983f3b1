// This file is part of Chronostim.
//
// Chronostim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Chronostim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Chronostim.  If not, see <https://www.gnu.org/licenses/>.

package evdev

import (
	"fmt"
)

// event types
const (
	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02
	evAbs = 0x03
)

// event codes
const (
	synReport = 0x00

	relX      = 0x00
	relY      = 0x01
	relHWheel = 0x06
	relWheel  = 0x08

	btnMouse    = 0x110
	btnLeft     = 0x110
	btnRight    = 0x111
	btnMiddle   = 0x112
	btnJoystick = 0x120
	btnDigi     = 0x140
)

// key values
const (
	keyReleased = 0
	keyPressed  = 1
	keyRepeat   = 2
)

// names of keyboard keys. names are the same as those used by the SDL
// backend
var keyNames = map[uint16]string{
	1: "Escape", 14: "Backspace", 15: "Tab", 28: "Return", 57: "Space",
	12: "-", 13: "=", 26: "[", 27: "]", 39: ";", 40: "'", 41: "`", 43: "\\",
	51: ",", 52: ".", 53: "/",
	29: "Left Ctrl", 42: "Left Shift", 54: "Right Shift", 56: "Left Alt",
	58: "CapsLock", 97: "Right Ctrl", 100: "Right Alt", 96: "Keypad Enter",
	103: "Up", 105: "Left", 106: "Right", 108: "Down",
}

func init() {
	for i, c := range "1234567890" {
		keyNames[uint16(2+i)] = string(c)
	}
	for i, c := range "QWERTYUIOP" {
		keyNames[uint16(16+i)] = string(c)
	}
	for i, c := range "ASDFGHJKL" {
		keyNames[uint16(30+i)] = string(c)
	}
	for i, c := range "ZXCVBNM" {
		keyNames[uint16(44+i)] = string(c)
	}
	for i := range 10 {
		keyNames[uint16(59+i)] = fmt.Sprintf("F%d", i+1)
	}
}

// KeyName returns the name of the key with the evdev key code.
func KeyName(code uint16) string {
	if n, ok := keyNames[code]; ok {
		return n
	}
	return fmt.Sprintf("Key %d", code)
}

// mouse buttons are numbered in the same way as the SDL backend
func mouseButton(code uint16) (int, bool) {
	switch code {
	case btnLeft:
		return 1, true
	case btnMiddle:
		return 2, true
	case btnRight:
		return 3, true
	}
	if code > btnRight && code < btnJoystick {
		return int(code-btnMouse) + 1, true
	}
	return 0, false
}
