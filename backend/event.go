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

package backend

import (
	"fmt"

	"github.com/chronostim/chronostim/timing"
)

// EventKind identifies the type of raw event produced by a backend.
type EventKind int

// List of valid EventKind values.
const (
	KeyEvent EventKind = iota
	MouseButtonEvent
	MouseMotionEvent
	JoyButtonEvent
	JoyAxisEvent
	JoyBallEvent
	JoyHatEvent
	QuitEvent
)

func (k EventKind) String() string {
	switch k {
	case KeyEvent:
		return "key"
	case MouseButtonEvent:
		return "mouse button"
	case MouseMotionEvent:
		return "mouse motion"
	case JoyButtonEvent:
		return "joystick button"
	case JoyAxisEvent:
		return "joystick axis"
	case JoyBallEvent:
		return "joystick ball"
	case JoyHatEvent:
		return "joystick hat"
	case QuitEvent:
		return "quit"
	}
	return fmt.Sprintf("unknown event kind (%d)", int(k))
}

// Event is a single raw event from a device. Which fields are meaningful
// depends on the Kind:
//
//	KeyEvent:         Name, Pressed
//	MouseButtonEvent: Index (button), Pressed
//	MouseMotionEvent: Pos (absolute pixels), Rel (relative pixels)
//	JoyButtonEvent:   Device, Index (button), Pressed
//	JoyAxisEvent:     Device, Index (axis), Value (-1.0 to 1.0)
//	JoyBallEvent:     Device, Index (ball), Rel
//	JoyHatEvent:      Device, Index (hat), Hat
//
// The Timestamp of an event is always at or before the moment the event was
// delivered, and the uncertainty covers the time since the previous poll if
// the backend does not record the exact moment of the event.
type Event struct {
	Kind      EventKind
	Device    int
	Index     int
	Name      string
	Pressed   bool
	Value     float64
	Pos       [2]float64
	Rel       [2]float64
	Hat       HatPosition
	Timestamp timing.Timestamp
}

func (ev Event) String() string {
	switch ev.Kind {
	case KeyEvent:
		return fmt.Sprintf("%s %s pressed=%v @ %s", ev.Kind, ev.Name, ev.Pressed, ev.Timestamp)
	case MouseMotionEvent:
		return fmt.Sprintf("%s %v %v @ %s", ev.Kind, ev.Pos, ev.Rel, ev.Timestamp)
	case JoyAxisEvent:
		return fmt.Sprintf("%s %d/%d %.3f @ %s", ev.Kind, ev.Device, ev.Index, ev.Value, ev.Timestamp)
	case JoyBallEvent:
		return fmt.Sprintf("%s %d/%d %v @ %s", ev.Kind, ev.Device, ev.Index, ev.Rel, ev.Timestamp)
	case JoyHatEvent:
		return fmt.Sprintf("%s %d/%d %s @ %s", ev.Kind, ev.Device, ev.Index, ev.Hat, ev.Timestamp)
	}
	return fmt.Sprintf("%s %d/%d pressed=%v @ %s", ev.Kind, ev.Device, ev.Index, ev.Pressed, ev.Timestamp)
}

// HatPosition is the direction of a joystick hat. Each component is one of
// -1, 0 or 1. The centred position is {0, 0}.
type HatPosition struct {
	X int
	Y int
}

func (h HatPosition) String() string {
	return fmt.Sprintf("%d,%d", h.X, h.Y)
}

// Centred returns true if the hat is in the centre position.
func (h HatPosition) Centred() bool {
	return h.X == 0 && h.Y == 0
}
