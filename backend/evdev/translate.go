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
	"github.com/chronostim/chronostim/backend"
	"github.com/chronostim/chronostim/timing"
)

// InputEvent is a single evdev event as read from a device.
type InputEvent struct {
	// kernel time of the event in milliseconds
	Time int64

	Type  uint16
	Code  uint16
	Value int32
}

// AbsRange is the range of values reported by an absolute axis.
type AbsRange struct {
	Min int32
	Max int32
}

// normalise the value to the range -1.0 to 1.0
func (r AbsRange) normalise(v int32) float64 {
	if r.Max <= r.Min {
		return 0
	}
	f := 2*float64(v-r.Min)/float64(r.Max-r.Min) - 1
	return max(-1, min(1, f))
}

// translator turns evdev events into backend events. Relative motion is
// held until the end of the packet.
type translator struct {
	// index of the device when it is delivering joystick events
	index int

	// size of the display. the absolute mouse position is clamped to the
	// display
	width  float64
	height float64

	pos [2]float64
	rel [2]float64

	wheel [2]float64

	// range of each absolute axis
	abs map[uint16]AbsRange

	// called when an absolute axis is seen for the first time
	queryAbs func(code uint16) (AbsRange, bool)
}

func newTranslator(index int, width, height int) translator {
	return translator{
		index:  index,
		width:  float64(width),
		height: float64(height),
		pos:    [2]float64{float64(width) / 2, float64(height) / 2},
		abs:    make(map[uint16]AbsRange),
	}
}

func (tr *translator) absRange(code uint16) (AbsRange, bool) {
	if r, ok := tr.abs[code]; ok {
		return r, true
	}
	if tr.queryAbs == nil {
		return AbsRange{}, false
	}
	r, ok := tr.queryAbs(code)
	if ok {
		tr.abs[code] = r
	}
	return r, ok
}

// translate the event, delivering zero or more backend events. the
// timestamp is applied to every event delivered
func (tr *translator) translate(ev InputEvent, ts timing.Timestamp, deliver func(backend.Event)) {
	switch ev.Type {
	case evSyn:
		if ev.Code == synReport {
			tr.flush(ts, deliver)
		}

	case evKey:
		if ev.Value == keyRepeat {
			return
		}
		pressed := ev.Value == keyPressed

		if b, ok := mouseButton(ev.Code); ok {
			deliver(backend.Event{
				Kind:      backend.MouseButtonEvent,
				Index:     b,
				Pressed:   pressed,
				Timestamp: ts,
			})
			return
		}

		if ev.Code >= btnJoystick && ev.Code < btnDigi {
			deliver(backend.Event{
				Kind:      backend.JoyButtonEvent,
				Device:    tr.index,
				Index:     int(ev.Code - btnJoystick),
				Pressed:   pressed,
				Timestamp: ts,
			})
			return
		}

		if ev.Code >= btnMouse {
			// other button types are not supported
			return
		}

		deliver(backend.Event{
			Kind:      backend.KeyEvent,
			Name:      KeyName(ev.Code),
			Pressed:   pressed,
			Timestamp: ts,
		})

	case evRel:
		switch ev.Code {
		case relX:
			tr.rel[0] += float64(ev.Value)
		case relY:
			tr.rel[1] += float64(ev.Value)
		case relHWheel:
			tr.wheel[0] += float64(ev.Value)
		case relWheel:
			tr.wheel[1] += float64(ev.Value)
		}

	case evAbs:
		r, ok := tr.absRange(ev.Code)
		if !ok {
			return
		}
		deliver(backend.Event{
			Kind:      backend.JoyAxisEvent,
			Device:    tr.index,
			Index:     int(ev.Code),
			Value:     r.normalise(ev.Value),
			Timestamp: ts,
		})
	}
}

func (tr *translator) flush(ts timing.Timestamp, deliver func(backend.Event)) {
	if tr.rel != [2]float64{} {
		tr.pos[0] = max(0, min(tr.width, tr.pos[0]+tr.rel[0]))
		tr.pos[1] = max(0, min(tr.height, tr.pos[1]+tr.rel[1]))
		deliver(backend.Event{
			Kind:      backend.MouseMotionEvent,
			Pos:       tr.pos,
			Rel:       tr.rel,
			Timestamp: ts,
		})
		tr.rel = [2]float64{}
	}

	if tr.wheel != [2]float64{} {
		deliver(backend.Event{
			Kind:      backend.JoyBallEvent,
			Device:    tr.index,
			Rel:       tr.wheel,
			Timestamp: ts,
		})
		tr.wheel = [2]float64{}
	}
}
