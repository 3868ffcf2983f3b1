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

//go:build linux

package evdev

import (
	"encoding/binary"
	"testing"

	"github.com/chronostim/chronostim/backend"
	"github.com/chronostim/chronostim/test"
	"github.com/chronostim/chronostim/timing"
)

func collect(tr *translator, evs ...InputEvent) []backend.Event {
	var out []backend.Event
	for _, ev := range evs {
		tr.translate(ev, timing.At(ev.Time), func(e backend.Event) {
			out = append(out, e)
		})
	}
	return out
}

func TestKeys(t *testing.T) {
	tr := newTranslator(0, 800, 600)
	out := collect(&tr,
		InputEvent{Time: 10, Type: evKey, Code: 57, Value: keyPressed},
		InputEvent{Time: 10, Type: evSyn, Code: synReport},
		InputEvent{Time: 30, Type: evKey, Code: 57, Value: keyRepeat},
		InputEvent{Time: 50, Type: evKey, Code: 57, Value: keyReleased},
		InputEvent{Time: 60, Type: evKey, Code: 30, Value: keyPressed},
	)

	test.DemandEquality(t, len(out), 3)
	test.ExpectEquality(t, out[0].Kind, backend.KeyEvent)
	test.ExpectEquality(t, out[0].Name, "Space")
	test.ExpectSuccess(t, out[0].Pressed)
	test.ExpectEquality(t, out[0].Timestamp, timing.Timestamp{Time: 10})
	test.ExpectFailure(t, out[1].Pressed)
	test.ExpectEquality(t, out[1].Timestamp.Time, int64(50))
	test.ExpectEquality(t, out[2].Name, "A")

	test.ExpectEquality(t, KeyName(59), "F1")
	test.ExpectEquality(t, KeyName(11), "0")
	test.ExpectEquality(t, KeyName(500), "Key 500")
}

func TestButtons(t *testing.T) {
	tr := newTranslator(2, 800, 600)
	out := collect(&tr,
		InputEvent{Type: evKey, Code: btnRight, Value: keyPressed},
		InputEvent{Type: evKey, Code: btnJoystick + 3, Value: keyPressed},
		InputEvent{Type: evKey, Code: btnDigi, Value: keyPressed},
	)

	test.DemandEquality(t, len(out), 2)
	test.ExpectEquality(t, out[0].Kind, backend.MouseButtonEvent)
	test.ExpectEquality(t, out[0].Index, 3)
	test.ExpectEquality(t, out[1].Kind, backend.JoyButtonEvent)
	test.ExpectEquality(t, out[1].Device, 2)
	test.ExpectEquality(t, out[1].Index, 3)
}

func TestMotion(t *testing.T) {
	tr := newTranslator(0, 800, 600)

	// motion is delivered once per packet
	out := collect(&tr,
		InputEvent{Type: evRel, Code: relX, Value: 10},
		InputEvent{Type: evRel, Code: relY, Value: -5},
		InputEvent{Type: evRel, Code: relX, Value: 2},
		InputEvent{Type: evSyn, Code: synReport},
	)
	test.DemandEquality(t, len(out), 1)
	test.ExpectEquality(t, out[0].Kind, backend.MouseMotionEvent)
	test.ExpectEquality(t, out[0].Rel, [2]float64{12, -5})
	test.ExpectEquality(t, out[0].Pos, [2]float64{412, 295})

	// the position is limited by the size of the display
	out = collect(&tr,
		InputEvent{Type: evRel, Code: relX, Value: 1000},
		InputEvent{Type: evRel, Code: relWheel, Value: -1},
		InputEvent{Type: evSyn, Code: synReport},
	)
	test.DemandEquality(t, len(out), 2)
	test.ExpectEquality(t, out[0].Pos, [2]float64{800, 295})
	test.ExpectEquality(t, out[1].Kind, backend.JoyBallEvent)
	test.ExpectEquality(t, out[1].Rel, [2]float64{0, -1})

	// an empty packet delivers nothing
	out = collect(&tr, InputEvent{Type: evSyn, Code: synReport})
	test.ExpectEquality(t, len(out), 0)
}

func TestAbsolute(t *testing.T) {
	tr := newTranslator(1, 800, 600)
	var queries int
	tr.queryAbs = func(code uint16) (AbsRange, bool) {
		queries++
		if code == 5 {
			return AbsRange{}, false
		}
		return AbsRange{Min: 0, Max: 255}, true
	}

	out := collect(&tr,
		InputEvent{Type: evAbs, Code: 0, Value: 0},
		InputEvent{Type: evAbs, Code: 0, Value: 255},
		InputEvent{Type: evAbs, Code: 5, Value: 100},
	)
	test.DemandEquality(t, len(out), 2)
	test.ExpectEquality(t, out[0].Kind, backend.JoyAxisEvent)
	test.ExpectEquality(t, out[0].Device, 1)
	test.ExpectEquality(t, out[0].Value, -1.0)
	test.ExpectEquality(t, out[1].Value, 1.0)

	// the range of axis 0 is only queried once
	test.ExpectEquality(t, queries, 2)

	test.ExpectApproximate(t, AbsRange{Min: -100, Max: 100}.normalise(50), 0.5, 0.0001)
	test.ExpectEquality(t, AbsRange{}.normalise(50), 0.0)
}

func TestParseEvents(t *testing.T) {
	buf := make([]byte, eventSize*2+5)
	put := func(p []byte, sec, usec int64, typ, code uint16, value int32) {
		if eventSize == 24 {
			binary.NativeEndian.PutUint64(p[0:], uint64(sec))
			binary.NativeEndian.PutUint64(p[8:], uint64(usec))
		} else {
			binary.NativeEndian.PutUint32(p[0:], uint32(sec))
			binary.NativeEndian.PutUint32(p[4:], uint32(usec))
		}
		q := p[eventSize-8:]
		binary.NativeEndian.PutUint16(q[0:], typ)
		binary.NativeEndian.PutUint16(q[2:], code)
		binary.NativeEndian.PutUint32(q[4:], uint32(value))
	}
	put(buf, 12, 345678, evKey, 57, keyPressed)
	put(buf[eventSize:], 12, 400000, evRel, relY, -3)

	evs := ParseEvents(buf)
	test.DemandEquality(t, len(evs), 2)
	test.ExpectEquality(t, evs[0], InputEvent{Time: 12345, Type: evKey, Code: 57, Value: keyPressed})
	test.ExpectEquality(t, evs[1].Time, int64(12400))
	test.ExpectEquality(t, evs[1].Value, int32(-3))
}
