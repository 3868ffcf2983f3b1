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

package sdlbackend

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/chronostim/chronostim/backend"
	"github.com/chronostim/chronostim/timing"
)

// PollEvents implements the backend.EventSource interface.
//
// SDL does not report when an event happened with any useful precision so
// every event is stamped with the time of the previous poll and an
// uncertainty covering the time since then.
func (b *Backend) PollEvents(deliver func(backend.Event)) error {
	now := b.clk.Now()
	ts := timing.Timestamp{Time: b.lastPoll, MaxLatency: now - b.lastPoll}
	b.lastPoll = now

	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		if e, ok := b.translate(ev); ok {
			e.Timestamp = ts
			deliver(e)
		}
	}

	return nil
}

// returns false if the SDL event has no equivalent
func (b *Backend) translate(ev sdl.Event) (backend.Event, bool) {
	switch ev := ev.(type) {
	case *sdl.QuitEvent:
		return backend.Event{Kind: backend.QuitEvent}, true

	case *sdl.KeyboardEvent:
		// auto-repeat is not a change of state
		if ev.Repeat != 0 {
			return backend.Event{}, false
		}
		return backend.Event{
			Kind:    backend.KeyEvent,
			Name:    sdl.GetKeyName(ev.Keysym.Sym),
			Pressed: ev.Type == sdl.KEYDOWN,
		}, true

	case *sdl.MouseButtonEvent:
		return backend.Event{
			Kind:    backend.MouseButtonEvent,
			Index:   int(ev.Button),
			Pressed: ev.State == sdl.PRESSED,
		}, true

	case *sdl.MouseMotionEvent:
		return backend.Event{
			Kind: backend.MouseMotionEvent,
			Pos:  [2]float64{float64(ev.X), float64(ev.Y)},
			Rel:  [2]float64{float64(ev.XRel), float64(ev.YRel)},
		}, true

	case *sdl.JoyButtonEvent:
		return backend.Event{
			Kind:    backend.JoyButtonEvent,
			Device:  b.joystickIndex(ev.Which),
			Index:   int(ev.Button),
			Pressed: ev.State == sdl.PRESSED,
		}, true

	case *sdl.JoyAxisEvent:
		return backend.Event{
			Kind:   backend.JoyAxisEvent,
			Device: b.joystickIndex(ev.Which),
			Index:  int(ev.Axis),
			Value:  normaliseAxis(ev.Value),
		}, true

	case *sdl.JoyBallEvent:
		return backend.Event{
			Kind:   backend.JoyBallEvent,
			Device: b.joystickIndex(ev.Which),
			Index:  int(ev.Ball),
			Rel:    [2]float64{float64(ev.XRel), float64(ev.YRel)},
		}, true

	case *sdl.JoyHatEvent:
		return backend.Event{
			Kind:   backend.JoyHatEvent,
			Device: b.joystickIndex(ev.Which),
			Index:  int(ev.Hat),
			Hat:    hatPosition(ev.Value),
		}, true
	}

	return backend.Event{}, false
}

// joystick events identify the device by its instance ID. the index in the
// list of opened joysticks is more useful
func (b *Backend) joystickIndex(id sdl.JoystickID) int {
	for i, joy := range b.joysticks {
		if joy.InstanceID() == id {
			return i
		}
	}
	return int(id)
}

// SDL axis values are in the range -32768 to 32767
func normaliseAxis(v int16) float64 {
	if v < 0 {
		return float64(v) / 32768
	}
	return float64(v) / 32767
}

func hatPosition(v uint8) backend.HatPosition {
	var h backend.HatPosition
	if v&sdl.HAT_LEFT != 0 {
		h.X = -1
	}
	if v&sdl.HAT_RIGHT != 0 {
		h.X = 1
	}
	if v&sdl.HAT_UP != 0 {
		h.Y = -1
	}
	if v&sdl.HAT_DOWN != 0 {
		h.Y = 1
	}
	return h
}
