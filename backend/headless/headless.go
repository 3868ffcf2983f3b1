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

// Package headless is a backend with no window, no devices and no real
// clock. Time only moves when the timing core polls for events or swaps the
// display, which makes every run of a session with the same script exactly
// reproducible.
//
// Events are scripted with Schedule() (or the Key(), Button() helpers) and
// are delivered by the first poll at or after their timestamp.
package headless

import (
	"sort"

	"github.com/chronostim/chronostim/backend"
	"github.com/chronostim/chronostim/timing"
)

// default values for new Backend instances
const (
	DefaultPollStep = 1
	DefaultRefresh  = 16
)

// Draw is a single drawable drawn between swaps.
type Draw struct {
	Name string
	X, Y int
}

// Swap records a single call to Swap().
type Swap struct {
	Blocking  bool
	Timestamp timing.Timestamp

	// the background colour of the frame and everything drawn on top of it
	Background backend.Color
	Draws      []Draw
}

// Audio records a single call to QueueAudio().
type Audio struct {
	At         int64
	Samples    int
	SampleRate int
	Channels   int
}

// Backend implements the backend.Backend and backend.AudioSink interfaces.
type Backend struct {
	now int64

	// PollStep is the number of milliseconds that pass during each poll
	PollStep int64

	// Refresh is the display refresh period in milliseconds. A blocking swap
	// completes at the next multiple of the period.
	Refresh int64

	// SwapCost is the number of milliseconds taken by a non-blocking swap.
	SwapCost int64

	width  int
	height int

	script []backend.Event

	background backend.Color
	frame      []Draw

	// Swaps is the list of every swap made, in order
	Swaps []Swap

	// Audio is the list of every call to QueueAudio()
	Audio []Audio

	// Polls is the number of calls to PollEvents()
	Polls int

	// PollErr is returned by the next call to PollEvents() if it is not nil
	PollErr error

	destroyed bool
}

// NewBackend is the preferred method of initialisation for the Backend type.
func NewBackend(width int, height int) *Backend {
	return &Backend{
		PollStep:   DefaultPollStep,
		Refresh:    DefaultRefresh,
		width:      width,
		height:     height,
		background: backend.Black,
	}
}

// Now implements the timing.WallClock interface.
func (b *Backend) Now() int64 {
	return b.now
}

// Advance moves the clock forward without polling.
func (b *Backend) Advance(ms int64) {
	if ms > 0 {
		b.now += ms
	}
}

// Schedule an event. The event is delivered by the first poll at or after
// the time in the event's timestamp. Events with the same time are
// delivered in the order they were scheduled.
func (b *Backend) Schedule(ev backend.Event) {
	i := sort.Search(len(b.script), func(i int) bool {
		return b.script[i].Timestamp.Time > ev.Timestamp.Time
	})
	b.script = append(b.script, backend.Event{})
	copy(b.script[i+1:], b.script[i:])
	b.script[i] = ev
}

// Pending returns the number of scheduled events that have not been
// delivered.
func (b *Backend) Pending() int {
	return len(b.script)
}

// Key schedules a keyboard event.
func (b *Backend) Key(at int64, name string, pressed bool) {
	b.Schedule(backend.Event{
		Kind:      backend.KeyEvent,
		Name:      name,
		Pressed:   pressed,
		Timestamp: timing.At(at),
	})
}

// KeyStroke schedules a key press and a key release.
func (b *Backend) KeyStroke(at int64, name string, duration int64) {
	b.Key(at, name, true)
	b.Key(at+duration, name, false)
}

// JoyAxis schedules a joystick axis event.
func (b *Backend) JoyAxis(at int64, device int, axis int, value float64) {
	b.Schedule(backend.Event{
		Kind:      backend.JoyAxisEvent,
		Device:    device,
		Index:     axis,
		Value:     value,
		Timestamp: timing.At(at),
	})
}

// MouseMotion schedules a mouse motion event.
func (b *Backend) MouseMotion(at int64, x, y float64, dx, dy float64) {
	b.Schedule(backend.Event{
		Kind:      backend.MouseMotionEvent,
		Pos:       [2]float64{x, y},
		Rel:       [2]float64{dx, dy},
		Timestamp: timing.At(at),
	})
}

// PollEvents implements the backend.EventSource interface.
func (b *Backend) PollEvents(deliver func(backend.Event)) error {
	if b.PollErr != nil {
		err := b.PollErr
		b.PollErr = nil
		return err
	}

	b.Polls++
	b.now += b.PollStep

	n := 0
	for n < len(b.script) && b.script[n].Timestamp.Time <= b.now {
		n++
	}
	due := b.script[:n]
	b.script = b.script[n:]

	for _, ev := range due {
		deliver(ev)
	}

	return nil
}

// Size implements the backend.Display interface.
func (b *Backend) Size() (int, int) {
	return b.width, b.height
}

// Clear implements the backend.Display interface.
func (b *Backend) Clear(col backend.Color) {
	b.background = col
	b.frame = b.frame[:0]
}

// Swap implements the backend.Display interface.
func (b *Backend) Swap(blocking bool) (timing.Timestamp, error) {
	start := b.now
	if blocking && b.Refresh > 0 {
		b.now = (b.now/b.Refresh + 1) * b.Refresh
	} else {
		b.now += b.SwapCost
	}

	s := Swap{
		Blocking:   blocking,
		Timestamp:  timing.Timestamp{Time: start, MaxLatency: b.now - start},
		Background: b.background,
		Draws:      append([]Draw(nil), b.frame...),
	}
	b.Swaps = append(b.Swaps, s)
	b.frame = b.frame[:0]

	return s.Timestamp, nil
}

// QueueAudio implements the backend.AudioSink interface.
func (b *Backend) QueueAudio(data []int16, sampleRate int, channels int) error {
	b.Audio = append(b.Audio, Audio{
		At:         b.now,
		Samples:    len(data),
		SampleRate: sampleRate,
		Channels:   channels,
	})
	return nil
}

// StopAudio implements the backend.AudioSink interface.
func (b *Backend) StopAudio() error {
	return nil
}

// Destroy implements the backend.Backend interface.
func (b *Backend) Destroy() error {
	b.destroyed = true
	return nil
}

// Destroyed returns true if Destroy() has been called.
func (b *Backend) Destroyed() bool {
	return b.destroyed
}
