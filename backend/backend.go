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
	"github.com/chronostim/chronostim/timing"
)

// EventSource implementations deliver raw device events. PollEvents must
// never block: it delivers whatever events are pending and returns.
type EventSource interface {
	PollEvents(deliver func(Event)) error
}

// Display is the rendering surface. Drawing is done by the drawables
// themselves between calls to Clear() and Swap().
type Display interface {
	// the size of the display in pixels
	Size() (int, int)

	// Clear the back buffer to the specified colour
	Clear(col Color)

	// Swap the back and front buffers. If blocking is true the call returns
	// only once the new frame has been committed to the screen. The returned
	// timestamp brackets the moment of the swap.
	Swap(blocking bool) (timing.Timestamp, error)
}

// AudioSink implementations accept 16 bit interleaved PCM data for
// immediate playback.
type AudioSink interface {
	QueueAudio(data []int16, sampleRate int, channels int) error
	StopAudio() error
}

// Backend is the combination of all the interfaces required to run a
// session. The AudioSink is optional and should be tested for with a type
// assertion.
type Backend interface {
	timing.WallClock
	EventSource
	Display
	Destroy() error
}

// Color is an RGBA colour.
type Color struct {
	R, G, B, A uint8
}

// Commonly used colours.
var (
	Black = Color{A: 255}
	White = Color{R: 255, G: 255, B: 255, A: 255}
)
