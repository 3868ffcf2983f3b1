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

// Package termin reads the keyboard from a terminal. The terminal is put
// into raw mode so that key strokes are delivered without waiting for the
// end of the line.
//
// A terminal reports characters, not key presses and releases, so each
// character is delivered as a press immediately followed by a release.
// Both events have the same timestamp.
//
// The keyboard has no display. It is combined with the display of another
// backend with backend.Compose().
package termin

import (
	"errors"
	"io"
	"strings"

	"github.com/chronostim/chronostim/backend"
	"github.com/chronostim/chronostim/timing"
)

// the control character that is treated as a request to quit
const interrupt = 0x03

// KeyName returns the name of the key that produces the character. Names
// match those used by the other backends.
func KeyName(c byte) string {
	switch c {
	case 0x08, 0x7f:
		return "Backspace"
	case 0x09:
		return "Tab"
	case 0x0a, 0x0d:
		return "Return"
	case 0x1b:
		return "Escape"
	case 0x20:
		return "Space"
	}
	if c < 0x20 {
		// control characters are reported as the letter
		return string(rune('A' + c - 1))
	}
	return strings.ToUpper(string(rune(c)))
}

// Keyboard is a backend.EventSource that reads characters.
type Keyboard struct {
	clk      timing.WallClock
	read     func(p []byte) (int, error)
	buf      []byte
	lastPoll int64
	eof      bool

	// restores the terminal
	close func() error
}

// NewReaderKeyboard creates a Keyboard that reads characters from the
// reader. Each poll reads from the reader once, so the reader should not
// block. Once the reader is exhausted the keyboard delivers no more events.
func NewReaderKeyboard(r io.Reader, clk timing.WallClock) *Keyboard {
	return &Keyboard{
		clk:      clk,
		read:     r.Read,
		buf:      make([]byte, 64),
		lastPoll: clk.Now(),
	}
}

// PollEvents implements the backend.EventSource interface.
func (kbd *Keyboard) PollEvents(deliver func(backend.Event)) error {
	now := kbd.clk.Now()
	ts := timing.Timestamp{Time: kbd.lastPoll, MaxLatency: now - kbd.lastPoll}
	kbd.lastPoll = now

	if kbd.eof {
		return nil
	}

	n, err := kbd.read(kbd.buf)
	for _, c := range kbd.buf[:n] {
		if c == interrupt {
			deliver(backend.Event{Kind: backend.QuitEvent, Timestamp: ts})
			continue
		}
		name := KeyName(c)
		deliver(backend.Event{Kind: backend.KeyEvent, Name: name, Pressed: true, Timestamp: ts})
		deliver(backend.Event{Kind: backend.KeyEvent, Name: name, Pressed: false, Timestamp: ts})
	}

	if err != nil {
		if errors.Is(err, io.EOF) {
			kbd.eof = true
			return nil
		}
		if wouldBlock(err) {
			return nil
		}
		return err
	}

	return nil
}

// Close restores the terminal to the state it was in when the keyboard was
// created. It is safe to call Close() more than once.
func (kbd *Keyboard) Close() error {
	if kbd.close == nil {
		return nil
	}
	f := kbd.close
	kbd.close = nil
	return f()
}
