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

//go:build linux || darwin

package termin

import (
	"errors"
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"github.com/chronostim/chronostim/timing"
)

// NewKeyboard creates a Keyboard that reads from the terminal. The terminal
// is put into raw mode and non-blocking input until Close() is called.
func NewKeyboard(f *os.File, clk timing.WallClock) (*Keyboard, error) {
	fd := f.Fd()

	var canAttr unix.Termios
	if err := termios.Tcgetattr(fd, &canAttr); err != nil {
		return nil, fmt.Errorf("termin: %w", err)
	}

	rawAttr := canAttr
	termios.Cfmakeraw(&rawAttr)

	// raw mode disables output processing too. keep it so that log output
	// remains readable
	rawAttr.Oflag |= unix.OPOST

	if err := termios.Tcsetattr(fd, termios.TCSANOW, &rawAttr); err != nil {
		return nil, fmt.Errorf("termin: %w", err)
	}

	if err := unix.SetNonblock(int(fd), true); err != nil {
		_ = termios.Tcsetattr(fd, termios.TCSANOW, &canAttr)
		return nil, fmt.Errorf("termin: %w", err)
	}

	// discard anything typed before the keyboard was created
	_ = termios.Tcflush(fd, termios.TCIFLUSH)

	kbd := &Keyboard{
		clk: clk,
		read: func(p []byte) (int, error) {
			n, err := unix.Read(int(fd), p)
			return max(n, 0), err
		},
		buf:      make([]byte, 64),
		lastPoll: clk.Now(),
	}
	kbd.close = func() error {
		return errors.Join(
			unix.SetNonblock(int(fd), false),
			termios.Tcsetattr(fd, termios.TCSANOW, &canAttr),
		)
	}

	return kbd, nil
}

func wouldBlock(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK)
}
