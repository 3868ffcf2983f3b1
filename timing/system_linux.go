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

package timing

import (
	"golang.org/x/sys/unix"
)

// SystemClock reads CLOCK_MONOTONIC. This is the same clock used by the
// kernel to timestamp evdev input events, once the device has been told to
// use it.
type SystemClock struct{}

// NewSystemClock is the preferred method of initialisation for the
// SystemClock type.
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Now implements the WallClock interface.
func (clk *SystemClock) Now() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		// CLOCK_MONOTONIC is always available on linux
		panic(err)
	}
	return FromTimespec(int64(ts.Sec), int64(ts.Nsec))
}
