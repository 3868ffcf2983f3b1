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

//go:build !linux

package timing

import (
	"time"
)

// SystemClock measures time from the moment the clock was created using the
// monotonic component of time.Time.
type SystemClock struct {
	epoch time.Time
}

// NewSystemClock is the preferred method of initialisation for the
// SystemClock type.
func NewSystemClock() *SystemClock {
	return &SystemClock{epoch: time.Now()}
}

// Now implements the WallClock interface.
func (clk *SystemClock) Now() int64 {
	return time.Since(clk.epoch).Milliseconds()
}
