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

package timing

// WallClock is a monotonic millisecond clock. The zero point is arbitrary
// but is the same for every component sharing the clock.
type WallClock interface {
	Now() int64
}

// Measure runs the function and returns a timestamp whose time is the moment
// the function was called and whose latency is how long the function took.
func Measure(clk WallClock, f func() error) (Timestamp, error) {
	start := clk.Now()
	err := f()
	end := clk.Now()
	return Timestamp{Time: start, MaxLatency: end - start}, err
}
