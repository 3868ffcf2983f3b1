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

package video

// limiter enforces the maximum frame rate and measures the frame rate
// actually achieved.
type limiter struct {
	// the earliest a frame can follow the previous frame. zero means there
	// is no limit
	minFrameDuration int64

	// actual calculation
	actual         float32
	actualCt       int
	actualCtTarget int
	actualRefTime  int64

	// the shortest interval between frames seen since the last reset. used
	// as the floor for dropped frame detection when there is no frame rate
	// limit
	shortest int64
}

// default number of frames to count before measuring the frame rate
const fpsMinimumFrames = 50

// set maximum frame rate. zero or less means no limit
func (lmtr *limiter) setRate(fps int) {
	if fps <= 0 {
		lmtr.minFrameDuration = 0
		return
	}
	lmtr.minFrameDuration = 1000 / int64(fps)
}

// returns the earliest time a frame can be shown if the previous frame was
// shown at the specified time
func (lmtr *limiter) earliest(last int64, t int64) int64 {
	return max(t, last+lmtr.minFrameDuration)
}

// called at the start of a render loop
func (lmtr *limiter) reset(now int64) {
	lmtr.actualCt = 0
	lmtr.actualCtTarget = fpsMinimumFrames
	lmtr.actualRefTime = now
	lmtr.shortest = 0
}

// called every frame to calculate the actual frame rate being achieved.
// returns true if a new measurement is available
func (lmtr *limiter) measureActual(t int64) bool {
	lmtr.actualCt++
	if lmtr.actualCt < lmtr.actualCtTarget {
		return false
	}

	d := t - lmtr.actualRefTime
	if d <= 0 {
		return false
	}
	lmtr.actual = float32(lmtr.actualCt) * 1000 / float32(d)

	// remeasure roughly every second
	if lmtr.actual > fpsMinimumFrames {
		lmtr.actualCtTarget = int(lmtr.actual)
	} else {
		lmtr.actualCtTarget = fpsMinimumFrames
	}

	lmtr.actualRefTime = t
	lmtr.actualCt = 0

	return true
}

// returns true if the interval between two frames suggests that one or more
// frames were dropped
func (lmtr *limiter) dropped(interval int64) bool {
	if interval <= 0 {
		return false
	}

	floor := lmtr.minFrameDuration
	if lmtr.shortest == 0 || interval < lmtr.shortest {
		lmtr.shortest = interval
	}
	floor = max(floor, lmtr.shortest)

	return interval > floor*2
}
