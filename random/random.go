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

package random

import (
	"math/rand"
	"time"
)

// Random is a seeded random number generator. It is not safe for concurrent
// use, in keeping with the single-threaded timing core.
type Random struct {
	seed int64
	rng  *rand.Rand
}

// NewRandom is the preferred method of initialisation for the Random type. A
// seed of zero means the seed is taken from the current time.
func NewRandom(seed int64) *Random {
	rnd := &Random{}
	rnd.Seed(seed)
	return rnd
}

// Seed restarts the sequence of random numbers. A seed of zero means the seed
// is taken from the current time.
func (rnd *Random) Seed(seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd.seed = seed
	rnd.rng = rand.New(rand.NewSource(seed))
}

// Normalise restarts the sequence with a fixed seed so that the numbers
// produced are the same every time.
func (rnd *Random) Normalise() {
	rnd.seed = 1
	rnd.rng = rand.New(rand.NewSource(rnd.seed))
}

// CurrentSeed returns the seed that started the current sequence. Useful for
// logging so that a session can be replayed.
func (rnd *Random) CurrentSeed() int64 {
	return rnd.seed
}

// Intn returns a number in the range [0, n). Returns zero if n <= 0.
func (rnd *Random) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return rnd.rng.Intn(n)
}

// IntRange returns a number in the inclusive range [low, high]. The
// arguments are swapped if high is less than low.
func (rnd *Random) IntRange(low, high int64) int64 {
	if high < low {
		low, high = high, low
	}
	return low + rnd.rng.Int63n(high-low+1)
}
