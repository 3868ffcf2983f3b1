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

package random_test

import (
	"testing"

	"github.com/chronostim/chronostim/random"
	"github.com/chronostim/chronostim/test"
)

func TestRandom(t *testing.T) {
	a := random.NewRandom(0)
	b := random.NewRandom(0)
	a.Normalise()
	b.Normalise()

	for i := 1; i < 256; i++ {
		test.ExpectEquality(t, a.Intn(i), b.Intn(i))
	}

	c := random.NewRandom(99)
	test.ExpectEquality(t, c.CurrentSeed(), int64(99))
}

func TestIntRange(t *testing.T) {
	rnd := random.NewRandom(42)

	var sawLow, sawHigh bool
	for range 1000 {
		v := rnd.IntRange(5, 8)
		test.DemandEquality(t, v >= 5 && v <= 8, true)
		sawLow = sawLow || v == 5
		sawHigh = sawHigh || v == 8
	}
	test.ExpectSuccess(t, sawLow)
	test.ExpectSuccess(t, sawHigh)

	test.ExpectEquality(t, rnd.IntRange(3, 3), int64(3))

	// swapped arguments
	v := rnd.IntRange(10, 0)
	test.ExpectSuccess(t, v >= 0 && v <= 10)
}
