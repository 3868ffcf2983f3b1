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

package presentation_test

import (
	"testing"

	"github.com/chronostim/chronostim/backend/headless"
	"github.com/chronostim/chronostim/environment"
	"github.com/chronostim/chronostim/eventpump"
	"github.com/chronostim/chronostim/presentation"
	"github.com/chronostim/chronostim/test"
)

func newClock(t *testing.T) (*presentation.Clock, *headless.Backend) {
	t.Helper()
	env, err := environment.NewEnvironment("test", nil)
	test.DemandSuccess(t, err)
	env.Normalise()

	b := headless.NewBackend(640, 480)
	b.Advance(1000)
	return presentation.NewClock(env, eventpump.NewPump(env, b, b)), b
}

func TestDelaySum(t *testing.T) {
	clk, _ := newClock(t)
	start := clk.Get()
	test.ExpectEquality(t, start, int64(1000))

	var sum int64
	for _, d := range []int64{10, 250, 0, 33, 17} {
		test.ExpectEquality(t, clk.Delay(d), d)
		sum += d
	}

	// correction is off so accumulated error has no effect
	clk.AccumulateError(40)
	test.ExpectEquality(t, clk.Delay(100), int64(100))
	sum += 100

	test.ExpectEquality(t, clk.Get(), start+sum)
	test.ExpectEquality(t, clk.AccumulatedError(), int64(40))
}

func TestErrorCorrection(t *testing.T) {
	clk, _ := newClock(t)
	clk.SetCorrectErrors(true)
	start := clk.Get()

	clk.AccumulateError(30)
	test.ExpectEquality(t, clk.Delay(100), int64(70))
	test.ExpectEquality(t, clk.AccumulatedError(), int64(0))
	test.ExpectEquality(t, clk.Get(), start+70)

	// more error than the delay can absorb
	clk.AccumulateError(30)
	test.ExpectEquality(t, clk.Delay(20), int64(0))
	test.ExpectEquality(t, clk.AccumulatedError(), int64(10))
	test.ExpectEquality(t, clk.Get(), start+70)

	// early completion lengthens the next delay
	clk.ResetAccumulatedError()
	clk.AccumulateError(-5)
	test.ExpectEquality(t, clk.Delay(10), int64(15))
}

func TestResolveOnce(t *testing.T) {
	clk, _ := newClock(t)
	clk.AccumulateError(25)
	test.ExpectEquality(t, clk.Delay(100, presentation.ResolveError()), int64(75))
	test.ExpectEquality(t, clk.AccumulatedError(), int64(0))
}

func TestJitter(t *testing.T) {
	clk, _ := newClock(t)
	for range 100 {
		start := clk.Get()
		d := clk.Delay(100, presentation.WithJitter(20))
		test.DemandEquality(t, d >= 100 && d <= 120, true)
		test.ExpectEquality(t, clk.Get(), start+d)
	}

	for range 100 {
		d := clk.Jitter(5, 10)
		test.DemandEquality(t, d >= 5 && d <= 10, true)
	}
}

func TestTareAndWait(t *testing.T) {
	clk, b := newClock(t)

	clk.Delay(50)
	test.DemandSuccess(t, clk.Wait())
	test.ExpectEquality(t, b.Now(), int64(1050))

	// waiting on a time already passed does not poll
	polls := b.Polls
	test.DemandSuccess(t, clk.Wait())
	test.ExpectEquality(t, b.Polls, polls)

	b.Advance(100)
	clk.Tare()
	test.ExpectEquality(t, clk.Get(), int64(1150))

	// virtual time never moves backwards
	clk.TareAt(1000)
	test.ExpectEquality(t, clk.Get(), int64(1150))
}
