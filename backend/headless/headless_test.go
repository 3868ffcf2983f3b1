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

package headless_test

import (
	"errors"
	"testing"

	"github.com/chronostim/chronostim/backend"
	"github.com/chronostim/chronostim/backend/headless"
	"github.com/chronostim/chronostim/test"
	"github.com/chronostim/chronostim/timing"
)

func TestScript(t *testing.T) {
	b := headless.NewBackend(800, 600)
	b.Key(3, "B", true)
	b.Key(2, "A", true)
	b.Key(3, "C", true)

	var got []string
	deliver := func(ev backend.Event) {
		got = append(got, ev.Name)
	}

	test.DemandSuccess(t, b.PollEvents(deliver))
	test.ExpectEquality(t, b.Now(), int64(1))
	test.ExpectEquality(t, len(got), 0)

	test.DemandSuccess(t, b.PollEvents(deliver))
	test.DemandEquality(t, len(got), 1)
	test.ExpectEquality(t, got[0], "A")

	test.DemandSuccess(t, b.PollEvents(deliver))
	test.DemandEquality(t, len(got), 3)
	test.ExpectEquality(t, got[1], "B")
	test.ExpectEquality(t, got[2], "C")
	test.ExpectEquality(t, b.Pending(), 0)

	b.PollErr = errors.New("device gone")
	test.ExpectFailure(t, b.PollEvents(deliver))
	test.ExpectSuccess(t, b.PollEvents(deliver))
}

func TestSwap(t *testing.T) {
	b := headless.NewBackend(800, 600)
	b.Refresh = 10
	b.Advance(3)

	bx := b.NewBox("target", 10, 10)
	bx.Show(5, 6)

	ts, err := b.Swap(true)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ts, timing.Timestamp{Time: 3, MaxLatency: 7})
	test.ExpectEquality(t, b.Now(), int64(10))

	// swapping exactly on a refresh boundary waits for the next one
	ts, err = b.Swap(true)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ts, timing.Timestamp{Time: 10, MaxLatency: 10})

	b.SwapCost = 2
	ts, err = b.Swap(false)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ts, timing.Timestamp{Time: 20, MaxLatency: 2})

	test.DemandEquality(t, len(b.Swaps), 3)
	test.DemandEquality(t, len(b.Swaps[0].Draws), 1)
	test.ExpectEquality(t, b.Swaps[0].Draws[0], headless.Draw{Name: "target", X: 5, Y: 6})
	test.ExpectEquality(t, len(b.Swaps[1].Draws), 0)
}
