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

package video_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/chronostim/chronostim/backend"
	"github.com/chronostim/chronostim/logger"
	"github.com/chronostim/chronostim/presentation"
	"github.com/chronostim/chronostim/test"
	"github.com/chronostim/chronostim/timing"
	"github.com/chronostim/chronostim/video"
)

func TestUpdateSnapshot(t *testing.T) {
	f := newFixture(t)
	f.trk.Show(f.b.NewBox("a", 10, 10), 0, 0)
	f.trk.Show(f.b.NewBox("b", 10, 10), 5, 5)

	_, ok, err := f.trk.UpdateScreen()
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, ok)
	first := f.trk.Onscreen()

	_, _, err = f.trk.UpdateScreen()
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, slices.Equal(first, f.trk.Onscreen()))
	test.ExpectEquality(t, len(first), 2)

	// changes to the pending list do not affect the onscreen list until the
	// next update
	f.trk.Clear(false)
	test.ExpectEquality(t, len(f.trk.Onscreen()), 2)
}

func TestBlockingSwap(t *testing.T) {
	f := newFixture(t)
	f.trk.Show(f.b.NewBox("a", 10, 10), 0, 0)

	// refresh period is 16ms and the swap starts at time zero
	ts, ok, err := f.trk.UpdateScreen()
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, ts, timing.Timestamp{Time: 15, MaxLatency: 1})
	test.ExpectEquality(t, f.trk.LastUpdated(), ts)

	test.DemandEquality(t, len(f.b.Swaps), 1)
	test.ExpectSuccess(t, f.b.Swaps[0].Blocking)
	test.ExpectEquality(t, f.b.Swaps[0].Background, backend.Black)
	test.DemandEquality(t, len(f.b.Swaps[0].Draws), 1)
	test.ExpectEquality(t, f.b.Swaps[0].Draws[0].Name, "a")

	// the adjustment is a preference
	test.DemandSuccess(t, f.env.Prefs.SwapAdjust.Set(4))
	ts, _, err = f.trk.UpdateScreen()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ts, timing.Timestamp{Time: 28, MaxLatency: 4})
}

func TestNonBlockingSwap(t *testing.T) {
	f := newFixture(t)
	test.DemandSuccess(t, f.env.Prefs.SyncToVBL.Set(false))
	f.b.SwapCost = 2

	ts, _, err := f.trk.UpdateScreen(video.At(10))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ts, timing.Timestamp{Time: 10, MaxLatency: 2})
	test.ExpectSuccess(t, !f.b.Swaps[0].Blocking)
}

func TestUpdateWithClock(t *testing.T) {
	f := newFixture(t)
	f.trk.Show(f.b.NewBox("a", 10, 10), 0, 0)

	_, _, err := f.trk.UpdateScreen()
	test.DemandSuccess(t, err)

	clk := presentation.NewClock(f.env, f.pump)
	test.ExpectEquality(t, clk.Get(), int64(16))
	clk.Delay(100)

	// requested 116, the next vertical blank is at 128
	ts, _, err := f.trk.UpdateScreen(video.WithClock(clk))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ts, timing.Timestamp{Time: 127, MaxLatency: 1})
	test.ExpectEquality(t, clk.Get(), int64(127))
	test.ExpectEquality(t, clk.AccumulatedError(), int64(11))
}

func TestSwapAdjustLimit(t *testing.T) {
	f := newFixture(t)
	f.trk.Show(f.b.NewBox("a", 10, 10), 0, 0)
	test.DemandSuccess(t, f.env.Prefs.SwapAdjust.Set(4))

	clk := presentation.NewClock(f.env, f.pump)
	clk.TareAt(31)

	// the swap starts at 31 and the vertical blank is at 32. an adjustment
	// larger than the measured 1ms is limited to the measurement
	ts, _, err := f.trk.UpdateScreen(video.WithClock(clk))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ts, timing.Timestamp{Time: 31, MaxLatency: 1})
	test.ExpectEquality(t, clk.Get(), int64(31))
	test.ExpectEquality(t, clk.AccumulatedError(), int64(0))
}

func TestMaximumFramerate(t *testing.T) {
	f := newFixture(t)
	f.trk.SetMaximumFramerate(10)

	ts, _, err := f.trk.UpdateScreen()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ts.Time, int64(15))

	// the next frame can be no earlier than 100ms after the last
	ts, _, err = f.trk.UpdateScreen()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ts, timing.Timestamp{Time: 127, MaxLatency: 1})

	f.trk.SetMaximumFramerate(0)
	ts, _, err = f.trk.UpdateScreen()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ts.Time, int64(143))
}

func TestActiveDrawable(t *testing.T) {
	f := newFixture(t)
	box := f.b.NewBox("a", 10, 10)
	box.Active = true
	f.trk.Show(box, 0, 0)

	ts, ok, err := f.trk.UpdateScreen()
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, ts, timing.Timestamp{})
	test.ExpectEquality(t, len(f.b.Swaps), 0)
	test.ExpectEquality(t, len(f.trk.Onscreen()), 1)

	_, ok, err = f.trk.UpdateScreen(video.Force())
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, len(f.b.Swaps), 1)
}

func TestUpdateLog(t *testing.T) {
	f := newFixture(t)
	f.trk.Show(f.b.NewBox("a", 10, 20), 1, 2)
	f.trk.Show(f.b.NewBox("b", 5, 5), 3, 4)

	ts, _, err := f.trk.UpdateScreen()
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, strings.Join(f.log.messages(), "\n"), strings.Join([]string{
		"R\t800\t600\tWindow",
		"D\t0/2\t0\t0\tUPDATE",
		"D\t1/2\t1\t2\tBOX\ta\t10x20",
		"D\t2/2\t3\t4\tBOX\tb\t5x5",
	}, "\n"))

	for _, r := range (*f.log)[1:] {
		test.ExpectEquality(t, r.Timestamp, ts)
		test.ExpectEquality(t, r.Source, "video")
	}
}

func TestUpdateCallbacks(t *testing.T) {
	f := newFixture(t)

	var seen []timing.Timestamp
	id := f.trk.AddUpdateCallback(func(ts timing.Timestamp) {
		seen = append(seen, ts)
	})

	var after int
	f.trk.DoAfterUpdate(func() {
		after++
	})

	ts, _, err := f.trk.UpdateScreen()
	test.DemandSuccess(t, err)
	_, _, err = f.trk.UpdateScreen()
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, after, 1)
	test.DemandEquality(t, len(seen), 2)
	test.ExpectEquality(t, seen[0], ts)

	test.ExpectSuccess(t, f.trk.RemoveUpdateCallback(id))
	test.ExpectFailure(t, f.trk.RemoveUpdateCallback(id))
	_, _, err = f.trk.UpdateScreen()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(seen), 2)
}

func TestUpdateError(t *testing.T) {
	f := newFixture(t)
	f.b.Advance(5)
	f.b.PollErr = errors.New("device gone")

	_, ok, err := f.trk.UpdateScreen(video.At(50))
	test.ExpectFailure(t, err)
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, len(f.b.Swaps), 0)
}

func TestRenderLoop(t *testing.T) {
	logger.Clear()

	f := newFixture(t)
	box := f.b.NewBox("a", 10, 10)
	box.Active = true
	f.trk.Show(box, 0, 0)

	_, ok, err := f.trk.UpdateScreen()
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, ok)

	var frames int
	f.trk.AddUpdateCallback(func(ts timing.Timestamp) {
		frames++
		if frames == 2 {
			// stall for long enough to miss two vertical blanks
			f.trk.DoAfterUpdate(func() {
				f.b.Advance(40)
			})
		}
	})

	err = f.trk.RenderLoop(func(last timing.Timestamp) bool {
		return frames < 3
	})
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, frames, 3)
	test.ExpectEquality(t, box.Shown, 3)
	test.ExpectEquality(t, len(f.b.Swaps), 3)
	test.ExpectEquality(t, f.trk.LastUpdated(), timing.Timestamp{Time: 79, MaxLatency: 1})

	msgs := f.log.messages()
	test.ExpectEquality(t, msgs[1], "ENTERLOOP")
	test.ExpectEquality(t, msgs[len(msgs)-1], "EXITLOOP")

	var dropped bool
	logger.BorrowLog(func(entries []logger.Entry) {
		for _, e := range entries {
			if e.Tag == "video" && strings.Contains(e.Detail, "dropped frames") {
				dropped = true
			}
		}
	})
	test.ExpectSuccess(t, dropped)
}
