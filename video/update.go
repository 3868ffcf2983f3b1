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

import (
	"slices"

	"github.com/chronostim/chronostim/backend"
	"github.com/chronostim/chronostim/logger"
	"github.com/chronostim/chronostim/timing"
)

// UpdateOption modifies the behaviour of UpdateScreen().
type UpdateOption func(*updateOptions)

type updateOptions struct {
	at    int64
	hasAt bool
	clk   Clock
	force bool
}

// At schedules the update for the specified wall time.
func At(t int64) UpdateOption {
	return func(o *updateOptions) {
		o.at = t
		o.hasAt = true
	}
}

// WithClock schedules the update for the clock's virtual time. After the
// update the clock accumulates the timing error and is tared to the time of
// the update.
func WithClock(clk Clock) UpdateOption {
	return func(o *updateOptions) {
		o.clk = clk
	}
}

// Force the update even if an active drawable is pending.
func Force() UpdateOption {
	return func(o *updateOptions) {
		o.force = true
	}
}

// AddUpdateCallback adds a function to be called with the timestamp of every
// frame shown.
func (trk *Track) AddUpdateCallback(f func(timing.Timestamp)) CallbackID {
	trk.nextID++
	trk.callbacks = append(trk.callbacks, updateCallback{id: trk.nextID, f: f})
	return trk.nextID
}

// RemoveUpdateCallback removes a function added with AddUpdateCallback().
// Returns false if there is no callback with that ID.
func (trk *Track) RemoveUpdateCallback(id CallbackID) bool {
	i := slices.IndexFunc(trk.callbacks, func(cb updateCallback) bool {
		return cb.id == id
	})
	if i == -1 {
		return false
	}
	trk.callbacks = slices.Delete(slices.Clone(trk.callbacks), i, i+1)
	return true
}

// DoAfterUpdate queues a function to be called once, immediately after the
// next frame is shown.
func (trk *Track) DoAfterUpdate(f func()) {
	trk.afterUpdate = append(trk.afterUpdate, f)
}

func (trk *Track) hasActive() bool {
	return slices.ContainsFunc(trk.onscreen, func(p Placement) bool {
		return p.Drawable.IsActive()
	})
}

// UpdateScreen makes the pending list visible. The pending list is copied
// to the onscreen list and, if no active drawable is pending (or the update
// is forced), the frame is drawn and swapped.
//
// The update happens no earlier than the requested time, which is the
// current time unless At() or WithClock() is used, and no earlier than the
// maximum frame rate allows.
//
// Returns the timestamp of the frame and true if a frame was shown. If the
// update was left for the render loop the timestamp is the zero value and
// the boolean is false.
func (trk *Track) UpdateScreen(opts ...UpdateOption) (timing.Timestamp, bool, error) {
	var o updateOptions
	for _, f := range opts {
		f(&o)
	}

	trk.onscreen = slices.Clone(trk.pending)
	if trk.hasActive() && !o.force {
		return timing.Timestamp{}, false, nil
	}

	var t int64
	switch {
	case o.clk != nil:
		t = o.clk.Get()
	case o.hasAt:
		t = o.at
	default:
		t = trk.pump.Now()
	}
	t = trk.earliest(t)

	trk.draw()

	ts, err := trk.swap(t)
	if err != nil {
		return timing.Timestamp{}, false, err
	}

	trk.runAfterUpdate()
	trk.notify(ts)
	trk.logDisplay(ts)
	trk.lastUpdated = ts
	trk.frames++

	if o.clk != nil {
		o.clk.AccumulateError(ts.Time - t)
		o.clk.TareTo(ts)
	}

	return ts, true, nil
}

// RenderLoop draws the onscreen list every frame for as long as the
// predicate returns true. The predicate is called with the timestamp of the
// most recent frame before each frame is drawn.
//
// RenderLoop() is the only function in the package that can run
// indefinitely. The predicate must eventually return false.
func (trk *Track) RenderLoop(pred func(last timing.Timestamp) bool) error {
	trk.record(timing.At(trk.pump.Now()), "ENTERLOOP")
	defer func() {
		trk.record(timing.At(trk.pump.Now()), "EXITLOOP")
	}()

	showFPS := trk.env.Prefs.ShowFPS.Bool()
	trk.lmtr.reset(trk.pump.Now())

	for pred(trk.lastUpdated) {
		if err := trk.pump.Poll(); err != nil {
			return err
		}

		t := trk.earliest(trk.pump.Now())

		trk.draw()

		ts, err := trk.swap(t)
		if err != nil {
			return err
		}

		prev := trk.lastUpdated
		first := trk.frames == 0
		trk.lastUpdated = ts
		trk.frames++
		trk.logDisplay(ts)
		trk.notify(ts)
		trk.runAfterUpdate()

		if !first && trk.lmtr.dropped(ts.Time-prev.Time) {
			logger.Logf(trk.env, "video", "frame interval of %dms suggests dropped frames", ts.Time-prev.Time)
		}

		if trk.lmtr.measureActual(ts.Time) && showFPS {
			logger.Logf(trk.env, "video", "%.1f FPS", trk.lmtr.actual)
		}
	}

	return nil
}

// the earliest time a frame can be shown given the maximum frame rate. there
// is no limit on the first frame
func (trk *Track) earliest(t int64) int64 {
	if trk.frames == 0 {
		return t
	}
	return trk.lmtr.earliest(trk.lastUpdated.Time, t)
}

// draw every onscreen entry in order. frames are drawn over black
func (trk *Track) draw() {
	trk.display.Clear(backend.Black)
	for _, p := range trk.onscreen {
		p.Drawable.Show(p.X, p.Y)
	}
}

// swap the display at the specified time. a blocking swap returns when the
// frame has been committed at the next vertical blank. the time of the
// vertical blank is somewhere within the measured interval but is taken to
// be at the end of it, less the adjustment value. the adjustment never
// moves the time before the start of the measured interval
func (trk *Track) swap(t int64) (timing.Timestamp, error) {
	blocking := trk.env.Prefs.SyncToVBL.Bool()

	var ts timing.Timestamp
	_, err := trk.pump.TimedCall(t, func() error {
		var err error
		ts, err = trk.display.Swap(blocking)
		return err
	})
	if err != nil {
		return timing.Timestamp{}, err
	}

	if blocking {
		adj := max(int64(trk.env.Prefs.SwapAdjust.Int()), 0)
		adj = min(adj, ts.MaxLatency)
		ts = timing.Timestamp{
			Time:       ts.Time + ts.MaxLatency - adj,
			MaxLatency: adj,
		}
	}

	return ts, nil
}

func (trk *Track) runAfterUpdate() {
	after := trk.afterUpdate
	trk.afterUpdate = nil
	for _, f := range after {
		f()
	}
}

func (trk *Track) notify(ts timing.Timestamp) {
	// callbacks may remove themselves
	cbs := trk.callbacks
	for _, cb := range cbs {
		cb.f(ts)
	}
}

func (trk *Track) logDisplay(ts timing.Timestamp) {
	n := len(trk.onscreen)
	trk.record(ts, "D\t0/%d\t0\t0\tUPDATE", n)
	for i, p := range trk.onscreen {
		trk.record(ts, "D\t%d/%d\t%d\t%d\t%s", i+1, n, p.X, p.Y, p.Drawable.LogLine())
	}
}
