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

// Package presentation implements the virtual clock used to schedule
// stimuli. The clock is advanced explicitly by delays and is only ever
// compared with the wall clock when the caller waits on it or schedules an
// action for it.
//
// Scheduled actions that complete late add to the accumulated error of the
// clock. When error correction is enabled, later delays are shortened by the
// accumulated error so that the overall schedule is kept.
package presentation

import (
	"github.com/chronostim/chronostim/environment"
	"github.com/chronostim/chronostim/logger"
	"github.com/chronostim/chronostim/timing"
)

// Pump is the part of the event pump required by the clock.
type Pump interface {
	Now() int64
	Poll() error
}

// Clock is a virtual clock for scheduling stimuli. Virtual time never moves
// backwards.
type Clock struct {
	env  *environment.Environment
	pump Pump

	virtual int64

	// positive values mean scheduled actions have completed late
	accumulatedError int64

	correctErrors bool
}

// NewClock is the preferred method of initialisation for the Clock type.
// Virtual time starts at the current wall time.
func NewClock(env *environment.Environment, pump Pump) *Clock {
	return &Clock{
		env:           env,
		pump:          pump,
		virtual:       pump.Now(),
		correctErrors: env.Prefs.CorrectErrors.Bool(),
	}
}

// Get returns the current virtual time.
func (clk *Clock) Get() int64 {
	return clk.virtual
}

// Tare sets the virtual time to the current wall time.
func (clk *Clock) Tare() {
	clk.TareAt(clk.pump.Now())
}

// TareTo sets the virtual time to the time component of the timestamp.
func (clk *Clock) TareTo(ts timing.Timestamp) {
	clk.TareAt(ts.Time)
}

// TareAt sets the virtual time. A time earlier than the current virtual time
// is ignored.
func (clk *Clock) TareAt(t int64) {
	if t < clk.virtual {
		logger.Logf(clk.env, "clock", "tare would move virtual time back by %dms: ignored", clk.virtual-t)
		return
	}
	clk.virtual = t
}

// DelayOption modifies the behaviour of Delay() and Jitter().
type DelayOption func(*delayOptions)

type delayOptions struct {
	jitter  int64
	resolve bool
}

// WithJitter adds a random amount of time in the range [0, ms] to the
// delay.
func WithJitter(ms int64) DelayOption {
	return func(o *delayOptions) {
		o.jitter = ms
	}
}

// ResolveError forces the delay to correct for accumulated error, even if
// error correction is not enabled for the clock.
func ResolveError() DelayOption {
	return func(o *delayOptions) {
		o.resolve = true
	}
}

// Delay advances virtual time. If error correction applies, the delay is
// shortened by the accumulated error. The delay never goes below zero and
// any error that cannot be corrected for remains accumulated.
//
// Returns the amount virtual time was advanced by.
func (clk *Clock) Delay(ms int64, opts ...DelayOption) int64 {
	var o delayOptions
	for _, f := range opts {
		f(&o)
	}

	if o.jitter > 0 {
		ms = clk.env.Random.IntRange(ms, ms+o.jitter)
	}

	return clk.delay(ms, o.resolve)
}

// Jitter advances virtual time by a random amount in the inclusive range
// [low, high]. The WithJitter() option has no effect.
//
// Returns the amount virtual time was advanced by.
func (clk *Clock) Jitter(low, high int64, opts ...DelayOption) int64 {
	var o delayOptions
	for _, f := range opts {
		f(&o)
	}
	return clk.delay(clk.env.Random.IntRange(low, high), o.resolve)
}

func (clk *Clock) delay(ms int64, resolve bool) int64 {
	if ms < 0 {
		ms = 0
	}

	if clk.correctErrors || resolve {
		ms -= clk.accumulatedError
		if ms < 0 {
			clk.accumulatedError = -ms
			ms = 0
			logger.Logf(clk.env, "clock", "unable to account for %dms of timing error", clk.accumulatedError)
		} else {
			clk.accumulatedError = 0
		}
	}

	clk.virtual += ms
	return ms
}

// Wait until the wall clock reaches virtual time. Events are polled while
// waiting.
func (clk *Clock) Wait() error {
	for clk.pump.Now() < clk.virtual {
		if err := clk.pump.Poll(); err != nil {
			return err
		}
	}
	return nil
}

// AccumulatedError returns the amount of timing error not yet corrected for.
// Positive values mean scheduled actions have completed late.
func (clk *Clock) AccumulatedError() int64 {
	return clk.accumulatedError
}

// AccumulateError adds to the accumulated error. Only the frame scheduler
// should call this, once per swap.
func (clk *Clock) AccumulateError(ms int64) {
	clk.accumulatedError += ms
}

// ResetAccumulatedError discards any accumulated error.
func (clk *Clock) ResetAccumulatedError() {
	clk.accumulatedError = 0
}

// SetCorrectErrors sets whether delays are shortened by accumulated error.
func (clk *Clock) SetCorrectErrors(correct bool) {
	clk.correctErrors = correct
}

// CorrectErrors returns true if delays are shortened by accumulated error.
func (clk *Clock) CorrectErrors() bool {
	return clk.correctErrors
}
