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

package input

import (
	"math"

	"github.com/chronostim/chronostim/presentation"
	"github.com/chronostim/chronostim/timing"
)

// maxChoices limits the number of choices remembered between waits. The
// oldest choice is forgotten first.
const maxChoices = 64

type choice struct {
	node Node
	ts   timing.Timestamp
}

// chooser is the shared implementation of the chooser types. A chooser
// remembers every choice made by its items since the end of the previous
// wait and waits for a choice by polling the event pump. Choices made before
// a wait starts are considered by the wait if they are late enough.
type chooser struct {
	pump Pump

	choices []choice

	// earliest acceptable time of a choice. only meaningful while waiting
	waiting  bool
	minStart int64

	// called at the start of every wait
	onWait func()

	// functions to unsubscribe from the items
	unsubscribe []func()
}

// choose records a choice. While waiting, a choice earlier than the start of
// the wait plus the minimum duration can never be accepted and is dropped.
func (c *chooser) choose(n Node, ts timing.Timestamp) {
	if c.waiting && ts.Time < c.minStart {
		return
	}
	if len(c.choices) >= maxChoices {
		c.choices = append(c.choices[:0], c.choices[1:]...)
	}
	c.choices = append(c.choices, choice{node: n, ts: ts})
}

// pick returns the earliest recorded choice at or after minStart.
func (c *chooser) pick() (Node, timing.Timestamp, bool) {
	best := -1
	for i, ch := range c.choices {
		if ch.ts.Time < c.minStart {
			continue
		}
		if best == -1 || ch.ts.Time < c.choices[best].ts.Time {
			best = i
		}
	}
	if best == -1 {
		return nil, timing.Timestamp{}, false
	}
	return c.choices[best].node, c.choices[best].ts, true
}

func (c *chooser) clear() {
	c.choices = c.choices[:0]
	c.waiting = false
}

// waitChoice polls until there is a choice at or after the start of the wait
// plus the minimum duration. The earliest such choice is returned, including
// choices made before waitChoice() was called. If maxDuration is greater
// than zero, the wait gives up once the wall clock reaches the start of the
// wait plus the maximum duration and returns a nil node with a timestamp of
// the stop time.
//
// The start of the wait is the virtual time of the clock or, if the clock is
// nil, the current wall time. If the clock is not nil it is tared to the
// returned timestamp.
func (c *chooser) waitChoice(minDuration, maxDuration int64, clk *presentation.Clock) (Node, timing.Timestamp, error) {
	if c.onWait != nil {
		c.onWait()
	}

	var start int64
	if clk != nil {
		start = clk.Get()
	} else {
		start = c.pump.Now()
	}

	c.minStart = start
	if minDuration > 0 {
		c.minStart += minDuration
	}
	c.waiting = true

	var stop int64
	if maxDuration > 0 {
		stop = start + maxDuration
	}

	chosen, ts, ok := c.pick()
	for !ok {
		if maxDuration > 0 && stop <= c.pump.Now() {
			break
		}
		if err := c.pump.Poll(); err != nil {
			c.clear()
			return nil, timing.Timestamp{}, err
		}
		chosen, ts, ok = c.pick()
	}

	if !ok {
		chosen = nil
		ts = timing.At(stop)
	}

	if clk != nil {
		clk.TareTo(ts)
	}

	c.clear()

	return chosen, ts, nil
}

// Close removes the callbacks the chooser has added to its items. The
// chooser should not be used after it has been closed.
func (c *chooser) Close() {
	for _, f := range c.unsubscribe {
		f()
	}
	c.unsubscribe = nil
}

// ButtonChooser chooses the first button of a set to be newly pressed.
type ButtonChooser struct {
	chooser
	buttons []*Button
}

// NewButtonChooser is the preferred method of initialisation for the
// ButtonChooser type.
func NewButtonChooser(pump Pump, buttons ...*Button) *ButtonChooser {
	bc := &ButtonChooser{
		chooser: chooser{pump: pump},
		buttons: buttons,
	}
	for _, b := range buttons {
		id := b.AddCallback(func(pressed bool, ts timing.Timestamp) {
			if pressed {
				bc.choose(b, ts)
			}
		})
		bc.unsubscribe = append(bc.unsubscribe, func() { b.RemoveCallback(id) })
	}
	return bc
}

// Buttons returns the buttons in the chooser.
func (bc *ButtonChooser) Buttons() []*Button {
	return bc.buttons
}

// WaitChoice waits for a button to be pressed. The wait starts at the virtual
// time of the clock, or the current wall time if the clock is nil, and only a
// press at or after the start plus minDuration is accepted. A maxDuration
// greater than zero limits the length of the wait. Returns nil and the stop
// time if the wait timed out.
//
// The clock, if there is one, is tared to the returned timestamp.
func (bc *ButtonChooser) WaitChoice(minDuration, maxDuration int64, clk *presentation.Clock) (*Button, timing.Timestamp, error) {
	n, ts, err := bc.waitChoice(minDuration, maxDuration, clk)
	if n == nil {
		return nil, ts, err
	}
	return n.(*Button), ts, err
}

// Wait is the same as WaitChoice() but without the timestamp.
func (bc *ButtonChooser) Wait(minDuration, maxDuration int64, clk *presentation.Clock) (*Button, error) {
	b, _, err := bc.WaitChoice(minDuration, maxDuration, clk)
	return b, err
}

// FirstButtonChooser chooses the first button of a set to be pressed within
// a time range. Presses are only recorded once the time range has been set
// and only the first press in the range is recorded.
//
// The intended use is to set the range at the onset of a stimulus and to
// collect the response, if any, after the stimulus has finished.
type FirstButtonChooser struct {
	chooser
	buttons []*Button

	rangeSet bool
	minTime  int64
	maxTime  int64
}

// NewFirstButtonChooser is the preferred method of initialisation for the
// FirstButtonChooser type.
func NewFirstButtonChooser(pump Pump, buttons ...*Button) *FirstButtonChooser {
	fc := &FirstButtonChooser{
		chooser: chooser{pump: pump},
		buttons: buttons,
	}
	for _, b := range buttons {
		id := b.AddCallback(func(pressed bool, ts timing.Timestamp) {
			if !pressed || !fc.rangeSet || len(fc.choices) > 0 {
				return
			}
			if ts.Time >= fc.minTime && ts.Time < fc.maxTime {
				fc.choices = append(fc.choices, choice{node: b, ts: ts})
			}
		})
		fc.unsubscribe = append(fc.unsubscribe, func() { b.RemoveCallback(id) })
	}
	return fc
}

// SetTimeRange sets the earliest time a press is accepted. There is no
// latest time. Any recorded choice is forgotten.
func (fc *FirstButtonChooser) SetTimeRange(minTime int64) {
	fc.SetTimeRangeUntil(minTime, math.MaxInt64)
}

// SetTimeRangeUntil sets the range of time [minTime, maxTime) in which a
// press is accepted. Any recorded choice is forgotten.
func (fc *FirstButtonChooser) SetTimeRangeUntil(minTime, maxTime int64) {
	fc.clear()
	fc.rangeSet = true
	fc.minTime = minTime
	fc.maxTime = maxTime
}

// Chosen returns the recorded choice without waiting. Returns false if no
// choice has been recorded.
func (fc *FirstButtonChooser) Chosen() (*Button, timing.Timestamp, bool) {
	if len(fc.choices) == 0 {
		return nil, timing.Timestamp{}, false
	}
	return fc.choices[0].node.(*Button), fc.choices[0].ts, true
}

// WaitChoice waits for a button to be pressed within the time range. If a
// press has already been recorded it is returned immediately. Returns nil if
// the wait timed out.
func (fc *FirstButtonChooser) WaitChoice(minDuration, maxDuration int64, clk *presentation.Clock) (*Button, timing.Timestamp, error) {
	if b, ts, ok := fc.Chosen(); ok {
		if clk != nil {
			clk.TareTo(ts)
		}
		fc.clear()
		return b, ts, nil
	}

	n, ts, err := fc.waitChoice(minDuration, maxDuration, clk)
	if n == nil {
		return nil, ts, err
	}
	return n.(*Button), ts, err
}

// AxisChooseThreshold is the normalised deflection an axis must pass in both
// directions to be chosen by an AxisChooser.
const AxisChooseThreshold = 0.9

// AxisChooser chooses the first axis of a set to be swept past
// AxisChooseThreshold in both directions. The record of each axis' extremes
// is reset at the start of every wait.
type AxisChooser struct {
	chooser
	axes    []*Axis
	extrema [][2]float64
}

// NewAxisChooser is the preferred method of initialisation for the
// AxisChooser type.
func NewAxisChooser(pump Pump, axes ...*Axis) *AxisChooser {
	ac := &AxisChooser{
		chooser: chooser{pump: pump},
		axes:    axes,
		extrema: make([][2]float64, len(axes)),
	}
	ac.onWait = ac.Reset

	for i, a := range axes {
		id := a.AddCallback(func(pos float64, ts timing.Timestamp) {
			n := a.Normalize(pos)
			if n < ac.extrema[i][0] {
				ac.extrema[i][0] = n
			} else if n > ac.extrema[i][1] {
				ac.extrema[i][1] = n
			}
			if ac.extrema[i][0] < -AxisChooseThreshold && ac.extrema[i][1] > AxisChooseThreshold {
				ac.choose(a, ts)
			}
		})
		ac.unsubscribe = append(ac.unsubscribe, func() { a.RemoveCallback(id) })
	}

	return ac
}

// Reset forgets the motion of all axes.
func (ac *AxisChooser) Reset() {
	for i := range ac.extrema {
		ac.extrema[i] = [2]float64{}
	}
}

// WaitChoice waits for an axis to be chosen. Returns nil if the wait timed
// out.
func (ac *AxisChooser) WaitChoice(minDuration, maxDuration int64, clk *presentation.Clock) (*Axis, timing.Timestamp, error) {
	n, ts, err := ac.waitChoice(minDuration, maxDuration, clk)
	if n == nil {
		return nil, ts, err
	}
	return n.(*Axis), ts, err
}

// Thresholds used by the RollerChooser.
const (
	RollerChooseMinimum  = 10.0
	RollerChooseDominant = 5.0
)

// RollerChooser chooses the first roller of a set to move at least
// RollerChooseMinimum units in total, while also moving at least
// RollerChooseDominant times more than every other roller in the set. The
// totals are reset at the start of every wait.
type RollerChooser struct {
	chooser
	rollers []*Roller
	totals  []float64
}

// NewRollerChooser is the preferred method of initialisation for the
// RollerChooser type.
func NewRollerChooser(pump Pump, rollers ...*Roller) *RollerChooser {
	rc := &RollerChooser{
		chooser: chooser{pump: pump},
		rollers: rollers,
		totals:  make([]float64, len(rollers)),
	}
	rc.onWait = rc.Reset

	for i, r := range rollers {
		id := r.AddCallback(func(amount float64) {
			rc.totals[i] += amount
			t := math.Abs(rc.totals[i])
			if t < RollerChooseMinimum {
				return
			}
			for j, o := range rc.totals {
				if j != i && t < math.Abs(o)*RollerChooseDominant {
					return
				}
			}
			rc.choose(r, timing.At(rc.pump.Now()))
		})
		rc.unsubscribe = append(rc.unsubscribe, func() { r.RemoveCallback(id) })
	}

	return rc
}

// Reset forgets the motion of all rollers.
func (rc *RollerChooser) Reset() {
	for i := range rc.totals {
		rc.totals[i] = 0
	}
}

// WaitChoice waits for a roller to be chosen. Returns nil if the wait timed
// out.
func (rc *RollerChooser) WaitChoice(minDuration, maxDuration int64, clk *presentation.Clock) (*Roller, timing.Timestamp, error) {
	n, ts, err := rc.waitChoice(minDuration, maxDuration, clk)
	if n == nil {
		return nil, ts, err
	}
	return n.(*Roller), ts, err
}
