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

package input_test

import (
	"errors"
	"testing"

	"github.com/chronostim/chronostim/environment"
	"github.com/chronostim/chronostim/input"
	"github.com/chronostim/chronostim/presentation"
	"github.com/chronostim/chronostim/test"
	"github.com/chronostim/chronostim/timing"
)

// scriptedPump advances time by one millisecond on every poll and runs any
// actions scheduled for the new time.
type scriptedPump struct {
	now     int64
	polls   int
	actions map[int64][]func()
	err     error
}

func newScriptedPump() *scriptedPump {
	return &scriptedPump{actions: make(map[int64][]func())}
}

func (p *scriptedPump) Now() int64 {
	return p.now
}

func (p *scriptedPump) Poll() error {
	if p.err != nil {
		return p.err
	}
	p.polls++
	p.now++
	for _, f := range p.actions[p.now] {
		f()
	}
	return nil
}

func (p *scriptedPump) at(t int64, f func()) {
	p.actions[t] = append(p.actions[t], f)
}

func (p *scriptedPump) press(b *input.Button, t int64, pressed bool) {
	p.at(t, func() { b.SetPressed(pressed, timing.At(t)) })
}

func newClock(t *testing.T, p presentation.Pump) *presentation.Clock {
	t.Helper()
	env, err := environment.NewEnvironment("test", nil)
	test.DemandSuccess(t, err)
	env.Normalise()
	return presentation.NewClock(env, p)
}

func TestButtonChooser(t *testing.T) {
	p := newScriptedPump()
	a := input.NewButton("a")
	b := input.NewButton("b")
	bc := input.NewButtonChooser(p, a, b)

	// releases are not choices
	p.press(a, 5, true)
	p.press(a, 7, false)
	p.press(b, 10, true)

	chosen, ts, err := bc.WaitChoice(0, 0, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, chosen, a)
	test.ExpectEquality(t, ts, timing.At(5))

	chosen, ts, err = bc.WaitChoice(0, 0, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, chosen, b)
	test.ExpectEquality(t, ts, timing.At(10))
}

func TestButtonChooserMinDuration(t *testing.T) {
	p := newScriptedPump()
	a := input.NewButton("a")
	bc := input.NewButtonChooser(p, a)

	p.press(a, 50, true)
	p.press(a, 60, false)
	p.press(a, 120, true)

	chosen, ts, err := bc.WaitChoice(100, 0, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, chosen, a)
	test.ExpectEquality(t, ts, timing.At(120))
	test.ExpectEquality(t, p.Now(), int64(120))
}

func TestButtonChooserTimeout(t *testing.T) {
	p := newScriptedPump()
	p.now = 1000
	clk := newClock(t, p)
	clk.Delay(20)

	a := input.NewButton("a")
	bc := input.NewButtonChooser(p, a)

	// press before the start of the wait is not accepted
	p.press(a, 1010, true)

	chosen, ts, err := bc.WaitChoice(0, 50, clk)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, chosen, (*input.Button)(nil))
	test.ExpectEquality(t, ts, timing.At(1070))
	test.ExpectEquality(t, clk.Get(), int64(1070))
}

func TestButtonChooserClock(t *testing.T) {
	p := newScriptedPump()
	clk := newClock(t, p)
	clk.Delay(10)

	a := input.NewButton("a")
	bc := input.NewButtonChooser(p, a)
	p.at(15, func() { a.SetPressed(true, timing.Timestamp{Time: 14, MaxLatency: 1}) })

	chosen, err := bc.Wait(0, 100, clk)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, chosen, a)
	test.ExpectEquality(t, clk.Get(), int64(14))
}

func TestButtonChooserEarlierPresses(t *testing.T) {
	p := newScriptedPump()
	clk := newClock(t, p)

	a := input.NewButton("a")
	bc := input.NewButtonChooser(p, a)

	// all three events are delivered before the wait starts
	p.press(a, 5, true)
	p.press(a, 6, false)
	p.press(a, 15, true)
	for p.Now() < 20 {
		test.DemandSuccess(t, p.Poll())
	}

	// the press at 5 is too early for a wait starting at 10 but must not
	// hide the press at 15
	clk.TareAt(10)
	polls := p.polls

	chosen, ts, err := bc.WaitChoice(0, 100, clk)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, chosen, a)
	test.ExpectEquality(t, ts, timing.At(15))
	test.ExpectEquality(t, clk.Get(), int64(15))
	test.ExpectEquality(t, p.polls, polls)

	// choices are forgotten once a wait has finished
	chosen, _, err = bc.WaitChoice(0, 10, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, chosen, (*input.Button)(nil))
}

func TestButtonChooserClockBehind(t *testing.T) {
	p := newScriptedPump()
	clk := newClock(t, p)
	clk.Delay(10)

	a := input.NewButton("a")
	b := input.NewButton("b")
	bc := input.NewButtonChooser(p, a, b)

	// wall time is ahead of the clock when the wait starts
	p.press(a, 12, true)
	for p.Now() < 20 {
		test.DemandSuccess(t, p.Poll())
	}
	p.press(b, 25, true)

	// minimum duration puts the earliest acceptable press at 15
	chosen, ts, err := bc.WaitChoice(5, 100, clk)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, chosen, b)
	test.ExpectEquality(t, ts, timing.At(25))
	test.ExpectEquality(t, p.Now(), int64(25))
	test.ExpectEquality(t, clk.Get(), int64(25))
}

func TestButtonChooserPollError(t *testing.T) {
	p := newScriptedPump()
	p.err = errors.New("device gone")
	bc := input.NewButtonChooser(p, input.NewButton("a"))
	_, _, err := bc.WaitChoice(0, 100, nil)
	test.ExpectFailure(t, err)
}

func TestChooserClose(t *testing.T) {
	p := newScriptedPump()
	a := input.NewButton("a")
	bc := input.NewButtonChooser(p, a)
	bc.Close()

	p.press(a, 5, true)
	chosen, _, err := bc.WaitChoice(0, 10, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, chosen, (*input.Button)(nil))
}

func TestFirstButtonChooser(t *testing.T) {
	p := newScriptedPump()
	a := input.NewButton("a")
	b := input.NewButton("b")
	fc := input.NewFirstButtonChooser(p, a, b)

	// nothing is recorded before the range is set
	a.SetPressed(true, timing.At(0))
	a.SetPressed(false, timing.At(1))
	_, _, ok := fc.Chosen()
	test.ExpectFailure(t, ok)

	fc.SetTimeRangeUntil(100, 200)
	p.press(a, 50, true)
	p.press(a, 51, false)
	p.press(b, 150, true)
	p.press(a, 160, true)

	for p.Now() < 170 {
		test.DemandSuccess(t, p.Poll())
	}

	chosen, ts, ok := fc.Chosen()
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, chosen, b)
	test.ExpectEquality(t, ts, timing.At(150))

	// a recorded choice is returned without waiting
	polls := p.polls
	chosen, _, err := fc.WaitChoice(0, 0, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, chosen, b)
	test.ExpectEquality(t, p.polls, polls)

	// upper bound is exclusive
	fc.SetTimeRangeUntil(300, 400)
	b.SetPressed(false, timing.At(399))
	b.SetPressed(true, timing.At(400))
	_, _, ok = fc.Chosen()
	test.ExpectFailure(t, ok)

	fc.SetTimeRange(300)
	b.SetPressed(false, timing.At(401))
	b.SetPressed(true, timing.At(5000))
	_, _, ok = fc.Chosen()
	test.ExpectSuccess(t, ok)
}

func TestAxisChooser(t *testing.T) {
	p := newScriptedPump()
	a, _ := input.NewAxis("A", -1, 1)
	b, _ := input.NewAxis("B", -1, 1)
	ac := input.NewAxisChooser(p, a, b)

	// movement before the wait is forgotten
	a.SetPosition(-1.0, timing.At(0))

	p.at(10, func() { a.SetPosition(0.95, timing.At(10)) })
	p.at(20, func() { b.SetPosition(-0.95, timing.At(20)) })
	p.at(30, func() { b.SetPosition(0.95, timing.At(30)) })

	chosen, ts, err := ac.WaitChoice(0, 100, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, chosen, b)
	test.ExpectEquality(t, ts, timing.At(30))
}

func TestRollerChooser(t *testing.T) {
	p := newScriptedPump()
	r1 := input.NewRoller("r1")
	r2 := input.NewRoller("r2")
	rc := input.NewRollerChooser(p, r1, r2)

	p.at(5, func() { r1.Move(3) })
	p.at(6, func() { r2.Move(12) })
	p.at(7, func() { r2.Move(4) })

	chosen, ts, err := rc.WaitChoice(0, 100, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, chosen, r2)
	test.ExpectEquality(t, ts, timing.At(7))

	// negative motion counts by magnitude
	p.at(20, func() { r1.Move(-11) })
	chosen, _, err = rc.WaitChoice(0, 100, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, chosen, r1)
}

func TestButtonWait(t *testing.T) {
	p := newScriptedPump()
	clk := newClock(t, p)
	a := input.NewButton("a")

	p.press(a, 25, true)
	ts, err := a.Wait(p, clk, true)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ts, timing.At(25))
	test.ExpectEquality(t, clk.Get(), int64(25))

	// already in the state
	polls := p.polls
	_, err = a.Wait(p, nil, true)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.polls, polls)
}

func TestAxisChooserEarlierSweep(t *testing.T) {
	p := newScriptedPump()
	clk := newClock(t, p)

	a, _ := input.NewAxis("A", -1, 1)
	b, _ := input.NewAxis("B", -1, 1)
	ac := input.NewAxisChooser(p, a, b)

	// a full sweep of A is delivered before the wait starts
	p.at(12, func() { a.SetPosition(-1.0, timing.At(12)) })
	p.at(14, func() { a.SetPosition(0.95, timing.At(14)) })
	for p.Now() < 20 {
		test.DemandSuccess(t, p.Poll())
	}

	clk.TareAt(10)
	chosen, ts, err := ac.WaitChoice(0, 100, clk)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, chosen, a)
	test.ExpectEquality(t, ts, timing.At(14))
	test.ExpectEquality(t, clk.Get(), int64(14))
}

func TestAxisChooserClockBehind(t *testing.T) {
	p := newScriptedPump()
	clk := newClock(t, p)
	clk.Delay(10)

	a, _ := input.NewAxis("A", -1, 1)
	b, _ := input.NewAxis("B", -1, 1)
	ac := input.NewAxisChooser(p, a, b)

	for p.Now() < 20 {
		test.DemandSuccess(t, p.Poll())
	}
	p.at(22, func() { b.SetPosition(-0.95, timing.At(22)) })
	p.at(24, func() { b.SetPosition(0.95, timing.At(24)) })

	chosen, ts, err := ac.WaitChoice(0, 100, clk)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, chosen, b)
	test.ExpectEquality(t, ts, timing.At(24))
	test.ExpectEquality(t, clk.Get(), int64(24))
}
