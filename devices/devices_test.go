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

package devices_test

import (
	"testing"

	"github.com/chronostim/chronostim/backend"
	"github.com/chronostim/chronostim/backend/headless"
	"github.com/chronostim/chronostim/curated"
	"github.com/chronostim/chronostim/devices"
	"github.com/chronostim/chronostim/environment"
	"github.com/chronostim/chronostim/eventpump"
	"github.com/chronostim/chronostim/input"
	"github.com/chronostim/chronostim/test"
	"github.com/chronostim/chronostim/timing"
	"github.com/chronostim/chronostim/tracklog"
)

type collect []tracklog.Record

func (c *collect) Record(r tracklog.Record) {
	*c = append(*c, r)
}

func setup(t *testing.T) (*environment.Environment, *headless.Backend, *eventpump.Pump) {
	t.Helper()
	env, err := environment.NewEnvironment("test", nil)
	test.DemandSuccess(t, err)
	env.Normalise()
	b := headless.NewBackend(640, 480)
	return env, b, eventpump.NewPump(env, b, b)
}

func run(t *testing.T, b *headless.Backend, p *eventpump.Pump, until int64) {
	t.Helper()
	for b.Now() < until {
		test.DemandSuccess(t, p.Poll())
	}
}

func TestKeyName(t *testing.T) {
	test.ExpectEquality(t, devices.KeyName("e\u0301"), devices.KeyName("\u00e9"))
	test.ExpectEquality(t, devices.KeyName("\u00e9"), "\u00c9")
}

func TestKeyTrack(t *testing.T) {
	env, b, p := setup(t)
	var log collect
	kt := devices.NewKeyTrack(env, p, &log)

	space := kt.Key("space")
	test.ExpectEquality(t, kt.Key("SPACE"), space)
	test.ExpectSuccess(t, curated.Is(kt.AssignButton(input.NewButton("x"), "Space"), devices.AlreadyBound))

	j := input.NewButton("j")
	test.DemandSuccess(t, kt.AssignButton(j, "j"))

	b.KeyStroke(5, "Space", 10)
	b.Key(7, "q", true)
	b.Key(8, "J", true)
	run(t, b, p, 20)

	test.ExpectEquality(t, space.IsPressed(), false)
	test.ExpectEquality(t, space.PressTime(), timing.At(15))
	test.ExpectEquality(t, j.IsPressed(), true)

	test.DemandEquality(t, len(log), 4)
	test.ExpectEquality(t, log[0].Message, "P\tSPACE")
	test.ExpectEquality(t, log[0].Source, "keyboard")
	test.ExpectEquality(t, log[1].Message, "P\tQ")
	test.ExpectEquality(t, log[3].Message, "R\tSPACE")
	test.ExpectEquality(t, log[3].Timestamp, timing.At(15))

	// chooser over all keys includes the key seen but not bound
	kc := kt.KeyChooser()
	test.ExpectEquality(t, len(kc.Buttons()), 3)
	test.ExpectEquality(t, kt.Keys()[1], "Q")

	b.Key(30, "Q", false)
	b.Key(31, "Q", true)
	q, ts, err := kc.WaitChoice(0, 100, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, q, kt.Key("q"))
	test.ExpectEquality(t, ts, timing.At(31))
	kc.Close()

	// no handler after close
	kt.Close()
	b.Key(40, "q", false)
	run(t, b, p, 45)
	test.ExpectEquality(t, q.IsPressed(), true)
	test.ExpectEquality(t, p.Dropped(), 1)
}

func TestMouseTrack(t *testing.T) {
	env, b, p := setup(t)
	var log collect
	mt := devices.NewMouseTrack(env, p, &log, 640, 480)

	buttons := mt.Buttons()
	test.DemandEquality(t, len(buttons), 3)
	test.ExpectEquality(t, mt.Button(1), buttons[0])

	axes, err := mt.Axes()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, axes[0].Max(), 640.0)
	test.ExpectEquality(t, axes[1].Max(), 480.0)

	_, err = mt.Axis(2)
	test.ExpectSuccess(t, curated.Is(err, devices.NoSuchAxis))
	_, err = mt.Roller(-1)
	test.ExpectSuccess(t, curated.Is(err, devices.NoSuchAxis))
	test.ExpectSuccess(t, curated.Is(mt.AssignAxis(axes[0], 0), devices.AlreadyBound))

	rollers := mt.Rollers()

	b.Schedule(backend.Event{Kind: backend.MouseButtonEvent, Index: 2, Pressed: true, Timestamp: timing.At(3)})
	b.MouseMotion(4, 320, 240, 5, -3)
	b.MouseMotion(5, 330, 240, 10, 0)
	run(t, b, p, 10)

	test.ExpectSuccess(t, buttons[1].IsPressed())
	test.ExpectEquality(t, axes[0].Position(), 330.0)
	test.ExpectEquality(t, axes[1].Normalized(), 0.0)
	test.ExpectEquality(t, rollers[0].Change(), 15.0)
	test.ExpectEquality(t, rollers[1].Change(), -3.0)

	test.DemandEquality(t, len(log), 3)
	test.ExpectEquality(t, log[0].Message, "P\t2")
	test.ExpectEquality(t, log[1].Message, "M\t320,240\t5,-3")
}

func TestJoyTrack(t *testing.T) {
	env, b, p := setup(t)
	var log collect
	jt := devices.NewJoyTrack(env, p, &log)

	fire := jt.Button(0, 1)
	test.ExpectEquality(t, jt.Button(0, 1), fire)
	stick := jt.Axis(0, 0)
	test.ExpectEquality(t, stick.Min(), -1.0)

	ball, err := jt.Ball(1, 0, 1)
	test.DemandSuccess(t, err)
	_, err = jt.Ball(1, 0, 2)
	test.ExpectSuccess(t, curated.Is(err, devices.NoSuchAxis))

	up := jt.Hat(0, 0, backend.HatPosition{Y: 1})
	left := jt.Hat(0, 0, backend.HatPosition{X: -1})
	jt.Hat(0, 0, backend.HatPosition{})
	test.ExpectSuccess(t, curated.Is(jt.AssignHat(input.NewButton("h"), 0, 0, backend.HatPosition{Y: 1}), devices.AlreadyBound))

	b.Schedule(backend.Event{Kind: backend.JoyButtonEvent, Device: 0, Index: 1, Pressed: true, Timestamp: timing.At(2)})
	b.JoyAxis(3, 0, 0, 0.5)
	b.Schedule(backend.Event{Kind: backend.JoyBallEvent, Device: 1, Index: 0, Rel: [2]float64{4, -6}, Timestamp: timing.At(4)})
	b.Schedule(backend.Event{Kind: backend.JoyHatEvent, Device: 0, Index: 0, Hat: backend.HatPosition{Y: 1}, Timestamp: timing.At(5)})
	run(t, b, p, 6)

	test.ExpectSuccess(t, fire.IsPressed())
	test.ExpectEquality(t, stick.Position(), 0.5)
	test.ExpectEquality(t, ball.Change(), -6.0)
	test.ExpectSuccess(t, up.IsPressed())

	// moving the hat releases the previous position
	b.Schedule(backend.Event{Kind: backend.JoyHatEvent, Device: 0, Index: 0, Hat: backend.HatPosition{X: -1}, Timestamp: timing.At(7)})
	run(t, b, p, 8)
	test.ExpectFailure(t, up.IsPressed())
	test.ExpectSuccess(t, left.IsPressed())

	test.DemandEquality(t, len(log), 5)
	test.ExpectEquality(t, log[0].Message, "P\t0\t1")
	test.ExpectEquality(t, log[1].Message, "A\t0\t0\t0.500000")
	test.ExpectEquality(t, log[2].Message, "L\t1\t0\t4.000000\t-6.000000")
	test.ExpectEquality(t, log[3].Message, "H\t0\t0\t0,1")

	// centre position is not part of the chooser
	bc := jt.ButtonChooser()
	test.ExpectEquality(t, len(bc.Buttons()), 3)
	test.ExpectEquality(t, bc.Buttons()[2], fire)
	bc.Close()
}
