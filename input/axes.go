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
	"fmt"
	"math"

	"github.com/chronostim/chronostim/curated"
	"github.com/chronostim/chronostim/timing"
)

// Unlimited can be used as a velocity or acceleration limit to mean that no
// limit is applied.
var Unlimited = math.Inf(1)

func checkLimit(v float64) error {
	if v < 0 || math.IsNaN(v) {
		return curated.Errorf(InvalidLimit, v)
	}
	return nil
}

// NewScaledAxis creates an Axis whose position is the position of the source
// axis multiplied by scale, or by rscale if the source position is not
// positive.
func NewScaledAxis(src *Axis, scale, rscale float64) (*Axis, error) {
	f := func(pos float64) float64 {
		if pos > 0 {
			return pos * scale
		}
		return pos * rscale
	}

	lo, hi := f(src.posmin), f(src.posmax)
	if lo > hi {
		lo, hi = hi, lo
	}

	a, err := NewAxis(fmt.Sprintf("ScaledAxis (%s * %f)", src.name, scale), lo, hi)
	if err != nil {
		return nil, err
	}

	a.parents = []Node{src}
	a.pos = f(src.pos)
	src.AddCallback(func(pos float64, ts timing.Timestamp) {
		a.SetPosition(f(pos), ts)
	})

	return a, nil
}

// NewAxisScaledAxis creates an Axis whose position is the product of the
// positions of two source axes.
func NewAxisScaledAxis(a1, a2 *Axis) (*Axis, error) {
	corners := []float64{
		a1.posmin * a2.posmin,
		a1.posmin * a2.posmax,
		a1.posmax * a2.posmin,
		a1.posmax * a2.posmax,
	}
	lo, hi := corners[0], corners[0]
	for _, c := range corners[1:] {
		lo = math.Min(lo, c)
		hi = math.Max(hi, c)
	}

	a, err := NewAxis(fmt.Sprintf("AxisScaledAxis (%s * %s)", a1.name, a2.name), lo, hi)
	if err != nil {
		return nil, err
	}

	a.parents = []Node{a1, a2}
	a.pos = a1.pos * a2.pos
	cb := func(_ float64, ts timing.Timestamp) {
		a.SetPosition(a1.pos*a2.pos, ts)
	}
	a1.AddCallback(cb)
	a2.AddCallback(cb)

	return a, nil
}

// NewJointAxis creates an Axis whose position is the sum of the positions
// of the source axes. The domain covers the domains of all the sources.
func NewJointAxis(sources ...*Axis) (*Axis, error) {
	if len(sources) == 0 {
		return nil, curated.Errorf(NoSources, "JointAxis")
	}

	lo, hi := sources[0].posmin, sources[0].posmax
	for _, s := range sources[1:] {
		lo = math.Min(lo, s.posmin)
		hi = math.Max(hi, s.posmax)
	}

	a, err := NewAxis("JointAxis", lo, hi)
	if err != nil {
		return nil, err
	}

	positions := make([]float64, len(sources))
	var sum float64
	for i, s := range sources {
		positions[i] = s.pos
		sum += s.pos
		a.parents = append(a.parents, s)
		s.AddCallback(func(pos float64, ts timing.Timestamp) {
			sum += pos - positions[i]
			positions[i] = pos
			a.SetPosition(sum, ts)
		})
	}
	a.pos = sum

	return a, nil
}

// NewThrottledAxis creates an Axis that follows the source axis but with
// the velocity and acceleration of the motion limited. Velocity is in axis
// units per millisecond and acceleration is in axis units per millisecond
// per millisecond. Use Unlimited for no limit.
func NewThrottledAxis(src *Axis, clk timing.WallClock, maxVel, maxAccel float64) (*Axis, error) {
	if err := checkLimit(maxVel); err != nil {
		return nil, err
	}
	if err := checkLimit(maxAccel); err != nil {
		return nil, err
	}

	a, err := NewAxis(fmt.Sprintf("ThrottledAxis from %s", src.name), src.posmin, src.posmax)
	if err != nil {
		return nil, err
	}

	lastTime := clk.Now()
	lastPos := src.Position()
	var lastSpeed float64

	follow := func(pos float64, ts timing.Timestamp) {
		interval := float64(ts.Time - lastTime)
		if interval <= 0 {
			return
		}

		speed := (pos - lastPos) / interval
		accel := (speed - lastSpeed) / interval
		if accel > maxAccel {
			speed = lastSpeed + maxAccel*interval
		} else if accel < -maxAccel {
			speed = lastSpeed - maxAccel*interval
		}
		speed = math.Max(-maxVel, math.Min(maxVel, speed))

		pos = lastPos + speed*interval
		lastTime = ts.Time
		lastPos = pos
		lastSpeed = speed
		a.SetPosition(pos, ts)
	}

	a.parents = []Node{src}
	a.pos = lastPos
	a.recompute = func() {
		follow(src.pos, timing.At(clk.Now()))
	}
	a.halt = func() {
		lastSpeed = 0
		lastPos = a.pos
	}
	src.AddCallback(follow)

	return a, nil
}

// NewRollerAxis creates an Axis whose position is moved by a roller. The
// position is clamped to the domain [min, max].
func NewRollerAxis(src *Roller, clk timing.WallClock, min, max, start float64) (*Axis, error) {
	a, err := NewAxis(fmt.Sprintf("RollerAxis from %s", src.name), min, max)
	if err != nil {
		return nil, err
	}

	a.parents = []Node{src}
	a.pos = math.Max(min, math.Min(max, start))
	src.AddCallback(func(delta float64) {
		pos := math.Max(min, math.Min(max, a.pos+delta))
		a.SetPosition(pos, timing.At(clk.Now()))
	})

	return a, nil
}

// NewButtonAxis creates an Axis controlled by two buttons. Pressing the high
// button sets the position to magnitude, pressing the low button sets the
// position to -lmagnitude. Both or neither button sets a position of
// magnitude-lmagnitude or zero.
func NewButtonAxis(high, low *Button, magnitude, lmagnitude, min, max float64) (*Axis, error) {
	a, err := NewAxis(fmt.Sprintf("ButtonAxis from %s and %s", high.name, low.name), min, max)
	if err != nil {
		return nil, err
	}

	value := func() float64 {
		var v float64
		if high.pressed {
			v = magnitude
		}
		if low.pressed {
			v -= lmagnitude
		}
		return v
	}

	a.parents = []Node{high, low}
	a.pos = value()
	cb := func(_ bool, ts timing.Timestamp) {
		a.SetPosition(value(), ts)
	}
	high.AddCallback(cb)
	low.AddCallback(cb)

	return a, nil
}

// NewDerivativeAxis creates an Axis whose rate of change is proportional to
// the normalised position of the source axis. The position is clamped to
// the domain [min, max].
func NewDerivativeAxis(src *Axis, clk timing.WallClock, speed, min, max, start float64) (*Axis, error) {
	r := NewAxisRoller(src, clk, speed, speed)
	a, err := NewRollerAxis(r, clk, min, max, start)
	if err != nil {
		return nil, err
	}
	a.name = fmt.Sprintf("Axis derived from %s", src.name)
	return a, nil
}
