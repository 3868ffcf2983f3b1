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

// NewScaledRoller creates a Roller whose motion is the motion of the source
// roller multiplied by scale, or by reverse for negative motion.
func NewScaledRoller(src *Roller, scale, reverse float64) *Roller {
	r := NewRoller(fmt.Sprintf("ScaledRoller from %s", src.name))
	r.parents = []Node{src}
	src.AddCallback(func(amount float64) {
		if amount < 0 {
			r.Move(amount * reverse)
		} else {
			r.Move(amount * scale)
		}
	})
	return r
}

// NewJointRoller creates a Roller whose motion is the sum of the motion of
// the source rollers.
func NewJointRoller(sources ...*Roller) (*Roller, error) {
	if len(sources) == 0 {
		return nil, curated.Errorf(NoSources, "JointRoller")
	}
	r := NewRoller("JointRoller")
	for _, s := range sources {
		r.parents = append(r.parents, s)
		s.AddCallback(r.Move)
	}
	return r, nil
}

// NewThrottledRoller creates a Roller that follows the source roller with
// the acceleration and velocity of the motion limited. A limit of zero or
// Unlimited means no limit.
//
// Motion of the source that happens within the same millisecond is
// accumulated and applied when time has moved on.
func NewThrottledRoller(src *Roller, clk timing.WallClock, maxAccel, maxVel float64) (*Roller, error) {
	if err := checkLimit(maxAccel); err != nil {
		return nil, err
	}
	if err := checkLimit(maxVel); err != nil {
		return nil, err
	}
	if maxAccel == 0 {
		maxAccel = Unlimited
	}
	if maxVel == 0 {
		maxVel = Unlimited
	}

	r := NewRoller(fmt.Sprintf("ThrottledRoller from %s", src.name))

	lastTime := clk.Now()
	var lastVelocity float64
	var accum float64

	follow := func(change float64) {
		now := clk.Now()
		elapsed := float64(now - lastTime)
		if elapsed <= 0 {
			accum += change
			return
		}

		change += accum
		accum = 0

		velocity := change / elapsed
		if math.Abs(velocity-lastVelocity)/elapsed > maxAccel {
			if velocity < lastVelocity {
				velocity = lastVelocity - maxAccel*elapsed
			} else {
				velocity = lastVelocity + maxAccel*elapsed
			}
		}
		velocity = math.Max(-maxVel, math.Min(maxVel, velocity))

		lastTime = now
		lastVelocity = velocity
		r.Move(velocity * elapsed)
	}

	r.parents = []Node{src}
	r.recompute = func() {
		follow(0)
	}
	src.AddCallback(follow)

	return r, nil
}

// NewAxisRoller creates a Roller that moves at a rate proportional to the
// normalised position of the axis. Speed is in roller units per millisecond
// for a fully deflected axis. The back speed is used when the axis is
// deflected in the negative direction.
func NewAxisRoller(axis *Axis, clk timing.WallClock, speed, backSpeed float64) *Roller {
	r := NewRoller(fmt.Sprintf("AxisRoller from %s", axis.name))

	lastTime := clk.Now()

	r.parents = []Node{axis}
	r.recompute = func() {
		now := clk.Now()
		elapsed := float64(now - lastTime)
		if elapsed <= 0 {
			return
		}
		norm := axis.Normalize(axis.pos)
		if norm > 0 {
			r.Move(elapsed * speed * norm)
		} else {
			r.Move(elapsed * backSpeed * norm)
		}
		lastTime = now
	}

	return r
}

// NewAxisScaledRoller creates a Roller whose motion is the motion of the
// source roller multiplied by the normalised position of the axis and by a
// constant factor.
func NewAxisScaledRoller(src *Roller, axis *Axis, factor float64) *Roller {
	r := NewRoller(fmt.Sprintf("AxisScaledRoller (%s * %s * %f)", src.name, axis.name, factor))
	r.parents = []Node{src, axis}
	src.AddCallback(func(amount float64) {
		r.Move(amount * axis.Normalize(axis.pos) * factor)
	})
	return r
}

// Notch pairs a button with the amount a NotchRoller moves when the button
// is pressed.
type Notch struct {
	Button *Button
	Amount float64
}

// NewNotchRoller creates a Roller that moves by a fixed amount whenever one
// of the buttons is pressed.
func NewNotchRoller(notches ...Notch) (*Roller, error) {
	if len(notches) == 0 {
		return nil, curated.Errorf(NoSources, "NotchRoller")
	}
	r := NewRoller("NotchRoller")
	for _, n := range notches {
		r.parents = append(r.parents, n.Button)
		n.Button.AddCallback(func(pressed bool, _ timing.Timestamp) {
			if pressed {
				r.Move(n.Amount)
			}
		})
	}
	return r, nil
}

// NewButtonRoller creates a Roller that moves for as long as a button is
// held. The inc button moves the roller forward at speed units per
// millisecond and the dec button moves it backwards at backSpeed units per
// millisecond.
func NewButtonRoller(inc, dec *Button, clk timing.WallClock, speed, backSpeed float64) *Roller {
	r := NewRoller(fmt.Sprintf("ButtonRoller from %s and %s", inc.name, dec.name))

	lastTime := clk.Now()

	r.parents = []Node{inc, dec}
	r.recompute = func() {
		now := clk.Now()
		elapsed := float64(now - lastTime)
		if elapsed <= 0 {
			return
		}
		if inc.pressed {
			r.Move(elapsed * speed)
		}
		if dec.pressed {
			r.Move(-elapsed * backSpeed)
		}
		lastTime = now
	}

	return r
}
