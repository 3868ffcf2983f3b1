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

	"github.com/chronostim/chronostim/curated"
	"github.com/chronostim/chronostim/timing"
)

// AxisCallback is called when the position of an Axis changes.
type AxisCallback func(pos float64, ts timing.Timestamp)

// Axis is an input with a continuous position. The domain of the axis is
// [Min(), Max()] but the position is not clamped to the domain.
type Axis struct {
	base
	posmin    float64
	posmax    float64
	pos       float64
	callbacks registry[AxisCallback]

	// called by Halt()
	halt func()
}

// NewAxis is the preferred method of initialisation for the Axis type. The
// minimum of the domain must be less than the maximum.
func NewAxis(name string, posmin, posmax float64) (*Axis, error) {
	if posmin >= posmax {
		return nil, curated.Errorf(InvalidDomain, posmin, posmax)
	}
	return &Axis{
		base:   base{name: name},
		posmin: posmin,
		posmax: posmax,
	}, nil
}

func (*Axis) isNode() {}

func (a *Axis) String() string {
	return fmt.Sprintf("%s (%.3f in %.3f to %.3f)", a.name, a.pos, a.posmin, a.posmax)
}

// Min returns the minimum of the axis domain.
func (a *Axis) Min() float64 {
	return a.posmin
}

// Max returns the maximum of the axis domain.
func (a *Axis) Max() float64 {
	return a.posmax
}

// SetPosition changes the position of the axis. Callbacks are only called
// if the position is different to the current position.
func (a *Axis) SetPosition(pos float64, ts timing.Timestamp) {
	if pos == a.pos {
		return
	}
	a.pos = pos
	a.callbacks.each(func(f AxisCallback) {
		f(pos, ts)
	})
}

// Position returns the up to date position of the axis.
func (a *Axis) Position() float64 {
	a.Update()
	return a.pos
}

// Normalize maps a position in the domain of the axis to the range [-1.0,
// 1.0].
func (a *Axis) Normalize(pos float64) float64 {
	return 2*(pos-a.posmin)/(a.posmax-a.posmin) - 1
}

// Normalized returns the up to date position of the axis, normalised to the
// range [-1.0, 1.0].
func (a *Axis) Normalized() float64 {
	a.Update()
	return a.Normalize(a.pos)
}

// Halt stops any motion that the axis is simulating. Only meaningful for
// axes that model velocity, such as ThrottledAxis.
func (a *Axis) Halt() {
	if a.halt != nil {
		a.halt()
	}
}

// AddCallback adds a function to be called whenever the position of the
// axis changes.
func (a *Axis) AddCallback(f AxisCallback) CallbackID {
	return a.callbacks.add(f)
}

// RemoveCallback removes a function added with AddCallback(). Returns false
// if the ID is not recognised.
func (a *Axis) RemoveCallback(id CallbackID) bool {
	return a.callbacks.remove(id)
}
