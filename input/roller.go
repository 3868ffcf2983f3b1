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
)

// RollerCallback is called when a Roller moves.
type RollerCallback func(amount float64)

// Roller is an input that accumulates unbounded relative motion. The
// accumulated motion is collected and reset with Change().
type Roller struct {
	base
	counter   float64
	callbacks registry[RollerCallback]

	// the roller being echoed, if this is an echo roller
	echoOf *Roller
}

// NewRoller is the preferred method of initialisation for the Roller type.
func NewRoller(name string) *Roller {
	return &Roller{base: base{name: name}}
}

func (*Roller) isNode() {}

func (r *Roller) String() string {
	return fmt.Sprintf("%s (%.3f)", r.name, r.counter)
}

// Move the roller. A zero amount does nothing.
func (r *Roller) Move(amount float64) {
	if amount == 0 {
		return
	}
	r.counter += amount
	r.callbacks.each(func(f RollerCallback) {
		f(amount)
	})
}

// Change returns the motion accumulated since the previous call to Change()
// and resets the accumulator to zero.
func (r *Roller) Change() float64 {
	r.Update()
	c := r.counter
	r.counter = 0
	return c
}

// Peek returns the motion accumulated since the previous call to Change()
// without resetting it.
func (r *Roller) Peek() float64 {
	r.Update()
	return r.counter
}

// AddCallback adds a function to be called whenever the roller moves.
func (r *Roller) AddCallback(f RollerCallback) CallbackID {
	return r.callbacks.add(f)
}

// RemoveCallback removes a function added with AddCallback(). Returns false
// if the ID is not recognised.
func (r *Roller) RemoveCallback(id CallbackID) bool {
	return r.callbacks.remove(id)
}

// Echo returns a new roller that moves whenever this roller moves but which
// has its own accumulator. This allows two consumers to call Change()
// independently. Echoing an echo returns another echo of the original.
func (r *Roller) Echo() *Roller {
	src := r
	if r.echoOf != nil {
		src = r.echoOf
	}
	e := NewRoller(fmt.Sprintf("EchoRoller for %s", src.name))
	e.echoOf = src
	e.parents = []Node{src}
	src.AddCallback(e.Move)
	return e
}
