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
	"github.com/chronostim/chronostim/presentation"
	"github.com/chronostim/chronostim/timing"
)

// ButtonCallback is called when the state of a Button changes.
type ButtonCallback func(pressed bool, ts timing.Timestamp)

// Button is an input with a pressed or released state.
type Button struct {
	base
	pressed   bool
	pressTime timing.Timestamp
	callbacks registry[ButtonCallback]
}

// NewButton is the preferred method of initialisation for the Button type.
func NewButton(name string) *Button {
	return &Button{base: base{name: name}}
}

func (*Button) isNode() {}

func (b *Button) String() string {
	return fmt.Sprintf("%s (pressed=%v)", b.name, b.pressed)
}

// IsPressed returns true if the button is pressed.
func (b *Button) IsPressed() bool {
	return b.pressed
}

// PressTime returns the timestamp of the most recent change of state.
func (b *Button) PressTime() timing.Timestamp {
	return b.pressTime
}

// SetPressed changes the state of the button. Callbacks are only called if
// the state is different to the current state.
func (b *Button) SetPressed(pressed bool, ts timing.Timestamp) {
	if pressed == b.pressed {
		return
	}
	b.pressed = pressed
	b.pressTime = ts
	b.callbacks.each(func(f ButtonCallback) {
		f(pressed, ts)
	})
}

// AddCallback adds a function to be called whenever the state of the button
// changes.
func (b *Button) AddCallback(f ButtonCallback) CallbackID {
	return b.callbacks.add(f)
}

// RemoveCallback removes a function added with AddCallback(). Returns false
// if the ID is not recognised.
func (b *Button) RemoveCallback(id CallbackID) bool {
	return b.callbacks.remove(id)
}

// Wait polls the event pump until the state of the button matches the
// pressed argument. Returns immediately if the state already matches.
//
// The returned timestamp is the time of the most recent state change. If a
// clock is supplied it is tared to that time.
func (b *Button) Wait(pump Pump, clk *presentation.Clock, pressed bool) (timing.Timestamp, error) {
	for b.pressed != pressed {
		if err := pump.Poll(); err != nil {
			return timing.Timestamp{}, err
		}
	}
	if clk != nil {
		clk.TareTo(b.pressTime)
	}
	return b.pressTime, nil
}

// buttonSet is the shared implementation of ButtonCombo and EitherButton.
func buttonSet(kind string, sources []*Button, all bool) (*Button, error) {
	if len(sources) == 0 {
		return nil, curated.Errorf(NoSources, kind)
	}

	state := make([]bool, len(sources))
	combined := func() bool {
		for _, s := range state {
			if s != all {
				return !all
			}
		}
		return all
	}

	b := NewButton(kind)
	for i, s := range sources {
		state[i] = s.pressed
		b.parents = append(b.parents, s)
		s.AddCallback(func(pressed bool, ts timing.Timestamp) {
			state[i] = pressed
			b.SetPressed(combined(), ts)
		})
	}
	b.pressed = combined()

	return b, nil
}

// NewButtonCombo creates a Button that is pressed only when all of the
// source buttons are pressed.
func NewButtonCombo(sources ...*Button) (*Button, error) {
	return buttonSet("ButtonCombo (AND)", sources, true)
}

// NewEitherButton creates a Button that is pressed when any of the source
// buttons are pressed.
func NewEitherButton(sources ...*Button) (*Button, error) {
	return buttonSet("EitherButton (OR)", sources, false)
}

// NewAxisButton creates a Button that is pressed when the normalised
// position of the axis is in the inclusive range [low, high]. The usual
// range is [0.9, 1.0].
func NewAxisButton(axis *Axis, low, high float64) (*Button, error) {
	if low > high {
		return nil, curated.Errorf(InvalidRange, low, high)
	}

	inRange := func(pos float64) bool {
		n := axis.Normalize(pos)
		return n >= low && n <= high
	}

	b := NewButton(fmt.Sprintf("AxisButton from %s", axis.name))
	b.parents = []Node{axis}
	b.pressed = inRange(axis.pos)
	axis.AddCallback(func(pos float64, ts timing.Timestamp) {
		b.SetPressed(inRange(pos), ts)
	})

	return b, nil
}
