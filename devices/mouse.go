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

package devices

import (
	"fmt"

	"github.com/chronostim/chronostim/backend"
	"github.com/chronostim/chronostim/curated"
	"github.com/chronostim/chronostim/environment"
	"github.com/chronostim/chronostim/input"
	"github.com/chronostim/chronostim/tracklog"
)

// the number of buttons returned by MouseTrack.Buttons()
const mouseButtons = 3

// MouseTrack binds mouse buttons and movement to input primitives. The mouse
// has two axes, numbered 0 (horizontal) and 1 (vertical). Axes give the
// absolute position of the pointer on the screen. Rollers give the relative
// movement of the mouse and are not limited by the edges of the screen.
type MouseTrack struct {
	track

	width  int
	height int

	buttons map[int]*input.Button
	axes    map[int]*input.Axis
	rollers map[int]*input.Roller
}

// NewMouseTrack is the preferred method of initialisation for the MouseTrack
// type. The width and height are the size of the screen in pixels.
func NewMouseTrack(env *environment.Environment, pump Pump, sink tracklog.Sink, width, height int) *MouseTrack {
	mt := &MouseTrack{
		track:   newTrack(env, pump, sink, "mouse"),
		width:   width,
		height:  height,
		buttons: make(map[int]*input.Button),
		axes:    make(map[int]*input.Axis),
		rollers: make(map[int]*input.Roller),
	}
	mt.handle(backend.MouseButtonEvent, mt.buttonEvent)
	mt.handle(backend.MouseMotionEvent, mt.motionEvent)
	return mt
}

func (mt *MouseTrack) checkAxis(n int) error {
	if n != 0 && n != 1 {
		return curated.Errorf(NoSuchAxis, "mouse", n)
	}
	return nil
}

// Button returns the button bound to the numbered mouse button, creating it
// if necessary. Buttons are numbered from one.
func (mt *MouseTrack) Button(n int) *input.Button {
	if b, ok := mt.buttons[n]; ok {
		return b
	}
	b := input.NewButton(fmt.Sprintf("Mouse button %d", n))
	mt.buttons[n] = b
	return b
}

// AssignButton binds a button to the numbered mouse button.
func (mt *MouseTrack) AssignButton(b *input.Button, n int) error {
	if _, ok := mt.buttons[n]; ok {
		return curated.Errorf(AlreadyBound, fmt.Sprintf("mouse button %d", n))
	}
	mt.buttons[n] = b
	return nil
}

// Buttons returns the first three mouse buttons.
func (mt *MouseTrack) Buttons() []*input.Button {
	b := make([]*input.Button, 0, mouseButtons)
	for n := 1; n <= mouseButtons; n++ {
		b = append(b, mt.Button(n))
	}
	return b
}

// Axis returns the axis bound to the numbered mouse axis, creating it if
// necessary. The domain of the axis is zero to the size of the screen.
func (mt *MouseTrack) Axis(n int) (*input.Axis, error) {
	if err := mt.checkAxis(n); err != nil {
		return nil, err
	}
	if a, ok := mt.axes[n]; ok {
		return a, nil
	}

	size := mt.width
	if n == 1 {
		size = mt.height
	}
	a, err := input.NewAxis(fmt.Sprintf("Mouse axis %d", n), 0, float64(size))
	if err != nil {
		return nil, err
	}
	mt.axes[n] = a
	return a, nil
}

// AssignAxis binds an axis to the numbered mouse axis.
func (mt *MouseTrack) AssignAxis(a *input.Axis, n int) error {
	if err := mt.checkAxis(n); err != nil {
		return err
	}
	if _, ok := mt.axes[n]; ok {
		return curated.Errorf(AlreadyBound, fmt.Sprintf("mouse axis %d", n))
	}
	mt.axes[n] = a
	return nil
}

// Axes returns the horizontal and vertical axes.
func (mt *MouseTrack) Axes() ([]*input.Axis, error) {
	x, err := mt.Axis(0)
	if err != nil {
		return nil, err
	}
	y, err := mt.Axis(1)
	if err != nil {
		return nil, err
	}
	return []*input.Axis{x, y}, nil
}

// Roller returns the roller bound to the numbered mouse axis, creating it
// if necessary.
func (mt *MouseTrack) Roller(n int) (*input.Roller, error) {
	if err := mt.checkAxis(n); err != nil {
		return nil, err
	}
	if r, ok := mt.rollers[n]; ok {
		return r, nil
	}
	r := input.NewRoller(fmt.Sprintf("Roller for mouse axis %d", n))
	mt.rollers[n] = r
	return r, nil
}

// AssignRoller binds a roller to the numbered mouse axis.
func (mt *MouseTrack) AssignRoller(r *input.Roller, n int) error {
	if err := mt.checkAxis(n); err != nil {
		return err
	}
	if _, ok := mt.rollers[n]; ok {
		return curated.Errorf(AlreadyBound, fmt.Sprintf("mouse roller %d", n))
	}
	mt.rollers[n] = r
	return nil
}

// Rollers returns the horizontal and vertical rollers.
func (mt *MouseTrack) Rollers() []*input.Roller {
	x, _ := mt.Roller(0)
	y, _ := mt.Roller(1)
	return []*input.Roller{x, y}
}

// ButtonChooser returns a ButtonChooser for the mouse buttons.
func (mt *MouseTrack) ButtonChooser() *input.ButtonChooser {
	return input.NewButtonChooser(mt.pump, mt.Buttons()...)
}

// AxisChooser returns an AxisChooser for the two mouse axes.
func (mt *MouseTrack) AxisChooser() (*input.AxisChooser, error) {
	axes, err := mt.Axes()
	if err != nil {
		return nil, err
	}
	return input.NewAxisChooser(mt.pump, axes...), nil
}

// RollerChooser returns a RollerChooser for the two mouse rollers.
func (mt *MouseTrack) RollerChooser() *input.RollerChooser {
	return input.NewRollerChooser(mt.pump, mt.Rollers()...)
}

func (mt *MouseTrack) buttonEvent(ev backend.Event) {
	mt.record(ev.Timestamp, "%s\t%d", pressRelease(ev.Pressed), ev.Index)
	if b, ok := mt.buttons[ev.Index]; ok {
		b.SetPressed(ev.Pressed, ev.Timestamp)
	}
}

func (mt *MouseTrack) motionEvent(ev backend.Event) {
	mt.record(ev.Timestamp, "M\t%g,%g\t%g,%g", ev.Pos[0], ev.Pos[1], ev.Rel[0], ev.Rel[1])
	for n := range 2 {
		if a, ok := mt.axes[n]; ok {
			a.SetPosition(ev.Pos[n], ev.Timestamp)
		}
		if r, ok := mt.rollers[n]; ok {
			r.Move(ev.Rel[n])
		}
	}
}
