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
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/chronostim/chronostim/backend"
	"github.com/chronostim/chronostim/curated"
	"github.com/chronostim/chronostim/environment"
	"github.com/chronostim/chronostim/input"
	"github.com/chronostim/chronostim/tracklog"
)

// feature of a joystick. the meaning of index depends on the map the
// feature is used with
type feature struct {
	joy   int
	index int
}

func (f feature) compare(g feature) int {
	return cmp.Or(cmp.Compare(f.joy, g.joy), cmp.Compare(f.index, g.index))
}

type ballAxis struct {
	feature
	axis int
}

type hatPosition struct {
	feature
	pos backend.HatPosition
}

// JoyTrack binds joystick buttons, axes, balls and hats to input
// primitives.
//
// Each position of a hat is a separate button. When the hat moves, the
// button for the previous position is released and the button for the new
// position is pressed.
type JoyTrack struct {
	track

	buttons map[feature]*input.Button
	axes    map[feature]*input.Axis
	balls   map[ballAxis]*input.Roller
	hats    map[hatPosition]*input.Button

	// the button of the most recent position of each hat
	hatLast map[feature]*input.Button
}

// NewJoyTrack is the preferred method of initialisation for the JoyTrack
// type.
func NewJoyTrack(env *environment.Environment, pump Pump, sink tracklog.Sink) *JoyTrack {
	jt := &JoyTrack{
		track:   newTrack(env, pump, sink, "joystick"),
		buttons: make(map[feature]*input.Button),
		axes:    make(map[feature]*input.Axis),
		balls:   make(map[ballAxis]*input.Roller),
		hats:    make(map[hatPosition]*input.Button),
		hatLast: make(map[feature]*input.Button),
	}
	jt.handle(backend.JoyButtonEvent, jt.buttonEvent)
	jt.handle(backend.JoyAxisEvent, jt.axisEvent)
	jt.handle(backend.JoyBallEvent, jt.ballEvent)
	jt.handle(backend.JoyHatEvent, jt.hatEvent)
	return jt
}

// Button returns the button bound to a joystick button, creating it if
// necessary.
func (jt *JoyTrack) Button(joy, button int) *input.Button {
	k := feature{joy: joy, index: button}
	if b, ok := jt.buttons[k]; ok {
		return b
	}
	b := input.NewButton(fmt.Sprintf("Button %d of joystick %d", button, joy))
	jt.buttons[k] = b
	return b
}

// AssignButton binds a button to a joystick button.
func (jt *JoyTrack) AssignButton(b *input.Button, joy, button int) error {
	k := feature{joy: joy, index: button}
	if _, ok := jt.buttons[k]; ok {
		return curated.Errorf(AlreadyBound, fmt.Sprintf("button %d of joystick %d", button, joy))
	}
	jt.buttons[k] = b
	return nil
}

// Axis returns the axis bound to a joystick axis, creating it if necessary.
// The domain of a joystick axis is -1.0 to 1.0.
func (jt *JoyTrack) Axis(joy, axis int) *input.Axis {
	k := feature{joy: joy, index: axis}
	if a, ok := jt.axes[k]; ok {
		return a
	}

	// the domain is valid so there can be no error
	a, _ := input.NewAxis(fmt.Sprintf("Axis %d of joystick %d", axis, joy), -1, 1)
	jt.axes[k] = a
	return a
}

// AssignAxis binds an axis to a joystick axis.
func (jt *JoyTrack) AssignAxis(a *input.Axis, joy, axis int) error {
	k := feature{joy: joy, index: axis}
	if _, ok := jt.axes[k]; ok {
		return curated.Errorf(AlreadyBound, fmt.Sprintf("axis %d of joystick %d", axis, joy))
	}
	jt.axes[k] = a
	return nil
}

// Ball returns the roller bound to one axis of a joystick ball, creating it
// if necessary. The ball axis is 0 (horizontal) or 1 (vertical).
func (jt *JoyTrack) Ball(joy, ball, axis int) (*input.Roller, error) {
	if axis != 0 && axis != 1 {
		return nil, curated.Errorf(NoSuchAxis, fmt.Sprintf("ball %d of joystick %d", ball, joy), axis)
	}
	k := ballAxis{feature: feature{joy: joy, index: ball}, axis: axis}
	if r, ok := jt.balls[k]; ok {
		return r, nil
	}
	r := input.NewRoller(fmt.Sprintf("Axis %d of ball %d of joystick %d", axis, ball, joy))
	jt.balls[k] = r
	return r, nil
}

// AssignBall binds a roller to one axis of a joystick ball.
func (jt *JoyTrack) AssignBall(r *input.Roller, joy, ball, axis int) error {
	if axis != 0 && axis != 1 {
		return curated.Errorf(NoSuchAxis, fmt.Sprintf("ball %d of joystick %d", ball, joy), axis)
	}
	k := ballAxis{feature: feature{joy: joy, index: ball}, axis: axis}
	if _, ok := jt.balls[k]; ok {
		return curated.Errorf(AlreadyBound, fmt.Sprintf("axis %d of ball %d of joystick %d", axis, ball, joy))
	}
	jt.balls[k] = r
	return nil
}

// Hat returns the button bound to a position of a joystick hat, creating it
// if necessary.
func (jt *JoyTrack) Hat(joy, hat int, pos backend.HatPosition) *input.Button {
	k := hatPosition{feature: feature{joy: joy, index: hat}, pos: pos}
	if b, ok := jt.hats[k]; ok {
		return b
	}
	b := input.NewButton(fmt.Sprintf("Hat %d of joystick %d in position %s", hat, joy, pos))
	jt.hats[k] = b
	return b
}

// AssignHat binds a button to a position of a joystick hat.
func (jt *JoyTrack) AssignHat(b *input.Button, joy, hat int, pos backend.HatPosition) error {
	k := hatPosition{feature: feature{joy: joy, index: hat}, pos: pos}
	if _, ok := jt.hats[k]; ok {
		return curated.Errorf(AlreadyBound, fmt.Sprintf("position %s of hat %d of joystick %d", pos, hat, joy))
	}
	jt.hats[k] = b
	return nil
}

// ButtonChooser returns a ButtonChooser for every bound joystick button and
// every bound hat position other than the centre.
func (jt *JoyTrack) ButtonChooser() *input.ButtonChooser {
	var buttons []*input.Button

	hats := slices.SortedFunc(maps.Keys(jt.hats), func(a, b hatPosition) int {
		return cmp.Or(a.compare(b.feature), cmp.Compare(a.pos.X, b.pos.X), cmp.Compare(a.pos.Y, b.pos.Y))
	})
	for _, k := range hats {
		if !k.pos.Centred() {
			buttons = append(buttons, jt.hats[k])
		}
	}

	for _, k := range slices.SortedFunc(maps.Keys(jt.buttons), feature.compare) {
		buttons = append(buttons, jt.buttons[k])
	}

	return input.NewButtonChooser(jt.pump, buttons...)
}

// AxisChooser returns an AxisChooser for every bound joystick axis.
func (jt *JoyTrack) AxisChooser() *input.AxisChooser {
	var axes []*input.Axis
	for _, k := range slices.SortedFunc(maps.Keys(jt.axes), feature.compare) {
		axes = append(axes, jt.axes[k])
	}
	return input.NewAxisChooser(jt.pump, axes...)
}

// BallChooser returns a RollerChooser for every bound ball axis.
func (jt *JoyTrack) BallChooser() *input.RollerChooser {
	var rollers []*input.Roller
	keys := slices.SortedFunc(maps.Keys(jt.balls), func(a, b ballAxis) int {
		return cmp.Or(a.compare(b.feature), cmp.Compare(a.axis, b.axis))
	})
	for _, k := range keys {
		rollers = append(rollers, jt.balls[k])
	}
	return input.NewRollerChooser(jt.pump, rollers...)
}

func (jt *JoyTrack) buttonEvent(ev backend.Event) {
	jt.record(ev.Timestamp, "%s\t%d\t%d", pressRelease(ev.Pressed), ev.Device, ev.Index)
	if b, ok := jt.buttons[feature{joy: ev.Device, index: ev.Index}]; ok {
		b.SetPressed(ev.Pressed, ev.Timestamp)
	}
}

func (jt *JoyTrack) axisEvent(ev backend.Event) {
	jt.record(ev.Timestamp, "A\t%d\t%d\t%f", ev.Device, ev.Index, ev.Value)
	if a, ok := jt.axes[feature{joy: ev.Device, index: ev.Index}]; ok {
		a.SetPosition(ev.Value, ev.Timestamp)
	}
}

func (jt *JoyTrack) ballEvent(ev backend.Event) {
	jt.record(ev.Timestamp, "L\t%d\t%d\t%f\t%f", ev.Device, ev.Index, ev.Rel[0], ev.Rel[1])
	for axis := range 2 {
		k := ballAxis{feature: feature{joy: ev.Device, index: ev.Index}, axis: axis}
		if r, ok := jt.balls[k]; ok {
			r.Move(ev.Rel[axis])
		}
	}
}

func (jt *JoyTrack) hatEvent(ev backend.Event) {
	jt.record(ev.Timestamp, "H\t%d\t%d\t%s", ev.Device, ev.Index, ev.Hat)

	f := feature{joy: ev.Device, index: ev.Index}
	if b, ok := jt.hatLast[f]; ok {
		b.SetPressed(false, ev.Timestamp)
		delete(jt.hatLast, f)
	}
	if b, ok := jt.hats[hatPosition{feature: f, pos: ev.Hat}]; ok {
		b.SetPressed(true, ev.Timestamp)
		jt.hatLast[f] = b
	}
}
