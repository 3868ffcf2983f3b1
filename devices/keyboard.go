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
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/chronostim/chronostim/backend"
	"github.com/chronostim/chronostim/curated"
	"github.com/chronostim/chronostim/environment"
	"github.com/chronostim/chronostim/input"
	"github.com/chronostim/chronostim/logger"
	"github.com/chronostim/chronostim/tracklog"
)

// KeyName returns the canonical form of a key name. Key names are compared
// in Unicode normalisation form C and in upper case, so "space", "Space"
// and "SPACE" are the same key.
func KeyName(name string) string {
	return strings.ToUpper(norm.NFC.String(strings.TrimSpace(name)))
}

// KeyTrack binds keyboard keys to buttons.
type KeyTrack struct {
	track

	keys map[string]*input.Button

	// every key name seen in an event
	seen map[string]bool
}

// NewKeyTrack is the preferred method of initialisation for the KeyTrack
// type.
func NewKeyTrack(env *environment.Environment, pump Pump, sink tracklog.Sink) *KeyTrack {
	kt := &KeyTrack{
		track: newTrack(env, pump, sink, "keyboard"),
		keys:  make(map[string]*input.Button),
		seen:  make(map[string]bool),
	}
	kt.handle(backend.KeyEvent, kt.event)
	return kt
}

// Key returns the button bound to the named key, creating it if necessary.
func (kt *KeyTrack) Key(name string) *input.Button {
	name = KeyName(name)
	if b, ok := kt.keys[name]; ok {
		return b
	}
	b := input.NewButton(name)
	kt.keys[name] = b
	return b
}

// AssignButton binds a button to the named key. It is an error to bind a key
// more than once.
func (kt *KeyTrack) AssignButton(b *input.Button, name string) error {
	name = KeyName(name)
	if _, ok := kt.keys[name]; ok {
		return curated.Errorf(AlreadyBound, fmt.Sprintf("key %s", name))
	}
	kt.keys[name] = b
	return nil
}

// Keys returns the sorted names of every bound key.
func (kt *KeyTrack) Keys() []string {
	names := make([]string, 0, len(kt.keys))
	for k := range kt.keys {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// KeyChooser returns a ButtonChooser for the named keys. If no names are
// given the chooser includes every bound key and every key that has been
// seen in an event.
func (kt *KeyTrack) KeyChooser(names ...string) *input.ButtonChooser {
	if len(names) == 0 {
		for k := range kt.seen {
			kt.Key(k)
		}
		names = kt.Keys()
	}

	buttons := make([]*input.Button, 0, len(names))
	for _, n := range names {
		buttons = append(buttons, kt.Key(n))
	}
	return input.NewButtonChooser(kt.pump, buttons...)
}

func (kt *KeyTrack) event(ev backend.Event) {
	name := KeyName(ev.Name)
	if name == "" {
		logger.Logf(kt.env, "devices", "key event with no name: %s", ev)
		return
	}
	kt.seen[name] = true

	kt.record(ev.Timestamp, "%s\t%s", pressRelease(ev.Pressed), name)

	if b, ok := kt.keys[name]; ok {
		b.SetPressed(ev.Pressed, ev.Timestamp)
	}
}
