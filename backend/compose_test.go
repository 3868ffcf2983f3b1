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

package backend_test

import (
	"errors"
	"testing"

	"github.com/chronostim/chronostim/backend"
	"github.com/chronostim/chronostim/backend/headless"
	"github.com/chronostim/chronostim/test"
	"github.com/chronostim/chronostim/timing"
)

type source struct {
	name   string
	closed bool
	err    error
}

func (s *source) PollEvents(deliver func(backend.Event)) error {
	if s.err != nil {
		return s.err
	}
	deliver(backend.Event{Kind: backend.KeyEvent, Name: s.name, Timestamp: timing.At(0)})
	return nil
}

func (s *source) Close() error {
	s.closed = true
	return nil
}

func TestCompose(t *testing.T) {
	b := headless.NewBackend(100, 100)
	b.Key(0, "display", true)

	a := &source{name: "a"}
	c := &source{name: "c"}
	cmp := backend.Compose(b, a, c)

	var names []string
	test.DemandSuccess(t, cmp.PollEvents(func(ev backend.Event) {
		names = append(names, ev.Name)
	}))
	test.DemandEquality(t, len(names), 3)
	test.ExpectEquality(t, names[0], "a")
	test.ExpectEquality(t, names[1], "c")
	test.ExpectEquality(t, names[2], "display")

	// the headless backend has audio output
	_, ok := backend.AudioOutput(cmp)
	test.ExpectSuccess(t, ok)
	_, ok = backend.AudioOutput(backend.Compose(cmp))
	test.ExpectSuccess(t, ok)

	test.DemandSuccess(t, cmp.Destroy())
	test.ExpectSuccess(t, a.closed)
	test.ExpectSuccess(t, c.closed)
	test.ExpectSuccess(t, b.Destroyed())
}

func TestComposeError(t *testing.T) {
	b := headless.NewBackend(100, 100)
	fail := errors.New("device unplugged")
	cmp := backend.Compose(b, &source{err: fail})
	err := cmp.PollEvents(func(backend.Event) {})
	test.ExpectSuccess(t, errors.Is(err, fail))
}
