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

package eventpump_test

import (
	"strings"
	"testing"

	"github.com/chronostim/chronostim/backend"
	"github.com/chronostim/chronostim/backend/headless"
	"github.com/chronostim/chronostim/environment"
	"github.com/chronostim/chronostim/eventpump"
	"github.com/chronostim/chronostim/logger"
	"github.com/chronostim/chronostim/test"
)

func newEnvironment(t *testing.T) *environment.Environment {
	t.Helper()
	env, err := environment.NewEnvironment("test", nil)
	test.DemandSuccess(t, err)
	env.Normalise()
	return env
}

func newPump(t *testing.T, b *headless.Backend) *eventpump.Pump {
	t.Helper()
	return eventpump.NewPump(newEnvironment(t), b, b)
}

func TestDispatch(t *testing.T) {
	b := headless.NewBackend(100, 100)
	p := newPump(t, b)

	var keys []string
	p.SetHandler(backend.KeyEvent, func(ev backend.Event) {
		keys = append(keys, ev.Name)
	})

	b.Key(1, "A", true)
	b.JoyAxis(1, 0, 0, 0.5)
	b.Key(1, "A", false)

	test.DemandSuccess(t, p.Poll())
	test.DemandEquality(t, len(keys), 2)
	test.ExpectEquality(t, p.Dropped(), 1)

	// removing the handler means events are dropped
	p.SetHandler(backend.KeyEvent, nil)
	b.Key(2, "B", true)
	test.DemandSuccess(t, p.Poll())
	test.ExpectEquality(t, len(keys), 2)
	test.ExpectEquality(t, p.Dropped(), 2)
}

func TestPollCallbacks(t *testing.T) {
	b := headless.NewBackend(100, 100)
	p := newPump(t, b)

	var order []int
	var id eventpump.CallbackID
	p.AddPollCallback(func() { order = append(order, 1) })
	id = p.AddPollCallback(func() {
		order = append(order, 2)
		p.RemovePollCallback(id)
	})
	p.AddPollCallback(func() { order = append(order, 3) })

	test.DemandSuccess(t, p.Poll())
	test.DemandSuccess(t, p.Poll())
	test.DemandEquality(t, len(order), 5)
	test.ExpectEquality(t, order[0], 1)
	test.ExpectEquality(t, order[1], 2)
	test.ExpectEquality(t, order[2], 3)
	test.ExpectEquality(t, order[3], 1)
	test.ExpectEquality(t, order[4], 3)

	test.ExpectFailure(t, p.RemovePollCallback(id))
}

func TestWaitUntil(t *testing.T) {
	b := headless.NewBackend(100, 100)
	p := newPump(t, b)

	test.DemandSuccess(t, p.WaitUntil(50))
	test.ExpectEquality(t, p.Now(), int64(50))
	test.ExpectEquality(t, b.Polls, 50)

	// time in the past returns immediately
	test.DemandSuccess(t, p.WaitUntil(10))
	test.ExpectEquality(t, b.Polls, 50)

	ts, err := p.TimedCall(60, func() error {
		b.Advance(3)
		return nil
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ts.Time, int64(60))
	test.ExpectEquality(t, ts.MaxLatency, int64(3))
}

func TestQuit(t *testing.T) {
	b := headless.NewBackend(100, 100)
	p := newPump(t, b)
	b.Schedule(backend.Event{Kind: backend.QuitEvent})
	test.ExpectFailure(t, p.QuitRequested())
	test.DemandSuccess(t, p.Poll())
	test.ExpectSuccess(t, p.QuitRequested())
}

func TestTimedCallLogging(t *testing.T) {
	env := newEnvironment(t)
	b := headless.NewBackend(100, 100)
	p := eventpump.NewPump(env, b, b)
	b.Advance(50)

	// lateness is not logged when logging is disabled for the environment
	logger.Clear()
	test.DemandSuccess(t, env.Prefs.Logging.Set(false))
	_, err := p.TimedCall(10, func() error { return nil })
	test.DemandSuccess(t, err)
	w := &strings.Builder{}
	test.ExpectFailure(t, logger.Write(w))

	test.DemandSuccess(t, env.Prefs.Logging.Set(true))
	_, err = p.TimedCall(10, func() error { return nil })
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, logger.Write(w))
	test.ExpectSuccess(t, strings.Contains(w.String(), "timed call started 40ms late"))
	logger.Clear()
}
