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

// Package eventpump drains events from a backend and dispatches them to the
// registered device handlers. The pump is the only place where the timing
// core waits, and waiting is always done by polling: there is no sleeping
// and no goroutine.
package eventpump

import (
	"github.com/chronostim/chronostim/backend"
	"github.com/chronostim/chronostim/environment"
	"github.com/chronostim/chronostim/logger"
	"github.com/chronostim/chronostim/timing"
)

// Handler receives events of the kind it was registered for.
type Handler func(ev backend.Event)

// CallbackID is returned by AddPollCallback() and is used to remove the
// callback.
type CallbackID int

type pollCallback struct {
	id CallbackID
	f  func()
}

// Pump dispatches raw events from an EventSource to the handler registered
// for the kind of event. Events of a kind with no handler are dropped.
type Pump struct {
	env *environment.Environment
	src backend.EventSource
	clk timing.WallClock

	handlers map[backend.EventKind]Handler

	callbacks []pollCallback
	nextID    CallbackID

	quit bool

	// number of events dropped because no handler was registered
	dropped int
}

// NewPump is the preferred method of initialisation for the Pump type.
func NewPump(env *environment.Environment, src backend.EventSource, clk timing.WallClock) *Pump {
	return &Pump{
		env:      env,
		src:      src,
		clk:      clk,
		handlers: make(map[backend.EventKind]Handler),
	}
}

// SetHandler registers the handler for a kind of event, replacing any
// existing handler. A nil handler removes the registration.
func (p *Pump) SetHandler(kind backend.EventKind, h Handler) {
	if h == nil {
		delete(p.handlers, kind)
		return
	}
	p.handlers[kind] = h
}

// AddPollCallback adds a function to be called after every poll, in the
// order the functions were added.
func (p *Pump) AddPollCallback(f func()) CallbackID {
	p.nextID++
	p.callbacks = append(p.callbacks, pollCallback{id: p.nextID, f: f})
	return p.nextID
}

// RemovePollCallback removes a function added with AddPollCallback(). Returns
// false if there is no callback with that ID.
func (p *Pump) RemovePollCallback(id CallbackID) bool {
	for i := range p.callbacks {
		if p.callbacks[i].id == id {
			p.callbacks = append(p.callbacks[:i:i], p.callbacks[i+1:]...)
			return true
		}
	}
	return false
}

// Poll delivers every pending event to its handler, in the order the
// backend produced them. The cascade of callbacks caused by one event is
// complete before the next event is delivered.
func (p *Pump) Poll() error {
	err := p.src.PollEvents(p.dispatch)
	if err != nil {
		return err
	}

	// callbacks may remove themselves so iterate over a copy
	cbs := p.callbacks
	for _, cb := range cbs {
		cb.f()
	}

	return nil
}

func (p *Pump) dispatch(ev backend.Event) {
	if ev.Kind == backend.QuitEvent {
		p.quit = true
	}
	if h, ok := p.handlers[ev.Kind]; ok {
		h(ev)
		return
	}
	p.dropped++
}

// Now returns the current wall time in milliseconds.
func (p *Pump) Now() int64 {
	return p.clk.Now()
}

// WaitUntil polls the event source until the wall clock reaches the
// specified time. Returns immediately if the time has already passed.
func (p *Pump) WaitUntil(t int64) error {
	for p.clk.Now() < t {
		if err := p.Poll(); err != nil {
			return err
		}
	}
	return nil
}

// TimedCall waits until the specified time and then calls the function. The
// returned timestamp brackets the call.
func (p *Pump) TimedCall(t int64, f func() error) (timing.Timestamp, error) {
	if err := p.WaitUntil(t); err != nil {
		return timing.Timestamp{}, err
	}
	ts, err := timing.Measure(p.clk, f)
	if late := ts.Time - t; late > 1 {
		logger.Logf(p.env, "eventpump", "timed call started %dms late", late)
	}
	return ts, err
}

// QuitRequested returns true if the backend has delivered a quit event.
func (p *Pump) QuitRequested() bool {
	return p.quit
}

// Dropped returns the number of events that have been dropped because no
// handler was registered for them.
func (p *Pump) Dropped() int {
	return p.dropped
}
