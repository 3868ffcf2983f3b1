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
	"github.com/chronostim/chronostim/timing"
)

// Sentinal error patterns
const (
	InvalidDomain = "input: invalid axis domain (%v to %v)"
	InvalidRange  = "input: invalid range (%v to %v)"
	InvalidLimit  = "input: invalid limit (%v)"
	NoSources     = "input: %s requires at least one source"
)

// Node is implemented by the three input primitives: *Button, *Axis and
// *Roller. No other type can implement Node so a type switch over the three
// primitives is exhaustive.
type Node interface {
	Name() string

	// Update brings the node up to date, updating the nodes it depends on
	// first.
	Update()

	// Parents returns the nodes this node depends on.
	Parents() []Node

	isNode()
}

// Pump is the part of the event pump required by the input package.
type Pump interface {
	timing.WallClock
	Poll() error
}

// CallbackID is returned when a callback is added to a primitive and is used
// to remove the callback.
type CallbackID int

type callback[F any] struct {
	id CallbackID
	f  F
}

// registry is an ordered list of callbacks.
type registry[F any] struct {
	next    CallbackID
	entries []callback[F]
}

func (r *registry[F]) add(f F) CallbackID {
	r.next++
	r.entries = append(r.entries, callback[F]{id: r.next, f: f})
	return r.next
}

func (r *registry[F]) remove(id CallbackID) bool {
	for i := range r.entries {
		if r.entries[i].id == id {
			// a new array so that an iteration of the previous list is
			// unaffected
			r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

// the callbacks are called in the order they were added. a callback added or
// removed during dispatch does not affect the dispatch in progress
func (r *registry[F]) each(f func(F)) {
	entries := r.entries
	for _, e := range entries {
		f(e.f)
	}
}

func (r *registry[F]) len() int {
	return len(r.entries)
}

// base is embedded by all three primitives.
type base struct {
	name    string
	parents []Node

	// recompute is called by Update() after the parents have been updated.
	// only combinators that depend on the passing of time need it
	recompute func()
}

// Name returns the name of the node.
func (b *base) Name() string {
	return b.name
}

// SetName changes the name of the node.
func (b *base) SetName(name string) {
	b.name = name
}

// Parents returns the nodes this node depends on.
func (b *base) Parents() []Node {
	return b.parents
}

// Update brings the node up to date.
func (b *base) Update() {
	for _, p := range b.parents {
		p.Update()
	}
	if b.recompute != nil {
		b.recompute()
	}
}
