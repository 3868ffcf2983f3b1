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

// Package input is the reactive input graph. There are three kinds of input
// primitive:
//
//	Button: a pressed/released state
//	Axis:   a bounded continuous position
//	Roller: an unbounded accumulator of relative motion
//
// Primitives are connected into a graph with combinators. For example, a
// ButtonCombo is a Button that is pressed only when all of its source
// Buttons are pressed, and a ThrottledAxis follows a source Axis with a
// limited velocity and acceleration.
//
// Changes are pushed through the graph with callbacks. A setter only
// notifies callbacks when the value actually changes. Some combinators depend
// on the passing of time rather than on a change in a source (a ButtonRoller
// moves for as long as a button is held) and these are brought up to date by
// pulling: calling Update() on a node updates every node it depends on
// first. Reading a value with Position(), Normalized(), Peek() or Change()
// always updates first.
//
// The graph must not contain cycles. This is not checked.
//
// Choosers wait for one of a set of primitives to be deliberately chosen.
// The rule for choosing depends on the type of primitive. Waiting is done by
// polling the event pump and optionally synchronises a presentation clock to
// the time of the choice.
package input
