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

// Package devices binds the raw events delivered by the event pump to the
// primitives of the input package. There is one track for each class of
// device: KeyTrack, MouseTrack and JoyTrack.
//
// Each track registers itself as the handler for its event kinds when it is
// created and every event is reported to the track's sink, whether or not a
// primitive is bound to it. Events for which no primitive is bound are
// otherwise ignored.
//
// Primitives are unique per device feature. Asking a track for the same key,
// button or axis twice returns the same primitive. A primitive created
// elsewhere can be bound to a feature with one of the Assign functions, but
// a feature can only ever be bound once.
package devices
