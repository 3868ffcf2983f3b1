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

// Package random should be used in preference to the math/rand package when a
// random number is required by a timing component. For example, the jitter
// applied to a presentation clock delay.
//
// Every environment has its own Random instance. Two instances with the same
// seed produce the same sequence of numbers, which means that an experiment
// session can be replayed exactly. If the same random numbers are required
// every single time then call Normalise(). This is useful for testing
// purposes.
package random
