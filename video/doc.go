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

// Package video schedules frames for a display. Experiment code places
// drawables on a pending list with one of the Show functions and commits the
// pending list to the screen with UpdateScreen(). The timestamp returned by
// UpdateScreen() is the best available estimate of the moment the frame
// became visible.
//
// When a presentation clock is given to UpdateScreen() the frame is
// scheduled for the clock's virtual time. The difference between the
// requested time and the actual time is accumulated by the clock, and the
// clock is then tared to the actual time. In this way subsequent delays are
// measured from the real onset of the frame.
//
// Drawables that must be redrawn every frame are said to be active. A
// pending list that contains an active drawable is not committed by
// UpdateScreen() unless it is forced. Instead, the active drawables are
// serviced by RenderLoop().
//
// A Track is not safe for concurrent use. It is driven from the same
// goroutine as the event pump.
package video
