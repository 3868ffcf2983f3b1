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

// Package evdev reads input devices through the Linux evdev interface.
//
// The kernel stamps each event with the time it was received from the
// hardware. Devices are switched to the monotonic clock, which is the clock
// used by timing.SystemClock, so events are delivered with their exact time
// and zero latency. If the clock cannot be switched the events are stamped
// with the time of the poll instead.
//
// Event types are mapped as follows:
//
//	EV_KEY  keyboard keys    -> backend.KeyEvent
//	        mouse buttons    -> backend.MouseButtonEvent
//	        joystick buttons -> backend.JoyButtonEvent
//	EV_REL  REL_X, REL_Y     -> backend.MouseMotionEvent
//	        wheels           -> backend.JoyBallEvent
//	EV_ABS  any axis         -> backend.JoyAxisEvent
//
// Relative motion is collected until the end of the event packet
// (SYN_REPORT) and delivered as a single event. Event codes that have no
// mapping are dropped.
package evdev
