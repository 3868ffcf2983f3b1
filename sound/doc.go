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

// Package sound presents audio stimuli. Clips are decoded from WAV or MP3
// files into 16 bit interleaved PCM with Load(), or synthesised with Beep().
//
// The Track type plays a clip at the virtual time of a presentation clock.
// The start of playback is timestamped and recorded in the log sink:
//
//	P	name	duration
//
// Playing a sound does not change the clock's accumulated error. Only the
// video track measures and accumulates timing error.
package sound
