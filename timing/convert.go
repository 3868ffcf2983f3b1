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

package timing

// FromTimespec converts a seconds/nanoseconds pair to milliseconds.
func FromTimespec(sec int64, nsec int64) int64 {
	return sec*1000 + nsec/1000000
}

// FromTimeval converts a seconds/microseconds pair to milliseconds.
func FromTimeval(sec int64, usec int64) int64 {
	return sec*1000 + usec/1000
}
