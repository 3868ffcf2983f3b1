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

//go:build !statsview

package statsview

import (
	"io"
)

// DefaultAddress is used when Launch() is called with an empty address.
const DefaultAddress = "localhost:12600"

// Launch does nothing. The statsview has not been compiled in.
func Launch(output io.Writer, _ string) {
	io.WriteString(output, "stats server not available in this build\n")
}

// Available returns false. Build with the statsview tag to include it.
func Available() bool {
	return false
}
