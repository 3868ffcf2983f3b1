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

//go:build !linux && !darwin

package termin

import (
	"errors"
	"os"

	"github.com/chronostim/chronostim/timing"
)

// NewKeyboard is not supported on this platform.
func NewKeyboard(_ *os.File, _ timing.WallClock) (*Keyboard, error) {
	return nil, errors.New("termin: terminal input is not supported on this platform")
}

func wouldBlock(_ error) bool {
	return false
}
