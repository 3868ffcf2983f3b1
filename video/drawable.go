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

package video

import (
	"fmt"

	"github.com/chronostim/chronostim/backend"
)

// Drawable is anything that can be placed on the display by a Track.
type Drawable interface {
	// the size in pixels
	Size() (int, int)

	// draw to the back buffer at the position
	Show(x, y int)

	// returns true if the drawable must be redrawn every frame
	IsActive() bool

	// the description of the drawable written to the display log
	LogLine() string
}

// SolidBackground fills the entire display with a single colour regardless
// of where it is shown.
type SolidBackground struct {
	display backend.Display
	Color   backend.Color
}

// NewSolidBackground is the preferred method of initialisation for the
// SolidBackground type.
func NewSolidBackground(display backend.Display, col backend.Color) *SolidBackground {
	return &SolidBackground{
		display: display,
		Color:   col,
	}
}

// Size implements the Drawable interface. The size of a background is the
// size of the display.
func (bg *SolidBackground) Size() (int, int) {
	return bg.display.Size()
}

// Show implements the Drawable interface.
func (bg *SolidBackground) Show(_, _ int) {
	bg.display.Clear(bg.Color)
}

// IsActive implements the Drawable interface.
func (bg *SolidBackground) IsActive() bool {
	return false
}

// LogLine implements the Drawable interface.
func (bg *SolidBackground) LogLine() string {
	return fmt.Sprintf("BG\t(%d, %d, %d, %d)", bg.Color.R, bg.Color.G, bg.Color.B, bg.Color.A)
}
