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

package headless

import (
	"fmt"

	"github.com/chronostim/chronostim/backend"
)

// Box is a drawable rectangle. Drawing a box records its position in the
// frame being built by the backend.
type Box struct {
	b *Backend

	Name   string
	Width  int
	Height int
	Color  backend.Color

	// an active box asks for the display to be redrawn every frame
	Active bool

	// the number of times the box has been drawn
	Shown int
}

// NewBox is the preferred method of initialisation for the Box type.
func (b *Backend) NewBox(name string, width, height int) *Box {
	return &Box{
		b:      b,
		Name:   name,
		Width:  width,
		Height: height,
		Color:  backend.White,
	}
}

// Size returns the size of the box in pixels.
func (bx *Box) Size() (int, int) {
	return bx.Width, bx.Height
}

// Show draws the box at the position.
func (bx *Box) Show(x, y int) {
	bx.Shown++
	bx.b.frame = append(bx.b.frame, Draw{Name: bx.Name, X: x, Y: y})
}

// IsActive returns true if the box should be redrawn every frame.
func (bx *Box) IsActive() bool {
	return bx.Active
}

// LogLine returns the description of the box used in display logs.
func (bx *Box) LogLine() string {
	return fmt.Sprintf("BOX\t%s\t%dx%d", bx.Name, bx.Width, bx.Height)
}
