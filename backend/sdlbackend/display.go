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

package sdlbackend

import (
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/chronostim/chronostim/backend"
	"github.com/chronostim/chronostim/timing"
)

// Size implements the backend.Display interface.
func (b *Backend) Size() (int, int) {
	return b.width, b.height
}

// Clear implements the backend.Display interface.
func (b *Backend) Clear(col backend.Color) {
	gl.ClearColor(float32(col.R)/255, float32(col.G)/255, float32(col.B)/255, float32(col.A)/255)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Swap implements the backend.Display interface.
func (b *Backend) Swap(blocking bool) (timing.Timestamp, error) {
	return timing.Measure(b.clk, func() error {
		b.window.GLSwap()
		if blocking {
			// the point cannot be drawn until the swap has completed
			gl.Begin(gl.POINTS)
			gl.Color4ub(0, 0, 0, 0)
			gl.Vertex2i(0, 0)
			gl.End()
			gl.Finish()
		}
		if err := gl.GetError(); err != gl.NO_ERROR {
			return fmt.Errorf("gl: error %#x during swap", err)
		}
		return nil
	})
}

// Rect is a solid rectangle. It implements the video.Drawable interface.
type Rect struct {
	Width  int
	Height int
	Color  backend.Color
}

// NewRect is the preferred method of initialisation for the Rect type.
func (b *Backend) NewRect(width, height int, col backend.Color) *Rect {
	return &Rect{
		Width:  width,
		Height: height,
		Color:  col,
	}
}

// Size returns the size of the rectangle in pixels.
func (r *Rect) Size() (int, int) {
	return r.Width, r.Height
}

// Show draws the rectangle with its top left corner at the position.
func (r *Rect) Show(x, y int) {
	x0, y0 := int32(x), int32(y)
	x1, y1 := int32(x+r.Width), int32(y+r.Height)
	gl.Color4ub(r.Color.R, r.Color.G, r.Color.B, r.Color.A)
	gl.Begin(gl.QUADS)
	gl.Vertex2i(x0, y0)
	gl.Vertex2i(x1, y0)
	gl.Vertex2i(x1, y1)
	gl.Vertex2i(x0, y1)
	gl.End()
}

// IsActive returns false. A Rect never changes from frame to frame.
func (r *Rect) IsActive() bool {
	return false
}

// LogLine describes the rectangle for the video log.
func (r *Rect) LogLine() string {
	return fmt.Sprintf("RECT\t%dx%d\t(%d, %d, %d, %d)", r.Width, r.Height, r.Color.R, r.Color.G, r.Color.B, r.Color.A)
}
