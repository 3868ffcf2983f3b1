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
	"image"

	"github.com/chronostim/chronostim/curated"
)

// Anchor is one of the nine reference points of a rectangle.
type Anchor int

// List of valid Anchor values.
const (
	Center Anchor = iota
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

func (a Anchor) String() string {
	switch a {
	case Center:
		return "center"
	case North:
		return "north"
	case NorthEast:
		return "northeast"
	case East:
		return "east"
	case SouthEast:
		return "southeast"
	case South:
		return "south"
	case SouthWest:
		return "southwest"
	case West:
		return "west"
	case NorthWest:
		return "northwest"
	}
	return fmt.Sprintf("anchor(%d)", int(a))
}

// offset from the top-left corner of a rectangle of the specified size to
// the anchor point
func (a Anchor) offset(width, height int) (image.Point, bool) {
	switch a {
	case Center:
		return image.Pt(width/2, height/2), true
	case North:
		return image.Pt(width/2, 0), true
	case NorthEast:
		return image.Pt(width, 0), true
	case East:
		return image.Pt(width, height/2), true
	case SouthEast:
		return image.Pt(width, height), true
	case South:
		return image.Pt(width/2, height), true
	case SouthWest:
		return image.Pt(0, height), true
	case West:
		return image.Pt(0, height/2), true
	case NorthWest:
		return image.Pt(0, 0), true
	}
	return image.Point{}, false
}

// Relation is the placement of a drawable relative to another drawable. Used
// with ShowRelative().
type Relation int

// List of valid Relation values.
const (
	Below Relation = iota
	Above
	LeftOf
	RightOf
	Over
)

func (r Relation) String() string {
	switch r {
	case Below:
		return "below"
	case Above:
		return "above"
	case LeftOf:
		return "left of"
	case RightOf:
		return "right of"
	case Over:
		return "over"
	}
	return fmt.Sprintf("relation(%d)", int(r))
}

// Handle identifies a single placement of a drawable. Showing the same
// drawable twice results in two different handles.
//
// The geometry of the handle is fixed when the drawable is shown. It is not
// updated if the drawable later changes size.
type Handle struct {
	id uint64

	X      int
	Y      int
	Width  int
	Height int
}

func newHandle(id uint64, x, y, width, height int) *Handle {
	return &Handle{
		id:     id,
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

func (h *Handle) String() string {
	return fmt.Sprintf("#%d %d,%d %dx%d", h.id, h.X, h.Y, h.Width, h.Height)
}

// Anchor returns the screen coordinates of the anchor point. The centre of
// an odd sized dimension is rounded down.
func (h *Handle) Anchor(a Anchor) (image.Point, error) {
	o, ok := a.offset(h.Width, h.Height)
	if !ok {
		return image.Point{}, curated.Errorf(InvalidAnchor, a)
	}
	return image.Pt(h.X, h.Y).Add(o), nil
}

// Rect returns the area of the screen covered by the handle.
func (h *Handle) Rect() image.Rectangle {
	return image.Rect(h.X, h.Y, h.X+h.Width, h.Y+h.Height)
}
