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
	"slices"

	"github.com/chronostim/chronostim/backend"
	"github.com/chronostim/chronostim/curated"
	"github.com/chronostim/chronostim/environment"
	"github.com/chronostim/chronostim/timing"
	"github.com/chronostim/chronostim/tracklog"
)

// Sentinal error patterns
const (
	UnknownHandle   = "video: handle not pending (%v)"
	InvalidAnchor   = "video: invalid anchor (%v)"
	InvalidRelation = "video: invalid relation (%v)"
)

// Pump is the part of the event pump required by the Track.
type Pump interface {
	timing.WallClock
	Poll() error
	TimedCall(t int64, f func() error) (timing.Timestamp, error)
}

// Clock is the part of the presentation clock required by UpdateScreen().
type Clock interface {
	Get() int64
	TareTo(ts timing.Timestamp)
	AccumulateError(ms int64)
}

// Placement is a drawable and the position it is drawn at.
type Placement struct {
	Handle   *Handle
	Drawable Drawable
	X, Y     int
}

// CallbackID is returned by AddUpdateCallback() and is used to remove the
// callback.
type CallbackID int

type updateCallback struct {
	id CallbackID
	f  func(timing.Timestamp)
}

// Track maintains the list of drawables to be shown by the next update and
// the list of drawables that were shown by the most recent update.
type Track struct {
	env     *environment.Environment
	pump    Pump
	display backend.Display
	sink    tracklog.Sink

	width  int
	height int

	// the drawables that will be shown by the next update, in the order they
	// are drawn
	pending []Placement

	// copy of the pending list at the time of the most recent update
	onscreen []Placement

	nextHandle uint64

	lmtr limiter

	lastUpdated timing.Timestamp

	// number of frames shown
	frames int

	afterUpdate []func()

	callbacks []updateCallback
	nextID    CallbackID
}

// NewTrack is the preferred method of initialisation for the Track type.
// The resolution of the display is noted at creation time and written to
// the sink.
func NewTrack(env *environment.Environment, pump Pump, display backend.Display, sink tracklog.Sink) *Track {
	if sink == nil {
		sink = tracklog.Discard
	}

	trk := &Track{
		env:     env,
		pump:    pump,
		display: display,
		sink:    sink,
	}
	trk.width, trk.height = display.Size()
	trk.lmtr.setRate(env.Prefs.MaxFramerate.Int())

	trk.LogResolution()

	return trk
}

func (trk *Track) record(ts timing.Timestamp, format string, args ...any) {
	trk.sink.Record(tracklog.Record{
		Timestamp: ts,
		Source:    "video",
		Message:   fmt.Sprintf(format, args...),
	})
}

// LogResolution writes the resolution and display mode to the sink.
func (trk *Track) LogResolution() {
	mode := "Window"
	if trk.env.Prefs.Fullscreen.Bool() {
		mode = "Fullscreen"
	}
	trk.record(timing.At(trk.pump.Now()), "R\t%d\t%d\t%s", trk.width, trk.height, mode)
}

// Resolution returns the size of the display in pixels.
func (trk *Track) Resolution() (int, int) {
	return trk.width, trk.height
}

// SetMaximumFramerate limits the rate at which frames are shown. A value of
// zero or less removes the limit.
func (trk *Track) SetMaximumFramerate(fps int) {
	trk.lmtr.setRate(fps)
}

// LastUpdated returns the timestamp of the most recent update.
func (trk *Track) LastUpdated() timing.Timestamp {
	return trk.lastUpdated
}

// Pending returns a copy of the pending list.
func (trk *Track) Pending() []Placement {
	return slices.Clone(trk.pending)
}

// Onscreen returns a copy of the list of drawables shown by the most recent
// update.
func (trk *Track) Onscreen() []Placement {
	return slices.Clone(trk.onscreen)
}

// Show adds the drawable to the pending list at the position. The drawable
// will be shown by the next update.
func (trk *Track) Show(d Drawable, x, y int) *Handle {
	w, h := d.Size()
	trk.nextHandle++
	hnd := newHandle(trk.nextHandle, x, y, w, h)
	trk.pending = append(trk.pending, Placement{
		Handle:   hnd,
		Drawable: d,
		X:        x,
		Y:        y,
	})
	return hnd
}

// ShowProportional shows the drawable at a position specified as a
// proportion of the display size. With constrain set, (0,0) places the
// drawable in the top-left corner and (1,1) places it in the bottom-right
// corner, in both cases fully on screen. Without constrain, the proportion
// gives the position of the centre of the drawable.
func (trk *Track) ShowProportional(d Drawable, x, y float64, constrain bool) *Handle {
	w, h := d.Size()
	var px, py int
	if constrain {
		px = int(float64(trk.width-w) * x)
		py = int(float64(trk.height-h) * y)
	} else {
		px = int(float64(trk.width)*x) - w/2
		py = int(float64(trk.height)*y) - h/2
	}
	return trk.Show(d, px, py)
}

// ShowCentered shows the drawable in the centre of the display.
func (trk *Track) ShowCentered(d Drawable) *Handle {
	return trk.ShowProportional(d, 0.5, 0.5, true)
}

// ShowRelative shows the drawable next to the reference handle, which must
// be pending. The offset is the gap in pixels between the two and is ignored
// for the Over relation.
func (trk *Track) ShowRelative(d Drawable, rel Relation, ref *Handle, offset int) (*Handle, error) {
	i := trk.find(ref)
	if i == -1 {
		return nil, curated.Errorf(UnknownHandle, ref)
	}

	p := trk.pending[i]
	rw, rh := p.Drawable.Size()
	w, h := d.Size()

	var x, y int
	switch rel {
	case Below:
		x, y = p.X+rw/2-w/2, p.Y+rh+offset
	case Above:
		x, y = p.X+rw/2-w/2, p.Y-h-offset
	case LeftOf:
		x, y = p.X-w-offset, p.Y+rh/2-h/2
	case RightOf:
		x, y = p.X+rw+offset, p.Y+rh/2-h/2
	case Over:
		x, y = p.X+rw/2-w/2, p.Y+rh/2-h/2
	default:
		return nil, curated.Errorf(InvalidRelation, rel)
	}

	return trk.Show(d, x, y), nil
}

// PropToPixel converts proportional display coordinates to pixels.
func (trk *Track) PropToPixel(x, y float64) image.Point {
	return image.Pt(int(float64(trk.width)*x), int(float64(trk.height)*y))
}

// ShowAnchored shows the drawable so that its anchor point is at pos plus
// the offset. The offset is proportional and both the x and y components
// are scaled by the height of the display, so that a proportional distance
// is the same in both directions.
func (trk *Track) ShowAnchored(d Drawable, anchor Anchor, pos image.Point, ox, oy float64) (*Handle, error) {
	offset := image.Pt(int(float64(trk.height)*ox), int(float64(trk.height)*oy))
	return trk.ShowAnchoredPixels(d, anchor, pos, offset)
}

// ShowAnchoredPixels is the same as ShowAnchored() but with the offset
// specified in pixels.
func (trk *Track) ShowAnchoredPixels(d Drawable, anchor Anchor, pos image.Point, offset image.Point) (*Handle, error) {
	w, h := d.Size()
	adj, ok := anchor.offset(w, h)
	if !ok {
		return nil, curated.Errorf(InvalidAnchor, anchor)
	}
	p := pos.Add(offset).Sub(adj)
	return trk.Show(d, p.X, p.Y), nil
}

// Unshow removes the handles from the pending list. Handles that are not
// pending are ignored. Returns the number of entries removed.
func (trk *Track) Unshow(handles ...*Handle) int {
	n := len(trk.pending)
	trk.pending = slices.DeleteFunc(slices.Clone(trk.pending), func(p Placement) bool {
		return slices.Contains(handles, p.Handle)
	})
	return n - len(trk.pending)
}

// Position returns the position of a pending handle.
func (trk *Track) Position(h *Handle) (image.Point, error) {
	i := trk.find(h)
	if i == -1 {
		return image.Point{}, curated.Errorf(UnknownHandle, h)
	}
	return image.Pt(trk.pending[i].X, trk.pending[i].Y), nil
}

// Replace removes a pending handle and shows the drawable at the same
// position. The new drawable is drawn last.
func (trk *Track) Replace(h *Handle, d Drawable) (*Handle, error) {
	i := trk.find(h)
	if i == -1 {
		return nil, curated.Errorf(UnknownHandle, h)
	}
	x, y := trk.pending[i].X, trk.pending[i].Y
	trk.Unshow(h)
	return trk.Show(d, x, y), nil
}

// Clear removes drawables from the pending list. If keepBackground is true
// then any SolidBackground is kept.
func (trk *Track) Clear(keepBackground bool) {
	var remove []*Handle
	for _, p := range trk.pending {
		if _, ok := p.Drawable.(*SolidBackground); ok && keepBackground {
			continue
		}
		remove = append(remove, p.Handle)
	}
	trk.Unshow(remove...)
}

// ClearTo removes everything from the pending list and replaces it with a
// SolidBackground of the specified colour.
func (trk *Track) ClearTo(col backend.Color) *Handle {
	trk.Clear(false)
	return trk.Show(NewSolidBackground(trk.display, col), 0, 0)
}

// ToFront moves the handle to the end of the pending list so that it is
// drawn last.
func (trk *Track) ToFront(h *Handle) error {
	i := trk.find(h)
	if i == -1 {
		return curated.Errorf(UnknownHandle, h)
	}
	p := trk.pending[i]
	trk.pending = append(slices.Delete(slices.Clone(trk.pending), i, i+1), p)
	return nil
}

// ToBack moves the handle to the start of the pending list so that it is
// drawn first.
func (trk *Track) ToBack(h *Handle) error {
	i := trk.find(h)
	if i == -1 {
		return curated.Errorf(UnknownHandle, h)
	}
	p := trk.pending[i]
	trk.pending = slices.Insert(slices.Delete(slices.Clone(trk.pending), i, i+1), 0, p)
	return nil
}

// PutBehind moves handle h so that it is drawn immediately before the
// reference handle.
func (trk *Track) PutBehind(h *Handle, ref *Handle) error {
	return trk.move(h, ref, 0)
}

// PutInFrontOf moves handle h so that it is drawn immediately after the
// reference handle.
func (trk *Track) PutInFrontOf(h *Handle, ref *Handle) error {
	return trk.move(h, ref, 1)
}

func (trk *Track) move(h *Handle, ref *Handle, after int) error {
	if trk.find(ref) == -1 {
		return curated.Errorf(UnknownHandle, ref)
	}
	i := trk.find(h)
	if i == -1 {
		return curated.Errorf(UnknownHandle, h)
	}
	if h == ref {
		return nil
	}

	p := trk.pending[i]
	pending := slices.Delete(slices.Clone(trk.pending), i, i+1)

	// position of reference after the removal of h
	j := slices.IndexFunc(pending, func(q Placement) bool {
		return q.Handle == ref
	})
	trk.pending = slices.Insert(pending, j+after, p)

	return nil
}

func (trk *Track) find(h *Handle) int {
	return slices.IndexFunc(trk.pending, func(p Placement) bool {
		return p.Handle == h
	})
}
