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

package devices

import (
	"fmt"

	"github.com/chronostim/chronostim/backend"
	"github.com/chronostim/chronostim/environment"
	"github.com/chronostim/chronostim/eventpump"
	"github.com/chronostim/chronostim/input"
	"github.com/chronostim/chronostim/timing"
	"github.com/chronostim/chronostim/tracklog"
)

// Sentinal error patterns
const (
	AlreadyBound = "devices: %s already bound"
	NoSuchAxis   = "devices: %s has no axis %d"
)

// Pump is the part of the event pump required by the device tracks.
type Pump interface {
	input.Pump
	SetHandler(kind backend.EventKind, h eventpump.Handler)
}

// track is embedded by each of the device tracks
type track struct {
	env    *environment.Environment
	pump   Pump
	sink   tracklog.Sink
	source string
	kinds  []backend.EventKind
}

func newTrack(env *environment.Environment, pump Pump, sink tracklog.Sink, source string) track {
	if sink == nil {
		sink = tracklog.Discard
	}
	return track{
		env:    env,
		pump:   pump,
		sink:   sink,
		source: source,
	}
}

func (trk *track) handle(kind backend.EventKind, h eventpump.Handler) {
	trk.pump.SetHandler(kind, h)
	trk.kinds = append(trk.kinds, kind)
}

func (trk *track) record(ts timing.Timestamp, format string, args ...any) {
	trk.sink.Record(tracklog.Record{
		Timestamp: ts,
		Source:    trk.source,
		Message:   fmt.Sprintf(format, args...),
	})
}

// Close removes the track's event handlers from the pump. Events of the
// kinds handled by the track are dropped from then on.
func (trk *track) Close() {
	for _, k := range trk.kinds {
		trk.pump.SetHandler(k, nil)
	}
	trk.kinds = nil
}

func pressRelease(pressed bool) string {
	if pressed {
		return "P"
	}
	return "R"
}
