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

package sound

import (
	"fmt"

	"github.com/chronostim/chronostim/backend"
	"github.com/chronostim/chronostim/environment"
	"github.com/chronostim/chronostim/logger"
	"github.com/chronostim/chronostim/presentation"
	"github.com/chronostim/chronostim/timing"
	"github.com/chronostim/chronostim/tracklog"
)

// how long before the start of a new clip a playing clip is stopped
const stopLead = 5

// Pump is the part of the event pump required by the sound track.
type Pump interface {
	timing.WallClock
	TimedCall(t int64, f func() error) (timing.Timestamp, error)
}

// PlayOption modifies the behaviour of Play().
type PlayOption func(*playOptions)

type playOptions struct {
	clk     *presentation.Clock
	advance bool
}

// WithClock plays the clip at the virtual time of the clock.
func WithClock(clk *presentation.Clock) PlayOption {
	return func(o *playOptions) {
		o.clk = clk
	}
}

// Advance the clock after playback begins. The clock is tared to the start
// of playback and delayed by the duration of the clip. Has no effect without
// WithClock().
func Advance() PlayOption {
	return func(o *playOptions) {
		o.advance = true
	}
}

// Track plays clips through an audio sink.
type Track struct {
	env  *environment.Environment
	pump Pump
	out  backend.AudioSink
	sink tracklog.Sink

	// the clip that is currently playing and the wall time it will end
	current string
	end     int64
}

// NewTrack is the preferred method of initialisation for the Track type. A
// nil log sink discards records.
func NewTrack(env *environment.Environment, pump Pump, out backend.AudioSink, sink tracklog.Sink) *Track {
	if sink == nil {
		sink = tracklog.Discard
	}
	return &Track{
		env:  env,
		pump: pump,
		out:  out,
		sink: sink,
	}
}

func (trk *Track) record(ts timing.Timestamp, format string, args ...any) {
	trk.sink.Record(tracklog.Record{
		Timestamp: ts,
		Source:    "sound",
		Message:   fmt.Sprintf(format, args...),
	})
}

// Playing returns true if a clip is still playing.
func (trk *Track) Playing() bool {
	return trk.current != "" && trk.pump.Now() < trk.end
}

// Play the clip. The name is used for logging only. Playback starts at the
// current time or, with WithClock(), at the virtual time of the clock. A clip
// that is already playing is stopped shortly before the new clip begins.
//
// Returns the timestamp of the start of playback.
func (trk *Track) Play(p PCM, name string, opts ...PlayOption) (timing.Timestamp, error) {
	var o playOptions
	for _, f := range opts {
		f(&o)
	}

	if name == "" {
		name = "NOFILE"
	}

	t := trk.pump.Now()
	if o.clk != nil {
		t = o.clk.Get()
	}

	if trk.Playing() {
		if _, err := trk.pump.TimedCall(t-stopLead, trk.stop); err != nil {
			return timing.Timestamp{}, err
		}
	}

	ts, err := trk.pump.TimedCall(t, func() error {
		return trk.out.QueueAudio(p.Data, p.SampleRate, p.Channels)
	})
	if err != nil {
		return timing.Timestamp{}, err
	}

	if late := ts.Time - t; late > 1 {
		logger.Logf(trk.env, "sound", "%s started %dms late", name, late)
	}

	dur := p.Duration()
	trk.current = name
	trk.end = ts.Time + dur

	if o.clk != nil && o.advance {
		o.clk.TareTo(ts)
		o.clk.Delay(dur)
	}

	trk.record(ts, "P\t%s\t%d", name, dur)

	return ts, nil
}

func (trk *Track) stop() error {
	trk.current = ""
	return trk.out.StopAudio()
}

// Stop any clip that is playing.
func (trk *Track) Stop() error {
	if trk.current == "" {
		return nil
	}
	name := trk.current
	ts, err := timing.Measure(trk.pump, trk.stop)
	if err != nil {
		return err
	}
	trk.record(ts, "S\t%s", name)
	return nil
}
