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

// Package tracklog is the destination of the records produced by the timing
// core. Every completed display update and every device transition is
// reported as a Record to a Sink. The core never owns storage for the
// records.
//
// LogTrack is the text implementation of Sink. It writes one line per
// record:
//
//	time<TAB>latency<TAB>message
//
// Read() parses the same format.
package tracklog

import (
	"fmt"
	"io"
	"sync"

	"github.com/chronostim/chronostim/timing"
)

// Record is a single timestamped message from a track.
type Record struct {
	Timestamp timing.Timestamp
	Source    string
	Message   string
}

func (r Record) String() string {
	return fmt.Sprintf("%d\t%d\t%s", r.Timestamp.Time, r.Timestamp.MaxLatency, r.Message)
}

// Sink implementations receive records from tracks.
type Sink interface {
	Record(r Record)
}

// Multi returns a Sink that forwards every record to each of the sinks in
// turn. Nil sinks are skipped.
func Multi(sinks ...Sink) Sink {
	m := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			m = append(m, s)
		}
	}
	return m
}

type multi []Sink

func (m multi) Record(r Record) {
	for _, s := range m {
		s.Record(r)
	}
}

// Discard is a Sink that does nothing with the records it receives.
var Discard Sink = discard{}

type discard struct{}

func (discard) Record(_ Record) {}

// LogTrack writes records to an io.Writer. Records received while logging is
// stopped are discarded.
type LogTrack struct {
	crit sync.Mutex

	name    string
	w       io.Writer
	clk     timing.WallClock
	logging bool

	// the first error returned by the writer. once set nothing more is
	// written
	err error
}

// NewLogTrack is the preferred method of initialisation for the LogTrack
// type. The clock is used to timestamp the begin and end markers. Logging
// does not start until StartLogging() is called.
func NewLogTrack(name string, w io.Writer, clk timing.WallClock) *LogTrack {
	return &LogTrack{
		name: name,
		w:    w,
		clk:  clk,
	}
}

// Name returns the name the LogTrack was created with.
func (lt *LogTrack) Name() string {
	return lt.name
}

// StartLogging begins logging. Writes the begin marker if logging was not
// already started.
func (lt *LogTrack) StartLogging() {
	lt.crit.Lock()
	defer lt.crit.Unlock()
	if lt.logging {
		return
	}
	lt.logging = true
	lt.write(timing.At(lt.clk.Now()), "B\tLogging Begins")
}

// StopLogging writes the end marker and stops logging.
func (lt *LogTrack) StopLogging() {
	lt.crit.Lock()
	defer lt.crit.Unlock()
	if !lt.logging {
		return
	}
	lt.write(timing.At(lt.clk.Now()), "E\tLogging Ends")
	lt.logging = false
}

// IsLogging returns true if StartLogging() has been called and
// StopLogging() has not been called since.
func (lt *LogTrack) IsLogging() bool {
	lt.crit.Lock()
	defer lt.crit.Unlock()
	return lt.logging
}

// Record implements the Sink interface.
func (lt *LogTrack) Record(r Record) {
	lt.crit.Lock()
	defer lt.crit.Unlock()
	if !lt.logging {
		return
	}
	lt.write(r.Timestamp, r.Message)
}

// Logf formats a message and records it with the LogTrack's name as the
// source.
func (lt *LogTrack) Logf(ts timing.Timestamp, format string, args ...any) {
	lt.Record(Record{
		Timestamp: ts,
		Source:    lt.name,
		Message:   fmt.Sprintf(format, args...),
	})
}

// Err returns the first error encountered while writing.
func (lt *LogTrack) Err() error {
	lt.crit.Lock()
	defer lt.crit.Unlock()
	return lt.err
}

func (lt *LogTrack) write(ts timing.Timestamp, msg string) {
	if lt.err != nil {
		return
	}
	_, lt.err = fmt.Fprintf(lt.w, "%d\t%d\t%s\n", ts.Time, ts.MaxLatency, msg)
}
