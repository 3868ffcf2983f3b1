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

package timing

import (
	"fmt"

	"github.com/chronostim/chronostim/curated"
)

// NegativeLatency is returned by NewTimestamp() when the latency argument is
// less than zero.
const NegativeLatency = "timing: negative latency (%d)"

// Timestamp is a point in time with an uncertainty. The actual moment the
// timestamp describes lies somewhere in the range [Time, Time+MaxLatency].
//
// All values are milliseconds on the monotonic wall clock. MaxLatency is
// never negative.
type Timestamp struct {
	Time       int64
	MaxLatency int64
}

// NewTimestamp is the preferred method of initialisation for the Timestamp
// type when the latency is not known to be valid.
func NewTimestamp(t int64, latency int64) (Timestamp, error) {
	if latency < 0 {
		return Timestamp{}, curated.Errorf(NegativeLatency, latency)
	}
	return Timestamp{Time: t, MaxLatency: latency}, nil
}

// At returns a timestamp with no uncertainty.
func At(t int64) Timestamp {
	return Timestamp{Time: t}
}

func (ts Timestamp) String() string {
	return fmt.Sprintf("%d(+%d)", ts.Time, ts.MaxLatency)
}

// End returns the latest moment the timestamp can describe.
func (ts Timestamp) End() int64 {
	return ts.Time + ts.MaxLatency
}

// Then combines two timestamps along a causal chain. The result has the time
// of the later event and the uncertainty of both.
func (ts Timestamp) Then(next Timestamp) Timestamp {
	return Timestamp{
		Time:       next.Time,
		MaxLatency: ts.MaxLatency + next.MaxLatency,
	}
}

// Widen returns a timestamp with additional uncertainty. Negative values are
// ignored.
func (ts Timestamp) Widen(ms int64) Timestamp {
	if ms > 0 {
		ts.MaxLatency += ms
	}
	return ts
}

// Before returns true if the timestamp starts before the specified time.
func (ts Timestamp) Before(t int64) bool {
	return ts.Time < t
}
