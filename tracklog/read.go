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

package tracklog

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/chronostim/chronostim/curated"
	"github.com/chronostim/chronostim/timing"
)

// Sentinal error patterns
const (
	MalformedLine = "tracklog: line %d: %v"
)

// Entry is a single line of a log read with Read().
type Entry struct {
	Timestamp timing.Timestamp

	// the position of the entry among those with the same time. the first
	// entry at a time is zero
	WithinTick int

	Message string
}

// Read parses a log previously written by a LogTrack. Blank lines are
// ignored.
func Read(r io.Reader) ([]Entry, error) {
	var entries []Entry

	last := int64(-1)
	within := -1

	scanner := bufio.NewScanner(r)
	ln := 0
	for scanner.Scan() {
		ln++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		f := strings.SplitN(line, "\t", 3)
		if len(f) != 3 {
			return nil, curated.Errorf(MalformedLine, ln, "too few fields")
		}

		t, err := strconv.ParseInt(f[0], 10, 64)
		if err != nil {
			return nil, curated.Errorf(MalformedLine, ln, err)
		}
		l, err := strconv.ParseInt(f[1], 10, 64)
		if err != nil {
			return nil, curated.Errorf(MalformedLine, ln, err)
		}
		ts, err := timing.NewTimestamp(t, l)
		if err != nil {
			return nil, curated.Errorf(MalformedLine, ln, err)
		}

		if t == last {
			within++
		} else {
			within = 0
			last = t
		}

		entries = append(entries, Entry{
			Timestamp:  ts,
			WithinTick: within,
			Message:    f[2],
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
