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

package backend

import (
	"errors"
	"io"
)

// Composite is a backend with additional event sources.
type Composite struct {
	Backend
	sources []EventSource
}

// Compose returns a backend that displays with the display backend and
// receives events from the additional sources as well as from the display
// backend. On each poll the additional sources are polled first, in order.
//
// Sources that implement io.Closer are closed when the composite is
// destroyed.
func Compose(display Backend, sources ...EventSource) *Composite {
	return &Composite{
		Backend: display,
		sources: sources,
	}
}

// PollEvents implements the EventSource interface.
func (cmp *Composite) PollEvents(deliver func(Event)) error {
	for _, src := range cmp.sources {
		if err := src.PollEvents(deliver); err != nil {
			return err
		}
	}
	return cmp.Backend.PollEvents(deliver)
}

// Destroy implements the Backend interface. The additional sources are
// closed before the display backend is destroyed.
func (cmp *Composite) Destroy() error {
	var errs []error
	for _, src := range cmp.sources {
		if c, ok := src.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	errs = append(errs, cmp.Backend.Destroy())
	return errors.Join(errs...)
}

// AudioSink returns the audio sink of the display backend. Returns false if
// the display backend has no audio output.
func (cmp *Composite) AudioSink() (AudioSink, bool) {
	return AudioOutput(cmp.Backend)
}

// AudioOutput returns the audio sink of the backend, if it has one.
func AudioOutput(b Backend) (AudioSink, bool) {
	if cmp, ok := b.(*Composite); ok {
		return cmp.AudioSink()
	}
	a, ok := b.(AudioSink)
	return a, ok
}
