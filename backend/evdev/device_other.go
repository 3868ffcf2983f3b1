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

//go:build !linux

package evdev

import (
	"errors"

	"github.com/chronostim/chronostim/backend"
	"github.com/chronostim/chronostim/environment"
	"github.com/chronostim/chronostim/timing"
)

// Device is not supported on this platform.
type Device struct{}

// Open is not supported on this platform.
func Open(_ *environment.Environment, _ timing.WallClock, path string, _ int, _, _ int) (*Device, error) {
	return nil, errors.New("evdev: not supported on this platform")
}

// Name returns the empty string.
func (dev *Device) Name() string {
	return ""
}

// PollEvents implements the backend.EventSource interface.
func (dev *Device) PollEvents(_ func(backend.Event)) error {
	return nil
}

// Close the device.
func (dev *Device) Close() error {
	return nil
}
