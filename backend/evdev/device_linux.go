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

package evdev

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/chronostim/chronostim/backend"
	"github.com/chronostim/chronostim/environment"
	"github.com/chronostim/chronostim/logger"
	"github.com/chronostim/chronostim/timing"
)

// ioctl requests
const (
	eviocgname    = 0x81004506 // EVIOCGNAME(256)
	eviocsclockid = 0x400445a0 // EVIOCSCLOCKID
	eviocgabs     = 0x80184540 // EVIOCGABS(0)
)

// size of struct input_event on this platform
const eventSize = int(unsafe.Sizeof(unix.Timeval{})) + 8

// struct input_absinfo
type absInfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

// Device is an evdev input device. It implements the backend.EventSource
// interface.
type Device struct {
	env  *environment.Environment
	clk  timing.WallClock
	path string
	name string
	fd   int

	// the kernel is stamping events with the monotonic clock
	monotonic bool

	lastPoll int64

	tr  translator
	buf []byte
}

// Open the device at the path. The index is used as the device number of
// joystick events. The width and height are the size of the display, which
// limits the position of the mouse pointer.
func Open(env *environment.Environment, clk timing.WallClock, path string, index int, width, height int) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("evdev: %s: %w", path, err)
	}

	dev := &Device{
		env:      env,
		clk:      clk,
		path:     path,
		fd:       fd,
		lastPoll: clk.Now(),
		tr:       newTranslator(index, width, height),
		buf:      make([]byte, eventSize*64),
	}
	dev.tr.queryAbs = dev.queryAbs

	var name [256]byte
	if err := ioctl(fd, eviocgname, unsafe.Pointer(&name[0])); err == nil {
		dev.name = string(bytes.TrimRight(name[:], "\x00"))
	} else {
		dev.name = path
	}

	if err := unix.IoctlSetPointerInt(fd, eviocsclockid, unix.CLOCK_MONOTONIC); err != nil {
		logger.Logf(env, "devices", "%s: cannot use monotonic clock, events stamped at poll time: %v", dev.name, err)
	} else {
		dev.monotonic = true
	}

	logger.Logf(env, "devices", "evdev: %s (%s)", dev.name, path)

	return dev, nil
}

func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func (dev *Device) queryAbs(code uint16) (AbsRange, bool) {
	var info absInfo
	if err := ioctl(dev.fd, eviocgabs+uintptr(code), unsafe.Pointer(&info)); err != nil {
		logger.Logf(dev.env, "devices", "%s: axis %d: %v", dev.name, code, err)
		return AbsRange{}, false
	}
	return AbsRange{Min: info.Minimum, Max: info.Maximum}, true
}

// Name returns the name reported by the device.
func (dev *Device) Name() string {
	return dev.name
}

// PollEvents implements the backend.EventSource interface.
func (dev *Device) PollEvents(deliver func(backend.Event)) error {
	now := dev.clk.Now()
	pollTS := timing.Timestamp{Time: dev.lastPoll, MaxLatency: now - dev.lastPoll}
	dev.lastPoll = now

	for {
		n, err := unix.Read(dev.fd, dev.buf)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) {
				return nil
			}
			return fmt.Errorf("evdev: %s: %w", dev.name, err)
		}
		if n == 0 {
			return nil
		}

		for _, ev := range ParseEvents(dev.buf[:n]) {
			ts := pollTS
			if dev.monotonic {
				ts = timing.At(ev.Time)
			}
			dev.tr.translate(ev, ts, deliver)
		}

		if n < len(dev.buf) {
			return nil
		}
	}
}

// Close the device.
func (dev *Device) Close() error {
	if dev.fd < 0 {
		return nil
	}
	err := unix.Close(dev.fd)
	dev.fd = -1
	return err
}

// ParseEvents decodes a buffer of struct input_event. Incomplete events at
// the end of the buffer are ignored.
func ParseEvents(buf []byte) []InputEvent {
	evs := make([]InputEvent, 0, len(buf)/eventSize)
	for len(buf) >= eventSize {
		var ev InputEvent
		if eventSize == 24 {
			sec := int64(binary.NativeEndian.Uint64(buf[0:]))
			usec := int64(binary.NativeEndian.Uint64(buf[8:]))
			ev.Time = timing.FromTimeval(sec, usec)
		} else {
			sec := int64(int32(binary.NativeEndian.Uint32(buf[0:])))
			usec := int64(int32(binary.NativeEndian.Uint32(buf[4:])))
			ev.Time = timing.FromTimeval(sec, usec)
		}
		p := buf[eventSize-8:]
		ev.Type = binary.NativeEndian.Uint16(p[0:])
		ev.Code = binary.NativeEndian.Uint16(p[2:])
		ev.Value = int32(binary.NativeEndian.Uint32(p[4:]))
		evs = append(evs, ev)
		buf = buf[eventSize:]
	}
	return evs
}
