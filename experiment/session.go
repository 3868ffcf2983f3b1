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

// Package experiment wires the components of a presentation session
// together. A Session owns a single backend for its lifetime along with the
// event pump, the device tracks, the video track and, if the backend
// supports audio, the sound track.
package experiment

import (
	"errors"
	"fmt"

	"github.com/chronostim/chronostim/backend"
	"github.com/chronostim/chronostim/curated"
	"github.com/chronostim/chronostim/devices"
	"github.com/chronostim/chronostim/environment"
	"github.com/chronostim/chronostim/eventpump"
	"github.com/chronostim/chronostim/logger"
	"github.com/chronostim/chronostim/presentation"
	"github.com/chronostim/chronostim/sound"
	"github.com/chronostim/chronostim/timing"
	"github.com/chronostim/chronostim/tracklog"
	"github.com/chronostim/chronostim/video"
)

// Sentinal error patterns
const (
	NoAudio = "experiment: backend has no audio output"
)

// Option configures a new Session.
type Option func(*Session)

// WithLog adds a log track to the session. Logging starts when the session
// is created and stops when the session is closed.
func WithLog(lt *tracklog.LogTrack) Option {
	return func(s *Session) {
		s.logs = append(s.logs, lt)
	}
}

// WithSink adds a record sink to the session. The sink receives every record
// produced by the session's tracks.
func WithSink(sink tracklog.Sink) Option {
	return func(s *Session) {
		s.sinks = append(s.sinks, sink)
	}
}

// Session is the single owner of the backend and the tracks built on it.
type Session struct {
	env *environment.Environment

	Backend backend.Backend
	Pump    *eventpump.Pump

	Keys  *devices.KeyTrack
	Mouse *devices.MouseTrack
	Joy   *devices.JoyTrack
	Video *video.Track

	// Sound is nil if the backend has no audio output
	Sound *sound.Track

	logs  []*tracklog.LogTrack
	sinks []tracklog.Sink
	sink  tracklog.Sink

	closed bool
}

// NewSession is the preferred method of initialisation for the Session type.
func NewSession(env *environment.Environment, be backend.Backend, opts ...Option) *Session {
	s := &Session{
		env:     env,
		Backend: be,
		Pump:    eventpump.NewPump(env, be, be),
	}

	for _, f := range opts {
		f(s)
	}

	sinks := make([]tracklog.Sink, 0, len(s.logs)+len(s.sinks))
	for _, lt := range s.logs {
		lt.StartLogging()
		sinks = append(sinks, lt)
	}
	sinks = append(sinks, s.sinks...)
	sink := tracklog.Multi(sinks...)
	s.sink = sink

	w, h := be.Size()
	s.Keys = devices.NewKeyTrack(env, s.Pump, sink)
	s.Mouse = devices.NewMouseTrack(env, s.Pump, sink, w, h)
	s.Joy = devices.NewJoyTrack(env, s.Pump, sink)
	s.Video = video.NewTrack(env, s.Pump, be, sink)

	if out, ok := backend.AudioOutput(be); ok {
		s.Sound = sound.NewTrack(env, s.Pump, out, sink)
	} else {
		logger.Log(env, "sound", curated.Errorf(NoAudio))
	}

	return s
}

// Environment returns the environment the session was created with.
func (s *Session) Environment() *environment.Environment {
	return s.env
}

// NewClock returns a new presentation clock starting at the current time.
func (s *Session) NewClock() *presentation.Clock {
	return presentation.NewClock(s.env, s.Pump)
}

// Logf sends a record with the source "session" to every log track and sink
// of the session.
func (s *Session) Logf(ts timing.Timestamp, format string, args ...any) {
	s.sink.Record(tracklog.Record{
		Timestamp: ts,
		Source:    "session",
		Message:   fmt.Sprintf(format, args...),
	})
}

// Close stops audio, removes the device event handlers and stops logging.
// The backend is destroyed. Closing a session more than once has no effect.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error

	if s.Sound != nil {
		errs = append(errs, s.Sound.Stop())
	}

	s.Keys.Close()
	s.Mouse.Close()
	s.Joy.Close()

	for _, lt := range s.logs {
		lt.StopLogging()
		errs = append(errs, lt.Err())
	}

	errs = append(errs, s.Backend.Destroy())

	return errors.Join(errs...)
}
