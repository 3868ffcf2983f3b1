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

package experiment

import (
	"github.com/chronostim/chronostim/curated"
	"github.com/chronostim/chronostim/input"
	"github.com/chronostim/chronostim/presentation"
	"github.com/chronostim/chronostim/sound"
	"github.com/chronostim/chronostim/timing"
	"github.com/chronostim/chronostim/video"
)

// Response is the result of presenting a stimulus.
type Response struct {
	// when the stimulus started
	Onset timing.Timestamp

	// the button chosen and the time it was chosen. Button is nil if there
	// was no chooser or if the wait timed out
	Button *input.Button
	Time   timing.Timestamp
}

// RT returns the response time relative to the onset. Returns false if there
// was no response.
func (r Response) RT() (int64, bool) {
	if r.Button == nil {
		return 0, false
	}
	return r.Time.Time - r.Onset.Time, true
}

// Stimulus describes how a stimulus is presented.
type Stimulus struct {
	// length of the presentation in milliseconds. with a chooser this is
	// the maximum length of the wait for a response. zero means no limit
	// with a chooser
	Duration int64

	// jitter is added to the duration. ignored if there is a chooser
	Jitter int64

	// optional chooser that ends the presentation
	Chooser *input.ButtonChooser

	// responses earlier than MinDuration after the onset are ignored
	MinDuration int64
}

func (s *Session) respond(clk *presentation.Clock, onset timing.Timestamp, st Stimulus) (Response, error) {
	r := Response{Onset: onset}
	if st.Chooser != nil {
		b, ts, err := st.Chooser.WaitChoice(st.MinDuration, st.Duration, clk)
		if err != nil {
			return r, err
		}
		r.Button = b
		r.Time = ts
		return r, nil
	}

	if st.Jitter > 0 {
		clk.Delay(st.Duration, presentation.WithJitter(st.Jitter))
	} else {
		clk.Delay(st.Duration)
	}
	return r, nil
}

// Present shows the drawable in the centre of the screen at the virtual time
// of the clock. The drawable is removed once the stimulus duration has
// passed or a response has been made.
func (s *Session) Present(clk *presentation.Clock, d video.Drawable, st Stimulus) (Response, error) {
	h := s.Video.ShowCentered(d)

	onset, _, err := s.Video.UpdateScreen(video.WithClock(clk), video.Force())
	if err != nil {
		s.Video.Unshow(h)
		return Response{}, err
	}

	r, err := s.respond(clk, onset, st)
	s.Video.Unshow(h)
	if err != nil {
		return r, err
	}

	if _, _, err := s.Video.UpdateScreen(video.WithClock(clk), video.Force()); err != nil {
		return r, err
	}

	return r, nil
}

// PresentSound plays the clip at the virtual time of the clock. Without a
// chooser or a duration the clock is advanced by the length of the clip.
func (s *Session) PresentSound(clk *presentation.Clock, p sound.PCM, name string, st Stimulus) (Response, error) {
	if s.Sound == nil {
		return Response{}, curated.Errorf(NoAudio)
	}

	opts := []sound.PlayOption{sound.WithClock(clk)}
	if st.Chooser == nil && st.Duration == 0 {
		opts = append(opts, sound.Advance())
	}

	onset, err := s.Sound.Play(p, name, opts...)
	if err != nil {
		return Response{}, err
	}

	if st.Chooser == nil && st.Duration == 0 {
		return Response{Onset: onset}, nil
	}

	return s.respond(clk, onset, st)
}
