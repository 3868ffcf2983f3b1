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

package main

import (
	"fmt"
	"io"

	"github.com/chronostim/chronostim/experiment"
	"github.com/chronostim/chronostim/input"
	"github.com/chronostim/chronostim/presentation"
	"github.com/chronostim/chronostim/timing"
	"github.com/chronostim/chronostim/video"
)

// durations of the parts of a trial in milliseconds
const (
	fixationDuration = 500
	minForeperiod    = 1000
	maxForeperiod    = 2000
	responseWindow   = 2000
	interTrial       = 1000
)

// anticipatory responses are ignored
const minResponse = 100

// stimuli creates the drawables used by the task. The name is only used in
// the log.
type stimuli func(name string, width, height int) video.Drawable

type result struct {
	trial     int
	onset     int64
	rt        int64
	responded bool
}

type reactionTask struct {
	sess   *experiment.Session
	trials int

	fixation video.Drawable
	target   video.Drawable

	response *input.Button
	chooser  *input.ButtonChooser

	// called at the onset of every target. only used by the headless
	// backend to simulate a participant
	responder func(onset int64)
}

func newReactionTask(sess *experiment.Session, trials int, draw stimuli, responder func(onset int64)) (*reactionTask, error) {
	response, err := input.NewEitherButton(
		sess.Keys.Key("space"),
		sess.Mouse.Button(1),
		sess.Joy.Button(0, 0),
	)
	if err != nil {
		return nil, err
	}

	return &reactionTask{
		sess:      sess,
		trials:    trials,
		fixation:  draw("FIXATION", 20, 20),
		target:    draw("TARGET", 100, 100),
		response:  response,
		chooser:   input.NewButtonChooser(sess.Pump, response),
		responder: responder,
	}, nil
}

func (tsk *reactionTask) run() ([]result, error) {
	defer tsk.chooser.Close()

	results := make([]result, 0, tsk.trials)
	clk := tsk.sess.NewClock()

	for i := range tsk.trials {
		r, err := tsk.trial(clk, i+1)
		if err != nil {
			return results, err
		}
		results = append(results, r)
		clk.Delay(interTrial)
	}

	return results, nil
}

func (tsk *reactionTask) trial(clk *presentation.Clock, n int) (result, error) {
	vid := tsk.sess.Video

	h := vid.ShowCentered(tsk.fixation)
	if _, _, err := vid.UpdateScreen(video.WithClock(clk), video.Force()); err != nil {
		return result{}, err
	}
	clk.Delay(fixationDuration)

	vid.Unshow(h)
	if _, _, err := vid.UpdateScreen(video.WithClock(clk), video.Force()); err != nil {
		return result{}, err
	}
	clk.Jitter(minForeperiod, maxForeperiod)

	if tsk.responder != nil {
		var id video.CallbackID
		id = vid.AddUpdateCallback(func(ts timing.Timestamp) {
			vid.RemoveUpdateCallback(id)
			tsk.responder(ts.Time)
		})
	}

	resp, err := tsk.sess.Present(clk, tsk.target, experiment.Stimulus{
		Duration:    responseWindow,
		Chooser:     tsk.chooser,
		MinDuration: minResponse,
	})
	if err != nil {
		return result{}, err
	}

	r := result{trial: n, onset: resp.Onset.Time}
	r.rt, r.responded = resp.RT()

	if r.responded {
		tsk.sess.Logf(resp.Time, "RESP\t%d\t%d", n, r.rt)
	} else {
		tsk.sess.Logf(resp.Onset, "TIMEOUT\t%d", n)
	}

	return r, nil
}

// summarise writes the outcome of the task in a human readable form.
func summarise(output io.Writer, results []result) {
	var responded int
	var total, fastest, slowest int64
	for _, r := range results {
		if !r.responded {
			continue
		}
		if responded == 0 || r.rt < fastest {
			fastest = r.rt
		}
		slowest = max(slowest, r.rt)
		total += r.rt
		responded++
	}

	fmt.Fprintf(output, "trials: %d\n", len(results))
	fmt.Fprintf(output, "responses: %d\n", responded)
	if responded > 0 {
		fmt.Fprintf(output, "mean rt: %dms (fastest %dms, slowest %dms)\n", total/int64(responded), fastest, slowest)
	}
}
