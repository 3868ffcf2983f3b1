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
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/pborman/getopt"

	"github.com/chronostim/chronostim/backend"
	"github.com/chronostim/chronostim/backend/evdev"
	"github.com/chronostim/chronostim/backend/headless"
	"github.com/chronostim/chronostim/backend/sdlbackend"
	"github.com/chronostim/chronostim/backend/termin"
	"github.com/chronostim/chronostim/environment"
	"github.com/chronostim/chronostim/experiment"
	"github.com/chronostim/chronostim/input"
	"github.com/chronostim/chronostim/logger"
	"github.com/chronostim/chronostim/logstream"
	"github.com/chronostim/chronostim/statsview"
	"github.com/chronostim/chronostim/tracklog"
	"github.com/chronostim/chronostim/video"
)

func main() {
	headlessFlag := getopt.BoolLong("headless", 'H', "run without a display, with simulated responses")
	trials := getopt.IntLong("trials", 'n', 10, "number of trials")
	config := getopt.StringLong("config", 'c', "", "preferences file")
	override := getopt.StringLong("prefs", 'p', "", "preference overrides (key::value; key::value)")
	logPath := getopt.StringLong("log", 'l', "", "write the session log to file")
	streamAddr := getopt.StringLong("logstream", 's', "", "serve the session log over websocket at address")
	evdevPaths := getopt.ListLong("evdev", 'e', "evdev input device (may be repeated)")
	terminal := getopt.BoolLong("terminal", 't', "read key strokes from the terminal")
	graph := getopt.StringLong("graph", 'g', "", "write graphviz description of the response input to file")
	stats := getopt.BoolLong("statsview", 0, "launch runtime statistics server")
	echo := getopt.BoolLong("echo", 0, "echo debugging log to stdout")
	help := getopt.BoolLong("help", '?', "show usage")
	getopt.Parse()

	if *help {
		getopt.Usage()
		return
	}

	if *echo {
		logger.SetEcho(os.Stdout)
	}

	err := launch(options{
		headless:   *headlessFlag,
		trials:     *trials,
		config:     *config,
		override:   *override,
		logPath:    *logPath,
		streamAddr: *streamAddr,
		evdev:      *evdevPaths,
		terminal:   *terminal,
		graph:      *graph,
		stats:      *stats,
	})
	if err != nil {
		fmt.Printf("* error: %v\n", err)
		os.Exit(20)
	}
}

type options struct {
	headless   bool
	trials     int
	config     string
	override   string
	logPath    string
	streamAddr string
	evdev      []string
	terminal   bool
	graph      string
	stats      bool
}

func launch(opts options) error {
	prefs, err := environment.NewPreferences(opts.config)
	if err != nil {
		return err
	}
	if opts.override != "" {
		if err := prefs.Override(opts.override); err != nil {
			return err
		}
	}

	env, err := environment.NewEnvironment("main", prefs)
	if err != nil {
		return err
	}

	if opts.stats {
		statsview.Launch(os.Stdout, "")
	}

	var be backend.Backend
	var draw stimuli
	var responder func(onset int64)

	if opts.headless {
		hb := headless.NewBackend(prefs.Width.Int(), prefs.Height.Int())
		hb.Advance(1000)
		be = hb
		draw = func(name string, w, h int) video.Drawable {
			return hb.NewBox(name, w, h)
		}
		responder = func(onset int64) {
			hb.KeyStroke(onset+env.Random.IntRange(250, 650), "Space", 80)
		}
	} else {
		sb, err := sdlbackend.NewBackend(env)
		if err != nil {
			return err
		}
		be = sb
		draw = func(_ string, w, h int) video.Drawable {
			return sb.NewRect(w, h, backend.White)
		}
	}

	var sources []backend.EventSource
	if opts.terminal {
		kbd, err := termin.NewKeyboard(os.Stdin, be)
		if err != nil {
			_ = be.Destroy()
			return err
		}
		sources = append(sources, kbd)
	}
	for i, pth := range opts.evdev {
		w, h := be.Size()
		dev, err := evdev.Open(env, be, pth, i, w, h)
		if err != nil {
			_ = backend.Compose(be, sources...).Destroy()
			return err
		}
		sources = append(sources, dev)
	}
	if len(sources) > 0 {
		be = backend.Compose(be, sources...)
	}

	var sessOpts []experiment.Option

	if opts.logPath != "" {
		f, err := os.Create(opts.logPath)
		if err != nil {
			_ = be.Destroy()
			return err
		}
		defer f.Close()
		sessOpts = append(sessOpts, experiment.WithLog(tracklog.NewLogTrack("session", f, be)))
	}

	if opts.streamAddr != "" {
		hub := logstream.NewHub(env, logstream.Config{})
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go hub.Run(ctx)

		mux := http.NewServeMux()
		mux.Handle("/log", hub)
		srv := &http.Server{Addr: opts.streamAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Log(env, "logstream", err)
			}
		}()
		defer func() {
			ctx, done := context.WithTimeout(context.Background(), time.Second)
			defer done()
			_ = srv.Shutdown(ctx)
		}()

		fmt.Printf("log stream available at ws://%s/log\n", opts.streamAddr)
		sessOpts = append(sessOpts, experiment.WithSink(hub))
	}

	sess := experiment.NewSession(env, be, sessOpts...)

	task, err := newReactionTask(sess, opts.trials, draw, responder)
	if err != nil {
		return errors.Join(err, sess.Close())
	}

	if opts.graph != "" {
		f, err := os.Create(opts.graph)
		if err != nil {
			return errors.Join(err, sess.Close())
		}
		input.Dump(f, task.response)
		f.Close()
	}

	results, err := task.run()
	err = errors.Join(err, sess.Close())

	summarise(os.Stdout, results)

	return err
}
