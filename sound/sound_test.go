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

package sound_test

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/chronostim/chronostim/backend/headless"
	"github.com/chronostim/chronostim/curated"
	"github.com/chronostim/chronostim/environment"
	"github.com/chronostim/chronostim/eventpump"
	"github.com/chronostim/chronostim/presentation"
	"github.com/chronostim/chronostim/sound"
	"github.com/chronostim/chronostim/test"
	"github.com/chronostim/chronostim/tracklog"
)

type collect struct {
	records []tracklog.Record
}

func (c *collect) Record(r tracklog.Record) {
	c.records = append(c.records, r)
}

func writeWAV(t *testing.T, data []int16, rate int, chans int) string {
	t.Helper()
	pth := filepath.Join(t.TempDir(), "clip.wav")
	f, err := os.Create(pth)
	test.DemandSuccess(t, err)
	defer f.Close()

	test.DemandSuccess(t, sound.Save(f, sound.PCM{SampleRate: rate, Channels: chans, Data: data}))
	return pth
}

func TestLoadWAV(t *testing.T) {
	data := make([]int16, 1600)
	for i := range data {
		data[i] = int16((i % 100) * 100)
		if i%2 == 1 {
			data[i] = -data[i]
		}
	}
	pth := writeWAV(t, data, 8000, 2)

	f, err := os.Open(pth)
	test.DemandSuccess(t, err)
	defer f.Close()

	p, err := sound.Load(pth, f)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.SampleRate, 8000)
	test.ExpectEquality(t, p.Channels, 2)
	test.ExpectEquality(t, len(p.Data), 1600)
	test.ExpectEquality(t, p.Frames(), 800)
	test.ExpectEquality(t, p.Duration(), int64(100))
	test.ExpectEquality(t, p.Data[3], int16(-300))
}

func TestLoadErrors(t *testing.T) {
	_, err := sound.Load("clip.ogg", strings.NewReader(""))
	test.ExpectSuccess(t, curated.Is(err, sound.UnsupportedFormat))

	_, err = sound.Load("clip.wav", strings.NewReader("not a wav file"))
	test.ExpectSuccess(t, curated.Is(err, sound.DecodeError))
}

func TestBeep(t *testing.T) {
	p := sound.Beep(440, 250, 10, 0.8)
	test.ExpectEquality(t, p.Channels, sound.DefaultChannels)
	test.ExpectEquality(t, p.Duration(), int64(250))

	// silent at both ends of the envelope
	test.ExpectEquality(t, p.Data[0], int16(0))
	test.ExpectEquality(t, p.Data[len(p.Data)-1], int16(0))

	var peak int16
	for _, v := range p.Data {
		peak = max(peak, v)
	}
	test.ExpectSuccess(t, peak > 20000)
	test.ExpectSuccess(t, peak <= 26214)

	// channels are identical
	test.ExpectEquality(t, p.Data[101], p.Data[100])
}

func TestMix(t *testing.T) {
	a := sound.PCM{SampleRate: 100, Channels: 1, Data: []int16{100, 100}}
	b := sound.PCM{SampleRate: 100, Channels: 1, Data: []int16{100, 100, 32000, 40}}
	m, err := sound.Mix(a, b)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, slices.Equal(m.Data, []int16{150, 150, 16000, 20}))

	_, err = sound.Mix(a, sound.PCM{SampleRate: 200, Channels: 1})
	test.ExpectSuccess(t, curated.Is(err, sound.IncompatibleClips))
}

func newTrack(t *testing.T) (*sound.Track, *presentation.Clock, *headless.Backend, *collect) {
	t.Helper()
	env, err := environment.NewEnvironment("test", nil)
	test.DemandSuccess(t, err)
	env.Normalise()

	b := headless.NewBackend(640, 480)
	b.Advance(100)
	pump := eventpump.NewPump(env, b, b)
	c := &collect{}
	return sound.NewTrack(env, pump, b, c), presentation.NewClock(env, pump), b, c
}

func TestPlay(t *testing.T) {
	trk, clk, b, c := newTrack(t)
	clk.Delay(50)
	clk.AccumulateError(7)

	clip := sound.Beep(1000, 200, 0, 0.5)
	ts, err := trk.Play(clip, "beep", sound.WithClock(clk))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ts.Time, int64(150))
	test.ExpectEquality(t, len(b.Audio), 1)
	test.ExpectEquality(t, b.Audio[0].At, int64(150))
	test.ExpectEquality(t, b.Audio[0].Channels, 2)

	// the clock is not moved and its error is untouched
	test.ExpectEquality(t, clk.Get(), int64(150))
	test.ExpectEquality(t, clk.AccumulatedError(), int64(7))
	test.ExpectSuccess(t, trk.Playing())

	test.DemandEquality(t, len(c.records), 1)
	test.ExpectEquality(t, c.records[0].Message, "P\tbeep\t200")
	test.ExpectEquality(t, c.records[0].Source, "sound")
}

func TestPlayAdvance(t *testing.T) {
	trk, clk, _, _ := newTrack(t)
	clip := sound.Beep(1000, 200, 0, 0.5)

	ts, err := trk.Play(clip, "", sound.WithClock(clk), sound.Advance())
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ts.Time, int64(100))
	test.ExpectEquality(t, clk.Get(), int64(300))
	test.ExpectEquality(t, clk.AccumulatedError(), int64(0))
}

func TestPlayInterrupts(t *testing.T) {
	trk, clk, b, c := newTrack(t)
	clip := sound.Beep(1000, 200, 0, 0.5)

	_, err := trk.Play(clip, "first", sound.WithClock(clk))
	test.DemandSuccess(t, err)

	clk.Delay(100)
	ts, err := trk.Play(clip, "second", sound.WithClock(clk))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ts.Time, int64(200))
	test.ExpectEquality(t, len(b.Audio), 2)

	test.DemandSuccess(t, trk.Stop())
	test.ExpectFailure(t, trk.Playing())

	test.DemandEquality(t, len(c.records), 3)
	test.ExpectEquality(t, c.records[1].Message, "P\tsecond\t200")
	test.ExpectEquality(t, c.records[2].Message, "S\tsecond")

	// stopping twice is harmless
	test.ExpectSuccess(t, trk.Stop())
	test.ExpectEquality(t, len(c.records), 3)
}

func TestSave(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "beep.wav")
	f, err := os.Create(pth)
	test.DemandSuccess(t, err)

	beep := sound.Beep(440, 50, 5, 0.5)
	test.DemandSuccess(t, sound.Save(f, beep))
	test.DemandSuccess(t, f.Close())

	f, err = os.Open(pth)
	test.DemandSuccess(t, err)
	defer f.Close()

	p, err := sound.Load(pth, f)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.SampleRate, beep.SampleRate)
	test.ExpectEquality(t, p.Channels, beep.Channels)
	test.ExpectSuccess(t, slices.Equal(p.Data, beep.Data))

	err = sound.Save(f, sound.PCM{})
	test.ExpectSuccess(t, curated.Is(err, sound.EncodeError))
}
