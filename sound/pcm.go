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

package sound

import (
	"errors"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"

	"github.com/chronostim/chronostim/curated"
)

// Sentinal error patterns
const (
	UnsupportedFormat = "sound: unsupported format (%s)"
	DecodeError       = "sound: %s: %v"
	IncompatibleClips = "sound: cannot mix %dHz/%d with %dHz/%d"
)

// Sample rate and channel count used by synthesised clips.
const (
	DefaultSampleRate = 44100
	DefaultChannels   = 2
)

// PCM is decoded sound data. Samples are 16 bit signed values, interleaved
// if there is more than one channel.
type PCM struct {
	SampleRate int
	Channels   int
	Data       []int16
}

// Frames returns the number of samples per channel.
func (p PCM) Frames() int {
	if p.Channels <= 0 {
		return 0
	}
	return len(p.Data) / p.Channels
}

// Duration returns the length of the clip in milliseconds.
func (p PCM) Duration() int64 {
	if p.SampleRate <= 0 {
		return 0
	}
	return int64(p.Frames()) * 1000 / int64(p.SampleRate)
}

// Load decodes sound data. The format is decided by the extension of the
// name, which can be ".wav" or ".mp3".
func Load(name string, r io.ReadSeeker) (PCM, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".wav":
		return loadWAV(name, r)
	case ".mp3":
		return loadMP3(name, r)
	}
	return PCM{}, curated.Errorf(UnsupportedFormat, name)
}

func loadWAV(name string, r io.ReadSeeker) (PCM, error) {
	dec := wav.NewDecoder(r)
	if dec == nil || !dec.IsValidFile() {
		return PCM{}, curated.Errorf(DecodeError, name, "not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return PCM{}, curated.Errorf(DecodeError, name, err)
	}

	// samples of any bit depth are scaled to 16 bits
	shift := int(dec.BitDepth) - 16

	p := PCM{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		Data:       make([]int16, len(buf.Data)),
	}
	for i, v := range buf.Data {
		switch {
		case shift > 0:
			v >>= shift
		case shift < 0:
			// eight bit wav data is unsigned
			if dec.BitDepth == 8 {
				v -= 128
			}
			v <<= -shift
		}
		p.Data[i] = int16(v)
	}

	return p, nil
}

func loadMP3(name string, r io.Reader) (PCM, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return PCM{}, curated.Errorf(DecodeError, name, err)
	}

	// the decoded stream is always 16 bit little endian with two channels
	p := PCM{
		SampleRate: dec.SampleRate(),
		Channels:   2,
	}

	chunk := make([]byte, 4096)
	for {
		n, err := dec.Read(chunk)
		for i := 0; i+1 < n; i += 2 {
			p.Data = append(p.Data, int16(uint16(chunk[i])|uint16(chunk[i+1])<<8))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return PCM{}, curated.Errorf(DecodeError, name, err)
		}
	}

	return p, nil
}

// Beep synthesises a sine wave of the specified frequency and duration (in
// milliseconds). The amplitude rises from silence over the first riseFall
// milliseconds and falls back to silence over the last riseFall
// milliseconds. The scale is the proportion of the maximum amplitude, in the
// range 0 to 1.
func Beep(freq float64, duration int64, riseFall int64, scale float64) PCM {
	scale = math.Max(0, math.Min(1, scale)) * math.MaxInt16

	frames := int(duration * DefaultSampleRate / 1000)
	rise := int(riseFall * DefaultSampleRate / 1000)
	rise = min(rise, frames/2)

	p := PCM{
		SampleRate: DefaultSampleRate,
		Channels:   DefaultChannels,
		Data:       make([]int16, frames*DefaultChannels),
	}

	for i := range frames {
		v := scale * math.Sin(2*math.Pi*freq*float64(i)/DefaultSampleRate)
		if rise > 0 {
			switch {
			case i < rise:
				v *= float64(i) / float64(rise)
			case i >= frames-rise:
				v *= float64(frames-1-i) / float64(rise)
			}
		}
		for c := range DefaultChannels {
			p.Data[i*DefaultChannels+c] = int16(v)
		}
	}

	return p
}

// Mix returns a clip that is the sum of the two clips, aligned to the start
// of both. The new clip is as long as the longer clip. The second clip is
// mixed at half amplitude. Both clips must have the same sample rate and
// channel count.
func Mix(a PCM, b PCM) (PCM, error) {
	if a.SampleRate != b.SampleRate || a.Channels != b.Channels {
		return PCM{}, curated.Errorf(IncompatibleClips, a.SampleRate, a.Channels, b.SampleRate, b.Channels)
	}

	p := PCM{
		SampleRate: a.SampleRate,
		Channels:   a.Channels,
		Data:       make([]int16, max(len(a.Data), len(b.Data))),
	}
	for i := range p.Data {
		var v int32
		if i < len(a.Data) {
			v += int32(a.Data[i])
		}
		if i < len(b.Data) {
			v += int32(b.Data[i]) / 2
		}
		p.Data[i] = int16(max(math.MinInt16, min(math.MaxInt16, v)))
	}

	return p, nil
}
