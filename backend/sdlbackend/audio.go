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

package sdlbackend

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/chronostim/chronostim/environment"
	"github.com/chronostim/chronostim/logger"
)

// the number of sample frames in the SDL audio buffer. a short buffer keeps
// the delay between queueing and output low
const bufferLength = 512

// audioQueue plays 16 bit PCM data through an SDL audio device. The device
// is opened when data is first queued and reopened if the format changes.
type audioQueue struct {
	env *environment.Environment

	id     sdl.AudioDeviceID
	open   bool
	spec   sdl.AudioSpec
	buffer []byte
}

func (aud *audioQueue) openDevice(sampleRate int, channels int) error {
	if aud.open {
		if int(aud.spec.Freq) == sampleRate && int(aud.spec.Channels) == channels {
			return nil
		}
		aud.close()
	}

	spec := &sdl.AudioSpec{
		Freq:     int32(sampleRate),
		Format:   sdl.AUDIO_S16LSB,
		Channels: uint8(channels),
		Samples:  uint16(bufferLength),
	}

	var err error
	aud.id, err = sdl.OpenAudioDevice("", false, spec, &aud.spec, 0)
	if err != nil {
		return fmt.Errorf("sdl: audio: %w", err)
	}
	aud.open = true

	logger.Logf(aud.env, "sdl", "audio device: %dHz %d channels", aud.spec.Freq, aud.spec.Channels)
	sdl.PauseAudioDevice(aud.id, false)

	return nil
}

func (aud *audioQueue) close() {
	if !aud.open {
		return
	}
	sdl.ClearQueuedAudio(aud.id)
	sdl.CloseAudioDevice(aud.id)
	aud.open = false
}

// QueueAudio implements the backend.AudioSink interface. Any audio that is
// already queued is discarded.
func (b *Backend) QueueAudio(data []int16, sampleRate int, channels int) error {
	aud := &b.audio
	if err := aud.openDevice(sampleRate, channels); err != nil {
		return err
	}

	// little endian 16 bit samples
	aud.buffer = aud.buffer[:0]
	for _, s := range data {
		aud.buffer = append(aud.buffer, byte(s), byte(uint16(s)>>8))
	}

	sdl.ClearQueuedAudio(aud.id)
	if err := sdl.QueueAudio(aud.id, aud.buffer); err != nil {
		return fmt.Errorf("sdl: audio: %w", err)
	}

	return nil
}

// StopAudio implements the backend.AudioSink interface.
func (b *Backend) StopAudio() error {
	if b.audio.open {
		sdl.ClearQueuedAudio(b.audio.id)
	}
	return nil
}
