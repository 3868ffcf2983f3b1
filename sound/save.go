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
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/chronostim/chronostim/curated"
)

// EncodeError is returned by Save.
const EncodeError = "sound: save: %v"

// Save writes the clip to w as a 16 bit WAV file. The data is written in
// its entirety before the header is finalised, so w must be seekable.
func Save(w io.WriteSeeker, p PCM) error {
	if p.SampleRate <= 0 || p.Channels <= 0 {
		return curated.Errorf(EncodeError, "bad parameters for wav encoding")
	}

	data := make([]int, len(p.Data))
	for i, s := range p.Data {
		data[i] = int(s)
	}

	enc := wav.NewEncoder(w, p.SampleRate, 16, p.Channels, 1)
	err := enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: p.Channels, SampleRate: p.SampleRate},
		Data:           data,
		SourceBitDepth: 16,
	})
	if err != nil {
		return curated.Errorf(EncodeError, err)
	}

	if err := enc.Close(); err != nil {
		return curated.Errorf(EncodeError, err)
	}

	return nil
}
