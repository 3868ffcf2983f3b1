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

package environment

import (
	"github.com/chronostim/chronostim/prefs"
)

// Preferences for a session. Values are stored in a YAML file if a path is
// given to NewPreferences().
type Preferences struct {
	dsk *prefs.Disk

	// swap buffers in blocking mode, waiting for the vertical blank
	SyncToVBL prefs.Bool

	// display mode
	Fullscreen prefs.Bool
	Width      prefs.Int
	Height     prefs.Int

	// maximum number of frames per second. zero means unlimited
	MaxFramerate prefs.Int

	// log the measured frame rate of render loops
	ShowFPS prefs.Bool

	// adjustment applied to the timestamp of a blocking swap. the
	// timestamp becomes (end of swap - SwapAdjust, SwapAdjust)
	SwapAdjust prefs.Int

	// whether presentation clocks correct for accumulated timing error by
	// default
	CorrectErrors prefs.Bool

	// seed for the random number generator. zero means time seeded
	Seed prefs.Int

	// whether the environment allows logging to the central logger
	Logging prefs.Bool
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. An empty path means the preferences exist only in
// memory.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{
		dsk: prefs.NewDisk(path),
	}

	p.SetDefaults()

	for k, v := range map[string]any{
		"video.syncToVBL":     &p.SyncToVBL,
		"video.fullscreen":    &p.Fullscreen,
		"video.width":         &p.Width,
		"video.height":        &p.Height,
		"video.maxFramerate":  &p.MaxFramerate,
		"video.showFPS":       &p.ShowFPS,
		"video.swapAdjust":    &p.SwapAdjust,
		"clock.correctErrors": &p.CorrectErrors,
		"random.seed":         &p.Seed,
		"log.enabled":         &p.Logging,
	} {
		var err error
		switch v := v.(type) {
		case *prefs.Bool:
			err = p.dsk.Add(k, v)
		case *prefs.Int:
			err = p.dsk.Add(k, v)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := p.dsk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default value.
func (p *Preferences) SetDefaults() {
	p.SyncToVBL.Set(true)
	p.Fullscreen.Set(false)
	p.Width.Set(1024)
	p.Height.Set(768)
	p.MaxFramerate.Set(0)
	p.ShowFPS.Set(false)
	p.SwapAdjust.Set(1)
	p.CorrectErrors.Set(false)
	p.Seed.Set(0)
	p.Logging.Set(true)
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// Override preferences with a string from the command line. See
// prefs.ParseCommandLine() for the format.
func (p *Preferences) Override(s string) error {
	return p.dsk.Override(s)
}

// Keys returns the list of preference keys.
func (p *Preferences) Keys() []string {
	return p.dsk.Keys()
}
