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
	"github.com/chronostim/chronostim/random"
)

// Label is used to name the environment
type Label string

// Environment is used to provide context for a session. Components are given
// the environment explicitly when they are created rather than looking up a
// global instance.
type Environment struct {
	Label Label

	// any randomisation required by the timing components should be
	// retrieved through this structure
	Random *random.Random

	// the session preferences
	Prefs *Preferences
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type.
//
// The prefs argument can be nil, in which case a new in-memory Preferences
// instance will be created. Providing a non-nil value allows the preferences
// of more than one session to be shared.
func NewEnvironment(label Label, p *Preferences) (*Environment, error) {
	if p == nil {
		var err error
		p, err = NewPreferences("")
		if err != nil {
			return nil, err
		}
	}

	env := &Environment{
		Label:  label,
		Prefs:  p,
		Random: random.NewRandom(int64(p.Seed.Int())),
	}

	// changing the seed preference restarts the random sequence
	p.Seed.SetHookPost(func(v prefs.Value) error {
		env.Random.Seed(v.(int64))
		return nil
	})

	return env, nil
}

// Normalise ensures the environment is in a known default state. Useful for
// testing where the initial state must be the same for every run.
func (env *Environment) Normalise() {
	env.Prefs.SetDefaults()
	env.Random.Normalise()
}

// AllowLogging implements the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	return env.Prefs.Logging.Bool()
}

func (env *Environment) String() string {
	if env.Label == "" {
		return "main"
	}
	return string(env.Label)
}
