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

package prefs

import (
	"strings"
)

// ParseCommandLine divides a preferences string from the command line into
// key/value pairs. The string has the form:
//
//	video.syncToVBL::false; video.maxFramerate::60
//
// Malformed pairs are ignored.
func ParseCommandLine(s string) map[string]string {
	kv := make(map[string]string)
	for _, p := range strings.Split(s, ";") {
		f := strings.Split(p, "::")
		if len(f) != 2 {
			continue
		}
		k := strings.TrimSpace(f[0])
		if k == "" {
			continue
		}
		kv[k] = strings.TrimSpace(f[1])
	}
	return kv
}

// Override applies a preferences string from the command line to the values
// in the Disk instance. Overrides are not saved unless Save() is called
// explicitly.
func (dsk *Disk) Override(s string) error {
	for k, v := range ParseCommandLine(s) {
		if err := dsk.Set(k, v); err != nil {
			return err
		}
	}
	return nil
}
