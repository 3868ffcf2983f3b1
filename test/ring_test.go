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

package test_test

import (
	"io"
	"testing"

	"github.com/chronostim/chronostim/test"
)

func TestRingWriter(t *testing.T) {
	r, err := test.NewRingWriter(10)
	test.DemandSuccess(t, err)

	io.WriteString(r, "abc")
	test.ExpectEquality(t, r.String(), "abc")

	io.WriteString(r, "defghij")
	test.ExpectEquality(t, r.String(), "abcdefghij")

	io.WriteString(r, "kl")
	test.ExpectEquality(t, r.String(), "cdefghijkl")

	// writes larger than the ring keep only the tail
	io.WriteString(r, "0123456789ABC")
	test.ExpectEquality(t, r.String(), "3456789ABC")

	r.Reset()
	test.ExpectEquality(t, r.String(), "")

	_, err = test.NewRingWriter(0)
	test.ExpectFailure(t, err)
}

func TestExpectations(t *testing.T) {
	test.ExpectSuccess(t, true)
	test.ExpectSuccess(t, nil)
	test.ExpectFailure(t, false)
	test.ExpectFailure(t, io.EOF)
	test.ExpectApproximate(t, 0.95, 1.0, 0.1)
	test.ExpectInequality(t, 1, 2)
}
