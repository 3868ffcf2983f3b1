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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The pattern is what identifies the error. Packages export the patterns they
// use as constants so that callers can test for them with Is() and Has():
//
//	const UnknownHandle = "video: unknown handle (%d)"
//
//	err := curated.Errorf(UnknownHandle, 10)
//	if curated.Is(err, UnknownHandle) {
//		...
//	}
//
// Has() is similar to Is() but checks whether the pattern occurs anywhere in
// the chain of wrapped curated errors:
//
//	f := curated.Errorf("session: %v", err)
//	curated.Has(f, UnknownHandle) // true
//	curated.Is(f, UnknownHandle)  // false
//
// IsAny() answers whether the error was created by curated.Errorf(). In this
// project a curated error is an expected error: a configuration mistake or
// misuse of the API. Uncurated errors come from the operating system or from
// a backend and are unexpected.
//
// The Error() implementation normalises the error chain by removing duplicate
// adjacent parts. Parts are separated by the sub-string ": ", so wrapping an
// error with the same prefix does not result in messages such as:
//
//	video: video: unknown handle (10)
//
// Curated errors also implement Unwrap() so that errors.Is() and errors.As()
// from the standard library can see through them to wrapped error values.
package curated
