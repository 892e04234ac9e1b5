// This file is part of Linkdump.
//
// Linkdump is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Linkdump is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Linkdump.  If not, see <https://www.gnu.org/licenses/>.

// Package curated wraps the plain Go error type with errors that are
// identified by their formatting pattern rather than by their message.
//
// Every package in linkdump that can fail in an expected way declares its
// patterns as exported constants. For example, the cartridge package:
//
//	const NotPresent = "cartridge: not present (signature %08x)"
//
// A caller can then test for the condition without caring about the values
// used to build the message:
//
//	_, err := cartridge.Probe(img)
//	if curated.Is(err, cartridge.NotPresent) {
//		// wait for the cartridge to be seated
//	}
//
// Has() looks for the pattern anywhere in a chain of curated errors. This is
// useful when an error has passed through several layers, each of which have
// added context:
//
//	err := curated.Errorf("dispatcher: %v", err)
//	curated.Has(err, link.Closed) // true
//
// The Error() implementation normalises the chain so that adjacent duplicate
// parts are printed once. Wrapping an error that already starts with
// "link:" in another "link: %v" pattern will print "link: closed" and not
// "link: link: closed".
//
// Curated errors also implement Unwrap() so the errors.Is() and errors.As()
// functions from the standard library see through them to any wrapped
// uncurated error (an io.EOF from a closed TCP connection, say).
package curated
