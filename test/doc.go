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

// Package test bundles helper functions that remove boilerplate from the
// package level tests in linkdump.
//
// The Expect functions report a failure with t.Errorf() and let the test
// continue. The Demand functions call t.Fatalf() and are for values that
// later parts of a test depend on, such as the length of a reply before
// iterating over it.
//
// Success and failure are interpreted by type:
//
//	bool  -> true is success
//	error -> nil is success
//	nil   -> success
//
// Treating nil as success is unavoidable because a nil error interface has
// no type information.
//
// Writer implements io.Writer and captures output for comparison. It is
// used to test the logger and the CLI help output.
//
// Byte images and word slices are compared with the testify package in the
// tests themselves; these helpers are for scalar values.
package test
