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

// Package irq models the console's interrupt master enable (IME) and the
// pending interrupt flags.
//
// Save chip transfers are bit-banged and must not be preempted. The pattern
// for a timing sensitive section is:
//
//	defer ctrl.Disable().Restore()
//
// Disable() clears IME and returns a Guard remembering the previous state.
// Restore() puts the previous state back and services any interrupt that was
// raised while masked. Because the Restore() is deferred it also runs when the
// section panics.
package irq
