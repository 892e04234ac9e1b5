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

// Package memorymap describes the parts of the console address space that the
// link protocol can see.
//
// The READ_DATA command carries a raw 32-bit address. MapAddress() turns that
// address into an Area and an offset into the area, so that callers never
// dereference a raw address. The areas are:
//
//	Save		0x07000000 - 0x0701ffff		the cached save image (see below)
//	Cartridge	0x08000000 - 0x0dffffff		cartridge ROM and its wait-state mirrors
//
// The Save area is an alias. On the console 0x07000000 is object attribute
// memory, which is of no interest to a dumping host, and the peripheral
// program reuses that address to mean "the save image". Only the area's
// origin is part of the wire protocol; offsets beyond the origin are a
// linkdump extension and are bounds-checked against the save capacity.
//
// Everything else is Undefined, including the backup chip region. The chips
// are only accessed by the save chip drivers, with interrupts masked.
package memorymap
