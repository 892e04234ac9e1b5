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

// Package cartridge gives access to the cartridge ROM as it appears on the
// console bus.
//
// The Image interface is the view of the cartridge that the peripheral
// program has. Offsets are byte offsets from the start of the ROM window
// (0x08000000). An image is never copied. It is read in place.
//
// Two implementations are provided. ROM wraps a ROM file and reproduces the
// open-bus behaviour of a real cartridge: reading past the end of the ROM
// returns the low 16 bits of the halfword address. Slot is a hot-pluggable
// Image, used when the peripheral must wait for a cartridge to be inserted.
//
// Probe() and ProbeSettled() discover the size of the image by looking for
// the open-bus pattern. ParseHeader() decodes the 0xc0 byte cartridge header.
// FindSaveLibrary() scans the image for the identifier of the save library
// that the game was linked with.
package cartridge
