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

// Package multiboot uploads a program to a console waiting in the BIOS
// multiboot handshake. This is how the peripheral program is loaded onto a
// console without a flash cartridge.
//
// The upload is made over an Exchanger. Every transfer is full-duplex. Most
// transfers only carry a halfword in each direction, in which case the reply
// is in the upper halfword of the received word.
//
// The program is sent in three parts. The 0xc0 byte header is sent in the
// clear. A key exchange gives the seed for the stream cipher and the final
// values for the checksum. The rest of the program is then sent encrypted, and
// finally the checksum calculated by each side is compared.
package multiboot
