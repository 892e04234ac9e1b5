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

package savechip

// Bus is the cartridge backup bus as seen from the console.
//
// Read8() and Write8() access the backup region at 0x0e000000, which is eight
// bits wide. EEPROMSend() and EEPROMReceive() are DMA transfers to and from
// the EEPROM region at 0x0d000000. Each halfword carries one bit, in bit zero.
type Bus interface {
	Read8(offset uint32) uint8
	Write8(offset uint32, data uint8)
	EEPROMSend(bits []uint16)
	EEPROMReceive(bits []uint16)
}

// Driver copies the entire contents of a save chip to or from a buffer. The
// buffer is exactly the size of the chip.
type Driver interface {
	Read(bus Bus, buf []byte)
	Write(bus Bus, buf []byte)
}
