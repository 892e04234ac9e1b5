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

import (
	"bytes"

	"github.com/jetsetilly/linkdump/hardware/cartridge"
)

// Classify decides the capacity of the save chip on the cartridge.
//
// The first gameSize bytes of the image are scanned for a save library
// identifier. The EEPROM library is used with two sizes of chip. They are told
// apart by reading the chip with fourteen bit addresses: the small chip only
// decodes six bits of the address and so its contents repeat every 512 bytes.
//
// Returns CapacityNone if no save library is found.
func Classify(img cartridge.Image, gameSize cartridge.GameSize, bus Bus) Capacity {
	lib, _ := cartridge.FindSaveLibrary(img, gameSize)

	switch lib {
	case cartridge.LibraryEEPROM:
		return classifyEEPROM(bus)
	case cartridge.LibrarySRAM:
		return CapacitySRAM
	case cartridge.LibraryFlash64:
		return CapacityFlash64K
	case cartridge.LibraryFlash128:
		return CapacityFlash128K
	}

	return CapacityNone
}

func classifyEEPROM(bus Bus) Capacity {
	buf := make([]byte, CapacityEEPROM8K)
	eepromDriver{addrBits: 14}.Read(bus, buf)

	first := buf[:CapacityEEPROM512]
	for i := int(CapacityEEPROM512); i < len(buf); i += int(CapacityEEPROM512) {
		if !bytes.Equal(first, buf[i:i+int(CapacityEEPROM512)]) {
			return CapacityEEPROM8K
		}
	}
	return CapacityEEPROM512
}
