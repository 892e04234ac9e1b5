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

import "fmt"

// Capacity is the size of the save chip in bytes.
type Capacity uint32

// List of capacities. CapacityNone means no save library was found.
const (
	CapacityNone      Capacity = 0
	CapacityEEPROM512 Capacity = 0x200
	CapacityEEPROM8K  Capacity = 0x2000
	CapacitySRAM      Capacity = 0x8000
	CapacityFlash64K  Capacity = 0x10000
	CapacityFlash128K Capacity = 0x20000
)

// MaxCapacity is the largest capacity and the size of the buffer that a save
// is held in.
const MaxCapacity = int(CapacityFlash128K)

func (c Capacity) String() string {
	switch c {
	case CapacityNone:
		return "none"
	case CapacityEEPROM512:
		return "EEPROM 512B"
	case CapacityEEPROM8K:
		return "EEPROM 8K"
	case CapacitySRAM:
		return "SRAM 32K"
	case CapacityFlash64K:
		return "Flash 64K"
	case CapacityFlash128K:
		return "Flash 128K"
	}
	return fmt.Sprintf("unknown (%#x)", uint32(c))
}

// Driver returns the driver for the capacity. Returns nil if there is no
// driver for the capacity.
func (c Capacity) Driver() Driver {
	switch c {
	case CapacityEEPROM512:
		return eepromDriver{addrBits: 6}
	case CapacityEEPROM8K:
		return eepromDriver{addrBits: 14}
	case CapacitySRAM:
		return sramDriver{}
	case CapacityFlash64K:
		return flashDriver{banks: 1}
	case CapacityFlash128K:
		return flashDriver{banks: 2}
	}
	return nil
}
