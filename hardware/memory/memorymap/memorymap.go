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

package memorymap

// Area represents the different areas of memory.
type Area int

func (a Area) String() string {
	switch a {
	case Save:
		return "Save"
	case Cartridge:
		return "Cartridge"
	}

	return "undefined"
}

// The different memory areas visible to the link protocol.
const (
	Undefined Area = iota
	Save
	Cartridge
)

// The origin and memory top for each area of memory.
const (
	OriginSave = uint32(0x07000000)
	MemtopSave = uint32(0x0701ffff)
	OriginCart = uint32(0x08000000)
	MemtopCart = uint32(0x0dffffff)
)

// The cartridge ROM is visible in three wait-state windows of 32MB each.
// CartridgeBits keeps the bits of an address that index the ROM.
const CartridgeBits = uint32(0x01ffffff)

// SaveSentinel is the address that the host uses to ask for the save image.
const SaveSentinel = OriginSave

// MapAddress translates the address argument into an offset into an area.
func MapAddress(address uint32) (uint32, Area) {
	switch {
	case address >= OriginSave && address <= MemtopSave:
		return address - OriginSave, Save
	case address >= OriginCart && address <= MemtopCart:
		return address & CartridgeBits, Cartridge
	}
	return 0, Undefined
}

// IsArea returns true if the address is in the specified area.
func IsArea(address uint32, area Area) bool {
	_, a := MapAddress(address)
	return area == a
}
