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

package dispatcher

import (
	"github.com/jetsetilly/linkdump/hardware/memory/memorymap"
)

// Region is the memory that a READ_DATA address refers to.
type Region int

// List of regions.
const (
	RegionUnmapped Region = iota
	RegionCartridge
	RegionSave
)

func (r Region) String() string {
	switch r {
	case RegionCartridge:
		return "cartridge"
	case RegionSave:
		return "save"
	}
	return "unmapped"
}

// Resolve an address from the host into a region and an offset into that
// region.
//
// The save sentinel address, and the addresses following it up to the size
// of the save buffer, refer to the save buffer. The three ROM windows refer to
// the cartridge. Everything else is unmapped.
func Resolve(addr uint32) (Region, uint32) {
	offset, area := memorymap.MapAddress(addr)
	switch area {
	case memorymap.Save:
		return RegionSave, offset
	case memorymap.Cartridge:
		return RegionCartridge, offset
	}
	return RegionUnmapped, 0
}
