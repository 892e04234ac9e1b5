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

package cartridge

// SaveLibrary identifies the save library that a game was linked with. The
// library determines the type of backup chip on the cartridge.
type SaveLibrary int

// List of save libraries.
const (
	LibraryNone SaveLibrary = iota
	LibraryEEPROM
	LibrarySRAM
	LibraryFlash64
	LibraryFlash128
)

func (lib SaveLibrary) String() string {
	switch lib {
	case LibraryEEPROM:
		return "EEPROM"
	case LibrarySRAM:
		return "SRAM"
	case LibraryFlash64:
		return "Flash64K"
	case LibraryFlash128:
		return "Flash128K"
	}
	return "none"
}

// the identifiers are followed by a version number (eg. "SRAM_V113") which is
// not needed for classification. FRAM cartridges (SRAM_F_V) behave like SRAM.
var libraryIdentifiers = []struct {
	id  string
	lib SaveLibrary
}{
	{id: "EEPROM_V", lib: LibraryEEPROM},
	{id: "SRAM_V", lib: LibrarySRAM},
	{id: "SRAM_F_V", lib: LibrarySRAM},
	{id: "FLASH_V", lib: LibraryFlash64},
	{id: "FLASH512_V", lib: LibraryFlash64},
	{id: "FLASH1M_V", lib: LibraryFlash128},
}

// readByte reads one byte from the image.
func readByte(img Image, offset uint32) byte {
	return byte(img.Read16(offset&^1) >> ((offset & 1) * 8))
}

// FindSaveLibrary scans the image, up to size bytes, for a save library
// identifier. The identifiers are word aligned in the ROM so only word
// boundaries are checked. The first identifier found is the result.
func FindSaveLibrary(img Image, size GameSize) (SaveLibrary, string) {
	for offset := uint32(0); offset < uint32(size); offset += 4 {
		// quick rejection. all identifiers start with E, S or F
		switch readByte(img, offset) {
		case 'E', 'S', 'F':
		default:
			continue
		}

		for _, l := range libraryIdentifiers {
			if matchIdentifier(img, offset, l.id, uint32(size)) {
				return l.lib, l.id
			}
		}
	}
	return LibraryNone, ""
}

func matchIdentifier(img Image, offset uint32, id string, limit uint32) bool {
	if offset+uint32(len(id)) > limit {
		return false
	}
	for i := 0; i < len(id); i++ {
		if readByte(img, offset+uint32(i)) != id[i] {
			return false
		}
	}
	return true
}
