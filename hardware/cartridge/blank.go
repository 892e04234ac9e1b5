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

import "encoding/binary"

// branch instruction to the end of the header. the usual first word of a ROM
const entryBranch = 0xea00002e

// offset at which Blank() places the save library identifier
const blankLibraryOffset = 0x400

// Blank creates ROM data of the given size with a valid header. The rest of
// the ROM is filled with 0xff. If library is not empty it is written into the
// ROM as a save library identifier (eg. "FLASH1M_V103").
//
// The data is a stand-in cartridge for loopback testing. It has no program.
func Blank(size int, title string, library string) []byte {
	if size < HeaderSize {
		size = HeaderSize
	}
	data := make([]byte, size)
	for i := range data {
		data[i] = 0xff
	}

	binary.LittleEndian.PutUint32(data[0:], entryBranch)
	binary.LittleEndian.PutUint32(data[SignatureOffset:], Signature)

	// the rest of the logo is left blank
	for i := hdrLogo + 4; i < hdrTitle; i++ {
		data[i] = 0x00
	}

	for i := hdrTitle; i < hdrComplement; i++ {
		data[i] = 0x00
	}
	copy(data[hdrTitle:hdrGameCode], title)
	copy(data[hdrGameCode:hdrMakerCode], "ZZZE")
	copy(data[hdrMakerCode:hdrFixed], "01")
	data[hdrFixed] = fixedValue
	data[hdrComplement] = Complement(data)
	data[hdrComplement+1] = 0x00
	data[hdrComplement+2] = 0x00

	if library != "" && blankLibraryOffset+len(library) <= size {
		copy(data[blankLibraryOffset:], library)
	}

	return data
}
