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

import (
	"fmt"
	"os"

	"github.com/jetsetilly/linkdump/curated"
)

// Image is the cartridge ROM as seen from the console. Offsets are byte
// offsets into the ROM window. Read16 offsets should be halfword aligned and
// Read32 offsets word aligned. Unaligned offsets are rounded down.
type Image interface {
	Read16(offset uint32) uint16
	Read32(offset uint32) uint32
}

// MaxROMSize is the size of the ROM window. Offsets wrap at this boundary.
const MaxROMSize = 0x02000000

// openBus returns the value seen on the bus when there is no ROM at offset.
// The cartridge latches the low 16 bits of the halfword address.
func openBus(offset uint32) uint16 {
	return uint16(offset >> 1)
}

// ROM implements the Image interface over ROM data.
type ROM struct {
	Filename string
	data     []byte
}

// Sentinel errors for ROM loading.
const (
	ROMFileError = "rom: %v"
	ROMTooLarge  = "rom: file is too large (%d bytes)"
)

// NewROM is the preferred method of initialisation for the ROM type. The data
// is not copied. Data beyond MaxROMSize is ignored.
func NewROM(data []byte) *ROM {
	if len(data) > MaxROMSize {
		data = data[:MaxROMSize]
	}
	return &ROM{data: data}
}

// LoadROM reads a ROM file from disk.
func LoadROM(filename string) (*ROM, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf(ROMFileError, err)
	}
	if len(data) > MaxROMSize {
		return nil, curated.Errorf(ROMTooLarge, len(data))
	}
	rom := NewROM(data)
	rom.Filename = filename
	return rom, nil
}

func (rom *ROM) String() string {
	if rom.Filename == "" {
		return fmt.Sprintf("rom (%d bytes)", len(rom.data))
	}
	return fmt.Sprintf("%s (%d bytes)", rom.Filename, len(rom.data))
}

// Size returns the number of bytes of ROM data.
func (rom *ROM) Size() int {
	return len(rom.data)
}

// Read16 implements the Image interface.
func (rom *ROM) Read16(offset uint32) uint16 {
	offset = (offset &^ 1) % MaxROMSize
	if int(offset)+1 >= len(rom.data) {
		if int(offset) < len(rom.data) {
			// a ROM with an odd number of bytes. the unused byte is zero
			return uint16(rom.data[offset])
		}
		return openBus(offset)
	}
	return uint16(rom.data[offset]) | uint16(rom.data[offset+1])<<8
}

// Read32 implements the Image interface.
func (rom *ROM) Read32(offset uint32) uint32 {
	offset &^= 3
	return uint32(rom.Read16(offset)) | uint32(rom.Read16(offset+2))<<16
}
