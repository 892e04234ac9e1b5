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

package backup

import (
	"os"

	"github.com/jetsetilly/linkdump/environment"
	"github.com/jetsetilly/linkdump/hardware/cartridge"
	"github.com/jetsetilly/linkdump/preferences"
)

// Chip is the cartridge side of the backup bus. Read8() and Write8() access
// the backup region at 0x0e000000. EEPROMSend() and EEPROMReceive() are DMA
// transfers to and from the EEPROM region at 0x0d000000, one bit per
// halfword in bit zero.
type Chip interface {
	String() string
	Read8(offset uint32) uint8
	Write8(offset uint32, data uint8)
	EEPROMSend(bits []uint16)
	EEPROMReceive(bits []uint16)

	// the store is nil if the cartridge has no save chip
	Store() *Store
}

// None is a cartridge with no save chip. The backup region reads as 0xff and
// writes are ignored.
type None struct{}

func (None) String() string {
	return "none"
}

// Read8 implements the Chip interface.
func (None) Read8(_ uint32) uint8 {
	return 0xff
}

// Write8 implements the Chip interface.
func (None) Write8(_ uint32, _ uint8) {
}

// EEPROMSend implements the Chip interface.
func (None) EEPROMSend(_ []uint16) {
}

// EEPROMReceive implements the Chip interface.
func (None) EEPROMReceive(bits []uint16) {
	for i := range bits {
		bits[i] = 1
	}
}

// Store implements the Chip interface.
func (None) Store() *Store {
	return nil
}

// ForROM chooses and creates the chip for the cartridge image. The chip's
// store is persisted to savefile, which may be empty.
//
// The size of an EEPROM chip cannot be told from the ROM. The cartridge.eeprom
// preference decides. If the preference is "auto" then the size of an existing
// save file decides and, failing that, the size of the ROM.
func ForROM(env *environment.Environment, img cartridge.Image, size cartridge.GameSize, savefile string) Chip {
	lib, _ := cartridge.FindSaveLibrary(img, size)

	switch lib {
	case cartridge.LibraryEEPROM:
		return NewEEPROM(env, eepromSize(env, size, savefile), savefile)
	case cartridge.LibrarySRAM:
		return NewSRAM(env, savefile)
	case cartridge.LibraryFlash64:
		return NewFlash(env, Flash64K, savefile)
	case cartridge.LibraryFlash128:
		return NewFlash(env, Flash128K, savefile)
	}

	return None{}
}

func eepromSize(env *environment.Environment, size cartridge.GameSize, savefile string) int {
	switch env.Prefs.Cartridge.EEPROM.Get().(string) {
	case preferences.EEPROM512:
		return EEPROM512
	case preferences.EEPROM8K:
		return EEPROM8K
	}

	if savefile != "" {
		if fi, err := os.Stat(savefile); err == nil {
			switch fi.Size() {
			case EEPROM512:
				return EEPROM512
			case EEPROM8K:
				return EEPROM8K
			}
		}
	}

	// larger games tend to have the larger chip
	if size > 4<<20 {
		return EEPROM8K
	}
	return EEPROM512
}
