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
	"fmt"

	"github.com/jetsetilly/linkdump/environment"
)

// The sizes of flash chip.
const (
	Flash64K  = 0x10000
	Flash128K = 0x20000
)

// FlashBankSize is the size of the window through which the flash chip is
// accessed. The 128K chip has two banks.
const FlashBankSize = 0x10000

// FlashSectorSize is the size of the area cleared by a sector erase.
const FlashSectorSize = 0x1000

// Manufacturer and device IDs reported in ID mode.
const (
	PanasonicManufacturer = 0x32
	PanasonicDevice       = 0x1b
	SanyoManufacturer     = 0x62
	SanyoDevice           = 0x13
)

// command addresses and values
const (
	flashAddrA = 0x5555
	flashAddrB = 0x2aaa

	flashUnlockA = 0xaa
	flashUnlockB = 0x55

	flashCmdEnterID  = 0x90
	flashCmdExitID   = 0xf0
	flashCmdErase    = 0x80
	flashCmdChipAll  = 0x10
	flashCmdSector   = 0x30
	flashCmdProgram  = 0xa0
	flashCmdBankSwap = 0xb0
)

type flashState int

const (
	flashReady flashState = iota
	flashUnlock1
	flashUnlock2
	flashEraseReady
	flashEraseUnlock1
	flashEraseUnlock2
	flashProgram
	flashBank
)

// Flash is a flash memory chip. Programming a byte can only clear bits.
// Bytes must be erased (set to 0xff) before they can be programmed with
// arbitrary values.
type Flash struct {
	store *Store

	state  flashState
	idMode bool
	bank   uint32

	manufacturer uint8
	device       uint8
}

// NewFlash is the preferred method of initialisation for the Flash type. The
// size must be Flash64K or Flash128K.
func NewFlash(env *environment.Environment, size int, savefile string) *Flash {
	fl := &Flash{
		store: NewStore(env, savefile, size),
	}
	if size == Flash128K {
		fl.manufacturer = SanyoManufacturer
		fl.device = SanyoDevice
	} else {
		fl.manufacturer = PanasonicManufacturer
		fl.device = PanasonicDevice
	}
	return fl
}

func (fl *Flash) String() string {
	return fmt.Sprintf("Flash %dK", fl.store.Size()/1024)
}

// ID returns the manufacturer and device ID of the chip.
func (fl *Flash) ID() (uint8, uint8) {
	return fl.manufacturer, fl.device
}

func (fl *Flash) address(offset uint32) uint32 {
	return fl.bank*FlashBankSize + offset&(FlashBankSize-1)
}

// Read8 implements the Chip interface.
func (fl *Flash) Read8(offset uint32) uint8 {
	offset &= FlashBankSize - 1
	if fl.idMode {
		switch offset {
		case 0:
			return fl.manufacturer
		case 1:
			return fl.device
		}
	}
	return fl.store.Data[fl.address(offset)]
}

// Write8 implements the Chip interface. Writes are commands to the chip.
// Data is only changed by the program and erase commands.
func (fl *Flash) Write8(offset uint32, data uint8) {
	offset &= FlashBankSize - 1

	switch fl.state {
	case flashReady:
		if offset == flashAddrA && data == flashUnlockA {
			fl.state = flashUnlock1
		} else if data == flashCmdExitID {
			fl.idMode = false
		}

	case flashUnlock1:
		if offset == flashAddrB && data == flashUnlockB {
			fl.state = flashUnlock2
		} else {
			fl.state = flashReady
		}

	case flashUnlock2:
		fl.state = flashReady
		if offset != flashAddrA {
			return
		}
		switch data {
		case flashCmdEnterID:
			fl.idMode = true
		case flashCmdExitID:
			fl.idMode = false
		case flashCmdErase:
			fl.state = flashEraseReady
		case flashCmdProgram:
			fl.state = flashProgram
		case flashCmdBankSwap:
			if fl.store.Size() == Flash128K {
				fl.state = flashBank
			}
		}

	case flashEraseReady:
		if offset == flashAddrA && data == flashUnlockA {
			fl.state = flashEraseUnlock1
		} else {
			fl.state = flashReady
		}

	case flashEraseUnlock1:
		if offset == flashAddrB && data == flashUnlockB {
			fl.state = flashEraseUnlock2
		} else {
			fl.state = flashReady
		}

	case flashEraseUnlock2:
		fl.state = flashReady
		switch {
		case offset == flashAddrA && data == flashCmdChipAll:
			for i := range fl.store.Data {
				fl.store.Data[i] = 0xff
			}
		case data == flashCmdSector:
			s := fl.address(offset &^ (FlashSectorSize - 1))
			for i := s; i < s+FlashSectorSize; i++ {
				fl.store.Data[i] = 0xff
			}
		}

	case flashProgram:
		fl.state = flashReady
		fl.store.Data[fl.address(offset)] &= data

	case flashBank:
		fl.state = flashReady
		if offset == 0 {
			fl.bank = uint32(data & 0x01)
		}
	}
}

// EEPROMSend implements the Chip interface.
func (fl *Flash) EEPROMSend(_ []uint16) {
}

// EEPROMReceive implements the Chip interface.
func (fl *Flash) EEPROMReceive(bits []uint16) {
	for i := range bits {
		bits[i] = 1
	}
}

// Store implements the Chip interface.
func (fl *Flash) Store() *Store {
	return fl.store
}
