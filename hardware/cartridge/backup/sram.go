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
	"github.com/jetsetilly/linkdump/environment"
)

// SRAMSize is the size of the SRAM chip. FRAM chips are the same size and
// are accessed in the same way.
const SRAMSize = 0x8000

// SRAM is a byte addressed battery backed RAM.
type SRAM struct {
	store *Store
}

// NewSRAM is the preferred method of initialisation for the SRAM type.
func NewSRAM(env *environment.Environment, savefile string) *SRAM {
	return &SRAM{
		store: NewStore(env, savefile, SRAMSize),
	}
}

func (sr *SRAM) String() string {
	return "SRAM 32K"
}

// Read8 implements the Chip interface. The chip is mirrored throughout the
// backup region.
func (sr *SRAM) Read8(offset uint32) uint8 {
	return sr.store.Data[offset&(SRAMSize-1)]
}

// Write8 implements the Chip interface.
func (sr *SRAM) Write8(offset uint32, data uint8) {
	sr.store.Data[offset&(SRAMSize-1)] = data
}

// EEPROMSend implements the Chip interface.
func (sr *SRAM) EEPROMSend(_ []uint16) {
}

// EEPROMReceive implements the Chip interface.
func (sr *SRAM) EEPROMReceive(bits []uint16) {
	for i := range bits {
		bits[i] = 1
	}
}

// Store implements the Chip interface.
func (sr *SRAM) Store() *Store {
	return sr.store
}
