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

import "sync"

// Slot is an Image that a cartridge can be inserted into and ejected from. An
// empty slot reads as open bus.
//
// Slot is safe for concurrent use. Cartridges are usually inserted from a
// goroutine other than the one probing the slot.
type Slot struct {
	crit sync.RWMutex
	img  Image
}

// NewSlot is the preferred method of initialisation for the Slot type. The
// slot is empty.
func NewSlot() *Slot {
	return &Slot{}
}

// Insert a cartridge. Any cartridge already in the slot is replaced.
func (s *Slot) Insert(img Image) {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.img = img
}

// Eject the cartridge. Ejecting an empty slot does nothing.
func (s *Slot) Eject() {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.img = nil
}

// Inserted returns the cartridge in the slot or nil if the slot is empty.
func (s *Slot) Inserted() Image {
	s.crit.RLock()
	defer s.crit.RUnlock()
	return s.img
}

// Read16 implements the Image interface.
func (s *Slot) Read16(offset uint32) uint16 {
	s.crit.RLock()
	defer s.crit.RUnlock()
	if s.img == nil {
		return openBus(offset &^ 1)
	}
	return s.img.Read16(offset)
}

// Read32 implements the Image interface.
func (s *Slot) Read32(offset uint32) uint32 {
	s.crit.RLock()
	defer s.crit.RUnlock()
	if s.img == nil {
		offset &^= 3
		return uint32(openBus(offset)) | uint32(openBus(offset+2))<<16
	}
	return s.img.Read32(offset)
}
