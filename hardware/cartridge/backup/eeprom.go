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

// The sizes of EEPROM chip.
const (
	EEPROM512 = 0x200
	EEPROM8K  = 0x2000
)

// EEPROMBlockSize is the number of bytes transferred by one read or write
// request.
const EEPROMBlockSize = 8

// the number of address bits in a request. the 8K chip only decodes the low
// ten bits of its fourteen bit address
const (
	EEPROMAddrBits512 = 6
	EEPROMAddrBits8K  = 14
)

// EEPROMReadBits is the length of the response to a read request. The first
// four bits are junk.
const EEPROMReadBits = 68

// EEPROM is a serial EEPROM chip.
//
// Requests are sent as a stream of bits, most significant bit first:
//
//	read:	1 1 <address> 0
//	write:	1 0 <address> <64 data bits> 0
//
// The chip tells the width of the address from the length of the request.
// Addresses are in units of eight byte blocks and wrap at the size of the
// chip. After a read request, the next receive returns four junk bits followed
// by 64 data bits. After a write request the chip reports ready by returning
// 1 in bit zero.
type EEPROM struct {
	store *Store

	// the block that the next receive will return. -1 if there is no pending
	// read request
	pending int
}

// NewEEPROM is the preferred method of initialisation for the EEPROM type.
// The size must be EEPROM512 or EEPROM8K.
func NewEEPROM(env *environment.Environment, size int, savefile string) *EEPROM {
	return &EEPROM{
		store:   NewStore(env, savefile, size),
		pending: -1,
	}
}

func (ee *EEPROM) String() string {
	if ee.store.Size() == EEPROM512 {
		return "EEPROM 512B"
	}
	return fmt.Sprintf("EEPROM %dK", ee.store.Size()/1024)
}

// Read8 implements the Chip interface. The EEPROM is not connected to the
// backup region.
func (ee *EEPROM) Read8(_ uint32) uint8 {
	return 0xff
}

// Write8 implements the Chip interface.
func (ee *EEPROM) Write8(_ uint32, _ uint8) {
}

func decodeBits(bits []uint16) uint64 {
	var v uint64
	for _, b := range bits {
		v = v<<1 | uint64(b&0x01)
	}
	return v
}

// EEPROMSend implements the Chip interface.
func (ee *EEPROM) EEPROMSend(bits []uint16) {
	ee.pending = -1

	var addrBits int
	var write bool

	switch len(bits) {
	case 2 + EEPROMAddrBits512 + 1:
		addrBits = EEPROMAddrBits512
	case 2 + EEPROMAddrBits8K + 1:
		addrBits = EEPROMAddrBits8K
	case 2 + EEPROMAddrBits512 + 64 + 1:
		addrBits = EEPROMAddrBits512
		write = true
	case 2 + EEPROMAddrBits8K + 64 + 1:
		addrBits = EEPROMAddrBits8K
		write = true
	default:
		return
	}

	req := decodeBits(bits[:2])
	if write && req != 0b10 || !write && req != 0b11 {
		return
	}

	blocks := ee.store.Size() / EEPROMBlockSize
	block := int(decodeBits(bits[2:2+addrBits])) % blocks

	if !write {
		ee.pending = block
		return
	}

	data := decodeBits(bits[2+addrBits : 2+addrBits+64])
	for i := 0; i < EEPROMBlockSize; i++ {
		ee.store.Data[block*EEPROMBlockSize+i] = uint8(data >> (56 - i*8))
	}
}

// EEPROMReceive implements the Chip interface.
func (ee *EEPROM) EEPROMReceive(bits []uint16) {
	if ee.pending == -1 {
		// ready
		for i := range bits {
			bits[i] = 1
		}
		return
	}

	block := ee.store.Data[ee.pending*EEPROMBlockSize : (ee.pending+1)*EEPROMBlockSize]
	ee.pending = -1

	for i := range bits {
		bits[i] = 0
		if i < 4 {
			continue
		}
		n := i - 4
		if n >= 64 {
			break
		}
		bits[i] = uint16(block[n/8]>>(7-n%8)) & 0x01
	}
}

// Store implements the Chip interface.
func (ee *EEPROM) Store() *Store {
	return ee.store
}
