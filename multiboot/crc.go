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

package multiboot

// CRC is the checksum calculated over the unencrypted body of the program.
type CRC struct {
	crc  uint32
	fin  uint32
	mask uint32
}

// NewCRC is the preferred method of initialisation for the CRC type. The
// final values are exchanged during the handshake.
func NewCRC(finalA uint8, finalB uint8) *CRC {
	return &CRC{
		crc:  0xc387,
		mask: 0xc37b,
		fin:  0xffff0000 | uint32(finalB)<<8 | uint32(finalA),
	}
}

// Step adds a word to the checksum.
func (c *CRC) Step(v uint32) {
	for i := 0; i < 32; i++ {
		bit := (c.crc ^ v) & 0x01
		c.crc >>= 1
		if bit != 0 {
			c.crc ^= c.mask
		}
		v >>= 1
	}
}

// Digest returns the checksum. The checksum can only be digested once.
func (c *CRC) Digest() uint16 {
	c.Step(c.fin)
	return uint16(c.crc)
}

// Encrypter is the stream cipher used for the body of the program.
type Encrypter struct {
	seed uint32
}

// NewEncrypter is the preferred method of initialisation for the Encrypter
// type.
func NewEncrypter(seed uint32) *Encrypter {
	return &Encrypter{seed: seed}
}

// Step encrypts the word found at offset in the program. Words must be
// encrypted in order. Encryption and decryption are the same operation.
func (e *Encrypter) Step(v uint32, offset uint32) uint32 {
	e.seed = e.seed*0x6f646573 + 1
	return e.seed ^ v ^ (0xfe000000 - offset) ^ 0x43202f2f
}
