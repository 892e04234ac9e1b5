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

package savechip

// the maximum number of times the EEPROM ready bit is polled after a write.
// the chip takes around 6ms to complete a write
const eepromPollLimit = 10000

// eepromDriver implements the serial EEPROM protocol.
type eepromDriver struct {
	addrBits int
}

func (drv eepromDriver) request(read bool, block int, data []byte) []uint16 {
	n := 2 + drv.addrBits + 1
	if !read {
		n += 64
	}
	bits := make([]uint16, 0, n)

	if read {
		bits = append(bits, 1, 1)
	} else {
		bits = append(bits, 1, 0)
	}
	for i := drv.addrBits - 1; i >= 0; i-- {
		bits = append(bits, uint16(block>>i)&0x01)
	}
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, uint16(b>>i)&0x01)
		}
	}
	return append(bits, 0)
}

// Read implements the Driver interface.
func (drv eepromDriver) Read(bus Bus, buf []byte) {
	resp := make([]uint16, 68)
	for block := 0; block < len(buf)/8; block++ {
		bus.EEPROMSend(drv.request(true, block, nil))
		bus.EEPROMReceive(resp)

		// the first four bits are junk
		for n := 0; n < 64; n++ {
			i := block*8 + n/8
			buf[i] = buf[i]<<1 | byte(resp[4+n]&0x01)
		}
	}
}

// Write implements the Driver interface.
func (drv eepromDriver) Write(bus Bus, buf []byte) {
	ready := make([]uint16, 1)
	for block := 0; block < len(buf)/8; block++ {
		bus.EEPROMSend(drv.request(false, block, buf[block*8:block*8+8]))
		for i := 0; i < eepromPollLimit; i++ {
			bus.EEPROMReceive(ready)
			if ready[0]&0x01 == 0x01 {
				break
			}
		}
	}
}

// sramDriver reads and writes SRAM one byte at a time.
type sramDriver struct{}

// Read implements the Driver interface.
func (sramDriver) Read(bus Bus, buf []byte) {
	for i := range buf {
		buf[i] = bus.Read8(uint32(i))
	}
}

// Write implements the Driver interface.
func (sramDriver) Write(bus Bus, buf []byte) {
	for i, b := range buf {
		bus.Write8(uint32(i), b)
	}
}

// flash chip constants
const (
	flashBankSize   = 0x10000
	flashSectorSize = 0x1000
)

// flashDriver implements the flash command protocol. The 128K chip is
// accessed in two banks of 64K.
type flashDriver struct {
	banks int
}

func (drv flashDriver) command(bus Bus, cmd uint8) {
	bus.Write8(0x5555, 0xaa)
	bus.Write8(0x2aaa, 0x55)
	bus.Write8(0x5555, cmd)
}

func (drv flashDriver) selectBank(bus Bus, bank int) {
	if drv.banks < 2 {
		return
	}
	drv.command(bus, 0xb0)
	bus.Write8(0x0000, uint8(bank))
}

func (drv flashDriver) eraseSector(bus Bus, offset uint32) {
	drv.command(bus, 0x80)
	bus.Write8(0x5555, 0xaa)
	bus.Write8(0x2aaa, 0x55)
	bus.Write8(offset, 0x30)
}

// Read implements the Driver interface.
func (drv flashDriver) Read(bus Bus, buf []byte) {
	defer drv.selectBank(bus, 0)
	for bank := 0; bank < drv.banks; bank++ {
		drv.selectBank(bus, bank)
		base := bank * flashBankSize
		for i := 0; i < flashBankSize && base+i < len(buf); i++ {
			buf[base+i] = bus.Read8(uint32(i))
		}
	}
}

// Write implements the Driver interface. Each sector is erased before it is
// programmed. Bytes that are erased by the sector erase are not programmed.
func (drv flashDriver) Write(bus Bus, buf []byte) {
	defer drv.selectBank(bus, 0)
	for bank := 0; bank < drv.banks; bank++ {
		drv.selectBank(bus, bank)
		base := bank * flashBankSize
		for s := 0; s < flashBankSize && base+s < len(buf); s += flashSectorSize {
			drv.eraseSector(bus, uint32(s))
			for i := s; i < s+flashSectorSize && base+i < len(buf); i++ {
				if buf[base+i] == 0xff {
					continue
				}
				drv.command(bus, 0xa0)
				bus.Write8(uint32(i), buf[base+i])
			}
		}
	}
}
