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

// Package backup emulates the save chips fitted to cartridges.
//
// There are three types of chip. SRAM is byte addressed and battery backed.
// Flash is byte addressed but must be erased before it is programmed, and
// is driven by a sequence of command writes. EEPROM is a serial device
// accessed by DMA transfers of one bit per halfword.
//
// All chips keep their contents in a Store, which can be persisted to a save
// file on disk. The save file is a raw image of the chip with no header, in
// the same format as save files produced by other tools.
//
// ForROM() chooses the chip for a ROM in the same way as the peripheral
// program classifies the cartridge: by looking for the identifier of the
// save library that the game was linked with.
package backup
