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

// Package savechip is the console side of the save chip. It classifies the
// save chip of an inserted cartridge and copies the contents of the chip to
// and from a buffer.
//
// The type of chip is identified by the save library linked into the ROM. See
// Classify(). The capacity that results is one of a closed set of values, and
// each value has a Driver that implements the chip protocol. A capacity
// without a driver is quietly ignored by the Backend.
//
// All transfers are made with interrupts masked. The chip protocols are timed
// by the CPU and a preempting interrupt can corrupt a transfer.
package savechip
