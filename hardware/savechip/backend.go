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

import (
	"github.com/jetsetilly/linkdump/environment"
	"github.com/jetsetilly/linkdump/hardware/cartridge"
	"github.com/jetsetilly/linkdump/hardware/irq"
	"github.com/jetsetilly/linkdump/logger"
)

// Backend transfers the contents of the save chip to and from a buffer with
// interrupts masked.
type Backend struct {
	env *environment.Environment
	bus Bus
	irq *irq.Controller
}

// NewBackend is the preferred method of initialisation for the Backend type.
func NewBackend(env *environment.Environment, bus Bus, ctrl *irq.Controller) *Backend {
	return &Backend{
		env: env,
		bus: bus,
		irq: ctrl,
	}
}

// Classify the save chip. The EEPROM size test reads from the chip so
// interrupts are masked.
func (b *Backend) Classify(img cartridge.Image, gameSize cartridge.GameSize) Capacity {
	defer b.irq.Disable().Restore()
	return Classify(img, gameSize, b.bus)
}

// Backup copies the contents of the save chip into the buffer. Nothing happens
// if the capacity has no driver or if the buffer is too small.
func (b *Backend) Backup(buf []byte, c Capacity) {
	defer b.irq.Disable().Restore()

	drv := c.Driver()
	if drv == nil {
		return
	}
	if len(buf) < int(c) {
		logger.Logf(b.env, "savechip", "backup buffer too small for %s", c)
		return
	}
	drv.Read(b.bus, buf[:c])
}

// Commit copies the buffer to the save chip. Nothing happens if the capacity
// has no driver or if the buffer is too small.
func (b *Backend) Commit(buf []byte, c Capacity) {
	defer b.irq.Disable().Restore()

	drv := c.Driver()
	if drv == nil {
		return
	}
	if len(buf) < int(c) {
		logger.Logf(b.env, "savechip", "commit buffer too small for %s", c)
		return
	}
	drv.Write(b.bus, buf[:c])
}
