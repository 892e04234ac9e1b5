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

package irq

import (
	"fmt"
	"sync"
)

// Source identifies the cause of an interrupt. The values match the bits of
// the IE and IF registers.
type Source uint16

// List of interrupt sources.
const (
	VBlank Source = 1 << iota
	HBlank
	VCount
	Timer0
	Timer1
	Timer2
	Timer3
	Serial
	DMA0
	DMA1
	DMA2
	DMA3
	Keypad
	GamePak
)

func (s Source) String() string {
	switch s {
	case VBlank:
		return "vblank"
	case HBlank:
		return "hblank"
	case VCount:
		return "vcount"
	case Timer0, Timer1, Timer2, Timer3:
		return "timer"
	case Serial:
		return "serial"
	case DMA0, DMA1, DMA2, DMA3:
		return "dma"
	case Keypad:
		return "keypad"
	case GamePak:
		return "gamepak"
	}
	return fmt.Sprintf("irq(%#04x)", uint16(s))
}

// Handler is called for every serviced interrupt.
type Handler func(Source)

// Controller is safe for concurrent use. Interrupts are usually raised from a
// goroutine other than the one masking them.
type Controller struct {
	crit sync.Mutex

	ime     bool
	pending Source
	handler Handler

	// number of interrupts that were raised while masked
	deferred int
}

// NewController is the preferred method of initialisation for the Controller
// type. IME is set. The handler may be nil.
func NewController(handler Handler) *Controller {
	return &Controller{
		ime:     true,
		handler: handler,
	}
}

// Enabled returns the current state of IME.
func (ctrl *Controller) Enabled() bool {
	ctrl.crit.Lock()
	defer ctrl.crit.Unlock()
	return ctrl.ime
}

// Pending returns the interrupts that have been raised but not yet serviced.
func (ctrl *Controller) Pending() Source {
	ctrl.crit.Lock()
	defer ctrl.crit.Unlock()
	return ctrl.pending
}

// Deferred returns the number of interrupts raised while IME was clear.
func (ctrl *Controller) Deferred() int {
	ctrl.crit.Lock()
	defer ctrl.crit.Unlock()
	return ctrl.deferred
}

// Raise an interrupt. It is serviced immediately if IME is set, otherwise it
// is held until IME is restored.
func (ctrl *Controller) Raise(src Source) {
	ctrl.crit.Lock()
	if !ctrl.ime {
		ctrl.pending |= src
		ctrl.deferred++
		ctrl.crit.Unlock()
		return
	}
	h := ctrl.handler
	ctrl.crit.Unlock()

	if h != nil {
		h(src)
	}
}

// Disable clears IME and returns a Guard that will restore the previous
// state.
func (ctrl *Controller) Disable() Guard {
	ctrl.crit.Lock()
	defer ctrl.crit.Unlock()
	g := Guard{ctrl: ctrl, prev: ctrl.ime}
	ctrl.ime = false
	return g
}

// service all pending interrupts. handler is called outside of the critical
// section.
func (ctrl *Controller) service() {
	ctrl.crit.Lock()
	if !ctrl.ime || ctrl.pending == 0 {
		ctrl.crit.Unlock()
		return
	}
	p := ctrl.pending
	ctrl.pending = 0
	h := ctrl.handler
	ctrl.crit.Unlock()

	if h == nil {
		return
	}
	for s := VBlank; s <= GamePak; s <<= 1 {
		if p&s == s {
			h(s)
		}
	}
}

// Guard is returned by Controller.Disable().
type Guard struct {
	ctrl *Controller
	prev bool
}

// Restore IME to the value it had when the Guard was created. Nested guards
// must be restored in reverse order.
func (g Guard) Restore() {
	if g.ctrl == nil {
		return
	}
	g.ctrl.crit.Lock()
	g.ctrl.ime = g.prev
	g.ctrl.crit.Unlock()
	g.ctrl.service()
}
