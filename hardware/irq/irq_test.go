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

package irq_test

import (
	"testing"

	"github.com/jetsetilly/linkdump/hardware/irq"
	"github.com/jetsetilly/linkdump/test"
)

func TestGuard(t *testing.T) {
	var serviced []irq.Source
	ctrl := irq.NewController(func(s irq.Source) {
		serviced = append(serviced, s)
	})

	ctrl.Raise(irq.VBlank)
	test.ExpectEquality(t, len(serviced), 1)

	g := ctrl.Disable()
	test.ExpectFailure(t, ctrl.Enabled())
	ctrl.Raise(irq.VBlank)
	ctrl.Raise(irq.Timer0)
	test.ExpectEquality(t, len(serviced), 1)
	test.ExpectEquality(t, ctrl.Pending(), irq.VBlank|irq.Timer0)
	test.ExpectEquality(t, ctrl.Deferred(), 2)

	g.Restore()
	test.ExpectSuccess(t, ctrl.Enabled())
	test.ExpectEquality(t, ctrl.Pending(), irq.Source(0))
	test.ExpectEquality(t, len(serviced), 3)
}

func TestNestedGuard(t *testing.T) {
	ctrl := irq.NewController(nil)

	outer := ctrl.Disable()
	inner := ctrl.Disable()
	inner.Restore()

	// inner guard restores the masked state of the outer guard
	test.ExpectFailure(t, ctrl.Enabled())
	outer.Restore()
	test.ExpectSuccess(t, ctrl.Enabled())
}

func TestGuardPanic(t *testing.T) {
	ctrl := irq.NewController(nil)

	func() {
		defer func() {
			_ = recover()
		}()
		defer ctrl.Disable().Restore()
		panic("transfer failed")
	}()

	test.ExpectSuccess(t, ctrl.Enabled())
}

func TestGuardPreviouslyMasked(t *testing.T) {
	ctrl := irq.NewController(nil)
	outer := ctrl.Disable()

	func() {
		defer ctrl.Disable().Restore()
	}()

	test.ExpectFailure(t, ctrl.Enabled())
	outer.Restore()
}
