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

package savechip_test

import (
	"testing"

	"github.com/jetsetilly/linkdump/environment"
	"github.com/jetsetilly/linkdump/hardware/cartridge"
	"github.com/jetsetilly/linkdump/hardware/cartridge/backup"
	"github.com/jetsetilly/linkdump/hardware/irq"
	"github.com/jetsetilly/linkdump/hardware/savechip"
	"github.com/jetsetilly/linkdump/test"
	"github.com/stretchr/testify/require"
)

// maskCheck wraps a chip and records whether any access was made with
// interrupts enabled.
type maskCheck struct {
	backup.Chip
	ctrl     *irq.Controller
	unmasked bool
	accesses int
}

func (m *maskCheck) check() {
	m.accesses++
	if m.ctrl.Enabled() {
		m.unmasked = true
	}
}

func (m *maskCheck) Read8(offset uint32) uint8 {
	m.check()
	return m.Chip.Read8(offset)
}

func (m *maskCheck) Write8(offset uint32, data uint8) {
	m.check()
	m.Chip.Write8(offset, data)
}

func (m *maskCheck) EEPROMSend(bits []uint16) {
	m.check()
	m.Chip.EEPROMSend(bits)
}

func (m *maskCheck) EEPROMReceive(bits []uint16) {
	m.check()
	m.Chip.EEPROMReceive(bits)
}

// panicBus panics on the first access.
type panicBus struct {
	backup.None
}

func (panicBus) Read8(_ uint32) uint8 {
	panic("bus error")
}

func pattern(sz int) []byte {
	data := make([]byte, sz)
	for i := range data {
		data[i] = byte(i*7 + i>>8)
	}
	return data
}

func TestDriverRoundTrip(t *testing.T) {
	env := environment.NewEnvironment("test", nil)

	cases := []struct {
		capacity savechip.Capacity
		chip     backup.Chip
	}{
		{capacity: savechip.CapacityEEPROM512, chip: backup.NewEEPROM(env, backup.EEPROM512, "")},
		{capacity: savechip.CapacityEEPROM8K, chip: backup.NewEEPROM(env, backup.EEPROM8K, "")},
		{capacity: savechip.CapacitySRAM, chip: backup.NewSRAM(env, "")},
		{capacity: savechip.CapacityFlash64K, chip: backup.NewFlash(env, backup.Flash64K, "")},
		{capacity: savechip.CapacityFlash128K, chip: backup.NewFlash(env, backup.Flash128K, "")},
	}

	for _, c := range cases {
		ctrl := irq.NewController(nil)
		bus := &maskCheck{Chip: c.chip, ctrl: ctrl}
		be := savechip.NewBackend(env, bus, ctrl)

		data := pattern(int(c.capacity))
		be.Commit(data, c.capacity)
		require.Equal(t, data, c.chip.Store().Data, c.capacity.String())

		buf := make([]byte, savechip.MaxCapacity)
		be.Backup(buf, c.capacity)
		require.Equal(t, data, buf[:c.capacity], c.capacity.String())

		test.ExpectFailure(t, bus.unmasked, c.capacity)
		test.ExpectSuccess(t, ctrl.Enabled(), c.capacity)
	}
}

func TestFlashRewrite(t *testing.T) {
	env := environment.NewEnvironment("test", nil)
	chip := backup.NewFlash(env, backup.Flash64K, "")
	be := savechip.NewBackend(env, chip, irq.NewController(nil))

	be.Commit(make([]byte, savechip.CapacityFlash64K), savechip.CapacityFlash64K)

	// a second commit must erase before programming
	data := pattern(int(savechip.CapacityFlash64K))
	be.Commit(data, savechip.CapacityFlash64K)
	require.Equal(t, data, chip.Store().Data)
}

func TestUnknownCapacity(t *testing.T) {
	env := environment.NewEnvironment("test", nil)
	ctrl := irq.NewController(nil)
	bus := &maskCheck{Chip: backup.NewSRAM(env, ""), ctrl: ctrl}
	be := savechip.NewBackend(env, bus, ctrl)

	buf := pattern(savechip.MaxCapacity)
	orig := append([]byte(nil), buf...)

	be.Backup(buf, savechip.Capacity(0x4000))
	be.Commit(buf, savechip.Capacity(0x4000))
	be.Backup(buf, savechip.CapacityNone)

	test.ExpectEquality(t, bus.accesses, 0)
	require.Equal(t, orig, buf)
	test.ExpectSuccess(t, ctrl.Enabled())
}

func TestGuardRestoredOnPanic(t *testing.T) {
	env := environment.NewEnvironment("test", nil)
	ctrl := irq.NewController(nil)
	be := savechip.NewBackend(env, panicBus{}, ctrl)

	func() {
		defer func() {
			test.ExpectSuccess(t, recover() != nil)
		}()
		be.Backup(make([]byte, savechip.MaxCapacity), savechip.CapacitySRAM)
	}()

	test.ExpectSuccess(t, ctrl.Enabled())
}

func TestGuardPreviouslyDisabled(t *testing.T) {
	env := environment.NewEnvironment("test", nil)
	ctrl := irq.NewController(nil)
	be := savechip.NewBackend(env, backup.NewSRAM(env, ""), ctrl)

	g := ctrl.Disable()
	be.Backup(make([]byte, savechip.MaxCapacity), savechip.CapacitySRAM)
	test.ExpectFailure(t, ctrl.Enabled())
	g.Restore()
}

func TestClassify(t *testing.T) {
	env := environment.NewEnvironment("test", nil)

	cases := []struct {
		library  string
		chip     backup.Chip
		capacity savechip.Capacity
	}{
		{library: "SRAM_V113", chip: backup.NewSRAM(env, ""), capacity: savechip.CapacitySRAM},
		{library: "SRAM_F_V100", chip: backup.NewSRAM(env, ""), capacity: savechip.CapacitySRAM},
		{library: "FLASH_V126", chip: backup.NewFlash(env, backup.Flash64K, ""), capacity: savechip.CapacityFlash64K},
		{library: "FLASH512_V131", chip: backup.NewFlash(env, backup.Flash64K, ""), capacity: savechip.CapacityFlash64K},
		{library: "FLASH1M_V103", chip: backup.NewFlash(env, backup.Flash128K, ""), capacity: savechip.CapacityFlash128K},
		{library: "EEPROM_V124", chip: backup.NewEEPROM(env, backup.EEPROM512, ""), capacity: savechip.CapacityEEPROM512},
		{library: "", chip: backup.None{}, capacity: savechip.CapacityNone},
	}

	for _, c := range cases {
		rom := cartridge.NewROM(cartridge.Blank(0x100000, "CLASSIFY", c.library))
		got := savechip.Classify(rom, 0x100000, c.chip)
		test.ExpectEquality(t, got, c.capacity, c.library)
	}
}

func TestClassifyEEPROM8K(t *testing.T) {
	env := environment.NewEnvironment("test", nil)
	chip := backup.NewEEPROM(env, backup.EEPROM8K, "")
	copy(chip.Store().Data, pattern(backup.EEPROM8K))

	rom := cartridge.NewROM(cartridge.Blank(0x100000, "CLASSIFY", "EEPROM_V124"))
	be := savechip.NewBackend(env, chip, irq.NewController(nil))
	test.ExpectEquality(t, be.Classify(rom, 0x100000), savechip.CapacityEEPROM8K)
}

func TestCapacityDriver(t *testing.T) {
	for _, c := range []savechip.Capacity{
		savechip.CapacityEEPROM512,
		savechip.CapacityEEPROM8K,
		savechip.CapacitySRAM,
		savechip.CapacityFlash64K,
		savechip.CapacityFlash128K,
	} {
		test.ExpectSuccess(t, c.Driver() != nil, c)
	}
	test.ExpectSuccess(t, savechip.CapacityNone.Driver() == nil)
	test.ExpectSuccess(t, savechip.Capacity(0x4000).Driver() == nil)
}
