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

package host_test

import (
	"context"
	"testing"
	"time"

	"github.com/jetsetilly/linkdump/curated"
	"github.com/jetsetilly/linkdump/dispatcher"
	"github.com/jetsetilly/linkdump/environment"
	"github.com/jetsetilly/linkdump/hardware/cartridge"
	"github.com/jetsetilly/linkdump/hardware/cartridge/backup"
	"github.com/jetsetilly/linkdump/hardware/irq"
	"github.com/jetsetilly/linkdump/hardware/savechip"
	"github.com/jetsetilly/linkdump/host"
	"github.com/jetsetilly/linkdump/link"
	"github.com/jetsetilly/linkdump/test"
	"github.com/stretchr/testify/require"
)

const romSize = 0x100000

// peripheral starts a dispatcher serving the ROM and returns a client
// connected to it.
func peripheral(t *testing.T, rom []byte) (*host.Client, backup.Chip) {
	t.Helper()

	env := environment.NewEnvironment("peripheral", nil)
	img := cartridge.NewROM(rom)
	chip := backup.ForROM(env, img, cartridge.GameSize(len(rom)), "")
	be := savechip.NewBackend(env, chip, irq.NewController(nil))

	device, hostEnd := link.NewPipe()
	d := dispatcher.NewDispatcher(env, device, img, be)
	test.DemandSuccess(t, d.Init(context.Background()))

	done := make(chan error, 1)
	go func() {
		done <- d.Run()
	}()
	t.Cleanup(func() {
		_ = hostEnd.Close()
		<-done
	})

	return host.NewClient(hostEnd), chip
}

func TestWait(t *testing.T) {
	cl, _ := peripheral(t, cartridge.Blank(romSize, "WAIT", ""))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	test.ExpectSuccess(t, cl.Wait(ctx))

	v, err := cl.Check()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, dispatcher.HealthAck)
}

func TestReadHeaderAndROM(t *testing.T) {
	rom := cartridge.Blank(romSize, "CLIENT", "")
	for i := 0x1000; i < len(rom); i++ {
		rom[i] = byte(i >> 4)
	}
	cl, _ := peripheral(t, rom)

	hdr, raw, err := cl.ReadHeader()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, hdr.Title, "CLIENT")
	require.Equal(t, rom[:cartridge.HeaderSize], raw)

	sz, err := cl.GameSize()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, sz, cartridge.GameSize(romSize))

	var calls int
	cl.Progress = func(_ int, _ int) {
		calls++
	}
	data, err := cl.ReadROM()
	test.ExpectSuccess(t, err)
	require.Equal(t, rom, data)
	test.ExpectInequality(t, calls, 0)
}

func TestUnalignedRead(t *testing.T) {
	rom := cartridge.Blank(romSize, "UNALIGNED", "")
	cl, _ := peripheral(t, rom)

	data, err := cl.Read(0x080000a0, 6)
	test.ExpectSuccess(t, err)
	require.Equal(t, rom[0xa0:0xa6], data)
}

func TestSaveRoundTrip(t *testing.T) {
	cl, chip := peripheral(t, cartridge.Blank(romSize, "SAVE", "FLASH_V126"))

	sz, err := cl.SaveSize()
	test.ExpectSuccess(t, err)
	test.DemandEquality(t, sz, savechip.CapacityFlash64K)

	save := make([]byte, sz)
	for i := range save {
		save[i] = byte(i * 5)
	}
	test.DemandSuccess(t, cl.WriteSave(save))

	got, err := cl.ReadSave()
	test.ExpectSuccess(t, err)
	require.Equal(t, save, got)
	require.Equal(t, save, chip.Store().Data)

	test.DemandSuccess(t, cl.ClearSave())
	got, err = cl.ReadSave()
	test.ExpectSuccess(t, err)
	require.Equal(t, make([]byte, sz), got)
}

func TestWrongSaveSize(t *testing.T) {
	cl, chip := peripheral(t, cartridge.Blank(romSize, "SAVE", "SRAM_V113"))
	before := append([]byte(nil), chip.Store().Data...)

	err := cl.WriteSave(make([]byte, 0x2000))
	test.ExpectSuccess(t, curated.Is(err, host.WrongSaveSize))

	// nothing was sent so the link is still in step
	v, err := cl.Check()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, dispatcher.HealthAck)
	require.Equal(t, before, chip.Store().Data)
}

func TestEcho(t *testing.T) {
	cl, _ := peripheral(t, cartridge.Blank(romSize, "ECHO", ""))

	got, err := cl.Echo([]uint32{7, 8, 9})
	test.ExpectSuccess(t, err)
	require.Equal(t, []uint32{7, 8, 9}, got)

	got, err = cl.Echo(nil)
	test.ExpectSuccess(t, err)
	require.Empty(t, got)

	_, err = cl.Echo(make([]uint32, dispatcher.ScratchWords+1))
	test.ExpectSuccess(t, curated.Is(err, host.EchoTooLong))
}

func TestLinkClosed(t *testing.T) {
	device, hostEnd := link.NewPipe()
	_ = device.Close()

	cl := host.NewClient(hostEnd)
	_, err := cl.GameSize()
	test.ExpectSuccess(t, curated.Is(err, link.Closed))
}
