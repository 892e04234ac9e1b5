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

package dispatcher_test

import (
	"context"
	"encoding/binary"
	"testing"
	"time"

	"github.com/jetsetilly/linkdump/curated"
	"github.com/jetsetilly/linkdump/dispatcher"
	"github.com/jetsetilly/linkdump/environment"
	"github.com/jetsetilly/linkdump/hardware/cartridge"
	"github.com/jetsetilly/linkdump/hardware/cartridge/backup"
	"github.com/jetsetilly/linkdump/hardware/irq"
	"github.com/jetsetilly/linkdump/hardware/savechip"
	"github.com/jetsetilly/linkdump/link"
	"github.com/jetsetilly/linkdump/test"
	"github.com/stretchr/testify/require"
)

const romSize = 0x100000

type fixture struct {
	t    *testing.T
	d    *dispatcher.Dispatcher
	host *link.PipeEnd
	rom  []byte
	chip backup.Chip
	done chan error
}

func newFixture(t *testing.T, library string) *fixture {
	t.Helper()

	env := environment.NewEnvironment("test", nil)
	data := cartridge.Blank(romSize, "DISPATCH", library)
	rom := cartridge.NewROM(data)
	chip := backup.ForROM(env, rom, romSize, "")
	be := savechip.NewBackend(env, chip, irq.NewController(nil))

	device, host := link.NewPipe()
	f := &fixture{
		t:    t,
		d:    dispatcher.NewDispatcher(env, device, rom, be),
		host: host,
		rom:  data,
		chip: chip,
		done: make(chan error, 1),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	test.DemandSuccess(t, f.d.Init(ctx))

	go func() {
		f.done <- f.d.Run()
	}()

	t.Cleanup(func() {
		_ = host.Close()
		<-f.done
	})

	return f
}

func (f *fixture) send(words ...uint32) {
	f.t.Helper()
	for _, w := range words {
		test.DemandSuccess(f.t, f.host.Send(w))
	}
}

func (f *fixture) recv(n int) []uint32 {
	f.t.Helper()
	words := make([]uint32, n)
	for i := range words {
		var err error
		words[i], err = f.host.Recv()
		test.DemandSuccess(f.t, err)
	}
	return words
}

func (f *fixture) healthCheck() {
	f.t.Helper()
	f.send(uint32(dispatcher.HealthCheck))
	test.ExpectEquality(f.t, f.recv(1)[0], dispatcher.HealthAck)
}

func toWords(data []byte) []uint32 {
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return words
}

func toBytes(words []uint32) []byte {
	data := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(data[i*4:], w)
	}
	return data
}

func pattern(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i*3 + i>>8)
	}
	return data
}

func TestInit(t *testing.T) {
	f := newFixture(t, "SRAM_V113")
	test.ExpectEquality(t, f.d.GameSize(), cartridge.GameSize(romSize))
	test.ExpectEquality(t, f.d.SaveSize(), savechip.CapacitySRAM)

	// the save buffer is a copy of the chip
	require.Equal(t, f.chip.Store().Data, f.d.SaveBuffer())
}

func TestHealthCheck(t *testing.T) {
	f := newFixture(t, "SRAM_V113")

	f.healthCheck()
	f.healthCheck()

	// health check consumes no size word. if it did the echo would be
	// misframed
	f.send(uint32(dispatcher.Echo), 1, 0x1234)
	test.ExpectEquality(t, f.recv(1)[0], 0x1234)
}

func TestEcho(t *testing.T) {
	f := newFixture(t, "SRAM_V113")

	f.send(uint32(dispatcher.Echo), 3, 7, 8, 9)
	require.Equal(t, []uint32{7, 8, 9}, f.recv(3))

	f.send(uint32(dispatcher.Echo), 0)
	f.healthCheck()

	words := make([]uint32, dispatcher.ScratchWords)
	for i := range words {
		words[i] = uint32(i * 0x01010101)
	}

	f.send(uint32(dispatcher.Echo), dispatcher.ScratchWords)
	f.send(words...)
	require.Equal(t, words, f.recv(dispatcher.ScratchWords))

	// a size of 101 is clamped. only 100 payload words are read and echoed
	f.send(uint32(dispatcher.Echo), dispatcher.ScratchWords+1)
	f.send(words...)
	require.Equal(t, words, f.recv(dispatcher.ScratchWords))
	f.healthCheck()
}

func TestGetSizes(t *testing.T) {
	f := newFixture(t, "SRAM_V113")

	f.send(uint32(dispatcher.GetSaveSize), 0)
	test.ExpectEquality(t, f.recv(1)[0], 0x8000)

	f.send(uint32(dispatcher.GetGameSize), 0)
	test.ExpectEquality(t, f.recv(1)[0], romSize)

	// payload is ignored but still consumed
	f.send(uint32(dispatcher.GetSaveSize), 2, 0xaaaa, 0xbbbb)
	test.ExpectEquality(t, f.recv(1)[0], 0x8000)
	f.healthCheck()
}

func TestWriteSaveRoundTrip(t *testing.T) {
	f := newFixture(t, "SRAM_V113")
	data := pattern(int(savechip.CapacitySRAM))

	f.send(uint32(dispatcher.WriteSave), uint32(len(data)/4))
	f.send(toWords(data)...)

	f.send(uint32(dispatcher.ReadData), 2, 0x07000000, uint32(len(data)/4))
	require.Equal(t, data, toBytes(f.recv(len(data)/4)))

	require.Equal(t, data, f.d.SaveBuffer())
	require.Equal(t, data, f.chip.Store().Data)
	test.ExpectEquality(t, f.d.Stats().Commits, 1)
}

func TestWriteSaveFlash(t *testing.T) {
	f := newFixture(t, "FLASH1M_V103")
	test.DemandEquality(t, f.d.SaveSize(), savechip.CapacityFlash128K)
	data := pattern(int(savechip.CapacityFlash128K))

	f.send(uint32(dispatcher.WriteSave), uint32(len(data)/4))
	f.send(toWords(data)...)
	f.healthCheck()

	require.Equal(t, data, f.chip.Store().Data)
}

func TestWriteSaveMismatch(t *testing.T) {
	f := newFixture(t, "SRAM_V113")
	before := f.d.SaveBuffer()

	// an 8K save image is the wrong size for SRAM
	f.send(uint32(dispatcher.WriteSave), 0x2000/4)
	f.send(toWords(pattern(0x2000))...)
	f.healthCheck()

	// one word too many
	f.send(uint32(dispatcher.WriteSave), 0x8000/4+1)
	f.send(toWords(pattern(0x8000 + 4))...)
	f.healthCheck()

	require.Equal(t, before, f.d.SaveBuffer())
	require.Equal(t, before, f.chip.Store().Data)
	test.ExpectEquality(t, f.d.Stats().Commits, 0)
}

func TestWriteSaveClamp(t *testing.T) {
	f := newFixture(t, "SRAM_V113")
	before := f.d.SaveBuffer()

	test.ExpectEquality(t, dispatcher.MaxPayload(dispatcher.WriteSave), uint32(dispatcher.MaxWriteWords))

	// a size larger than the limit is clamped. only the clamped number of
	// words is read, which is still the wrong size for SRAM
	f.send(uint32(dispatcher.WriteSave), 0x30000)
	f.send(toWords(pattern(dispatcher.MaxWriteWords * 4))...)
	f.healthCheck()

	require.Equal(t, before, f.d.SaveBuffer())
	require.Equal(t, before, f.chip.Store().Data)
	test.ExpectEquality(t, f.d.Stats().Commits, 0)
	test.ExpectEquality(t, f.d.Stats().WordsIn, 2+dispatcher.MaxWriteWords+1)
}

func TestSnapshotWhileServing(t *testing.T) {
	f := newFixture(t, "SRAM_V113")

	done := make(chan bool)
	snapped := make(chan int)
	go func() {
		n := 0
		for {
			snap := f.d.Snapshot()
			_ = snap.Scratch[0]
			_ = snap.SaveSize
			n++

			select {
			case <-done:
				snapped <- n
				return
			default:
			}
		}
	}()

	for i := uint32(0); i < 200; i++ {
		f.send(uint32(dispatcher.Echo), 2, i, ^i)
		require.Equal(t, []uint32{i, ^i}, f.recv(2))
	}

	close(done)
	test.ExpectInequality(t, <-snapped, 0)

	// the dispatcher is waiting for a command once the health check is acked
	f.healthCheck()

	snap := f.d.Snapshot()
	test.ExpectEquality(t, snap.State, dispatcher.StateAwaitCommand)
	test.ExpectEquality(t, snap.SaveSize, savechip.CapacitySRAM)
	test.ExpectEquality(t, snap.Scratch[0], uint32(199))
	test.ExpectEquality(t, snap.Stats.Commands[dispatcher.Echo], 200)
}

func TestUnknownCommand(t *testing.T) {
	f := newFixture(t, "SRAM_V113")
	before := f.d.SaveBuffer()

	f.send(99, 2, 1, 2)
	test.ExpectEquality(t, f.recv(1)[0], dispatcher.BadCommand)
	f.healthCheck()

	require.Equal(t, before, f.d.SaveBuffer())
	test.ExpectEquality(t, f.d.GameSize(), cartridge.GameSize(romSize))
	test.ExpectEquality(t, f.d.SaveSize(), savechip.CapacitySRAM)
	test.ExpectEquality(t, f.d.Stats().Commands[99], 1)
}

func TestReadCartridge(t *testing.T) {
	f := newFixture(t, "")

	f.send(uint32(dispatcher.ReadData), 2, 0x08000000, cartridge.HeaderSize/4)
	require.Equal(t, f.rom[:cartridge.HeaderSize], toBytes(f.recv(cartridge.HeaderSize/4)))

	// wait-state mirror
	f.send(uint32(dispatcher.ReadData), 2, 0x0c0000a0, 3)
	require.Equal(t, f.rom[0xa0:0xac], toBytes(f.recv(3)))

	// beyond the end of the ROM is open bus
	f.send(uint32(dispatcher.ReadData), 2, 0x08000000+romSize, 1)
	test.ExpectEquality(t, f.recv(1)[0], 0x00010000)
}

func TestReadUnmapped(t *testing.T) {
	f := newFixture(t, "")

	f.send(uint32(dispatcher.ReadData), 2, 0x02000000, 3)
	require.Equal(t, []uint32{0, 0, 0}, f.recv(3))
	f.healthCheck()
	test.ExpectEquality(t, f.d.Stats().UnmappedWords, 3)

	// the count is honoured across the end of the save region
	f.send(uint32(dispatcher.ReadData), 2, 0x0701fffc, 2)
	f.recv(2)
	f.healthCheck()
	test.ExpectEquality(t, f.d.Stats().UnmappedWords, 4)
}

func TestScratchPersists(t *testing.T) {
	f := newFixture(t, "")

	f.send(uint32(dispatcher.Echo), 2, 0x08000000, 2)
	f.recv(2)

	// read data with no payload uses the words left in the scratch buffer
	f.send(uint32(dispatcher.ReadData), 0)
	require.Equal(t, f.rom[:8], toBytes(f.recv(2)))
}

func TestNoSaveChip(t *testing.T) {
	f := newFixture(t, "")
	test.ExpectEquality(t, f.d.SaveSize(), savechip.CapacityNone)

	f.send(uint32(dispatcher.GetSaveSize), 0)
	test.ExpectEquality(t, f.recv(1)[0], 0)

	f.send(uint32(dispatcher.WriteSave), 1, 0xffffffff)
	f.healthCheck()
	test.ExpectEquality(t, len(f.d.SaveBuffer()), 0)
}

func TestLinkClosed(t *testing.T) {
	env := environment.NewEnvironment("test", nil)
	rom := cartridge.NewROM(cartridge.Blank(romSize, "CLOSED", ""))
	device, host := link.NewPipe()
	d := dispatcher.NewDispatcher(env, device, rom, savechip.NewBackend(env, backup.None{}, irq.NewController(nil)))

	err := d.Step()
	test.ExpectSuccess(t, curated.Is(err, dispatcher.NotInitialised))

	test.DemandSuccess(t, d.Init(context.Background()))
	test.ExpectEquality(t, d.State(), dispatcher.StateAwaitCommand)

	done := make(chan error)
	go func() {
		done <- d.Run()
	}()

	// close while the dispatcher is waiting for a payload
	test.DemandSuccess(t, host.Send(uint32(dispatcher.Echo)))
	test.DemandSuccess(t, host.Send(4))
	test.DemandSuccess(t, host.Send(1))
	test.DemandSuccess(t, host.Close())

	err = <-done
	test.ExpectSuccess(t, curated.Is(err, dispatcher.LinkError))
	test.ExpectSuccess(t, curated.Has(err, link.Closed))
	test.ExpectEquality(t, d.State(), dispatcher.StateAwaitPayload)
}

func TestInitWaitsForCartridge(t *testing.T) {
	env := environment.NewEnvironment("test", nil)
	slot := cartridge.NewSlot()
	device, _ := link.NewPipe()
	d := dispatcher.NewDispatcher(env, device, slot, savechip.NewBackend(env, backup.None{}, irq.NewController(nil)))

	go func() {
		time.Sleep(10 * time.Millisecond)
		slot.Insert(cartridge.NewROM(cartridge.Blank(0x400000, "LATE", "")))
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	test.DemandSuccess(t, d.Init(ctx))
	test.ExpectEquality(t, d.GameSize(), cartridge.GameSize(0x400000))

	// no cartridge ever inserted
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	d = dispatcher.NewDispatcher(env, device, cartridge.NewSlot(), savechip.NewBackend(env, backup.None{}, irq.NewController(nil)))
	err := d.Init(ctx)
	test.ExpectSuccess(t, curated.Is(err, cartridge.Abandoned))
	test.ExpectEquality(t, d.State(), dispatcher.StateInit)
}

func TestResolve(t *testing.T) {
	r, o := dispatcher.Resolve(0x07000000)
	test.ExpectEquality(t, r, dispatcher.RegionSave)
	test.ExpectEquality(t, o, 0)

	r, o = dispatcher.Resolve(0x0a001000)
	test.ExpectEquality(t, r, dispatcher.RegionCartridge)
	test.ExpectEquality(t, o, 0x1000)

	r, _ = dispatcher.Resolve(0x03000000)
	test.ExpectEquality(t, r, dispatcher.RegionUnmapped)
}
