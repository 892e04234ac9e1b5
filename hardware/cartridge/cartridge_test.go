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

package cartridge_test

import (
	"context"
	"testing"
	"time"

	"github.com/jetsetilly/linkdump/curated"
	"github.com/jetsetilly/linkdump/hardware/cartridge"
	"github.com/jetsetilly/linkdump/test"
	"github.com/stretchr/testify/require"
)

// unmirrored is an image with a signature and no open-bus pattern anywhere.
type unmirrored struct{}

func (unmirrored) Read16(offset uint32) uint16 {
	switch offset &^ 1 {
	case 4:
		return 0xff24
	case 6:
		return 0x51ae
	}
	return 0xffff
}

func (u unmirrored) Read32(offset uint32) uint32 {
	return uint32(u.Read16(offset)) | uint32(u.Read16(offset+2))<<16
}

// countingImage records how many reads are made.
type countingImage struct {
	cartridge.Image
	reads int
}

func (c *countingImage) Read16(offset uint32) uint16 {
	c.reads++
	return c.Image.Read16(offset)
}

func (c *countingImage) Read32(offset uint32) uint32 {
	c.reads++
	return c.Image.Read32(offset)
}

func TestOpenBus(t *testing.T) {
	rom := cartridge.NewROM(cartridge.Blank(0x100, "OPENBUS", ""))
	test.ExpectEquality(t, rom.Read16(0x100), 0x0080)
	test.ExpectEquality(t, rom.Read16(0x100000), 0)
	test.ExpectEquality(t, rom.Read16(0x100002), 1)
	test.ExpectEquality(t, rom.Read32(0x100000), 0x00010000)
	test.ExpectEquality(t, rom.Read32(cartridge.SignatureOffset), cartridge.Signature)
}

func TestProbeMirrorPeriod(t *testing.T) {
	for sz := cartridge.MinGameSize; sz <= cartridge.MaxGameSize; sz <<= 1 {
		rom := cartridge.NewROM(cartridge.Blank(int(sz), "MIRROR", ""))
		got, err := cartridge.Probe(rom)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, got, sz)
	}
}

func TestProbeSmallROM(t *testing.T) {
	// a ROM smaller than the minimum probes as the minimum
	rom := cartridge.NewROM(cartridge.Blank(0x40000, "SMALL", ""))
	got, err := cartridge.Probe(rom)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, got, cartridge.MinGameSize)
}

func TestProbeNoMirror(t *testing.T) {
	got, err := cartridge.Probe(unmirrored{})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, got, cartridge.MaxGameSize)
}

func TestProbeNotPresent(t *testing.T) {
	data := cartridge.Blank(0x100000, "ABSENT", "")
	data[cartridge.SignatureOffset] = 0x00
	img := &countingImage{Image: cartridge.NewROM(data)}

	_, err := cartridge.Probe(img)
	test.ExpectSuccess(t, curated.Is(err, cartridge.NotPresent))

	// only the signature is read
	test.ExpectEquality(t, img.reads, 1)

	_, err = cartridge.Probe(cartridge.NewSlot())
	test.ExpectSuccess(t, curated.Is(err, cartridge.NotPresent))
}

func TestProbeSettled(t *testing.T) {
	slot := cartridge.NewSlot()

	go func() {
		time.Sleep(10 * time.Millisecond)
		slot.Insert(cartridge.NewROM(cartridge.Blank(0x200000, "LATE", "")))
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := cartridge.ProbeSettled(ctx, slot)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, got, cartridge.GameSize(0x200000))
}

// flickering is an image whose signature reads follow a schedule of
// presence. Once the schedule is used up the image stays present.
type flickering struct {
	cartridge.Image
	schedule []bool
	probes   int
}

func (f *flickering) Read32(offset uint32) uint32 {
	if offset == cartridge.SignatureOffset {
		f.probes++
		if len(f.schedule) > 0 {
			present := f.schedule[0]
			f.schedule = f.schedule[1:]
			if !present {
				return 0
			}
		}
	}
	return f.Image.Read32(offset)
}

func TestProbeSettledEjected(t *testing.T) {
	// present for the first probe, gone for the second, then back for good
	img := &flickering{
		Image:    cartridge.NewROM(cartridge.Blank(0x400000, "FLICKER", "")),
		schedule: []bool{true, false, false, true, true},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := cartridge.ProbeSettled(ctx, img)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, got, cartridge.GameSize(0x400000))
	test.ExpectEquality(t, img.probes, 5)
}

func TestProbeSettledAbandoned(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cartridge.ProbeSettled(ctx, cartridge.NewSlot())
	test.ExpectSuccess(t, curated.Is(err, cartridge.Abandoned))
}

func TestSlot(t *testing.T) {
	slot := cartridge.NewSlot()
	test.ExpectSuccess(t, slot.Inserted() == nil)
	test.ExpectFailure(t, cartridge.Present(slot))

	rom := cartridge.NewROM(cartridge.Blank(0x1000, "SLOT", ""))
	slot.Insert(rom)
	test.ExpectSuccess(t, cartridge.Present(slot))
	test.ExpectEquality(t, slot.Read32(0x200), rom.Read32(0x200))

	slot.Eject()
	test.ExpectFailure(t, cartridge.Present(slot))
	test.ExpectEquality(t, slot.Read16(0x100000), 0)
}

func TestHeader(t *testing.T) {
	rom := cartridge.NewROM(cartridge.Blank(0x1000, "LINKDUMP", ""))
	data := cartridge.ReadHeader(rom)
	require.Len(t, data, cartridge.HeaderSize)

	hdr, err := cartridge.ParseHeader(data)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, hdr.Title, "LINKDUMP")
	test.ExpectEquality(t, hdr.GameCode, "ZZZE")
	test.ExpectEquality(t, hdr.MakerCode, "01")

	data[0xa0] = 'X'
	hdr, err = cartridge.ParseHeader(data)
	test.ExpectSuccess(t, curated.Is(err, cartridge.HeaderChecksum))
	test.ExpectEquality(t, hdr.Title, "XINKDUMP")

	_, err = cartridge.ParseHeader(data[:0x80])
	test.ExpectSuccess(t, curated.Is(err, cartridge.HeaderTooShort))
}

func TestFindSaveLibrary(t *testing.T) {
	cases := []struct {
		id  string
		lib cartridge.SaveLibrary
	}{
		{id: "EEPROM_V124", lib: cartridge.LibraryEEPROM},
		{id: "SRAM_V113", lib: cartridge.LibrarySRAM},
		{id: "SRAM_F_V100", lib: cartridge.LibrarySRAM},
		{id: "FLASH_V126", lib: cartridge.LibraryFlash64},
		{id: "FLASH512_V131", lib: cartridge.LibraryFlash64},
		{id: "FLASH1M_V103", lib: cartridge.LibraryFlash128},
		{id: "", lib: cartridge.LibraryNone},
	}

	for _, c := range cases {
		rom := cartridge.NewROM(cartridge.Blank(0x10000, "LIBRARY", c.id))
		lib, _ := cartridge.FindSaveLibrary(rom, cartridge.GameSize(rom.Size()))
		test.ExpectEquality(t, lib, c.lib, c.id)
	}
}

func TestFindSaveLibraryAlignment(t *testing.T) {
	data := cartridge.Blank(0x10000, "UNALIGNED", "")
	copy(data[0x801:], "SRAM_V113")
	lib, _ := cartridge.FindSaveLibrary(cartridge.NewROM(data), 0x10000)
	test.ExpectEquality(t, lib, cartridge.LibraryNone)
}
