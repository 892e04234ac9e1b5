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

package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/linkdump/curated"
	"github.com/jetsetilly/linkdump/dispatcher"
	"github.com/jetsetilly/linkdump/environment"
	"github.com/jetsetilly/linkdump/hardware/cartridge"
	"github.com/jetsetilly/linkdump/hardware/cartridge/backup"
	"github.com/jetsetilly/linkdump/hardware/irq"
	"github.com/jetsetilly/linkdump/hardware/savechip"
	"github.com/jetsetilly/linkdump/host"
	"github.com/jetsetilly/linkdump/link"
	"github.com/jetsetilly/linkdump/logger"
	"github.com/jetsetilly/linkdump/modalflag"
	"github.com/jetsetilly/linkdump/statsview"
	"github.com/jetsetilly/linkdump/version"
)

// 280896 cycles per frame at 16.78MHz
const vblankPeriod = time.Duration(280896) * time.Second / 16777216

// peripheral is the console side of the link: a cartridge slot, the save
// chip fitted to the cartridge and the dispatcher serving the link.
type peripheral struct {
	env  *environment.Environment
	rom  *cartridge.ROM
	slot *cartridge.Slot
	chip backup.Chip
	ctrl *irq.Controller
	d    *dispatcher.Dispatcher

	vblanks atomic.Int64
}

func newPeripheral(env *environment.Environment, ch link.Channel, rom *cartridge.ROM, savefile string) *peripheral {
	per := &peripheral{
		env:  env,
		rom:  rom,
		slot: cartridge.NewSlot(),
	}

	per.chip = backup.ForROM(env, rom, cartridge.GameSize(rom.Size()), savefile)
	per.ctrl = irq.NewController(func(src irq.Source) {
		if src == irq.VBlank {
			per.vblanks.Add(1)
		}
	})
	per.d = dispatcher.NewDispatcher(env, ch, per.slot, savechip.NewBackend(env, per.chip, per.ctrl))

	logger.Logf(env, "linkdump", "save chip: %s", per.chip)

	return per
}

// vblank raises the VBlank interrupt at the console's refresh rate until the
// context is done.
func (per *peripheral) vblank(ctx context.Context) {
	t := time.NewTicker(vblankPeriod)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			per.ctrl.Raise(irq.VBlank)
		}
	}
}

// run inserts the cartridge after the delay and serves the link until it is
// closed. the closer is closed when the context is done.
func (per *peripheral) run(ctx context.Context, closer io.Closer, insert time.Duration) error {
	go per.vblank(ctx)

	go func() {
		if insert > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(insert):
			}
		}
		per.slot.Insert(per.rom)
	}()

	stop := context.AfterFunc(ctx, func() {
		closer.Close()
	})
	defer stop()

	if err := per.d.Init(ctx); err != nil {
		return err
	}

	err := per.d.Run()
	if curated.Has(err, link.Closed) {
		logger.Log(per.env, "linkdump", "link closed")
		return nil
	}
	return err
}

// finish persists the save chip and logs the session counters.
func (per *peripheral) finish() {
	if st := per.chip.Store(); st != nil {
		st.Flush()
	}
	logger.Logf(per.env, "linkdump", "vblanks: %d (%d while masked)", per.vblanks.Load(), per.ctrl.Deferred())
	for _, l := range strings.Split(per.d.Stats().String(), "\n") {
		logger.Log(per.env, "stats", l)
	}
}

// saveFilename is the default save file for a ROM. the cartridge.savedir
// preference is used if it is set, otherwise the save file sits next to the
// ROM.
func saveFilename(env *environment.Environment, romfile string) string {
	dir := env.Prefs.Cartridge.SaveDir.Get().(string)
	if dir == "" {
		dir = filepath.Dir(romfile)
	}
	base := strings.TrimSuffix(filepath.Base(romfile), filepath.Ext(romfile))
	return filepath.Join(dir, base+".sav")
}

func writeMemviz(filename string, d *dispatcher.Dispatcher) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	snapshot := d.Snapshot()
	memviz.Map(f, &snapshot)

	return nil
}

func serve(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()
	cm := addCommon(md)
	savefile := md.AddString("save", "", "file for the emulated save chip (default is the ROM name with .sav extension)")
	insert := md.AddDuration("insert", 0, "delay before the cartridge is inserted")
	stats := md.AddBool("statsview", false, "run stats server")
	statsAddr := md.AddString("statsaddr", statsview.DefaultAddress, "address for the stats server")
	memvizFile := md.AddString("memviz", "", "write dot graph of the dispatcher to file on exit")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("ROM file required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	env, err := cm.setup("")
	if err != nil {
		return err
	}

	rom, err := cartridge.LoadROM(md.GetArg(0))
	if err != nil {
		return err
	}

	if *savefile == "" {
		*savefile = saveFilename(env, rom.Filename)
	}

	logger.Log(env, "linkdump", version.Banner())

	conn, err := link.Open(ctx, &env.Prefs.Link, link.Peripheral)
	if err != nil {
		return err
	}
	defer conn.Close()

	if *stats {
		statsview.Launch(ctx, md.Output, *statsAddr)
	}

	per := newPeripheral(env, conn, rom, *savefile)
	defer per.finish()

	err = per.run(ctx, conn, *insert)

	if *memvizFile != "" {
		if err := writeMemviz(*memvizFile, per.d); err != nil {
			logger.Logf(env, "linkdump", "memviz: %v", err)
		}
	}

	return err
}

// romWords returns the image as it appears on the bus, little-endian, for
// the first n bytes.
func romWords(img cartridge.Image, n int) []byte {
	b := make([]byte, n)
	for i := 0; i+4 <= n; i += 4 {
		binary.LittleEndian.PutUint32(b[i:], img.Read32(uint32(i)))
	}
	return b
}

func loopback(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()
	cm := addCommon(md)
	savefile := md.AddString("save", "", "file for the emulated save chip")
	library := md.AddString("library", "SRAM_V113", "save library string of the blank ROM")
	size := md.AddInt("size", int(cartridge.MinGameSize), "size of the blank ROM")

	md.AdditionalHelp("The peripheral and the host run in the same process. A blank ROM is used\nif no ROM file is given.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	env, err := cm.setup("peripheral")
	if err != nil {
		return err
	}
	hostEnv := environment.NewEnvironment("host", env.Prefs)

	var rom *cartridge.ROM
	switch len(md.RemainingArgs()) {
	case 0:
		if *size <= 0 || *size > cartridge.MaxROMSize {
			return fmt.Errorf("blank ROM size must be between 1 and %#x", cartridge.MaxROMSize)
		}
		rom = cartridge.NewROM(cartridge.Blank(*size, "LOOPBACK", *library))
	case 1:
		rom, err = cartridge.LoadROM(md.GetArg(0))
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	device, end := link.NewPipe()
	per := newPeripheral(env, device, rom, *savefile)
	defer per.finish()

	done := make(chan error, 1)
	go func() {
		done <- per.run(ctx, device, 0)
	}()

	err = exercise(ctx, md.Output, hostEnv, host.NewClient(end), per)

	end.Close()
	if perr := <-done; err == nil {
		err = perr
	}

	return err
}

// exercise runs every host operation against the peripheral and checks the
// results against the peripheral's own view of the cartridge.
func exercise(ctx context.Context, output io.Writer, env *environment.Environment, cl *host.Client, per *peripheral) error {
	if err := cl.Wait(ctx); err != nil {
		return err
	}
	logger.Log(env, "loopback", "peripheral is ready")

	if err := printInfo(output, cl); err != nil {
		return err
	}

	cl.Progress = progress(output, "rom")
	data, err := cl.ReadROM()
	if err != nil {
		return err
	}
	if !bytes.Equal(data, romWords(per.rom, len(data))) {
		return fmt.Errorf("rom dump does not match the cartridge")
	}
	fmt.Fprintln(output, "rom verified")
	fingerprint(output, data)

	cl.Progress = progress(output, "save")
	save, err := cl.ReadSave()
	if err != nil {
		return err
	}
	if len(save) == 0 {
		fmt.Fprintln(output, "no save chip to verify")
	} else {
		altered := make([]byte, len(save))
		for i := range save {
			altered[i] = ^save[i]
		}

		// write the altered save and then put the original back
		for _, img := range [][]byte{altered, save} {
			if err := writeSaveSynced(cl, img); err != nil {
				return err
			}
			if !bytes.Equal(img, per.d.SaveBuffer()) {
				return fmt.Errorf("save buffer does not match the written save")
			}
			readback, err := cl.ReadSave()
			if err != nil {
				return err
			}
			if !bytes.Equal(img, readback) {
				return fmt.Errorf("save read back does not match the written save")
			}
		}
		fmt.Fprintf(output, "save verified (%d bytes)\n", len(save))
	}

	words := []uint32{0x01234567, 0x89abcdef}
	reply, err := cl.Echo(words)
	if err != nil {
		return err
	}
	for i := range words {
		if reply[i] != words[i] {
			return fmt.Errorf("echo mismatch: %#08x should be %#08x", reply[i], words[i])
		}
	}
	fmt.Fprintln(output, "echo verified")

	return nil
}

// writeSaveSynced writes the save and waits for the peripheral to finish with
// it. WriteSave has no reply so a health check is used to know that the
// command has been served.
func writeSaveSynced(cl *host.Client, data []byte) error {
	if err := cl.WriteSave(data); err != nil {
		return err
	}
	v, err := cl.Check()
	if err != nil {
		return err
	}
	if v != dispatcher.HealthAck {
		return fmt.Errorf("unexpected health check reply: %#04x", v)
	}
	return nil
}
