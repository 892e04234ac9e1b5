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

package dispatcher

import (
	"context"
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/jetsetilly/linkdump/curated"
	"github.com/jetsetilly/linkdump/environment"
	"github.com/jetsetilly/linkdump/hardware/cartridge"
	"github.com/jetsetilly/linkdump/hardware/savechip"
	"github.com/jetsetilly/linkdump/link"
	"github.com/jetsetilly/linkdump/logger"
)

// Sentinel errors returned by the dispatcher.
const (
	LinkError      = "dispatcher: %v"
	NotInitialised = "dispatcher: not initialised"
)

// Dispatcher serves commands from the host.
type Dispatcher struct {
	env     *environment.Environment
	ch      link.Channel
	img     cartridge.Image
	backend *savechip.Backend

	state atomic.Int32

	// immutable once Init() has completed
	gameSize cartridge.GameSize
	saveSize savechip.Capacity

	// crit protects save, stats and scratch. the sizes are written under crit
	// by Init(). the other fields are only accessed by the goroutine running
	// the dispatcher
	crit  sync.Mutex
	save  [savechip.MaxCapacity]byte
	stats Stats

	// WriteSave payloads are staged so that the save buffer is unchanged by a
	// write of the wrong size
	staging [savechip.MaxCapacity]byte

	// the scratch buffer is not cleared between commands. only the dispatcher
	// goroutine writes it so that goroutine can read it without crit
	scratch [ScratchWords]uint32
}

// NewDispatcher is the preferred method of initialisation for the Dispatcher
// type. Init() must be called before Step() or Run().
func NewDispatcher(env *environment.Environment, ch link.Channel, img cartridge.Image, backend *savechip.Backend) *Dispatcher {
	d := &Dispatcher{
		env:     env,
		ch:      ch,
		img:     img,
		backend: backend,
	}
	d.state.Store(int32(StateInit))
	return d
}

func (d *Dispatcher) setState(s State) {
	d.state.Store(int32(s))
}

// State returns the current state of the dispatcher. Safe to call from any
// goroutine.
func (d *Dispatcher) State() State {
	return State(d.state.Load())
}

// GameSize returns the size of the cartridge ROM found by Init().
func (d *Dispatcher) GameSize() cartridge.GameSize {
	d.crit.Lock()
	defer d.crit.Unlock()
	return d.gameSize
}

// SaveSize returns the save chip capacity found by Init().
func (d *Dispatcher) SaveSize() savechip.Capacity {
	d.crit.Lock()
	defer d.crit.Unlock()
	return d.saveSize
}

// SaveBuffer returns a copy of the active region of the save buffer. Safe to
// call from any goroutine.
func (d *Dispatcher) SaveBuffer() []byte {
	d.crit.Lock()
	defer d.crit.Unlock()
	b := make([]byte, d.saveSize)
	copy(b, d.save[:d.saveSize])
	return b
}

// Init waits for a cartridge, discovers its size and caches the save chip.
// The wait ends early if the context is done.
func (d *Dispatcher) Init(ctx context.Context) error {
	d.setState(StateInit)

	if !cartridge.Present(d.img) {
		logger.Log(d.env, "dispatcher", "waiting for cartridge")
	}

	gameSize, err := cartridge.ProbeSettled(ctx, d.img)
	if err != nil {
		return err
	}

	saveSize := d.backend.Classify(d.img, gameSize)

	d.crit.Lock()
	d.gameSize = gameSize
	d.saveSize = saveSize
	d.backend.Backup(d.save[:], d.saveSize)
	d.crit.Unlock()

	logger.Logf(d.env, "dispatcher", "game: %#x, save: %#x (%s)", uint32(gameSize), uint32(saveSize), saveSize)

	d.setState(StateAwaitCommand)
	return nil
}

// Run calls Step() until the link fails. The returned error is never nil.
func (d *Dispatcher) Run() error {
	for {
		if err := d.Step(); err != nil {
			return err
		}
	}
}

func (d *Dispatcher) recv() (uint32, error) {
	v, err := d.ch.Recv()
	if err != nil {
		return 0, curated.Errorf(LinkError, err)
	}
	d.crit.Lock()
	d.stats.WordsIn++
	d.crit.Unlock()
	return v, nil
}

func (d *Dispatcher) send(v uint32) error {
	if err := d.ch.Send(v); err != nil {
		return curated.Errorf(LinkError, err)
	}
	d.crit.Lock()
	d.stats.WordsOut++
	d.crit.Unlock()
	return nil
}

// Step serves one command. An error is only returned if the link fails, in
// which case the command may be incomplete.
func (d *Dispatcher) Step() error {
	if d.State() == StateInit {
		return curated.Errorf(NotInitialised)
	}

	d.setState(StateAwaitCommand)
	tag, err := d.recv()
	if err != nil {
		return err
	}
	cmd := Command(tag)

	if cmd == HealthCheck {
		d.count(cmd)
		return d.send(HealthAck)
	}

	d.setState(StateAwaitSize)
	size, err := d.recv()
	if err != nil {
		return err
	}
	if mx := MaxPayload(cmd); size > mx {
		size = mx
	}

	d.setState(StateAwaitPayload)
	for i := uint32(0); i < size; i++ {
		v, err := d.recv()
		if err != nil {
			return err
		}
		if cmd == WriteSave {
			if o := i * 4; o < uint32(savechip.MaxCapacity) {
				binary.LittleEndian.PutUint32(d.staging[o:], v)
			}
		} else {
			d.crit.Lock()
			d.scratch[i] = v
			d.crit.Unlock()
		}
	}

	d.setState(StateExecute)
	d.count(cmd)
	defer d.setState(StateAwaitCommand)

	switch cmd {
	case GetGameSize:
		return d.send(uint32(d.gameSize))
	case GetSaveSize:
		return d.send(uint32(d.saveSize))
	case ReadData:
		return d.readData(d.scratch[0], d.scratch[1])
	case WriteSave:
		d.writeSave(size)
		return nil
	case Echo:
		for i := uint32(0); i < size; i++ {
			if err := d.send(d.scratch[i]); err != nil {
				return err
			}
		}
		return nil
	}

	return d.send(BadCommand)
}

func (d *Dispatcher) word(addr uint32) (uint32, bool) {
	region, offset := Resolve(addr)
	switch region {
	case RegionCartridge:
		return d.img.Read32(offset), true
	case RegionSave:
		offset &^= 3
		d.crit.Lock()
		defer d.crit.Unlock()
		return binary.LittleEndian.Uint32(d.save[offset:]), true
	}
	return 0, false
}

// readData streams count words from addr. The count is honoured even when the
// words are unmapped, in which case the words are zero.
func (d *Dispatcher) readData(addr uint32, count uint32) error {
	unmapped := 0
	for i := uint32(0); i < count; i++ {
		v, ok := d.word(addr + i*4)
		if !ok {
			unmapped++
		}
		if err := d.send(v); err != nil {
			return err
		}
	}

	if unmapped > 0 {
		d.crit.Lock()
		d.stats.UnmappedWords += unmapped
		d.crit.Unlock()
		logger.Logf(d.env, "dispatcher", "read data: %d of %d words from %#08x were unmapped", unmapped, count, addr)
	}

	return nil
}

// writeSave commits the staged save if the size matches the save chip
// exactly. A mismatch is quietly ignored.
func (d *Dispatcher) writeSave(size uint32) {
	if uint64(size)*4 != uint64(d.saveSize) {
		logger.Logf(d.env, "dispatcher", "write save: %#x bytes does not match save size of %#x", size*4, uint32(d.saveSize))
		return
	}

	d.crit.Lock()
	defer d.crit.Unlock()
	copy(d.save[:d.saveSize], d.staging[:d.saveSize])
	d.backend.Commit(d.save[:], d.saveSize)
	d.stats.Commits++
}
