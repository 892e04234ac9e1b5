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

package host

import (
	"context"
	"encoding/binary"
	"runtime"

	"github.com/jetsetilly/linkdump/curated"
	"github.com/jetsetilly/linkdump/dispatcher"
	"github.com/jetsetilly/linkdump/hardware/cartridge"
	"github.com/jetsetilly/linkdump/hardware/memory/memorymap"
	"github.com/jetsetilly/linkdump/hardware/savechip"
	"github.com/jetsetilly/linkdump/link"
)

// Sentinel errors returned by the Client.
const (
	WrongSaveSize = "host: save is the wrong size (%d bytes, should be %d)"
	EchoTooLong   = "host: echo of %d words is too long (maximum is %d)"
	WaitAbandoned = "host: wait abandoned: %v"
)

// Client sends commands to the peripheral.
type Client struct {
	ch link.Channel

	// Progress is called periodically during long reads and writes with the
	// number of words transferred so far and the total. May be nil.
	Progress func(done int, total int)
}

// progressInterval is the number of words between calls to Progress
const progressInterval = 0x4000

// NewClient is the preferred method of initialisation for the Client type.
func NewClient(ch link.Channel) *Client {
	return &Client{ch: ch}
}

func (cl *Client) progress(done int, total int) {
	if cl.Progress == nil {
		return
	}
	if done%progressInterval == 0 || done == total {
		cl.Progress(done, total)
	}
}

// command sends the tag, the size and the payload.
func (cl *Client) command(cmd dispatcher.Command, payload []uint32) error {
	if err := cl.ch.Send(uint32(cmd)); err != nil {
		return err
	}
	if err := cl.ch.Send(uint32(len(payload))); err != nil {
		return err
	}
	for i, w := range payload {
		if err := cl.ch.Send(w); err != nil {
			return err
		}
		cl.progress(i+1, len(payload))
	}
	return nil
}

func (cl *Client) recvWords(n int) ([]uint32, error) {
	words := make([]uint32, n)
	for i := range words {
		var err error
		words[i], err = cl.ch.Recv()
		if err != nil {
			return nil, err
		}
		cl.progress(i+1, n)
	}
	return words, nil
}

// Check sends a health check and returns the reply.
func (cl *Client) Check() (uint32, error) {
	if err := cl.ch.Send(uint32(dispatcher.HealthCheck)); err != nil {
		return 0, err
	}
	return cl.ch.Recv()
}

// Wait sends health checks until the peripheral acknowledges one. The wait
// ends early if the context is done.
func (cl *Client) Wait(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return curated.Errorf(WaitAbandoned, ctx.Err())
		default:
		}

		v, err := cl.Check()
		if err != nil {
			return err
		}
		if v == dispatcher.HealthAck {
			return nil
		}
		runtime.Gosched()
	}
}

func (cl *Client) query(cmd dispatcher.Command) (uint32, error) {
	if err := cl.command(cmd, nil); err != nil {
		return 0, err
	}
	return cl.ch.Recv()
}

// GameSize returns the size of the cartridge ROM.
func (cl *Client) GameSize() (cartridge.GameSize, error) {
	v, err := cl.query(dispatcher.GetGameSize)
	return cartridge.GameSize(v), err
}

// SaveSize returns the capacity of the save chip.
func (cl *Client) SaveSize() (savechip.Capacity, error) {
	v, err := cl.query(dispatcher.GetSaveSize)
	return savechip.Capacity(v), err
}

// Read byteCount bytes from the peripheral starting at addr.
func (cl *Client) Read(addr uint32, byteCount int) ([]byte, error) {
	n := (byteCount + 3) / 4
	if err := cl.command(dispatcher.ReadData, []uint32{addr, uint32(n)}); err != nil {
		return nil, err
	}
	words, err := cl.recvWords(n)
	if err != nil {
		return nil, err
	}
	return wordsToBytes(words)[:byteCount], nil
}

// ReadHeader reads and decodes the cartridge header. The raw header is
// returned along with the decoded header. A header that fails the complement
// check is returned with the error from cartridge.ParseHeader().
func (cl *Client) ReadHeader() (cartridge.Header, []byte, error) {
	data, err := cl.Read(memorymap.OriginCart, cartridge.HeaderSize)
	if err != nil {
		return cartridge.Header{}, nil, err
	}
	hdr, err := cartridge.ParseHeader(data)
	return hdr, data, err
}

// ReadROM reads the entire cartridge ROM.
func (cl *Client) ReadROM() ([]byte, error) {
	sz, err := cl.GameSize()
	if err != nil {
		return nil, err
	}
	return cl.Read(memorymap.OriginCart, int(sz))
}

// ReadSave reads the save image cached by the peripheral.
func (cl *Client) ReadSave() ([]byte, error) {
	sz, err := cl.SaveSize()
	if err != nil {
		return nil, err
	}
	return cl.Read(memorymap.SaveSentinel, int(sz))
}

// WriteSave replaces the save on the cartridge. The data must be exactly the
// size of the save chip.
func (cl *Client) WriteSave(data []byte) error {
	sz, err := cl.SaveSize()
	if err != nil {
		return err
	}
	if len(data) != int(sz) {
		return curated.Errorf(WrongSaveSize, len(data), uint32(sz))
	}
	return cl.command(dispatcher.WriteSave, bytesToWords(data))
}

// ClearSave replaces the save on the cartridge with zero bytes.
func (cl *Client) ClearSave() error {
	sz, err := cl.SaveSize()
	if err != nil {
		return err
	}
	return cl.command(dispatcher.WriteSave, make([]uint32, sz/4))
}

// Echo sends words to the peripheral and returns the words sent back.
func (cl *Client) Echo(words []uint32) ([]uint32, error) {
	if len(words) > dispatcher.ScratchWords {
		return nil, curated.Errorf(EchoTooLong, len(words), dispatcher.ScratchWords)
	}
	if err := cl.command(dispatcher.Echo, words); err != nil {
		return nil, err
	}
	return cl.recvWords(len(words))
}

func wordsToBytes(words []uint32) []byte {
	data := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(data[i*4:], w)
	}
	return data
}

// bytesToWords pads data to a multiple of four bytes.
func bytesToWords(data []byte) []uint32 {
	words := make([]uint32, (len(data)+3)/4)
	for i := range words {
		var b [4]byte
		copy(b[:], data[i*4:])
		words[i] = binary.LittleEndian.Uint32(b[:])
	}
	return words
}
