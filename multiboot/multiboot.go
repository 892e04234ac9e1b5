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

package multiboot

import (
	"context"
	"encoding/binary"
	"runtime"

	"github.com/jetsetilly/linkdump/curated"
	"github.com/jetsetilly/linkdump/hardware/cartridge"
	"github.com/jetsetilly/linkdump/link"
)

// Sentinel errors returned by Upload().
const (
	HandshakeFailed   = "multiboot: handshake failed: token %#04x"
	TransmissionError = "multiboot: transmission error at %#x: %#04x should be %#04x"
	ChecksumError     = "multiboot: checksum %#04x should be %#04x"
	ProgramSize       = "multiboot: program is the wrong size (%d bytes)"
	Abandoned         = "multiboot: abandoned: %v"
)

// The limits on the size of a program.
const (
	MinProgramSize = 0x1c0
	MaxProgramSize = 0x40000
)

// handshake values
const (
	cmdReady       = 0x6202
	replyReady     = 0x7202
	cmdHeaderStart = 0x6100
	cmdHeaderEnd   = 0x6200
	cmdKey         = 0x6300
	tokenKey       = 0x73
	cmdCRCFinal    = 0x6400
	cmdChecksum    = 0x0065
	replyChecksum  = 0x0075
	cmdChecksumEnd = 0x0066
)

// palette, direction and speed of the boot logo. these are the defaults
const pp = 0x81

// body length must be a multiple of sixteen bytes
func alignedLength(program []byte) int {
	return len(program) &^ 0x0f
}

type uploader struct {
	ex link.Exchanger
}

func (up uploader) send32(v uint32) (uint32, error) {
	return up.ex.Exchange(v)
}

func (up uploader) send16(v uint16) (uint16, error) {
	r, err := up.ex.Exchange(uint32(v))
	return uint16(r >> 16), err
}

// Upload a program to a console waiting for multiboot. The program is a
// complete ROM image including the header. Upload waits for the console to be
// ready and the wait ends early if the context is done.
func Upload(ctx context.Context, ex link.Exchanger, program []byte) error {
	n := alignedLength(program)
	if n < MinProgramSize || n > MaxProgramSize {
		return curated.Errorf(ProgramSize, len(program))
	}
	program = program[:n]

	up := uploader{ex: ex}

	if err := up.waitReady(ctx); err != nil {
		return err
	}
	if err := up.sendHeader(program); err != nil {
		return err
	}
	crc, enc, err := up.exchangeKeys(n)
	if err != nil {
		return err
	}
	if err := up.sendBody(program, crc, enc); err != nil {
		return err
	}
	return up.validate(crc.Digest())
}

func (up uploader) waitReady(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return curated.Errorf(Abandoned, ctx.Err())
		default:
		}

		r, err := up.send16(cmdReady)
		if err != nil {
			return err
		}
		if r == replyReady {
			return nil
		}
		runtime.Gosched()
	}
}

func (up uploader) sendHeader(program []byte) error {
	if _, err := up.send16(cmdHeaderStart); err != nil {
		return err
	}
	for i := 0; i < cartridge.HeaderSize; i += 2 {
		if _, err := up.send16(binary.LittleEndian.Uint16(program[i:])); err != nil {
			return err
		}
	}
	_, err := up.send16(cmdHeaderEnd)
	return err
}

func (up uploader) exchangeKeys(n int) (*CRC, *Encrypter, error) {
	if _, err := up.send16(cmdReady); err != nil {
		return nil, nil, err
	}

	// the key is sent twice. the reply to the second is the console's token
	if _, err := up.send16(cmdKey | pp); err != nil {
		return nil, nil, err
	}
	token, err := up.send16(cmdKey | pp)
	if err != nil {
		return nil, nil, err
	}
	if token>>8 != tokenKey {
		return nil, nil, curated.Errorf(HandshakeFailed, token)
	}

	hh := uint8(token)
	seed := 0xffff0000 | uint32(hh)<<8 | pp
	finalA := hh + 0x0f

	if _, err := up.send16(cmdCRCFinal | uint16(finalA)); err != nil {
		return nil, nil, err
	}

	token, err = up.send16(uint16((n-cartridge.HeaderSize)/4 - 0x34))
	if err != nil {
		return nil, nil, err
	}
	finalB := uint8(token)

	return NewCRC(finalA, finalB), NewEncrypter(seed), nil
}

func (up uploader) sendBody(program []byte, crc *CRC, enc *Encrypter) error {
	for i := cartridge.HeaderSize; i < len(program); i += 4 {
		w := binary.LittleEndian.Uint32(program[i:])
		crc.Step(w)

		r, err := up.send32(enc.Step(w, uint32(i)))
		if err != nil {
			return err
		}

		if check := uint16(r >> 16); check != uint16(i) {
			return curated.Errorf(TransmissionError, i, check, uint16(i))
		}
	}
	return nil
}

func (up uploader) validate(checksum uint16) error {
	for {
		r, err := up.send16(cmdChecksum)
		if err != nil {
			return err
		}
		if r == replyChecksum {
			break
		}
	}

	if _, err := up.send16(cmdChecksumEnd); err != nil {
		return err
	}

	r, err := up.send16(checksum)
	if err != nil {
		return err
	}
	if r != checksum {
		return curated.Errorf(ChecksumError, r, checksum)
	}
	return nil
}
