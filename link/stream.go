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

package link

import (
	"encoding/binary"
	"errors"
	"io"
	"net"
	"os"

	"github.com/jetsetilly/linkdump/curated"
)

// Stream is a Channel over a byte stream. Each word is four bytes, most
// significant byte first.
type Stream struct {
	rwc  io.ReadWriteCloser
	name string

	rbuf [4]byte
	wbuf [4]byte
}

// NewStream is the preferred method of initialisation for the Stream type.
func NewStream(rwc io.ReadWriteCloser) *Stream {
	return &Stream{rwc: rwc}
}

func (s *Stream) String() string {
	if s.name == "" {
		return "stream"
	}
	return s.name
}

func (s *Stream) wrapError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed) || errors.Is(err, os.ErrClosed) {
		return curated.Errorf(Closed)
	}
	return curated.Errorf(StreamError, err)
}

// Recv implements the Channel interface.
func (s *Stream) Recv() (uint32, error) {
	if _, err := io.ReadFull(s.rwc, s.rbuf[:]); err != nil {
		return 0, s.wrapError(err)
	}
	return binary.BigEndian.Uint32(s.rbuf[:]), nil
}

// Send implements the Channel interface.
func (s *Stream) Send(v uint32) error {
	binary.BigEndian.PutUint32(s.wbuf[:], v)
	if _, err := s.rwc.Write(s.wbuf[:]); err != nil {
		return s.wrapError(err)
	}
	return nil
}

// Exchange implements the Exchanger interface. The word is sent and then a
// word is received.
func (s *Stream) Exchange(v uint32) (uint32, error) {
	if err := s.Send(v); err != nil {
		return 0, err
	}
	return s.Recv()
}

// Close the underlying stream.
func (s *Stream) Close() error {
	return s.rwc.Close()
}
