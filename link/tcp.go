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
	"context"
	"net"

	"github.com/jetsetilly/linkdump/curated"
)

// DialTCP connects to a peripheral listening on address.
func DialTCP(ctx context.Context, address string) (*Stream, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, curated.Errorf(OpenError, address, err)
	}
	s := NewStream(conn)
	s.name = conn.RemoteAddr().String()
	return s, nil
}

// ListenTCP waits for a single host to connect to address. The listener is
// closed once the host has connected, or when the context is done.
func ListenTCP(ctx context.Context, address string) (*Stream, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", address)
	if err != nil {
		return nil, curated.Errorf(OpenError, address, err)
	}
	defer ln.Close()

	stop := context.AfterFunc(ctx, func() {
		ln.Close()
	})
	defer stop()

	conn, err := ln.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil, curated.Errorf(OpenError, address, ctx.Err())
		}
		return nil, curated.Errorf(OpenError, address, err)
	}

	s := NewStream(conn)
	s.name = conn.RemoteAddr().String()
	return s, nil
}
