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
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/linkdump/curated"
	"github.com/jetsetilly/linkdump/preferences"
)

// Role is the side of the link being opened. It only matters for the tcp
// driver, where the peripheral listens and the host dials.
type Role int

// List of roles.
const (
	Peripheral Role = iota
	Host
)

// Conn is a Channel that can be closed.
type Conn interface {
	Channel
	io.Closer
}

// OpenStream opens the stream described by the link preferences.
func OpenStream(ctx context.Context, p *preferences.LinkPreferences, role Role) (*Stream, error) {
	driver := p.Driver.Get().(string)

	switch driver {
	case preferences.DriverTCP:
		if role == Peripheral {
			return ListenTCP(ctx, p.Address.Get().(string))
		}
		return DialTCP(ctx, p.Address.Get().(string))
	case preferences.DriverTTY:
		return OpenTTY(p.Device.Get().(string))
	case preferences.DriverSerial:
		return OpenSerial(p.Device.Get().(string), p.Baud.Get().(int))
	}

	return nil, curated.Errorf(OpenError, driver, fmt.Errorf("unknown driver"))
}

// Open the link described by the link preferences. The link.watchdog
// preference is applied.
func Open(ctx context.Context, p *preferences.LinkPreferences, role Role) (Conn, error) {
	s, err := OpenStream(ctx, p, role)
	if err != nil {
		return nil, err
	}

	// the watchdog and the stream are both closers
	return Watchdog(s, p.Watchdog.Get().(time.Duration)).(Conn), nil
}
