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

package preferences

import (
	"time"

	"github.com/jetsetilly/linkdump/prefs"
)

// List of valid link drivers.
const (
	DriverTCP    = "tcp"
	DriverTTY    = "tty"
	DriverSerial = "serial"
)

// LinkPreferences describe how the transport channel is opened.
type LinkPreferences struct {
	// one of the Driver* values
	Driver prefs.String

	// the device file for the tty and serial drivers
	Device prefs.String

	// the baud rate for the serial driver. the tty driver leaves the baud
	// rate alone because USB CDC bridges ignore it
	Baud prefs.Int

	// the host:port for the tcp driver. the peripheral listens on this
	// address and the host dials it
	Address prefs.String

	// stalled transfers fail after this duration. zero means wait forever,
	// which is how the console behaves
	Watchdog prefs.Duration
}

// SetDefaults reverts all link preferences to their default value.
func (p *LinkPreferences) SetDefaults() {
	_ = p.Driver.Set(DriverTCP)
	_ = p.Device.Set("/dev/ttyACM0")
	_ = p.Baud.Set(115200)
	_ = p.Address.Set("localhost:12601")
	_ = p.Watchdog.Set(time.Duration(0))
}

func (p *LinkPreferences) add(dsk *prefs.Disk) error {
	if err := dsk.Add("link.driver", &p.Driver); err != nil {
		return err
	}
	if err := dsk.Add("link.device", &p.Device); err != nil {
		return err
	}
	if err := dsk.Add("link.baud", &p.Baud); err != nil {
		return err
	}
	if err := dsk.Add("link.address", &p.Address); err != nil {
		return err
	}
	if err := dsk.Add("link.watchdog", &p.Watchdog); err != nil {
		return err
	}
	return nil
}
