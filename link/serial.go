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
	"github.com/jacobsa/go-serial/serial"
	"github.com/jetsetilly/linkdump/curated"
)

// OpenSerial opens a UART bridge at the given baud rate. Eight data bits, one
// stop bit, no parity.
func OpenSerial(device string, baud int) (*Stream, error) {
	options := serial.OpenOptions{
		PortName:        device,
		BaudRate:        uint(baud),
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
	}

	port, err := serial.Open(options)
	if err != nil {
		return nil, curated.Errorf(OpenError, device, err)
	}

	s := NewStream(port)
	s.name = device
	return s, nil
}
