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

// Channel is a word-oriented duplex channel. Recv() blocks until a word arrives
// and Send() blocks until the word has been accepted.
type Channel interface {
	Recv() (uint32, error)
	Send(uint32) error
}

// Exchanger is a full-duplex transfer. One word is sent while another is
// received.
type Exchanger interface {
	Exchange(uint32) (uint32, error)
}

// Sentinel errors returned by the channel implementations.
const (
	Closed      = "link: closed"
	Timeout     = "link: timeout after %v"
	StreamError = "link: %v"
	OpenError   = "link: cannot open %s: %v"
)
