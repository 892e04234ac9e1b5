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

// Package link is the transport between the host and the peripheral. The link
// carries 32-bit words in both directions.
//
// The Channel interface is all the peripheral needs: a blocking Recv() and a
// blocking Send(). There are no timeouts by default. A peer that stalls will
// stall the other side forever, which is how the link cable behaves. Wrap a
// channel with Watchdog() to fail stalled transfers instead.
//
// Implementations:
//
//	NewPipe()		an in-process rendezvous, used for loopback and testing
//	NewStream()		words as big-endian bytes over any io.ReadWriteCloser
//	DialTCP()/ListenTCP()	a Stream over TCP
//	OpenTTY()		a Stream over a raw-mode USB CDC device
//	OpenSerial()		a Stream over a UART at a fixed baud rate
//
// The Exchanger interface is a full-duplex transfer, as made by the SPI bridge
// used for multiboot.
package link
