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
	"sync"

	"github.com/jetsetilly/linkdump/curated"
)

type pipe struct {
	done      chan struct{}
	closeOnce sync.Once
}

// PipeEnd is one end of a pipe created by NewPipe().
type PipeEnd struct {
	p   *pipe
	in  <-chan uint32
	out chan<- uint32
}

// NewPipe creates a synchronous in-process link. A Send() on one end completes
// only when the word is taken by a Recv() on the other end.
func NewPipe() (device *PipeEnd, host *PipeEnd) {
	p := &pipe{
		done: make(chan struct{}),
	}

	a := make(chan uint32)
	b := make(chan uint32)

	device = &PipeEnd{p: p, in: a, out: b}
	host = &PipeEnd{p: p, in: b, out: a}

	return device, host
}

// Recv implements the Channel interface.
func (e *PipeEnd) Recv() (uint32, error) {
	select {
	case v := <-e.in:
		return v, nil
	case <-e.p.done:
		return 0, curated.Errorf(Closed)
	}
}

// Send implements the Channel interface.
func (e *PipeEnd) Send(v uint32) error {
	select {
	case e.out <- v:
		return nil
	case <-e.p.done:
		return curated.Errorf(Closed)
	}
}

// Exchange implements the Exchanger interface. The word is sent and then a
// word is received.
func (e *PipeEnd) Exchange(v uint32) (uint32, error) {
	if err := e.Send(v); err != nil {
		return 0, err
	}
	return e.Recv()
}

// Close the pipe. Both ends are closed and any blocked Recv() or Send() on
// either end returns the Closed error. Closing more than once is safe.
func (e *PipeEnd) Close() error {
	e.p.closeOnce.Do(func() {
		close(e.p.done)
	})
	return nil
}
