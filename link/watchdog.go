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
	"io"
	"sync"
	"time"

	"github.com/jetsetilly/linkdump/curated"
)

type result struct {
	v   uint32
	err error
}

// watchdog fails any transfer that takes longer than the limit. Once a
// transfer has failed the framing of the link is lost, so every subsequent
// transfer fails too.
type watchdog struct {
	ch    Channel
	limit time.Duration

	crit    sync.Mutex
	expired bool
}

// Watchdog wraps a channel so that a Recv() or Send() that does not complete
// within the limit returns the Timeout error. If the channel is an io.Closer
// it is closed on timeout, which unblocks the stalled transfer.
//
// A limit of zero returns the channel unchanged.
func Watchdog(ch Channel, limit time.Duration) Channel {
	if limit <= 0 {
		return ch
	}
	return &watchdog{ch: ch, limit: limit}
}

func (w *watchdog) timedOut() bool {
	w.crit.Lock()
	defer w.crit.Unlock()
	return w.expired
}

func (w *watchdog) expire() {
	w.crit.Lock()
	w.expired = true
	w.crit.Unlock()
	if c, ok := w.ch.(io.Closer); ok {
		_ = c.Close()
	}
}

func (w *watchdog) run(f func() result) result {
	if w.timedOut() {
		return result{err: curated.Errorf(Timeout, w.limit)}
	}

	done := make(chan result, 1)
	go func() {
		done <- f()
	}()

	t := time.NewTimer(w.limit)
	defer t.Stop()

	select {
	case r := <-done:
		return r
	case <-t.C:
		w.expire()
		return result{err: curated.Errorf(Timeout, w.limit)}
	}
}

// Recv implements the Channel interface.
func (w *watchdog) Recv() (uint32, error) {
	r := w.run(func() result {
		v, err := w.ch.Recv()
		return result{v: v, err: err}
	})
	return r.v, r.err
}

// Send implements the Channel interface.
func (w *watchdog) Send(v uint32) error {
	r := w.run(func() result {
		return result{err: w.ch.Send(v)}
	})
	return r.err
}

// Close implements the io.Closer interface.
func (w *watchdog) Close() error {
	if c, ok := w.ch.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
