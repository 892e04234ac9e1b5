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

package dispatcher

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/linkdump/hardware/cartridge"
	"github.com/jetsetilly/linkdump/hardware/savechip"
)

// Stats are counters for the commands served by the dispatcher.
type Stats struct {
	Commands map[Command]int

	// words transferred over the link
	WordsIn  int
	WordsOut int

	// accepted WriteSave commands
	Commits int

	// words of ReadData that were unmapped and sent as zero
	UnmappedWords int
}

func (st Stats) String() string {
	s := strings.Builder{}
	for cmd := HealthCheck; cmd <= Echo; cmd++ {
		s.WriteString(fmt.Sprintf("%s: %d\n", cmd, st.Commands[cmd]))
	}
	unknown := 0
	for cmd, n := range st.Commands {
		if cmd > Echo {
			unknown += n
		}
	}
	s.WriteString(fmt.Sprintf("unknown: %d\n", unknown))
	s.WriteString(fmt.Sprintf("words in: %d, words out: %d\n", st.WordsIn, st.WordsOut))
	s.WriteString(fmt.Sprintf("commits: %d, unmapped words: %d", st.Commits, st.UnmappedWords))
	return s.String()
}

func (d *Dispatcher) count(cmd Command) {
	d.crit.Lock()
	defer d.crit.Unlock()
	if d.stats.Commands == nil {
		d.stats.Commands = make(map[Command]int)
	}
	d.stats.Commands[cmd]++
}

// Stats returns a copy of the dispatcher counters. Safe to call from any
// goroutine.
func (d *Dispatcher) Stats() Stats {
	d.crit.Lock()
	defer d.crit.Unlock()
	st := d.stats
	st.Commands = make(map[Command]int, len(d.stats.Commands))
	for k, v := range d.stats.Commands {
		st.Commands[k] = v
	}
	return st
}

// Snapshot is a summary of the dispatcher.
type Snapshot struct {
	State    State
	GameSize cartridge.GameSize
	SaveSize savechip.Capacity
	Stats    Stats

	// the first words of the scratch buffer
	Scratch []uint32
}

// the number of scratch words included in a Snapshot
const snapshotScratch = 4

// Snapshot returns a summary of the dispatcher. Safe to call from any
// goroutine.
func (d *Dispatcher) Snapshot() Snapshot {
	st := d.Stats()

	d.crit.Lock()
	defer d.crit.Unlock()

	return Snapshot{
		State:    d.State(),
		GameSize: d.gameSize,
		SaveSize: d.saveSize,
		Stats:    st,
		Scratch:  append([]uint32(nil), d.scratch[:snapshotScratch]...),
	}
}
